package wire

import (
	"io"

	"github.com/mqttwire/codec/wire/logging"
)

// Decoder is the stream driver (C7): it pulls packets off a readable byte
// source, dispatching by packet kind, and guarantees that a decode failure
// never desynchronizes the stream (spec.md §4.7).
type Decoder struct {
	r       *Reader
	logger  logging.Logger
	metrics *Metrics
}

// NewDecoder wraps r with buffering and no limit. The logger is optional;
// pass nil for silence.
func NewDecoder(r io.Reader, logger logging.Logger) *Decoder {
	if logger == nil {
		logger = logging.Noop()
	}
	return &Decoder{r: NewReader(r), logger: logger}
}

// WithMetrics attaches an optional Metrics collector; pass nil to detach.
// Returns d for chaining after NewDecoder.
func (d *Decoder) WithMetrics(m *Metrics) *Decoder {
	d.metrics = m
	return d
}

// HasMore reports whether the underlying source has any bytes left to read.
func (d *Decoder) HasMore() bool { return d.r.HasMore() }

// DecodePacket reads one packet. version is external state the caller
// supplies (the connection's negotiated protocol version); CONNECT ignores
// it and trusts the version byte inside the packet itself (spec.md §4.8).
//
// Whether decoding succeeds or fails, the reader is left positioned at the
// start of the next packet: on any exit path the current remaining-length
// limit is first drained with ConsumeRemaining, then popped.
func (d *Decoder) DecodePacket(version ProtocolVersion) (Packet, error) {
	fh, err := DecodeFixedHeader(d.r)
	if err != nil {
		return nil, err
	}

	if err := d.r.PushLimit(fh.RemainingLength); err != nil {
		return nil, err
	}

	pkt, decodeErr := d.dispatch(fh, version)

	if consumeErr := d.r.ConsumeRemaining(); consumeErr != nil && decodeErr == nil {
		decodeErr = consumeErr
	}
	if popErr := d.r.PopLimit(); popErr != nil && decodeErr == nil {
		decodeErr = popErr
	}

	if decodeErr != nil {
		d.logger.Warn("packet discarded", "type", fh.Type.String(), "reason", decodeErr.Error())
		d.metrics.ObserveDecodeError(decodeErr)
		return nil, decodeErr
	}

	d.metrics.ObserveDecoded(fh.Type)
	return pkt, nil
}

func (d *Decoder) dispatch(fh *FixedHeader, version ProtocolVersion) (Packet, error) {
	switch fh.Type {
	case CONNECT:
		return DecodeConnectPacket(d.r)
	case CONNACK:
		return DecodeConnackPacket(d.r, version)
	case PUBLISH:
		return DecodePublishPacket(d.r, fh, version)
	case PUBACK, PUBREC, PUBREL, PUBCOMP:
		return DecodeConfirmationPacket(d.r, fh, version)
	case SUBSCRIBE:
		return DecodeSubscribePacket(d.r, version)
	case SUBACK:
		return DecodeSubackPacket(d.r, version)
	case UNSUBSCRIBE:
		return DecodeUnsubscribePacket(d.r, version)
	case UNSUBACK:
		return DecodeUnsubackPacket(d.r, fh, version)
	case PINGREQ:
		return DecodePingreqPacket(fh)
	case PINGRESP:
		return DecodePingrespPacket(fh)
	case DISCONNECT:
		return DecodeDisconnectPacket(d.r, fh, version)
	case AUTH:
		return DecodeAuthPacket(d.r, fh, version)
	default:
		return nil, ErrInvalidType
	}
}
