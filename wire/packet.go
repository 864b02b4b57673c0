package wire

import "bytes"

// Packet is the single discriminated union over all fifteen control packet
// kinds (spec.md §4.8). Kind reports which concrete type a value holds;
// Encode renders it back to wire bytes using the version already recorded
// on the value (set at construction or by Decoder.DecodePacket).
type Packet interface {
	Kind() PacketType
	Encode() ([]byte, error)
}

func (pkt *ConnectPacket) Kind() PacketType      { return CONNECT }
func (pkt *ConnackPacket) Kind() PacketType      { return CONNACK }
func (pkt *PublishPacket) Kind() PacketType      { return PUBLISH }
func (pkt *ConfirmationPacket) Kind() PacketType { return pkt.Cmd }
func (pkt *SubscribePacket) Kind() PacketType    { return SUBSCRIBE }
func (pkt *SubackPacket) Kind() PacketType       { return SUBACK }
func (pkt *UnsubscribePacket) Kind() PacketType  { return UNSUBSCRIBE }
func (pkt *UnsubackPacket) Kind() PacketType     { return UNSUBACK }
func (pkt *PingreqPacket) Kind() PacketType      { return PINGREQ }
func (pkt *PingrespPacket) Kind() PacketType     { return PINGRESP }
func (pkt *DisconnectPacket) Kind() PacketType   { return DISCONNECT }
func (pkt *AuthPacket) Kind() PacketType         { return AUTH }

var (
	_ Packet = (*ConnectPacket)(nil)
	_ Packet = (*ConnackPacket)(nil)
	_ Packet = (*PublishPacket)(nil)
	_ Packet = (*ConfirmationPacket)(nil)
	_ Packet = (*SubscribePacket)(nil)
	_ Packet = (*SubackPacket)(nil)
	_ Packet = (*UnsubscribePacket)(nil)
	_ Packet = (*UnsubackPacket)(nil)
	_ Packet = (*PingreqPacket)(nil)
	_ Packet = (*PingrespPacket)(nil)
	_ Packet = (*DisconnectPacket)(nil)
	_ Packet = (*AuthPacket)(nil)
)

// DecodePacketFromBytes is a one-shot convenience wrapper around Decoder for
// callers that already have the whole packet (or stream) buffered in
// memory. version is ignored for CONNECT, which always trusts its own
// version byte (spec.md §4.8).
func DecodePacketFromBytes(data []byte, version ProtocolVersion) (Packet, error) {
	d := NewDecoder(bytes.NewReader(data), nil)
	return d.DecodePacket(version)
}

// Encode renders p to wire bytes. A thin pass-through kept for symmetry
// with DecodePacketFromBytes; p.Encode() already carries its own version.
func Encode(p Packet) ([]byte, error) {
	return p.Encode()
}

// Encoder pairs Encode with an optional Metrics collector, mirroring
// Decoder's WithMetrics on the encode side.
type Encoder struct {
	metrics *Metrics
}

// NewEncoder returns an Encoder with no metrics attached.
func NewEncoder() *Encoder { return &Encoder{} }

// WithMetrics attaches an optional Metrics collector; pass nil to detach.
func (e *Encoder) WithMetrics(m *Metrics) *Encoder {
	e.metrics = m
	return e
}

// Encode renders p to wire bytes, recording the outcome on e's metrics.
func (e *Encoder) Encode(p Packet) ([]byte, error) {
	data, err := p.Encode()
	if err != nil {
		return nil, err
	}
	e.metrics.ObserveEncoded(p.Kind())
	return data, nil
}
