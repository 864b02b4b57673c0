package wire

// FixedHeader is the first byte of every MQTT packet (packet type + flag
// nibble) plus its remaining length, per spec.md §3/§4.3.
type FixedHeader struct {
	Type            PacketType
	RemainingLength uint32

	// PUBLISH-only; zero value elsewhere.
	DUP    bool
	QoS    QoS
	Retain bool
}

// requiredLowNibble reports the low nibble a non-PUBLISH packet kind must
// carry on the wire, per the table in spec.md §4.3.
func requiredLowNibble(t PacketType) (nibble byte, fixed bool) {
	switch t {
	case PUBREL, SUBSCRIBE, UNSUBSCRIBE:
		return 0x02, true
	case PUBLISH:
		return 0, false
	default:
		return 0x00, true
	}
}

// DecodeFixedHeader reads and validates the first byte and the
// remaining-length varbyte integer from r.
func DecodeFixedHeader(r *Reader) (*FixedHeader, error) {
	first, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	// reject reads the remaining length and discards that many bytes before
	// returning err, so a packet with an invalid first byte does not leave
	// its body behind to be misread as the next packet.
	reject := func(err error) (*FixedHeader, error) {
		if n, lerr := r.ReadVarbyteInt(); lerr == nil && r.PushLimit(n) == nil {
			_ = r.ConsumeRemaining()
			_ = r.PopLimit()
		}
		return nil, err
	}

	fh := &FixedHeader{Type: PacketType(first >> 4)}
	if fh.Type == Reserved {
		return reject(ErrInvalidReservedType)
	}
	if fh.Type > AUTH {
		return reject(ErrInvalidType)
	}

	lowNibble := first & 0x0F
	if fh.Type == PUBLISH {
		fh.DUP = lowNibble&0x08 != 0
		fh.QoS = QoS((lowNibble & 0x06) >> 1)
		fh.Retain = lowNibble&0x01 != 0
		if !fh.QoS.IsValid() {
			return reject(ErrInvalidQoS)
		}
	} else {
		required, _ := requiredLowNibble(fh.Type)
		if lowNibble != required {
			return reject(NewMalformedPacketError(ErrInvalidFlags,
				"invalid header flag bits for "+fh.Type.String()+" packet"))
		}
	}

	length, err := r.ReadVarbyteInt()
	if err != nil {
		return nil, err
	}
	fh.RemainingLength = length

	return fh, nil
}

// lowNibbleFor returns the low nibble to emit for this fixed header on
// encode, per the table in spec.md §4.3's "On encode" paragraph.
func (fh *FixedHeader) lowNibbleFor() byte {
	switch fh.Type {
	case PUBREL, SUBSCRIBE, UNSUBSCRIBE:
		return 0x02
	case PUBLISH:
		var b byte
		if fh.DUP {
			b |= 0x08
		}
		b |= byte(fh.QoS) << 1
		if fh.Retain {
			b |= 0x01
		}
		return b
	case UNSUBACK:
		var b byte
		if fh.DUP {
			b |= 0x08
		}
		b |= byte(fh.QoS) << 1
		return b
	default:
		return 0x00
	}
}

// Encode writes the fixed header (first byte + remaining length) to w.
func (fh *FixedHeader) Encode(w *Writer) error {
	w.WriteU8(byte(fh.Type)<<4 | fh.lowNibbleFor())
	return w.WriteVarbyteInt(fh.RemainingLength)
}
