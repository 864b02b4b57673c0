package wire

var subackAllowedProperties = map[PropertyID]bool{
	PropReasonString: true,
	PropUserProperty: true,
}

// SubackPacket is the decoded SUBACK body. Grants is populated for v3/v4,
// ReasonCodes for v5 (spec.md §4.6.6).
type SubackPacket struct {
	Version     ProtocolVersion
	MessageID   uint16
	Properties  Properties
	Grants      []Grant
	ReasonCodes []ReasonCode
}

// DecodeSubackPacket decodes a SUBACK body.
func DecodeSubackPacket(r *Reader, version ProtocolVersion) (*SubackPacket, error) {
	id, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	pkt := &SubackPacket{Version: version, MessageID: id}

	if version == MQTT5 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(subackAllowedProperties, "suback"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	for r.HasMore() {
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if version == MQTT5 {
			rc, err := ParseSubackReasonCode(b)
			if err != nil {
				return nil, err
			}
			pkt.ReasonCodes = append(pkt.ReasonCodes, rc)
		} else {
			g, err := ParseGrant(b)
			if err != nil {
				return nil, err
			}
			pkt.Grants = append(pkt.Grants, g)
		}
	}

	if len(pkt.Grants) == 0 && len(pkt.ReasonCodes) == 0 {
		return nil, NewMalformedPacketError(ErrEmptySubscriptionList, "Malformed suback, no grants specified")
	}

	return pkt, nil
}

// Encode renders the SUBACK packet for pkt.Version.
func (pkt *SubackPacket) Encode() ([]byte, error) {
	n := len(pkt.Grants) + len(pkt.ReasonCodes)
	if n == 0 {
		return nil, ErrEmptySubscriptionList
	}

	var body uint32 = 2
	if pkt.Version == MQTT5 {
		body += pkt.Properties.EncodedSize()
	}
	body += uint32(n)

	fh := &FixedHeader{Type: SUBACK, RemainingLength: body}
	w := NewWriter(int(body) + 2)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}

	w.WriteU16(pkt.MessageID)
	if pkt.Version == MQTT5 {
		if err := pkt.Properties.Encode(w); err != nil {
			return nil, err
		}
		for _, rc := range pkt.ReasonCodes {
			w.WriteU8(byte(rc))
		}
	} else {
		for _, g := range pkt.Grants {
			w.WriteU8(byte(g))
		}
	}

	return w.Bytes(), nil
}
