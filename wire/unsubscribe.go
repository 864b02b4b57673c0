package wire

var unsubscribeAllowedProperties = map[PropertyID]bool{
	PropUserProperty: true,
}

var unsubackAllowedProperties = map[PropertyID]bool{
	PropReasonString: true,
	PropUserProperty: true,
}

// UnsubscribePacket is the decoded UNSUBSCRIBE body (spec.md §4.6.7).
type UnsubscribePacket struct {
	Version    ProtocolVersion
	MessageID  uint16
	Properties Properties
	Topics     []string
}

// DecodeUnsubscribePacket decodes an UNSUBSCRIBE body.
func DecodeUnsubscribePacket(r *Reader, version ProtocolVersion) (*UnsubscribePacket, error) {
	id, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	pkt := &UnsubscribePacket{Version: version, MessageID: id}

	if version == MQTT5 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(unsubscribeAllowedProperties, "unsubscribe"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	for r.HasMore() {
		topic, err := r.ReadUTF8String()
		if err != nil {
			return nil, err
		}
		if err := ValidateTopicFilter(topic); err != nil {
			return nil, err
		}
		pkt.Topics = append(pkt.Topics, topic)
	}

	if len(pkt.Topics) == 0 {
		return nil, NewMalformedPacketError(ErrEmptyUnsubscribeList, "Malformed unsubscribe, no payload specified")
	}

	return pkt, nil
}

// Encode renders the UNSUBSCRIBE packet for pkt.Version.
func (pkt *UnsubscribePacket) Encode() ([]byte, error) {
	if len(pkt.Topics) == 0 {
		return nil, ErrEmptyUnsubscribeList
	}

	var body uint32 = 2
	if pkt.Version == MQTT5 {
		body += pkt.Properties.EncodedSize()
	}
	for _, t := range pkt.Topics {
		body += 2 + uint32(len(t))
	}

	fh := &FixedHeader{Type: UNSUBSCRIBE, RemainingLength: body}
	w := NewWriter(int(body) + 2)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}

	w.WriteU16(pkt.MessageID)
	if pkt.Version == MQTT5 {
		if err := pkt.Properties.Encode(w); err != nil {
			return nil, err
		}
	}
	for _, t := range pkt.Topics {
		w.WriteUTF8String(t)
	}

	return w.Bytes(), nil
}

// UnsubackPacket is the decoded UNSUBACK body. ReasonCodes is populated for
// v5 only; v3/v4 carries no payload beyond the message id.
type UnsubackPacket struct {
	Version     ProtocolVersion
	MessageID   uint16
	Properties  Properties
	ReasonCodes []ReasonCode
}

// DecodeUnsubackPacket decodes an UNSUBACK body.
func DecodeUnsubackPacket(r *Reader, fh *FixedHeader, version ProtocolVersion) (*UnsubackPacket, error) {
	id, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	pkt := &UnsubackPacket{Version: version, MessageID: id}

	if version != MQTT5 {
		if fh.RemainingLength != 2 {
			return nil, NewMalformedPacketError(ErrMalformedPacket, "UNSUBACK remaining length must be 2 before MQTT 5")
		}
		return pkt, nil
	}

	props, err := DecodeProperties(r)
	if err != nil {
		return nil, err
	}
	if err := props.ValidateAllowed(unsubackAllowedProperties, "unsuback"); err != nil {
		return nil, err
	}
	pkt.Properties = props

	for r.HasMore() {
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		rc, err := ParseUnsubackReasonCode(b)
		if err != nil {
			return nil, err
		}
		pkt.ReasonCodes = append(pkt.ReasonCodes, rc)
	}

	return pkt, nil
}

// Encode renders the UNSUBACK packet for pkt.Version.
func (pkt *UnsubackPacket) Encode() ([]byte, error) {
	var body uint32 = 2
	if pkt.Version == MQTT5 {
		body += pkt.Properties.EncodedSize() + uint32(len(pkt.ReasonCodes))
	}

	fh := &FixedHeader{Type: UNSUBACK, RemainingLength: body}
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
	}

	return w.Bytes(), nil
}
