package wire

var authAllowedProperties = map[PropertyID]bool{
	PropAuthenticationMethod: true,
	PropAuthenticationData:   true,
	PropReasonString:         true,
	PropUserProperty:         true,
}

// AuthPacket is the decoded AUTH body, v5 only (spec.md §4.6.9).
type AuthPacket struct {
	ReasonCode ReasonCode
	Properties Properties
}

// DecodeAuthPacket decodes an AUTH body. AUTH does not exist before MQTT 5.
func DecodeAuthPacket(r *Reader, fh *FixedHeader, version ProtocolVersion) (*AuthPacket, error) {
	if version != MQTT5 {
		return nil, ErrAuthWrongVersion
	}

	pkt := &AuthPacket{ReasonCode: ReasonSuccess}
	if fh.RemainingLength == 0 {
		return pkt, nil
	}

	codeByte, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	rc, err := ParseAuthReasonCode(codeByte)
	if err != nil {
		return nil, err
	}
	pkt.ReasonCode = rc

	if fh.RemainingLength > 1 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(authAllowedProperties, "auth"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	return pkt, nil
}

// Encode renders the AUTH packet. AUTH is only valid for MQTT 5.
func (pkt *AuthPacket) Encode() ([]byte, error) {
	compact := pkt.ReasonCode == ReasonSuccess && pkt.Properties.bodyLength() == 0 && !pkt.Properties.Present
	var body uint32
	if !compact {
		body = 1 + pkt.Properties.EncodedSize()
	}

	fh := &FixedHeader{Type: AUTH, RemainingLength: body}
	w := NewWriter(int(body) + 2)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}
	if !compact {
		w.WriteU8(byte(pkt.ReasonCode))
		if err := pkt.Properties.Encode(w); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}
