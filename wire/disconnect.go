package wire

var disconnectAllowedProperties = map[PropertyID]bool{
	PropSessionExpiryInterval: true,
	PropServerReference:       true,
	PropReasonString:          true,
	PropUserProperty:          true,
}

// DisconnectPacket is the decoded DISCONNECT body. Before MQTT 5 it is
// always empty (spec.md §4.6.8).
type DisconnectPacket struct {
	Version    ProtocolVersion
	ReasonCode ReasonCode
	Properties Properties
}

// DecodeDisconnectPacket decodes a DISCONNECT body.
func DecodeDisconnectPacket(r *Reader, fh *FixedHeader, version ProtocolVersion) (*DisconnectPacket, error) {
	pkt := &DisconnectPacket{Version: version, ReasonCode: ReasonNormalDisconnection}

	if version != MQTT5 {
		if fh.RemainingLength != 0 {
			return nil, NewMalformedPacketError(ErrMalformedPacket, "DISCONNECT must have zero remaining length before MQTT 5")
		}
		return pkt, nil
	}

	if fh.RemainingLength == 0 {
		return pkt, nil
	}

	codeByte, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	rc, err := ParseDisconnectReasonCode(codeByte)
	if err != nil {
		return nil, err
	}
	pkt.ReasonCode = rc

	if fh.RemainingLength > 1 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(disconnectAllowedProperties, "disconnect"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	return pkt, nil
}

// Encode renders the DISCONNECT packet for pkt.Version.
func (pkt *DisconnectPacket) Encode() ([]byte, error) {
	if pkt.Version != MQTT5 {
		fh := &FixedHeader{Type: DISCONNECT, RemainingLength: 0}
		w := NewWriter(2)
		if err := fh.Encode(w); err != nil {
			return nil, err
		}
		return w.Bytes(), nil
	}

	compact := pkt.ReasonCode == ReasonNormalDisconnection && pkt.Properties.bodyLength() == 0 && !pkt.Properties.Present
	var body uint32
	if !compact {
		body = 1 + pkt.Properties.EncodedSize()
	}

	fh := &FixedHeader{Type: DISCONNECT, RemainingLength: body}
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
