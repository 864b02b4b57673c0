package wire

var connackAllowedProperties = map[PropertyID]bool{
	PropSessionExpiryInterval:           true,
	PropAssignedClientIdentifier:        true,
	PropServerKeepAlive:                 true,
	PropAuthenticationMethod:            true,
	PropAuthenticationData:              true,
	PropResponseInformation:             true,
	PropServerReference:                 true,
	PropReasonString:                    true,
	PropReceiveMaximum:                  true,
	PropTopicAliasMaximum:               true,
	PropMaximumQoS:                      true,
	PropRetainAvailable:                 true,
	PropUserProperty:                    true,
	PropMaximumPacketSize:               true,
	PropWildcardSubscriptionAvailable:   true,
	PropSubscriptionIdentifierAvailable: true,
	PropSharedSubscriptionAvailable:     true,
}

// ConnackPacket is the decoded CONNACK body, shared across all three
// protocol versions (spec.md §4.6.2). ReturnCode is populated for v3/v4,
// ReasonCode for v5.
type ConnackPacket struct {
	Version        ProtocolVersion
	SessionPresent bool
	ReturnCode     ConnectReturnCode
	ReasonCode     ReasonCode
	Properties     Properties
}

// DecodeConnackPacket decodes a CONNACK body.
func DecodeConnackPacket(r *Reader, version ProtocolVersion) (*ConnackPacket, error) {
	flags, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if flags&0xFE != 0 {
		return nil, NewMalformedPacketError(ErrMalformedPacket, "reserved CONNACK flag bits set")
	}

	codeByte, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	pkt := &ConnackPacket{Version: version, SessionPresent: flags&0x01 != 0}

	if version == MQTT5 {
		// Reason code is passed through uninterpreted: a broker may return
		// any code it likes here, and rejecting an unrecognized one would
		// make this codec reject otherwise-well-formed CONNACKs from a
		// broker implementing a later spec revision (spec.md §4.6.2).
		pkt.ReasonCode = ReasonCode(codeByte)
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(connackAllowedProperties, "connack"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	} else {
		pkt.ReturnCode = ConnectReturnCode(codeByte)
	}

	return pkt, nil
}

// Encode renders the CONNACK packet for pkt.Version.
func (pkt *ConnackPacket) Encode() ([]byte, error) {
	var body uint32 = 2
	if pkt.Version == MQTT5 {
		body += pkt.Properties.EncodedSize()
	}

	fh := &FixedHeader{Type: CONNACK, RemainingLength: body}
	w := NewWriter(int(body) + 2)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}

	var flags byte
	if pkt.SessionPresent {
		flags = 0x01
	}
	w.WriteU8(flags)

	if pkt.Version == MQTT5 {
		w.WriteU8(byte(pkt.ReasonCode))
		if err := pkt.Properties.Encode(w); err != nil {
			return nil, err
		}
	} else {
		w.WriteU8(byte(pkt.ReturnCode))
	}

	return w.Bytes(), nil
}
