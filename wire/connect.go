package wire

// connectAllowedProperties is the legal subset of property identifiers for
// the top-level CONNECT properties block (spec.md §4.5).
var connectAllowedProperties = map[PropertyID]bool{
	PropSessionExpiryInterval:      true,
	PropAuthenticationMethod:       true,
	PropAuthenticationData:         true,
	PropRequestProblemInformation:  true,
	PropRequestResponseInformation: true,
	PropReceiveMaximum:             true,
	PropTopicAliasMaximum:          true,
	PropUserProperty:               true,
	PropMaximumPacketSize:          true,
}

// willAllowedProperties is the legal subset for the will-properties block
// nested inside CONNECT's payload (spec.md §4.5).
var willAllowedProperties = map[PropertyID]bool{
	PropPayloadFormatIndicator: true,
	PropMessageExpiryInterval:  true,
	PropContentType:            true,
	PropResponseTopic:          true,
	PropCorrelationData:        true,
	PropWillDelayInterval:      true,
	PropUserProperty:           true,
}

// ConnectFlags is the decoded CONNECT flags byte (spec.md §4.6.1).
type ConnectFlags struct {
	UserName     bool
	Password     bool
	WillRetain   bool
	WillQoS      QoS
	Will         bool
	CleanSession bool
}

// WillMessage is the optional last-will payload carried inside CONNECT.
type WillMessage struct {
	Properties Properties
	Topic      string
	Payload    []byte
}

// ConnectPacket is the decoded form of a CONNECT control packet across all
// three protocol versions (spec.md §4.6.1).
type ConnectPacket struct {
	Version         ProtocolVersion
	Flags           ConnectFlags
	KeepAlive       uint16
	Properties      Properties
	ClientID        string
	Will            *WillMessage
	UserName        string
	Password        string
}

// DecodeConnectPacket decodes a CONNECT packet body. fh.RemainingLength has
// already been pushed as the reader's current limit by the caller (C7).
func DecodeConnectPacket(r *Reader) (*ConnectPacket, error) {
	protoName, err := r.ReadUTF8String()
	if err != nil {
		return nil, err
	}

	versionByte, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	version, err := DecodeProtocolVersion(versionByte)
	if err != nil {
		return nil, err
	}
	if protoName != ProtocolName(version) {
		return nil, ErrInvalidProtocolName
	}

	flagsByte, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if flagsByte&0x01 != 0 {
		return nil, NewMalformedPacketError(ErrInvalidConnectFlags, "reserved connect flag bit set")
	}
	flags := ConnectFlags{
		UserName:     flagsByte&0x80 != 0,
		Password:     flagsByte&0x40 != 0,
		WillRetain:   flagsByte&0x20 != 0,
		WillQoS:      QoS((flagsByte & 0x18) >> 3),
		Will:         flagsByte&0x04 != 0,
		CleanSession: flagsByte&0x02 != 0,
	}
	if !flags.WillQoS.IsValid() {
		return nil, ErrInvalidQoS
	}
	if !flags.Will && (flags.WillRetain || flags.WillQoS != QoS0) {
		return nil, NewProtocolViolationError(ErrWillFlagMismatch, "will flag clear but will-retain/will-qos set")
	}

	keepAlive, err := r.ReadU16()
	if err != nil {
		return nil, err
	}

	pkt := &ConnectPacket{Version: version, Flags: flags, KeepAlive: keepAlive}

	if version == MQTT5 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(connectAllowedProperties, "connect"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	clientID, err := r.ReadUTF8String()
	if err != nil {
		return nil, err
	}
	if clientID == "" && !(version != MQTT31 && flags.CleanSession) {
		return nil, NewProtocolViolationError(ErrEmptyClientID, "empty client identifier requires v4/v5 clean session")
	}
	pkt.ClientID = clientID

	if flags.Will {
		will := &WillMessage{}
		if version == MQTT5 {
			props, err := DecodeProperties(r)
			if err != nil {
				return nil, err
			}
			if err := props.ValidateAllowed(willAllowedProperties, "will"); err != nil {
				return nil, err
			}
			will.Properties = props
		}
		topic, err := r.ReadUTF8String()
		if err != nil {
			return nil, err
		}
		will.Topic = topic
		payload, err := r.ReadBinary()
		if err != nil {
			return nil, err
		}
		will.Payload = payload
		pkt.Will = will
	}

	if flags.UserName {
		userName, err := r.ReadUTF8String()
		if err != nil {
			return nil, err
		}
		pkt.UserName = userName
	}
	if flags.Password {
		password, err := r.ReadUTF8String()
		if err != nil {
			return nil, err
		}
		pkt.Password = password
	}

	return pkt, nil
}

func (f ConnectFlags) byte() byte {
	var b byte
	if f.UserName {
		b |= 0x80
	}
	if f.Password {
		b |= 0x40
	}
	if f.WillRetain {
		b |= 0x20
	}
	b |= byte(f.WillQoS) << 3
	if f.Will {
		b |= 0x04
	}
	if f.CleanSession {
		b |= 0x02
	}
	return b
}

// Encode renders the CONNECT packet (fixed header + body) for pkt.Version.
func (pkt *ConnectPacket) Encode() ([]byte, error) {
	if pkt.ClientID == "" && !(pkt.Version != MQTT31 && pkt.Flags.CleanSession) {
		return nil, ErrEmptyClientID
	}
	if !pkt.Flags.Will && pkt.Will != nil {
		return nil, ErrWillFlagMismatch
	}
	if pkt.Flags.Will && pkt.Will == nil {
		return nil, ErrWillFlagMismatch
	}

	protoName := ProtocolName(pkt.Version)
	var body uint32 = 2 + uint32(len(protoName)) + 1 + 1 + 2
	if pkt.Version == MQTT5 {
		body += pkt.Properties.EncodedSize()
	}
	body += 2 + uint32(len(pkt.ClientID))
	if pkt.Flags.Will {
		if pkt.Version == MQTT5 {
			body += pkt.Will.Properties.EncodedSize()
		}
		body += 2 + uint32(len(pkt.Will.Topic))
		body += 2 + uint32(len(pkt.Will.Payload))
	}
	if pkt.Flags.UserName {
		body += 2 + uint32(len(pkt.UserName))
	}
	if pkt.Flags.Password {
		body += 2 + uint32(len(pkt.Password))
	}

	fh := &FixedHeader{Type: CONNECT, RemainingLength: body}
	w := NewWriter(int(body) + 5)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}

	w.WriteUTF8String(protoName)
	w.WriteU8(byte(pkt.Version))
	w.WriteU8(pkt.Flags.byte())
	w.WriteU16(pkt.KeepAlive)

	if pkt.Version == MQTT5 {
		if err := pkt.Properties.Encode(w); err != nil {
			return nil, err
		}
	}
	w.WriteUTF8String(pkt.ClientID)

	if pkt.Flags.Will {
		if pkt.Version == MQTT5 {
			if err := pkt.Will.Properties.Encode(w); err != nil {
				return nil, err
			}
		}
		w.WriteUTF8String(pkt.Will.Topic)
		w.WriteBinary(pkt.Will.Payload)
	}
	if pkt.Flags.UserName {
		w.WriteUTF8String(pkt.UserName)
	}
	if pkt.Flags.Password {
		w.WriteUTF8String(pkt.Password)
	}

	return w.Bytes(), nil
}
