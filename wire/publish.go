package wire

var publishAllowedProperties = map[PropertyID]bool{
	PropPayloadFormatIndicator: true,
	PropMessageExpiryInterval:  true,
	PropContentType:            true,
	PropResponseTopic:          true,
	PropCorrelationData:        true,
	PropSubscriptionIdentifier: true,
	PropTopicAlias:             true,
	PropUserProperty:           true,
}

// PublishPacket is the decoded PUBLISH body (spec.md §4.6.3). MessageID is
// meaningful only when QoS > 0.
type PublishPacket struct {
	Version    ProtocolVersion
	DUP        bool
	QoS        QoS
	Retain     bool
	Topic      string
	MessageID  uint16
	Properties Properties
	Payload    []byte
}

// DecodePublishPacket decodes a PUBLISH body given the DUP/QoS/Retain bits
// already extracted from the fixed header.
func DecodePublishPacket(r *Reader, fh *FixedHeader, version ProtocolVersion) (*PublishPacket, error) {
	topic, err := r.ReadUTF8String()
	if err != nil {
		return nil, err
	}
	if err := ValidateTopicName(topic); err != nil {
		return nil, err
	}

	pkt := &PublishPacket{
		Version: version,
		DUP:     fh.DUP,
		QoS:     fh.QoS,
		Retain:  fh.Retain,
		Topic:   topic,
	}

	if fh.QoS != QoS0 {
		id, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, ErrInvalidPacketID
		}
		pkt.MessageID = id
	}

	if version == MQTT5 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(publishAllowedProperties, "publish"); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	payload, err := r.ReadToLimit()
	if err != nil {
		return nil, err
	}
	pkt.Payload = payload

	return pkt, nil
}

// Encode renders the PUBLISH packet for pkt.Version.
func (pkt *PublishPacket) Encode() ([]byte, error) {
	if pkt.Topic == "" {
		return nil, ErrEmptyTopicName
	}
	if pkt.QoS != QoS0 && pkt.MessageID == 0 {
		return nil, ErrMissingPacketID
	}

	var body uint32 = 2 + uint32(len(pkt.Topic))
	if pkt.QoS != QoS0 {
		body += 2
	}
	if pkt.Version == MQTT5 {
		body += pkt.Properties.EncodedSize()
	}
	body += uint32(len(pkt.Payload))

	fh := &FixedHeader{Type: PUBLISH, RemainingLength: body, DUP: pkt.DUP, QoS: pkt.QoS, Retain: pkt.Retain}
	w := NewWriter(int(body) + 5)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}

	w.WriteUTF8String(pkt.Topic)
	if pkt.QoS != QoS0 {
		w.WriteU16(pkt.MessageID)
	}
	if pkt.Version == MQTT5 {
		if err := pkt.Properties.Encode(w); err != nil {
			return nil, err
		}
	}
	w.WriteRaw(pkt.Payload)

	return w.Bytes(), nil
}
