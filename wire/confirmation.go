package wire

var confirmationAllowedProperties = map[PropertyID]bool{
	PropReasonString: true,
	PropUserProperty: true,
}

// ConfirmationPacket is the shared shape of PUBACK, PUBREC, PUBREL and
// PUBCOMP (spec.md §4.6.4 and §9's "Shared Confirmation shape" Open
// Question resolution): one struct, two disjoint optional reason-code
// fields, exactly one of which may be set and it must match Cmd.
type ConfirmationPacket struct {
	Cmd        PacketType // PUBACK, PUBREC, PUBREL or PUBCOMP
	Version    ProtocolVersion
	MessageID  uint16
	PubCode    *ReasonCode // set only for PUBACK/PUBREC
	PubrelCode *ReasonCode // set only for PUBREL/PUBCOMP
	Properties Properties

	// ReasonByteOnWire records whether a decoded packet carried an
	// explicit reason byte (remaining length >= 3) rather than the
	// implied-Success compact form (remaining length 2). Both forms
	// populate PubCode/PubrelCode identically, so this is the only
	// signal Encode has to avoid collapsing an explicit length-3
	// Success byte back into the compact form (spec.md §8).
	ReasonByteOnWire bool
}

func isPubrelFamily(cmd PacketType) bool { return cmd == PUBREL || cmd == PUBCOMP }

// DecodeConfirmationPacket decodes a PUBACK/PUBREC/PUBREL/PUBCOMP body.
func DecodeConfirmationPacket(r *Reader, fh *FixedHeader, version ProtocolVersion) (*ConfirmationPacket, error) {
	id, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	pkt := &ConfirmationPacket{Cmd: fh.Type, Version: version, MessageID: id}

	if version != MQTT5 {
		return pkt, nil
	}

	// Compact form: remaining length 2 means an implied Success reason code
	// and no properties (spec.md §4.6.4, §8).
	if fh.RemainingLength == 2 {
		return setCompactSuccess(pkt), nil
	}

	codeByte, err := r.ReadU8()
	if err != nil {
		return nil, err
	}

	var rc ReasonCode
	if isPubrelFamily(fh.Type) {
		rc, err = ParsePubrelReasonCode(codeByte)
	} else {
		rc, err = ParsePubackReasonCode(codeByte)
	}
	if err != nil {
		return nil, err
	}
	setReasonCode(pkt, fh.Type, rc)
	pkt.ReasonByteOnWire = true

	if fh.RemainingLength > 3 {
		props, err := DecodeProperties(r)
		if err != nil {
			return nil, err
		}
		if err := props.ValidateAllowed(confirmationAllowedProperties, fh.Type.String()); err != nil {
			return nil, err
		}
		pkt.Properties = props
	}

	return pkt, nil
}

func setCompactSuccess(pkt *ConfirmationPacket) *ConfirmationPacket {
	setReasonCode(pkt, pkt.Cmd, ReasonSuccess)
	return pkt
}

func setReasonCode(pkt *ConfirmationPacket, cmd PacketType, rc ReasonCode) {
	if isPubrelFamily(cmd) {
		pkt.PubrelCode = &rc
	} else {
		pkt.PubCode = &rc
	}
}

// reasonCode returns the single active reason code (whichever field is
// set), defaulting to Success when neither is set (v3/v4 packets carry no
// reason code at all).
func (pkt *ConfirmationPacket) reasonCode() ReasonCode {
	if pkt.PubCode != nil {
		return *pkt.PubCode
	}
	if pkt.PubrelCode != nil {
		return *pkt.PubrelCode
	}
	return ReasonSuccess
}

// validate enforces "exactly one of the two reason-code fields may be set,
// and it must match Cmd" (spec.md §9).
func (pkt *ConfirmationPacket) validate() error {
	if pkt.PubCode != nil && pkt.PubrelCode != nil {
		return ErrExclusiveReasonCodes
	}
	if isPubrelFamily(pkt.Cmd) && pkt.PubCode != nil {
		return ErrReasonCodeMismatch
	}
	if !isPubrelFamily(pkt.Cmd) && pkt.PubrelCode != nil {
		return ErrReasonCodeMismatch
	}
	return nil
}

// Encode renders the PUBACK/PUBREC/PUBREL/PUBCOMP packet for pkt.Version.
func (pkt *ConfirmationPacket) Encode() ([]byte, error) {
	if err := pkt.validate(); err != nil {
		return nil, err
	}

	hasProperties := pkt.Properties.Present || pkt.Properties.bodyLength() > 0

	var body uint32 = 2
	compact := pkt.Version != MQTT5 || (!pkt.ReasonByteOnWire && pkt.reasonCode() == ReasonSuccess && !hasProperties)
	if pkt.Version == MQTT5 && !compact {
		body++ // reason byte
		if hasProperties {
			body += pkt.Properties.EncodedSize()
		}
	}

	fh := &FixedHeader{Type: pkt.Cmd, RemainingLength: body}
	w := NewWriter(int(body) + 2)
	if err := fh.Encode(w); err != nil {
		return nil, err
	}

	w.WriteU16(pkt.MessageID)
	if pkt.Version == MQTT5 && !compact {
		w.WriteU8(byte(pkt.reasonCode()))
		if hasProperties {
			if err := pkt.Properties.Encode(w); err != nil {
				return nil, err
			}
		}
	}

	return w.Bytes(), nil
}
