package wire

import "fmt"

// PropertyID is one of the twenty-seven MQTT 5 property identifiers.
type PropertyID byte

const (
	PropPayloadFormatIndicator          PropertyID = 0x01
	PropMessageExpiryInterval           PropertyID = 0x02
	PropContentType                     PropertyID = 0x03
	PropResponseTopic                   PropertyID = 0x08
	PropCorrelationData                 PropertyID = 0x09
	PropSubscriptionIdentifier          PropertyID = 0x0B
	PropSessionExpiryInterval           PropertyID = 0x11
	PropAssignedClientIdentifier        PropertyID = 0x12
	PropServerKeepAlive                 PropertyID = 0x13
	PropAuthenticationMethod            PropertyID = 0x15
	PropAuthenticationData              PropertyID = 0x16
	PropRequestProblemInformation       PropertyID = 0x17
	PropWillDelayInterval               PropertyID = 0x18
	PropRequestResponseInformation      PropertyID = 0x19
	PropResponseInformation             PropertyID = 0x1A
	PropServerReference                 PropertyID = 0x1C
	PropReasonString                    PropertyID = 0x1F
	PropReceiveMaximum                  PropertyID = 0x21
	PropTopicAliasMaximum               PropertyID = 0x22
	PropTopicAlias                      PropertyID = 0x23
	PropMaximumQoS                      PropertyID = 0x24
	PropRetainAvailable                 PropertyID = 0x25
	PropUserProperty                    PropertyID = 0x26
	PropMaximumPacketSize               PropertyID = 0x27
	PropWildcardSubscriptionAvailable   PropertyID = 0x28
	PropSubscriptionIdentifierAvailable PropertyID = 0x29
	PropSharedSubscriptionAvailable     PropertyID = 0x2A
)

// wireType is the canonical encoding drawn from spec.md §4.5's table.
type wireType byte

const (
	typeByte wireType = iota
	typeU16
	typeU32
	typeVarbyteInt
	typeUTF8String
	typeBinary
	typeUTF8Pair
)

var propertyWireType = map[PropertyID]wireType{
	PropPayloadFormatIndicator:          typeByte,
	PropRequestProblemInformation:       typeByte,
	PropRequestResponseInformation:      typeByte,
	PropMaximumQoS:                      typeByte,
	PropRetainAvailable:                 typeByte,
	PropWildcardSubscriptionAvailable:   typeByte,
	PropSubscriptionIdentifierAvailable: typeByte,
	PropSharedSubscriptionAvailable:     typeByte,

	PropServerKeepAlive:    typeU16,
	PropReceiveMaximum:     typeU16,
	PropTopicAliasMaximum:  typeU16,
	PropTopicAlias:         typeU16,

	PropMessageExpiryInterval: typeU32,
	PropSessionExpiryInterval: typeU32,
	PropWillDelayInterval:     typeU32,
	PropMaximumPacketSize:     typeU32,

	PropSubscriptionIdentifier: typeVarbyteInt,

	PropContentType:              typeUTF8String,
	PropResponseTopic:            typeUTF8String,
	PropAssignedClientIdentifier: typeUTF8String,
	PropAuthenticationMethod:     typeUTF8String,
	PropResponseInformation:      typeUTF8String,
	PropServerReference:          typeUTF8String,
	PropReasonString:             typeUTF8String,

	PropCorrelationData:      typeBinary,
	PropAuthenticationData:   typeBinary,

	PropUserProperty: typeUTF8Pair,
}

// repeatable identifiers are the two properties the spec allows to appear
// more than once in a single block: User Property accumulates into a
// key->values map, Subscription Identifier accumulates into an ordered
// list. Any other repeated identifier is a decode error (spec.md §4.5
// resolves the source's TODO on this point — see DESIGN.md).
func repeatable(id PropertyID) bool {
	return id == PropUserProperty || id == PropSubscriptionIdentifier
}

// UserProperties is an ordered multi-map from key to its list of values,
// preserving wire order of insertion within a key (spec.md §3).
type UserProperties struct {
	keys   []string
	values map[string][]string
}

func newUserProperties() *UserProperties {
	return &UserProperties{values: make(map[string][]string)}
}

func (u *UserProperties) add(k, v string) {
	if _, ok := u.values[k]; !ok {
		u.keys = append(u.keys, k)
	}
	u.values[k] = append(u.values[k], v)
}

// Keys returns the set of keys in first-insertion order.
func (u *UserProperties) Keys() []string {
	if u == nil {
		return nil
	}
	return u.keys
}

// Values returns the ordered list of values recorded under key.
func (u *UserProperties) Values(key string) []string {
	if u == nil {
		return nil
	}
	return u.values[key]
}

func (u *UserProperties) isEmpty() bool { return u == nil || len(u.keys) == 0 }

// Property is one decoded (identifier, typed value) pair, used for
// identifiers that may appear at most once.
type Property struct {
	ID    PropertyID
	Value any
}

// Properties is the decoded form of one MQTT 5 property block. Present
// distinguishes "no properties section on the wire" (v3/v4, or a v5 block
// whose length prefix was never written) from "an empty properties section
// was present" (a single 0x00 length byte) — resolving the Open Question
// in spec.md §9 about ConnackProperties::is_default without an extra
// pointer indirection.
type Properties struct {
	Present        bool
	Items          []Property
	User           *UserProperties
	SubscriptionID []uint32
}

// Get returns the first non-repeatable property with the given id, if any.
func (p *Properties) Get(id PropertyID) (Property, bool) {
	if p == nil {
		return Property{}, false
	}
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Property{}, false
}

// DecodeProperties reads a property block: a varbyte length prefix
// followed by that many bytes of (id, value) pairs. The reader's current
// limit is temporarily narrowed to the block length via PushLimit/PopLimit
// so that a malformed property cannot read into whatever follows.
func DecodeProperties(r *Reader) (Properties, error) {
	length, err := r.ReadVarbyteInt()
	if err != nil {
		return Properties{}, err
	}

	props := Properties{Present: true}
	if length == 0 {
		return props, nil
	}

	if err := r.PushLimit(length); err != nil {
		return Properties{}, err
	}
	defer r.PopLimit()

	seen := make(map[PropertyID]bool)
	for r.HasMore() {
		idByte, err := r.ReadU8()
		if err != nil {
			return Properties{}, err
		}
		id := PropertyID(idByte)
		wt, ok := propertyWireType[id]
		if !ok {
			return Properties{}, fmt.Errorf("%w: %d", ErrInvalidPropertyID, idByte)
		}

		if seen[id] && !repeatable(id) {
			return Properties{}, fmt.Errorf("%w: id %d", ErrDuplicateProperty, idByte)
		}
		seen[id] = true

		switch id {
		case PropUserProperty:
			k, err := r.ReadUTF8String()
			if err != nil {
				return Properties{}, err
			}
			v, err := r.ReadUTF8String()
			if err != nil {
				return Properties{}, err
			}
			if props.User == nil {
				props.User = newUserProperties()
			}
			props.User.add(k, v)
			continue
		case PropSubscriptionIdentifier:
			v, err := r.ReadVarbyteInt()
			if err != nil {
				return Properties{}, err
			}
			props.SubscriptionID = append(props.SubscriptionID, v)
			continue
		}

		val, err := decodePropertyValue(r, wt)
		if err != nil {
			return Properties{}, err
		}
		props.Items = append(props.Items, Property{ID: id, Value: val})
	}

	return props, nil
}

func decodePropertyValue(r *Reader, wt wireType) (any, error) {
	switch wt {
	case typeByte:
		return r.ReadU8()
	case typeU16:
		return r.ReadU16()
	case typeU32:
		return r.ReadU32()
	case typeVarbyteInt:
		return r.ReadVarbyteInt()
	case typeUTF8String:
		return r.ReadUTF8String()
	case typeBinary:
		return r.ReadBinary()
	default:
		return nil, ErrInvalidPropertyType
	}
}

// ValidateAllowed fails if the block contains any identifier outside the
// allowed set — the per-packet `from_properties` filter of spec.md §4.5.
func (p *Properties) ValidateAllowed(allowed map[PropertyID]bool, kind string) error {
	if p == nil {
		return nil
	}
	for _, it := range p.Items {
		if !allowed[it.ID] {
			return fmt.Errorf("%w: id 0x%02X not legal in %s properties", ErrPropertyNotAllowed, byte(it.ID), kind)
		}
	}
	if len(p.SubscriptionID) > 0 && !allowed[PropSubscriptionIdentifier] {
		return fmt.Errorf("%w: subscription identifier not legal in %s properties", ErrPropertyNotAllowed, kind)
	}
	if !p.User.isEmpty() && !allowed[PropUserProperty] {
		return fmt.Errorf("%w: user property not legal in %s properties", ErrPropertyNotAllowed, kind)
	}
	return nil
}

// bodyLength computes the byte length of the property block body (not
// including its own varbyte length prefix), used both to size the Writer
// up front and to tell remaining-length accounting elsewhere how many
// bytes the block occupies on the wire.
func (p *Properties) bodyLength() uint32 {
	if p == nil {
		return 0
	}
	var n uint32
	for _, it := range p.Items {
		n += 1 + propertyValueLength(it.ID, it.Value)
	}
	for _, sid := range p.SubscriptionID {
		n += 1 + uint32(SizeVariableByteInteger(sid))
	}
	for _, k := range p.User.Keys() {
		for _, v := range p.User.Values(k) {
			n += 1 + 2 + uint32(len(k)) + 2 + uint32(len(v))
		}
	}
	return n
}

func propertyValueLength(id PropertyID, value any) uint32 {
	switch propertyWireType[id] {
	case typeByte:
		return 1
	case typeU16:
		return 2
	case typeU32:
		return 4
	case typeVarbyteInt:
		return uint32(SizeVariableByteInteger(value.(uint32)))
	case typeUTF8String:
		return 2 + uint32(len(value.(string)))
	case typeBinary:
		return 2 + uint32(len(value.([]byte)))
	default:
		return 0
	}
}

// EncodedSize returns the total on-wire size of the property block
// including its own length prefix — 1 byte for an absent-or-empty block,
// per spec.md §4.5's "empty block convention".
func (p *Properties) EncodedSize() uint32 {
	body := p.bodyLength()
	return uint32(SizeVariableByteInteger(body)) + body
}

// Encode renders the property block (length prefix + body) to w. Before
// MQTT 5 no property block is written at all; callers for v3/v4 packets
// must not call Encode.
func (p *Properties) Encode(w *Writer) error {
	body := NewWriter(int(p.bodyLength()))
	for _, it := range p.Items {
		body.WriteU8(byte(it.ID))
		if err := encodePropertyValue(body, it.ID, it.Value); err != nil {
			return err
		}
	}
	for _, sid := range p.SubscriptionID {
		body.WriteU8(byte(PropSubscriptionIdentifier))
		if err := body.WriteVarbyteInt(sid); err != nil {
			return err
		}
	}
	for _, k := range p.User.Keys() {
		for _, v := range p.User.Values(k) {
			body.WriteU8(byte(PropUserProperty))
			body.WriteUTF8String(k)
			body.WriteUTF8String(v)
		}
	}
	return w.WriteSized(body.Bytes())
}

func encodePropertyValue(w *Writer, id PropertyID, value any) error {
	switch propertyWireType[id] {
	case typeByte:
		w.WriteU8(value.(byte))
	case typeU16:
		w.WriteU16(value.(uint16))
	case typeU32:
		w.WriteU32(value.(uint32))
	case typeVarbyteInt:
		return w.WriteVarbyteInt(value.(uint32))
	case typeUTF8String:
		w.WriteUTF8String(value.(string))
	case typeBinary:
		w.WriteBinary(value.([]byte))
	default:
		return ErrInvalidPropertyType
	}
	return nil
}
