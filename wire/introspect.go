package wire

import "github.com/fxamacker/cbor/v2"

// introspection is a structural, version-agnostic view of a decoded packet
// for tooling: log-capture replay, fuzz-corpus minimization, or simply
// inspecting a packet in a debugger-friendly form. It deliberately flattens
// every packet kind into one shape rather than round-tripping the original
// Go type, since its purpose is inspection, not re-decoding (spec.md §6,
// "Optional external serialization... out of the core's critical path").
type introspection struct {
	Kind           string            `cbor:"kind"`
	MessageID      uint16            `cbor:"message_id,omitempty"`
	Topic          string            `cbor:"topic,omitempty"`
	ClientID       string            `cbor:"client_id,omitempty"`
	ReasonCode     byte              `cbor:"reason_code,omitempty"`
	PayloadLen     int               `cbor:"payload_len,omitempty"`
	UserProperties map[string]string `cbor:"user_properties,omitempty"`
}

func snapshot(p Packet) introspection {
	snap := introspection{Kind: p.Kind().String()}

	switch v := p.(type) {
	case *ConnectPacket:
		snap.ClientID = v.ClientID
	case *PublishPacket:
		snap.Topic = v.Topic
		snap.MessageID = v.MessageID
		snap.PayloadLen = len(v.Payload)
		snap.UserProperties = flattenUserProperties(v.Properties.User)
	case *ConfirmationPacket:
		snap.MessageID = v.MessageID
		snap.ReasonCode = byte(v.reasonCode())
	case *SubscribePacket:
		snap.MessageID = v.MessageID
	case *UnsubscribePacket:
		snap.MessageID = v.MessageID
	case *DisconnectPacket:
		snap.ReasonCode = byte(v.ReasonCode)
	}

	return snap
}

func flattenUserProperties(u *UserProperties) map[string]string {
	if u.isEmpty() {
		return nil
	}
	out := make(map[string]string, len(u.Keys()))
	for _, k := range u.Keys() {
		vals := u.Values(k)
		out[k] = vals[len(vals)-1]
	}
	return out
}

// DumpCBOR renders a structural, inspection-only snapshot of p as CBOR. It
// is not designed to be fed back through LoadCBOR into an equivalent Packet
// — see introspection's doc comment.
func DumpCBOR(p Packet) ([]byte, error) {
	return cbor.Marshal(snapshot(p))
}

// LoadCBOR decodes bytes previously produced by DumpCBOR back into the flat
// introspection view, for tooling that only needs to inspect a capture
// rather than re-encode it.
func LoadCBOR(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := cbor.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
