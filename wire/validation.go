package wire

import "strings"

// ValidateTopicName checks a PUBLISH topic: non-empty, valid UTF-8 (already
// checked by ReadUTF8String), and free of the wildcard characters that are
// only legal in a topic filter (spec.md §7, "Empty topic where a non-empty
// topic is required"). Ported from encoding/validation.go's ValidateTopicName.
func ValidateTopicName(topic string) error {
	if topic == "" {
		return ErrEmptyTopicName
	}
	if strings.ContainsAny(topic, "+#") {
		return NewMalformedPacketError(ErrMalformedPacket, "topic name must not contain wildcard characters")
	}
	return nil
}

// ValidateTopicFilter checks a SUBSCRIBE/UNSUBSCRIBE topic filter: non-empty
// and, if wildcards are present, that '+' occupies a whole level and '#' is
// the final character of the final level. Ported from encoding/validation.go's
// ValidateTopicFilter, restructured as a switch over topic levels instead of
// the teacher's if-chain.
func ValidateTopicFilter(filter string) error {
	if filter == "" {
		return ErrEmptyTopicName
	}
	levels := strings.Split(filter, "/")
	for i, level := range levels {
		switch {
		case level == "+":
			continue
		case level == "#":
			if i != len(levels)-1 {
				return NewMalformedPacketError(ErrMalformedPacket, "'#' wildcard must be the last topic level")
			}
		case strings.ContainsAny(level, "+#"):
			return NewMalformedPacketError(ErrMalformedPacket, "'+' and '#' wildcards must occupy an entire topic level")
		}
	}
	return nil
}

// ValidatePacketID rejects the reserved packet identifier 0, required for
// every packet that carries one (spec.md §7).
func ValidatePacketID(id uint16) error {
	if id == 0 {
		return ErrInvalidPacketID
	}
	return nil
}
