package wire

import (
	"errors"
	"fmt"
)

var (
	// Variable byte integer / remaining length
	ErrVariableByteIntegerTooLarge  = errors.New("variable byte integer value exceeds maximum (268,435,455)")
	ErrMalformedVariableByteInteger = errors.New("malformed variable byte integer")
	ErrUnexpectedEOF                = errors.New("unexpected end of input")
	ErrBufferTooSmall               = errors.New("buffer too small")

	// Fixed header
	ErrInvalidType         = errors.New("invalid packet type")
	ErrInvalidFlags        = errors.New("invalid flags for packet type")
	ErrInvalidQoS          = errors.New("invalid QoS level")
	ErrInvalidReservedType = errors.New("reserved packet type (0) not allowed")

	// Properties
	ErrInvalidPropertyID   = errors.New("invalid property ID")
	ErrInvalidPropertyType = errors.New("invalid property type")
	ErrDuplicateProperty   = errors.New("duplicate property not allowed")
	ErrPropertyNotAllowed  = errors.New("property not allowed for this packet kind")

	// Packet-level
	ErrInvalidProtocolName    = errors.New("invalid protocol name")
	ErrInvalidProtocolVersion = errors.New("invalid protocol version")
	ErrBridgeModeUnsupported  = errors.New("bridge-mode protocol version bit not supported")
	ErrInvalidPacketID        = errors.New("invalid packet identifier")
	ErrMalformedPacket        = errors.New("malformed packet")
	ErrInvalidConnectFlags    = errors.New("invalid CONNECT flags: reserved bit must be 0")
	ErrWillFlagMismatch       = errors.New("will flag inconsistent with will QoS or will retain")
	ErrEmptyClientID          = errors.New("client identifier cannot be empty for this version/clean-session combination")
	ErrEmptyTopicName         = errors.New("topic name cannot be empty")
	ErrEmptySubscriptionList  = errors.New("SUBSCRIBE packet must contain at least one subscription")
	ErrEmptyUnsubscribeList   = errors.New("UNSUBSCRIBE packet must contain at least one topic filter")
	ErrMissingPacketID        = errors.New("missing packet identifier for QoS > 0")
	ErrInvalidRetainHandling  = errors.New("invalid retain-handling value")
	ErrExclusiveReasonCodes   = errors.New("at most one of the confirmation reason codes may be set")
	ErrReasonCodeMismatch     = errors.New("reason code does not match packet command")
	ErrVersionMismatch        = errors.New("packet not valid for this protocol version")
	ErrAuthWrongVersion       = errors.New("AUTH packet is only valid for MQTT 5")

	// UTF-8
	ErrInvalidUTF8           = errors.New("invalid UTF-8 encoding")
	ErrNullCharacter         = errors.New("null character (U+0000) not allowed in UTF-8 string")
	ErrSurrogateCodePoint    = errors.New("UTF-16 surrogate code points (U+D800 to U+DFFF) not allowed")
	ErrNonCharacterCodePoint = errors.New("non-character code points not allowed")
	ErrControlCharacter      = errors.New("control characters should be avoided")

	// Reader limit-stack
	ErrLimitUnderflow  = errors.New("read would exceed current length limit")
	ErrNoLimitToPop    = errors.New("no pushed limit to restore")
	ErrLimitStackEmpty = errors.New("limit stack is empty")
)

// InvalidCodeError reports an unrecognized reason/return/grant code. It
// always carries the offending numeric value so callers can log or relay it,
// per spec.md §7 ("errors carry the offending byte or reason value textually").
type InvalidCodeError struct {
	Kind string // e.g. "disconnect", "puback", "suback grant"
	Code byte
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid %s code %d", e.Kind, e.Code)
}

func newInvalidCode(kind string, code byte) error {
	return &InvalidCodeError{Kind: kind, Code: code}
}

// ProtocolError pairs a decode/encode failure with the v5 reason code a
// broker would use to report it back on the wire, mirroring the teacher's
// PacketError (encoding/errors.go) but renamed to avoid colliding with the
// packet-level "Packet" vocabulary used throughout this package.
type ProtocolError struct {
	Err        error
	ReasonCode ReasonCode
	Context    string
}

func (e *ProtocolError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Context)
	}
	return e.Err.Error()
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func NewMalformedPacketError(err error, context string) *ProtocolError {
	return &ProtocolError{Err: err, ReasonCode: ReasonMalformedPacket, Context: context}
}

func NewProtocolViolationError(err error, context string) *ProtocolError {
	return &ProtocolError{Err: err, ReasonCode: ReasonProtocolError, Context: context}
}

// ReasonCodeFor maps a decode error to the v5 reason code a broker should
// send back, falling back to UnspecifiedError for anything it doesn't
// recognize.
func ReasonCodeFor(err error) ReasonCode {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.ReasonCode
	}

	switch {
	case errors.Is(err, ErrMalformedPacket),
		errors.Is(err, ErrMalformedVariableByteInteger),
		errors.Is(err, ErrInvalidConnectFlags),
		errors.Is(err, ErrInvalidQoS):
		return ReasonMalformedPacket
	case errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidFlags),
		errors.Is(err, ErrInvalidReservedType),
		errors.Is(err, ErrWillFlagMismatch),
		errors.Is(err, ErrMissingPacketID),
		errors.Is(err, ErrEmptySubscriptionList),
		errors.Is(err, ErrEmptyUnsubscribeList):
		return ReasonProtocolError
	case errors.Is(err, ErrInvalidProtocolVersion):
		return ReasonUnsupportedProtocolVersion
	default:
		return ReasonUnspecifiedError
	}
}
