package wire

// This file is the closed-variant-set half of spec.md §3 ("Reason / return
// codes"): every numeric code the wire can carry is validated into one of
// these types at decode time, so an out-of-range code never survives
// construction (spec.md §9, "Closed variant sets over numeric codes"). The
// exception is CONNACK: its v5 reason code and v3/v4 return code are passed
// through by DecodeConnackPacket without validation.

// ReasonCode is the MQTT 5 one-byte status shared by CONNACK, PUBACK,
// PUBREC, PUBREL, PUBCOMP, SUBACK (reason form), UNSUBACK, DISCONNECT and
// AUTH. Not every value is legal in every family; family-specific
// validation lives alongside each packet's decode function.
type ReasonCode byte

const (
	ReasonSuccess                              ReasonCode = 0x00
	ReasonNormalDisconnection                  ReasonCode = 0x00
	ReasonGrantedQoS0                          ReasonCode = 0x00
	ReasonGrantedQoS1                          ReasonCode = 0x01
	ReasonGrantedQoS2                          ReasonCode = 0x02
	ReasonDisconnectWithWillMessage            ReasonCode = 0x04
	ReasonNoMatchingSubscribers                ReasonCode = 0x10
	ReasonNoSubscriptionExisted                ReasonCode = 0x11
	ReasonContinueAuthentication               ReasonCode = 0x18
	ReasonReAuthenticate                       ReasonCode = 0x19
	ReasonUnspecifiedError                     ReasonCode = 0x80
	ReasonMalformedPacket                      ReasonCode = 0x81
	ReasonProtocolError                        ReasonCode = 0x82
	ReasonImplementationSpecificError          ReasonCode = 0x83
	ReasonUnsupportedProtocolVersion           ReasonCode = 0x84
	ReasonClientIdentifierNotValid             ReasonCode = 0x85
	ReasonBadUsernameOrPassword                ReasonCode = 0x86
	ReasonNotAuthorized                        ReasonCode = 0x87
	ReasonServerUnavailable                    ReasonCode = 0x88
	ReasonServerBusy                           ReasonCode = 0x89
	ReasonBanned                               ReasonCode = 0x8A
	ReasonServerShuttingDown                   ReasonCode = 0x8B
	ReasonBadAuthenticationMethod              ReasonCode = 0x8C
	ReasonKeepAliveTimeout                     ReasonCode = 0x8D
	ReasonSessionTakenOver                     ReasonCode = 0x8E
	ReasonTopicFilterInvalid                   ReasonCode = 0x8F
	ReasonTopicNameInvalid                     ReasonCode = 0x90
	ReasonPacketIdentifierInUse                ReasonCode = 0x91
	ReasonPacketIdentifierNotFound              ReasonCode = 0x92
	ReasonReceiveMaximumExceeded                ReasonCode = 0x93
	ReasonTopicAliasInvalid                     ReasonCode = 0x94
	ReasonPacketTooLarge                        ReasonCode = 0x95
	ReasonMessageRateTooHigh                    ReasonCode = 0x96
	ReasonQuotaExceeded                         ReasonCode = 0x97
	ReasonAdministrativeAction                  ReasonCode = 0x98
	ReasonPayloadFormatInvalid                  ReasonCode = 0x99
	ReasonRetainNotSupported                    ReasonCode = 0x9A
	ReasonQoSNotSupported                       ReasonCode = 0x9B
	ReasonUseAnotherServer                      ReasonCode = 0x9C
	ReasonServerMoved                           ReasonCode = 0x9D
	ReasonSharedSubscriptionsNotSupported       ReasonCode = 0x9E
	ReasonConnectionRateExceeded                ReasonCode = 0x9F
	ReasonMaximumConnectTime                    ReasonCode = 0xA0
	ReasonSubscriptionIdentifiersNotSupported   ReasonCode = 0xA1
	ReasonWildcardSubscriptionsNotSupported     ReasonCode = 0xA2
)

var reasonCodeNames = map[ReasonCode]string{
	ReasonSuccess:                            "Success",
	ReasonGrantedQoS1:                        "GrantedQoS1",
	ReasonGrantedQoS2:                        "GrantedQoS2",
	ReasonDisconnectWithWillMessage:          "DisconnectWithWillMessage",
	ReasonNoMatchingSubscribers:              "NoMatchingSubscribers",
	ReasonNoSubscriptionExisted:              "NoSubscriptionExisted",
	ReasonContinueAuthentication:             "ContinueAuthentication",
	ReasonReAuthenticate:                     "ReAuthenticate",
	ReasonUnspecifiedError:                   "UnspecifiedError",
	ReasonMalformedPacket:                    "MalformedPacket",
	ReasonProtocolError:                      "ProtocolError",
	ReasonImplementationSpecificError:        "ImplementationSpecificError",
	ReasonUnsupportedProtocolVersion:         "UnsupportedProtocolVersion",
	ReasonClientIdentifierNotValid:           "ClientIdentifierNotValid",
	ReasonBadUsernameOrPassword:              "BadUsernameOrPassword",
	ReasonNotAuthorized:                      "NotAuthorized",
	ReasonServerUnavailable:                  "ServerUnavailable",
	ReasonServerBusy:                         "ServerBusy",
	ReasonBanned:                             "Banned",
	ReasonServerShuttingDown:                 "ServerShuttingDown",
	ReasonBadAuthenticationMethod:            "BadAuthenticationMethod",
	ReasonKeepAliveTimeout:                   "KeepAliveTimeout",
	ReasonSessionTakenOver:                   "SessionTakenOver",
	ReasonTopicFilterInvalid:                 "TopicFilterInvalid",
	ReasonTopicNameInvalid:                   "TopicNameInvalid",
	ReasonPacketIdentifierInUse:              "PacketIdentifierInUse",
	ReasonPacketIdentifierNotFound:           "PacketIdentifierNotFound",
	ReasonReceiveMaximumExceeded:             "ReceiveMaximumExceeded",
	ReasonTopicAliasInvalid:                  "TopicAliasInvalid",
	ReasonPacketTooLarge:                     "PacketTooLarge",
	ReasonMessageRateTooHigh:                 "MessageRateTooHigh",
	ReasonQuotaExceeded:                      "QuotaExceeded",
	ReasonAdministrativeAction:               "AdministrativeAction",
	ReasonPayloadFormatInvalid:               "PayloadFormatInvalid",
	ReasonRetainNotSupported:                 "RetainNotSupported",
	ReasonQoSNotSupported:                    "QoSNotSupported",
	ReasonUseAnotherServer:                   "UseAnotherServer",
	ReasonServerMoved:                        "ServerMoved",
	ReasonSharedSubscriptionsNotSupported:    "SharedSubscriptionsNotSupported",
	ReasonConnectionRateExceeded:             "ConnectionRateExceeded",
	ReasonMaximumConnectTime:                 "MaximumConnectTime",
	ReasonSubscriptionIdentifiersNotSupported: "SubscriptionIdentifiersNotSupported",
	ReasonWildcardSubscriptionsNotSupported:   "WildcardSubscriptionsNotSupported",
}

func (rc ReasonCode) String() string {
	if name, ok := reasonCodeNames[rc]; ok {
		return name
	}
	return "UNKNOWN"
}

var connackReasonCodes = map[ReasonCode]bool{
	ReasonSuccess: true, ReasonUnspecifiedError: true, ReasonMalformedPacket: true,
	ReasonProtocolError: true, ReasonImplementationSpecificError: true,
	ReasonUnsupportedProtocolVersion: true, ReasonClientIdentifierNotValid: true,
	ReasonBadUsernameOrPassword: true, ReasonNotAuthorized: true, ReasonServerUnavailable: true,
	ReasonServerBusy: true, ReasonBanned: true, ReasonBadAuthenticationMethod: true,
	ReasonTopicNameInvalid: true, ReasonPacketTooLarge: true, ReasonQuotaExceeded: true,
	ReasonPayloadFormatInvalid: true, ReasonRetainNotSupported: true, ReasonQoSNotSupported: true,
	ReasonUseAnotherServer: true, ReasonServerMoved: true, ReasonConnectionRateExceeded: true,
}

// ParseConnackReasonCode validates b against the reason codes the CONNACK
// spec table defines. DecodeConnackPacket does not call this: a broker's
// reason byte is passed through uninterpreted (spec.md §4.6.2), so this is
// only useful for callers that want to flag an unrecognized code for
// display/diagnostics rather than reject it.
func ParseConnackReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !connackReasonCodes[rc] {
		return 0, newInvalidCode("connack", b)
	}
	return rc, nil
}

var pubackPubrecReasonCodes = map[ReasonCode]bool{
	ReasonSuccess: true, ReasonNoMatchingSubscribers: true, ReasonUnspecifiedError: true,
	ReasonImplementationSpecificError: true, ReasonNotAuthorized: true, ReasonTopicNameInvalid: true,
	ReasonPacketIdentifierInUse: true, ReasonQuotaExceeded: true, ReasonPayloadFormatInvalid: true,
}

// ParsePubackReasonCode validates b as a v5 PUBACK/PUBREC reason code
// (nine legal values, per spec.md §3).
func ParsePubackReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !pubackPubrecReasonCodes[rc] {
		return 0, newInvalidCode("puback/pubrec", b)
	}
	return rc, nil
}

var pubrelPubcompReasonCodes = map[ReasonCode]bool{
	ReasonSuccess: true, ReasonPacketIdentifierNotFound: true,
}

// ParsePubrelReasonCode validates b as a v5 PUBREL/PUBCOMP reason code
// (two legal values).
func ParsePubrelReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !pubrelPubcompReasonCodes[rc] {
		return 0, newInvalidCode("pubrel/pubcomp", b)
	}
	return rc, nil
}

var subackReasonCodes = map[ReasonCode]bool{
	ReasonGrantedQoS0: true, ReasonGrantedQoS1: true, ReasonGrantedQoS2: true,
	ReasonUnspecifiedError: true, ReasonImplementationSpecificError: true, ReasonNotAuthorized: true,
	ReasonTopicFilterInvalid: true, ReasonPacketIdentifierInUse: true, ReasonQuotaExceeded: true,
	ReasonSharedSubscriptionsNotSupported: true, ReasonSubscriptionIdentifiersNotSupported: true,
	ReasonWildcardSubscriptionsNotSupported: true,
}

// ParseSubackReasonCode validates b as a v5 SUBACK grant (twelve legal
// values).
func ParseSubackReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !subackReasonCodes[rc] {
		return 0, newInvalidCode("suback", b)
	}
	return rc, nil
}

var unsubackReasonCodes = map[ReasonCode]bool{
	ReasonSuccess: true, ReasonNoSubscriptionExisted: true, ReasonUnspecifiedError: true,
	ReasonImplementationSpecificError: true, ReasonNotAuthorized: true, ReasonTopicFilterInvalid: true,
	ReasonPacketIdentifierInUse: true,
}

// ParseUnsubackReasonCode validates b as a v5 UNSUBACK reason code (seven
// legal values).
func ParseUnsubackReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !unsubackReasonCodes[rc] {
		return 0, newInvalidCode("unsuback", b)
	}
	return rc, nil
}

var disconnectReasonCodes = map[ReasonCode]bool{
	ReasonNormalDisconnection: true, ReasonDisconnectWithWillMessage: true,
	ReasonUnspecifiedError: true, ReasonMalformedPacket: true, ReasonProtocolError: true,
	ReasonImplementationSpecificError: true, ReasonNotAuthorized: true, ReasonServerBusy: true,
	ReasonServerShuttingDown: true, ReasonKeepAliveTimeout: true, ReasonSessionTakenOver: true,
	ReasonTopicFilterInvalid: true, ReasonTopicNameInvalid: true, ReasonReceiveMaximumExceeded: true,
	ReasonTopicAliasInvalid: true, ReasonPacketTooLarge: true, ReasonMessageRateTooHigh: true,
	ReasonQuotaExceeded: true, ReasonAdministrativeAction: true, ReasonPayloadFormatInvalid: true,
	ReasonRetainNotSupported: true, ReasonQoSNotSupported: true, ReasonUseAnotherServer: true,
	ReasonServerMoved: true, ReasonSharedSubscriptionsNotSupported: true,
	ReasonConnectionRateExceeded: true, ReasonMaximumConnectTime: true,
	ReasonSubscriptionIdentifiersNotSupported: true, ReasonWildcardSubscriptionsNotSupported: true,
}

// ParseDisconnectReasonCode validates b as a v5 DISCONNECT reason code
// (twenty-nine legal values).
func ParseDisconnectReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !disconnectReasonCodes[rc] {
		return 0, newInvalidCode("disconnect", b)
	}
	return rc, nil
}

var authReasonCodes = map[ReasonCode]bool{
	ReasonSuccess: true, ReasonContinueAuthentication: true, ReasonReAuthenticate: true,
}

// ParseAuthReasonCode validates b as a v5 AUTH reason code (three legal
// values).
func ParseAuthReasonCode(b byte) (ReasonCode, error) {
	rc := ReasonCode(b)
	if !authReasonCodes[rc] {
		return 0, newInvalidCode("auth", b)
	}
	return rc, nil
}

// ConnectReturnCode is the v3/v3.1.1 CONNACK return code: a small,
// uninterpreted integer per spec.md §4.6.2 ("passed through uninterpreted").
type ConnectReturnCode byte

const (
	ConnAccepted                     ConnectReturnCode = 0
	ConnRefusedProtocolVersion       ConnectReturnCode = 1
	ConnRefusedIdentifierRejected    ConnectReturnCode = 2
	ConnRefusedServerUnavailable     ConnectReturnCode = 3
	ConnRefusedBadUsernameOrPassword ConnectReturnCode = 4
	ConnRefusedNotAuthorized         ConnectReturnCode = 5
)

// Grant is the v3/v3.1.1 SUBACK per-topic result: the granted QoS, or 0x80
// for failure.
type Grant byte

const (
	GrantQoS0   Grant = 0x00
	GrantQoS1   Grant = 0x01
	GrantQoS2   Grant = 0x02
	GrantFailure Grant = 0x80
)

// ParseGrant validates b as a v3/v3.1.1 SUBACK grant.
func ParseGrant(b byte) (Grant, error) {
	switch Grant(b) {
	case GrantQoS0, GrantQoS1, GrantQoS2, GrantFailure:
		return Grant(b), nil
	default:
		return 0, newInvalidCode("suback grant", b)
	}
}
