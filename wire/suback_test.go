package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuback_EncodeDecodeRoundTrip_V3Grants(t *testing.T) {
	pkt := &SubackPacket{Version: MQTT311, MessageID: 6, Grants: []Grant{GrantQoS0, GrantFailure}}
	data, err := pkt.Encode()
	require.NoError(t, err)

	d := NewDecoder(bytes.NewReader(data), nil)
	decoded, err := d.DecodePacket(MQTT311)
	require.NoError(t, err)

	got := decoded.(*SubackPacket)
	assert.Equal(t, []Grant{GrantQoS0, GrantFailure}, got.Grants)
}

func TestSuback_EncodeDecodeRoundTrip_V5ReasonCodes(t *testing.T) {
	pkt := &SubackPacket{Version: MQTT5, MessageID: 6, ReasonCodes: []ReasonCode{ReasonGrantedQoS1, ReasonNotAuthorized}}
	data, err := pkt.Encode()
	require.NoError(t, err)

	d := NewDecoder(bytes.NewReader(data), nil)
	decoded, err := d.DecodePacket(MQTT5)
	require.NoError(t, err)

	got := decoded.(*SubackPacket)
	assert.Equal(t, []ReasonCode{ReasonGrantedQoS1, ReasonNotAuthorized}, got.ReasonCodes)
}

func TestSuback_Encode_EmptyRejected(t *testing.T) {
	pkt := &SubackPacket{Version: MQTT311, MessageID: 1}
	_, err := pkt.Encode()
	assert.ErrorIs(t, err, ErrEmptySubscriptionList)
}

func TestDecodeSubackPacket_InvalidGrantByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 1, 0x03}))
	require.NoError(t, r.PushLimit(3))
	_, err := DecodeSubackPacket(r, MQTT311)
	var ice *InvalidCodeError
	assert.ErrorAs(t, err, &ice)
}
