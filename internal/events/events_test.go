package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomNames(t *testing.T) {
	chatID := uuid.MustParse("4f6b2d1e-8e8a-4f5e-9c3d-0a1b2c3d4e5f")

	assert.Equal(t, "chat:4f6b2d1e-8e8a-4f5e-9c3d-0a1b2c3d4e5f", ChatRoom(chatID))
	assert.Equal(t, "user:42", UserRoom("42"))
	assert.Equal(t, "vendor:42", VendorRoom("42"))
}

func TestPersonalRoom_KindSelectsChannel(t *testing.T) {
	assert.Equal(t, VendorRoom("7"), PersonalRoom("Vendor", "7"))
	assert.Equal(t, UserRoom("7"), PersonalRoom("User", "7"))
}

func TestEnvelope_RoundTrip(t *testing.T) {
	raw, err := Encode(EventUnreadUpdate, int64(3))
	require.NoError(t, err)

	env, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, EventUnreadUpdate, env.Event)
	assert.JSONEq(t, "3", string(env.Data))
}

func TestDecode_RejectsMalformedFrame(t *testing.T) {
	_, err := Decode([]byte(`{"event":`))
	assert.Error(t, err)
}

func TestDecode_MissingDataYieldsEmptyPayload(t *testing.T) {
	env, err := Decode([]byte(`{"event":"markSeen"}`))
	require.NoError(t, err)
	assert.Equal(t, EventMarkSeen, env.Event)
	assert.Nil(t, env.Data)
}
