package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParticipantID(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "bare string", data: `"u42"`, want: "u42"},
		{name: "object form", data: `{"id":"u42"}`, want: "u42"},
		{name: "empty object", data: `{}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeParticipantID(json.RawMessage(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeParticipantID_Empty(t *testing.T) {
	got, err := decodeParticipantID(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestUnmarshalPayload_MissingDataYieldsZeroValue(t *testing.T) {
	var p sendMessagePayload
	require.NoError(t, unmarshalPayload(nil, &p))
	assert.Equal(t, sendMessagePayload{}, p)
}
