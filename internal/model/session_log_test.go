package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionType(t *testing.T) {
	got, err := ParseSessionType("family")
	require.NoError(t, err)
	assert.Equal(t, SessionTypeFamily, got)

	_, err = ParseSessionType("teacher")
	assert.ErrorIs(t, err, ErrInvalidSessionType)
}

func TestCreateSessionLogRequestDefaultsEmptyType(t *testing.T) {
	var req CreateSessionLogRequest
	require.NoError(t, json.Unmarshal([]byte(`{"type":"","notes":"talked"}`), &req))
	assert.Equal(t, SessionType(""), req.Type)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"STUDENT","notes":"talked"}`), &req))
	assert.Equal(t, SessionTypeStudent, req.Type)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	require.NotNil(t, OptionalString("GAC"))
	assert.Equal(t, "GAC", *OptionalString("GAC"))
}
