package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttendanceStatus(t *testing.T) {
	cases := map[string]AttendanceStatus{
		"present":   StatusPresent,
		"LATE":      StatusLate,
		" Absent ":  StatusAbsent,
		"jUsTiFiEd": StatusJustified,
	}
	for raw, want := range cases {
		got, err := ParseAttendanceStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseAttendanceStatus("excused")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAttendanceStatusJSONIsCaseInsensitive(t *testing.T) {
	var req SaveAttendanceRequest
	err := json.Unmarshal([]byte(`{"records":{"1":"present","2":"ABSENT"}}`), &req)
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, req.Records["1"])
	assert.Equal(t, StatusAbsent, req.Records["2"])

	err = json.Unmarshal([]byte(`{"records":{"1":"sick"}}`), &req)
	assert.Error(t, err)
}

func TestAttendanceStatusInitialAndValid(t *testing.T) {
	assert.Equal(t, "J", StatusJustified.Initial())
	assert.Equal(t, "", AttendanceStatus("").Initial())
	assert.True(t, StatusLate.Valid())
	assert.False(t, AttendanceStatus("late").Valid())
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2024-02-29"))
	assert.False(t, IsISODate("2023-02-29"))
	assert.False(t, IsISODate("2024-1-5"))
	assert.False(t, IsISODate(""))
}
