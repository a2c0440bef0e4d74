package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{in: "09:00", hour: 9, minute: 0},
		{in: "00:00", hour: 0, minute: 0},
		{in: "23:59", hour: 23, minute: 59},
		{in: "14:30:45", hour: 14, minute: 30},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "14:30:99", wantErr: true},
		{in: "14:30:xx", wantErr: true},
		{in: "-1:00", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		hour, minute, err := ParseClockTime(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			assert.Equal(t, KindInvalidInput, kindOf(t, err), tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.hour, hour, tc.in)
		assert.Equal(t, tc.minute, minute, tc.in)
	}
}

func TestCombineDateTimeRoundTrip(t *testing.T) {
	date, err := ParseDate("2024-03-01")
	require.NoError(t, err)

	combined := CombineDateTime(date, 9, 15)
	assert.Equal(t, 9, combined.Hour())
	assert.Equal(t, 15, combined.Minute())
	assert.Equal(t, date.Year(), combined.Year())
	assert.Equal(t, time.UTC, combined.Location())
}

func TestDateOnlyStripsTime(t *testing.T) {
	instant := time.Date(2024, 3, 1, 17, 42, 9, 100, time.UTC)
	day := DateOnly(instant)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day)
}

func TestSlotKeyFor(t *testing.T) {
	date, _ := ParseDate("2024-03-01")
	assert.Equal(t, "c7|2024-03-01|09:05", SlotKeyFor("c7", date, 9, 5))
}
