package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "24h", input: "09:30", want: "09:30"},
		{name: "with seconds", input: "17:00:00", want: "17:00"},
		{name: "12h pm", input: "2:10 PM", want: "14:10"},
		{name: "12h am lowercase", input: "9:00 am", want: "09:00"},
		{name: "12h midnight", input: "12:00 AM", want: "00:00"},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:50").AddMinutes(25)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_OnAndDisplay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	at := TimeString("14:05").On(date, loc)

	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 5, at.Minute())
	assert.Equal(t, loc, at.Location())
	assert.Equal(t, "2:05 PM", TimeString("14:05").Display())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
