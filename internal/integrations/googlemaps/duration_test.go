package googlemaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationText(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"25 mins", 25},
		{"1 min", 1},
		{"1 hour 5 mins", 65},
		{"2 hours", 120},
		{"1 day 2 hours", 1560},
		{"3 Hours 1 Min", 181},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseDurationText(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationText_Invalid(t *testing.T) {
	for _, text := range []string{"", "five mins", "10", "3 weeks", "-1 mins"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseDurationText(text)
			assert.ErrorIs(t, err, ErrInvalidDuration)
		})
	}
}
