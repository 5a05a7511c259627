package get_business_bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFilter(t *testing.T) {
	filter, err := ToFilter(1, "2030-03-04", "2030-03-04", "true")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), *filter.From)
	assert.Equal(t, time.Date(2030, 3, 5, 0, 0, 0, 0, time.UTC), *filter.To)
	assert.True(t, filter.IncludeInactive)

	empty, err := ToFilter(1, "", "", "")
	require.NoError(t, err)
	assert.Nil(t, empty.From)
	assert.Nil(t, empty.To)

	for _, tc := range [][3]string{
		{"04.03.2030", "", ""},
		{"", "2030-13-01", ""},
		{"2030-03-05", "2030-03-03", ""},
		{"", "", "maybe"},
	} {
		_, err := ToFilter(1, tc[0], tc[1], tc[2])
		assert.Error(t, err, tc)
	}
}
