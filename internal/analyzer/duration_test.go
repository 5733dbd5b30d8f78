package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		duration string
		want     int64
	}{
		{"PT5M13S", 313},
		{"PT1H", 3600},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT90S", 90},
		{"PT10M", 600},
		{"PT", 0},
		{"", 0},
		{"P1DT2H", 0},
		{"five minutes", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseISODuration(tc.duration), "duration %q", tc.duration)
	}
}

func TestNormalizeDayStart(t *testing.T) {
	got, err := NormalizeDayStart("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00Z", got)

	_, err = NormalizeDayStart("01/01/2024")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalizeDayEnd(t *testing.T) {
	got, err := NormalizeDayEnd("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31T23:59:59Z", got)

	_, err = NormalizeDayEnd("2024-13-01")
	require.ErrorIs(t, err, ErrInvalidDate)
}
