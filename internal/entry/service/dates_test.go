package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	berlin := loadLocation("Europe/Berlin")

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-01-15 08:30:00", time.Date(2025, 1, 15, 7, 30, 0, 0, time.UTC)},
		{"2025-07-15 08:30", time.Date(2025, 7, 15, 6, 30, 0, 0, time.UTC)},
		{"2025-07-15", time.Date(2025, 7, 14, 22, 0, 0, 0, time.UTC)},
		{"15.01.2025", time.Date(2025, 1, 14, 23, 0, 0, 0, time.UTC)},
		{" 15.01.2025 12:00 ", time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC)},
		{"2025-01-15T08:30:00.750Z", time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2025-01-15T08:30:00+02:00", time.Date(2025, 1, 15, 6, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseDate(tc.raw, berlin)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := parseDate("next tuesday", berlin)
	assert.Error(t, err)
}

func TestLoadLocation_Fallback(t *testing.T) {
	assert.Equal(t, time.UTC, loadLocation("Mars/Olympus_Mons"))
	assert.Equal(t, "Europe/Berlin", loadLocation("Europe/Berlin").String())
}
