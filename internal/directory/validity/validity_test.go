package validity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time {
	return &t
}

func TestIsActive(t *testing.T) {

	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	dayAfter := now.Add(48 * time.Hour)

	tests := []struct {
		name   string
		from   *time.Time
		until  *time.Time
		active bool
	}{
		{"unbounded", nil, nil, true},
		{"until tomorrow", nil, ptr(tomorrow), true},
		{"until yesterday", nil, ptr(yesterday), false},
		{"from yesterday", ptr(yesterday), nil, true},
		{"from tomorrow", ptr(tomorrow), nil, false},
		{"yesterday to tomorrow", ptr(yesterday), ptr(tomorrow), true},
		{"tomorrow to day after", ptr(tomorrow), ptr(dayAfter), false},
		{"starts now", ptr(now), nil, true},
		{"ends now", nil, ptr(now), true},
		{"single instant", ptr(now), ptr(now), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, IsActive(tt.from, tt.until, now))
		})
	}
}

func TestWindowCondition(t *testing.T) {

	n := 0
	next := func() string {
		n++
		return "?"
	}
	condition := Window{FromColumn: "p.valid_from", UntilColumn: "p.valid_until"}.Condition(next)

	assert.Equal(t, "((p.valid_from IS NULL OR p.valid_from <= ?) AND (p.valid_until IS NULL OR p.valid_until >= ?))", condition)
	assert.Equal(t, 2, n)
}
