package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID_FormatAndUniqueness(t *testing.T) {
	pattern := regexp.MustCompile(`^task-[0-9a-z]+-[0-9a-f]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := NewID("task")
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParseDate_CalendarAndRFC3339(t *testing.T) {
	d, err := ParseDate("2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2026-06-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("15/06/2026")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	m, ok := ParseClock("11:30")
	require.True(t, ok)
	assert.Equal(t, 690, m)

	_, ok = ParseClock("")
	assert.False(t, ok)
	_, ok = ParseClock("25:00")
	assert.False(t, ok)

	assert.Equal(t, "09:05", FormatClock(545))
}

func TestPriority_Rank(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
	assert.False(t, Priority("urgent").IsValid())
}

func TestConflict_Option(t *testing.T) {
	c := Conflict{ResolutionOptions: []ResolutionOption{{ID: "a"}, {ID: "b", Title: "B"}}}
	o, ok := c.Option("b")
	require.True(t, ok)
	assert.Equal(t, "B", o.Title)

	_, ok = c.Option("z")
	assert.False(t, ok)
}
