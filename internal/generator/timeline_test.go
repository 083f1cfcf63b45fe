package generator

import (
	"testing"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_ClassifiesAgainstNow(t *testing.T) {
	g := newTestGenerator()
	// Reception venue (180 days) is due 2026-01-11, half a day after now.
	entries, err := g.Timeline([]string{"reception", "nalangu"}, "2026-07-10")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.RitualReception, entries[0].Ritual)
	assert.Equal(t, "Wedding Reception", entries[0].RitualName)

	status := map[string]domain.TimelineStatus{}
	days := map[string]int{}
	for _, e := range entries {
		for _, task := range e.Tasks {
			status[task.TemplateID] = task.Status
			days[task.TemplateID] = task.DaysUntilDue
		}
	}
	assert.Equal(t, domain.TimelineDueSoon, status["reception_venue"])
	assert.Equal(t, 1, days["reception_venue"])
	assert.Equal(t, domain.TimelineUpcoming, status["reception_catering"])
	assert.Equal(t, domain.TimelineUpcoming, status["nalangu_items"])
}

func TestTimeline_Overdue(t *testing.T) {
	g := newTestGenerator()
	entries, err := g.Timeline([]string{"nalangu"}, "2026-01-20")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	status := map[string]domain.TimelineStatus{}
	for _, task := range entries[0].Tasks {
		status[task.TemplateID] = task.Status
	}
	assert.Equal(t, domain.TimelineOverdue, status["nalangu_music"])
	assert.Equal(t, domain.TimelineOverdue, status["nalangu_elders"])
	assert.Equal(t, domain.TimelineDueSoon, status["nalangu_items"])
}

func TestTimeline_UnknownRitualSkipped(t *testing.T) {
	g := newTestGenerator()
	entries, err := g.Timeline([]string{"religious_ceremony"}, "2026-07-10")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = g.Timeline([]string{"poruwa"}, "")
	assert.Error(t, err)
}
