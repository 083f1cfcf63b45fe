package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
)

// dueSoonWindow is how close a due date must be to count as due soon.
const dueSoonWindow = 7 * 24 * time.Hour

type TimelineTask struct {
	domain.RitualTask
	Status       domain.TimelineStatus `json:"status" yaml:"status"`
	DaysUntilDue int                   `json:"daysUntilDue" yaml:"daysUntilDue"`
}

type TimelineEntry struct {
	Ritual     domain.RitualType `json:"ritual" yaml:"ritual"`
	RitualName string            `json:"ritualName" yaml:"ritualName"`
	Tasks      []TimelineTask    `json:"tasks" yaml:"tasks"`
}

// Timeline regenerates each selected ritual's tasks and classifies them
// against the current time. Unknown rituals are skipped. The result is a
// point-in-time view and is recomputed on every call.
func (g *Generator) Timeline(rituals []string, weddingDate string) ([]TimelineEntry, error) {
	date, err := domain.ParseDate(weddingDate)
	if err != nil {
		return nil, fmt.Errorf("wedding date: %w", err)
	}
	now := g.now()

	entries := make([]TimelineEntry, 0, len(rituals))
	for _, r := range rituals {
		tmpl, ok := g.catalog.Get(domain.RitualType(r))
		if !ok {
			continue
		}
		tasks := instantiate(tmpl, date)
		entry := TimelineEntry{
			Ritual:     tmpl.ID,
			RitualName: tmpl.Name,
			Tasks:      make([]TimelineTask, 0, len(tasks)),
		}
		for _, t := range tasks {
			entry.Tasks = append(entry.Tasks, TimelineTask{
				RitualTask:   t,
				Status:       classify(t.DueDate, now),
				DaysUntilDue: daysUntil(t.DueDate, now),
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func classify(due, now time.Time) domain.TimelineStatus {
	switch {
	case due.Before(now):
		return domain.TimelineOverdue
	case due.Sub(now) <= dueSoonWindow:
		return domain.TimelineDueSoon
	default:
		return domain.TimelineUpcoming
	}
}

func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
