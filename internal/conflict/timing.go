package conflict

import (
	"fmt"

	"github.com/alexanderramin/mangala/internal/domain"
)

const (
	// minBufferMinutes is the gap required between consecutive events.
	minBufferMinutes = 30
	// defaultBufferMinutes is assumed when either boundary is missing.
	defaultBufferMinutes = 60
	// criticalOverlapMinutes is the overlap beyond which a clash is critical.
	criticalOverlapMinutes = 60

	minutesPerDay = 24 * 60
)

// window is an event's time range in minutes after midnight. Each end is
// only meaningful when its flag is set.
type window struct {
	start, end       int
	hasStart, hasEnd bool
}

func windowOf(e domain.Event) window {
	var w window
	w.start, w.hasStart = domain.ParseClock(e.StartTime)
	w.end, w.hasEnd = domain.ParseClock(e.EndTime)
	return w
}

func (w window) complete() bool {
	return w.hasStart && w.hasEnd
}

// detectTimingConflicts compares every unordered pair of events on the
// same date. A pair can produce both an overlap and a buffer conflict.
func detectTimingConflicts(events []domain.Event) []domain.Conflict {
	var out []domain.Conflict
	for _, group := range groupByDate(events) {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				first, second := chronological(group[i], group[j])
				if c, ok := overlapConflict(first, second); ok {
					out = append(out, c)
				}
				if c, ok := bufferConflict(first, second); ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// chronological orders a pair by start time. Pairs missing a start time
// keep their input order.
func chronological(a, b domain.Event) (domain.Event, domain.Event) {
	wa, wb := windowOf(a), windowOf(b)
	if wa.hasStart && wb.hasStart && wb.start < wa.start {
		return b, a
	}
	return a, b
}

func overlapConflict(first, second domain.Event) (domain.Conflict, bool) {
	w1, w2 := windowOf(first), windowOf(second)
	if !w1.complete() || !w2.complete() {
		return domain.Conflict{}, false
	}
	if !(w1.start < w2.end && w1.end > w2.start) {
		return domain.Conflict{}, false
	}
	overlap := min(w1.end, w2.end) - max(w1.start, w2.start)

	severity := domain.SeverityWarning
	if overlap > criticalOverlapMinutes {
		severity = domain.SeverityCritical
	}

	detail := &domain.TimingDetail{
		Events: []domain.EventOverlap{
			overlapRow(first, overlap),
			overlapRow(second, overlap),
		},
	}
	if slot, ok := recommendSlot(first, second); ok {
		detail.RecommendedSlots = []domain.TimeSlot{slot}
	}

	return domain.Conflict{
		Type:     domain.ConflictTiming,
		Severity: severity,
		Title:    fmt.Sprintf("Schedule Overlap: %s and %s", first.Name, second.Name),
		Description: fmt.Sprintf("%s (%s-%s) and %s (%s-%s) overlap by %d minutes on %s",
			first.Name, first.StartTime, first.EndTime,
			second.Name, second.StartTime, second.EndTime,
			overlap, first.Date),
		AffectedEvents:    []string{first.ID, second.ID},
		AffectedVendors:   appendUnique(appendUnique(nil, first.VendorIDs...), second.VendorIDs...),
		ResolutionOptions: overlapOptions(second, detail.RecommendedSlots),
		Timing:            detail,
	}, true
}

func bufferConflict(first, second domain.Event) (domain.Conflict, bool) {
	buffer := bufferMinutes(first, second)
	if buffer >= minBufferMinutes {
		return domain.Conflict{}, false
	}
	return domain.Conflict{
		Type:     domain.ConflictTiming,
		Severity: domain.SeverityWarning,
		Title:    "Insufficient Buffer Time",
		Description: fmt.Sprintf("Only %d minutes between %s and %s on %s; allow at least %d minutes for transitions",
			buffer, first.Name, second.Name, first.Date, minBufferMinutes),
		AffectedEvents:    []string{first.ID, second.ID},
		AffectedVendors:   appendUnique(appendUnique(nil, first.VendorIDs...), second.VendorIDs...),
		ResolutionOptions: bufferOptions(first, second),
		Timing: &domain.TimingDetail{
			Events: []domain.EventOverlap{overlapRow(first, 0), overlapRow(second, 0)},
		},
	}, true
}

// bufferMinutes is the gap from the end of first to the start of second.
// It is negative when the events overlap.
func bufferMinutes(first, second domain.Event) int {
	w1, w2 := windowOf(first), windowOf(second)
	if !w1.hasEnd || !w2.hasStart {
		return defaultBufferMinutes
	}
	return w2.start - w1.end
}

// recommendSlot moves second to start a full buffer after first ends,
// keeping its duration. No slot is offered if it would run past midnight.
func recommendSlot(first, second domain.Event) (domain.TimeSlot, bool) {
	w1, w2 := windowOf(first), windowOf(second)
	start := w1.end + minBufferMinutes
	end := start + (w2.end - w2.start)
	if end > minutesPerDay {
		return domain.TimeSlot{}, false
	}
	return domain.TimeSlot{
		EventID:   second.ID,
		Date:      second.Date,
		StartTime: domain.FormatClock(start),
		EndTime:   domain.FormatClock(end),
	}, true
}

func overlapRow(e domain.Event, overlap int) domain.EventOverlap {
	return domain.EventOverlap{
		EventID:        e.ID,
		EventName:      e.Name,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		OverlapMinutes: overlap,
	}
}
