package conflict

import (
	"testing"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestDetector() *Detector {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func event(id, date, start, end string, vendors ...string) domain.Event {
	return domain.Event{ID: id, Name: "Event " + id, Date: date, StartTime: start, EndTime: end, VendorIDs: vendors}
}

func vendor(id string, services ...string) domain.Vendor {
	return domain.Vendor{ID: id, Name: "Vendor " + id, ServiceTypes: services}
}

func byType(conflicts []domain.Conflict, typ domain.ConflictType) []domain.Conflict {
	var out []domain.Conflict
	for _, c := range conflicts {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

func overlapsOnly(conflicts []domain.Conflict) []domain.Conflict {
	var out []domain.Conflict
	for _, c := range conflicts {
		if c.Type == domain.ConflictTiming && c.Title != "Insufficient Buffer Time" {
			out = append(out, c)
		}
	}
	return out
}

func TestDetect_OverlapAndSharedVendor(t *testing.T) {
	d := newTestDetector()
	resp := d.Detect(DetectionRequest{
		WeddingID: "w1",
		Events: []domain.Event{
			event("a", "2026-06-15", "10:00", "12:00", "v1"),
			event("b", "2026-06-15", "11:30", "16:00", "v1"),
		},
		Vendors: []domain.Vendor{vendor("v1", "photography")},
	})

	require.NotEmpty(t, byType(resp.Conflicts, domain.ConflictTiming))
	require.NotEmpty(t, byType(resp.Conflicts, domain.ConflictVendor))
	// overlap, buffer, vendor
	require.Len(t, resp.Conflicts, 3)

	for _, c := range resp.Conflicts {
		assert.NotEmpty(t, c.ResolutionOptions, c.Title)
		assert.Equal(t, domain.ConflictActive, c.Status)
		assert.Equal(t, "w1", c.WeddingID)
		assert.Equal(t, fixedNow, c.CreatedAt)
		assert.NotEmpty(t, c.ID)
	}

	overlap := overlapsOnly(resp.Conflicts)
	require.Len(t, overlap, 1)
	assert.Equal(t, domain.SeverityWarning, overlap[0].Severity)
	require.NotNil(t, overlap[0].Timing)
	assert.Equal(t, 30, overlap[0].Timing.Events[0].OverlapMinutes)
	assert.Equal(t, []string{"v1"}, overlap[0].AffectedVendors)

	assert.Equal(t, domain.RiskMedium, resp.RiskAssessment.OverallRisk)
	assert.Equal(t, 1, resp.RiskAssessment.CriticalIssues)
	assert.Equal(t, 2, resp.RiskAssessment.Warnings)
	assert.Zero(t, resp.RiskAssessment.Recommendations)
	assert.Len(t, resp.Warnings, 2)
	assert.Len(t, resp.Suggestions, 4)
}

func TestDetect_OverlapSeverity(t *testing.T) {
	tests := []struct {
		name     string
		second   domain.Event
		overlap  int
		severity domain.Severity
	}{
		{"thirty minutes", event("b", "2026-06-15", "11:30", "16:00"), 30, domain.SeverityWarning},
		{"exactly sixty", event("b", "2026-06-15", "11:00", "16:00"), 60, domain.SeverityWarning},
		{"ninety minutes", event("b", "2026-06-15", "10:30", "16:00"), 90, domain.SeverityCritical},
		{"contained", event("b", "2026-06-15", "10:15", "11:45"), 90, domain.SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newTestDetector().Detect(DetectionRequest{Events: []domain.Event{
				event("a", "2026-06-15", "10:00", "12:00"),
				tt.second,
			}})
			overlap := overlapsOnly(resp.Conflicts)
			require.Len(t, overlap, 1)
			assert.Equal(t, tt.severity, overlap[0].Severity)
			assert.Equal(t, tt.overlap, overlap[0].Timing.Events[1].OverlapMinutes)
		})
	}
}

func TestDetect_PairOrderedByStartTime(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{Events: []domain.Event{
		event("late", "2026-06-15", "11:30", "16:00"),
		event("early", "2026-06-15", "10:00", "12:00"),
	}})
	overlap := overlapsOnly(resp.Conflicts)
	require.Len(t, overlap, 1)
	assert.Equal(t, []string{"early", "late"}, overlap[0].AffectedEvents)

	slots := overlap[0].Timing.RecommendedSlots
	require.Len(t, slots, 1)
	assert.Equal(t, domain.TimeSlot{EventID: "late", Date: "2026-06-15", StartTime: "12:30", EndTime: "17:00"}, slots[0])
	assert.True(t, overlap[0].ResolutionOptions[0].AutoResolvable)
}

func TestDetect_ReverseOrderedPairUsesRealGap(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{Events: []domain.Event{
		event("afternoon", "2026-06-15", "14:00", "16:00"),
		event("morning", "2026-06-15", "10:00", "12:00"),
	}})
	assert.Empty(t, resp.Conflicts, "the two hour gap after sorting by start time is enough")
	assert.Equal(t, domain.RiskLow, resp.RiskAssessment.OverallRisk)
}

func TestDetect_MixedDateFormatsSameDay(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{
		Events: []domain.Event{
			event("a", "2026-06-15", "10:00", "12:00", "v1"),
			event("b", "2026-06-15T00:00:00Z", "11:00", "13:00", "v1"),
		},
		Vendors: []domain.Vendor{vendor("v1", "catering")},
	})

	overlap := overlapsOnly(resp.Conflicts)
	require.Len(t, overlap, 1)
	assert.Equal(t, []string{"a", "b"}, overlap[0].AffectedEvents)
	require.Len(t, byType(resp.Conflicts, domain.ConflictTiming), 2, "overlap and buffer")

	vendorConflicts := byType(resp.Conflicts, domain.ConflictVendor)
	require.Len(t, vendorConflicts, 1)
	assert.Equal(t, "2026-06-15", vendorConflicts[0].Vendor.Date)
	assert.Equal(t, []string{"a", "b"}, vendorConflicts[0].AffectedEvents)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2026-06-15", dayKey("2026-06-15"))
	assert.Equal(t, "2026-06-15", dayKey("2026-06-15T23:30:00+05:30"))
	assert.Equal(t, "next saturday", dayKey("next saturday"))
}

func TestDetect_NoSlotPastMidnight(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{Events: []domain.Event{
		event("a", "2026-06-15", "18:00", "22:00"),
		event("b", "2026-06-15", "21:00", "23:30"),
	}})
	overlap := overlapsOnly(resp.Conflicts)
	require.Len(t, overlap, 1)
	assert.Empty(t, overlap[0].Timing.RecommendedSlots)
	assert.False(t, overlap[0].ResolutionOptions[0].AutoResolvable)
}

func TestDetect_BufferTime(t *testing.T) {
	tests := []struct {
		name   string
		events []domain.Event
		want   bool
	}{
		{"back to back", []domain.Event{event("a", "2026-06-15", "10:00", "12:00"), event("b", "2026-06-15", "12:00", "13:00")}, true},
		{"fifteen minutes", []domain.Event{event("a", "2026-06-15", "10:00", "12:00"), event("b", "2026-06-15", "12:15", "13:00")}, true},
		{"thirty minutes", []domain.Event{event("a", "2026-06-15", "10:00", "12:00"), event("b", "2026-06-15", "12:30", "13:00")}, false},
		{"missing times", []domain.Event{event("a", "2026-06-15", "", ""), event("b", "2026-06-15", "12:00", "")}, false},
		{"different days", []domain.Event{event("a", "2026-06-15", "10:00", "12:00"), event("b", "2026-06-16", "12:00", "13:00")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newTestDetector().Detect(DetectionRequest{Events: tt.events})
			assert.Empty(t, overlapsOnly(resp.Conflicts), "no overlap expected")
			timing := byType(resp.Conflicts, domain.ConflictTiming)
			if !tt.want {
				assert.Empty(t, timing)
				return
			}
			require.Len(t, timing, 1)
			assert.Equal(t, "Insufficient Buffer Time", timing[0].Title)
			assert.Equal(t, domain.SeverityWarning, timing[0].Severity)
		})
	}
}

func TestDetect_VendorDoubleBooking(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{
		Events: []domain.Event{
			event("a", "2026-06-15", "08:00", "09:00", "v1", "v3"),
			event("b", "2026-06-15", "18:00", "22:00", "v1", "ghost"),
			event("c", "2026-06-16", "18:00", "22:00", "v1"),
		},
		Vendors: []domain.Vendor{
			vendor("v1", "catering"),
			vendor("v2", "catering", "cake"),
			vendor("v3", "catering"),
			vendor("v4", "music"),
		},
	})

	vendorConflicts := byType(resp.Conflicts, domain.ConflictVendor)
	require.Len(t, vendorConflicts, 1)
	c := vendorConflicts[0]
	assert.Equal(t, domain.SeverityCritical, c.Severity)
	assert.Equal(t, []string{"a", "b"}, c.AffectedEvents)
	assert.Equal(t, []string{"v1"}, c.AffectedVendors)
	require.NotNil(t, c.Vendor)
	assert.Equal(t, "2026-06-15", c.Vendor.Date)
	assert.Len(t, c.Vendor.Bookings, 2)
	assert.Equal(t, []string{"v2"}, c.Vendor.AlternativeVendors)

	var types []domain.ResolutionType
	for _, o := range c.ResolutionOptions {
		types = append(types, o.Type)
	}
	assert.Equal(t, []domain.ResolutionType{
		domain.ResolutionChangeVendor, domain.ResolutionReschedule, domain.ResolutionAddResource,
	}, types)
}

func TestDetect_MultiServiceVendorOnOneEvent(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{
		Events:  []domain.Event{event("a", "2026-06-15", "10:00", "12:00", "v1")},
		Vendors: []domain.Vendor{vendor("v1", "photography", "videography")},
	})
	vendorConflicts := byType(resp.Conflicts, domain.ConflictVendor)
	require.Len(t, vendorConflicts, 1)
	assert.Equal(t, []string{"a"}, vendorConflicts[0].AffectedEvents)
	assert.Len(t, vendorConflicts[0].Vendor.Bookings, 2)
}

func TestDetect_Empty(t *testing.T) {
	resp := newTestDetector().Detect(DetectionRequest{})
	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, generalSuggestions, resp.Suggestions)
	assert.Equal(t, RiskAssessment{OverallRisk: domain.RiskLow}, resp.RiskAssessment)
}

type conflictShape struct {
	Type     domain.ConflictType
	Severity domain.Severity
	Events   []string
}

func shapes(conflicts []domain.Conflict) []conflictShape {
	out := make([]conflictShape, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, conflictShape{c.Type, c.Severity, c.AffectedEvents})
	}
	return out
}

func TestDetect_Idempotent(t *testing.T) {
	req := DetectionRequest{
		Events: []domain.Event{
			event("a", "2026-06-15", "10:00", "12:00", "v1"),
			event("b", "2026-06-15", "10:30", "16:00", "v1", "v2"),
			event("c", "2026-06-15", "16:10", "18:00", "v2"),
		},
		Vendors: []domain.Vendor{vendor("v1", "decor"), vendor("v2", "music")},
	}
	d := newTestDetector()
	first, second := d.Detect(req), d.Detect(req)

	if diff := cmp.Diff(shapes(first.Conflicts), shapes(second.Conflicts)); diff != "" {
		t.Errorf("detection not idempotent (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.RiskAssessment, second.RiskAssessment)
	assert.NotEqual(t, first.Conflicts[0].ID, second.Conflicts[0].ID)
}
