// Package testutil provides an in-memory store and plan fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
)

var fixtureSeq atomic.Int64

// FixedNow is the clock used by fixtures that need a timestamp.
var FixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type EventOption func(*domain.Event)

func WithTimes(start, end string) EventOption {
	return func(e *domain.Event) {
		e.StartTime, e.EndTime = start, end
	}
}

func WithVendors(ids ...string) EventOption {
	return func(e *domain.Event) {
		e.VendorIDs = ids
	}
}

func NewTestEvent(id, date string, opts ...EventOption) domain.Event {
	e := domain.Event{ID: id, Name: "Event " + id, Date: date, VendorIDs: []string{}}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func NewTestVendor(id string, serviceTypes ...string) domain.Vendor {
	return domain.Vendor{ID: id, Name: "Vendor " + id, ServiceTypes: serviceTypes}
}

type ConflictOption func(*domain.Conflict)

func WithSeverity(s domain.Severity) ConflictOption {
	return func(c *domain.Conflict) {
		c.Severity = s
	}
}

func WithConflictStatus(s domain.ConflictStatus) ConflictOption {
	return func(c *domain.Conflict) {
		c.Status = s
	}
}

func WithCreatedAt(t time.Time) ConflictOption {
	return func(c *domain.Conflict) {
		c.CreatedAt = t
	}
}

func WithTimingDetail(d *domain.TimingDetail) ConflictOption {
	return func(c *domain.Conflict) {
		c.Type = domain.ConflictTiming
		c.Vendor = nil
		c.Timing = d
	}
}

// NewTestConflict returns an active vendor conflict with two resolution
// options and a unique ID.
func NewTestConflict(weddingID string, opts ...ConflictOption) *domain.Conflict {
	n := fixtureSeq.Add(1)
	id := fmt.Sprintf("conflict-%03d", n)
	c := &domain.Conflict{
		ID:              id,
		WeddingID:       weddingID,
		Type:            domain.ConflictVendor,
		Severity:        domain.SeverityCritical,
		Title:           "Vendor Double Booking: Test Vendor",
		Description:     "Test Vendor has 2 bookings on 2026-06-15",
		AffectedEvents:  []string{"e1", "e2"},
		AffectedVendors: []string{"v1"},
		ResolutionOptions: []domain.ResolutionOption{
			{ID: id + "-r1", Type: domain.ResolutionChangeVendor, Title: "Find an alternative vendor", EstimatedEffort: domain.EffortMedium},
			{ID: id + "-r2", Type: domain.ResolutionReschedule, Title: "Reschedule one of the events", EstimatedEffort: domain.EffortHigh, AutoResolvable: true},
		},
		CreatedAt: FixedNow,
		Status:    domain.ConflictActive,
		Vendor: &domain.VendorDetail{
			VendorID:   "v1",
			VendorName: "Test Vendor",
			Date:       "2026-06-15",
			Bookings: []domain.VendorBooking{
				{EventID: "e1", EventName: "Poruwa", Date: "2026-06-15", ServiceType: "catering"},
				{EventID: "e2", EventName: "Reception", Date: "2026-06-15", ServiceType: "catering"},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
