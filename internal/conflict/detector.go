// Package conflict finds scheduling overlaps, tight buffers and vendor
// double bookings in a wedding's event plan and scores the overall risk.
//
// Detection is a pure function of the request and the clock; a Detector
// holds no mutable state and may be shared between goroutines.
package conflict

import (
	"slices"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
)

// DetectionRequest is the event plan of one wedding.
type DetectionRequest struct {
	WeddingID           string          `json:"weddingId" yaml:"weddingId"`
	Events              []domain.Event  `json:"events" yaml:"events"`
	Vendors             []domain.Vendor `json:"vendors" yaml:"vendors"`
	WeddingType         string          `json:"weddingType,omitempty" yaml:"weddingType,omitempty"`
	CulturalPreferences []string        `json:"culturalPreferences,omitempty" yaml:"culturalPreferences,omitempty"`
}

type DetectionResponse struct {
	Conflicts      []domain.Conflict `json:"conflicts" yaml:"conflicts"`
	Warnings       []string          `json:"warnings" yaml:"warnings"`
	Suggestions    []string          `json:"suggestions" yaml:"suggestions"`
	RiskAssessment RiskAssessment    `json:"riskAssessment" yaml:"riskAssessment"`
}

type RiskAssessment struct {
	OverallRisk     domain.RiskLevel `json:"overallRisk" yaml:"overallRisk"`
	CriticalIssues  int              `json:"criticalIssues" yaml:"criticalIssues"`
	Warnings        int              `json:"warnings" yaml:"warnings"`
	Recommendations int              `json:"recommendations" yaml:"recommendations"`
}

type Detector struct {
	now func() time.Time
}

type Option func(*Detector)

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

func New(opts ...Option) *Detector {
	d := &Detector{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect runs every detector over req. Conflicts come back in detector
// order: timing, vendor, then cultural.
func (d *Detector) Detect(req DetectionRequest) *DetectionResponse {
	var found []domain.Conflict
	found = append(found, detectTimingConflicts(req.Events)...)
	found = append(found, detectVendorConflicts(req.Events, req.Vendors)...)
	found = append(found, detectServiceTypeConflicts(req.Events, req.Vendors)...)
	found = append(found, detectCulturalConflicts(req)...)

	now := d.now()
	conflicts := make([]domain.Conflict, 0, len(found))
	for _, c := range found {
		c.ID = domain.NewID("conflict")
		c.WeddingID = req.WeddingID
		c.CreatedAt = now
		c.Status = domain.ConflictActive
		conflicts = append(conflicts, c)
	}

	return Summarize(conflicts)
}

// Summarize wraps already detected conflicts in a response, deriving the
// warnings, suggestions and risk assessment from them.
func Summarize(conflicts []domain.Conflict) *DetectionResponse {
	risk := assessRisk(conflicts)
	return &DetectionResponse{
		Conflicts:      conflicts,
		Warnings:       warningsFor(risk),
		Suggestions:    suggestionsFor(conflicts),
		RiskAssessment: risk,
	}
}

// groupByDate buckets events by calendar date, keeping the order in
// which each date first appears.
func groupByDate(events []domain.Event) [][]domain.Event {
	index := make(map[string]int)
	var groups [][]domain.Event
	for _, e := range events {
		key := dayKey(e.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}

// dayKey normalizes a date to YYYY-MM-DD so calendar dates and RFC3339
// timestamps on the same day compare equal. Unparseable dates are used as
// given.
func dayKey(date string) string {
	t, err := domain.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(domain.DateLayout)
}

// appendUnique appends the values of src not already in dst.
func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
