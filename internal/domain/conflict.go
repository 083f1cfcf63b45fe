package domain

import "time"

// ResolutionOption is one way of resolving a conflict. Options are
// generated per conflict and never shared.
type ResolutionOption struct {
	ID              string         `json:"id" yaml:"id"`
	Type            ResolutionType `json:"type" yaml:"type"`
	Title           string         `json:"title" yaml:"title"`
	Description     string         `json:"description" yaml:"description"`
	EstimatedEffort Effort         `json:"estimatedEffort" yaml:"estimatedEffort"`
	RequiredAction  string         `json:"requiredAction,omitempty" yaml:"requiredAction,omitempty"`
	AutoResolvable  bool           `json:"autoResolvable" yaml:"autoResolvable"`
}

// Conflict is a detected scheduling, vendor, resource or cultural problem.
// Exactly one of Timing, Vendor and Cultural is set, matching Type; a
// resource conflict carries no detail.
type Conflict struct {
	ID                string             `json:"id" yaml:"id"`
	WeddingID         string             `json:"weddingId,omitempty" yaml:"weddingId,omitempty"`
	Type              ConflictType       `json:"type" yaml:"type"`
	Severity          Severity           `json:"severity" yaml:"severity"`
	Title             string             `json:"title" yaml:"title"`
	Description       string             `json:"description" yaml:"description"`
	AffectedEvents    []string           `json:"affectedEvents" yaml:"affectedEvents"`
	AffectedVendors   []string           `json:"affectedVendors" yaml:"affectedVendors"`
	ResolutionOptions []ResolutionOption `json:"resolutionOptions" yaml:"resolutionOptions"`
	CreatedAt         time.Time          `json:"createdAt" yaml:"createdAt"`
	Status            ConflictStatus     `json:"status" yaml:"status"`

	// Set once the conflict leaves the active state.
	ResolutionID  string `json:"resolutionId,omitempty" yaml:"resolutionId,omitempty"`
	DismissReason string `json:"dismissReason,omitempty" yaml:"dismissReason,omitempty"`

	Timing   *TimingDetail   `json:"timing,omitempty" yaml:"timing,omitempty"`
	Vendor   *VendorDetail   `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Cultural *CulturalDetail `json:"cultural,omitempty" yaml:"cultural,omitempty"`
}

// Option returns the resolution option with the given ID.
func (c *Conflict) Option(id string) (ResolutionOption, bool) {
	for _, o := range c.ResolutionOptions {
		if o.ID == id {
			return o, true
		}
	}
	return ResolutionOption{}, false
}

type TimingDetail struct {
	Events           []EventOverlap `json:"conflictingEvents" yaml:"conflictingEvents"`
	RecommendedSlots []TimeSlot     `json:"recommendedTimeSlots,omitempty" yaml:"recommendedTimeSlots,omitempty"`
}

type EventOverlap struct {
	EventID        string `json:"eventId" yaml:"eventId"`
	EventName      string `json:"eventName" yaml:"eventName"`
	StartTime      string `json:"startTime" yaml:"startTime"`
	EndTime        string `json:"endTime" yaml:"endTime"`
	OverlapMinutes int    `json:"overlapMinutes" yaml:"overlapMinutes"`
}

type TimeSlot struct {
	EventID   string `json:"eventId" yaml:"eventId"`
	Date      string `json:"date" yaml:"date"`
	StartTime string `json:"startTime" yaml:"startTime"`
	EndTime   string `json:"endTime" yaml:"endTime"`
}

type VendorDetail struct {
	VendorID           string          `json:"vendorId" yaml:"vendorId"`
	VendorName         string          `json:"vendorName" yaml:"vendorName"`
	Date               string          `json:"date" yaml:"date"`
	Bookings           []VendorBooking `json:"conflictingBookings" yaml:"conflictingBookings"`
	AlternativeVendors []string        `json:"alternativeVendors,omitempty" yaml:"alternativeVendors,omitempty"`
}

type VendorBooking struct {
	EventID     string `json:"eventId" yaml:"eventId"`
	EventName   string `json:"eventName" yaml:"eventName"`
	Date        string `json:"date" yaml:"date"`
	StartTime   string `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	ServiceType string `json:"serviceType" yaml:"serviceType"`
}

// CulturalDetail is reserved for cultural conflicts, which are not
// detected yet.
type CulturalDetail struct {
	Tradition string `json:"tradition" yaml:"tradition"`
	Violation string `json:"violation" yaml:"violation"`
	Context   string `json:"culturalContext" yaml:"culturalContext"`
}
