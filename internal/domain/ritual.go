package domain

import "time"

// TimingConstraints bounds how many days before the wedding a ritual's
// preparation window opens. Nil fields are unconstrained.
type TimingConstraints struct {
	MinDaysBeforeWedding *int `json:"minDaysBeforeWedding,omitempty" yaml:"minDaysBeforeWedding,omitempty"`
	MaxDaysBeforeWedding *int `json:"maxDaysBeforeWedding,omitempty" yaml:"maxDaysBeforeWedding,omitempty"`
}

type VendorRequirements struct {
	Required           []string `json:"required,omitempty" yaml:"required,omitempty"`
	Optional           []string `json:"optional,omitempty" yaml:"optional,omitempty"`
	CulturalPreference []string `json:"culturalPreference,omitempty" yaml:"culturalPreference,omitempty"`
}

// TaskTemplate is one entry of a ritual's task list before instantiation.
type TaskTemplate struct {
	ID                 string       `json:"id" yaml:"id"`
	Title              string       `json:"title" yaml:"title"`
	Description        string       `json:"description" yaml:"description"`
	Category           TaskCategory `json:"category" yaml:"category"`
	Priority           Priority     `json:"priority" yaml:"priority"`
	LeadDays           int          `json:"estimatedDaysBeforeEvent" yaml:"estimatedDaysBeforeEvent"`
	RecommendedVendors []string     `json:"recommendedVendors,omitempty" yaml:"recommendedVendors,omitempty"`
	Dependencies       []string     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	CulturalNote       string       `json:"culturalNote,omitempty" yaml:"culturalNote,omitempty"`
}

// RitualTemplate is an immutable catalog entry.
type RitualTemplate struct {
	ID                 RitualType          `json:"id" yaml:"id"`
	Name               string              `json:"name" yaml:"name"`
	Description        string              `json:"description" yaml:"description"`
	Tasks              []TaskTemplate      `json:"tasks" yaml:"tasks"`
	TimingConstraints  *TimingConstraints  `json:"timingConstraints,omitempty" yaml:"timingConstraints,omitempty"`
	VendorRequirements *VendorRequirements `json:"vendorRequirements,omitempty" yaml:"vendorRequirements,omitempty"`
}

// RitualTask is a task instantiated from a TaskTemplate for one wedding.
// DueDate is resolved once at generation time from the wedding date and
// EstimatedDaysBeforeEvent.
type RitualTask struct {
	ID                       string       `json:"id" yaml:"id"`
	TemplateID               string       `json:"templateId" yaml:"templateId"`
	Title                    string       `json:"title" yaml:"title"`
	Description              string       `json:"description" yaml:"description"`
	Category                 TaskCategory `json:"category" yaml:"category"`
	Priority                 Priority     `json:"priority" yaml:"priority"`
	RitualType               RitualType   `json:"ritualType" yaml:"ritualType"`
	EstimatedDaysBeforeEvent int          `json:"estimatedDaysBeforeEvent" yaml:"estimatedDaysBeforeEvent"`
	DueDate                  time.Time    `json:"dueDate" yaml:"dueDate"`
	VendorTypes              []string     `json:"vendorTypes,omitempty" yaml:"vendorTypes,omitempty"`
	Dependencies             []string     `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	CulturalNote             string       `json:"culturalNote,omitempty" yaml:"culturalNote,omitempty"`
}

// Event is a caller-owned wedding event. Date is a calendar date
// (YYYY-MM-DD); StartTime and EndTime are optional HH:MM values.
type Event struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Date      string   `json:"date" yaml:"date"`
	StartTime string   `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime   string   `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	VendorIDs []string `json:"vendorIds" yaml:"vendorIds"`
}

// Vendor is a caller-owned vendor record.
type Vendor struct {
	ID                  string   `json:"id" yaml:"id"`
	Name                string   `json:"name" yaml:"name"`
	ServiceTypes        []string `json:"serviceTypes" yaml:"serviceTypes"`
	Availability        []string `json:"availability" yaml:"availability"`
	CulturalSpecialties []string `json:"culturalSpecialties,omitempty" yaml:"culturalSpecialties,omitempty"`
}
