package domain

type RitualType string

const (
	RitualPoruwa     RitualType = "poruwa"
	RitualHomeComing RitualType = "home_coming"
	RitualReception  RitualType = "reception"
	RitualEngagement RitualType = "engagement"
	RitualNalangu    RitualType = "nalangu"
)

type TaskCategory string

const (
	CategoryRitual     TaskCategory = "ritual"
	CategoryVendor     TaskCategory = "vendor"
	CategoryLogistics  TaskCategory = "logistics"
	CategoryAttire     TaskCategory = "attire"
	CategoryFood       TaskCategory = "food"
	CategoryDecoration TaskCategory = "decoration"
)

// ValidTaskCategories is the canonical set of accepted task category strings.
var ValidTaskCategories = map[TaskCategory]bool{
	CategoryRitual: true, CategoryVendor: true, CategoryLogistics: true,
	CategoryAttire: true, CategoryFood: true, CategoryDecoration: true,
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting: high=3, medium=2, low=1, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

type ConflictType string

const (
	ConflictTiming   ConflictType = "timing"
	ConflictVendor   ConflictType = "vendor"
	ConflictResource ConflictType = "resource"
	ConflictCultural ConflictType = "cultural"
)

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type ConflictStatus string

const (
	ConflictActive    ConflictStatus = "active"
	ConflictResolved  ConflictStatus = "resolved"
	ConflictDismissed ConflictStatus = "dismissed"
)

type ResolutionType string

const (
	ResolutionReschedule   ResolutionType = "reschedule"
	ResolutionChangeVendor ResolutionType = "change_vendor"
	ResolutionAddResource  ResolutionType = "add_resource"
	ResolutionDismiss      ResolutionType = "dismiss"
)

type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type TimelineStatus string

const (
	TimelineOverdue  TimelineStatus = "overdue"
	TimelineDueSoon  TimelineStatus = "due_soon"
	TimelineUpcoming TimelineStatus = "upcoming"
)
