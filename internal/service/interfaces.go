package service

import (
	"context"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
)

// RitualSummary is a catalog entry as listed to callers.
type RitualSummary struct {
	ID          domain.RitualType `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	TaskCount   int               `json:"taskCount" yaml:"taskCount"`
}

type PlanningService interface {
	Rituals(ctx context.Context) []RitualSummary
	Ritual(ctx context.Context, id domain.RitualType) (domain.RitualTemplate, bool)
	GenerateTasks(ctx context.Context, req generator.GenerationRequest) (*generator.GenerationResponse, error)
	Timeline(ctx context.Context, rituals []string, weddingDate string) ([]generator.TimelineEntry, error)
	Validate(ctx context.Context, rituals []string, weddingDate string) generator.ValidationResult
}

type ConflictService interface {
	// Detect runs detection over req. With persist set, the wedding's
	// active conflicts are replaced by the new ones in one transaction.
	Detect(ctx context.Context, req conflict.DetectionRequest, persist bool) (*conflict.DetectionResponse, error)
	Get(ctx context.Context, id string) (*domain.Conflict, error)
	List(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]*domain.Conflict, error)
	Resolve(ctx context.Context, conflictID, resolutionID string) (bool, error)
	Dismiss(ctx context.Context, conflictID, reason string) (bool, error)
}
