package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
)

// ConflictRepo stores detected conflicts together with their ordered
// resolution options.
type ConflictRepo interface {
	Create(ctx context.Context, c *domain.Conflict) error
	GetByID(ctx context.Context, id string) (*domain.Conflict, error)
	// ListByWedding returns a wedding's conflicts in detection order. An
	// empty status matches every status.
	ListByWedding(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]*domain.Conflict, error)
	UpdateStatus(ctx context.Context, id string, u StatusUpdate) error
	DeleteActiveByWedding(ctx context.Context, weddingID string) (int64, error)
}

// StatusUpdate moves a conflict out of (or back into) the active state.
// ResolutionID and DismissReason are stored as given; empty clears them.
type StatusUpdate struct {
	Status        domain.ConflictStatus
	ResolutionID  string
	DismissReason string
	At            time.Time
}
