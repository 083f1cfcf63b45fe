package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/db"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/repository"
)

type conflictService struct {
	detector  *conflict.Detector
	conflicts repository.ConflictRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

func NewConflictService(
	detector *conflict.Detector,
	conflicts repository.ConflictRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ConflictService {
	if detector == nil {
		detector = conflict.New()
	}
	return &conflictService{
		detector:  detector,
		conflicts: conflicts,
		uow:       uow,
		observer:  combineObservers(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *conflictService) Detect(ctx context.Context, req conflict.DetectionRequest, persist bool) (resp *conflict.DetectionResponse, err error) {
	fields := map[string]any{
		"wedding_id": req.WeddingID,
		"events":     len(req.Events),
		"vendors":    len(req.Vendors),
		"persist":    persist,
	}
	defer observe(ctx, s.observer, "detect-conflicts", time.Now(), fields, &err)

	if persist && strings.TrimSpace(req.WeddingID) == "" {
		return nil, ErrMissingWeddingID
	}

	resp = s.detector.Detect(req)
	fields["conflicts"] = len(resp.Conflicts)
	fields["risk"] = string(resp.RiskAssessment.OverallRisk)
	if !persist {
		return resp, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txConflicts := repository.NewSQLiteConflictRepo(tx)
		replaced, err := txConflicts.DeleteActiveByWedding(ctx, req.WeddingID)
		if err != nil {
			return err
		}
		fields["replaced"] = replaced
		for i := range resp.Conflicts {
			if err := txConflicts.Create(ctx, &resp.Conflicts[i]); err != nil {
				return fmt.Errorf("saving conflict %s: %w", resp.Conflicts[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persisting detected conflicts: %w", err)
	}
	return resp, nil
}

func (s *conflictService) Get(ctx context.Context, id string) (*domain.Conflict, error) {
	return s.conflicts.GetByID(ctx, id)
}

func (s *conflictService) List(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]*domain.Conflict, error) {
	if strings.TrimSpace(weddingID) == "" {
		return nil, ErrMissingWeddingID
	}
	return s.conflicts.ListByWedding(ctx, weddingID, status)
}

// Resolve marks an active conflict resolved with one of its own options.
func (s *conflictService) Resolve(ctx context.Context, conflictID, resolutionID string) (ok bool, err error) {
	fields := map[string]any{"conflict_id": conflictID, "resolution_id": resolutionID}
	defer observe(ctx, s.observer, "resolve-conflict", time.Now(), fields, &err)

	err = s.transition(ctx, conflictID, func(c *domain.Conflict) (repository.StatusUpdate, error) {
		opt, found := c.Option(resolutionID)
		if !found {
			return repository.StatusUpdate{}, fmt.Errorf("%s on conflict %s: %w", resolutionID, conflictID, ErrInvalidResolution)
		}
		fields["resolution_type"] = string(opt.Type)
		return repository.StatusUpdate{Status: domain.ConflictResolved, ResolutionID: opt.ID}, nil
	})
	return err == nil, err
}

// Dismiss marks an active conflict dismissed, keeping the reason.
func (s *conflictService) Dismiss(ctx context.Context, conflictID, reason string) (ok bool, err error) {
	fields := map[string]any{"conflict_id": conflictID}
	defer observe(ctx, s.observer, "dismiss-conflict", time.Now(), fields, &err)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return false, ErrMissingReason
	}
	err = s.transition(ctx, conflictID, func(*domain.Conflict) (repository.StatusUpdate, error) {
		return repository.StatusUpdate{Status: domain.ConflictDismissed, DismissReason: reason}, nil
	})
	return err == nil, err
}

// transition loads an active conflict and applies the update decided by
// fn in a single transaction.
func (s *conflictService) transition(ctx context.Context, conflictID string, fn func(*domain.Conflict) (repository.StatusUpdate, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txConflicts := repository.NewSQLiteConflictRepo(tx)
		c, err := txConflicts.GetByID(ctx, conflictID)
		if err != nil {
			return err
		}
		if c.Status != domain.ConflictActive {
			return fmt.Errorf("conflict %s is %s: %w", conflictID, c.Status, ErrNotActive)
		}
		update, err := fn(c)
		if err != nil {
			return err
		}
		update.At = s.now()
		return txConflicts.UpdateStatus(ctx, conflictID, update)
	})
}
