package service

import (
	"context"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
)

type planningService struct {
	gen      *generator.Generator
	observer UseCaseObserver
}

func NewPlanningService(gen *generator.Generator, observers ...UseCaseObserver) PlanningService {
	if gen == nil {
		gen = generator.New(nil)
	}
	return &planningService{gen: gen, observer: combineObservers(observers)}
}

func (s *planningService) Rituals(context.Context) []RitualSummary {
	templates := s.gen.Catalog().Templates()
	out := make([]RitualSummary, 0, len(templates))
	for _, t := range templates {
		out = append(out, RitualSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			TaskCount:   len(t.Tasks),
		})
	}
	return out
}

func (s *planningService) Ritual(_ context.Context, id domain.RitualType) (domain.RitualTemplate, bool) {
	return s.gen.Catalog().Get(id)
}

func (s *planningService) GenerateTasks(ctx context.Context, req generator.GenerationRequest) (resp *generator.GenerationResponse, err error) {
	fields := map[string]any{"wedding_id": req.WeddingID, "rituals": len(req.Rituals)}
	defer observe(ctx, s.observer, "generate-tasks", time.Now(), fields, &err)

	resp, err = s.gen.GenerateTasks(req)
	if err != nil {
		return nil, err
	}
	fields["task_count"] = len(resp.Tasks)
	return resp, nil
}

func (s *planningService) Timeline(ctx context.Context, rituals []string, weddingDate string) (entries []generator.TimelineEntry, err error) {
	fields := map[string]any{"rituals": len(rituals)}
	defer observe(ctx, s.observer, "timeline", time.Now(), fields, &err)

	entries, err = s.gen.Timeline(rituals, weddingDate)
	if err != nil {
		return nil, err
	}
	var overdue int
	for _, e := range entries {
		for _, t := range e.Tasks {
			if t.Status == domain.TimelineOverdue {
				overdue++
			}
		}
	}
	fields["overdue"] = overdue
	return entries, nil
}

func (s *planningService) Validate(ctx context.Context, rituals []string, weddingDate string) generator.ValidationResult {
	startedAt := time.Now()
	res := s.gen.ValidateConfiguration(rituals, weddingDate)
	observe(ctx, s.observer, "validate", startedAt, map[string]any{
		"valid":    res.IsValid,
		"warnings": len(res.Warnings),
		"errors":   len(res.Errors),
	}, nil)
	return res
}
