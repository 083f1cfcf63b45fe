package client

import (
	"time"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
)

// Canned responses returned when the server cannot be reached. They are
// built fresh on each call so callers may modify them.

func mockGenerationResponse(weddingDate string) *generator.GenerationResponse {
	due := time.Now().UTC().AddDate(0, 0, 30)
	if d, err := domain.ParseDate(weddingDate); err == nil {
		due = d.AddDate(0, 0, -30)
	}
	return &generator.GenerationResponse{
		Tasks: []domain.RitualTask{
			{
				ID:                       "mock-task-1",
				TemplateID:               "poruwa_setup",
				Title:                    "Book Poruwa decorator",
				Description:              "Reserve a decorator for the Poruwa structure and flowers.",
				Category:                 domain.CategoryVendor,
				Priority:                 domain.PriorityHigh,
				RitualType:               domain.RitualPoruwa,
				EstimatedDaysBeforeEvent: 30,
				DueDate:                  due,
				VendorTypes:              []string{"decorator"},
			},
			{
				ID:                       "mock-task-2",
				TemplateID:               "astrologer_consultation",
				Title:                    "Consult astrologer for auspicious time",
				Description:              "Confirm the Nakath time for the Poruwa ceremony.",
				Category:                 domain.CategoryRitual,
				Priority:                 domain.PriorityHigh,
				RitualType:               domain.RitualPoruwa,
				EstimatedDaysBeforeEvent: 30,
				DueDate:                  due,
			},
		},
		Conflicts:       []domain.Conflict{},
		Recommendations: []string{"Confirm the auspicious time with your astrologer early"},
		CulturalNotes:   []string{"The Poruwa ceremony is performed at the auspicious time"},
	}
}

func mockDetectionResponse(weddingID string) *conflict.DetectionResponse {
	return conflict.Summarize([]domain.Conflict{
		{
			ID:              "mock-conflict-1",
			WeddingID:       weddingID,
			Type:            domain.ConflictVendor,
			Severity:        domain.SeverityWarning,
			Title:           "Vendor availability unconfirmed",
			Description:     "Vendor schedules could not be checked against the planning server.",
			AffectedEvents:  []string{},
			AffectedVendors: []string{},
			ResolutionOptions: []domain.ResolutionOption{
				{
					ID:              "mock-resolution-1",
					Type:            domain.ResolutionDismiss,
					Title:           "Check again later",
					Description:     "Re-run detection when the planning server is reachable.",
					EstimatedEffort: domain.EffortLow,
				},
			},
			CreatedAt: time.Now().UTC(),
			Status:    domain.ConflictActive,
		},
	})
}
