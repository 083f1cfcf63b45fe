// Package generator expands selected rituals into dated wedding tasks and
// evaluates ritual timing rules against the wedding date.
package generator

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/mangala/internal/catalog"
	"github.com/alexanderramin/mangala/internal/domain"
)

// GenerationRequest selects the rituals to plan for one wedding. Current
// events and vendors are accepted for API compatibility but do not affect
// generation.
type GenerationRequest struct {
	WeddingID      string          `json:"weddingId" yaml:"weddingId"`
	Rituals        []string        `json:"rituals" yaml:"rituals"`
	WeddingDate    string          `json:"weddingDate" yaml:"weddingDate"`
	CurrentEvents  []domain.Event  `json:"currentEvents,omitempty" yaml:"currentEvents,omitempty"`
	CurrentVendors []domain.Vendor `json:"currentVendors,omitempty" yaml:"currentVendors,omitempty"`
}

type GenerationResponse struct {
	Tasks           []domain.RitualTask `json:"tasks" yaml:"tasks"`
	Conflicts       []domain.Conflict   `json:"conflicts" yaml:"conflicts"`
	Recommendations []string            `json:"recommendations" yaml:"recommendations"`
	CulturalNotes   []string            `json:"culturalNotes" yaml:"culturalNotes"`
}

// Generator is safe for concurrent use; it only reads the catalog.
type Generator struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

type Option func(*Generator)

// WithClock overrides the wall clock used for timeline and validation.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator over cat. A nil catalog uses catalog.Default().
func New(cat *catalog.Catalog, opts ...Option) *Generator {
	if cat == nil {
		cat = catalog.Default()
	}
	g := &Generator{
		catalog: cat,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the catalog the generator reads from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// GenerateTasks instantiates every task of every known ritual in the
// request, sorted by priority (high first) and then by lead time
// (soonest deadline first). Unknown ritual ids are ignored.
func (g *Generator) GenerateTasks(req GenerationRequest) (*GenerationResponse, error) {
	weddingDate, err := domain.ParseDate(req.WeddingDate)
	if err != nil {
		return nil, fmt.Errorf("wedding date: %w", err)
	}

	var tasks []domain.RitualTask
	for _, tmpl := range g.catalog.TasksForRituals(req.Rituals) {
		tasks = append(tasks, instantiate(tmpl, weddingDate)...)
	}
	sortTasks(tasks)

	recommendations, notes := guidanceFor(req.Rituals)

	if tasks == nil {
		tasks = []domain.RitualTask{}
	}
	return &GenerationResponse{
		Tasks:           tasks,
		Conflicts:       []domain.Conflict{},
		Recommendations: recommendations,
		CulturalNotes:   notes,
	}, nil
}

// GenerateTasksForRitual instantiates the tasks of a single ritual in
// template order. Unknown rituals yield nil.
func (g *Generator) GenerateTasksForRitual(ritual domain.RitualType, weddingDate string) ([]domain.RitualTask, error) {
	date, err := domain.ParseDate(weddingDate)
	if err != nil {
		return nil, fmt.Errorf("wedding date: %w", err)
	}
	tmpl, ok := g.catalog.Get(ritual)
	if !ok {
		return nil, nil
	}
	return instantiate(tmpl, date), nil
}

// instantiate creates fresh task instances for tmpl with resolved due dates.
func instantiate(tmpl domain.RitualTemplate, weddingDate time.Time) []domain.RitualTask {
	tasks := make([]domain.RitualTask, 0, len(tmpl.Tasks))
	for _, tt := range tmpl.Tasks {
		tasks = append(tasks, domain.RitualTask{
			ID:                       domain.NewID("task"),
			TemplateID:               tt.ID,
			Title:                    tt.Title,
			Description:              tt.Description,
			Category:                 tt.Category,
			Priority:                 tt.Priority,
			RitualType:               tmpl.ID,
			EstimatedDaysBeforeEvent: tt.LeadDays,
			DueDate:                  dueDate(weddingDate, tt.LeadDays),
			VendorTypes:              tt.RecommendedVendors,
			Dependencies:             tt.Dependencies,
			CulturalNote:             tt.CulturalNote,
		})
	}
	return tasks
}

func dueDate(weddingDate time.Time, leadDays int) time.Time {
	return weddingDate.AddDate(0, 0, -leadDays)
}

func sortTasks(tasks []domain.RitualTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return tasks[i].EstimatedDaysBeforeEvent < tasks[j].EstimatedDaysBeforeEvent
	})
}
