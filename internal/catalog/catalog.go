// Package catalog provides the ritual template catalog.
//
// The catalog is a TOML document embedded in the binary and decoded once
// per process. Templates are immutable after loading; callers receive
// copies and may not mutate the catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/alexanderramin/mangala/internal/domain"
)

//go:embed rituals.toml
var defaultCatalogTOML []byte

// catalogFile is the on-disk shape of rituals.toml.
type catalogFile struct {
	Rituals []ritualConfig `toml:"ritual"`
}

type ritualConfig struct {
	ID          string        `toml:"id"`
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Timing      *timingConfig `toml:"timing"`
	Vendors     *vendorConfig `toml:"vendors"`
	Tasks       []taskConfig  `toml:"task"`
}

type timingConfig struct {
	MinDaysBeforeWedding *int `toml:"min_days_before_wedding"`
	MaxDaysBeforeWedding *int `toml:"max_days_before_wedding"`
}

type vendorConfig struct {
	Required           []string `toml:"required"`
	Optional           []string `toml:"optional"`
	CulturalPreference []string `toml:"cultural_preference"`
}

type taskConfig struct {
	ID           string   `toml:"id"`
	Title        string   `toml:"title"`
	Description  string   `toml:"description"`
	Category     string   `toml:"category"`
	Priority     string   `toml:"priority"`
	LeadDays     int      `toml:"lead_days"`
	VendorTypes  []string `toml:"vendor_types"`
	DependsOn    []string `toml:"depends_on"`
	CulturalNote string   `toml:"cultural_note"`
}

// Catalog is an ordered, read-only set of ritual templates.
type Catalog struct {
	order     []domain.RitualType
	templates map[domain.RitualType]domain.RitualTemplate
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog decoded from the embedded
// rituals.toml.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustParse(defaultCatalogTOML)
	})
	return defaultCatalog
}

// ParseFile reads and parses a catalog TOML file.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied catalog path
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// MustParse is like Parse but panics on error. Only used for the embedded
// catalog, which is covered by tests.
func MustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Parse decodes and validates catalog TOML content.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	c := &Catalog{
		order:     make([]domain.RitualType, 0, len(f.Rituals)),
		templates: make(map[domain.RitualType]domain.RitualTemplate, len(f.Rituals)),
	}
	for _, rc := range f.Rituals {
		tmpl := rc.toDomain()
		c.order = append(c.order, tmpl.ID)
		c.templates[tmpl.ID] = tmpl
	}
	return c, nil
}

// TasksForRituals returns the templates for the requested ritual ids in
// catalog order. Unknown ids are dropped.
func (c *Catalog) TasksForRituals(ids []string) []domain.RitualTemplate {
	wanted := make(map[domain.RitualType]bool, len(ids))
	for _, id := range ids {
		wanted[domain.RitualType(id)] = true
	}

	var out []domain.RitualTemplate
	for _, id := range c.order {
		if wanted[id] {
			out = append(out, copyTemplate(c.templates[id]))
		}
	}
	return out
}

// Get returns a copy of the template for id.
func (c *Catalog) Get(id domain.RitualType) (domain.RitualTemplate, bool) {
	t, ok := c.templates[id]
	if !ok {
		return domain.RitualTemplate{}, false
	}
	return copyTemplate(t), true
}

// DisplayName returns the ritual's display name, or the id itself when the
// ritual is unknown.
func (c *Catalog) DisplayName(id domain.RitualType) string {
	if t, ok := c.templates[id]; ok {
		return t.Name
	}
	return string(id)
}

// AvailableRitualTypes lists ritual ids in catalog order.
func (c *Catalog) AvailableRitualTypes() []domain.RitualType {
	out := make([]domain.RitualType, len(c.order))
	copy(out, c.order)
	return out
}

// Templates returns copies of every template in catalog order.
func (c *Catalog) Templates() []domain.RitualTemplate {
	out := make([]domain.RitualTemplate, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyTemplate(c.templates[id]))
	}
	return out
}

func (rc ritualConfig) toDomain() domain.RitualTemplate {
	t := domain.RitualTemplate{
		ID:          domain.RitualType(rc.ID),
		Name:        rc.Name,
		Description: rc.Description,
		Tasks:       make([]domain.TaskTemplate, 0, len(rc.Tasks)),
	}
	if rc.Timing != nil {
		t.TimingConstraints = &domain.TimingConstraints{
			MinDaysBeforeWedding: rc.Timing.MinDaysBeforeWedding,
			MaxDaysBeforeWedding: rc.Timing.MaxDaysBeforeWedding,
		}
	}
	if rc.Vendors != nil {
		t.VendorRequirements = &domain.VendorRequirements{
			Required:           rc.Vendors.Required,
			Optional:           rc.Vendors.Optional,
			CulturalPreference: rc.Vendors.CulturalPreference,
		}
	}
	for _, tc := range rc.Tasks {
		t.Tasks = append(t.Tasks, domain.TaskTemplate{
			ID:                 tc.ID,
			Title:              tc.Title,
			Description:        tc.Description,
			Category:           domain.TaskCategory(tc.Category),
			Priority:           domain.Priority(tc.Priority),
			LeadDays:           tc.LeadDays,
			RecommendedVendors: tc.VendorTypes,
			Dependencies:       tc.DependsOn,
			CulturalNote:       tc.CulturalNote,
		})
	}
	return t
}

func copyTemplate(t domain.RitualTemplate) domain.RitualTemplate {
	cp := t
	cp.Tasks = make([]domain.TaskTemplate, len(t.Tasks))
	for i, task := range t.Tasks {
		task.RecommendedVendors = cloneStrings(task.RecommendedVendors)
		task.Dependencies = cloneStrings(task.Dependencies)
		cp.Tasks[i] = task
	}
	if t.TimingConstraints != nil {
		cp.TimingConstraints = &domain.TimingConstraints{
			MinDaysBeforeWedding: cloneInt(t.TimingConstraints.MinDaysBeforeWedding),
			MaxDaysBeforeWedding: cloneInt(t.TimingConstraints.MaxDaysBeforeWedding),
		}
	}
	if t.VendorRequirements != nil {
		vr := domain.VendorRequirements{
			Required:           cloneStrings(t.VendorRequirements.Required),
			Optional:           cloneStrings(t.VendorRequirements.Optional),
			CulturalPreference: cloneStrings(t.VendorRequirements.CulturalPreference),
		}
		cp.VendorRequirements = &vr
	}
	return cp
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
