package catalog

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/mangala/internal/domain"
)

// validate checks the decoded catalog for structural errors. All problems
// are reported together.
func (f *catalogFile) validate() error {
	var errs []error

	if len(f.Rituals) == 0 {
		errs = append(errs, fmt.Errorf("catalog defines no rituals"))
	}

	seen := make(map[string]bool)
	for i, r := range f.Rituals {
		if r.ID == "" {
			errs = append(errs, fmt.Errorf("ritual[%d]: id is required", i))
			continue
		}
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("ritual[%d]: duplicate id %q", i, r.ID))
		}
		seen[r.ID] = true

		if r.Name == "" {
			errs = append(errs, fmt.Errorf("ritual %q: name is required", r.ID))
		}
		if r.Timing != nil {
			errs = append(errs, r.Timing.validate(r.ID)...)
		}
		errs = append(errs, r.validateTasks()...)
	}

	return errors.Join(errs...)
}

func (tc *timingConfig) validate(ritualID string) []error {
	var errs []error
	if tc.MinDaysBeforeWedding != nil && *tc.MinDaysBeforeWedding < 0 {
		errs = append(errs, fmt.Errorf("ritual %q: min_days_before_wedding must be >= 0", ritualID))
	}
	if tc.MaxDaysBeforeWedding != nil && *tc.MaxDaysBeforeWedding < 0 {
		errs = append(errs, fmt.Errorf("ritual %q: max_days_before_wedding must be >= 0", ritualID))
	}
	if tc.MinDaysBeforeWedding != nil && tc.MaxDaysBeforeWedding != nil &&
		*tc.MinDaysBeforeWedding > *tc.MaxDaysBeforeWedding {
		errs = append(errs, fmt.Errorf("ritual %q: min_days_before_wedding %d exceeds max_days_before_wedding %d",
			ritualID, *tc.MinDaysBeforeWedding, *tc.MaxDaysBeforeWedding))
	}
	return errs
}

func (r *ritualConfig) validateTasks() []error {
	var errs []error

	if len(r.Tasks) == 0 {
		errs = append(errs, fmt.Errorf("ritual %q: at least one task is required", r.ID))
	}

	ids := make(map[string]bool)
	for i, t := range r.Tasks {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("ritual %q task[%d]: id is required", r.ID, i))
			continue
		}
		if ids[t.ID] {
			errs = append(errs, fmt.Errorf("ritual %q task[%d]: duplicate id %q", r.ID, i, t.ID))
		}
		ids[t.ID] = true

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("ritual %q task %q: title is required", r.ID, t.ID))
		}
		if !domain.ValidTaskCategories[domain.TaskCategory(t.Category)] {
			errs = append(errs, fmt.Errorf("ritual %q task %q: invalid category %q", r.ID, t.ID, t.Category))
		}
		if !domain.Priority(t.Priority).IsValid() {
			errs = append(errs, fmt.Errorf("ritual %q task %q: invalid priority %q (must be high, medium, or low)", r.ID, t.ID, t.Priority))
		}
		if t.LeadDays < 0 {
			errs = append(errs, fmt.Errorf("ritual %q task %q: lead_days must be >= 0", r.ID, t.ID))
		}
	}

	for _, t := range r.Tasks {
		for _, dep := range t.DependsOn {
			if !ids[dep] {
				errs = append(errs, fmt.Errorf("ritual %q task %q depends on unknown task: %s", r.ID, t.ID, dep))
			}
		}
	}

	if err := r.checkCycles(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// checkCycles runs a DFS over depends_on edges.
func (r *ritualConfig) checkCycles() error {
	deps := make(map[string][]string, len(r.Tasks))
	for _, t := range r.Tasks {
		deps[t.ID] = t.DependsOn
	}

	visited := make(map[string]bool)
	inStack := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if inStack[id] {
			return fmt.Errorf("ritual %q: cycle detected involving task: %s", r.ID, id)
		}
		if visited[id] {
			return nil
		}
		visited[id] = true
		inStack[id] = true
		for _, dep := range deps[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		inStack[id] = false
		return nil
	}

	for _, t := range r.Tasks {
		if err := visit(t.ID); err != nil {
			return err
		}
	}
	return nil
}
