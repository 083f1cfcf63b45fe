package generator

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/mangala/internal/domain"
)

const (
	msgPastWeddingDate    = "Wedding date cannot be in the past"
	msgInvalidWeddingDate = "Invalid wedding date"
	msgCeremonySpacing    = "Poruwa ceremony and religious ceremony should be scheduled with enough time between them"

	// religiousCeremony is matched literally; it is not a catalog ritual.
	religiousCeremony = "religious_ceremony"
)

// ValidationResult reports rule violations as data. Warnings never affect
// validity.
type ValidationResult struct {
	IsValid  bool     `json:"isValid" yaml:"isValid"`
	Warnings []string `json:"warnings" yaml:"warnings"`
	Errors   []string `json:"errors" yaml:"errors"`
}

// ValidateConfiguration checks the wedding date and each selected ritual's
// timing constraints against the current time.
func (g *Generator) ValidateConfiguration(rituals []string, weddingDate string) ValidationResult {
	res := ValidationResult{Warnings: []string{}, Errors: []string{}}

	date, err := domain.ParseDate(weddingDate)
	if err != nil {
		res.Errors = append(res.Errors, msgInvalidWeddingDate)
		return res
	}
	now := g.now()

	if date.Before(startOfDay(now)) {
		res.Errors = append(res.Errors, msgPastWeddingDate)
	}

	if slices.Contains(rituals, string(domain.RitualPoruwa)) && slices.Contains(rituals, religiousCeremony) {
		res.Warnings = append(res.Warnings, msgCeremonySpacing)
	}

	for _, r := range rituals {
		tmpl, ok := g.catalog.Get(domain.RitualType(r))
		if !ok || tmpl.TimingConstraints == nil {
			continue
		}
		tc := tmpl.TimingConstraints
		if tc.MinDaysBeforeWedding != nil && dueDate(date, *tc.MinDaysBeforeWedding).Before(now) {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s needs at least %d days of preparation before the wedding", tmpl.Name, *tc.MinDaysBeforeWedding))
		}
		if tc.MaxDaysBeforeWedding != nil && dueDate(date, *tc.MaxDaysBeforeWedding).Before(now) {
			res.Errors = append(res.Errors, fmt.Sprintf(
				"Too late to arrange %s: it must be confirmed %d days before the wedding", tmpl.Name, *tc.MaxDaysBeforeWedding))
		}
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
