package conflict

import (
	"fmt"

	"github.com/alexanderramin/mangala/internal/domain"
)

var generalSuggestions = []string{
	"Share the final timeline with every vendor a week before the wedding",
	"Keep traditional and cultural ceremonies in mind when moving events",
}

func assessRisk(conflicts []domain.Conflict) RiskAssessment {
	var critical, warnings int
	for _, c := range conflicts {
		switch c.Severity {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityWarning:
			warnings++
		}
	}

	risk := domain.RiskLow
	switch {
	case critical > 2:
		risk = domain.RiskHigh
	case critical > 0 || warnings > 3:
		risk = domain.RiskMedium
	}

	// Recommendations counts conflicts with neither severity.
	return RiskAssessment{
		OverallRisk:     risk,
		CriticalIssues:  critical,
		Warnings:        warnings,
		Recommendations: max(0, len(conflicts)-critical-warnings),
	}
}

func warningsFor(risk RiskAssessment) []string {
	out := []string{}
	if risk.CriticalIssues > 0 {
		out = append(out, fmt.Sprintf("%d critical conflicts need immediate attention", risk.CriticalIssues))
	}
	if risk.Warnings > 0 {
		out = append(out, fmt.Sprintf("%d potential issues should be reviewed", risk.Warnings))
	}
	return out
}

func suggestionsFor(conflicts []domain.Conflict) []string {
	present := make(map[domain.ConflictType]bool)
	for _, c := range conflicts {
		present[c.Type] = true
	}

	var out []string
	if present[domain.ConflictTiming] {
		out = append(out, "Consider spreading events across multiple days to ease timing pressure")
	}
	if present[domain.ConflictVendor] {
		out = append(out, "Book key vendors well in advance and confirm availability for each event")
	}
	if present[domain.ConflictCultural] {
		out = append(out, "Consult family elders about traditional ceremony order and timing")
	}
	return append(out, generalSuggestions...)
}
