package conflict

import (
	"testing"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/stretchr/testify/assert"
)

func withSeverities(critical, warning int) []domain.Conflict {
	var out []domain.Conflict
	for range critical {
		out = append(out, domain.Conflict{Type: domain.ConflictVendor, Severity: domain.SeverityCritical})
	}
	for range warning {
		out = append(out, domain.Conflict{Type: domain.ConflictTiming, Severity: domain.SeverityWarning})
	}
	return out
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		critical, warning int
		want              domain.RiskLevel
	}{
		{3, 1, domain.RiskHigh},
		{1, 0, domain.RiskMedium},
		{0, 0, domain.RiskLow},
		{2, 0, domain.RiskMedium},
		{0, 3, domain.RiskLow},
		{0, 4, domain.RiskMedium},
	}
	for _, tt := range tests {
		risk := assessRisk(withSeverities(tt.critical, tt.warning))
		assert.Equal(t, tt.want, risk.OverallRisk, "%d critical, %d warnings", tt.critical, tt.warning)
		assert.Equal(t, tt.critical, risk.CriticalIssues)
		assert.Equal(t, tt.warning, risk.Warnings)
		assert.Zero(t, risk.Recommendations)
	}
}

func TestWarningsFor(t *testing.T) {
	assert.Equal(t, []string{
		"3 critical conflicts need immediate attention",
		"1 potential issues should be reviewed",
	}, warningsFor(assessRisk(withSeverities(3, 1))))
	assert.Equal(t, []string{"2 potential issues should be reviewed"}, warningsFor(assessRisk(withSeverities(0, 2))))
	assert.Empty(t, warningsFor(assessRisk(nil)))
}

func TestSuggestionsFor(t *testing.T) {
	got := suggestionsFor([]domain.Conflict{{Type: domain.ConflictCultural}})
	assert.Len(t, got, 3)
	assert.Contains(t, got[0], "elders")

	got = suggestionsFor(withSeverities(1, 1))
	assert.Len(t, got, 4)
	assert.Contains(t, got[0], "multiple days")
	assert.Contains(t, got[1], "vendors")

	for _, s := range generalSuggestions {
		assert.Contains(t, suggestionsFor(nil), s)
	}
}

func TestSummarize(t *testing.T) {
	resp := Summarize(withSeverities(1, 2))
	assert.Len(t, resp.Conflicts, 3)
	assert.Equal(t, domain.RiskMedium, resp.RiskAssessment.OverallRisk)
	assert.Equal(t, []string{
		"1 critical conflicts need immediate attention",
		"2 potential issues should be reviewed",
	}, resp.Warnings)
	assert.Equal(t, suggestionsFor(resp.Conflicts), resp.Suggestions)

	empty := Summarize(nil)
	assert.Equal(t, domain.RiskLow, empty.RiskAssessment.OverallRisk)
	assert.Empty(t, empty.Warnings)
}
