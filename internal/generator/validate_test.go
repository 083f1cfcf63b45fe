package generator

import (
	"testing"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfiguration_PastWeddingDate(t *testing.T) {
	g := newTestGenerator()
	past := fixedNow.AddDate(-1, 0, 0).Format(domain.DateLayout)

	res := g.ValidateConfiguration(nil, past)
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Wedding date cannot be in the past"}, res.Errors)
}

func TestValidateConfiguration_TodayIsNotPast(t *testing.T) {
	g := newTestGenerator()
	res := g.ValidateConfiguration([]string{"reception"}, fixedNow.Format(domain.DateLayout))
	assert.NotContains(t, res.Errors, msgPastWeddingDate)
}

func TestValidateConfiguration_InvalidDate(t *testing.T) {
	g := newTestGenerator()
	res := g.ValidateConfiguration([]string{"poruwa"}, "soon")
	assert.False(t, res.IsValid)
	assert.Equal(t, []string{"Invalid wedding date"}, res.Errors)
}

func TestValidateConfiguration_ReligiousCeremonySpacing(t *testing.T) {
	g := newTestGenerator()

	res := g.ValidateConfiguration([]string{"poruwa", "religious_ceremony"}, "2026-12-01")
	assert.True(t, res.IsValid)
	assert.Equal(t, []string{msgCeremonySpacing}, res.Warnings)

	res = g.ValidateConfiguration([]string{"poruwa"}, "2026-12-01")
	assert.Empty(t, res.Warnings)
}

func TestValidateConfiguration_MinLeadTimeWarning(t *testing.T) {
	g := newTestGenerator()
	// 30 days out; poruwa wants 60 days of preparation.
	wedding := fixedNow.AddDate(0, 0, 30).Format(domain.DateLayout)

	res := g.ValidateConfiguration([]string{"poruwa", "home_coming"}, wedding)
	assert.True(t, res.IsValid, "warnings do not affect validity")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Poruwa Ceremony")
	assert.Empty(t, res.Errors)
}

func TestValidateConfiguration_MaxWindowError(t *testing.T) {
	g := newTestGenerator()
	// Two days out: nalangu's 3-day window date has passed, its 1-day one has not.
	wedding := fixedNow.AddDate(0, 0, 2).Format(domain.DateLayout)

	res := g.ValidateConfiguration([]string{"nalangu"}, wedding)
	assert.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Nalangu Ceremony")
	assert.Empty(t, res.Warnings)
}

func TestValidateConfiguration_FarFutureIsClean(t *testing.T) {
	g := newTestGenerator()
	res := g.ValidateConfiguration(
		[]string{"poruwa", "home_coming", "reception", "engagement", "nalangu"}, "2027-06-15")
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.Errors)
}
