package generator

import (
	"slices"

	"github.com/alexanderramin/mangala/internal/domain"
)

type ritualGuidance struct {
	ritual          domain.RitualType
	recommendations []string
	culturalNotes   []string
}

// guidanceTable is checked in this order regardless of the order the
// caller selected rituals in.
var guidanceTable = []ritualGuidance{
	{
		ritual: domain.RitualPoruwa,
		recommendations: []string{
			"Book your astrologer first and fix the nakath before confirming other vendors",
			"Confirm the Poruwa decorator and drummers can work around the auspicious time",
		},
		culturalNotes: []string{
			"The Poruwa ceremony follows the auspicious times set by the astrologer",
			"Elders traditionally bless the couple with betel leaves after the ceremony",
		},
	},
	{
		ritual: domain.RitualHomeComing,
		recommendations: []string{
			"Agree the home coming date with the groom's family early",
		},
		culturalNotes: []string{
			"The home coming is traditionally hosted by the groom's family",
		},
	},
	{
		ritual: domain.RitualReception,
		recommendations: []string{
			"Reserve the reception venue at least six months ahead",
			"Share an estimated guest count with the caterer as soon as possible",
		},
		culturalNotes: []string{
			"Receptions often blend traditional and western customs",
		},
	},
	{
		ritual: domain.RitualEngagement,
		recommendations: []string{
			"Hold the engagement at least a month before the wedding",
		},
		culturalNotes: []string{
			"Horoscope matching is customarily completed before the engagement",
		},
	},
	{
		ritual: domain.RitualNalangu,
		recommendations: []string{
			"Schedule the nalangu one to three days before the wedding",
		},
		culturalNotes: []string{
			"The nalangu is led by married women elders from both families",
		},
	},
}

var generalRecommendations = []string{
	"Create a detailed day-of timeline and share it with every vendor",
	"Keep at least 30 minutes of buffer between consecutive events",
	"Reconfirm all vendor bookings two weeks before the wedding",
}

var generalCulturalNotes = []string{
	"Respect both families' traditions when ordering the ceremonies",
	"Consult elders about customs specific to your families",
	"Allow time for religious observances on the wedding day",
}

// guidanceFor returns the recommendations and cultural notes for the
// selected rituals, followed by the general entries.
func guidanceFor(rituals []string) ([]string, []string) {
	var recs, notes []string
	for _, g := range guidanceTable {
		if !slices.Contains(rituals, string(g.ritual)) {
			continue
		}
		recs = append(recs, g.recommendations...)
		notes = append(notes, g.culturalNotes...)
	}
	recs = append(recs, generalRecommendations...)
	notes = append(notes, generalCulturalNotes...)
	return recs, notes
}
