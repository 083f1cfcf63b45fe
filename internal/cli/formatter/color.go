package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskIndicator returns a colored risk indicator such as "● HIGH RISK".
func RiskIndicator(risk domain.RiskLevel) string {
	switch risk {
	case domain.RiskHigh:
		return StyleRed.Render("● HIGH RISK")
	case domain.RiskMedium:
		return StyleYellow.Render("● MEDIUM RISK")
	case domain.RiskLow:
		return StyleGreen.Render("● LOW RISK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

func SeverityIndicator(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return StyleRed.Render("✖ critical")
	case domain.SeverityWarning:
		return StyleYellow.Render("▲ warning")
	default:
		return StyleDim.Render(string(s))
	}
}

// StatusPill renders a conflict's lifecycle status.
func StatusPill(status domain.ConflictStatus) string {
	switch status {
	case domain.ConflictActive:
		return StyleYellow.Render("● active")
	case domain.ConflictResolved:
		return StyleGreen.Render("✔ resolved")
	case domain.ConflictDismissed:
		return StyleDim.Render("○ dismissed")
	default:
		return StyleDim.Render(string(status))
	}
}

func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleBlue
	default:
		return StyleDim
	}
}

func TimelinePill(s domain.TimelineStatus) string {
	switch s {
	case domain.TimelineOverdue:
		return StyleRed.Render("overdue")
	case domain.TimelineDueSoon:
		return StyleYellow.Render("due soon")
	case domain.TimelineUpcoming:
		return StyleGreen.Render("upcoming")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
