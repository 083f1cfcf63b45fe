package cli

import (
	"fmt"

	"github.com/alexanderramin/mangala/internal/cli/formatter"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// mangalaHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func mangalaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// resolutionForm builds the select for c's options, writing the chosen
// option id to value.
func resolutionForm(c *domain.Conflict, value *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(c.ResolutionOptions))
	for _, o := range c.ResolutionOptions {
		label := fmt.Sprintf("%s (%s effort)", o.Title, o.EstimatedEffort)
		options = append(options, huh.NewOption(label, o.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(c.Title).
				Description(c.Description).
				Options(options...).
				Value(value),
		),
	).WithTheme(mangalaHuhTheme()).WithShowHelp(false)
}

func huhPickResolution(c *domain.Conflict) (string, error) {
	if len(c.ResolutionOptions) == 0 {
		return "", fmt.Errorf("conflict %s has no resolution options", c.ID)
	}
	var choice string
	if err := resolutionForm(c, &choice).Run(); err != nil {
		return "", fmt.Errorf("choosing a resolution: %w", err)
	}
	return choice, nil
}
