package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mangala/internal/generator"
)

// FormatGeneration renders generated tasks with due dates relative to now,
// followed by the recommendations and cultural notes.
func FormatGeneration(resp *generator.GenerationResponse, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Tasks (%d)", len(resp.Tasks))) + "\n")
	if len(resp.Tasks) == 0 {
		b.WriteString(Dim("  No tasks for the selected rituals.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Tasks))
		for _, t := range resp.Tasks {
			rows = append(rows, []string{
				PriorityStyle(t.Priority).Render(string(t.Priority)),
				t.Title,
				string(t.RitualType),
				Date(t.DueDate),
				DueIn(t.DueDate, now),
			})
		}
		b.WriteString(RenderTable([]string{"Priority", "Task", "Ritual", "Due", "When"}, rows))
	}

	if len(resp.Recommendations) > 0 {
		b.WriteString("\n" + Header("Recommendations") + "\n")
		b.WriteString(Bullets(resp.Recommendations))
	}
	if len(resp.CulturalNotes) > 0 {
		b.WriteString("\n" + Header("Cultural notes") + "\n")
		b.WriteString(Bullets(resp.CulturalNotes))
	}
	return b.String()
}

func FormatTimeline(entries []generator.TimelineEntry) string {
	if len(entries) == 0 {
		return Dim("No known rituals selected.") + "\n"
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(e.RitualName) + "\n")
		rows := make([][]string, 0, len(e.Tasks))
		for _, t := range e.Tasks {
			rows = append(rows, []string{
				TimelinePill(t.Status),
				t.Title,
				Date(t.DueDate),
				daysLabel(t.DaysUntilDue),
			})
		}
		b.WriteString(RenderTable([]string{"Status", "Task", "Due", "Days"}, rows))
	}
	return b.String()
}

func daysLabel(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d days late", -days)
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func FormatValidation(res generator.ValidationResult) string {
	var b strings.Builder
	if res.IsValid {
		b.WriteString(StyleGreen.Render("✔ Ritual selection is valid") + "\n")
	} else {
		b.WriteString(StyleRed.Render("✖ Ritual selection has errors") + "\n")
	}
	for _, e := range res.Errors {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("error"), e)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render("warning"), w)
	}
	return b.String()
}
