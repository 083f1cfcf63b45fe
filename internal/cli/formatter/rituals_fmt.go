package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/service"
)

func FormatRitualList(rituals []service.RitualSummary) string {
	if len(rituals) == 0 {
		return Dim("No rituals in the catalog.") + "\n"
	}
	rows := make([][]string, 0, len(rituals))
	for _, r := range rituals {
		rows = append(rows, []string{string(r.ID), Bold(r.Name), strconv.Itoa(r.TaskCount), r.Description})
	}
	return RenderTable([]string{"ID", "Name", "Tasks", "Description"}, rows)
}

// FormatRitual shows a catalog template with its timing window and tasks.
func FormatRitual(t domain.RitualTemplate) string {
	var b strings.Builder
	b.WriteString(Header(t.Name) + "\n")
	fmt.Fprintf(&b, "  %s\n", t.Description)
	if w := timingWindow(t.TimingConstraints); w != "" {
		fmt.Fprintf(&b, "  Window:  %s\n", w)
	}
	if vr := t.VendorRequirements; vr != nil {
		if len(vr.Required) > 0 {
			fmt.Fprintf(&b, "  Vendors: %s\n", strings.Join(vr.Required, ", "))
		}
		if len(vr.Optional) > 0 {
			fmt.Fprintf(&b, "  Optional: %s\n", Dim(strings.Join(vr.Optional, ", ")))
		}
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(t.Tasks))
	for _, task := range t.Tasks {
		rows = append(rows, []string{
			task.Title,
			string(task.Category),
			PriorityStyle(task.Priority).Render(string(task.Priority)),
			fmt.Sprintf("%dd", task.LeadDays),
			strings.Join(task.Dependencies, ", "),
		})
	}
	b.WriteString(RenderTable([]string{"Task", "Category", "Priority", "Lead", "Depends on"}, rows))
	return b.String()
}

func timingWindow(tc *domain.TimingConstraints) string {
	if tc == nil {
		return ""
	}
	switch {
	case tc.MinDaysBeforeWedding != nil && tc.MaxDaysBeforeWedding != nil:
		return fmt.Sprintf("%d–%d days before the wedding", *tc.MinDaysBeforeWedding, *tc.MaxDaysBeforeWedding)
	case tc.MinDaysBeforeWedding != nil:
		return fmt.Sprintf("at least %d days before the wedding", *tc.MinDaysBeforeWedding)
	case tc.MaxDaysBeforeWedding != nil:
		return fmt.Sprintf("at most %d days before the wedding", *tc.MaxDaysBeforeWedding)
	}
	return ""
}
