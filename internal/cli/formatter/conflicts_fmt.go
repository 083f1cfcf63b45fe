package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
)

func FormatDetection(resp *conflict.DetectionResponse) string {
	var b strings.Builder
	ra := resp.RiskAssessment
	fmt.Fprintf(&b, "%s  %s\n\n", RiskIndicator(ra.OverallRisk),
		Dim(fmt.Sprintf("%d critical, %d warnings", ra.CriticalIssues, ra.Warnings)))

	if len(resp.Conflicts) == 0 {
		b.WriteString(StyleGreen.Render("No conflicts found.") + "\n")
	} else {
		for i := range resp.Conflicts {
			b.WriteString(FormatConflict(&resp.Conflicts[i]))
			b.WriteString("\n")
		}
	}

	if len(resp.Warnings) > 0 {
		b.WriteString(Header("Warnings") + "\n")
		b.WriteString(Bullets(resp.Warnings))
		b.WriteString("\n")
	}
	if len(resp.Suggestions) > 0 {
		b.WriteString(Header("Suggestions") + "\n")
		b.WriteString(Bullets(resp.Suggestions))
	}
	return b.String()
}

// FormatConflict renders one conflict with its numbered resolution options.
func FormatConflict(c *domain.Conflict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", SeverityIndicator(c.Severity), Bold(c.Title), Dim(c.ID))
	fmt.Fprintf(&b, "  %s\n", c.Description)
	if len(c.AffectedEvents) > 0 {
		fmt.Fprintf(&b, "  Events:  %s\n", strings.Join(c.AffectedEvents, ", "))
	}
	if len(c.AffectedVendors) > 0 {
		fmt.Fprintf(&b, "  Vendors: %s\n", strings.Join(c.AffectedVendors, ", "))
	}
	if c.Status != "" && c.Status != domain.ConflictActive {
		fmt.Fprintf(&b, "  Status:  %s\n", StatusPill(c.Status))
		if c.DismissReason != "" {
			fmt.Fprintf(&b, "  Reason:  %s\n", c.DismissReason)
		}
	}
	for i, o := range c.ResolutionOptions {
		label := fmt.Sprintf("%d. %s", i+1, o.Title)
		if c.ResolutionID == o.ID {
			label = StyleGreen.Render(label + " ✔")
		}
		fmt.Fprintf(&b, "    %s %s\n", label, Dim(fmt.Sprintf("(%s, %s effort)", o.Type, o.EstimatedEffort)))
		if o.RequiredAction != "" {
			fmt.Fprintf(&b, "       %s\n", Dim(o.RequiredAction))
		}
	}
	return b.String()
}

func FormatConflictList(conflicts []*domain.Conflict) string {
	if len(conflicts) == 0 {
		return Dim("No conflicts recorded.") + "\n"
	}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, []string{
			c.ID,
			SeverityIndicator(c.Severity),
			string(c.Type),
			c.Title,
			StatusPill(c.Status),
		})
	}
	return RenderTable([]string{"ID", "Severity", "Type", "Title", "Status"}, rows)
}
