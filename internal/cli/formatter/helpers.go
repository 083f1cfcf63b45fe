package formatter

import (
	"fmt"
	"strings"
	"time"
)

// DueIn describes due relative to now in whole calendar days, both taken
// in due's location.
func DueIn(due, now time.Time) string {
	y, m, d := now.In(due.Location()).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, due.Location())
	y, m, d = due.Date()
	days := int(time.Date(y, m, d, 0, 0, 0, 0, due.Location()).Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days >= 14:
		return fmt.Sprintf("in %d weeks", days/7)
	case days > 0:
		return fmt.Sprintf("in %d days", days)
	case days <= -14:
		return fmt.Sprintf("%d weeks ago", -days/7)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

// Bullets renders one "  • item" line per entry.
func Bullets(items []string) string {
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("•"), it)
	}
	return b.String()
}

// Date formats a due date as "Jan 2, 2006".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
