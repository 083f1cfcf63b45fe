package conflict

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mangala/internal/domain"
)

func option(typ domain.ResolutionType, title, description string, effort domain.Effort) domain.ResolutionOption {
	return domain.ResolutionOption{
		ID:              domain.NewID("resolution"),
		Type:            typ,
		Title:           title,
		Description:     description,
		EstimatedEffort: effort,
	}
}

func overlapOptions(later domain.Event, slots []domain.TimeSlot) []domain.ResolutionOption {
	move := option(domain.ResolutionReschedule,
		fmt.Sprintf("Reschedule %s", later.Name),
		fmt.Sprintf("Move %s so it starts after the earlier event has finished", later.Name),
		domain.EffortMedium)
	if len(slots) > 0 {
		move.RequiredAction = fmt.Sprintf("Update %s to %s-%s", later.Name, slots[0].StartTime, slots[0].EndTime)
		move.AutoResolvable = true
	}
	otherDay := option(domain.ResolutionReschedule,
		"Move to another day",
		fmt.Sprintf("Hold %s on a different day to remove the overlap", later.Name),
		domain.EffortHigh)
	otherDay.RequiredAction = "Confirm the new date with the venue and every linked vendor"
	return []domain.ResolutionOption{move, otherDay}
}

func bufferOptions(first, second domain.Event) []domain.ResolutionOption {
	extend := option(domain.ResolutionReschedule,
		"Add buffer time",
		fmt.Sprintf("Leave at least %d minutes between %s and %s", minBufferMinutes, first.Name, second.Name),
		domain.EffortLow)
	accept := option(domain.ResolutionDismiss,
		"Accept tight schedule",
		"Keep the current times if both events share a venue and vendors",
		domain.EffortLow)
	return []domain.ResolutionOption{extend, accept}
}

func vendorOptions(vendor domain.Vendor, alternatives []string) []domain.ResolutionOption {
	change := option(domain.ResolutionChangeVendor,
		"Find an alternative vendor",
		fmt.Sprintf("Book another %s for one of the events", serviceLabel(vendor)),
		domain.EffortMedium)
	if len(alternatives) > 0 {
		change.RequiredAction = "Contact available vendors: " + strings.Join(alternatives, ", ")
	}
	reschedule := option(domain.ResolutionReschedule,
		"Reschedule one of the events",
		fmt.Sprintf("Move an event to a date when %s is free", vendor.Name),
		domain.EffortHigh)
	extra := option(domain.ResolutionAddResource,
		"Request additional staff",
		fmt.Sprintf("Ask %s to send a second team to cover both bookings", vendor.Name),
		domain.EffortMedium)
	extra.RequiredAction = fmt.Sprintf("Confirm %s can staff every booking on the day", vendor.Name)
	return []domain.ResolutionOption{change, reschedule, extra}
}

func serviceLabel(v domain.Vendor) string {
	if len(v.ServiceTypes) == 0 {
		return "vendor"
	}
	return strings.Join(v.ServiceTypes, "/")
}
