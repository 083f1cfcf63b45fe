package conflict

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/mangala/internal/domain"
)

// detectVendorConflicts reports vendors booked more than once on the same
// date. A booking row is recorded for every service type a vendor offers
// on every event it is linked to, so a multi-service vendor on a single
// event already counts as double booked.
func detectVendorConflicts(events []domain.Event, vendors []domain.Vendor) []domain.Conflict {
	byID := make(map[string]domain.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}

	var order []string
	bookings := make(map[string][]domain.VendorBooking)
	bookedOn := make(map[string]map[string]bool)
	for _, e := range events {
		for _, vid := range e.VendorIDs {
			v, ok := byID[vid]
			if !ok {
				continue
			}
			day := dayKey(e.Date)
			if bookedOn[day] == nil {
				bookedOn[day] = make(map[string]bool)
			}
			bookedOn[day][vid] = true
			if _, seen := bookings[vid]; !seen {
				order = append(order, vid)
				bookings[vid] = nil
			}
			for _, st := range v.ServiceTypes {
				bookings[vid] = append(bookings[vid], domain.VendorBooking{
					EventID:     e.ID,
					EventName:   e.Name,
					Date:        day,
					StartTime:   e.StartTime,
					EndTime:     e.EndTime,
					ServiceType: st,
				})
			}
		}
	}

	var out []domain.Conflict
	for _, vid := range order {
		vendor := byID[vid]
		for _, rows := range bookingsByDate(bookings[vid]) {
			if len(rows) < 2 {
				continue
			}
			out = append(out, doubleBooking(vendor, rows, alternativesFor(vendor, vendors, bookedOn[rows[0].Date])))
		}
	}
	return out
}

// detectServiceTypeConflicts would flag events missing a required service
// type. It reports nothing yet.
func detectServiceTypeConflicts(_ []domain.Event, _ []domain.Vendor) []domain.Conflict {
	return nil
}

func bookingsByDate(rows []domain.VendorBooking) [][]domain.VendorBooking {
	index := make(map[string]int)
	var groups [][]domain.VendorBooking
	for _, r := range rows {
		i, ok := index[r.Date]
		if !ok {
			i = len(groups)
			index[r.Date] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], r)
	}
	return groups
}

func doubleBooking(vendor domain.Vendor, rows []domain.VendorBooking, alternatives []string) domain.Conflict {
	var eventIDs, eventNames []string
	for _, r := range rows {
		if slices.Contains(eventIDs, r.EventID) {
			continue
		}
		eventIDs = append(eventIDs, r.EventID)
		eventNames = append(eventNames, r.EventName)
	}
	date := rows[0].Date

	return domain.Conflict{
		Type:     domain.ConflictVendor,
		Severity: domain.SeverityCritical,
		Title:    fmt.Sprintf("Vendor Double Booking: %s", vendor.Name),
		Description: fmt.Sprintf("%s has %d bookings on %s across %s",
			vendor.Name, len(rows), date, strings.Join(eventNames, ", ")),
		AffectedEvents:    eventIDs,
		AffectedVendors:   []string{vendor.ID},
		ResolutionOptions: vendorOptions(vendor, alternatives),
		Vendor: &domain.VendorDetail{
			VendorID:           vendor.ID,
			VendorName:         vendor.Name,
			Date:               date,
			Bookings:           rows,
			AlternativeVendors: alternatives,
		},
	}
}

// alternativesFor lists other vendors offering one of vendor's service
// types that are not booked on the conflicting date.
func alternativesFor(vendor domain.Vendor, vendors []domain.Vendor, booked map[string]bool) []string {
	var out []string
	for _, v := range vendors {
		if v.ID == vendor.ID || booked[v.ID] {
			continue
		}
		if sharesServiceType(vendor, v) {
			out = append(out, v.ID)
		}
	}
	return out
}

func sharesServiceType(a, b domain.Vendor) bool {
	for _, st := range a.ServiceTypes {
		if slices.Contains(b.ServiceTypes, st) {
			return true
		}
	}
	return false
}
