package model

import (
	"slices"
	"time"

	bookingModel "lifeguard/internal/domains/booking/model"
)

const EntityName = "assignment"

// Window is a closed service interval.
type Window struct {
	Start time.Time
	End   time.Time
}

func WindowOf(booking bookingModel.Booking) Window {
	return Window{Start: booking.StartDatetime, End: booking.EndDatetime}
}

// Valid accepts zero-length windows; they still collide with anything touching them.
func (w Window) Valid() bool {
	return !w.End.Before(w.Start)
}

// Overlaps treats both ends as inclusive, so back-to-back windows collide.
func (w Window) Overlaps(other Window) bool {
	return !other.Start.After(w.End) && !other.End.Before(w.Start)
}

// Busy maps each staff id committed to a live booking overlapping window to
// the order ids holding them. excludeID is skipped.
func Busy(window Window, bookings []bookingModel.Booking, excludeID string) map[string][]string {
	busy := map[string][]string{}

	for _, booking := range bookings {
		if booking.ID == excludeID || !slices.Contains(bookingModel.LiveStatuses, booking.Status) {
			continue
		}

		if !window.Overlaps(WindowOf(booking)) {
			continue
		}

		for _, staffID := range booking.LifeguardsAssigned {
			busy[staffID] = append(busy[staffID], booking.OrderID)
		}
	}

	return busy
}

// Dedupe keeps the first occurrence of every id.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		res = append(res, id)
	}

	return res
}
