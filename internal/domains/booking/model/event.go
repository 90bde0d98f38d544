package model

import "time"

const (
	EventCreated            = "booking.created"
	EventLifeguardsAssigned = "booking.lifeguards_assigned"
	EventLifeguardRemoved   = "booking.lifeguard_removed"
)

// Event is published on the booking lifecycle topic after every write.
type Event struct {
	Type               string    `json:"type"`
	BookingID          string    `json:"booking_id"`
	OrderID            string    `json:"order_id"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"payment_status"`
	LifeguardsAssigned []string  `json:"lifeguards_assigned"`
	Actor              string    `json:"actor"`
	OccurredAt         time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking Booking, actor string, at time.Time) Event {
	return Event{
		Type:               eventType,
		BookingID:          booking.ID,
		OrderID:            booking.OrderID,
		Status:             booking.Status,
		PaymentStatus:      booking.PaymentStatus,
		LifeguardsAssigned: append([]string{}, booking.LifeguardsAssigned...),
		Actor:              actor,
		OccurredAt:         at,
	}
}

// CommandEvent names the event emitted for an applied command.
func CommandEvent(cmd Command) string {
	return "booking." + cmd.Name()
}
