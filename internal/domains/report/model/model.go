package model

import (
	"time"

	bookingModel "lifeguard/internal/domains/booking/model"
	pricingModel "lifeguard/internal/domains/pricing/model"
)

const (
	EntityName = "report"
	Directory  = "reports"
)

type ServiceTypeRevenue struct {
	Bookings int
	Paid     float64
}

// Revenue summarises the bookings that start inside [From, To).
type Revenue struct {
	From          time.Time
	To            time.Time
	TotalBookings int
	ByStatus      map[string]int
	Paid          float64
	Outstanding   float64
	Refunded      float64
	ByServiceType map[string]ServiceTypeRevenue
}

// Aggregate folds bookings into a Revenue. Cancelled bookings never count as
// outstanding.
func Aggregate(from, to time.Time, bookings []bookingModel.Booking) Revenue {
	revenue := Revenue{
		From:          from,
		To:            to,
		ByStatus:      map[string]int{},
		ByServiceType: map[string]ServiceTypeRevenue{},
	}

	for _, booking := range bookings {
		revenue.TotalBookings++
		revenue.ByStatus[booking.Status]++

		perType := revenue.ByServiceType[booking.ServiceType]
		perType.Bookings++

		switch booking.PaymentStatus {
		case bookingModel.PaymentStatusPaid:
			revenue.Paid += booking.Amount
			perType.Paid += booking.Amount
		case bookingModel.PaymentStatusRefunded:
			revenue.Refunded += booking.Amount
		case bookingModel.PaymentStatusPending:
			if booking.Status != bookingModel.StatusCancelled {
				revenue.Outstanding += booking.Amount
			}
		}

		revenue.ByServiceType[booking.ServiceType] = perType
	}

	revenue.Paid = pricingModel.Round2(revenue.Paid)
	revenue.Refunded = pricingModel.Round2(revenue.Refunded)
	revenue.Outstanding = pricingModel.Round2(revenue.Outstanding)

	for serviceType, perType := range revenue.ByServiceType {
		perType.Paid = pricingModel.Round2(perType.Paid)
		revenue.ByServiceType[serviceType] = perType
	}

	return revenue
}
