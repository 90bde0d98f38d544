package dto

import (
	"time"

	"lifeguard/internal/domains/report/model"
	"lifeguard/shared/constant"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"
)

// RangeRequest selects bookings by service date. Both ends are inclusive days.
type RangeRequest struct {
	From string `json:"from" validate:"required,date"`
	To   string `json:"to"   validate:"required,date"`
}

// Bounds converts the day range to the half-open instant range [from, to).
func (r RangeRequest) Bounds() (from, to time.Time, err error) {
	from, err = timezone.Parse(constant.DateOnlyFormat, r.From)
	if err != nil {
		return from, to, failure.Validationf("invalid from date %q", r.From) //nolint:wrapcheck
	}

	last, err := timezone.Parse(constant.DateOnlyFormat, r.To)
	if err != nil {
		return from, to, failure.Validationf("invalid to date %q", r.To) //nolint:wrapcheck
	}

	if last.Before(from) {
		return from, to, failure.BadRequestFromString("from must not be after to") //nolint:wrapcheck
	}

	return from, last.AddDate(0, 0, 1), nil
}

type ServiceTypeRevenueResponse struct {
	ServiceType string  `json:"service_type"`
	Bookings    int     `json:"bookings"`
	Paid        float64 `json:"paid"`
}

type RevenueResponse struct {
	From          string                       `json:"from"`
	To            string                       `json:"to"`
	TotalBookings int                          `json:"total_bookings"`
	ByStatus      map[string]int               `json:"by_status"`
	Paid          float64                      `json:"paid"`
	Outstanding   float64                      `json:"outstanding"`
	Refunded      float64                      `json:"refunded"`
	ByServiceType []ServiceTypeRevenueResponse `json:"by_service_type"`
}

func (r *RevenueResponse) FromModel(revenue model.Revenue, serviceTypes []string) {
	r.From = timezone.Format(revenue.From, constant.DateFormat)
	r.To = timezone.Format(revenue.To, constant.DateFormat)
	r.TotalBookings = revenue.TotalBookings
	r.ByStatus = revenue.ByStatus
	r.Paid = revenue.Paid
	r.Outstanding = revenue.Outstanding
	r.Refunded = revenue.Refunded

	r.ByServiceType = make([]ServiceTypeRevenueResponse, 0, len(revenue.ByServiceType))

	for _, serviceType := range serviceTypes {
		perType, ok := revenue.ByServiceType[serviceType]
		if !ok {
			continue
		}

		r.ByServiceType = append(r.ByServiceType, ServiceTypeRevenueResponse{
			ServiceType: serviceType,
			Bookings:    perType.Bookings,
			Paid:        perType.Paid,
		})
	}
}

type ExportResponse struct {
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}
