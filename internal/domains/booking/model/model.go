package model

import (
	"slices"
	"time"

	"lifeguard/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldOrderID            = "order_id"
	FieldCustomerName       = "customer_name"
	FieldCustomerEmail      = "customer_email"
	FieldCustomerPhone      = "customer_phone"
	FieldLocation           = "location"
	FieldServiceType        = "service_type"
	FieldStartDatetime      = "start_datetime"
	FieldEndDatetime        = "end_datetime"
	FieldHours              = "hours"
	FieldLifeguards         = "lifeguards"
	FieldAmount             = "amount"
	FieldStatus             = "status"
	FieldPaymentStatus      = "payment_status"
	FieldLifeguardsAssigned = "lifeguards_assigned"
	FieldViewedByAdmin      = "viewed_by_admin"
)

// Cache key prefixes shared by every service that mutates bookings.
const (
	CacheGet    = "booking:get"
	CacheGetAll = "booking:gets"
	CacheCount  = "booking:count"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

const (
	ServiceTypePrivatePool = "private_pool"
	ServiceTypeEvent       = "event"
	ServiceTypeResort      = "resort"
	ServiceTypeSchool      = "school"
	ServiceTypeOther       = "other"
)

var (
	Statuses        = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	PaymentStatuses = []string{PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded}
	ServiceTypes    = []string{ServiceTypePrivatePool, ServiceTypeEvent, ServiceTypeResort, ServiceTypeSchool, ServiceTypeOther}

	// LiveStatuses mark bookings whose assigned staff are considered busy.
	LiveStatuses = []string{StatusConfirmed}
	// ActiveStatuses mark bookings that still hold on to their staff.
	ActiveStatuses = []string{StatusPending, StatusConfirmed}
)

type Booking struct {
	ID                 string         `db:"id"`
	OrderID            string         `db:"order_id"`
	CustomerName       string         `db:"customer_name"`
	CustomerEmail      string         `db:"customer_email"`
	CustomerPhone      string         `db:"customer_phone"`
	Location           string         `db:"location"`
	Notes              string         `db:"notes"`
	ServiceType        string         `db:"service_type"`
	CustomService      string         `db:"custom_service"`
	StartDatetime      time.Time      `db:"start_datetime"`
	EndDatetime        time.Time      `db:"end_datetime"`
	Hours              int            `db:"hours"`
	Lifeguards         int            `db:"lifeguards"`
	Amount             float64        `db:"amount"`
	Status             string         `db:"status"`
	PaymentStatus      string         `db:"payment_status"`
	LifeguardsAssigned pq.StringArray `db:"lifeguards_assigned"`
	ViewedByAdmin      bool           `db:"viewed_by_admin"`
	model.Metadata
}

// IsAssigned reports whether staffID is on this booking.
func (b Booking) IsAssigned(staffID string) bool {
	return slices.Contains(b.LifeguardsAssigned, staffID)
}

// IsActive reports whether the booking still blocks its assignees from being removed.
func (b Booking) IsActive() bool {
	return slices.Contains(ActiveStatuses, b.Status)
}
