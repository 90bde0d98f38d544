package model

import (
	"time"
)

const EntityName = "notification"

// PaymentConfirmation is the summary a customer receives once their booking is paid.
type PaymentConfirmation struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	OrderID       string    `json:"order_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	TotalAmount   float64   `json:"total_amount"`
}
