package model

import "slices"

// Command is one admin mutation of a booking. The set is closed: only the
// types in this file implement it.
type Command interface {
	Name() string
	isCommand()
}

type MarkViewed struct{}

type MarkUnviewed struct{}

// SetPaymentStatus changes the payment status and, when Status is set, the
// booking status in the same write. Notify asks for a payment confirmation to
// be sent once the booking is paid.
type SetPaymentStatus struct {
	PaymentStatus string
	Status        *string
	Notify        bool
}

type SetStatus struct {
	Status string
}

type Delete struct{}

func (MarkViewed) Name() string       { return "mark_viewed" }
func (MarkUnviewed) Name() string     { return "mark_unviewed" }
func (SetPaymentStatus) Name() string { return "set_payment_status" }
func (SetStatus) Name() string        { return "set_status" }
func (Delete) Name() string           { return "delete" }

func (MarkViewed) isCommand()       {}
func (MarkUnviewed) isCommand()     {}
func (SetPaymentStatus) isCommand() {}
func (SetStatus) isCommand()        {}
func (Delete) isCommand()           {}

// ConfirmPayment is the admin "confirm payment" action: paid and confirmed together.
func ConfirmPayment(notify bool) SetPaymentStatus {
	status := StatusConfirmed

	return SetPaymentStatus{
		PaymentStatus: PaymentStatusPaid,
		Status:        &status,
		Notify:        notify,
	}
}

func IsValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

func IsValidPaymentStatus(status string) bool {
	return slices.Contains(PaymentStatuses, status)
}
