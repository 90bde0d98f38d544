package service

//go:generate go run go.uber.org/mock/mockgen -source=./email.go -destination=../mocks/email_mock.go -package=mocks

import (
	"context"
	"fmt"
	"html"
	"strings"

	"lifeguard/infras/mailer"
	"lifeguard/infras/otel"
	"lifeguard/internal/domains/notification/model"
	"lifeguard/shared/constant"
	"lifeguard/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	emailDateLayout = "Mon, 02 Jan 2006 15:04"
	emailTimeLayout = "15:04"
)

// EmailSender delivers a payment confirmation to the customer's inbox.
type EmailSender interface {
	SendPaymentConfirmation(ctx context.Context, confirmation model.PaymentConfirmation) error
}

type emailSender struct {
	mailer mailer.Mailer
	otel   otel.Otel
}

func NewEmailSender(mailer mailer.Mailer, otel otel.Otel) EmailSender {
	return &emailSender{
		mailer: mailer,
		otel:   otel,
	}
}

func (s *emailSender) SendPaymentConfirmation(ctx context.Context, confirmation model.PaymentConfirmation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.SendPaymentConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(confirmation.CustomerEmail) == constant.Empty {
		log.Warn().Str("order_id", confirmation.OrderID).Msg("booking has no customer email, skipping payment confirmation")

		return nil
	}

	id, err := s.mailer.Send(ctx, RenderPaymentConfirmation(confirmation))
	if err != nil {
		log.Error().Err(err).Str("order_id", confirmation.OrderID).Msg("failed to send payment confirmation email")

		return fmt.Errorf("failed to send payment confirmation email: %w", err)
	}

	log.Info().Str("order_id", confirmation.OrderID).Str("email_id", id).Msg("payment confirmation sent")

	return nil
}

// RenderPaymentConfirmation formats the confirmation in the application timezone.
func RenderPaymentConfirmation(confirmation model.PaymentConfirmation) mailer.Email {
	window := fmt.Sprintf("%s - %s",
		timezone.Format(confirmation.StartDatetime, emailDateLayout),
		timezone.Format(confirmation.EndDatetime, emailTimeLayout),
	)
	amount := fmt.Sprintf("$%.2f", confirmation.TotalAmount)

	text := fmt.Sprintf(
		"Hi %s,\n\nWe have received your payment for booking %s.\n\nService time: %s\nAmount paid: %s\n\nOur team will be in touch with the lifeguard details before your booking.\n",
		confirmation.CustomerName, confirmation.OrderID, window, amount,
	)

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We have received your payment for booking <strong>%s</strong>.</p><p>Service time: %s<br/>Amount paid: %s</p><p>Our team will be in touch with the lifeguard details before your booking.</p>",
		html.EscapeString(confirmation.CustomerName), html.EscapeString(confirmation.OrderID), html.EscapeString(window), amount,
	)

	return mailer.Email{
		To:      []string{confirmation.CustomerEmail},
		Subject: "Payment confirmed for booking " + confirmation.OrderID,
		HTML:    body,
		Text:    text,
	}
}
