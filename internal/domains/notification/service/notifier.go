package service

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=../mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lifeguard/config"
	"lifeguard/infras/kafka"
	"lifeguard/infras/otel"
	"lifeguard/internal/domains/notification/model"
	"lifeguard/shared/constant"

	"github.com/rs/zerolog/log"
)

// Notifier hands a payment confirmation off for delivery.
type Notifier interface {
	SendPaymentConfirmation(ctx context.Context, confirmation model.PaymentConfirmation) error
}

type kafkaNotifier struct {
	cfg   *config.Config
	kafka kafka.Client
	otel  otel.Otel
}

// NewKafkaNotifier queues confirmations on the payment-confirmed topic; the
// mailer worker picks them up from there.
func NewKafkaNotifier(cfg *config.Config, kafka kafka.Client, otel otel.Otel) Notifier {
	return &kafkaNotifier{
		cfg:   cfg,
		kafka: kafka,
		otel:  otel,
	}
}

func (n *kafkaNotifier) SendPaymentConfirmation(ctx context.Context, confirmation model.PaymentConfirmation) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".SendPaymentConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("order_id", confirmation.OrderID)

	err = n.kafka.SendMessages(ctx, n.cfg.Kafka.Topics.PaymentConfirmed, kafka.Message{
		Key:   confirmation.OrderID,
		Value: confirmation,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", confirmation.OrderID).Msg("failed to queue payment confirmation")

		return fmt.Errorf("failed to queue payment confirmation: %w", err)
	}

	return nil
}
