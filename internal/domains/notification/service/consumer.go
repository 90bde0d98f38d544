package service

import (
	"context"
	"fmt"

	"lifeguard/config"
	"lifeguard/infras/kafka"
	"lifeguard/internal/domains/notification/model"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const consumerGroupSuffix = ".mailer"

// Consumer drains the payment-confirmed topic into the EmailSender.
type Consumer struct {
	cfg    *config.Config
	kafka  kafka.Client
	sender EmailSender
}

func NewConsumer(cfg *config.Config, kafka kafka.Client, sender EmailSender) *Consumer {
	return &Consumer{
		cfg:    cfg,
		kafka:  kafka,
		sender: sender,
	}
}

// Run blocks until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	group := c.cfg.Kafka.ConsumerGroup + consumerGroupSuffix

	if err := c.kafka.Consume(ctx, group, c.cfg.Kafka.Topics.PaymentConfirmed, c.Handle); err != nil {
		return fmt.Errorf("failed to consume payment confirmations: %w", err)
	}

	return nil
}

// Handle sends one confirmation. Undecodable payloads are dropped so they do
// not block the partition.
func (c *Consumer) Handle(ctx context.Context, message kafkaGo.Message) error {
	confirmation, err := kafka.Decode[model.PaymentConfirmation](message)
	if err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping malformed payment confirmation")

		return nil
	}

	return c.sender.SendPaymentConfirmation(ctx, confirmation) //nolint:wrapcheck
}
