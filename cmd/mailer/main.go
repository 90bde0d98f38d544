package main

import (
	"context"
	"os/signal"
	"syscall"

	"lifeguard/config"
	"lifeguard/di"
	"lifeguard/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeMailer()

	log.Info().Str("topic", cfg.Kafka.Topics.PaymentConfirmed).Msg("mailer started")

	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("mailer stopped with error")

		return
	}

	log.Info().Msg("mailer stopped")
}
