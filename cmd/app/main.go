package main

//go:generate go run github.com/swaggo/swag/cmd/swag init -d ../../ -g cmd/app/main.go -o ../../docs --parseInternal

import (
	"lifeguard/config"
	"lifeguard/di"
	"lifeguard/helper"
	"lifeguard/shared/logger"

	"github.com/rs/zerolog/log"
)

//	@title						Lifeguard Booking API
//	@version					1.0
//	@description				Bookings, lifeguard rostering, quotes and revenue reports.
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
