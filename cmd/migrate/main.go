package main

import (
	"os"

	"lifeguard/config"
	"lifeguard/helper"
	"lifeguard/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	cfg := config.Get()
	action := helper.Action(os.Args[1])

	if err := helper.Runner(cfg, action); err != nil {
		log.Fatal().Err(err).Str("direction", string(action)).Msg("Migration failed. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
