package main

import (
	"context"
	"os"
	"os/signal"
	"slotlink/config"
	"slotlink/di"
	"slotlink/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg)
	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	defer func() {
		if err := worker.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}()

	if err := worker.Run(ctx); err != nil {
		log.Error().Err(err).Msg("side effect worker stopped")

		return
	}

	log.Info().Msg("side effect worker stopped")
}
