package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"eke/config"
	"eke/di"
	"eke/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeSweeper()

	log.Info().Int("interval_seconds", cfg.Booking.SweepIntervalSeconds).Msg("Starting up expiry sweeper.")

	worker.Run(ctx)

	log.Info().Msg("Expiry sweeper stopped.")
}
