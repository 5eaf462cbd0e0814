package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"studio/config"
	"studio/di"
	"studio/shared/logger"
	"studio/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := di.InitializeWorker()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return app.Worker.Run(ctx)
	})

	group.Go(func() error {
		app.Kafka.Consume(ctx, "", app.Config.Kafka.Topics.SettlementCreated, app.Worker.HandleSettlementCreated)

		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("worker exited with error")

		stop()
		os.Exit(1) //nolint:gocritic
	}

	log.Info().Msg("worker shut down cleanly")
}
