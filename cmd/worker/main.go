package main

import (
	"context"
	"os"
	"os/signal"
	"resto/config"
	"resto/di"
	"resto/shared/logger"
	"syscall"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := di.InitializeWorker()
	notifier.Run(ctx)
}
