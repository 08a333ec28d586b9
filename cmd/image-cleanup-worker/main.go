package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/boltfit/catalog-backend/internal/imagecleanup"
	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/pubsub"
	"github.com/boltfit/catalog-backend/pkg/storage/gcs"
)

const serviceName = "image-cleanup-worker"

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: serviceName})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if !cfg.PubSub.Enabled() {
		requireResource(ctx, logg, "pubsub", errors.New("pubsub topic is not configured"))
	}

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer pubsubClient.Close()

	storageClient, err := gcs.NewClient(ctx, cfg.Storage, cfg.GCP, logg)
	requireResource(ctx, logg, "storage", err)
	defer storageClient.Close()

	consumer, err := imagecleanup.NewConsumer(storageClient, pubsubClient.Subscriber(cfg.PubSub.ImageCleanupSubscription), logg)
	requireResource(ctx, logg, "image cleanup consumer", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":          cfg.App.Env,
		"bucket":       storageClient.Bucket(),
		"subscription": cfg.PubSub.ImageCleanupSubscription,
	})
	logg.Info(runCtx, "image cleanup worker ready")

	if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "image cleanup worker stopped", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
