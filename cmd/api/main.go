package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/boltfit/catalog-backend/api/controllers"
	"github.com/boltfit/catalog-backend/api/routes"
	"github.com/boltfit/catalog-backend/internal/auth"
	products "github.com/boltfit/catalog-backend/internal/products"
	"github.com/boltfit/catalog-backend/pkg/config"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/metrics"
	"github.com/boltfit/catalog-backend/pkg/pubsub"
	"github.com/boltfit/catalog-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i].Close())
		}
	}()

	store, err := openStore(ctx, cfg, logg)
	if err != nil {
		return err
	}
	closers = append(closers, store)
	readiness := map[string]controllers.Pinger{"store": store}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		closers = append(closers, redisClient)
		readiness["redis"] = redisClient
	}

	publisher := products.EventPublisher(nil)
	if cfg.PubSub.Enabled() {
		psClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			return err
		}
		closers = append(closers, psClient)
		readiness["pubsub"] = psClient
		publisher = products.NewTopicPublisher(psClient)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	verifier, err := newVerifier(ctx, cfg.Auth)
	if err != nil {
		return err
	}
	gate, err := auth.NewGate(auth.GateParams{
		Verifier:      verifier,
		Audience:      cfg.Auth.GoogleClientID,
		AllowList:     auth.NewAllowList(cfg.Auth.AdminEmails),
		VerifyTimeout: cfg.Auth.VerifyTimeout,
		Logger:        logg,
		Metrics:       metrics.NewGateMetrics(reg),
	})
	if err != nil {
		return err
	}

	repo, err := products.NewRepository(store, cfg.Store.Collection, cfg.Store.Timeout)
	if err != nil {
		return err
	}
	productService, err := products.NewService(products.ServiceParams{
		Repo:         repo,
		Publisher:    publisher,
		Logger:       logg,
		Categories:   cfg.Catalog.Categories,
		DefaultBrand: cfg.Catalog.DefaultBrand,
	})
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"store_driver": cfg.Store.Driver,
		"verifier":     cfg.Auth.Verifier,
		"admins":       len(cfg.Auth.AdminEmails),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, gate, productService, redisClient, metrics.NewHTTPMetrics(reg), reg, readiness),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
