package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"exlibris/eventstore/postgresengine"
	"exlibris/features/command/allowloansextension"
	"exlibris/features/command/forbidloansextension"
	"exlibris/features/command/markbookavailable"
	"exlibris/features/command/satisfyreservation"
	"exlibris/features/query/bookinventory"
	"exlibris/process/loanextension"
	"exlibris/process/reservationqueue"
	"exlibris/shell"
	"exlibris/shell/config"
)

func main() {
	cfg := config.Load()

	logger, err := shell.NewLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting exlibris inventory coordination",
		zap.String("env", cfg.Server.Env),
		zap.String("engine", cfg.Database.Engine))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	es, cleanup, err := buildEventStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize event store", zap.Error(err))
	}
	defer cleanup()

	bus := shell.NewBus(cfg.Bus.ShardCount, logger)

	lookup := bookinventory.NewQueryHandler(es)

	satisfier := reservationqueue.NewSatisfier(
		lookup,
		satisfyreservation.NewCommandHandler(es, satisfyreservation.WithEventPublisher(bus)),
		markbookavailable.NewCommandHandler(es, markbookavailable.WithEventPublisher(bus)),
		logger,
	)
	satisfier.Register(bus)

	controller := loanextension.NewController(
		lookup,
		forbidloansextension.NewCommandHandler(es, forbidloansextension.WithEventPublisher(bus)),
		allowloansextension.NewCommandHandler(es, allowloansextension.WithEventPublisher(bus)),
		logger,
	)
	controller.Register(bus)

	bus.Start(ctx)
	defer bus.Close()

	metricsServer := &http.Server{
		Addr:              ":" + cfg.Observ.MetricsPort,
		Handler:           metricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint listening", zap.String("port", cfg.Observ.MetricsPort))

		if serveErr := metricsServer.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("metrics server failed", zap.Error(serveErr))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if shutdownErr := metricsServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("metrics server shutdown failed", zap.Error(shutdownErr))
	}
}

func buildEventStore(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
) (postgresengine.EventStore, func(), error) {

	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.Database.EventTable),
		postgresengine.WithLogger(logger),
	}

	if cfg.Database.Engine == "sqlx" {
		db, err := config.PostgresSQLX(ctx, cfg.Database.DSN)
		if err != nil {
			return postgresengine.EventStore{}, nil, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return postgresengine.EventStore{}, nil, err
		}

		return es, func() { _ = db.Close() }, nil
	}

	pool, err := config.PostgresPGXPool(ctx, cfg.Database.DSN)
	if err != nil {
		return postgresengine.EventStore{}, nil, err
	}

	es, err := postgresengine.NewEventStoreFromPGXPool(pool, options...)
	if err != nil {
		pool.Close()
		return postgresengine.EventStore{}, nil, err
	}

	return es, pool.Close, nil
}

func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
