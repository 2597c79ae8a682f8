package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant/cmd"
	consumer "restaurant/internal/adapters/in/amqp"
	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/rabbitmq"
	"restaurant/internal/jobs"
	"restaurant/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	paymentsConsumer  = "restaurant-payments"
	paymentsPrefetch  = 10
	paymentsBindRoute = "payment.settled"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	app, err := compose(ctx, configs, logger)
	if err != nil {
		return err
	}
	registry := metrics.NewRegistry()

	if configs.AMQPURL != "" {
		conn, err := rabbitmq.Dial(ctx, configs.AMQPURL, rabbitmq.Topology{
			EventsExchange:     configs.AMQPEventsExchange,
			PaymentsQueue:      configs.AMQPPaymentsQueue,
			PaymentsRoutingKey: paymentsBindRoute,
		}, logger)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()

		publisher := rabbitmq.NewEventPublisher(conn, configs.AMQPEventsExchange, logger)
		jobManager := jobs.NewJobManager(
			app.CreateRelayOutboxCommandHandler(publisher),
			configs.OutboxRelaySchedule,
			configs.OutboxBatchSize,
			logger,
			metrics.NewRelayMetrics(registry),
		)
		if err := jobManager.StartAll(); err != nil {
			return err
		}
		defer jobManager.StopAll()

		payments := consumer.NewPaymentConsumer(app.CreateReleaseTableForOrderCommandHandler(), logger)
		go func() {
			if err := payments.Run(ctx, conn, configs.AMQPPaymentsQueue, paymentsConsumer, paymentsPrefetch); err != nil {
				logger.Error("Payment consumer stopped", "error", err)
			}
		}()
	} else {
		logger.Warn("AMQP_URL is not set, outbox events stay pending and payment events are not consumed")
	}

	e, err := httpin.NewEcho(httpin.NewServer(app.HTTPHandlers(), app.Catalog()), logger, registry)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))

	return startWebServer(ctx, e, configs.HTTPPort, logger)
}

func compose(ctx context.Context, configs cmd.Config, logger *slog.Logger) (cmd.CompositionRoot, error) {
	if configs.StorageDriver == cmd.StorageMemory {
		logger.Info("Using in-memory storage with the demo menu")
		return cmd.NewMemoryCompositionRoot(configs, cmd.DemoMenu()...), nil
	}

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return cmd.CompositionRoot{}, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, gormDB); err != nil {
		return cmd.CompositionRoot{}, err
	}
	return cmd.NewCompositionRoot(ctx, configs, gormDB)
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
