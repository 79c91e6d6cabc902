package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mediafeed/infra/postgres"
	"mediafeed/infra/rabbitmq"
	"mediafeed/internal/consumers"
	"mediafeed/pkg/config"
	"mediafeed/pkg/events"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Comment count worker starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for the worker")
	}

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	commentHandler := consumers.NewCommentEventHandler(
		pgRepository,
		zap.L(),
	)

	// Queue name: {service}.{domain}.{purpose}.{version}
	commentConsumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      events.CommentExchange,
		QueueName:     "mediafeed.comment.counts.v1",
		RoutingKeys:   []string{"comment.*.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	commentConsumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, commentConsumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create comment consumer", zap.Error(err))
	}
	defer commentConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.L().Info("Starting comment event consumer...")
		if err := commentConsumer.Consume(ctx, commentHandler.HandleEvent); err != nil {
			if err != context.Canceled {
				zap.L().Error("Comment consumer error", zap.Error(err))
			}
		}
	}()

	// Periodic connection pool monitoring
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := pgRepository.GetPoolStats()
				zap.L().Info("Connection pool stats",
					zap.Int("max_open", stats["max_open_connections"].(int)),
					zap.Int("open", stats["open_connections"].(int)),
					zap.Int("in_use", stats["in_use"].(int)),
					zap.Int("idle", stats["idle"].(int)),
					zap.Int64("wait_count", stats["wait_count"].(int64)),
					zap.Int64("wait_duration_ms", stats["wait_duration_ms"].(int64)),
				)
			}
		}
	}()

	zap.L().Info("Worker started successfully. Waiting for events...",
		zap.String("exchange", events.CommentExchange),
	)

	<-sigChan
	zap.L().Info("Shutdown signal received, stopping worker...")
	cancel()

	zap.L().Info("Worker stopped gracefully")
}
