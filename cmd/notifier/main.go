package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"banking-service/config"
	"banking-service/internal/core/broker"
	"banking-service/internal/core/notifier"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rabbit := broker.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err := rabbit.Connect(); err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rabbit.Close()

	if err := rabbit.DeclareTopology(cfg.RabbitMQ.Exchange, cfg.RabbitMQ.NotificationsQueue); err != nil {
		logger.Error("failed to declare topology", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer redisClient.Close()

	service := notifier.NewService(notifier.NewRedisRegistry(redisClient), logger)

	deliveries, err := rabbit.Consume(cfg.RabbitMQ.NotificationsQueue)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("notification consumer started", slog.String("queue", cfg.RabbitMQ.NotificationsQueue))

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification consumer stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}

			service.Handle(ctx, d.Body)
			if err := d.Ack(false); err != nil {
				logger.Error("ack failed", slog.String("error", err.Error()))
			}
		}
	}
}
