package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"banking-service/config"
	"banking-service/infra/cache"
	infradb "banking-service/infra/db"
	"banking-service/infra/repository"
	"banking-service/internal/core/broker"
	"banking-service/internal/core/executor"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := infradb.Connect(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	rabbit := broker.NewRabbitMQ(cfg.RabbitMQ.URL)
	if err := rabbit.Connect(); err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rabbit.Close()

	if err := rabbit.DeclareTopology(cfg.RabbitMQ.Exchange, cfg.RabbitMQ.TransactionsQueue, cfg.RabbitMQ.NotificationsQueue); err != nil {
		logger.Error("failed to declare topology", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to rabbitmq", slog.String("queue", cfg.RabbitMQ.TransactionsQueue))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer redisClient.Close()

	exec := executor.New(
		repository.NewLedgerStore(db),
		repository.NewDeadLetterRepository(db),
		cache.NewBalanceCache(redisClient, cfg.Redis.BalanceLifetime),
		broker.NewRabbitMQPublisher(rabbit.Channel, cfg.RabbitMQ.Exchange),
		cfg.RabbitMQ.NotificationsQueue,
		executor.Options{MaxRetries: cfg.Retry.MaxRetries, RetryDelay: cfg.Retry.Delay},
		logger,
	)

	// Metrics endpoint for the worker.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", slog.String("error", err.Error()))
		}
	}()

	deliveries, err := rabbit.Consume(cfg.RabbitMQ.TransactionsQueue)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("transaction executor started",
		slog.Int("max_retries", cfg.Retry.MaxRetries),
		slog.Duration("retry_delay", cfg.Retry.Delay),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("transaction executor stopped")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Error("delivery channel closed")
				return
			}

			if err := exec.ProcessMessage(ctx, d.Body); err != nil {
				// Shutdown interrupted the attempt: requeue so the
				// redelivery hits the idempotency gate later.
				if nackErr := d.Nack(false, true); nackErr != nil {
					logger.Error("nack failed", slog.String("error", nackErr.Error()))
				}
				logger.Info("transaction executor stopped mid-attempt")
				return
			}
			if err := d.Ack(false); err != nil {
				logger.Error("ack failed", slog.String("error", err.Error()))
			}
		}
	}
}
