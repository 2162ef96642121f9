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
	"banking-service/internal/core/handler"
	"banking-service/internal/core/usecase"
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
	logger.Info("connected to rabbitmq", slog.String("exchange", cfg.RabbitMQ.Exchange))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer redisClient.Close()

	balanceCache := cache.NewBalanceCache(redisClient, cfg.Redis.BalanceLifetime)
	publisher := broker.NewRabbitMQPublisher(rabbit.Channel, cfg.RabbitMQ.Exchange)

	txRepo := repository.NewTransactionRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	usecases := usecase.NewFactory(txRepo, accountRepo, balanceCache, publisher, cfg.RabbitMQ.TransactionsQueue, logger)
	txHandler := handler.NewTransactionHandler(usecases)

	mux := http.NewServeMux()
	txHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: handler.MetricsMiddleware(mux),
	}

	go func() {
		logger.Info("starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down gracefully")

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
