// Package main запускает HTTP-сервер сервиса заказов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shopline/order-system/internal/config"
	"github.com/shopline/order-system/internal/directory"
	"github.com/shopline/order-system/internal/events"
	"github.com/shopline/order-system/internal/handler"
	"github.com/shopline/order-system/internal/repository"
	"github.com/shopline/order-system/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.ParseOrder()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	repo, err := repository.NewOrderRepository(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer repo.Close()

	var directoryClient *directory.Client
	if cfg.UserServiceAddress != "" {
		directoryClient = directory.NewClient(cfg.UserServiceAddress, cfg.DirectoryTimeout)
	} else {
		sugar.Warn("user directory address is not configured, order enrichment will use fallback profiles")
	}

	var publisher events.Publisher
	if cfg.AMQPAddress != "" {
		rmq, err := events.NewRabbitMQPublisher(cfg.AMQPAddress, events.OrderPlacedQueue)
		if err != nil {
			sugar.Fatalw("event publisher initialization error", "error", err.Error())
		}
		defer rmq.Close()
		publisher = rmq
	} else {
		sugar.Warn("AMQP address is not configured, order placed events will not be published")
	}

	svc := service.NewOrderService(repo, directoryClient, publisher, logger)
	defer svc.Close()

	h := handler.NewOrderHandler(svc, logger)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: h.SetupRouter(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting order service", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
