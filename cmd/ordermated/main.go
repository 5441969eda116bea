package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ordermate/ordermate/internal/auth"
	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/email"
	"github.com/ordermate/ordermate/internal/export"
	"github.com/ordermate/ordermate/internal/llm/gemini"
	"github.com/ordermate/ordermate/internal/repository"
	"github.com/ordermate/ordermate/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
		ConnectRetry:    cfg.Database.ConnectRetry,
	}, logger)
	if err != nil {
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	orders := repository.NewOrderRepository(pool, logger)
	users := repository.NewUserRepository(pool, logger)
	products := repository.NewProductRepository(pool, logger)
	customers := repository.NewCustomerRepository(pool, logger)
	feedback := repository.NewFeedbackRepository(pool, logger)
	errs := repository.NewErrorLogRepository(pool, logger)
	notifications := repository.NewEmailNotificationRepository(pool, logger)

	gen := gemini.NewClient(gemini.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	processor := email.NewProcessor(logger, email.Config{
		OrderConfidenceFloor:    cfg.Pipeline.OrderConfidenceFloor,
		ReviewConfidenceCeiling: cfg.Pipeline.ReviewConfidenceCeiling,
	}, email.NewClassifier(gen, logger), email.NewExtractor(gen, logger), orders)

	authSvc := auth.NewService(users, []byte(cfg.Auth.JWTSecret), cfg.Auth.SessionTTL, logger)
	exportSvc := export.NewService(orders, logger)

	handler := server.NewRouter(server.Deps{
		Logger:        logger,
		Auth:          authSvc,
		Processor:     processor,
		Export:        exportSvc,
		Orders:        orders,
		Products:      products,
		Customers:     customers,
		Feedback:      feedback,
		Errors:        errs,
		Users:         users,
		Notifications: notifications,
		ReviewCeiling: float64(cfg.Pipeline.ReviewConfidenceCeiling),
		Pool:          pool,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("shutdown complete")
}
