package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"comgatepay/internal/bootstrap"
	"comgatepay/internal/comgate"
	"comgatepay/internal/config"
	cronpkg "comgatepay/internal/cron"
	"comgatepay/internal/gateway"
	"comgatepay/internal/handler"
	"comgatepay/internal/notify"
	"comgatepay/internal/repository"
	"comgatepay/internal/router"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	payments := repository.NewPaymentRepository(db)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	// --- Gateway ---
	client := comgate.NewClient(cfg.Comgate.Merchant, cfg.Comgate.Secret)
	auth := gateway.NewAuthenticator(cfg.Comgate.HashSalt, gateway.BindTransaction)
	urls := gateway.NewEchoURLGenerator(e, cfg.Server.BaseURL)
	gw := gateway.New(client, urls, auth, cfg.Comgate.TestMode, logger)

	// --- Paid-payment notifier (Redis dedup with in-memory fallback) ---
	deduper, dedupeErr := notify.NewDeduper(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB, 24*time.Hour)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for notify dedup, using in-memory fallback", zap.Error(dedupeErr))
	}
	var notifier *notify.Notifier
	if cfg.Telegram.Token != "" {
		notifier, err = notify.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, deduper, logger)
		if err != nil {
			logger.Fatal("Failed to create notifier", zap.Error(err))
		}
	} else {
		logger.Info("TELEGRAM_TOKEN not set, paid-payment notifications disabled")
	}

	// --- Routes ---
	paymentHandler := handler.NewPaymentHandler(gw, payments, notifier, logger)
	router.Setup(e, paymentHandler)

	// --- Pending payment poller ---
	poller := cronpkg.NewPoller(gw, payments, notifier, cfg.Poller.Interval, logger)
	poller.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting payment bridge", zap.String("addr", addr), zap.Bool("test_mode", cfg.Comgate.TestMode))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx := poller.Stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
