package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buxzona/buxzona-backend/internal/app/background"
	"github.com/buxzona/buxzona-backend/internal/app/setup"
	"github.com/buxzona/buxzona-backend/internal/config"
	delivery "github.com/buxzona/buxzona-backend/internal/delivery/http"
	"github.com/buxzona/buxzona-backend/internal/delivery/http/handlers"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	cfg := config.MustLoad()

	setupLogger(cfg.LogConfig)

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tasks := background.NewBackgroundTasks(deps.Usecases.Pricing, deps.OrderStore, cfg.OrderStore)
	tasks.StartAll(ctx)

	router := delivery.NewRouter(delivery.Handlers{
		Price:   handlers.NewPriceHandler(deps.Usecases.Pricing),
		Verify:  handlers.NewVerifyHandler(deps.Usecases.Verification),
		Auth:    handlers.NewAuthHandler(deps.Usecases.Auth),
		Payment: handlers.NewPaymentHandler(deps.Usecases.Payment, cfg.Gateway.CallbackBaseURL),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
