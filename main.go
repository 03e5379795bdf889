package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"seapass-backend/config"
	"seapass-backend/controllers"
	"seapass-backend/middleware"
	"seapass-backend/routes"
	"seapass-backend/services"
	"seapass-backend/store"
)

func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(middleware.NewContextHandler(handler)))
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("❌ invalid configuration", "error", err)
	}
	setupLogger(cfg)
	gin.SetMode(cfg.GinMode)

	// No store, no service: an unreachable database stops the process here.
	db, err := config.ConnectDatabase(context.Background(), cfg.DB)
	if err != nil {
		fatal("❌ database connect failed", "driver", cfg.DB.Driver, "host", cfg.DB.Host, "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		fatal("❌ database handle unavailable", "error", err)
	}
	slog.Info("✅ database connection established", "driver", cfg.DB.Driver, "max_open_conns", cfg.DB.MaxOpenConns)

	reservationStore, err := store.New(db)
	if err != nil {
		fatal("❌ store init failed", "error", err)
	}
	reservationService := services.NewReservationService(reservationStore)

	reservationController := controllers.NewReservationController(reservationService)
	userController := controllers.NewUserController(reservationService)

	router := routes.SetupRouter(reservationController, userController, cfg.CorsOrigins)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("🚀 server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("❌ ListenAndServe failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("⚠️  shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("❌ server forced to shutdown", "error", err)
	}

	if err := sqlDB.Close(); err != nil {
		slog.Error("closing database pool", "error", err)
	}
	slog.Info("✅ server stopped gracefully")
}
