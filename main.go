package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/4the-win/go-party-weekend/app/db"
	appLogger "github.com/4the-win/go-party-weekend/app/logger"
	"github.com/4the-win/go-party-weekend/app/observability/metrics"
	"github.com/4the-win/go-party-weekend/app/tracer"
	"github.com/4the-win/go-party-weekend/config"
	"github.com/4the-win/go-party-weekend/internal/api/contact"
	"github.com/4the-win/go-party-weekend/internal/api/event"
	"github.com/4the-win/go-party-weekend/internal/api/party"
	"github.com/4the-win/go-party-weekend/internal/api/wizard"
	"github.com/4the-win/go-party-weekend/internal/gateway"
	"github.com/4the-win/go-party-weekend/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations before initializing the main pool
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	partyRepo := party.NewPostgresRepository(pool, logger)
	partyService := party.NewServiceImpl(partyRepo, logger)
	partyHandler := party.NewHandler(partyService, logger)

	eventService := event.NewServiceImpl(cfg.Events, logger)
	eventHandler := event.NewHandler(eventService, logger)

	generator := gateway.NewClient(cfg.Generation.WebhookURL, cfg.Generation.Timeout, logger)
	wizardService := wizard.NewServiceImpl(generator, partyService, eventService, logger)
	wizardHandler := wizard.NewHandler(wizardService, logger)

	mailer := contact.NewEmailJSMailer(
		cfg.Contact.EmailJSEndpoint,
		cfg.Contact.ServiceID,
		cfg.Contact.TemplateID,
		cfg.Contact.UserID,
		logger,
	)
	contactService := contact.NewServiceImpl(mailer, logger)
	contactHandler := contact.NewHandler(contactService, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		WizardHandler:  wizardHandler,
		PartyHandler:   partyHandler,
		EventHandler:   eventHandler,
		ContactHandler: contactHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 40 * time.Second, // generation calls can take up to 30s
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
