package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/auth"
	"github.com/lucmas92/message-wall/internal/config"
	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/database/boltstore"
	"github.com/lucmas92/message-wall/internal/database/memstore"
	"github.com/lucmas92/message-wall/internal/database/sqlitestore"
	"github.com/lucmas92/message-wall/internal/handlers"
	"github.com/lucmas92/message-wall/internal/notifier"
	"github.com/lucmas92/message-wall/internal/profanity"
	"github.com/lucmas92/message-wall/internal/routing"
	"github.com/lucmas92/message-wall/internal/wall"
)

func main() {
	// .env is optional; the environment wins either way
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg)
	log.Info().Msg("Starting Message Wall")

	// Profanity matcher: built-in vocabulary unless a terms file is given
	terms := profanity.DefaultTerms()
	if cfg.TermsPath != "" {
		terms, err = profanity.LoadTermsFile(cfg.TermsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.TermsPath).Msg("Failed to load terms file")
		}
		log.Info().Int("terms", len(terms)).Str("path", cfg.TermsPath).Msg("Loaded banned-term list")
	}
	matcher := profanity.NewMatcher(terms)

	// Message store, selected explicitly at startup
	var store database.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		store = memstore.New()
		log.Warn().Msg("Using in-memory store: messages will not survive a restart")
	default:
		store, err = sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to open database")
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Database opened")
	}
	defer store.Close()

	// BoltDB for settings and the moderation audit trail
	meta, err := boltstore.Open(boltstore.Options{Path: cfg.BoltPath})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BoltPath).Msg("Failed to open metadata database")
	}
	defer meta.Close()

	hub := notifier.NewHub()
	defer hub.Close()

	wallService := wall.NewService(store, matcher, hub,
		wall.WithDisplayDuration(cfg.DisplayDuration),
		wall.WithMaxTextLength(cfg.MaxTextLength),
		wall.WithAuditLog(meta.AuditStore()),
	)

	authService := auth.NewService(auth.Config{
		AdminToken:     cfg.AdminToken,
		ModeratorToken: cfg.ModeratorToken,
		ScreenToken:    cfg.ScreenToken,
	})
	if cfg.ModeratorToken == "" {
		log.Warn().Msg("No moderator token configured: moderation endpoints are unreachable")
	}

	h := handlers.NewHandler(wallService, authService, store, handlers.Config{
		AllowedOrigins: cfg.AllowedOrigins,
	}).WithSettings(meta.SettingsStore()).WithAudit(meta.AuditStore())

	router := routing.SetupRouter(routing.Config{
		Handlers: h,
		Auth:     authService,
		Logger:   log.Logger,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(router)

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("address", server.Addr).
			Str("store", cfg.StoreBackend).
			Dur("display_duration", cfg.DisplayDuration).
			Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close() // drops websocket clients so Shutdown can finish
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown incomplete")
	}
}

// setupLogging configures zerolog level and output format.
func setupLogging(cfg config.Config) {
	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.LogFormat == "json" {
		// Production: JSON logs
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Development: pretty console logs
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
