package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/retro-quiz/internal/catalog"
	"github.com/stemsi/retro-quiz/internal/config"
	"github.com/stemsi/retro-quiz/internal/database"
	"github.com/stemsi/retro-quiz/internal/handler"
	"github.com/stemsi/retro-quiz/internal/logger"
	"github.com/stemsi/retro-quiz/internal/repository"
	"github.com/stemsi/retro-quiz/internal/router"
	"github.com/stemsi/retro-quiz/internal/service"
	"github.com/stemsi/retro-quiz/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Retro Quiz Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Question Catalog ─────────────────────────────────────────
	questions, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Failed to load question catalog")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo, err := repository.NewQuestionRepository(questions)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid question catalog")
	}
	statsRepo := repository.NewStatsRepository(questionRepo.IDs())
	sessionRepo := repository.NewSessionRepository()

	log.Info().Int("questions", questionRepo.Count()).Msg("Question catalog loaded")

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var publisher service.ResultPublisher = service.NopPublisher{}
	if cfg.RedisEnabled() {
		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		publisher = service.NewRedisPublisher(rdb)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	quizService := service.NewQuizService(questionRepo, statsRepo, sessionRepo, publisher, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Quiz: handler.NewQuizHandler(quizService, log),
		WS:   handler.NewWSHandler(quizService, log, cfg.AllowedOrigins, cfg.StatsPushInterval),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
