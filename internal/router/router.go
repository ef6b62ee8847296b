package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/retro-quiz/internal/config"
	"github.com/stemsi/retro-quiz/internal/handler"
	"github.com/stemsi/retro-quiz/internal/middleware"
	"github.com/stemsi/retro-quiz/internal/response"
)

// catalogMaxAge is how long clients may cache the question catalog.
const catalogMaxAge = 5 * time.Minute

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz *handler.QuizHandler
	WS   *handler.WSHandler
}

// SetupRouter configures all Gin routes with their middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// Request ID first so recovery and access logs can reference it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Quiz.Health)

	api := router.Group("/api")
	{
		api.GET("/questions", middleware.CacheControl(catalogMaxAge), handlers.Quiz.ListQuestions)
		api.GET("/questions/:id", middleware.CacheControl(catalogMaxAge), handlers.Quiz.GetQuestion)

		api.POST("/submit", middleware.NoStore(), handlers.Quiz.Submit)
		api.GET("/stats", middleware.NoStore(), handlers.Quiz.GetStats)
		api.GET("/sessions/:session_id", middleware.NoStore(), handlers.Quiz.GetSession)
	}

	router.GET("/ws/stats", handlers.WS.StatsStream)

	return router
}
