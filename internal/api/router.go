package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/newsdeck/internal/api/handler"
	"github.com/timmy/newsdeck/internal/api/middleware"
	"github.com/timmy/newsdeck/internal/config"
	"github.com/timmy/newsdeck/internal/logger"
)

// SetupRouter configures the Gin router with all routes. dbCheck backs
// /health and may be nil.
func SetupRouter(
	news handler.NewsLister,
	dbCheck handler.HealthCheck,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(dbCheck)
	newsHandler := handler.NewNewsHandler(news)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", newsHandler.ListNews)
		v1.GET("/news/:id", newsHandler.GetNews)
	}

	return r
}
