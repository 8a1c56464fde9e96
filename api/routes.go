package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/replycraft/api/middleware"
	"github.com/customeros/replycraft/api/rest/handlers"
	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/repository"
	"github.com/customeros/replycraft/internal/tracing"
	"github.com/customeros/replycraft/internal/utils"
	"github.com/customeros/replycraft/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, appConfig *config.AppConfig, s *services.Services, repos *repository.Repositories, log logger.Logger) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery
	r.Use(cors.New(CorsConfig(appConfig.CorsAllowedOrigins)))
	r.Use(middleware.RequestIdMiddleware())
	r.Use(middleware.CustomContextMiddleware(utils.AppSourceReplyCraft))
	r.Use(middleware.LoggingMiddleware(log))

	apiHandlers := handlers.InitHandlers(s, repos)

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.TracingMiddleware())
	{
		emails := api.Group("/email")
		{
			emails.POST("/generate", apiHandlers.Emails.Generate())
			emails.POST("/generate/raw", apiHandlers.Emails.GenerateRaw())
		}

		api.GET("/threads/:id", apiHandlers.Threads.Get())
	}
}

// CorsConfig allows every origin when the list is empty or contains "*".
func CorsConfig(allowedOrigins []string) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIdHeader},
		ExposeHeaders: []string{middleware.RequestIdHeader},

		// the reply assistant extension calls from chrome-extension:// origins
		AllowBrowserExtensions: true,
	}

	origins := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}

	corsConfig.AllowOrigins = origins
	return corsConfig
}
