package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/garage-backend/internal/http/handlers"
	httpMW "github.com/yungbote/garage-backend/internal/http/middleware"
	"github.com/yungbote/garage-backend/internal/observability"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string

	AuthMiddleware *httpMW.AuthMiddleware

	PredictionHandler *httpH.PredictionHandler
	HealthHandler     *httpH.HealthHandler

	// AllowedOrigins overrides CORS_ALLOWED_ORIGINS when set.
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics())
	r.Use(httpMW.RequestLogger(cfg.Log))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(httpMW.CORSWithOrigins(cfg.AllowedOrigins))
	} else {
		r.Use(httpMW.CORS())
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	r.GET("/metrics", gin.WrapH(observability.Handler()))

	api := r.Group("/api")
	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Predictions
		if cfg.PredictionHandler != nil {
			protected.POST("/predictions/refresh", cfg.PredictionHandler.Refresh)
			protected.GET("/vehicles/:id/predictions", cfg.PredictionHandler.ListForVehicle)
		}
	}

	return r
}
