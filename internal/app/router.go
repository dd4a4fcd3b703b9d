package app

import (
	"github.com/yungbote/garage-backend/internal/http"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		ServiceName:       ServiceName,
		AuthMiddleware:    middleware.Auth,
		PredictionHandler: handlers.Prediction,
		HealthHandler:     handlers.Health,
		AllowedOrigins:    cfg.AllowedOrigins,
	})
}
