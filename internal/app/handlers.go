package app

import (
	httpH "github.com/yungbote/garage-backend/internal/http/handlers"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Prediction *httpH.PredictionHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Prediction: httpH.NewPredictionHandler(log, services.Predictions),
	}
}
