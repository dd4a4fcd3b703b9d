package app

import (
	"github.com/yungbote/garage-backend/internal/data/kv"
	"github.com/yungbote/garage-backend/internal/modules/prediction"
	"github.com/yungbote/garage-backend/internal/platform/llm"
	"github.com/yungbote/garage-backend/internal/platform/logger"
	"github.com/yungbote/garage-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Store       kv.Store
	Budget      *prediction.RefreshBudget
	Predictions prediction.Usecases
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var store kv.Store
	if clients.Redis != nil {
		store = kv.NewRedisStore(clients.Redis, log)
	} else {
		store = kv.NewGormStore(reposet.CacheEntry, log)
	}

	var refiner *prediction.Refiner
	if clients.LLM != nil && clients.LLM.Provider() != llm.ProviderDisabled {
		refiner = prediction.NewRefiner(clients.LLM, cfg.AITimeout, log)
	} else {
		log.Info("No LLM provider configured; refresh uses the local baseline only")
	}

	budget := prediction.NewRefreshBudget(store, cfg.Plans, log)
	return Services{
		Auth:   services.NewAuthService(log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Store:  store,
		Budget: budget,
		Predictions: prediction.New(prediction.UsecasesDeps{
			Log:         log.With("module", "prediction"),
			Users:       reposet.User,
			Vehicles:    reposet.Vehicle,
			Records:     reposet.MaintenanceRecord,
			Knowledge:   reposet.Knowledge,
			Predictions: reposet.Prediction,
			Cache:       prediction.NewSuggestionCache(store, cfg.SuggestionTTL, nil, log),
			Budget:      budget,
			Refiner:     refiner,
			Plans:       cfg.Plans,
			Concurrency: cfg.Concurrency,
		}),
	}
}
