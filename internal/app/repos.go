package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/garage-backend/internal/data/repos"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type Repos struct {
	User              repos.UserRepo
	Vehicle           repos.VehicleRepo
	MaintenanceRecord repos.MaintenanceRecordRepo
	Knowledge         repos.KnowledgeRepo
	Prediction        repos.PredictionRepo
	CacheEntry        repos.CacheEntryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Vehicle:           repos.NewVehicleRepo(db, log),
		MaintenanceRecord: repos.NewMaintenanceRecordRepo(db, log),
		Knowledge:         repos.NewKnowledgeRepo(db, log),
		Prediction:        repos.NewPredictionRepo(db, log),
		CacheEntry:        repos.NewCacheEntryRepo(db, log),
	}
}
