package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/garage-backend/internal/data/repos/prediction"
	"github.com/yungbote/garage-backend/internal/data/repos/user"
	"github.com/yungbote/garage-backend/internal/data/repos/vehicle"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type VehicleRepo = vehicle.VehicleRepo
type MaintenanceRecordRepo = vehicle.MaintenanceRecordRepo
type KnowledgeRepo = vehicle.KnowledgeRepo

type PredictionRepo = prediction.PredictionRepo
type CacheEntryRepo = prediction.CacheEntryRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewVehicleRepo(db *gorm.DB, log *logger.Logger) VehicleRepo {
	return vehicle.NewVehicleRepo(db, log)
}

func NewMaintenanceRecordRepo(db *gorm.DB, log *logger.Logger) MaintenanceRecordRepo {
	return vehicle.NewMaintenanceRecordRepo(db, log)
}

func NewKnowledgeRepo(db *gorm.DB, log *logger.Logger) KnowledgeRepo {
	return vehicle.NewKnowledgeRepo(db, log)
}

func NewPredictionRepo(db *gorm.DB, log *logger.Logger) PredictionRepo {
	return prediction.NewPredictionRepo(db, log)
}

func NewCacheEntryRepo(db *gorm.DB, log *logger.Logger) CacheEntryRepo {
	return prediction.NewCacheEntryRepo(db, log)
}
