package vehicle

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type MaintenanceRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.MaintenanceRecord) ([]*types.MaintenanceRecord, error)
	ListByVehicle(ctx context.Context, tx *gorm.DB, userID, vehicleID uuid.UUID) ([]*types.MaintenanceRecord, error)
}

type maintenanceRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaintenanceRecordRepo(db *gorm.DB, baseLog *logger.Logger) MaintenanceRecordRepo {
	return &maintenanceRecordRepo{db: db, log: baseLog.With("repo", "MaintenanceRecordRepo")}
}

func (mr *maintenanceRecordRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.MaintenanceRecord) ([]*types.MaintenanceRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(records) == 0 {
		return []*types.MaintenanceRecord{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (mr *maintenanceRecordRepo) ListByVehicle(ctx context.Context, tx *gorm.DB, userID, vehicleID uuid.UUID) ([]*types.MaintenanceRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.MaintenanceRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Order("service_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
