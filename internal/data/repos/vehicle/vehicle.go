package vehicle

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type VehicleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vehicles []*types.Vehicle) ([]*types.Vehicle, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Vehicle, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, userID, vehicleID uuid.UUID) (*types.Vehicle, error)
}

type vehicleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVehicleRepo(db *gorm.DB, baseLog *logger.Logger) VehicleRepo {
	return &vehicleRepo{db: db, log: baseLog.With("repo", "VehicleRepo")}
}

func (vr *vehicleRepo) Create(ctx context.Context, tx *gorm.DB, vehicles []*types.Vehicle) ([]*types.Vehicle, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if len(vehicles) == 0 {
		return []*types.Vehicle{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (vr *vehicleRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Vehicle, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Vehicle
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByIDForUser returns nil, nil when the vehicle is missing or owned by someone else.
func (vr *vehicleRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, userID, vehicleID uuid.UUID) (*types.Vehicle, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var v types.Vehicle
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", vehicleID, userID).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
