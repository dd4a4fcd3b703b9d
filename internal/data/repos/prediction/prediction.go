package prediction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type PredictionRepo interface {
	// ReplaceAll deletes every prediction for (userID, vehicleID) and inserts preds in a
	// single transaction. Rows of other vehicles are never touched.
	ReplaceAll(ctx context.Context, userID, vehicleID uuid.UUID, preds []*types.Prediction) error
	ListByVehicle(ctx context.Context, tx *gorm.DB, userID, vehicleID uuid.UUID) ([]*types.Prediction, error)
}

type predictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
	return &predictionRepo{db: db, log: baseLog.With("repo", "PredictionRepo")}
}

func (pr *predictionRepo) ReplaceAll(ctx context.Context, userID, vehicleID uuid.UUID, preds []*types.Prediction) error {
	if userID == uuid.Nil || vehicleID == uuid.Nil {
		return fmt.Errorf("replace predictions: missing owner")
	}
	for _, p := range preds {
		if p == nil {
			continue
		}
		if p.UserID != userID || p.VehicleID != vehicleID {
			return fmt.Errorf("replace predictions: row owner mismatch")
		}
	}

	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
			Delete(&types.Prediction{}).Error; err != nil {
			return fmt.Errorf("delete predictions: %w", err)
		}
		rows := make([]*types.Prediction, 0, len(preds))
		for _, p := range preds {
			if p != nil {
				rows = append(rows, p)
			}
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert predictions: %w", err)
		}
		return nil
	})
}

func (pr *predictionRepo) ListByVehicle(ctx context.Context, tx *gorm.DB, userID, vehicleID uuid.UUID) ([]*types.Prediction, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Prediction
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Order("predicted_date ASC").
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
