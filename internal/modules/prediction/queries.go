package prediction

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/apierr"
)

// ListForVehicle returns the stored predictions of one of the caller's vehicles.
func (u Usecases) ListForVehicle(ctx context.Context, userID, vehicleID uuid.UUID) ([]*types.Prediction, error) {
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if vehicleID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_vehicle_id", fmt.Errorf("missing vehicle id"))
	}
	v, err := u.deps.Vehicles.GetByIDForUser(ctx, nil, userID, vehicleID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_vehicle_failed", err)
	}
	if v == nil {
		return nil, apierr.New(http.StatusNotFound, "vehicle_not_found", nil)
	}
	preds, err := u.deps.Predictions.ListByVehicle(ctx, nil, userID, vehicleID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "load_predictions_failed", err)
	}
	if preds == nil {
		preds = []*types.Prediction{}
	}
	return preds, nil
}

// RefreshForUser resolves the user's stored plan and runs Refresh; used by operator tooling.
func (u Usecases) RefreshForUser(ctx context.Context, userID, vehicleID uuid.UUID) (RefreshResult, error) {
	if u.deps.Users == nil {
		return RefreshResult{}, apierr.New(http.StatusInternalServerError, "refresh_failed", fmt.Errorf("missing deps"))
	}
	user, err := u.deps.Users.GetByID(ctx, nil, userID)
	if err != nil {
		return RefreshResult{}, apierr.New(http.StatusInternalServerError, "load_user_failed", err)
	}
	if user == nil {
		return RefreshResult{}, apierr.New(http.StatusNotFound, "user_not_found", nil)
	}
	return u.Refresh(ctx, RefreshInput{
		UserID:             user.ID,
		Plan:               user.Plan,
		SubscriptionStatus: user.SubscriptionStatus,
		VehicleID:          vehicleID,
	})
}
