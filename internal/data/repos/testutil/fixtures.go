package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/garage-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, plan string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:                 uuid.New(),
		Email:              uuid.NewString() + "@example.com",
		Plan:               plan,
		SubscriptionStatus: "active",
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVehicle(tb testing.TB, ctx context.Context, db *gorm.DB, userID uuid.UUID, vehicleMake, vehicleModel string, year int) *types.Vehicle {
	tb.Helper()
	v := &types.Vehicle{
		ID:     uuid.New(),
		UserID: userID,
		Make:   vehicleMake,
		Model:  vehicleModel,
		Year:   year,
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed vehicle: %v", err)
	}
	return v
}

// SeedRecord inserts a maintenance record; date is YYYY-MM-DD and mileage < 0 means unknown.
func SeedRecord(tb testing.TB, ctx context.Context, db *gorm.DB, v *types.Vehicle, kind, date string, mileage int) *types.MaintenanceRecord {
	tb.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		tb.Fatalf("seed record date %q: %v", date, err)
	}
	r := &types.MaintenanceRecord{
		ID:          uuid.New(),
		UserID:      v.UserID,
		VehicleID:   v.ID,
		Type:        kind,
		ServiceDate: d,
	}
	if mileage >= 0 {
		m := mileage
		r.Mileage = &m
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed record: %v", err)
	}
	return r
}

func CountPredictions(tb testing.TB, db *gorm.DB, userID, vehicleID uuid.UUID) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(&types.Prediction{}).
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Count(&n).Error; err != nil {
		tb.Fatalf("count predictions: %v", err)
	}
	return n
}
