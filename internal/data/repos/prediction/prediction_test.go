package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/garage-backend/internal/data/repos/testutil"
	types "github.com/yungbote/garage-backend/internal/domain"
)

func newPrediction(userID, vehicleID uuid.UUID, title string) *types.Prediction {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	m := 42000
	return &types.Prediction{
		UserID:           userID,
		VehicleID:        vehicleID,
		Title:            title,
		Description:      title + " due",
		PredictedDate:    &d,
		PredictedMileage: &m,
		Confidence:       60,
		Urgency:          types.UrgencyLow,
		Basis:            datatypes.JSON(`{"source":"local"}`),
		InputsHash:       "abc",
	}
}

func TestPredictionRepo_ReplaceAllIsolatesVehicles(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "pro")
	a := testutil.SeedVehicle(t, ctx, db, u.ID, "Honda", "Civic", 2018)
	b := testutil.SeedVehicle(t, ctx, db, u.ID, "Ford", "F-150", 2020)

	repo := NewPredictionRepo(db, testutil.Logger(t))

	if err := repo.ReplaceAll(ctx, u.ID, a.ID, []*types.Prediction{
		newPrediction(u.ID, a.ID, "Oil change"),
		newPrediction(u.ID, a.ID, "Tire rotation"),
	}); err != nil {
		t.Fatalf("ReplaceAll(a): %v", err)
	}
	if err := repo.ReplaceAll(ctx, u.ID, b.ID, []*types.Prediction{
		newPrediction(u.ID, b.ID, "Brakes"),
	}); err != nil {
		t.Fatalf("ReplaceAll(b): %v", err)
	}

	if err := repo.ReplaceAll(ctx, u.ID, a.ID, []*types.Prediction{
		newPrediction(u.ID, a.ID, "Coolant flush"),
	}); err != nil {
		t.Fatalf("ReplaceAll(a) second: %v", err)
	}

	gotA, err := repo.ListByVehicle(ctx, nil, u.ID, a.ID)
	if err != nil {
		t.Fatalf("ListByVehicle(a): %v", err)
	}
	if len(gotA) != 1 || gotA[0].Title != "Coolant flush" {
		t.Fatalf("ListByVehicle(a): unexpected %+v", gotA)
	}
	if n := testutil.CountPredictions(t, db, u.ID, b.ID); n != 1 {
		t.Fatalf("vehicle b predictions = %d, want 1", n)
	}

	if err := repo.ReplaceAll(ctx, u.ID, a.ID, nil); err != nil {
		t.Fatalf("ReplaceAll(a, empty): %v", err)
	}
	if n := testutil.CountPredictions(t, db, u.ID, a.ID); n != 0 {
		t.Fatalf("vehicle a predictions = %d, want 0", n)
	}
}

func TestPredictionRepo_ReplaceAllRejectsForeignRows(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "pro")
	a := testutil.SeedVehicle(t, ctx, db, u.ID, "Honda", "Civic", 2018)
	repo := NewPredictionRepo(db, testutil.Logger(t))

	err := repo.ReplaceAll(ctx, u.ID, a.ID, []*types.Prediction{newPrediction(u.ID, uuid.New(), "x")})
	if err == nil {
		t.Fatalf("expected owner mismatch error")
	}
}

func TestCacheEntryRepo_UpsertAndGet(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewCacheEntryRepo(db, testutil.Logger(t))
	userID := uuid.New()
	key := "pred:v:" + uuid.NewString() + ":h:abc"
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := repo.Get(ctx, nil, key, userID)
	if err != nil {
		t.Fatalf("Get(miss): %v", err)
	}
	if got != nil {
		t.Fatalf("Get(miss): expected nil")
	}

	if err := repo.Upsert(ctx, nil, &types.CacheEntry{Key: key, UserID: userID, Value: datatypes.JSON(`[1]`), UpdatedAt: t0, TTLSeconds: 60}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(ctx, nil, &types.CacheEntry{Key: key, UserID: userID, Value: datatypes.JSON(`[2]`), UpdatedAt: t0.Add(time.Hour), TTLSeconds: 120}); err != nil {
		t.Fatalf("Upsert(overwrite): %v", err)
	}

	got, err = repo.Get(ctx, nil, key, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || string(got.Value) != "[2]" || got.TTLSeconds != 120 {
		t.Fatalf("Get: unexpected %+v", got)
	}
	if !got.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("Get: updated_at = %v", got.UpdatedAt)
	}

	other, err := repo.Get(ctx, nil, key, uuid.New())
	if err != nil {
		t.Fatalf("Get(other user): %v", err)
	}
	if other != nil {
		t.Fatalf("Get(other user): expected nil")
	}
}
