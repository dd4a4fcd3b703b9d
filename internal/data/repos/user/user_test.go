package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/garage-backend/internal/data/repos/testutil"
	types "github.com/yungbote/garage-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.User{
		{ID: uuid.New(), Email: "userrepo-" + uuid.NewString() + "@example.com"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
	if got.Plan != "free" {
		t.Fatalf("GetByID: expected default plan free, got %q", got.Plan)
	}

	if err := repo.UpdatePlan(ctx, tx, created[0].ID, "pro", "active"); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after UpdatePlan: %v", err)
	}
	if got.Plan != "pro" || got.SubscriptionStatus != "active" {
		t.Fatalf("UpdatePlan: got plan=%q status=%q", got.Plan, got.SubscriptionStatus)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID(missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID(missing): expected nil, got %+v", missing)
	}
}
