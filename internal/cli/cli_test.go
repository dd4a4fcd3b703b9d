package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/garage-backend/internal/app"
	"github.com/yungbote/garage-backend/internal/data/db"
	"github.com/yungbote/garage-backend/internal/data/repos/testutil"
	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "garage.db"))
	t.Setenv("CACHE_BACKEND", "postgres")
	t.Setenv("LLM_PROVIDER", "disabled")
	t.Setenv("JWT_SECRET_KEY", "cli-test-secret")
	t.Setenv("PREDICTION_CONCURRENCY", "1")
	t.Setenv("PREDICTION_PLANS_PATH", "")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(app.New)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seed writes a pro user with one vehicle and two oil changes straight to the database.
func seed(t *testing.T) (*types.User, *types.Vehicle) {
	t.Helper()
	svc, err := db.NewService(logger.Nop(), db.ConfigFromEnv())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, svc.DB(), "pro")
	v := testutil.SeedVehicle(t, ctx, svc.DB(), u.ID, "Honda", "Civic", 2016)
	testutil.SeedRecord(t, ctx, svc.DB(), v, "oil change", "2024-01-01", 10000)
	testutil.SeedRecord(t, ctx, svc.DB(), v, "oil change", "2024-07-01", 15000)
	return u, v
}

func TestMigrateRefreshUsageToken(t *testing.T) {
	setTestEnv(t)

	out, err := run(t, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "Schema up to date") {
		t.Fatalf("migrate output: %q", out)
	}

	u, v := seed(t)

	out, err = run(t, "refresh", "--user", u.ID.String(), "--vehicle", v.ID.String(), "--json")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	var res struct {
		Updated  int `json:"updated"`
		Vehicles []struct {
			VehicleID string `json:"vehicleId"`
			State     string `json:"state"`
			Source    string `json:"source"`
		} `json:"vehicles"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode refresh output: %v (%s)", err, out)
	}
	if res.Updated != 1 || len(res.Vehicles) != 1 {
		t.Fatalf("unexpected refresh result: %s", out)
	}
	if res.Vehicles[0].VehicleID != v.ID.String() || res.Vehicles[0].Source != types.PredictionSourceLocal {
		t.Fatalf("unexpected vehicle outcome: %+v", res.Vehicles[0])
	}

	out, err = run(t, "usage", "--user", u.ID.String())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if !strings.Contains(out, "plan=pro used=1 limit=20 entitled=true") {
		t.Fatalf("usage output: %q", out)
	}

	out, err = run(t, "token", "--user", u.ID.String())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), ".") != 2 {
		t.Fatalf("expected a JWT, got %q", out)
	}
}

func TestRefreshTextOutput(t *testing.T) {
	setTestEnv(t)
	if _, err := run(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	u, v := seed(t)

	out, err := run(t, "refresh", "--user", u.ID.String())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !strings.Contains(out, v.ID.String()) || !strings.Contains(out, "1 prediction(s) written across 1 vehicle(s)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRefreshErrors(t *testing.T) {
	setTestEnv(t)
	if _, err := run(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if _, err := run(t, "refresh", "--user", "nope"); err == nil || !strings.Contains(err.Error(), "invalid --user") {
		t.Fatalf("expected invalid user flag error, got %v", err)
	}
	if _, err := run(t, "refresh"); err == nil {
		t.Fatal("expected missing --user to fail")
	}
	_, err := run(t, "refresh", "--user", "7d4b5a0e-7f54-4a8c-9a3c-2b3f6f1e0c11")
	if err == nil || !strings.Contains(err.Error(), "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "garagectl ") {
		t.Fatalf("version output: %q", out)
	}
}
