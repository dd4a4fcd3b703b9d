package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/garage-backend/internal/data/kv"
	"github.com/yungbote/garage-backend/internal/data/repos"
	"github.com/yungbote/garage-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/garage-backend/internal/http/handlers"
	httpMW "github.com/yungbote/garage-backend/internal/http/middleware"
	"github.com/yungbote/garage-backend/internal/modules/prediction"
	"github.com/yungbote/garage-backend/internal/services"
)

func TestRouterRefreshEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	users := repos.NewUserRepo(db, log)
	store := kv.NewGormStore(repos.NewCacheEntryRepo(db, log), log)
	plans := prediction.DefaultPlanConfig()
	uc := prediction.New(prediction.UsecasesDeps{
		Log:         log,
		Users:       users,
		Vehicles:    repos.NewVehicleRepo(db, log),
		Records:     repos.NewMaintenanceRecordRepo(db, log),
		Knowledge:   repos.NewKnowledgeRepo(db, log),
		Predictions: repos.NewPredictionRepo(db, log),
		Cache:       prediction.NewSuggestionCache(store, time.Hour, nil, log),
		Budget:      prediction.NewRefreshBudget(store, plans, log),
		Plans:       plans,
	})
	auth := services.NewAuthService(log, users, "test-secret", time.Hour)

	r := NewRouter(RouterConfig{
		Log:               log,
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, auth),
		PredictionHandler: httpH.NewPredictionHandler(log, uc),
		HealthHandler:     httpH.NewHealthHandler(),
		AllowedOrigins:    []string{"http://localhost:3000"},
	})

	pro := testutil.SeedUser(t, ctx, db, "pro")
	v := testutil.SeedVehicle(t, ctx, db, pro.ID, "Toyota", "Corolla", 2018)
	testutil.SeedRecord(t, ctx, db, v, "oil change", "2024-01-01", 10000)
	testutil.SeedRecord(t, ctx, db, v, "oil change", "2024-07-01", 15000)
	token, err := auth.IssueToken(pro.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(nethttp.MethodPost, "/api/predictions/refresh", "", `{}`); rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("anonymous refresh: got=%d want=401", rec.Code)
	}

	rec := do(nethttp.MethodPost, "/api/predictions/refresh", token, `{"vehicleId":"`+v.ID.String()+`"}`)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("refresh: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var refreshed struct {
		OK      bool `json:"ok"`
		Updated int  `json:"updated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if !refreshed.OK || refreshed.Updated != 1 {
		t.Fatalf("unexpected refresh body: %s", rec.Body.String())
	}

	rec = do(nethttp.MethodGet, "/api/vehicles/"+v.ID.String()+"/predictions", token, "")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("list: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var listed struct {
		Predictions []struct {
			Title         string `json:"title"`
			PredictedDate string `json:"predicted_date"`
			Confidence    int    `json:"confidence"`
		} `json:"predictions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Predictions) != 1 || listed.Predictions[0].Title != "Oil change" {
		t.Fatalf("unexpected predictions: %s", rec.Body.String())
	}
	if !strings.HasPrefix(listed.Predictions[0].PredictedDate, "2024-12-30") {
		t.Fatalf("predicted date: got=%q", listed.Predictions[0].PredictedDate)
	}

	free := testutil.SeedUser(t, ctx, db, "free")
	freeToken, err := auth.IssueToken(free.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if rec := do(nethttp.MethodPost, "/api/predictions/refresh", freeToken, `{}`); rec.Code != nethttp.StatusTooManyRequests {
		t.Fatalf("free refresh: got=%d want=429", rec.Code)
	}
}

func TestRouterOperationalEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{
		Log:            testutil.Logger(t),
		HealthHandler:  httpH.NewHealthHandler(),
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/healthcheck", nil))
	if rec.Code != nethttp.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("metrics: got=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "garage_") {
		t.Fatalf("metrics body missing service metrics")
	}
}
