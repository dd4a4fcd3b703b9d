package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/modules/prediction"
	"github.com/yungbote/garage-backend/internal/platform/apierr"
	"github.com/yungbote/garage-backend/internal/platform/ctxutil"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type fakePredictions struct {
	refreshCalls []prediction.RefreshInput
	refreshRes   prediction.RefreshResult
	refreshErr   error

	listPreds []*types.Prediction
	listErr   error
	listArgs  [2]uuid.UUID
}

func (f *fakePredictions) Refresh(_ context.Context, in prediction.RefreshInput) (prediction.RefreshResult, error) {
	f.refreshCalls = append(f.refreshCalls, in)
	return f.refreshRes, f.refreshErr
}

func (f *fakePredictions) ListForVehicle(_ context.Context, userID, vehicleID uuid.UUID) ([]*types.Prediction, error) {
	f.listArgs = [2]uuid.UUID{userID, vehicleID}
	return f.listPreds, f.listErr
}

func newPredictionRouter(fake *fakePredictions, rd *ctxutil.RequestData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPredictionHandler(logger.Nop(), fake)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if rd != nil {
			c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		}
		c.Next()
	})
	r.POST("/api/predictions/refresh", h.Refresh)
	r.GET("/api/vehicles/:id/predictions", h.ListForVehicle)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	if env.Error.Message == "" {
		t.Fatalf("error envelope without message: %s", rec.Body.String())
	}
	return env.Error.Code
}

func TestRefreshPassesCallerAndReturnsUpdated(t *testing.T) {
	userID := uuid.New()
	vehicleID := uuid.New()
	fake := &fakePredictions{refreshRes: prediction.RefreshResult{Updated: 4}}
	r := newPredictionRouter(fake, &ctxutil.RequestData{UserID: userID, Plan: "pro", SubscriptionStatus: "active"})

	rec := doJSON(r, http.MethodPost, "/api/predictions/refresh", `{"vehicleId":"`+vehicleID.String()+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		OK      bool `json:"ok"`
		Updated int  `json:"updated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.OK || body.Updated != 4 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(fake.refreshCalls) != 1 {
		t.Fatalf("refresh calls: got=%d", len(fake.refreshCalls))
	}
	in := fake.refreshCalls[0]
	if in.UserID != userID || in.VehicleID != vehicleID || in.Plan != "pro" || in.SubscriptionStatus != "active" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestRefreshWithoutBodyRefreshesAllVehicles(t *testing.T) {
	fake := &fakePredictions{}
	r := newPredictionRouter(fake, &ctxutil.RequestData{UserID: uuid.New(), Plan: "pro"})

	rec := doJSON(r, http.MethodPost, "/api/predictions/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(fake.refreshCalls) != 1 || fake.refreshCalls[0].VehicleID != uuid.Nil {
		t.Fatalf("expected one unscoped refresh, got %+v", fake.refreshCalls)
	}
}

func TestRefreshRejectsBadVehicleID(t *testing.T) {
	fake := &fakePredictions{}
	r := newPredictionRouter(fake, &ctxutil.RequestData{UserID: uuid.New(), Plan: "pro"})

	rec := doJSON(r, http.MethodPost, "/api/predictions/refresh", `{"vehicleId":"not-a-uuid"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if code := errorCode(t, rec); code != "invalid_vehicle_id" {
		t.Fatalf("code: got=%q", code)
	}
	if len(fake.refreshCalls) != 0 {
		t.Fatal("usecase must not run for a malformed id")
	}
}

func TestRefreshMapsUsecaseErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "unauthorized", err: apierr.New(http.StatusUnauthorized, "unauthorized", nil), wantCode: 401, wantErr: "unauthorized"},
		{name: "not entitled", err: apierr.New(http.StatusForbidden, "not_entitled", prediction.ErrNotEntitled), wantCode: 403, wantErr: "not_entitled"},
		{name: "rate limited", err: apierr.New(http.StatusTooManyRequests, "rate_limited", prediction.ErrBudgetExceeded), wantCode: 429, wantErr: "rate_limited"},
		{name: "not found", err: apierr.New(http.StatusNotFound, "vehicle_not_found", nil), wantCode: 404, wantErr: "vehicle_not_found"},
		{name: "plain error", err: errors.New("boom"), wantCode: 500, wantErr: "refresh_failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakePredictions{refreshErr: tc.err}
			r := newPredictionRouter(fake, &ctxutil.RequestData{UserID: uuid.New(), Plan: "free"})
			rec := doJSON(r, http.MethodPost, "/api/predictions/refresh", `{}`)
			if rec.Code != tc.wantCode {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantCode)
			}
			if code := errorCode(t, rec); code != tc.wantErr {
				t.Fatalf("code: got=%q want=%q", code, tc.wantErr)
			}
		})
	}
}

func TestListForVehicle(t *testing.T) {
	userID := uuid.New()
	vehicleID := uuid.New()
	fake := &fakePredictions{listPreds: []*types.Prediction{{ID: uuid.New(), Title: "Oil change"}}}
	r := newPredictionRouter(fake, &ctxutil.RequestData{UserID: userID})

	rec := doJSON(r, http.MethodGet, "/api/vehicles/"+vehicleID.String()+"/predictions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if fake.listArgs != [2]uuid.UUID{userID, vehicleID} {
		t.Fatalf("unexpected args: %v", fake.listArgs)
	}
	var body struct {
		Predictions []map[string]any `json:"predictions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Predictions) != 1 {
		t.Fatalf("predictions: got=%d", len(body.Predictions))
	}

	rec = doJSON(r, http.MethodGet, "/api/vehicles/xyz/predictions", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status: got=%d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)
	rec := doJSON(r, http.MethodGet, "/healthcheck", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}
