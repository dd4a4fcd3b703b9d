package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/http/response"
	"github.com/yungbote/garage-backend/internal/modules/prediction"
	"github.com/yungbote/garage-backend/internal/platform/apierr"
	"github.com/yungbote/garage-backend/internal/platform/ctxutil"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

type PredictionUsecases interface {
	Refresh(ctx context.Context, in prediction.RefreshInput) (prediction.RefreshResult, error)
	ListForVehicle(ctx context.Context, userID, vehicleID uuid.UUID) ([]*types.Prediction, error)
}

type PredictionHandler struct {
	log         *logger.Logger
	predictions PredictionUsecases
}

func NewPredictionHandler(log *logger.Logger, predictions PredictionUsecases) *PredictionHandler {
	return &PredictionHandler{log: log.With("handler", "PredictionHandler"), predictions: predictions}
}

type refreshRequest struct {
	VehicleID string `json:"vehicleId"`
}

// POST /api/predictions/refresh
func (h *PredictionHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var vehicleID uuid.UUID
	if raw := strings.TrimSpace(req.VehicleID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_vehicle_id", fmt.Errorf("invalid vehicleId %q", raw))
			return
		}
		vehicleID = id
	}

	in := prediction.RefreshInput{VehicleID: vehicleID}
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		in.UserID = rd.UserID
		in.Plan = rd.Plan
		in.SubscriptionStatus = rd.SubscriptionStatus
	}

	res, err := h.predictions.Refresh(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err, "refresh_failed")
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "updated": res.Updated})
}

// GET /api/vehicles/:id/predictions
func (h *PredictionHandler) ListForVehicle(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_vehicle_id", err)
		return
	}
	var userID uuid.UUID
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		userID = rd.UserID
	}
	preds, err := h.predictions.ListForVehicle(c.Request.Context(), userID, vehicleID)
	if err != nil {
		h.respondError(c, err, "list_predictions_failed")
		return
	}
	response.RespondOK(c, gin.H{"predictions": preds})
}

func (h *PredictionHandler) respondError(c *gin.Context, err error, fallbackCode string) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		if ae.Status >= http.StatusInternalServerError {
			h.log.Error("Prediction request failed", "code", ae.Code, "error", err)
		}
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	h.log.Error("Prediction request failed", "error", err)
	response.RespondError(c, http.StatusInternalServerError, fallbackCode, err)
}
