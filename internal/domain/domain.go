package domain

import (
	"github.com/yungbote/garage-backend/internal/domain/prediction"
	"github.com/yungbote/garage-backend/internal/domain/user"
	"github.com/yungbote/garage-backend/internal/domain/vehicle"
)

const (
	PredictionSourceAI    = prediction.SourceAI
	PredictionSourceLocal = prediction.SourceLocal

	UrgencyHigh   = prediction.UrgencyHigh
	UrgencyMedium = prediction.UrgencyMedium
	UrgencyLow    = prediction.UrgencyLow
)

type User = user.User

type Vehicle = vehicle.Vehicle
type MaintenanceRecord = vehicle.MaintenanceRecord
type KnowledgeSnippet = vehicle.KnowledgeSnippet

type Prediction = prediction.Prediction
type CacheEntry = prediction.CacheEntry

// Models lists every table owned by this service, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Vehicle{},
		&MaintenanceRecord{},
		&KnowledgeSnippet{},
		&Prediction{},
		&CacheEntry{},
	}
}
