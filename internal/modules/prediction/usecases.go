package prediction

import (
	"time"

	"github.com/yungbote/garage-backend/internal/data/repos"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const (
	DefaultConcurrency = 2
	maxKnowledgeSnips  = 3
)

type UsecasesDeps struct {
	Log *logger.Logger

	Users       repos.UserRepo
	Vehicles    repos.VehicleRepo
	Records     repos.MaintenanceRecordRepo
	Knowledge   repos.KnowledgeRepo
	Predictions repos.PredictionRepo

	Cache  *SuggestionCache
	Budget *RefreshBudget
	// Refiner is nil when no provider is configured; every cache miss is then AI_SKIPPED.
	Refiner *Refiner

	Plans       PlanConfig
	Concurrency int
	Now         func() time.Time
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

func (u Usecases) now() time.Time {
	if u.deps.Now != nil {
		return u.deps.Now()
	}
	return time.Now()
}

func (u Usecases) concurrency() int {
	if u.deps.Concurrency > 0 {
		return u.deps.Concurrency
	}
	return DefaultConcurrency
}
