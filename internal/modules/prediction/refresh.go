package prediction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/observability"
	"github.com/yungbote/garage-backend/internal/platform/apierr"
)

type RefreshInput struct {
	UserID             uuid.UUID
	Plan               string
	SubscriptionStatus string
	// VehicleID scopes the refresh to one vehicle; uuid.Nil refreshes every vehicle.
	VehicleID uuid.UUID
}

type VehicleOutcome struct {
	VehicleID uuid.UUID      `json:"vehicleId"`
	State     VehicleState   `json:"state"`
	Trail     []VehicleState `json:"trail"`
	Source    string         `json:"source,omitempty"`
	Updated   int            `json:"updated"`
	Err       error          `json:"-"`
}

func (o *VehicleOutcome) advance(s VehicleState) {
	o.State = s
	o.Trail = append(o.Trail, s)
}

type RefreshResult struct {
	Updated  int              `json:"updated"`
	Vehicles []VehicleOutcome `json:"vehicles"`
}

// Refresh recomputes predictions for the caller's vehicles. Entitlement and the daily
// budget are checked once, before any vehicle is read; afterwards every vehicle is
// committed independently and failures never abort siblings.
func (u Usecases) Refresh(ctx context.Context, in RefreshInput) (RefreshResult, error) {
	ctx, span := observability.Tracer("garage-backend/prediction").Start(ctx, "prediction.refresh")
	defer span.End()

	res, outcome, err := u.refresh(ctx, in)
	observability.RefreshRequests.WithLabelValues(outcome).Inc()
	span.SetAttributes(attribute.String("refresh.outcome", outcome), attribute.Int("refresh.updated", res.Updated))
	return res, err
}

func (u Usecases) refresh(ctx context.Context, in RefreshInput) (RefreshResult, string, error) {
	if in.UserID == uuid.Nil {
		return RefreshResult{}, "unauthorized", apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if !u.deps.Plans.Entitled(in.Plan, in.SubscriptionStatus) {
		return RefreshResult{}, "not_entitled", apierr.New(http.StatusForbidden, "not_entitled", ErrNotEntitled)
	}
	if u.deps.Budget == nil || u.deps.Vehicles == nil || u.deps.Records == nil || u.deps.Predictions == nil {
		return RefreshResult{}, "failed", apierr.New(http.StatusInternalServerError, "refresh_failed", fmt.Errorf("missing deps"))
	}

	log := u.deps.Log.With("user_id", in.UserID)
	now := u.now()
	if err := u.deps.Budget.Acquire(ctx, in.UserID, in.Plan, now); err != nil {
		if errors.Is(err, ErrBudgetExceeded) {
			log.Info("refresh rejected: daily budget exhausted", "plan", in.Plan)
			return RefreshResult{}, "rate_limited", apierr.New(http.StatusTooManyRequests, "rate_limited", err)
		}
		return RefreshResult{}, "failed", apierr.New(http.StatusInternalServerError, "refresh_failed", err)
	}

	vehicles, err := u.targetVehicles(ctx, in)
	if err != nil {
		if apierr.StatusOf(err) == http.StatusNotFound {
			return RefreshResult{}, "vehicle_not_found", err
		}
		return RefreshResult{}, "failed", err
	}

	outcomes := make([]VehicleOutcome, len(vehicles))
	var g errgroup.Group
	g.SetLimit(u.concurrency())
	for i, v := range vehicles {
		g.Go(func() error {
			outcomes[i] = u.refreshVehicle(ctx, in.UserID, v, now)
			return nil
		})
	}
	_ = g.Wait()

	res := RefreshResult{Vehicles: outcomes}
	failed := 0
	for _, o := range outcomes {
		res.Updated += o.Updated
		if o.State == StateVehicleFailed {
			failed++
		}
	}
	log.Info("refresh complete", "vehicles", len(vehicles), "failed", failed, "updated", res.Updated)
	return res, "ok", nil
}

func (u Usecases) targetVehicles(ctx context.Context, in RefreshInput) ([]*types.Vehicle, error) {
	if in.VehicleID != uuid.Nil {
		v, err := u.deps.Vehicles.GetByIDForUser(ctx, nil, in.UserID, in.VehicleID)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, "refresh_failed", fmt.Errorf("load vehicle: %w", err))
		}
		if v == nil {
			return nil, apierr.New(http.StatusNotFound, "vehicle_not_found", nil)
		}
		return []*types.Vehicle{v}, nil
	}
	vs, err := u.deps.Vehicles.ListByUser(ctx, nil, in.UserID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "refresh_failed", fmt.Errorf("list vehicles: %w", err))
	}
	return vs, nil
}

func (u Usecases) refreshVehicle(ctx context.Context, userID uuid.UUID, v *types.Vehicle, now time.Time) (out VehicleOutcome) {
	out = VehicleOutcome{VehicleID: v.ID}
	out.advance(StatePending)
	log := u.deps.Log.With("user_id", userID, "vehicle_id", v.ID)

	defer func() {
		observability.VehicleOutcomes.WithLabelValues(string(out.State), out.Source).Inc()
		if out.Err != nil {
			log.Warn("vehicle refresh failed", "trail", out.Trail, "error", out.Err)
			return
		}
		log.Debug("vehicle refreshed", "trail", out.Trail, "source", out.Source, "updated", out.Updated)
	}()

	records, err := u.deps.Records.ListByVehicle(ctx, nil, userID, v.ID)
	if err != nil {
		out.Err = fmt.Errorf("load records: %w", err)
		out.advance(StateVehicleFailed)
		return out
	}

	features := ExtractFeatures(records)
	baseline := Baseline(features)
	snapshot := SnapshotOf(v)
	hash, err := InputsHash(snapshot, features)
	if err != nil {
		out.Err = err
		out.advance(StateVehicleFailed)
		return out
	}
	out.advance(StateFeaturesBuilt)

	var (
		ai         []Suggestion
		snippetIDs []string
		hit        bool
	)
	if u.deps.Cache != nil {
		ai, snippetIDs, hit, err = u.deps.Cache.Lookup(ctx, userID, v.ID, hash)
		if err != nil {
			observability.CacheLookups.WithLabelValues("error").Inc()
			log.Warn("suggestion cache lookup failed; treating as miss", "error", err)
			ai, snippetIDs, hit = nil, nil, false
		}
	}

	switch {
	case hit:
		observability.CacheLookups.WithLabelValues("hit").Inc()
		out.advance(StateCacheHit)
		out.advance(StateAISkipped)
	case u.deps.Refiner == nil:
		observability.CacheLookups.WithLabelValues("miss").Inc()
		out.advance(StateCacheMiss)
		out.advance(StateAISkipped)
	default:
		observability.CacheLookups.WithLabelValues("miss").Inc()
		out.advance(StateCacheMiss)

		snippets := u.knowledgeFor(ctx, v)
		for _, s := range snippets {
			snippetIDs = append(snippetIDs, s.ID.String())
		}
		refined, rerr := u.deps.Refiner.Refine(ctx, RefineInput{
			Vehicle:  snapshot,
			Features: features,
			Baseline: baseline,
			Snippets: snippets,
		})
		if rerr != nil {
			log.Warn("ai refinement failed; using baseline", "error", rerr)
			out.advance(StateAIFailed)
			ai = nil
		} else {
			out.advance(StateAIOK)
			ai = refined
			if u.deps.Cache != nil {
				if err := u.deps.Cache.Save(ctx, userID, v.ID, hash, refined, snippetIDs); err != nil {
					log.Warn("suggestion cache save failed", "error", err)
				}
			}
		}
	}

	preds, source, err := Reconcile(ReconcileInput{
		UserID:     userID,
		VehicleID:  v.ID,
		InputsHash: hash,
		Features:   features,
		AI:         ai,
		Baseline:   baseline,
		SnippetIDs: snippetIDs,
	}, now)
	out.Source = source
	if err != nil {
		out.Err = err
		out.advance(StateVehicleFailed)
		return out
	}
	if err := u.deps.Predictions.ReplaceAll(ctx, userID, v.ID, preds); err != nil {
		out.Err = fmt.Errorf("persist predictions: %w", err)
		out.advance(StateVehicleFailed)
		return out
	}
	out.Updated = len(preds)
	out.advance(StateReconciled)
	return out
}

func (u Usecases) knowledgeFor(ctx context.Context, v *types.Vehicle) []*types.KnowledgeSnippet {
	if u.deps.Knowledge == nil {
		return nil
	}
	snips, err := u.deps.Knowledge.Search(ctx, nil, v.Make, v.Model, v.Year, maxKnowledgeSnips)
	if err != nil {
		u.deps.Log.Warn("knowledge search failed; prompting without snippets", "vehicle_id", v.ID, "error", err)
		return nil
	}
	return snips
}
