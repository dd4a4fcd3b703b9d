package prediction

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/garage-backend/internal/domain"
)

// ReconcileInput carries both candidate lists; AI wins when it is non-empty.
type ReconcileInput struct {
	UserID     uuid.UUID
	VehicleID  uuid.UUID
	InputsHash string
	Features   FeatureSet
	AI         []Suggestion
	Baseline   []Suggestion
	// SnippetIDs are the knowledge snippets the AI prompt was built with.
	SnippetIDs []string
}

type basis struct {
	Source   string     `json:"source"`
	Features FeatureSet `json:"features"`
	RagRefs  []string   `json:"ragRefs"`
}

func clampConfidence(c float64) float64 {
	r := math.Round(c)
	if r < 1 {
		return 1
	}
	if r > 99 {
		return 99
	}
	return r
}

func confidenceOf(s Suggestion) int {
	if s.Confidence == nil || math.IsNaN(*s.Confidence) {
		return DefaultConfidence
	}
	return int(clampConfidence(*s.Confidence))
}

func urgencyOf(s Suggestion, confidence int, today Date) string {
	switch s.Urgency {
	case types.UrgencyHigh, types.UrgencyMedium, types.UrgencyLow:
		return s.Urgency
	}
	if s.PredictedDate != nil && !s.PredictedDate.IsZero() && s.PredictedDate.Before(today.Time) {
		return types.UrgencyHigh
	}
	if confidence >= 75 {
		return types.UrgencyMedium
	}
	return types.UrgencyLow
}

func ragRefs(chosen []Suggestion, snippetIDs []string) []string {
	seen := map[string]bool{}
	out := []string{}
	add := func(ref string) {
		if ref == "" || seen[ref] {
			return
		}
		seen[ref] = true
		out = append(out, ref)
	}
	for _, s := range chosen {
		for _, r := range s.Refs {
			add(r)
		}
	}
	for _, id := range snippetIDs {
		add(id)
	}
	return out
}

// Reconcile turns the chosen suggestion list into persisted rows and reports the source.
func Reconcile(in ReconcileInput, now time.Time) ([]*types.Prediction, string, error) {
	source := types.PredictionSourceLocal
	chosen := in.Baseline
	var snippets []string
	if len(in.AI) > 0 {
		source = types.PredictionSourceAI
		chosen = in.AI
		snippets = in.SnippetIDs
	}
	chosen = capSuggestions(chosen)

	b, err := json.Marshal(basis{
		Source:   source,
		Features: in.Features,
		RagRefs:  ragRefs(chosen, snippets),
	})
	if err != nil {
		return nil, source, fmt.Errorf("marshal basis: %w", err)
	}

	today := DateOf(now.UTC())
	out := make([]*types.Prediction, 0, len(chosen))
	for _, s := range chosen {
		conf := confidenceOf(s)
		p := &types.Prediction{
			UserID:      in.UserID,
			VehicleID:   in.VehicleID,
			Title:       s.Title,
			Description: s.Description,
			Confidence:  conf,
			Urgency:     urgencyOf(s, conf, today),
			Basis:       datatypes.JSON(b),
			InputsHash:  in.InputsHash,
		}
		if s.PredictedDate != nil && !s.PredictedDate.IsZero() {
			d := s.PredictedDate.Time
			p.PredictedDate = &d
		}
		if s.PredictedMileage != nil {
			m := *s.PredictedMileage
			p.PredictedMileage = &m
		}
		out = append(out, p)
	}
	return out, source, nil
}
