package prediction

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	types "github.com/yungbote/garage-backend/internal/domain"
	"github.com/yungbote/garage-backend/internal/platform/llm"
)

const (
	promptTemperature = 0.2
	promptMaxTokens   = 900
	baselineHintChars = 1500
	maxPromptSnippets = 3
	snippetBodyChars  = 400
)

const refineSystemPrompt = `You are a vehicle maintenance planner.
Given a vehicle, statistics derived from its service history and a baseline forecast, propose the next maintenance items.
Respond with ONLY a JSON array (no prose, no markdown) of at most 6 objects with these fields:
  "title" (string), "description" (string), "predictedDate" ("YYYY-MM-DD" or null),
  "predictedMileage" (integer or null), "confidence" (integer 1-99),
  "urgency" ("high" | "medium" | "low"), "refs" (array of knowledge ids you relied on).
Prefer the owner's own history over generic schedules. Return [] when nothing is due.`

// RefineInput is everything the refinement prompt is built from.
type RefineInput struct {
	Vehicle  VehicleSnapshot
	Features FeatureSet
	Baseline []Suggestion
	Snippets []*types.KnowledgeSnippet
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}

func buildPrompt(in RefineInput) (llm.Request, error) {
	features, err := json.Marshal(in.Features)
	if err != nil {
		return llm.Request{}, fmt.Errorf("marshal features: %w", err)
	}
	baseline := in.Baseline
	if baseline == nil {
		baseline = []Suggestion{}
	}
	hint, err := json.Marshal(baseline)
	if err != nil {
		return llm.Request{}, fmt.Errorf("marshal baseline: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Vehicle: %d %s %s\n", in.Vehicle.Year, strings.TrimSpace(in.Vehicle.Make), strings.TrimSpace(in.Vehicle.Model))
	if in.Vehicle.Mileage != nil {
		fmt.Fprintf(&b, "Current odometer: %d miles\n", *in.Vehicle.Mileage)
	}
	b.WriteString("\nService history features:\n")
	b.Write(features)
	b.WriteString("\n\nBaseline forecast (hint):\n")
	b.WriteString(truncateRunes(string(hint), baselineHintChars))
	b.WriteString("\n")

	n := 0
	for _, s := range in.Snippets {
		if s == nil || n == maxPromptSnippets {
			continue
		}
		if n == 0 {
			b.WriteString("\nKnowledge:\n")
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", s.ID, strings.TrimSpace(s.Title), truncateRunes(strings.TrimSpace(s.Body), snippetBodyChars))
		n++
	}

	return llm.Request{
		System:      refineSystemPrompt,
		User:        b.String(),
		Temperature: promptTemperature,
		MaxTokens:   promptMaxTokens,
	}, nil
}
