package prediction

// Suggestion is a candidate prediction before persistence, produced by the baseline
// predictor or decoded from the provider response.
type Suggestion struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PredictedDate    *Date    `json:"predictedDate,omitempty"`
	PredictedMileage *int     `json:"predictedMileage,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
	Urgency          string   `json:"urgency,omitempty"`
	Refs             []string `json:"refs,omitempty"`
}

const (
	MaxSuggestions    = 6
	DefaultConfidence = 60
)

func capSuggestions(in []Suggestion) []Suggestion {
	if len(in) > MaxSuggestions {
		return in[:MaxSuggestions]
	}
	return in
}
