package prediction

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	types "github.com/yungbote/garage-backend/internal/domain"
)

// Baseline emits one suggestion per maintenance type that has both an average interval and
// a last service date, in sorted type order, capped at MaxSuggestions. It never fails.
func Baseline(fs FeatureSet) []Suggestion {
	out := make([]Suggestion, 0, MaxSuggestions)
	for _, kind := range fs.Types() {
		avgDays := fs.AvgDaysByType[kind]
		lastDate := fs.LastDateByType[kind]
		if avgDays == nil || lastDate == nil {
			continue
		}
		days := int(math.Round(*avgDays))
		due := lastDate.AddDays(days)

		var mileage *int
		avgMiles := fs.AvgMilesByType[kind]
		lastMiles := fs.LastMileageByType[kind]
		if avgMiles != nil && lastMiles != nil {
			m := *lastMiles + int(math.Round(*avgMiles))
			mileage = &m
		}

		conf := float64(DefaultConfidence)
		out = append(out, Suggestion{
			Title:            titleFor(kind),
			Description:      describeInterval(days, avgMiles),
			PredictedDate:    &due,
			PredictedMileage: mileage,
			Confidence:       &conf,
			Urgency:          types.UrgencyMedium,
		})
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

func titleFor(kind string) string {
	r, size := utf8.DecodeRuneInString(kind)
	if r == utf8.RuneError {
		return kind
	}
	return string(unicode.ToUpper(r)) + kind[size:]
}

func describeInterval(days int, avgMiles *float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your service history this is done about every %d days", days)
	if avgMiles != nil && *avgMiles > 0 {
		fmt.Fprintf(&b, " or %d miles", int(math.Round(*avgMiles)))
	}
	b.WriteString(".")
	return b.String()
}
