package prediction

import (
	"sort"
	"strings"

	types "github.com/yungbote/garage-backend/internal/domain"
)

// FeatureSet is the per-vehicle service-interval summary derived from maintenance history.
// Map keys are normalized (lower-cased, trimmed) maintenance types.
type FeatureSet struct {
	LastMileage       *int                `json:"lastMileage"`
	AvgDaysByType     map[string]*float64 `json:"avgDaysByType"`
	AvgMilesByType    map[string]*float64 `json:"avgMilesByType"`
	LastDateByType    map[string]*Date    `json:"lastDateByType"`
	LastMileageByType map[string]*int     `json:"lastMileageByType"`
}

// Types returns the feature keys in sorted order.
func (fs FeatureSet) Types() []string {
	keys := make([]string, 0, len(fs.LastDateByType))
	for k := range fs.LastDateByType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type event struct {
	id      string
	date    Date
	mileage *int
}

func normalizeType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortEvents(evs []event) {
	sort.SliceStable(evs, func(i, j int) bool {
		a, b := evs[i], evs[j]
		if !a.date.Equal(b.date.Time) {
			return a.date.Before(b.date.Time)
		}
		switch {
		case a.mileage == nil && b.mileage != nil:
			return true
		case a.mileage != nil && b.mileage == nil:
			return false
		case a.mileage != nil && b.mileage != nil && *a.mileage != *b.mileage:
			return *a.mileage < *b.mileage
		}
		return a.id < b.id
	})
}

func average(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	avg := sum / float64(len(xs))
	return &avg
}

func latestMileage(evs []event) *int {
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].mileage != nil {
			m := *evs[i].mileage
			return &m
		}
	}
	return nil
}

// ExtractFeatures groups records by type and averages the gaps between consecutive
// services. Records without a usable date or type are ignored; the result does not depend
// on input order.
func ExtractFeatures(records []*types.MaintenanceRecord) FeatureSet {
	fs := FeatureSet{
		AvgDaysByType:     map[string]*float64{},
		AvgMilesByType:    map[string]*float64{},
		LastDateByType:    map[string]*Date{},
		LastMileageByType: map[string]*int{},
	}

	groups := map[string][]event{}
	var all []event
	for _, r := range records {
		if r == nil || r.ServiceDate.IsZero() {
			continue
		}
		kind := normalizeType(r.Type)
		if kind == "" {
			continue
		}
		ev := event{id: r.ID.String(), date: DateOf(r.ServiceDate), mileage: r.Mileage}
		groups[kind] = append(groups[kind], ev)
		all = append(all, ev)
	}

	for kind, evs := range groups {
		sortEvents(evs)

		var dayDeltas, mileDeltas []float64
		for i := 1; i < len(evs); i++ {
			prev, cur := evs[i-1], evs[i]
			dayDeltas = append(dayDeltas, cur.date.DaysSince(prev.date))
			if prev.mileage != nil && cur.mileage != nil {
				mileDeltas = append(mileDeltas, float64(*cur.mileage-*prev.mileage))
			}
		}

		last := evs[len(evs)-1].date
		fs.AvgDaysByType[kind] = average(dayDeltas)
		fs.AvgMilesByType[kind] = average(mileDeltas)
		fs.LastDateByType[kind] = &last
		fs.LastMileageByType[kind] = latestMileage(evs)
	}

	sortEvents(all)
	fs.LastMileage = latestMileage(all)
	return fs
}
