package prediction

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	types "github.com/yungbote/garage-backend/internal/domain"
)

const maxDerivedTitleChars = 80

// ParseSuggestions decodes a provider reply that must be a JSON array of suggestion
// objects, optionally wrapped in one markdown code fence. Fields are decoded one at a
// time: wrong-typed values are coerced when possible and dropped otherwise, and an object
// is dropped only when it has neither a title nor a description.
func ParseSuggestions(raw string) ([]Suggestion, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, &ParseError{Reason: "empty response"}
	}
	if !strings.HasPrefix(body, "[") {
		return nil, &ParseError{Reason: "response is not a JSON array"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}

	out := make([]Suggestion, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		s, ok := decodeSuggestion(obj)
		if !ok {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		// single line: ```[...]``` or ```json [...]```
		s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
		if i := strings.IndexAny(s, "[{"); i > 0 && isFenceTag(strings.TrimSpace(s[:i])) {
			s = s[i:]
		}
		return strings.TrimSpace(s)
	}
	s = s[nl+1:]
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func decodeSuggestion(obj map[string]json.RawMessage) (Suggestion, bool) {
	title := decodeString(obj["title"])
	desc := decodeString(obj["description"])
	if title == "" && desc == "" {
		return Suggestion{}, false
	}
	if title == "" {
		title = truncateRunes(desc, maxDerivedTitleChars)
	}

	s := Suggestion{Title: title, Description: desc}

	if raw := decodeString(obj["predictedDate"]); raw != "" {
		if d, err := ParseDate(raw); err == nil {
			s.PredictedDate = &d
		}
	}
	if m, ok := decodeNumber(obj["predictedMileage"]); ok && m >= 0 {
		mi := int(math.Round(m))
		s.PredictedMileage = &mi
	}
	if c, ok := decodeNumber(obj["confidence"]); ok {
		c = clampConfidence(c)
		s.Confidence = &c
	}
	switch u := strings.ToLower(decodeString(obj["urgency"])); u {
	case types.UrgencyHigh, types.UrgencyMedium, types.UrgencyLow:
		s.Urgency = u
	}
	s.Refs = decodeRefs(obj["refs"])
	return s, true
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// decodeNumber accepts a JSON number or a numeric string ("15,000" included).
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		clean := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		parsed, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func decodeRefs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		if single := decodeString(raw); single != "" {
			return []string{single}
		}
		return nil
	}
	var out []string
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
