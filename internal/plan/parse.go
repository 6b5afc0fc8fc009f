package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports why a reasoning response could not be used. Callers
// route it to the deterministic fallback; it never reaches API clients.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "unusable reasoning response: " + e.Reason
}

type rawPlan struct {
	ImmediateRecommendations []string  `json:"immediate_recommendations"`
	OptimalSchedules         Schedules `json:"optimal_schedules"`
	ActiveBreaks             []string  `json:"active_breaks"`
	AltitudeAdvice           []string  `json:"altitude_advice"`
}

// parsePlan validates raw reasoning output. Markdown code fences are
// stripped and absent lists become empty, never nil. A response that is
// not a JSON object or carries no recommendations at all is rejected.
func parsePlan(text string) (*RecoveryPlan, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return nil, &ParseError{Reason: "empty response"}
	}

	var raw rawPlan
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	recs := compact(raw.ImmediateRecommendations)
	breaks := compact(raw.ActiveBreaks)
	if len(recs) == 0 && len(breaks) == 0 && raw.OptimalSchedules == (Schedules{}) {
		return nil, &ParseError{Reason: "no usable plan content"}
	}

	return &RecoveryPlan{
		ImmediateRecommendations: recs,
		OptimalSchedules:         raw.OptimalSchedules,
		ActiveBreaks:             breaks,
		AltitudeAdvice:           compact(raw.AltitudeAdvice),
	}, nil
}

// compact trims entries and drops empty ones, always returning a non-nil
// slice.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// stripFences removes a surrounding markdown code fence, with or without
// a language tag, and trims whitespace.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "" || isFenceTag(first) {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
