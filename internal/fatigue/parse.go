package fatigue

import (
	"encoding/json"
	"fmt"
	"math"
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

// parsedAnalysis is the validated subset of a reasoning response.
// Counters and Productivity are nil when the response omitted them or
// the blocks carried no usable signal.
type parsedAnalysis struct {
	FatigueLevel  Level
	IFA           int
	Justification string
	Alerts        []AlertItem
	Counters      *Counters
	Productivity  *Productivity
}

// rawAnalysis mirrors the JSON shape requested in the prompt. Pointer
// fields distinguish absent keys from zero values.
type rawAnalysis struct {
	FatigueLevel  string        `json:"fatigue_level"`
	IFA           *float64      `json:"ifa"`
	Justification string        `json:"justification"`
	Alerts        []AlertItem   `json:"alerts"`
	Counters      *Counters     `json:"counters"`
	Productivity  *Productivity `json:"productivity"`
}

// parseAnalysis validates and repairs raw reasoning output. Markdown code
// fences are stripped, the fatigue level is coerced to a known value and
// the index is clamped to [0, 100]. A response that is not a JSON object
// or lacks an index is rejected.
func parseAnalysis(text string) (*parsedAnalysis, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return nil, &ParseError{Reason: "empty response"}
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if raw.IFA == nil {
		return nil, &ParseError{Reason: "missing ifa"}
	}

	ifa := int(math.Round(clampFloat(*raw.IFA, 0, 100)))

	justification := strings.TrimSpace(raw.Justification)
	if justification == "" {
		justification = "Analysis based on current physiological indicators."
	}

	return &parsedAnalysis{
		FatigueLevel:  coerceLevel(raw.FatigueLevel),
		IFA:           ifa,
		Justification: justification,
		Alerts:        sanitizeAlerts(raw.Alerts),
		Counters:      sanitizeCounters(raw.Counters),
		Productivity:  sanitizeProductivity(raw.Productivity),
	}, nil
}

// coerceLevel maps free-form level text onto a known Level. Spanish
// variants are accepted; anything unrecognized becomes Medium.
func coerceLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "bajo", "baja":
		return LevelLow
	case "high", "alto", "alta":
		return LevelHigh
	default:
		return LevelMedium
	}
}

// sanitizeAlerts drops alerts without a message and normalizes unknown
// categories and priorities.
func sanitizeAlerts(alerts []AlertItem) []AlertItem {
	out := make([]AlertItem, 0, len(alerts))
	for _, a := range alerts {
		if strings.TrimSpace(a.Message) == "" {
			continue
		}
		if !validCategory(a.Category) {
			a.Category = CategoryEnergy
		}
		if !validPriority(a.Priority) {
			a.Priority = PriorityMedium
		}
		out = append(out, a)
	}
	return out
}

// sanitizeCounters validates a reasoning-provided counter block. A block
// without a hydration objective carries no usable signal and is treated
// as absent; negative quantities are clamped and missing cadence values
// get the standard defaults.
func sanitizeCounters(c *Counters) *Counters {
	if c == nil || c.Hydration.ObjectiveML <= 0 {
		return nil
	}
	c.Hydration.ConsumedML = maxInt(c.Hydration.ConsumedML, 0)
	c.Hydration.MissingML = maxInt(c.Hydration.MissingML, 0)
	if c.Hydration.NextIntakeML <= 0 {
		c.Hydration.NextIntakeML = defaultIntakeML
	}
	if c.Hydration.FrequencyHours <= 0 {
		c.Hydration.FrequencyHours = defaultIntakeHours
	}
	if c.Rest.RecommendedMinutes <= 0 {
		c.Rest.RecommendedMinutes = defaultBreakMinutes
	}
	c.Activity.PerformedMin = maxInt(c.Activity.PerformedMin, 0)
	c.Activity.ObjectiveMin = maxInt(c.Activity.ObjectiveMin, 0)
	c.Activity.MissingMin = maxInt(c.Activity.MissingMin, 0)
	if c.Energy.Level < 1 || c.Energy.Level > 5 {
		c.Energy.Level = 3
	}
	if strings.TrimSpace(c.Energy.Status) == "" {
		c.Energy.Status = energyStatus(c.Energy.Level)
	}
	return c
}

// sanitizeProductivity clamps a reasoning-provided productivity block. A
// block without a capacity estimate is treated as absent.
func sanitizeProductivity(p *Productivity) *Productivity {
	if p == nil || p.CapacityPct <= 0 {
		return nil
	}
	p.CapacityPct = clampFloat(p.CapacityPct, 0, 100)
	p.OptimalStudyHours = maxInt(p.OptimalStudyHours, 0)
	p.FocusIntervalMin = maxInt(p.FocusIntervalMin, 0)
	p.BreakMin = maxInt(p.BreakMin, 0)
	return p
}

func validCategory(c string) bool {
	switch c {
	case CategoryHydration, CategoryRest, CategoryActivity, CategoryEnergy, CategoryProductivity:
		return true
	}
	return false
}

func validPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
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
