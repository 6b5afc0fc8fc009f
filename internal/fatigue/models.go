package fatigue

import (
	"time"

	"github.com/andinolabs/altura/internal/physio"
)

// Level is the categorical fatigue level.
type Level string

// Fatigue levels. Unrecognized values from the reasoning service are
// coerced to LevelMedium.
const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Trend classifies the recent evolution of a user's fatigue index.
type Trend string

// Fatigue trends. With fewer than two historical records the trend is
// Stable by definition.
const (
	TrendImproving Trend = "Improving"
	TrendStable    Trend = "Stable"
	TrendWorsening Trend = "Worsening"
)

// Alert categories.
const (
	CategoryHydration    = "hydration"
	CategoryRest         = "rest"
	CategoryActivity     = "activity"
	CategoryEnergy       = "energy"
	CategoryProductivity = "productivity"
)

// Alert priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// AlertItem is one actionable alert with its recommended timing.
type AlertItem struct {
	Category          string `json:"category"`
	Priority          string `json:"priority"`
	Message           string `json:"message"`
	RecommendedTiming string `json:"recommended_timing"`
	SuggestedAction   string `json:"suggested_action"`
}

// HydrationCounter tracks water intake against the daily objective.
type HydrationCounter struct {
	ConsumedML     int `json:"consumed_ml"`
	ObjectiveML    int `json:"objective_ml"`
	MissingML      int `json:"missing_ml"`
	NextIntakeML   int `json:"next_intake_ml"`
	FrequencyHours int `json:"frequency_hours"`
}

// RestCounter tracks the break cadence.
type RestCounter struct {
	LastBreak          string `json:"last_break"`
	NextBreak          string `json:"next_break"`
	RecommendedMinutes int    `json:"recommended_minutes"`
}

// ActivityCounter tracks physical activity against the adjusted minimum.
type ActivityCounter struct {
	PerformedMin int    `json:"performed_min"`
	ObjectiveMin int    `json:"objective_min"`
	MissingMin   int    `json:"missing_min"`
	NextSession  string `json:"next_session"`
}

// EnergyCounter tracks the subjective energy level.
type EnergyCounter struct {
	Level  int    `json:"level"`
	Status string `json:"status"`
}

// Counters groups the per-category recovery counters.
type Counters struct {
	Hydration HydrationCounter `json:"hydration"`
	Rest      RestCounter      `json:"rest"`
	Activity  ActivityCounter  `json:"activity"`
	Energy    EnergyCounter    `json:"energy"`
}

// Productivity estimates current productive capacity and an optimal
// study/work cadence.
type Productivity struct {
	CapacityPct       float64 `json:"capacity_pct"`
	OptimalStudyHours int     `json:"optimal_study_hours"`
	BestWindow        string  `json:"best_window"`
	FocusIntervalMin  int     `json:"focus_interval_min"`
	BreakMin          int     `json:"break_min"`
	Relative          string  `json:"relative"`
}

// PhysioReference summarizes the physiological state an analysis was
// derived from.
type PhysioReference struct {
	State      physio.StateLevel `json:"state"`
	AlertCount int               `json:"alert_count"`
	AltitudeM  int               `json:"altitude_m"`
}

// Analysis is one fatigue analysis run. Immutable once written; the
// per-user history is append-only. The reasoning-backed and fallback
// paths produce structurally identical analyses.
type Analysis struct {
	UserID          string          `json:"user_id"`
	Timestamp       time.Time       `json:"timestamp"`
	FatigueLevel    Level           `json:"fatigue_level"`
	IFA             int             `json:"ifa"`
	Justification   string          `json:"justification"`
	Alerts          []AlertItem     `json:"alerts"`
	Counters        Counters        `json:"counters"`
	Productivity    Productivity    `json:"productivity"`
	Trend           Trend           `json:"trend"`
	PhysioReference PhysioReference `json:"physio_reference"`
	MentalActivity  string          `json:"mental_activity,omitempty"`
	EmotionalState  string          `json:"emotional_state,omitempty"`
}
