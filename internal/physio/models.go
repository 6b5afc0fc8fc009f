package physio

import "time"

// StateLevel is the categorical daily physiological state. The values are
// part of the persisted record contract and must not change.
type StateLevel string

// Physiological states, ordered by severity.
const (
	StateNormal   StateLevel = "NORMAL"
	StateLow      StateLevel = "BAJO"
	StateAlert    StateLevel = "ALERTA"
	StateCritical StateLevel = "CRÍTICO"
)

// DailyInputs are the raw daily measurements supplied by the caller.
// Transient; embedded into the persisted state record, not stored alone.
type DailyInputs struct {
	WaterConsumedML int     `json:"water_consumed_ml"`
	SleepHours      float64 `json:"sleep_hours"`
	ActiveMinutes   int     `json:"active_minutes"`
	EnergyLevel     int     `json:"energy_level"`
}

// Thresholds are the altitude-adjusted cutoffs used for classification.
type Thresholds struct {
	HydrationThresholdPct int `json:"hydration_threshold_pct"`
	SleepThresholdPct     int `json:"sleep_threshold_pct"`
}

// Indicators are the computed daily indicators versus baseline.
type Indicators struct {
	HydrationPct    float64    `json:"hydration_pct"`
	WaterConsumedML int        `json:"water_consumed_ml"`
	WaterBaselineML int        `json:"water_baseline_ml"`
	SleepPct        float64    `json:"sleep_pct"`
	SleepHours      float64    `json:"sleep_hours"`
	SleepBaselineH  float64    `json:"sleep_baseline_h"`
	ActivityMinutes int        `json:"activity_minutes"`
	ActivityMinimum int        `json:"activity_minimum"`
	EnergyLevel     int        `json:"energy_level"`
	AltitudeM       int        `json:"altitude_m"`
	Thresholds      Thresholds `json:"thresholds"`
}

// State is one evaluation of a user's physiological state. Immutable once
// written; the per-user history is append-only.
type State struct {
	UserID     string     `json:"user_id"`
	Timestamp  time.Time  `json:"timestamp"`
	State      StateLevel `json:"state"`
	Indicators Indicators `json:"indicators"`
	Alerts     []string   `json:"alerts"`
}
