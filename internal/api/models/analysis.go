package models

import "encoding/json"

// DailyInputsRequest carries one day's raw measurements.
type DailyInputsRequest struct {
	WaterConsumedML int     `json:"water_consumed_ml"`
	SleepHours      float64 `json:"sleep_hours"`
	ActiveMinutes   int     `json:"active_minutes"`
	EnergyLevel     int     `json:"energy_level"`
}

// Validate rejects structurally impossible measurements. Out-of-range but
// plausible values are clamped downstream rather than rejected.
func (r *DailyInputsRequest) Validate() []FieldError {
	var errs []FieldError

	if r.SleepHours > 48 {
		errs = append(errs, FieldError{Field: "sleep_hours", Message: "must be at most 48", Code: "OUT_OF_RANGE"})
	}
	if r.WaterConsumedML > 50000 {
		errs = append(errs, FieldError{Field: "water_consumed_ml", Message: "must be at most 50000", Code: "OUT_OF_RANGE"})
	}

	return errs
}

// ContextRequest carries the optional mental and emotional context.
type ContextRequest struct {
	MentalActivity string `json:"mental_activity,omitempty"`
	EmotionalState string `json:"emotional_state,omitempty"`
}

// RunAnalysisRequest is the body for POST /v1/users/{userId}/analysis:run.
type RunAnalysisRequest struct {
	DailyInputsRequest
	ContextRequest
}

// HistoryResponse is the body for GET /v1/users/{userId}/history.
// Records hold the stored payloads, most recent first.
type HistoryResponse struct {
	UserID  string            `json:"user_id"`
	Kind    string            `json:"kind"`
	Days    int               `json:"days"`
	Count   int               `json:"count"`
	Records []json.RawMessage `json:"records"`
}
