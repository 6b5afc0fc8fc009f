package profile

import "time"

// Sex values accepted on profile creation.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Activity levels accepted on profile creation.
const (
	ActivityLow    = "low"
	ActivityMedium = "medium"
	ActivityHigh   = "high"
)

// Profile is a user's physiological profile. One per user, created once;
// baselines are derived from demographics and the altitude of the user's
// location.
type Profile struct {
	UserID        string  `json:"user_id"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	WeightKg      float64 `json:"weight_kg"`
	HeightM       float64 `json:"height_m"`
	Location      string  `json:"location"`
	AltitudeM     int     `json:"altitude_m"`
	ActivityLevel string  `json:"activity_level"`

	// Daily baselines, fixed at creation (or explicit profile edits).
	WaterBaselineML int     `json:"water_baseline_ml"`
	SleepBaselineH  float64 `json:"sleep_baseline_h"`

	// Convenience context cache, refreshed by the daily pipeline. The
	// pipeline never depends on these for correctness.
	CurrentMentalActivity string     `json:"current_mental_activity,omitempty"`
	CurrentEmotionalState string     `json:"current_emotional_state,omitempty"`
	LastContextUpdate     *time.Time `json:"last_context_update,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InitRequest holds the demographics needed to initialize a profile.
type InitRequest struct {
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	WeightKg      float64 `json:"weight_kg"`
	HeightM       float64 `json:"height_m"`
	Location      string  `json:"location"`
	ActivityLevel string  `json:"activity_level"`
}

// UpdateRequest holds optional targeted field updates for a profile.
type UpdateRequest struct {
	Age           *int     `json:"age,omitempty"`
	Sex           *string  `json:"sex,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	HeightM       *float64 `json:"height_m,omitempty"`
	Location      *string  `json:"location,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
}
