// Package plan generates personalized recovery plans from a user's latest
// fatigue analysis. Like the fatigue stage, the reasoning service is an
// optional enhancement: every run yields a complete plan, falling back to
// a deterministic one keyed on the fatigue index and altitude.
package plan

import (
	"errors"
	"time"

	"github.com/andinolabs/altura/internal/fatigue"
)

// ErrMissingPrerequisite is returned when a plan is requested for a user
// with no profile or no prior fatigue analysis.
var ErrMissingPrerequisite = errors.New("missing prerequisite for recovery plan")

// Schedules holds suggested daily windows per activity.
type Schedules struct {
	Study string `json:"study"`
	Work  string `json:"work"`
	Rest  string `json:"rest"`
}

// Metadata records what inputs were available when the plan was built.
type Metadata struct {
	HistoryCount       int  `json:"history_count"`
	HadPhysioReference bool `json:"had_physio_reference"`
	HadCompleteProfile bool `json:"had_complete_profile"`
}

// RecoveryPlan is one generated plan. Immutable once written; the
// per-user history is append-only. IFAReference and FatigueLevel pin the
// fatigue analysis the plan was built against. Slices are always non-nil
// so the serialized plan never contains null lists.
type RecoveryPlan struct {
	UserID                   string        `json:"user_id"`
	Timestamp                time.Time     `json:"timestamp"`
	IFAReference             int           `json:"ifa_reference"`
	FatigueLevel             fatigue.Level `json:"fatigue_level"`
	ImmediateRecommendations []string      `json:"immediate_recommendations"`
	OptimalSchedules         Schedules     `json:"optimal_schedules"`
	ActiveBreaks             []string      `json:"active_breaks"`
	AltitudeAdvice           []string      `json:"altitude_advice"`
	Metadata                 Metadata      `json:"metadata"`
}
