// Package pipeline orchestrates the full daily analysis: physiological
// evaluation, fatigue analysis and recovery plan, run strictly in order
// with each stage's output persisted before the next stage starts.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/fatigue"
	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/plan"
	"github.com/andinolabs/altura/internal/profile"
)

// Input is one day's measurements plus optional context for a run.
type Input struct {
	Daily          physio.DailyInputs
	MentalActivity string
	EmotionalState string
}

// Result bundles the outputs of a full pipeline run.
type Result struct {
	State    *physio.State      `json:"state"`
	Analysis *fatigue.Analysis  `json:"analysis"`
	Plan     *plan.RecoveryPlan `json:"plan"`
}

// Runner executes the daily analysis pipeline.
type Runner struct {
	profiles *profile.Service
	physio   *physio.Service
	fatigue  *fatigue.Service
	plans    *plan.Service
	logger   zerolog.Logger
}

// RunnerConfig holds the stage services for the pipeline.
type RunnerConfig struct {
	Profiles *profile.Service
	Physio   *physio.Service
	Fatigue  *fatigue.Service
	Plans    *plan.Service
	Logger   zerolog.Logger
}

// NewRunner creates a new pipeline runner.
func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{
		profiles: cfg.Profiles,
		physio:   cfg.Physio,
		fatigue:  cfg.Fatigue,
		plans:    cfg.Plans,
		logger:   cfg.Logger,
	}
}

// Run executes the three analysis stages for one user. Any stage error
// aborts the run, but outputs persisted by completed stages remain: a run
// that fails at the plan stage still leaves a valid state and analysis in
// the history.
func (r *Runner) Run(ctx context.Context, userID string, in Input) (*Result, error) {
	started := time.Now()

	// Context caching is best effort and never blocks the analysis.
	if err := r.profiles.RefreshContext(ctx, userID, in.MentalActivity, in.EmotionalState); err != nil {
		r.logger.Warn().Err(err).Str("user_id", userID).Msg("context refresh failed")
	}

	state, err := r.physio.Evaluate(ctx, userID, in.Daily)
	if err != nil {
		return nil, err
	}

	analysis, err := r.fatigue.Analyze(ctx, userID, state, in.MentalActivity, in.EmotionalState)
	if err != nil {
		return nil, err
	}

	recovery, err := r.plans.Generate(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("user_id", userID).
		Str("state", string(state.State)).
		Int("ifa", analysis.IFA).
		Dur("elapsed", time.Since(started)).
		Msg("analysis pipeline completed")

	return &Result{State: state, Analysis: analysis, Plan: recovery}, nil
}
