package physio

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/profile"
	"github.com/andinolabs/altura/internal/records"
)

// Service evaluates and persists daily physiological states.
type Service struct {
	profiles profile.Repository
	records  records.Repository
	logger   zerolog.Logger
	now      func() time.Time
}

// ServiceConfig holds configuration for the physio service.
type ServiceConfig struct {
	Profiles profile.Repository
	Records  records.Repository
	Logger   zerolog.Logger

	// Now overrides the clock. Used in tests.
	Now func() time.Time
}

// NewService creates a new physio service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		profiles: cfg.Profiles,
		records:  cfg.Records,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Evaluate computes the physiological state for a day's inputs and appends
// it to the user's record history. A missing profile is fatal and propagates
// as profile.ErrProfileNotFound; a failed write propagates since later
// pipeline stages read persisted history.
func (s *Service) Evaluate(ctx context.Context, userID string, in DailyInputs) (*State, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	state := Evaluate(p, in, s.now().UTC())

	rec, err := records.Marshal(userID, records.KindPhysioState, state.Timestamp, state)
	if err != nil {
		return nil, fmt.Errorf("encoding physio state: %w", err)
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting physio state: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("state", string(state.State)).
		Float64("hydration_pct", state.Indicators.HydrationPct).
		Float64("sleep_pct", state.Indicators.SleepPct).
		Int("alerts", len(state.Alerts)).
		Msg("physiological state evaluated")

	return state, nil
}

// Latest returns the most recent persisted state for a user, if any.
func (s *Service) Latest(ctx context.Context, userID string, since time.Time) (*State, error) {
	rec, err := s.records.FindLatest(ctx, userID, records.KindPhysioState, since)
	if err != nil {
		return nil, err
	}

	var state State
	if err := rec.Decode(&state); err != nil {
		return nil, fmt.Errorf("decoding physio state: %w", err)
	}
	return &state, nil
}
