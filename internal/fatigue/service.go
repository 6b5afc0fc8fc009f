package fatigue

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/reasoning"
	"github.com/andinolabs/altura/internal/records"
)

// Reasoning call parameters for fatigue analysis.
const (
	analysisTemperature = 0.3
	defaultCallTimeout  = 20 * time.Second

	// fallbackBaseIFA anchors the deterministic index before the load
	// multiplier is applied.
	fallbackBaseIFA = 45.0
)

// Service runs fatigue analyses. Every run produces and persists an
// analysis: reasoning faults of any kind (unreachable service, timeout,
// unusable response) resolve into the deterministic fallback and are
// never surfaced to the caller. Only persistence failures propagate.
type Service struct {
	records  records.Repository
	reasoner reasoning.Client
	logger   zerolog.Logger
	now      func() time.Time
	timeout  time.Duration
}

// ServiceConfig holds configuration for the fatigue service.
type ServiceConfig struct {
	Records  records.Repository
	Reasoner reasoning.Client
	Logger   zerolog.Logger

	// CallTimeout bounds a single reasoning call. Defaults to 20s.
	CallTimeout time.Duration

	// Now overrides the clock. Used in tests.
	Now func() time.Time
}

// NewService creates a new fatigue service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Service{
		records:  cfg.Records,
		reasoner: cfg.Reasoner,
		logger:   cfg.Logger,
		now:      now,
		timeout:  timeout,
	}
}

// Analyze produces a fatigue analysis from the given physiological state
// and appends it to the user's record history.
func (s *Service) Analyze(ctx context.Context, userID string, state *physio.State, mentalActivity, emotionalState string) (*Analysis, error) {
	ts := s.now().UTC()

	indices, historyCount := s.recentIndices(ctx, userID, ts)
	trend := AnalyzeTrend(indices)

	analysis := s.reason(ctx, state, trend, mentalActivity, emotionalState, historyCount)

	analysis.UserID = userID
	analysis.Timestamp = ts
	analysis.Trend = trend
	analysis.MentalActivity = mentalActivity
	analysis.EmotionalState = emotionalState
	analysis.PhysioReference = PhysioReference{
		State:      state.State,
		AlertCount: len(state.Alerts),
		AltitudeM:  state.Indicators.AltitudeM,
	}
	s.backfill(analysis, state, mentalActivity)

	rec, err := records.Marshal(userID, records.KindFatigueAnalysis, ts, analysis)
	if err != nil {
		return nil, fmt.Errorf("encoding fatigue analysis: %w", err)
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting fatigue analysis: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("fatigue_level", string(analysis.FatigueLevel)).
		Int("ifa", analysis.IFA).
		Str("trend", string(analysis.Trend)).
		Int("alerts", len(analysis.Alerts)).
		Msg("fatigue analysis completed")

	return analysis, nil
}

// Latest returns the most recent persisted analysis for a user, if any.
func (s *Service) Latest(ctx context.Context, userID string, since time.Time) (*Analysis, error) {
	rec, err := s.records.FindLatest(ctx, userID, records.KindFatigueAnalysis, since)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := rec.Decode(&analysis); err != nil {
		return nil, fmt.Errorf("decoding fatigue analysis: %w", err)
	}
	return &analysis, nil
}

// History returns recent analyses, most recent first.
func (s *Service) History(ctx context.Context, userID string, opts records.FindOptions) ([]*Analysis, error) {
	recs, err := s.records.FindRecent(ctx, userID, records.KindFatigueAnalysis, opts)
	if err != nil {
		return nil, err
	}

	out := make([]*Analysis, 0, len(recs))
	for _, rec := range recs {
		var analysis Analysis
		if err := rec.Decode(&analysis); err != nil {
			return nil, fmt.Errorf("decoding fatigue analysis: %w", err)
		}
		out = append(out, &analysis)
	}
	return out, nil
}

// reason attempts the reasoning-backed analysis and falls back to the
// deterministic one on any fault.
func (s *Service) reason(ctx context.Context, state *physio.State, trend Trend, mentalActivity, emotionalState string, historyCount int) *Analysis {
	prompt := BuildPrompt(state, trend, mentalActivity, emotionalState, historyCount)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.reasoner.Complete(callCtx, prompt, analysisTemperature)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reasoning call failed, using fallback analysis")
		return s.fallback(state, mentalActivity, emotionalState)
	}

	parsed, err := parseAnalysis(text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reasoning response unusable, using fallback analysis")
		return s.fallback(state, mentalActivity, emotionalState)
	}

	analysis := &Analysis{
		FatigueLevel:  parsed.FatigueLevel,
		IFA:           parsed.IFA,
		Justification: parsed.Justification,
		Alerts:        parsed.Alerts,
	}
	if parsed.Counters != nil {
		analysis.Counters = *parsed.Counters
	}
	if parsed.Productivity != nil {
		analysis.Productivity = *parsed.Productivity
	}
	return analysis
}

// fallback builds the deterministic analysis: a Medium level with an
// index anchored at the base and scaled by the combined load factor.
func (s *Service) fallback(state *physio.State, mentalActivity, emotionalState string) *Analysis {
	factor := GlobalFactor(state.Indicators.AltitudeM, mentalActivity, emotionalState)
	ifa := int(math.Round(clampFloat(fallbackBaseIFA+(factor-1.0)*20, 0, 100)))

	return &Analysis{
		FatigueLevel: LevelMedium,
		IFA:          ifa,
		Justification: fmt.Sprintf(
			"Automatic analysis unavailable. Physiological state %s at %dm (load factor %.2f).",
			state.State, state.Indicators.AltitudeM, factor),
	}
}

// backfill fills in anything the reasoning response omitted so both paths
// produce structurally complete analyses. Blocks the reasoning service
// did provide are kept; only absent ones are synthesized.
func (s *Service) backfill(a *Analysis, state *physio.State, mentalActivity string) {
	if len(a.Alerts) == 0 {
		a.Alerts = SynthesizeAlerts(state.Indicators, mentalActivity)
	}
	if a.Counters.Hydration.ObjectiveML == 0 {
		a.Counters = SynthesizeCounters(state.Indicators)
	}
	if a.Productivity.CapacityPct == 0 {
		a.Productivity = SynthesizeProductivity(state.Indicators)
	}
}

// recentIndices fetches the fatigue indices feeding the trend analysis,
// most recent first. History read failures degrade to an empty history
// rather than failing the run.
func (s *Service) recentIndices(ctx context.Context, userID string, now time.Time) ([]int, int) {
	recs, err := s.records.FindRecent(ctx, userID, records.KindFatigueAnalysis, records.FindOptions{
		Since: now.AddDate(0, 0, -trendWindowDays),
		Limit: trendMaxRecords,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("fatigue history unavailable, treating trend as stable")
		return nil, 0
	}

	indices := make([]int, 0, len(recs))
	for _, rec := range recs {
		var payload struct {
			IFA int `json:"ifa"`
		}
		if err := rec.Decode(&payload); err != nil {
			continue
		}
		indices = append(indices, payload.IFA)
	}
	return indices, len(indices)
}
