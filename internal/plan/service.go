package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/fatigue"
	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/profile"
	"github.com/andinolabs/altura/internal/reasoning"
	"github.com/andinolabs/altura/internal/records"
)

// Reasoning call parameters for plan generation. The temperature is
// higher than for fatigue analysis since plans benefit from variety.
const (
	planTemperature    = 0.4
	defaultCallTimeout = 20 * time.Second
)

// Service generates and persists recovery plans. Reasoning faults resolve
// into the deterministic fallback plan; missing prerequisites and
// persistence failures propagate.
type Service struct {
	profiles profile.Repository
	records  records.Repository
	reasoner reasoning.Client
	logger   zerolog.Logger
	now      func() time.Time
	timeout  time.Duration
}

// ServiceConfig holds configuration for the plan service.
type ServiceConfig struct {
	Profiles profile.Repository
	Records  records.Repository
	Reasoner reasoning.Client
	Logger   zerolog.Logger

	// CallTimeout bounds a single reasoning call. Defaults to 20s.
	CallTimeout time.Duration

	// Now overrides the clock. Used in tests.
	Now func() time.Time
}

// NewService creates a new plan service.
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
		profiles: cfg.Profiles,
		records:  cfg.Records,
		reasoner: cfg.Reasoner,
		logger:   cfg.Logger,
		now:      now,
		timeout:  timeout,
	}
}

// Generate builds a recovery plan for the user and appends it to the
// record history. It requires an existing profile and at least one prior
// fatigue analysis; both absences surface as ErrMissingPrerequisite.
func (s *Service) Generate(ctx context.Context, userID string) (*RecoveryPlan, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, fmt.Errorf("%w: no profile for user %s", ErrMissingPrerequisite, userID)
		}
		return nil, err
	}

	analysis, err := s.latestAnalysis(ctx, userID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, fmt.Errorf("%w: no fatigue analysis for user %s", ErrMissingPrerequisite, userID)
		}
		return nil, err
	}

	state := s.latestState(ctx, userID)
	historyCount := s.historyCount(ctx, userID)

	out := s.reason(ctx, p, analysis, state, historyCount)

	ts := s.now().UTC()
	out.UserID = userID
	out.Timestamp = ts
	out.IFAReference = analysis.IFA
	out.FatigueLevel = analysis.FatigueLevel
	out.Metadata = Metadata{
		HistoryCount:       historyCount,
		HadPhysioReference: state != nil,
		HadCompleteProfile: p.Age > 0 && p.WeightKg > 0 && p.HeightM > 0,
	}
	normalize(out, p.AltitudeM)

	rec, err := records.Marshal(userID, records.KindRecoveryPlan, ts, out)
	if err != nil {
		return nil, fmt.Errorf("encoding recovery plan: %w", err)
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting recovery plan: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("recommendations", len(out.ImmediateRecommendations)).
		Bool("had_physio_reference", out.Metadata.HadPhysioReference).
		Msg("recovery plan generated")

	return out, nil
}

// Latest returns the most recent persisted plan for a user, if any.
func (s *Service) Latest(ctx context.Context, userID string, since time.Time) (*RecoveryPlan, error) {
	rec, err := s.records.FindLatest(ctx, userID, records.KindRecoveryPlan, since)
	if err != nil {
		return nil, err
	}

	var plan RecoveryPlan
	if err := rec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("decoding recovery plan: %w", err)
	}
	return &plan, nil
}

// History returns recent plans, most recent first.
func (s *Service) History(ctx context.Context, userID string, opts records.FindOptions) ([]*RecoveryPlan, error) {
	recs, err := s.records.FindRecent(ctx, userID, records.KindRecoveryPlan, opts)
	if err != nil {
		return nil, err
	}

	out := make([]*RecoveryPlan, 0, len(recs))
	for _, rec := range recs {
		var plan RecoveryPlan
		if err := rec.Decode(&plan); err != nil {
			return nil, fmt.Errorf("decoding recovery plan: %w", err)
		}
		out = append(out, &plan)
	}
	return out, nil
}

func (s *Service) reason(ctx context.Context, p *profile.Profile, analysis *fatigue.Analysis, state *physio.State, historyCount int) *RecoveryPlan {
	prompt := buildPrompt(p, analysis, state, historyCount)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.reasoner.Complete(callCtx, prompt, planTemperature)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reasoning call failed, using fallback plan")
		return fallbackPlan(analysis, p.AltitudeM)
	}

	parsed, err := parsePlan(text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reasoning response unusable, using fallback plan")
		return fallbackPlan(analysis, p.AltitudeM)
	}

	return parsed
}

// normalize guarantees non-nil lists and altitude advice above the
// extreme-altitude cutoff regardless of which path produced the plan.
func normalize(p *RecoveryPlan, altitudeM int) {
	if p.ImmediateRecommendations == nil {
		p.ImmediateRecommendations = []string{}
	}
	if p.ActiveBreaks == nil {
		p.ActiveBreaks = []string{}
	}
	if p.AltitudeAdvice == nil {
		p.AltitudeAdvice = []string{}
	}
	if len(p.AltitudeAdvice) == 0 && altitudeM > extremeAltitudeM {
		p.AltitudeAdvice = altitudeAdvice(altitudeM)
	}
}

func (s *Service) latestAnalysis(ctx context.Context, userID string) (*fatigue.Analysis, error) {
	rec, err := s.records.FindLatest(ctx, userID, records.KindFatigueAnalysis, time.Time{})
	if err != nil {
		return nil, err
	}
	var analysis fatigue.Analysis
	if err := rec.Decode(&analysis); err != nil {
		return nil, fmt.Errorf("decoding fatigue analysis: %w", err)
	}
	return &analysis, nil
}

// latestState fetches the most recent physiological state. Its absence is
// not an error; the plan simply notes it was unavailable.
func (s *Service) latestState(ctx context.Context, userID string) *physio.State {
	rec, err := s.records.FindLatest(ctx, userID, records.KindPhysioState, time.Time{})
	if err != nil {
		return nil
	}
	var state physio.State
	if err := rec.Decode(&state); err != nil {
		return nil
	}
	return &state
}

func (s *Service) historyCount(ctx context.Context, userID string) int {
	recs, err := s.records.FindRecent(ctx, userID, records.KindFatigueAnalysis, records.FindOptions{
		Since: s.now().UTC().AddDate(0, 0, -7),
		Limit: 10,
	})
	if err != nil {
		return 0
	}
	return len(recs)
}
