// Package profile manages user physiological profiles and their
// altitude-adjusted daily baselines.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/altitude"
)

// ErrInvalidLocation is returned when a profile names a location the
// altitude table cannot resolve.
var ErrInvalidLocation = errors.New("location has no known altitude")

// Baseline constants. Water follows the 3.7/2.7 L daily intake reference,
// increased 300 ml per 1000 m above 1500 m. Sleep gains half an hour above
// 3500 m where rest is less efficient.
const (
	waterBaseMaleML    = 3700
	waterBaseFemaleML  = 2700
	waterAltCutoffM    = 1500
	waterPerKmML       = 300
	sleepBaseHours     = 8.0
	sleepAltCutoffM    = 3500
	sleepAltBonusHours = 0.5
)

// Service provides profile initialization and maintenance.
type Service struct {
	repo     Repository
	altitude *altitude.Service
	logger   zerolog.Logger
	now      func() time.Time
}

// ServiceConfig holds configuration for the profile service.
type ServiceConfig struct {
	Repository Repository
	Altitude   *altitude.Service
	Logger     zerolog.Logger

	// Now overrides the clock. Used in tests.
	Now func() time.Time
}

// NewService creates a new profile service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     cfg.Repository,
		altitude: cfg.Altitude,
		logger:   cfg.Logger,
		now:      now,
	}
}

// Init creates a profile for the user if none exists and returns it.
// Calling Init again for the same user returns the stored profile
// unchanged; re-initialization never overwrites.
func (s *Service) Init(ctx context.Context, userID string, req *InitRequest) (*Profile, error) {
	existing, err := s.repo.Get(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	meters, err := s.altitude.Resolve(ctx, req.Location)
	if err != nil {
		if errors.Is(err, altitude.ErrCityNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, req.Location)
		}
		return nil, err
	}

	activity := req.ActivityLevel
	if activity == "" {
		activity = ActivityMedium
	}

	p := &Profile{
		UserID:          userID,
		Age:             req.Age,
		Sex:             req.Sex,
		WeightKg:        req.WeightKg,
		HeightM:         req.HeightM,
		Location:        req.Location,
		AltitudeM:       meters,
		ActivityLevel:   activity,
		WaterBaselineML: WaterBaseline(req.Sex, meters),
		SleepBaselineH:  SleepBaseline(meters),
		CreatedAt:       s.now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// Lost a concurrent creation race: the constraint held, fetch
		// the winner's profile and return it.
		if errors.Is(err, ErrProfileExists) {
			return s.repo.Get(ctx, userID)
		}
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("location", p.Location).
		Int("altitude_m", p.AltitudeM).
		Int("water_baseline_ml", p.WaterBaselineML).
		Float64("sleep_baseline_h", p.SleepBaselineH).
		Msg("profile initialized")

	return p, nil
}

// Get retrieves a user's profile.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies targeted field edits to a profile. A location change
// re-resolves the altitude; sex or altitude changes recompute baselines.
func (s *Service) Update(ctx context.Context, userID string, req *UpdateRequest) (*Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		p.Age = *req.Age
	}
	if req.Sex != nil {
		p.Sex = *req.Sex
	}
	if req.WeightKg != nil {
		p.WeightKg = *req.WeightKg
	}
	if req.HeightM != nil {
		p.HeightM = *req.HeightM
	}
	if req.ActivityLevel != nil {
		p.ActivityLevel = *req.ActivityLevel
	}
	if req.Location != nil {
		meters, err := s.altitude.Resolve(ctx, *req.Location)
		if err != nil {
			if errors.Is(err, altitude.ErrCityNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidLocation, *req.Location)
			}
			return nil, err
		}
		p.Location = *req.Location
		p.AltitudeM = meters
	}

	if req.Sex != nil || req.Location != nil {
		p.WaterBaselineML = WaterBaseline(p.Sex, p.AltitudeM)
		p.SleepBaselineH = SleepBaseline(p.AltitudeM)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Delete removes a user's profile.
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

// RefreshContext caches the user's current mental activity and emotional
// state on the profile. Called by the daily pipeline as a convenience;
// failures here are non-fatal to the pipeline.
func (s *Service) RefreshContext(ctx context.Context, userID, mentalActivity, emotionalState string) error {
	if mentalActivity == "" && emotionalState == "" {
		return nil
	}

	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	if mentalActivity != "" {
		p.CurrentMentalActivity = mentalActivity
	}
	if emotionalState != "" {
		p.CurrentEmotionalState = emotionalState
	}
	now := s.now().UTC()
	p.LastContextUpdate = &now

	return s.repo.Update(ctx, p)
}

// WaterBaseline computes the daily water target in ml for a sex and altitude.
func WaterBaseline(sex string, altitudeM int) int {
	base := waterBaseFemaleML
	if sex == SexMale {
		base = waterBaseMaleML
	}
	if altitudeM > waterAltCutoffM {
		base += (altitudeM - waterAltCutoffM) * waterPerKmML / 1000
	}
	return base
}

// SleepBaseline computes the daily sleep target in hours for an altitude.
func SleepBaseline(altitudeM int) float64 {
	if altitudeM > sleepAltCutoffM {
		return sleepBaseHours + sleepAltBonusHours
	}
	return sleepBaseHours
}
