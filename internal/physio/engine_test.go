package physio_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/profile"
	"github.com/andinolabs/altura/internal/records"
)

func testProfile(altitudeM, waterML int, sleepH float64) *profile.Profile {
	return &profile.Profile{
		UserID:          "user123",
		Sex:             profile.SexMale,
		AltitudeM:       altitudeM,
		WaterBaselineML: waterML,
		SleepBaselineH:  sleepH,
	}
}

func TestEvaluate_Classification(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		profile *profile.Profile
		in      physio.DailyInputs
		want    physio.StateLevel
	}{
		{
			// Scenario: extreme altitude, severe dehydration and low energy.
			name:    "dehydrated and sleep deficit is critical",
			profile: testProfile(4750, 2000, 8),
			in:      physio.DailyInputs{WaterConsumedML: 500, SleepHours: 4, ActiveMinutes: 0, EnergyLevel: 1},
			want:    physio.StateCritical,
		},
		{
			name:    "dehydrated only is alert",
			profile: testProfile(3000, 2000, 8),
			in:      physio.DailyInputs{WaterConsumedML: 500, SleepHours: 8, ActiveMinutes: 30, EnergyLevel: 4},
			want:    physio.StateAlert,
		},
		{
			name:    "sleep deficit only is alert",
			profile: testProfile(3000, 2000, 8),
			in:      physio.DailyInputs{WaterConsumedML: 1900, SleepHours: 4, ActiveMinutes: 30, EnergyLevel: 4},
			want:    physio.StateAlert,
		},
		{
			name:    "good indicators but low energy is bajo",
			profile: testProfile(3000, 2000, 8),
			in:      physio.DailyInputs{WaterConsumedML: 1900, SleepHours: 8, ActiveMinutes: 30, EnergyLevel: 2},
			want:    physio.StateLow,
		},
		{
			// Scenario B from the field: everything on target at 2000m.
			name:    "all on target is normal",
			profile: testProfile(2000, 2000, 8),
			in:      physio.DailyInputs{WaterConsumedML: 1900, SleepHours: 8, ActiveMinutes: 40, EnergyLevel: 4},
			want:    physio.StateNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := physio.Evaluate(tt.profile, tt.in, ts)
			if got.State != tt.want {
				t.Errorf("state = %s, want %s", got.State, tt.want)
			}
		})
	}
}

func TestEvaluate_NormalDayHasNoAlerts(t *testing.T) {
	p := testProfile(2000, 2000, 8)
	in := physio.DailyInputs{WaterConsumedML: 1900, SleepHours: 8, ActiveMinutes: 40, EnergyLevel: 4}

	state := physio.Evaluate(p, in, time.Now())

	if state.State != physio.StateNormal {
		t.Fatalf("state = %s, want NORMAL", state.State)
	}
	if len(state.Alerts) != 0 {
		t.Errorf("expected zero alerts, got %v", state.Alerts)
	}
	if state.Indicators.Thresholds.HydrationThresholdPct != 70 {
		t.Errorf("hydration threshold = %d, want 70", state.Indicators.Thresholds.HydrationThresholdPct)
	}
	if state.Indicators.Thresholds.SleepThresholdPct != 80 {
		t.Errorf("sleep threshold = %d, want 80", state.Indicators.Thresholds.SleepThresholdPct)
	}
	if state.Indicators.ActivityMinimum != 30 {
		t.Errorf("activity minimum = %d, want 30", state.Indicators.ActivityMinimum)
	}
}

func TestEvaluate_ExtremeAltitudeThresholds(t *testing.T) {
	p := testProfile(4750, 2000, 8)
	in := physio.DailyInputs{WaterConsumedML: 500, SleepHours: 4, ActiveMinutes: 10, EnergyLevel: 1}

	state := physio.Evaluate(p, in, time.Now())

	th := state.Indicators.Thresholds
	if th.HydrationThresholdPct != 75 || th.SleepThresholdPct != 85 {
		t.Errorf("thresholds = %+v, want 75/85 above 3500m", th)
	}
	if state.Indicators.ActivityMinimum != 20 {
		t.Errorf("activity minimum = %d, want 20 above 3500m", state.Indicators.ActivityMinimum)
	}

	// Each violated condition produces a self-justifying alert carrying
	// the threshold in use: dehydration, sleep, activity, energy.
	if len(state.Alerts) != 4 {
		t.Fatalf("expected 4 alerts, got %d: %v", len(state.Alerts), state.Alerts)
	}
	if !strings.Contains(state.Alerts[0], "75%") {
		t.Errorf("dehydration alert should carry the 75%% threshold: %q", state.Alerts[0])
	}
	if !strings.Contains(state.Alerts[1], "85%") {
		t.Errorf("sleep alert should carry the 85%% threshold: %q", state.Alerts[1])
	}
}

func TestEvaluate_IsPureAndOrderIndependent(t *testing.T) {
	p := testProfile(3827, 3398, 8.5)
	in := physio.DailyInputs{WaterConsumedML: 2000, SleepHours: 7, ActiveMinutes: 25, EnergyLevel: 3}
	ts := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	first := physio.Evaluate(p, in, ts)

	// Interleave unrelated evaluations; the result must not change.
	physio.Evaluate(testProfile(500, 2700, 8), physio.DailyInputs{WaterConsumedML: 2700, SleepHours: 8, ActiveMinutes: 60, EnergyLevel: 5}, ts)
	second := physio.Evaluate(p, in, ts)

	if first.State != second.State {
		t.Errorf("state changed between identical evaluations: %s vs %s", first.State, second.State)
	}
	if first.Indicators != second.Indicators {
		t.Errorf("indicators changed between identical evaluations")
	}
}

func TestService_Evaluate_MissingProfileIsFatal(t *testing.T) {
	service := physio.NewService(physio.ServiceConfig{
		Profiles: profile.NewInMemoryRepository(),
		Records:  records.NewInMemoryRepository(),
		Logger:   zerolog.Nop(),
	})

	_, err := service.Evaluate(context.Background(), "ghost", physio.DailyInputs{})
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestService_Evaluate_PersistsRecord(t *testing.T) {
	profiles := profile.NewInMemoryRepository()
	recs := records.NewInMemoryRepository()
	ctx := context.Background()

	p := testProfile(3827, 3398, 8.5)
	p.CreatedAt = time.Now()
	if err := profiles.Create(ctx, p); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	service := physio.NewService(physio.ServiceConfig{
		Profiles: profiles,
		Records:  recs,
		Logger:   zerolog.Nop(),
	})

	state, err := service.Evaluate(ctx, "user123", physio.DailyInputs{
		WaterConsumedML: 2500, SleepHours: 8, ActiveMinutes: 30, EnergyLevel: 4,
	})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	stored, err := recs.FindLatest(ctx, "user123", records.KindPhysioState, time.Time{})
	if err != nil {
		t.Fatalf("expected a persisted state record: %v", err)
	}

	var decoded physio.State
	if err := stored.Decode(&decoded); err != nil {
		t.Fatalf("decoding stored state: %v", err)
	}
	if decoded.State != state.State {
		t.Errorf("stored state = %s, want %s", decoded.State, state.State)
	}
}
