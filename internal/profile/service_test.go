package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/andinolabs/altura/internal/altitude"
	"github.com/andinolabs/altura/internal/profile"
)

func newTestService(repo *profile.InMemoryRepository) *profile.Service {
	return profile.NewService(profile.ServiceConfig{
		Repository: repo,
		Altitude:   altitude.NewService(altitude.NewInMemoryRepository()),
		Logger:     zerolog.Nop(),
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func TestService_Init_Baselines(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		sex       string
		location  string
		wantWater int
		wantSleep float64
	}{
		{
			// 3700 + floor((4315-1500)/1000*300) = 3700 + 844
			name:      "male at Macusani 4315m",
			sex:       profile.SexMale,
			location:  "Macusani",
			wantWater: 4544,
			wantSleep: 8.5,
		},
		{
			// 2700 + floor((3827-1500)/1000*300) = 2700 + 698
			name:      "female at Puno 3827m",
			sex:       profile.SexFemale,
			location:  "Puno",
			wantWater: 3398,
			wantSleep: 8.5,
		},
		{
			// 2178m: water adjusted, sleep not (cutoff 3500)
			name:      "male at Sandia 2178m",
			sex:       profile.SexMale,
			location:  "Sandia",
			wantWater: 3903,
			wantSleep: 8,
		},
		{
			// 820m: below the 1500m water cutoff, no adjustments
			name:      "female at San Gabán 820m",
			sex:       profile.SexFemale,
			location:  "San Gabán",
			wantWater: 2700,
			wantSleep: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(profile.NewInMemoryRepository())

			p, err := service.Init(ctx, "user-"+tt.name, &profile.InitRequest{
				Age:      30,
				Sex:      tt.sex,
				WeightKg: 75,
				HeightM:  1.75,
				Location: tt.location,
			})
			if err != nil {
				t.Fatalf("Init failed: %v", err)
			}

			if p.WaterBaselineML != tt.wantWater {
				t.Errorf("water baseline = %d, want %d", p.WaterBaselineML, tt.wantWater)
			}
			if p.SleepBaselineH != tt.wantSleep {
				t.Errorf("sleep baseline = %v, want %v", p.SleepBaselineH, tt.wantSleep)
			}
		})
	}
}

func TestWaterBaseline_At4200(t *testing.T) {
	// 3700 + floor((4200-1500)/1000*300) = 3700 + 810 = 4510
	if got := profile.WaterBaseline(profile.SexMale, 4200); got != 4510 {
		t.Errorf("WaterBaseline(M, 4200) = %d, want 4510", got)
	}
	if got := profile.SleepBaseline(4200); got != 8.5 {
		t.Errorf("SleepBaseline(4200) = %v, want 8.5", got)
	}
}

func TestService_Init_Idempotent(t *testing.T) {
	repo := profile.NewInMemoryRepository()
	service := newTestService(repo)
	ctx := context.Background()

	req := &profile.InitRequest{Age: 28, Sex: profile.SexFemale, WeightKg: 60, HeightM: 1.62, Location: "Juliaca"}

	first, err := service.Init(ctx, "user123", req)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}

	// Second call with different demographics must return the stored
	// profile unchanged and perform no further insertions.
	second, err := service.Init(ctx, "user123", &profile.InitRequest{
		Age: 99, Sex: profile.SexMale, WeightKg: 100, HeightM: 2.0, Location: "Puno",
	})
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}

	if second.Age != first.Age || second.Location != first.Location || second.WaterBaselineML != first.WaterBaselineML {
		t.Errorf("second Init changed the profile: %+v vs %+v", second, first)
	}
	if repo.Inserts() != 1 {
		t.Errorf("expected exactly 1 insertion, got %d", repo.Inserts())
	}
}

func TestService_Init_InvalidLocation(t *testing.T) {
	service := newTestService(profile.NewInMemoryRepository())

	_, err := service.Init(context.Background(), "user123", &profile.InitRequest{
		Age: 30, Sex: profile.SexMale, Location: "Nowhere",
	})
	if !errors.Is(err, profile.ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}

	if _, err := service.Get(context.Background(), "user123"); !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("no profile should be written on invalid location, got %v", err)
	}
}

func TestService_Update_LocationRecomputesBaselines(t *testing.T) {
	service := newTestService(profile.NewInMemoryRepository())
	ctx := context.Background()

	_, err := service.Init(ctx, "user123", &profile.InitRequest{
		Age: 30, Sex: profile.SexMale, WeightKg: 75, HeightM: 1.75, Location: "Sandia",
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	loc := "Ananea"
	updated, err := service.Update(ctx, "user123", &profile.UpdateRequest{Location: &loc})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.AltitudeM != 4660 {
		t.Errorf("altitude = %d, want 4660", updated.AltitudeM)
	}
	// 3700 + floor((4660-1500)/1000*300) = 3700 + 948
	if updated.WaterBaselineML != 4648 {
		t.Errorf("water baseline = %d, want 4648", updated.WaterBaselineML)
	}
	if updated.SleepBaselineH != 8.5 {
		t.Errorf("sleep baseline = %v, want 8.5", updated.SleepBaselineH)
	}
}

func TestService_RefreshContext(t *testing.T) {
	service := newTestService(profile.NewInMemoryRepository())
	ctx := context.Background()

	_, err := service.Init(ctx, "user123", &profile.InitRequest{
		Age: 30, Sex: profile.SexFemale, Location: "Puno",
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := service.RefreshContext(ctx, "user123", "studying intensively", "anxious"); err != nil {
		t.Fatalf("RefreshContext failed: %v", err)
	}

	p, err := service.Get(ctx, "user123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.CurrentMentalActivity != "studying intensively" {
		t.Errorf("mental activity = %q", p.CurrentMentalActivity)
	}
	if p.CurrentEmotionalState != "anxious" {
		t.Errorf("emotional state = %q", p.CurrentEmotionalState)
	}
	if p.LastContextUpdate == nil {
		t.Error("last context update not set")
	}
}
