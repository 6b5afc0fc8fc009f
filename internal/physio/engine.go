// Package physio computes the deterministic daily physiological state from
// hydration, sleep, activity and subjective energy versus per-user baselines.
package physio

import (
	"fmt"
	"math"
	"time"

	"github.com/andinolabs/altura/internal/profile"
)

// Altitude-adjusted cutoffs. Above 3500 m hydration and sleep thresholds
// tighten, while the activity minimum drops to avoid over-exertion guidance.
const (
	extremeAltitudeM = 3500

	hydrationThresholdPct        = 70
	hydrationThresholdExtremePct = 75
	sleepThresholdPct            = 80
	sleepThresholdExtremePct     = 85
	activityMinimumMin           = 30
	activityMinimumExtremeMin    = 20

	lowEnergyLevel = 2
)

// Evaluate classifies a day's inputs against a profile's baselines.
// Pure: the result depends only on the profile and inputs.
func Evaluate(p *profile.Profile, in DailyInputs, ts time.Time) *State {
	in = sanitize(in)

	hydrationPct := round1(float64(in.WaterConsumedML) / float64(p.WaterBaselineML) * 100)
	sleepPct := round1(in.SleepHours / p.SleepBaselineH * 100)

	extreme := p.AltitudeM > extremeAltitudeM

	hydrationThreshold := hydrationThresholdPct
	sleepThreshold := sleepThresholdPct
	activityMinimum := activityMinimumMin
	if extreme {
		hydrationThreshold = hydrationThresholdExtremePct
		sleepThreshold = sleepThresholdExtremePct
		activityMinimum = activityMinimumExtremeMin
	}

	dehydrated := hydrationPct < float64(hydrationThreshold)
	sleepDeficit := sleepPct < float64(sleepThreshold)
	activitySufficient := in.ActiveMinutes >= activityMinimum

	// First match wins.
	state := StateNormal
	switch {
	case dehydrated && sleepDeficit:
		state = StateCritical
	case dehydrated || sleepDeficit:
		state = StateAlert
	case in.EnergyLevel <= lowEnergyLevel:
		state = StateLow
	}

	var alerts []string

	if dehydrated {
		msg := fmt.Sprintf("DEHYDRATION: you have consumed %.0f%% of your daily water target.", hydrationPct)
		if extreme {
			msg += fmt.Sprintf(" At %dm you need at least %d%% to stay safe.", p.AltitudeM, hydrationThreshold)
		} else {
			msg += fmt.Sprintf(" Safe minimum: %d%%.", hydrationThreshold)
		}
		alerts = append(alerts, msg)
	}

	if sleepDeficit {
		msg := fmt.Sprintf("SLEEP DEFICIT: you have completed %.0f%% of your baseline rest.", sleepPct)
		if extreme {
			msg += fmt.Sprintf(" At %dm the deficit hits harder. Safe target: %d%%.", p.AltitudeM, sleepThreshold)
		} else {
			msg += fmt.Sprintf(" Recommended minimum: %d%%.", sleepThreshold)
		}
		alerts = append(alerts, msg)
	}

	if !activitySufficient {
		alerts = append(alerts, fmt.Sprintf(
			"LOW ACTIVITY: %d min logged. Target adjusted to your altitude: %d min.",
			in.ActiveMinutes, activityMinimum))
	}

	if in.EnergyLevel <= lowEnergyLevel {
		alerts = append(alerts, fmt.Sprintf(
			"LOW ENERGY: level %d/5. Monitor your fatigue.", in.EnergyLevel))
	}

	return &State{
		UserID:    p.UserID,
		Timestamp: ts,
		State:     state,
		Indicators: Indicators{
			HydrationPct:    hydrationPct,
			WaterConsumedML: in.WaterConsumedML,
			WaterBaselineML: p.WaterBaselineML,
			SleepPct:        sleepPct,
			SleepHours:      in.SleepHours,
			SleepBaselineH:  p.SleepBaselineH,
			ActivityMinutes: in.ActiveMinutes,
			ActivityMinimum: activityMinimum,
			EnergyLevel:     in.EnergyLevel,
			AltitudeM:       p.AltitudeM,
			Thresholds: Thresholds{
				HydrationThresholdPct: hydrationThreshold,
				SleepThresholdPct:     sleepThreshold,
			},
		},
		Alerts: alerts,
	}
}

// sanitize clamps raw inputs into their valid domains.
func sanitize(in DailyInputs) DailyInputs {
	if in.WaterConsumedML < 0 {
		in.WaterConsumedML = 0
	}
	if in.SleepHours < 0 {
		in.SleepHours = 0
	}
	if in.ActiveMinutes < 0 {
		in.ActiveMinutes = 0
	}
	if in.EnergyLevel == 0 {
		// Unspecified; assume mid-scale.
		in.EnergyLevel = 3
	}
	if in.EnergyLevel < 1 {
		in.EnergyLevel = 1
	}
	if in.EnergyLevel > 5 {
		in.EnergyLevel = 5
	}
	return in
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
