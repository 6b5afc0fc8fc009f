package fatigue

import (
	"fmt"
	"math"
	"strings"

	"github.com/andinolabs/altura/internal/physio"
)

// Synthesis parameters.
const (
	defaultIntakeML       = 250
	defaultIntakeHours    = 2
	defaultBreakMinutes   = 15
	lowEnergyLevel        = 2
	hydrationAlertPct     = 0.8
	severeHydrationPct    = 0.6
	moderateHydrationPct  = 0.5
	extremeAltitudeM      = 3500
	veryHighAltitudeM     = 4000
	criticalAltitudeM     = 4500
	reducedCapacityFactor = 0.85
	normalCapacityFactor  = 0.95
)

// SynthesizeAlerts derives actionable alerts from the physiological
// indicators. It is used on the fallback path and to backfill missing
// alerts from the reasoning service. Thresholds and messaging escalate
// with altitude.
func SynthesizeAlerts(ind physio.Indicators, mentalActivity string) []AlertItem {
	alerts := []AlertItem{}

	objective := ind.WaterBaselineML
	consumed := ind.WaterConsumedML
	missing := objective - consumed
	if missing < 0 {
		missing = 0
	}

	if objective > 0 && float64(consumed) < hydrationAlertPct*float64(objective) {
		switch {
		case ind.AltitudeM > criticalAltitudeM:
			alerts = append(alerts, AlertItem{
				Category:          CategoryHydration,
				Priority:          PriorityHigh,
				Message:           fmt.Sprintf("EXTREME ALTITUDE (%dm): hydration critically low, %dml of %dml consumed", ind.AltitudeM, consumed, objective),
				RecommendedTiming: "Right now, then every hour",
				SuggestedAction:   fmt.Sprintf("Drink %dml of water immediately", minInt(300, missing)),
			})
		case ind.AltitudeM > veryHighAltitudeM:
			alerts = append(alerts, AlertItem{
				Category:          CategoryHydration,
				Priority:          PriorityHigh,
				Message:           fmt.Sprintf("Very high altitude (%dm): hydration behind target, %dml of %dml consumed", ind.AltitudeM, consumed, objective),
				RecommendedTiming: "Right now, then every 2 hours",
				SuggestedAction:   fmt.Sprintf("Drink %dml of water now", minInt(300, missing)),
			})
		case ind.AltitudeM > extremeAltitudeM:
			priority := PriorityLow
			if float64(consumed) < severeHydrationPct*float64(objective) {
				priority = PriorityMedium
			}
			alerts = append(alerts, AlertItem{
				Category:          CategoryHydration,
				Priority:          priority,
				Message:           fmt.Sprintf("Hydration behind target at %dm: %dml of %dml consumed", ind.AltitudeM, consumed, objective),
				RecommendedTiming: "Within the next 30 minutes",
				SuggestedAction:   fmt.Sprintf("Drink %dml of water", minInt(250, missing)),
			})
		default:
			priority := PriorityLow
			if float64(consumed) < moderateHydrationPct*float64(objective) {
				priority = PriorityMedium
			}
			alerts = append(alerts, AlertItem{
				Category:          CategoryHydration,
				Priority:          priority,
				Message:           fmt.Sprintf("Hydration behind target: %dml of %dml consumed", consumed, objective),
				RecommendedTiming: "Within the next hour",
				SuggestedAction:   fmt.Sprintf("Drink %dml of water", minInt(200, missing)),
			})
		}
	}

	if ind.EnergyLevel <= lowEnergyLevel {
		switch {
		case ind.AltitudeM > veryHighAltitudeM:
			alerts = append(alerts, AlertItem{
				Category:          CategoryEnergy,
				Priority:          PriorityHigh,
				Message:           fmt.Sprintf("ALTITUDE ALERT: energy level %d/5 is dangerously low at %dm", ind.EnergyLevel, ind.AltitudeM),
				RecommendedTiming: "Immediately",
				SuggestedAction:   "Rest 20-30 minutes, breathe deeply and avoid exertion",
			})
		case ind.AltitudeM > extremeAltitudeM:
			alerts = append(alerts, AlertItem{
				Category:          CategoryEnergy,
				Priority:          PriorityMedium,
				Message:           fmt.Sprintf("Energy level %d/5 is low for %dm of altitude", ind.EnergyLevel, ind.AltitudeM),
				RecommendedTiming: "Every 1-2 hours",
				SuggestedAction:   "Take 10-minute breaks with breathing exercises",
			})
		default:
			alerts = append(alerts, AlertItem{
				Category:          CategoryEnergy,
				Priority:          PriorityLow,
				Message:           fmt.Sprintf("Energy level %d/5 is low", ind.EnergyLevel),
				RecommendedTiming: "Every 2 hours",
				SuggestedAction:   "Take short breaks and reassess your energy",
			})
		}
	}

	if strings.Contains(strings.ToLower(mentalActivity), "intens") {
		switch {
		case ind.AltitudeM > veryHighAltitudeM:
			alerts = append(alerts, AlertItem{
				Category:          CategoryProductivity,
				Priority:          PriorityMedium,
				Message:           fmt.Sprintf("Intensive mental work at %dm compounds physiological load", ind.AltitudeM),
				RecommendedTiming: "During your next work block",
				SuggestedAction:   "Reduce intensity: work in 25-minute blocks with 10-minute breaks",
			})
		case ind.AltitudeM > extremeAltitudeM:
			alerts = append(alerts, AlertItem{
				Category:          CategoryProductivity,
				Priority:          PriorityLow,
				Message:           fmt.Sprintf("Intensive mental work at %dm: pace yourself", ind.AltitudeM),
				RecommendedTiming: "During your next work block",
				SuggestedAction:   "Adjust your pace: insert 5-minute breaks every 30 minutes",
			})
		}
	}

	return alerts
}

// SynthesizeCounters derives the recovery counters from the indicators.
func SynthesizeCounters(ind physio.Indicators) Counters {
	missingWater := ind.WaterBaselineML - ind.WaterConsumedML
	if missingWater < 0 {
		missingWater = 0
	}

	missingActivity := ind.ActivityMinimum - ind.ActivityMinutes
	if missingActivity < 0 {
		missingActivity = 0
	}

	return Counters{
		Hydration: HydrationCounter{
			ConsumedML:     ind.WaterConsumedML,
			ObjectiveML:    ind.WaterBaselineML,
			MissingML:      missingWater,
			NextIntakeML:   minInt(defaultIntakeML, maxInt(missingWater, 0)),
			FrequencyHours: defaultIntakeHours,
		},
		Rest: RestCounter{
			LastBreak:          "unknown",
			NextBreak:          fmt.Sprintf("in %d minutes", 90),
			RecommendedMinutes: defaultBreakMinutes,
		},
		Activity: ActivityCounter{
			PerformedMin: ind.ActivityMinutes,
			ObjectiveMin: ind.ActivityMinimum,
			MissingMin:   missingActivity,
			NextSession:  "light walk this afternoon",
		},
		Energy: EnergyCounter{
			Level:  ind.EnergyLevel,
			Status: energyStatus(ind.EnergyLevel),
		},
	}
}

// SynthesizeProductivity estimates productive capacity from energy, sleep
// and hydration, discounted by altitude.
func SynthesizeProductivity(ind physio.Indicators) Productivity {
	altFactor := normalCapacityFactor
	if ind.AltitudeM > extremeAltitudeM {
		altFactor = reducedCapacityFactor
	}

	capacity := (float64(ind.EnergyLevel)/5.0*0.4 +
		ind.SleepPct/100.0*0.3 +
		ind.HydrationPct/100.0*0.3) * altFactor * 100

	capacity = math.Round(clampFloat(capacity, 0, 100)*10) / 10

	switch {
	case capacity > 80:
		return Productivity{
			CapacityPct:       capacity,
			OptimalStudyHours: 6,
			BestWindow:        "09:00 - 12:00 and 14:00 - 17:00",
			FocusIntervalMin:  50,
			BreakMin:          10,
			Relative:          "High",
		}
	case capacity > 60:
		return Productivity{
			CapacityPct:       capacity,
			OptimalStudyHours: 4,
			BestWindow:        "10:00 - 12:00 and 15:00 - 17:00",
			FocusIntervalMin:  35,
			BreakMin:          15,
			Relative:          "Medium",
		}
	default:
		return Productivity{
			CapacityPct:       capacity,
			OptimalStudyHours: 2,
			BestWindow:        "10:00 - 12:00",
			FocusIntervalMin:  25,
			BreakMin:          20,
			Relative:          "Low",
		}
	}
}

func energyStatus(level int) string {
	switch {
	case level <= 1:
		return "exhausted"
	case level == 2:
		return "low"
	case level == 3:
		return "normal"
	default:
		return "high"
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
