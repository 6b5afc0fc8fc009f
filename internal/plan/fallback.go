package plan

import (
	"fmt"

	"github.com/andinolabs/altura/internal/fatigue"
)

// Fatigue index bands for the deterministic plan.
const (
	highFatigueIFA   = 70
	lowFatigueIFA    = 34
	extremeAltitudeM = 3500
)

// fallbackPlan builds the deterministic plan from the latest fatigue
// analysis. High fatigue prioritizes rest and hydration, low fatigue
// allows an ambitious schedule, and everything in between balances the
// two. Altitude advice is added above the extreme-altitude cutoff.
func fallbackPlan(analysis *fatigue.Analysis, altitudeM int) *RecoveryPlan {
	p := &RecoveryPlan{}

	switch {
	case analysis.IFA > highFatigueIFA:
		p.ImmediateRecommendations = []string{
			"Prioritize rest today: postpone non-essential commitments",
			fmt.Sprintf("Drink %dml of water every %d hours", analysis.Counters.Hydration.NextIntakeML, analysis.Counters.Hydration.FrequencyHours),
			"Go to bed 30-60 minutes earlier than usual tonight",
		}
		p.OptimalSchedules = Schedules{
			Study: "10:00 - 11:30, light material only",
			Work:  "short blocks of 25 minutes with 15-minute breaks",
			Rest:  "13:00 - 14:00 nap, lights out by 21:30",
		}
		p.ActiveBreaks = []string{
			"5 minutes of deep breathing every hour",
			"Gentle stretching after each work block",
		}
	case analysis.IFA < lowFatigueIFA:
		p.ImmediateRecommendations = []string{
			"Energy is good: schedule your most demanding work for this morning",
			"Keep the hydration cadence that is working",
		}
		p.OptimalSchedules = Schedules{
			Study: "09:00 - 12:00, deep-focus sessions of 50 minutes",
			Work:  "14:00 - 17:00",
			Rest:  "short break after lunch, lights out by 22:30",
		}
		p.ActiveBreaks = []string{
			"10-minute walk mid-morning",
			"Light exercise session in the late afternoon",
		}
	default:
		p.ImmediateRecommendations = []string{
			"Balance focused work with regular recovery breaks",
			fmt.Sprintf("Drink %dml of water every %d hours", analysis.Counters.Hydration.NextIntakeML, analysis.Counters.Hydration.FrequencyHours),
			"Take a 15-minute break every 90 minutes",
		}
		p.OptimalSchedules = Schedules{
			Study: "09:30 - 12:00, blocks of 35 minutes",
			Work:  "15:00 - 17:30",
			Rest:  "20-minute rest after lunch, lights out by 22:00",
		}
		p.ActiveBreaks = []string{
			"5-minute walk every 90 minutes",
			"Breathing exercises before demanding tasks",
		}
	}

	if altitudeM > extremeAltitudeM {
		p.AltitudeAdvice = altitudeAdvice(altitudeM)
	}

	return p
}

// altitudeAdvice is the standing advice list for life above the
// extreme-altitude cutoff.
func altitudeAdvice(altitudeM int) []string {
	return []string{
		fmt.Sprintf("Keep a constant hydration cadence at %dm: your body loses more water even at rest", altitudeM),
		"Avoid intense physical exertion after 17:00 at this altitude",
		"Add extra rest if you notice soroche symptoms such as headache or shortness of breath",
	}
}
