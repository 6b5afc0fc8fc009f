package fatigue

import (
	"fmt"
	"strings"

	"github.com/andinolabs/altura/internal/physio"
)

// BuildPrompt renders the analysis prompt for the reasoning service. The
// prompt pins the exact JSON shape expected back so the response can be
// parsed without free-form interpretation.
func BuildPrompt(state *physio.State, trend Trend, mentalActivity, emotionalState string, historyCount int) string {
	ind := state.Indicators

	if mentalActivity == "" {
		mentalActivity = "not specified"
	}
	if emotionalState == "" {
		emotionalState = "not specified"
	}

	var b strings.Builder
	b.WriteString("Analyze the fatigue of a person living at high altitude and respond with JSON only.\n\n")

	fmt.Fprintf(&b, "Physiological state: %s\n", state.State)
	fmt.Fprintf(&b, "Altitude: %d m\n", ind.AltitudeM)
	fmt.Fprintf(&b, "Hydration: %dml of %dml (%.1f%%)\n", ind.WaterConsumedML, ind.WaterBaselineML, ind.HydrationPct)
	fmt.Fprintf(&b, "Sleep: %.1fh of %.1fh (%.1f%%)\n", ind.SleepHours, ind.SleepBaselineH, ind.SleepPct)
	fmt.Fprintf(&b, "Physical activity: %d of %d minutes\n", ind.ActivityMinutes, ind.ActivityMinimum)
	fmt.Fprintf(&b, "Energy level: %d/5\n", ind.EnergyLevel)
	fmt.Fprintf(&b, "Active alerts: %d\n", len(state.Alerts))
	fmt.Fprintf(&b, "Mental activity: %s\n", mentalActivity)
	fmt.Fprintf(&b, "Emotional state: %s\n", emotionalState)
	fmt.Fprintf(&b, "Recent trend: %s (%d prior analyses)\n\n", trend, historyCount)

	b.WriteString("Respond with exactly this JSON structure and nothing else:\n")
	fmt.Fprintf(&b, `{
  "fatigue_level": "Low|Medium|High",
  "ifa": <integer 0-100, higher means more fatigued>,
  "justification": "<one or two sentences>",
  "alerts": [
    {
      "category": "hydration|rest|activity|energy|productivity",
      "priority": "high|medium|low",
      "message": "<specific message with numbers>",
      "recommended_timing": "<when to act>",
      "suggested_action": "<concrete action>"
    }
  ],
  "counters": {
    "hydration": {"consumed_ml": %d, "objective_ml": %d, "missing_ml": <calculated>, "next_intake_ml": <ml>, "frequency_hours": <hours>},
    "rest": {"last_break": "<time since last break>", "next_break": "<when>", "recommended_minutes": <minutes>},
    "activity": {"performed_min": %d, "objective_min": %d, "missing_min": <calculated>, "next_session": "<when>"},
    "energy": {"level": %d, "status": "exhausted|low|normal|high"}
  },
  "productivity": {
    "capacity_pct": <0-100>,
    "optimal_study_hours": <hours>,
    "best_window": "<time windows>",
    "focus_interval_min": <minutes>,
    "break_min": <minutes>,
    "relative": "Low|Medium|High"
  }
}`, ind.WaterConsumedML, ind.WaterBaselineML, ind.ActivityMinutes, ind.ActivityMinimum, ind.EnergyLevel)

	return b.String()
}
