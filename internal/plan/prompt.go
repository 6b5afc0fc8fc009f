package plan

import (
	"fmt"
	"strings"

	"github.com/andinolabs/altura/internal/fatigue"
	"github.com/andinolabs/altura/internal/physio"
	"github.com/andinolabs/altura/internal/profile"
)

// buildPrompt renders the plan prompt for the reasoning service.
func buildPrompt(p *profile.Profile, analysis *fatigue.Analysis, state *physio.State, historyCount int) string {
	var b strings.Builder
	b.WriteString("Create a personalized recovery plan for a person living at high altitude and respond with JSON only.\n\n")

	fmt.Fprintf(&b, "Age: %d, sex: %s, activity level: %s\n", p.Age, p.Sex, p.ActivityLevel)
	fmt.Fprintf(&b, "Location: %s at %d m\n", p.Location, p.AltitudeM)
	fmt.Fprintf(&b, "Latest fatigue analysis: level %s, index %d/100, trend %s\n", analysis.FatigueLevel, analysis.IFA, analysis.Trend)
	fmt.Fprintf(&b, "Justification: %s\n", analysis.Justification)
	fmt.Fprintf(&b, "Active alerts: %d\n", len(analysis.Alerts))
	if state != nil {
		fmt.Fprintf(&b, "Physiological state: %s (hydration %.0f%%, sleep %.0f%%, energy %d/5)\n",
			state.State, state.Indicators.HydrationPct, state.Indicators.SleepPct, state.Indicators.EnergyLevel)
	}
	fmt.Fprintf(&b, "Prior analyses available: %d\n\n", historyCount)

	b.WriteString("Respond with exactly this JSON structure and nothing else:\n")
	b.WriteString(`{
  "immediate_recommendations": ["<specific action>", "..."],
  "optimal_schedules": {
    "study": "<time windows and pacing>",
    "work": "<time windows and pacing>",
    "rest": "<naps and bedtime>"
  },
  "active_breaks": ["<break activity>", "..."],
  "altitude_advice": ["<advice specific to this altitude>", "..."]
}`)

	return b.String()
}
