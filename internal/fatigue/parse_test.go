package fatigue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysis(t *testing.T) {
	t.Run("well formed response", func(t *testing.T) {
		parsed, err := parseAnalysis(`{
			"fatigue_level": "High",
			"ifa": 78,
			"justification": "Severe sleep deficit at extreme altitude.",
			"alerts": [
				{"category": "hydration", "priority": "high", "message": "Drink water", "recommended_timing": "now", "suggested_action": "300ml"}
			]
		}`)
		require.NoError(t, err)
		assert.Equal(t, LevelHigh, parsed.FatigueLevel)
		assert.Equal(t, 78, parsed.IFA)
		assert.Len(t, parsed.Alerts, 1)
	})

	t.Run("markdown fences are stripped", func(t *testing.T) {
		parsed, err := parseAnalysis("```json\n{\"fatigue_level\": \"Low\", \"ifa\": 20}\n```")
		require.NoError(t, err)
		assert.Equal(t, LevelLow, parsed.FatigueLevel)
		assert.Equal(t, 20, parsed.IFA)
	})

	t.Run("index is clamped", func(t *testing.T) {
		parsed, err := parseAnalysis(`{"fatigue_level": "High", "ifa": 140}`)
		require.NoError(t, err)
		assert.Equal(t, 100, parsed.IFA)

		parsed, err = parseAnalysis(`{"fatigue_level": "Low", "ifa": -3}`)
		require.NoError(t, err)
		assert.Equal(t, 0, parsed.IFA)
	})

	t.Run("unknown level coerced to Medium", func(t *testing.T) {
		parsed, err := parseAnalysis(`{"fatigue_level": "extreme", "ifa": 50}`)
		require.NoError(t, err)
		assert.Equal(t, LevelMedium, parsed.FatigueLevel)
	})

	t.Run("spanish levels accepted", func(t *testing.T) {
		parsed, err := parseAnalysis(`{"fatigue_level": "Bajo", "ifa": 15}`)
		require.NoError(t, err)
		assert.Equal(t, LevelLow, parsed.FatigueLevel)

		parsed, err = parseAnalysis(`{"fatigue_level": "Alto", "ifa": 85}`)
		require.NoError(t, err)
		assert.Equal(t, LevelHigh, parsed.FatigueLevel)
	})

	t.Run("missing justification gets a default", func(t *testing.T) {
		parsed, err := parseAnalysis(`{"fatigue_level": "Medium", "ifa": 50}`)
		require.NoError(t, err)
		assert.NotEmpty(t, parsed.Justification)
	})

	t.Run("alerts without a message are dropped", func(t *testing.T) {
		parsed, err := parseAnalysis(`{
			"fatigue_level": "Medium",
			"ifa": 50,
			"alerts": [
				{"category": "hydration", "priority": "high", "message": ""},
				{"category": "nonsense", "priority": "urgent", "message": "Rest now"}
			]
		}`)
		require.NoError(t, err)
		require.Len(t, parsed.Alerts, 1)
		assert.Equal(t, CategoryEnergy, parsed.Alerts[0].Category)
		assert.Equal(t, PriorityMedium, parsed.Alerts[0].Priority)
	})

	t.Run("counters kept with defaults filled", func(t *testing.T) {
		parsed, err := parseAnalysis(`{
			"fatigue_level": "Medium",
			"ifa": 50,
			"counters": {
				"hydration": {"consumed_ml": -100, "objective_ml": 2000, "missing_ml": 1500},
				"rest": {"last_break": "2 hours ago"},
				"energy": {"level": 9}
			}
		}`)
		require.NoError(t, err)
		require.NotNil(t, parsed.Counters)
		assert.Equal(t, 0, parsed.Counters.Hydration.ConsumedML)
		assert.Equal(t, 2000, parsed.Counters.Hydration.ObjectiveML)
		assert.Equal(t, 250, parsed.Counters.Hydration.NextIntakeML)
		assert.Equal(t, 2, parsed.Counters.Hydration.FrequencyHours)
		assert.Equal(t, 15, parsed.Counters.Rest.RecommendedMinutes)
		assert.Equal(t, 3, parsed.Counters.Energy.Level)
		assert.Equal(t, "normal", parsed.Counters.Energy.Status)
	})

	t.Run("counters without a hydration objective treated as absent", func(t *testing.T) {
		parsed, err := parseAnalysis(`{
			"fatigue_level": "Medium",
			"ifa": 50,
			"counters": {"rest": {"recommended_minutes": 10}}
		}`)
		require.NoError(t, err)
		assert.Nil(t, parsed.Counters)
	})

	t.Run("productivity clamped", func(t *testing.T) {
		parsed, err := parseAnalysis(`{
			"fatigue_level": "Medium",
			"ifa": 50,
			"productivity": {"capacity_pct": 140, "optimal_study_hours": -2, "relative": "High"}
		}`)
		require.NoError(t, err)
		require.NotNil(t, parsed.Productivity)
		assert.Equal(t, 100.0, parsed.Productivity.CapacityPct)
		assert.Equal(t, 0, parsed.Productivity.OptimalStudyHours)
	})

	t.Run("productivity without capacity treated as absent", func(t *testing.T) {
		parsed, err := parseAnalysis(`{
			"fatigue_level": "Medium",
			"ifa": 50,
			"productivity": {"best_window": "10:00 - 12:00"}
		}`)
		require.NoError(t, err)
		assert.Nil(t, parsed.Productivity)
	})

	t.Run("rejections", func(t *testing.T) {
		for name, text := range map[string]string{
			"empty":       "",
			"prose":       "The user seems quite tired today.",
			"missing ifa": `{"fatigue_level": "High"}`,
			"broken json": `{"fatigue_level": "High", "ifa":`,
			"fences only": "```json\n```",
		} {
			_, err := parseAnalysis(text)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr, "case %s", name)
		}
	})
}
