package fatigue

// Trend analysis parameters.
const (
	// trendWindowDays bounds how far back the history lookup goes.
	trendWindowDays = 7

	// trendMaxRecords caps how many historical analyses are fetched.
	trendMaxRecords = 10

	// trendSampleSize is how many of the most recent indices are compared.
	trendSampleSize = 3

	// trendDelta is the minimum index movement that counts as a change.
	trendDelta = 10
)

// AnalyzeTrend classifies the evolution of recent fatigue indices.
// Values are ordered most recent first. Higher indices mean more fatigue,
// so a rising index is a worsening trend. With fewer than two values the
// trend is Stable.
func AnalyzeTrend(indices []int) Trend {
	if len(indices) < 2 {
		return TrendStable
	}

	sample := indices
	if len(sample) > trendSampleSize {
		sample = sample[:trendSampleSize]
	}

	newest := sample[0]
	oldest := sample[len(sample)-1]

	switch {
	case newest > oldest+trendDelta:
		return TrendWorsening
	case newest < oldest-trendDelta:
		return TrendImproving
	default:
		return TrendStable
	}
}
