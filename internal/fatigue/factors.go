package fatigue

import "strings"

// AltitudeFactor returns the physiological load multiplier for the given
// altitude. Bands step every 500 m above 2500 m and saturate at 4500 m.
func AltitudeFactor(altitudeM int) float64 {
	switch {
	case altitudeM > 4500:
		return 1.25
	case altitudeM > 4000:
		return 1.20
	case altitudeM > 3500:
		return 1.15
	case altitudeM > 3000:
		return 1.10
	case altitudeM > 2500:
		return 1.05
	default:
		return 1.00
	}
}

// MentalActivityFactor returns the cognitive load multiplier for a
// free-text mental activity description. Matching is keyword based and
// accepts both English and Spanish stems; unknown descriptions are
// neutral. Intensive work is checked first so "studying intensively"
// resolves to the intensive band.
func MentalActivityFactor(activity string) float64 {
	s := strings.ToLower(activity)
	switch {
	case contains(s, "intens"):
		return 1.20
	case contains(s, "study", "estud", "learn", "aprend"):
		return 1.15
	case contains(s, "work", "trabaj"):
		return 1.10
	case contains(s, "admin"):
		return 1.05
	case contains(s, "review", "revis", "rest", "descans"):
		return 0.95
	default:
		return 1.00
	}
}

// EmotionalFactor returns the emotional load multiplier for a free-text
// emotional state description. Demotivation is checked before motivation
// because "unmotivated" and "desmotivado" contain the motivated stem.
func EmotionalFactor(state string) float64 {
	s := strings.ToLower(state)
	switch {
	case contains(s, "anxious", "ansios", "stress", "estres", "estrés"):
		return 1.25
	case contains(s, "unmotivated", "demotiv", "desmotiv"):
		return 1.15
	case contains(s, "motivat", "motivad"):
		return 1.20
	case contains(s, "tired", "cansad", "exhaust", "agotad"):
		return 1.10
	default:
		return 1.00
	}
}

// GlobalFactor is the combined load multiplier used by the deterministic
// fallback index.
func GlobalFactor(altitudeM int, mentalActivity, emotionalState string) float64 {
	return AltitudeFactor(altitudeM) * MentalActivityFactor(mentalActivity) * EmotionalFactor(emotionalState)
}

func contains(s string, stems ...string) bool {
	for _, stem := range stems {
		if strings.Contains(s, stem) {
			return true
		}
	}
	return false
}
