package calibration

import "math"

// Calibration policy. These values are fixed; changing any of them changes
// every calibrated score downstream.
const (
	ScoreFloor   = 0.5
	ScoreCeiling = 1.5

	// NarrowSpreadThreshold is the rater standard deviation below which the
	// z-score estimate is blended with the min-max estimate.
	NarrowSpreadThreshold = 0.1
	ZScoreWeight          = 0.7
	MinMaxWeight          = 0.3

	// StrictnessTolerance is the allowed distance between a rater's mean and
	// the global mean before the rater is classified strict or lenient.
	StrictnessTolerance = 0.15

	statisticsPrecision = 3
	scorePrecision      = 2
)

// roundTo rounds half away from zero to the given number of decimal digits.
// NaN and infinities pass through unchanged.
func roundTo(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
