package calibration

// Strictness is the tendency of a rater relative to the organisation.
type Strictness int

const (
	StrictnessNormal Strictness = iota
	StrictnessStrict
	StrictnessLenient
)

func (s Strictness) String() string {
	switch s {
	case StrictnessStrict:
		return "strict"
	case StrictnessLenient:
		return "lenient"
	default:
		return "normal"
	}
}

// Label is the human readable name shown next to a rater.
func (s Strictness) Label() string {
	switch s {
	case StrictnessStrict:
		return "Strict"
	case StrictnessLenient:
		return "Lenient"
	default:
		return "Normal"
	}
}

// Color is the display color code for the classification.
func (s Strictness) Color() string {
	switch s {
	case StrictnessStrict:
		return "#3B82F6"
	case StrictnessLenient:
		return "#F59E0B"
	default:
		return "#10B981"
	}
}

type StrictnessClassification struct {
	Level Strictness
	Label string
	Color string
}

func classification(level Strictness) StrictnessClassification {
	return StrictnessClassification{Level: level, Label: level.Label(), Color: level.Color()}
}

// ClassifyRaterStrictness labels a rater by how far their mean sits from the
// global mean, using a band of ±StrictnessTolerance. The difference is rounded
// like the means themselves so a gap of exactly the tolerance stays normal.
func ClassifyRaterStrictness(rater RaterStatistics, globalMean float64) StrictnessClassification {
	diff := roundTo(rater.Mean-globalMean, statisticsPrecision)

	switch {
	case diff < -StrictnessTolerance:
		return classification(StrictnessStrict)
	case diff > StrictnessTolerance:
		return classification(StrictnessLenient)
	default:
		return classification(StrictnessNormal)
	}
}
