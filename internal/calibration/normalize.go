package calibration

// NormalizeByZScore projects score from the rater's distribution onto the
// global one and clamps the result to [ScoreFloor, ScoreCeiling]. A rater
// with zero spread maps straight to the global mean.
func NormalizeByZScore(score float64, rater RaterStatistics, global GlobalStatistics) float64 {
	if rater.StdDev == 0 {
		return global.Mean
	}

	z := (score - rater.Mean) / rater.StdDev
	normalized := global.Mean + z*global.StdDev

	return roundTo(clamp(normalized, ScoreFloor, ScoreCeiling), scorePrecision)
}

// NormalizeByMinMax linearly remaps score from the rater's observed range onto
// the global range. A rater who gave a single distinct score maps to the
// midpoint of the global range.
func NormalizeByMinMax(score float64, rater RaterStatistics, global GlobalStatistics) float64 {
	raterRange := rater.Max - rater.Min
	if raterRange == 0 {
		return (global.Min + global.Max) / 2
	}

	globalRange := global.Max - global.Min
	normalized := global.Min + ((score-rater.Min)/raterRange)*globalRange

	return roundTo(normalized, scorePrecision)
}

// NormalizeRecord calibrates a single record. Records whose rater has no
// entry in raters pass through unchanged with a zero adjustment.
func NormalizeRecord(record EvaluationRecord, raters []RaterStatistics, global GlobalStatistics) NormalizedScore {
	rater, ok := findRater(raters, record.RaterID)
	if !ok {
		return NormalizedScore{
			OriginalScore:   record.TotalScore,
			NormalizedScore: record.TotalScore,
			RaterID:         record.RaterID,
			RaterName:       record.RaterName,
			Adjustment:      0,
		}
	}

	final := NormalizeByZScore(record.TotalScore, rater, global)
	if rater.StdDev < NarrowSpreadThreshold {
		minMax := NormalizeByMinMax(record.TotalScore, rater, global)
		final = ZScoreWeight*final + MinMaxWeight*minMax
	}
	final = roundTo(final, scorePrecision)

	return NormalizedScore{
		OriginalScore:   record.TotalScore,
		NormalizedScore: final,
		RaterID:         rater.RaterID,
		RaterName:       rater.RaterName,
		Adjustment:      roundTo(final-record.TotalScore, scorePrecision),
	}
}

// NormalizeAll computes fresh statistics from records and returns every
// record, in input order, with its calibrated score attached.
func NormalizeAll(records []EvaluationRecord) []NormalizedEvaluation {
	raters := ComputeRaterStatistics(records)
	global := ComputeGlobalStatistics(records)

	out := make([]NormalizedEvaluation, len(records))
	for i, r := range records {
		out[i] = NormalizedEvaluation{
			EvaluationRecord: r,
			Normalized:       NormalizeRecord(r, raters, global),
		}
	}
	return out
}

func findRater(raters []RaterStatistics, id string) (RaterStatistics, bool) {
	for _, r := range raters {
		if r.RaterID == id {
			return r, true
		}
	}
	return RaterStatistics{}, false
}
