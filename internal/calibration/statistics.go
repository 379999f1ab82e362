package calibration

import (
	"math"
	"sort"
)

type accumulator struct {
	scores []float64
	min    float64
	max    float64
}

func newAccumulator() *accumulator {
	return &accumulator{min: math.Inf(1), max: math.Inf(-1)}
}

func (a *accumulator) add(score float64) {
	a.scores = append(a.scores, score)
	a.min = math.Min(a.min, score)
	a.max = math.Max(a.max, score)
}

// meanStdDev returns the arithmetic mean and population standard deviation
// (divisor n). With no scores both values are NaN.
func (a *accumulator) meanStdDev() (mean, stddev float64) {
	n := float64(len(a.scores))

	var sum float64
	for _, s := range a.scores {
		sum += s
	}
	mean = sum / n

	var sumSq float64
	for _, s := range a.scores {
		d := s - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / n)
}

// ComputeRaterStatistics groups records by rater and returns one entry per
// rater, sorted ascending by mean so the strictest rater comes first.
func ComputeRaterStatistics(records []EvaluationRecord) []RaterStatistics {
	order := make([]string, 0)
	names := make(map[string]string)
	groups := make(map[string]*accumulator)

	for _, r := range records {
		acc, ok := groups[r.RaterID]
		if !ok {
			acc = newAccumulator()
			groups[r.RaterID] = acc
			names[r.RaterID] = r.RaterName
			order = append(order, r.RaterID)
		}
		acc.add(r.TotalScore)
	}

	out := make([]RaterStatistics, 0, len(order))
	for _, id := range order {
		acc := groups[id]
		mean, stddev := acc.meanStdDev()
		out = append(out, RaterStatistics{
			RaterID:   id,
			RaterName: names[id],
			Mean:      roundTo(mean, statisticsPrecision),
			StdDev:    roundTo(stddev, statisticsPrecision),
			Min:       acc.min,
			Max:       acc.max,
			Count:     len(acc.scores),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mean < out[j].Mean
	})
	return out
}

// ComputeGlobalStatistics computes the reference distribution over all
// records. For an empty collection Mean and StdDev are NaN, Min is +Inf and
// Max is -Inf.
func ComputeGlobalStatistics(records []EvaluationRecord) GlobalStatistics {
	acc := newAccumulator()
	for _, r := range records {
		acc.add(r.TotalScore)
	}
	mean, stddev := acc.meanStdDev()

	return GlobalStatistics{
		Mean:   roundTo(mean, statisticsPrecision),
		StdDev: roundTo(stddev, statisticsPrecision),
		Min:    acc.min,
		Max:    acc.max,
		Count:  len(acc.scores),
	}
}
