package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeByZScore(t *testing.T) {
	global := GlobalStatistics{Mean: 1.0, StdDev: 0.2, Min: 0.6, Max: 1.4}

	t.Run("zero deviation snaps to global mean", func(t *testing.T) {
		rater := RaterStatistics{RaterID: "m1", Mean: 1.0, StdDev: 0, Min: 1.0, Max: 1.0, Count: 3}

		assert.Equal(t, global.Mean, NormalizeByZScore(1.0, rater, global))
	})

	t.Run("rescales onto the global distribution", func(t *testing.T) {
		rater := RaterStatistics{Mean: 0.8, StdDev: 0.1}

		// z = 1, 1.0 + 0.2
		assert.InDelta(t, 1.2, NormalizeByZScore(0.9, rater, global), 1e-9)
	})

	t.Run("clamps to the upper bound", func(t *testing.T) {
		rater := RaterStatistics{Mean: 1.0, StdDev: 0.1}
		wide := GlobalStatistics{Mean: 1.0, StdDev: 0.5}

		assert.Equal(t, ScoreCeiling, NormalizeByZScore(2.0, rater, wide))
	})

	t.Run("clamps to the lower bound", func(t *testing.T) {
		rater := RaterStatistics{Mean: 1.0, StdDev: 0.1}
		wide := GlobalStatistics{Mean: 1.0, StdDev: 0.5}

		assert.Equal(t, ScoreFloor, NormalizeByZScore(-3.0, rater, wide))
	})

	t.Run("output stays in band for extreme inputs", func(t *testing.T) {
		rater := RaterStatistics{Mean: 1.0, StdDev: 0.05}
		for _, score := range []float64{-1e6, -10, 0, 0.5, 1, 1.5, 10, 1e6} {
			got := NormalizeByZScore(score, rater, global)
			assert.GreaterOrEqual(t, got, ScoreFloor)
			assert.LessOrEqual(t, got, ScoreCeiling)
		}
	})
}

func TestNormalizeByMinMax(t *testing.T) {
	global := GlobalStatistics{Min: 0.6, Max: 1.4}

	t.Run("zero range returns global midpoint", func(t *testing.T) {
		rater := RaterStatistics{Min: 1.1, Max: 1.1}

		assert.InDelta(t, 1.0, NormalizeByMinMax(1.1, rater, global), 1e-9)
	})

	t.Run("maps rater bounds onto global bounds", func(t *testing.T) {
		rater := RaterStatistics{Min: 1.0, Max: 1.2}

		assert.InDelta(t, 0.6, NormalizeByMinMax(1.0, rater, global), 1e-9)
		assert.InDelta(t, 1.4, NormalizeByMinMax(1.2, rater, global), 1e-9)
		assert.InDelta(t, 1.0, NormalizeByMinMax(1.1, rater, global), 1e-9)
	})

	t.Run("rounds to two digits", func(t *testing.T) {
		rater := RaterStatistics{Min: 0, Max: 3}
		unit := GlobalStatistics{Min: 0, Max: 1}

		assert.Equal(t, 0.33, NormalizeByMinMax(1, rater, unit))
	})
}

func TestNormalizeRecord(t *testing.T) {
	records := twoRaterRecords()
	raters := ComputeRaterStatistics(records)
	global := ComputeGlobalStatistics(records)

	t.Run("unknown rater passes through", func(t *testing.T) {
		rec := EvaluationRecord{RaterID: "ghost", RaterName: "Ghost", TotalScore: 1.17}

		got := NormalizeRecord(rec, raters, global)

		assert.Equal(t, 1.17, got.OriginalScore)
		assert.Equal(t, 1.17, got.NormalizedScore)
		assert.Equal(t, 0.0, got.Adjustment)
		assert.Equal(t, "ghost", got.RaterID)
	})

	t.Run("narrow spread blends z-score and min-max", func(t *testing.T) {
		// Manager A: mean 1.25, stddev 0.05; global mean 1.05, stddev 0.206.
		// z-score: 1.05 - 0.206 = 0.844 -> 0.84, min-max: 0.8.
		// 0.7*0.84 + 0.3*0.8 = 0.828 -> 0.83
		got := NormalizeRecord(records[0], raters, global)

		assert.Equal(t, "mA", got.RaterID)
		assert.Equal(t, "Manager A", got.RaterName)
		assert.InDelta(t, 0.83, got.NormalizedScore, 1e-9)
		assert.InDelta(t, -0.37, got.Adjustment, 1e-9)
	})

	t.Run("lenient rater high score", func(t *testing.T) {
		// Manager B: z-score 1.05 + 0.206 = 1.256 -> 1.26, min-max: 1.3.
		// 0.7*1.26 + 0.3*1.3 = 1.272 -> 1.27
		got := NormalizeRecord(records[3], raters, global)

		assert.InDelta(t, 1.27, got.NormalizedScore, 1e-9)
		assert.InDelta(t, 0.37, got.Adjustment, 1e-9)
	})

	t.Run("wide spread uses z-score only", func(t *testing.T) {
		rater := RaterStatistics{RaterID: "m1", RaterName: "Wide", Mean: 1.0, StdDev: 0.2, Min: 0.7, Max: 1.3, Count: 4}
		g := GlobalStatistics{Mean: 1.1, StdDev: 0.1, Min: 0.5, Max: 1.5}
		rec := EvaluationRecord{RaterID: "m1", TotalScore: 1.2}

		got := NormalizeRecord(rec, []RaterStatistics{rater}, g)

		// z = 1 -> 1.2
		assert.InDelta(t, 1.2, got.NormalizedScore, 1e-9)
		assert.InDelta(t, 0.0, got.Adjustment, 1e-9)
	})

	t.Run("constant rater blends global mean with midpoint", func(t *testing.T) {
		rater := RaterStatistics{RaterID: "m1", Mean: 1.0, StdDev: 0, Min: 1.0, Max: 1.0, Count: 2}
		g := GlobalStatistics{Mean: 1.1, StdDev: 0.1, Min: 0.8, Max: 1.2}
		rec := EvaluationRecord{RaterID: "m1", TotalScore: 1.0}

		got := NormalizeRecord(rec, []RaterStatistics{rater}, g)

		// 0.7*1.1 + 0.3*1.0 = 1.07
		assert.InDelta(t, 1.07, got.NormalizedScore, 1e-9)
		assert.InDelta(t, 0.07, got.Adjustment, 1e-9)
	})
}

func TestNormalizeAll(t *testing.T) {
	t.Run("preserves order and attaches scores", func(t *testing.T) {
		records := twoRaterRecords()

		out := NormalizeAll(records)

		require.Len(t, out, len(records))
		for i, r := range out {
			assert.Equal(t, records[i].SubjectID, r.SubjectID)
			assert.Equal(t, records[i].TotalScore, r.Normalized.OriginalScore)
			assert.Equal(t, records[i].RaterID, r.Normalized.RaterID)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		records := twoRaterRecords()

		assert.Equal(t, NormalizeAll(records), NormalizeAll(records))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		records := twoRaterRecords()
		before := twoRaterRecords()

		_ = NormalizeAll(records)

		assert.Equal(t, before, records)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, NormalizeAll(nil))
	})

	t.Run("results stay finite", func(t *testing.T) {
		for _, r := range NormalizeAll(twoRaterRecords()) {
			assert.False(t, math.IsNaN(r.Normalized.NormalizedScore))
		}
	})
}
