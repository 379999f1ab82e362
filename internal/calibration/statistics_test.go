package calibration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRaterRecords() []EvaluationRecord {
	return []EvaluationRecord{
		{SubjectID: "e1", SubjectName: "Aiko", RaterID: "mA", RaterName: "Manager A", TotalScore: 1.2, Period: "2024-01"},
		{SubjectID: "e2", SubjectName: "Ben", RaterID: "mA", RaterName: "Manager A", TotalScore: 1.3, Period: "2024-01"},
		{SubjectID: "e3", SubjectName: "Chen", RaterID: "mB", RaterName: "Manager B", TotalScore: 0.8, Period: "2024-01"},
		{SubjectID: "e4", SubjectName: "Dana", RaterID: "mB", RaterName: "Manager B", TotalScore: 0.9, Period: "2024-01"},
	}
}

func TestComputeRaterStatistics(t *testing.T) {
	t.Run("two raters sorted by ascending mean", func(t *testing.T) {
		stats := ComputeRaterStatistics(twoRaterRecords())

		require.Len(t, stats, 2)
		assert.Equal(t, "mB", stats[0].RaterID)
		assert.Equal(t, "mA", stats[1].RaterID)

		assert.InDelta(t, 0.85, stats[0].Mean, 1e-9)
		assert.InDelta(t, 0.05, stats[0].StdDev, 1e-9)
		assert.Equal(t, 0.8, stats[0].Min)
		assert.Equal(t, 0.9, stats[0].Max)
		assert.Equal(t, 2, stats[0].Count)

		assert.InDelta(t, 1.25, stats[1].Mean, 1e-9)
		assert.InDelta(t, 0.05, stats[1].StdDev, 1e-9)
		assert.Equal(t, "Manager A", stats[1].RaterName)
	})

	t.Run("empty input yields empty collection", func(t *testing.T) {
		stats := ComputeRaterStatistics(nil)

		assert.NotNil(t, stats)
		assert.Empty(t, stats)
	})

	t.Run("single record has zero deviation", func(t *testing.T) {
		stats := ComputeRaterStatistics([]EvaluationRecord{
			{RaterID: "m1", RaterName: "Solo", TotalScore: 1.1},
		})

		require.Len(t, stats, 1)
		assert.Equal(t, 0.0, stats[0].StdDev)
		assert.Equal(t, 1.1, stats[0].Mean)
		assert.Equal(t, 1, stats[0].Count)
	})

	t.Run("display name comes from the first record", func(t *testing.T) {
		stats := ComputeRaterStatistics([]EvaluationRecord{
			{RaterID: "m1", RaterName: "First Name", TotalScore: 1.0},
			{RaterID: "m1", RaterName: "Renamed", TotalScore: 1.2},
		})

		require.Len(t, stats, 1)
		assert.Equal(t, "First Name", stats[0].RaterName)
	})

	t.Run("statistics are rounded to three digits", func(t *testing.T) {
		stats := ComputeRaterStatistics([]EvaluationRecord{
			{RaterID: "m1", TotalScore: 1.0},
			{RaterID: "m1", TotalScore: 1.1},
			{RaterID: "m1", TotalScore: 1.3},
		})

		require.Len(t, stats, 1)
		// mean 1.1333.., population stddev 0.1247..
		assert.Equal(t, 1.133, stats[0].Mean)
		assert.Equal(t, 0.125, stats[0].StdDev)
	})

	t.Run("every rater appears once with a positive count", func(t *testing.T) {
		records := []EvaluationRecord{
			{RaterID: "m1", TotalScore: 1.4},
			{RaterID: "m2", TotalScore: 0.7},
			{RaterID: "m3", TotalScore: 1.0},
			{RaterID: "m2", TotalScore: 0.9},
			{RaterID: "m1", TotalScore: 1.2},
		}

		stats := ComputeRaterStatistics(records)

		require.Len(t, stats, 3)
		seen := make(map[string]bool)
		for i, s := range stats {
			assert.GreaterOrEqual(t, s.Count, 1)
			assert.False(t, seen[s.RaterID])
			seen[s.RaterID] = true
			if i > 0 {
				assert.LessOrEqual(t, stats[i-1].Mean, s.Mean)
			}
		}
	})
}

func TestComputeGlobalStatistics(t *testing.T) {
	t.Run("four record example", func(t *testing.T) {
		global := ComputeGlobalStatistics(twoRaterRecords())

		assert.Equal(t, 4, global.Count)
		assert.Equal(t, 0.8, global.Min)
		assert.Equal(t, 1.3, global.Max)
		assert.InDelta(t, 1.05, global.Mean, 1e-9)
		assert.InDelta(t, 0.206, global.StdDev, 1e-9)
	})

	t.Run("empty input propagates NaN", func(t *testing.T) {
		global := ComputeGlobalStatistics([]EvaluationRecord{})

		assert.True(t, math.IsNaN(global.Mean))
		assert.True(t, math.IsNaN(global.StdDev))
		assert.True(t, math.IsInf(global.Min, 1))
		assert.True(t, math.IsInf(global.Max, -1))
		assert.Equal(t, 0, global.Count)
	})
}

func TestRoundTo(t *testing.T) {
	cases := []struct {
		name   string
		in     float64
		digits int
		want   float64
	}{
		{"half rounds up", 0.125, 2, 0.13},
		{"negative half rounds away from zero", -0.125, 2, -0.13},
		{"three digits", 1.23456, 3, 1.235},
		{"already rounded", 1.5, 2, 1.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, roundTo(tc.in, tc.digits))
		})
	}

	t.Run("NaN passes through", func(t *testing.T) {
		assert.True(t, math.IsNaN(roundTo(math.NaN(), 2)))
	})
}
