package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRaterStrictness(t *testing.T) {
	cases := []struct {
		name       string
		raterMean  float64
		globalMean float64
		want       Strictness
	}{
		{"well below band", 0.8, 1.0, StrictnessStrict},
		{"just below band", 0.84, 1.0, StrictnessStrict},
		{"lower edge of band", 0.85, 1.0, StrictnessNormal},
		{"lower edge against unrounded global", 0.9, 1.05, StrictnessNormal},
		{"inside band low", 0.9, 1.0, StrictnessNormal},
		{"equal to global", 1.0, 1.0, StrictnessNormal},
		{"inside band high", 1.1, 1.0, StrictnessNormal},
		{"upper edge of band", 1.15, 1.0, StrictnessNormal},
		{"just above band", 1.16, 1.0, StrictnessLenient},
		{"well above band", 1.4, 1.0, StrictnessLenient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyRaterStrictness(RaterStatistics{Mean: tc.raterMean}, tc.globalMean)

			assert.Equal(t, tc.want, got.Level)
			assert.Equal(t, tc.want.Label(), got.Label)
			assert.Equal(t, tc.want.Color(), got.Color)
		})
	}
}

func TestStrictnessPresentation(t *testing.T) {
	levels := []Strictness{StrictnessStrict, StrictnessNormal, StrictnessLenient}
	labels := make(map[string]bool)
	colors := make(map[string]bool)

	for _, l := range levels {
		assert.NotEmpty(t, l.Label())
		assert.NotEmpty(t, l.Color())
		labels[l.Label()] = true
		colors[l.Color()] = true
	}

	assert.Len(t, labels, 3)
	assert.Len(t, colors, 3)
	assert.Equal(t, "strict", StrictnessStrict.String())
	assert.Equal(t, "lenient", StrictnessLenient.String())
	assert.Equal(t, "normal", StrictnessNormal.String())
}
