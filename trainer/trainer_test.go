package trainer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepCounter_Percent(t *testing.T) {
	rc, err := NewRepCounter(40, 160)
	require.NoError(t, err)

	tests := []struct {
		angle float64
		want  float64
	}{
		{160, 0},
		{180, 0},
		{40, 100},
		{10, 100},
		{100, 50},
		{130, 25},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, rc.Percent(tc.angle), 1e-9, "angle %.0f", tc.angle)
	}
}

func TestRepCounter_CountsFullCycles(t *testing.T) {
	rc, err := NewRepCounter(40, 160)
	require.NoError(t, err)

	// two curls, then a half curl that never returns to full extension
	samples := []float64{170, 120, 60, 35, 90, 165, 150, 30, 100, 170, 80, 30, 90}
	var last Progress
	for _, a := range samples {
		last = rc.Update(a)
	}
	assert.Equal(t, 2, last.Reps)
	assert.Equal(t, 2, rc.Reps())
	assert.Equal(t, Extending, last.Phase)

	rc.Reset()
	assert.Equal(t, 0, rc.Reps())
}

func TestRepCounter_PartialRangeDoesNotCount(t *testing.T) {
	rc, err := NewRepCounter(40, 160)
	require.NoError(t, err)

	for _, a := range []float64{150, 60, 150, 60, 150} {
		rc.Update(a)
	}
	assert.Equal(t, 0, rc.Reps())
}

func TestRepCounter_InvertedRange(t *testing.T) {
	// closed may lie above open
	rc, err := NewRepCounter(170, 90)
	require.NoError(t, err)
	assert.InDelta(t, 100, rc.Percent(175), 1e-9)
	assert.InDelta(t, 0, rc.Percent(80), 1e-9)
}

func TestNewRepCounter_EmptyRange(t *testing.T) {
	_, err := NewRepCounter(90, 90)
	assert.Error(t, err)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "extending", Extending.String())
	assert.Equal(t, "contracting", Contracting.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}

func TestStats_Summary(t *testing.T) {
	var s Stats
	assert.Equal(t, 0, s.Summary().Samples)
	assert.Contains(t, s.Summary().String(), "no angle samples")

	s.Add(90)
	sum := s.Summary()
	assert.Equal(t, 90.0, sum.Mean)
	assert.Equal(t, 0.0, sum.StdDev)

	s.Add(100)
	s.Add(110)
	s.Skip()
	sum = s.Summary()
	assert.Equal(t, 3, sum.Samples)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 90.0, sum.Min)
	assert.Equal(t, 110.0, sum.Max)
	assert.InDelta(t, 100.0, sum.Mean, 1e-9)
	assert.InDelta(t, 10.0, sum.StdDev, 1e-9)
	assert.False(t, math.IsNaN(sum.StdDev))
	assert.Contains(t, sum.String(), "3 samples")
}
