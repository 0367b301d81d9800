package trainer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats collects the angles measured during a session.
type Stats struct {
	angles  []float64
	skipped int
}

// Summary describes the angles seen in a session.
type Summary struct {
	Samples int
	Skipped int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
}

func (s Summary) String() string {
	if s.Samples == 0 {
		return fmt.Sprintf("no angle samples (%d frames skipped)", s.Skipped)
	}
	return fmt.Sprintf("%d samples, %d skipped, min %.1f max %.1f mean %.1f sd %.1f",
		s.Samples, s.Skipped, s.Min, s.Max, s.Mean, s.StdDev)
}

// Add records an angle.
func (s *Stats) Add(angle float64) {
	s.angles = append(s.angles, angle)
}

// Skip records a frame without an angle.
func (s *Stats) Skip() {
	s.skipped++
}

// Summary computes the summary of all recorded angles.
func (s *Stats) Summary() Summary {
	sum := Summary{Samples: len(s.angles), Skipped: s.skipped}
	if len(s.angles) == 0 {
		return sum
	}
	sum.Min = floats.Min(s.angles)
	sum.Max = floats.Max(s.angles)
	if len(s.angles) == 1 {
		sum.Mean = s.angles[0]
		return sum
	}
	sum.Mean, sum.StdDev = stat.MeanStdDev(s.angles, nil)
	return sum
}
