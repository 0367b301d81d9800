// Package trainer turns joint angles into exercise feedback.
package trainer

import "fmt"

// Phase is the part of a repetition the athlete is in.
type Phase int

const (
	// Extending moves toward the open end of the range.
	Extending Phase = iota
	// Contracting moves toward the closed end of the range.
	Contracting
)

func (p Phase) String() string {
	switch p {
	case Extending:
		return "extending"
	case Contracting:
		return "contracting"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Progress is the counter state after one update.
type Progress struct {
	// Percent is 0 with the joint fully open and 100 fully closed.
	Percent float64
	Reps    int
	Phase   Phase
}

// RepCounter counts repetitions of a joint moving between two angles.
// Closed is the angle reached at full contraction (e.g. 40 for a curl),
// Open the angle at full extension (e.g. 160).
type RepCounter struct {
	Closed, Open float64

	halfReps int
	phase    Phase
}

// NewRepCounter returns a counter for the given angle range.
func NewRepCounter(closed, open float64) (*RepCounter, error) {
	if closed == open {
		return nil, fmt.Errorf("rep range is empty: closed=%.1f open=%.1f", closed, open)
	}
	return &RepCounter{Closed: closed, Open: open, phase: Contracting}, nil
}

// Percent maps angle linearly onto 0..100 over the range, clamped at both
// ends.
func (r *RepCounter) Percent(angle float64) float64 {
	p := (angle - r.Open) / (r.Closed - r.Open) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Update feeds one angle sample. A rep counts once the joint has reached
// full contraction and then full extension again.
func (r *RepCounter) Update(angle float64) Progress {
	pct := r.Percent(angle)
	switch {
	case pct >= 100 && r.phase == Contracting:
		r.halfReps++
		r.phase = Extending
	case pct <= 0 && r.phase == Extending:
		r.halfReps++
		r.phase = Contracting
	}
	return r.Progress(pct)
}

// Progress returns the state with the given percentage.
func (r *RepCounter) Progress(pct float64) Progress {
	return Progress{Percent: pct, Reps: r.halfReps / 2, Phase: r.phase}
}

// Reps returns completed repetitions.
func (r *RepCounter) Reps() int {
	return r.halfReps / 2
}

// Reset clears the count.
func (r *RepCounter) Reset() {
	r.halfReps = 0
	r.phase = Contracting
}
