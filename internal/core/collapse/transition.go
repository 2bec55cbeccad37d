package collapse

import "time"

// MaxDuration caps every transition so no animation runs indefinitely.
const MaxDuration = 2 * time.Second

// Transition interpolates the expansion fraction of a body between From and
// To, where 0 is fully collapsed and 1 is fully expanded.
type Transition struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
}

// NewTransition starts a transition at now. Durations are clamped to
// [0, MaxDuration].
func NewTransition(from, to float64, now time.Time, d time.Duration) Transition {
	return Transition{
		From:     clamp01(from),
		To:       clamp01(to),
		Start:    now,
		Duration: min(max(d, 0), MaxDuration),
	}
}

// Progress returns the linear completion of the transition in [0, 1].
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.Start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= t.Duration {
		return 1
	}
	return float64(elapsed) / float64(t.Duration)
}

// At returns the eased expansion fraction at now.
func (t Transition) At(now time.Time) float64 {
	p := easeOutCubic(t.Progress(now))
	return t.From + (t.To-t.From)*p
}

// Done returns true once the transition has reached its target.
func (t Transition) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

func easeOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}
