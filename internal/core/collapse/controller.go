// Package collapse holds the per-comment expand/collapse state machine and
// the registry that owns one controller per mounted comment.
package collapse

import (
	"time"

	"github.com/colonyops/threads/internal/core/truncate"
)

// State is the displayed state of a comment body.
type State int

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// Toggle labels.
const (
	LabelShowMore = "Show more"
	LabelShowLess = "Show less"
)

// Controller is the truncation state of one comment. It starts collapsed and
// only changes state while its body is known to overflow.
type Controller struct {
	state      State
	verdict    truncate.Verdict
	transition *Transition
	duration   time.Duration
}

// NewController returns a collapsed, unmeasured controller whose transitions
// last d.
func NewController(d time.Duration) *Controller {
	return &Controller{duration: d}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Verdict returns the latest measurement.
func (c *Controller) Verdict() truncate.Verdict {
	return c.verdict
}

// ToggleVisible returns true if a toggle should be rendered.
func (c *Controller) ToggleVisible() bool {
	return c.verdict == truncate.Overflows
}

// Label returns the toggle label for the current state.
func (c *Controller) Label() string {
	if c.state == Expanded {
		return LabelShowLess
	}
	return LabelShowMore
}

// Toggle flips the state. It returns false when no toggle exists.
func (c *Controller) Toggle(now time.Time) bool {
	if c.state == Expanded {
		return c.Collapse(now)
	}
	return c.Expand(now)
}

// Expand moves to Expanded. It is a no-op when already expanded or when the
// body does not overflow.
func (c *Controller) Expand(now time.Time) bool {
	if !c.ToggleVisible() || c.state == Expanded {
		return false
	}
	c.startTransition(now, 1)
	c.state = Expanded
	return true
}

// Collapse moves to Collapsed. It is a no-op when already collapsed.
func (c *Controller) Collapse(now time.Time) bool {
	if !c.ToggleVisible() || c.state == Collapsed {
		return false
	}
	c.startTransition(now, 0)
	c.state = Collapsed
	return true
}

// Apply records a new measurement. Anything but Overflows resets the
// controller to Collapsed since no toggle can exist.
func (c *Controller) Apply(v truncate.Verdict) {
	c.verdict = v
	if v != truncate.Overflows {
		c.state = Collapsed
		c.transition = nil
	}
}

// Animating returns true while a transition is in flight at now.
func (c *Controller) Animating(now time.Time) bool {
	return c.transition != nil && !c.transition.Done(now)
}

// Progress returns the linear progress of the active transition, 1 when idle.
func (c *Controller) Progress(now time.Time) float64 {
	if c.transition == nil {
		return 1
	}
	return c.transition.Progress(now)
}

// Settle drops a finished transition. It returns true if one was dropped.
func (c *Controller) Settle(now time.Time) bool {
	if c.transition != nil && c.transition.Done(now) {
		c.transition = nil
		return true
	}
	return false
}

// ClampHeight returns the height the body should be clipped to at now given
// the policy limit and the full content height. The bool is false when the
// body is shown unclipped.
//
// Unmeasured bodies are shown collapsed without a toggle; bodies that fit are
// never clipped.
func (c *Controller) ClampHeight(now time.Time, limit, full float64) (float64, bool) {
	switch c.verdict {
	case truncate.Fits:
		return full, false
	case truncate.Unmeasured:
		if full <= limit {
			return full, false
		}
		return limit, true
	}

	h := limit + (full-limit)*c.expansion(now)
	if h >= full {
		return full, false
	}
	return h, true
}

func (c *Controller) expansion(now time.Time) float64 {
	if c.transition != nil {
		return c.transition.At(now)
	}
	if c.state == Expanded {
		return 1
	}
	return 0
}

// startTransition animates from the current expansion toward target so a
// reversal mid-flight continues from where the body is.
func (c *Controller) startTransition(now time.Time, target float64) {
	t := NewTransition(c.expansion(now), target, now, c.duration)
	c.transition = &t
}
