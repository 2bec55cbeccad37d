// Package truncate decides whether a rendered comment body overflows the
// configured number of visible lines.
package truncate

import (
	"errors"
	"math"

	"github.com/colonyops/threads/internal/core/layout"
)

// Verdict is the outcome of measuring a body.
type Verdict int

const (
	// Unmeasured means no trustworthy measurement exists yet.
	Unmeasured Verdict = iota
	// Fits means the full body is within the visible limit.
	Fits
	// Overflows means the body is taller than the limit and needs a toggle.
	Overflows
)

func (v Verdict) String() string {
	switch v {
	case Fits:
		return "fits"
	case Overflows:
		return "overflows"
	default:
		return "unmeasured"
	}
}

// Measured reports whether v is a final answer for the current layout.
func (v Verdict) Measured() bool {
	return v != Unmeasured
}

// Policy is the process-wide truncation policy.
type Policy struct {
	MaxLines int
	// Epsilon is the tolerance, in host units, for sub-pixel rounding.
	Epsilon float64
}

// DefaultPolicy returns three visible lines with a 1px tolerance.
func DefaultPolicy() Policy {
	return Policy{MaxLines: 3, Epsilon: 1}
}

// Body is a mounted comment body as seen by the engine. ContentHeight is the
// full, unclamped height and returns layout.ErrUnavailable before layout.
type Body interface {
	layout.Element
	ContentHeight() (float64, error)
	Empty() bool
}

// Limit returns the maximum height a body may have before it overflows,
// excluding epsilon.
func (p Policy) Limit(el layout.Element) float64 {
	return float64(max(p.MaxLines, 0)) * layout.LineHeight(el)
}

// Evaluate measures b against the policy. Failures to measure are reported as
// Unmeasured together with the cause so callers can schedule a retry.
func Evaluate(b Body, p Policy) (Verdict, error) {
	if b == nil {
		return Unmeasured, layout.ErrUnavailable
	}
	if b.Empty() {
		return Fits, nil
	}

	height, err := b.ContentHeight()
	if err != nil {
		return Unmeasured, err
	}
	// A zero height for non-empty content means layout has not settled.
	if height <= 0 || math.IsNaN(height) || math.IsInf(height, 0) {
		return Unmeasured, layout.ErrUnavailable
	}

	if height > p.Limit(b)+max(p.Epsilon, 0) {
		return Overflows, nil
	}
	return Fits, nil
}

// IsUnavailable reports whether err means the body could not be measured yet.
func IsUnavailable(err error) bool {
	return errors.Is(err, layout.ErrUnavailable)
}
