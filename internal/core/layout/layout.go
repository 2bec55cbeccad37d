// Package layout provides the measurement primitives the truncation engine
// needs from a rendering host: cumulative vertical offsets and effective line
// heights. Nothing here caches; every call reads the host fresh because font
// metrics and offsets change on resize and content reloads.
package layout

import (
	"errors"
	"math"
)

// NormalLineHeightFactor is the multiplier applied to the font size when the
// computed line height is the "normal" keyword.
const NormalLineHeightFactor = 1.2

// DefaultFontSize is used when a host reports an unusable font size.
const DefaultFontSize = 16.0

// maxAncestors bounds the offset-parent walk for hosts with cyclic chains.
const maxAncestors = 1024

// ErrUnavailable is returned by hosts when an element has not been laid out
// yet and cannot be measured.
var ErrUnavailable = errors.New("layout: element not laid out")

// Style is the subset of computed style the engine reads.
type Style struct {
	FontSize float64
	// LineHeight is the resolved line height in the same unit as FontSize.
	// Ignored when LineHeightNormal is set.
	LineHeight       float64
	LineHeightNormal bool
}

// Element is a rendered node exposed by a layout host.
//
// OffsetParent must return an untyped nil when the element has no positioned
// ancestor.
type Element interface {
	OffsetTop() float64
	OffsetParent() Element
	ComputedStyle() Style
}

// TotalOffsetTop returns the distance from the top of the document to el by
// summing offsets across the positioned-ancestor chain. A nil element is at 0.
func TotalOffsetTop(el Element) float64 {
	total := 0.0
	for i := 0; el != nil && i < maxAncestors; i++ {
		if top := el.OffsetTop(); isFinite(top) {
			total += top
		}
		el = el.OffsetParent()
	}
	return total
}

// LineHeight returns the effective line height of el. The "normal" keyword
// resolves to fontSize * 1.2. The result is always positive and finite.
func LineHeight(el Element) float64 {
	if el == nil {
		return DefaultFontSize * NormalLineHeightFactor
	}

	st := el.ComputedStyle()
	if !st.LineHeightNormal && st.LineHeight > 0 && isFinite(st.LineHeight) {
		return st.LineHeight
	}

	fontSize := st.FontSize
	if fontSize <= 0 || !isFinite(fontSize) {
		fontSize = DefaultFontSize
	}
	return fontSize * NormalLineHeightFactor
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
