package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeElement struct {
	top    float64
	parent *fakeElement
	style  Style
	reads  int
}

func (f *fakeElement) OffsetTop() float64 {
	f.reads++
	return f.top
}

func (f *fakeElement) OffsetParent() Element {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fakeElement) ComputedStyle() Style {
	return f.style
}

func TestTotalOffsetTop(t *testing.T) {
	t.Run("nil element is at the top", func(t *testing.T) {
		assert.InDelta(t, 0.0, TotalOffsetTop(nil), 0.0001)
	})

	t.Run("root element returns its own offset", func(t *testing.T) {
		el := &fakeElement{top: 12}
		assert.InDelta(t, 12.0, TotalOffsetTop(el), 0.0001)
	})

	t.Run("sums the ancestor chain", func(t *testing.T) {
		root := &fakeElement{top: 10}
		card := &fakeElement{top: 40, parent: root}
		body := &fakeElement{top: 19.2, parent: card}

		assert.InDelta(t, 69.2, TotalOffsetTop(body), 0.0001)
	})

	t.Run("ignores non-finite offsets", func(t *testing.T) {
		root := &fakeElement{top: math.NaN()}
		body := &fakeElement{top: 5, parent: root}

		assert.InDelta(t, 5.0, TotalOffsetTop(body), 0.0001)
	})

	t.Run("terminates on a cyclic chain", func(t *testing.T) {
		a := &fakeElement{top: 1}
		b := &fakeElement{top: 1, parent: a}
		a.parent = b

		got := TotalOffsetTop(a)
		assert.InDelta(t, float64(maxAncestors), got, 0.0001)
	})

	t.Run("is idempotent", func(t *testing.T) {
		root := &fakeElement{top: 3}
		body := &fakeElement{top: 4, parent: root}

		first := TotalOffsetTop(body)
		second := TotalOffsetTop(body)
		assert.InDelta(t, first, second, 0.0001)
		assert.Equal(t, 2, body.reads, "offsets are read fresh on every call")
	})
}

func TestLineHeight(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  float64
	}{
		{
			name:  "normal keyword derives from font size",
			style: Style{FontSize: 16, LineHeightNormal: true},
			want:  19.2,
		},
		{
			name:  "resolved value is returned directly",
			style: Style{FontSize: 16, LineHeight: 20},
			want:  20,
		},
		{
			name:  "normal wins over a stale resolved value",
			style: Style{FontSize: 10, LineHeight: 40, LineHeightNormal: true},
			want:  12,
		},
		{
			name:  "zero line height falls back to normal",
			style: Style{FontSize: 10},
			want:  12,
		},
		{
			name:  "unusable font size falls back to default",
			style: Style{FontSize: -3, LineHeightNormal: true},
			want:  DefaultFontSize * NormalLineHeightFactor,
		},
		{
			name:  "infinite line height falls back to normal",
			style: Style{FontSize: 20, LineHeight: math.Inf(1)},
			want:  24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &fakeElement{style: tt.style}
			got := LineHeight(el)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.Equal(t, tt.style, el.style, "style must not be mutated")
		})
	}

	t.Run("nil element", func(t *testing.T) {
		got := LineHeight(nil)
		assert.Greater(t, got, 0.0)
	})
}
