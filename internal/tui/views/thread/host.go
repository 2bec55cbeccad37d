package thread

import (
	"github.com/colonyops/threads/internal/core/layout"
	"github.com/colonyops/threads/internal/core/truncate"
)

// node is one positioned box in the terminal layout. Offsets are in px
// relative to the parent box; every terminal row is one line box of the
// host's row style.
type node struct {
	top     float64
	parent  *node
	style   layout.Style
	rows    int
	empty   bool
	laidOut bool
}

func (n *node) OffsetTop() float64 { return n.top }

func (n *node) OffsetParent() layout.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) ComputedStyle() layout.Style { return n.style }

// ContentHeight is the full height of the wrapped body before clipping.
func (n *node) ContentHeight() (float64, error) {
	if !n.laidOut {
		return 0, layout.ErrUnavailable
	}
	return float64(n.rows) * layout.LineHeight(n), nil
}

func (n *node) Empty() bool { return n.empty }

// mount is the pair of boxes owned by one comment: the card holding the
// whole block and the body nested inside it.
type mount struct {
	card *node
	body *node
}

// host is the terminal layout host. It owns a document box and one mount per
// visible comment.
type host struct {
	style  layout.Style
	doc    *node
	mounts map[string]*mount
}

func newHost(style layout.Style) *host {
	return &host{
		style:  style,
		doc:    &node{style: style},
		mounts: make(map[string]*mount),
	}
}

// rowPx is the height of one terminal row in px.
func (h *host) rowPx() float64 {
	return layout.LineHeight(h.doc)
}

func (h *host) mount(id string) *mount {
	if m, ok := h.mounts[id]; ok {
		return m
	}
	card := &node{parent: h.doc, style: h.style}
	m := &mount{
		card: card,
		body: &node{parent: card, style: h.style},
	}
	h.mounts[id] = m
	return m
}

func (h *host) unmount(id string) {
	delete(h.mounts, id)
}

// body returns the measurable body for id, or an untyped nil when the
// comment is not mounted.
func (h *host) body(id string) truncate.Body {
	m, ok := h.mounts[id]
	if !ok {
		return nil
	}
	return m.body
}

// place positions a card at row within the document and its body at
// headerRows within the card.
func (h *host) place(id string, row, headerRows int) {
	m, ok := h.mounts[id]
	if !ok {
		return
	}
	px := h.rowPx()
	m.card.top = float64(row) * px
	m.body.top = float64(headerRows) * px
}

// rowOf returns the document row of the top of the comment's card.
func (h *host) rowOf(id string) (int, bool) {
	m, ok := h.mounts[id]
	if !ok {
		return 0, false
	}
	return int(layout.TotalOffsetTop(m.card)/h.rowPx() + 0.5), true
}

// bodyRowOf returns the document row of the first line of the comment body.
func (h *host) bodyRowOf(id string) (int, bool) {
	m, ok := h.mounts[id]
	if !ok {
		return 0, false
	}
	return int(layout.TotalOffsetTop(m.body)/h.rowPx() + 0.5), true
}

// invalidate marks every body as not laid out, as before the first resize.
func (h *host) invalidate() {
	for _, m := range h.mounts {
		m.body.laidOut = false
	}
}
