package thread

import (
	"time"

	"github.com/colonyops/threads/internal/core/collapse"
	"github.com/colonyops/threads/internal/core/truncate"
)

// Entry is the machine-readable summary of one rendered comment.
type Entry struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Author    string    `json:"author"`
	Depth     int       `json:"depth"`
	Quote     string    `json:"quote,omitempty"`
	Deleted   bool      `json:"deleted"`
	Verdict   string    `json:"verdict"`
	Overflow  bool      `json:"overflow"`
	Expanded  bool      `json:"expanded"`
	Row       int       `json:"row"`
	Rows      int       `json:"rows"`
	Visible   int       `json:"visible"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Entries returns one Entry per comment in display order.
func (v View) Entries() []Entry {
	now := v.now()
	out := make([]Entry, 0, len(v.order))
	for i, id := range v.order {
		c, _ := v.tree.Get(id)
		quote, _ := v.tree.ResolveParentAuthor(c)
		blk := v.blockFor(id, i == v.focus, now)

		e := Entry{
			ID:        c.ID,
			ParentID:  c.ParentID,
			Author:    c.DisplayAuthor(),
			Depth:     v.depths[id],
			Quote:     quote,
			Deleted:   c.IsDeleted,
			Verdict:   truncate.Unmeasured.String(),
			Rows:      len(blk.lines),
			Visible:   min(blk.visible, len(blk.lines)),
			CreatedAt: c.CreatedAt,
		}
		if row, ok := v.host.bodyRowOf(id); ok {
			e.Row = row
		}
		if ctrl := v.registry.Get(id); ctrl != nil {
			e.Verdict = ctrl.Verdict().String()
			e.Overflow = ctrl.Verdict() == truncate.Overflows
			e.Expanded = ctrl.State() == collapse.Expanded
		}
		out = append(out, e)
	}
	return out
}
