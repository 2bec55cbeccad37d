package thread

import "fmt"

// IssueKind classifies a structural problem found while indexing comments.
type IssueKind int

const (
	// IssueMissingParent is a parent reference to an unknown comment.
	IssueMissingParent IssueKind = iota + 1
	// IssueParentCycle is a parent chain that loops back on itself.
	IssueParentCycle
	// IssueDuplicateID is a second record with an already-seen ID.
	IssueDuplicateID
	// IssueEmptyID is a record without an ID.
	IssueEmptyID
)

func (k IssueKind) String() string {
	switch k {
	case IssueMissingParent:
		return "missing parent"
	case IssueParentCycle:
		return "parent cycle"
	case IssueDuplicateID:
		return "duplicate id"
	case IssueEmptyID:
		return "empty id"
	default:
		return "unknown"
	}
}

// Issue describes a malformed record. Issues never fail indexing: comments
// with bad parent references are placed at the top level, and unusable
// records are skipped.
type Issue struct {
	Kind      IssueKind
	CommentID string
	ParentID  string
	Position  int // index in the input sequence
}

func (i Issue) Error() string {
	if i.ParentID == "" {
		return fmt.Sprintf("comment %q at position %d: %s", i.CommentID, i.Position, i.Kind)
	}
	return fmt.Sprintf("comment %q at position %d: %s %q", i.CommentID, i.Position, i.Kind, i.ParentID)
}

// noParent marks a comment rendered at the top level.
const noParent = -1

// Tree is a read-only index over an ordered comment sequence. Comments are
// stored once in input order; parent/child relationships are index slices
// built once per refresh.
type Tree struct {
	comments []Comment
	inputPos []int          // position in comments -> position in the input
	index    map[string]int // id -> position in comments
	parent   []int          // position -> effective parent position or noParent
	children map[int][]int  // parent position -> child positions, input order
	roots    []int
	issues   []Issue
	deleted  int
}

// New indexes comments. The input order is preserved and assumed to be
// creation order.
func New(comments []Comment) *Tree {
	t := &Tree{
		comments: make([]Comment, 0, len(comments)),
		index:    make(map[string]int, len(comments)),
		children: make(map[int][]int),
	}

	for pos, c := range comments {
		switch {
		case c.ID == "":
			t.issues = append(t.issues, Issue{Kind: IssueEmptyID, Position: pos})
			continue
		case t.has(c.ID):
			t.issues = append(t.issues, Issue{Kind: IssueDuplicateID, CommentID: c.ID, Position: pos})
			continue
		}

		t.index[c.ID] = len(t.comments)
		t.comments = append(t.comments, c)
		t.inputPos = append(t.inputPos, pos)
		if c.IsDeleted {
			t.deleted++
		}
	}

	t.parent = make([]int, len(t.comments))
	for i, c := range t.comments {
		t.parent[i] = noParent
		if c.IsTopLevel() {
			continue
		}

		p, ok := t.index[c.ParentID]
		if !ok {
			t.issues = append(t.issues, Issue{Kind: IssueMissingParent, CommentID: c.ID, ParentID: c.ParentID, Position: t.inputPos[i]})
			continue
		}
		t.parent[i] = p
	}

	t.breakCycles()

	for i, p := range t.parent {
		if p == noParent {
			t.roots = append(t.roots, i)
			continue
		}
		t.children[p] = append(t.children[p], i)
	}

	return t
}

// breakCycles detaches one member of every parent cycle, choosing the
// earliest comment in input order, so the structure is a forest.
func (t *Tree) breakCycles() {
	const (
		unvisited = iota
		visiting
		done
	)

	state := make([]uint8, len(t.comments))
	for i := range t.comments {
		var path []int
		j := i
		for j != noParent && state[j] == unvisited {
			state[j] = visiting
			path = append(path, j)
			j = t.parent[j]
		}

		if j != noParent && state[j] == visiting {
			start := 0
			for path[start] != j {
				start++
			}
			detach := path[start]
			for _, k := range path[start:] {
				detach = min(detach, k)
			}

			c := t.comments[detach]
			t.issues = append(t.issues, Issue{Kind: IssueParentCycle, CommentID: c.ID, ParentID: c.ParentID, Position: t.inputPos[detach]})
			t.parent[detach] = noParent
		}

		for _, k := range path {
			state[k] = done
		}
	}
}

func (t *Tree) has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Len returns the number of indexed comments.
func (t *Tree) Len() int {
	return len(t.comments)
}

// Deleted returns the number of soft-deleted comments.
func (t *Tree) Deleted() int {
	return t.deleted
}

// Issues returns the malformed records found while indexing.
func (t *Tree) Issues() []Issue {
	return t.issues
}

// Get returns the comment with the given ID.
func (t *Tree) Get(id string) (Comment, bool) {
	i, ok := t.index[id]
	if !ok {
		return Comment{}, false
	}
	return t.comments[i], true
}

// Roots returns the top-level comments, including those whose parent
// reference could not be resolved.
func (t *Tree) Roots() []Comment {
	return t.collect(t.roots)
}

// ChildrenOf returns the direct replies to id in input order. An empty id
// returns the top-level comments.
func (t *Tree) ChildrenOf(id string) []Comment {
	if id == "" {
		return t.Roots()
	}
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	return t.collect(t.children[i])
}

// HasChildren returns true if id has at least one reply.
func (t *Tree) HasChildren(id string) bool {
	i, ok := t.index[id]
	return ok && len(t.children[i]) > 0
}

// Parent returns the structural parent of c. Comments placed at the top
// level because of a malformed reference have no parent.
func (t *Tree) Parent(c Comment) (Comment, bool) {
	i, ok := t.index[c.ID]
	if !ok {
		return Comment{}, false
	}
	p := t.parent[i]
	if p == noParent {
		return Comment{}, false
	}
	return t.comments[p], true
}

// ResolveParentAuthor returns the parent's author when the parent exists and
// is not deleted. Deleted or missing parents suppress the quote; the child
// still stays attached to its parent in the structure.
func (t *Tree) ResolveParentAuthor(c Comment) (string, bool) {
	parent, ok := t.Parent(c)
	if !ok || parent.IsDeleted {
		return "", false
	}
	return parent.Author, true
}

// Depth returns the nesting level of id, 0 for top-level comments and -1 for
// unknown IDs.
func (t *Tree) Depth(id string) int {
	i, ok := t.index[id]
	if !ok {
		return -1
	}
	depth := 0
	for p := t.parent[i]; p != noParent; p = t.parent[p] {
		depth++
	}
	return depth
}

// Walk visits the replies under root depth first in display order, with
// depth counted from root's direct replies. An empty root walks the whole
// thread from the top-level comments. Returning false from fn stops the walk.
func (t *Tree) Walk(root string, fn func(c Comment, depth int) bool) {
	var visit func(id string, depth int) bool
	visit = func(id string, depth int) bool {
		for _, c := range t.ChildrenOf(id) {
			if !fn(c, depth) {
				return false
			}
			if t.HasChildren(c.ID) && !visit(c.ID, depth+1) {
				return false
			}
		}
		return true
	}
	visit(root, 0)
}

func (t *Tree) collect(positions []int) []Comment {
	if len(positions) == 0 {
		return nil
	}
	out := make([]Comment, len(positions))
	for k, i := range positions {
		out[k] = t.comments[i]
	}
	return out
}
