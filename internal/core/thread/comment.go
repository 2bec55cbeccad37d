// Package thread models a comment section as a forest of soft-deletable
// comments linked by parent references.
package thread

import "time"

// Placeholders rendered in place of a deleted comment's author and content.
const (
	DeletedAuthor  = "[deleted]"
	DeletedContent = "[this comment has been deleted]"
)

// Comment is one reply in a thread. Records are immutable once received;
// deletion is a flag and never removes the record.
type Comment struct {
	ID        string    `json:"id"                  yaml:"id"`
	ParentID  string    `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Author    string    `json:"author"              yaml:"author"`
	Content   string    `json:"content"             yaml:"content"`
	IsDeleted bool      `json:"is_deleted"          yaml:"is_deleted"`
	CreatedAt time.Time `json:"created_at"          yaml:"created_at"`
}

// IsTopLevel returns true if the comment does not reference a parent.
func (c Comment) IsTopLevel() bool {
	return c.ParentID == ""
}

// DisplayAuthor returns the author name, or the placeholder when deleted.
func (c Comment) DisplayAuthor() string {
	if c.IsDeleted {
		return DeletedAuthor
	}
	return c.Author
}

// DisplayContent returns the body to show. Deleted content is never shown.
func (c Comment) DisplayContent() string {
	if c.IsDeleted {
		return DeletedContent
	}
	return c.Content
}
