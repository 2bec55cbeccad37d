// Package testutil holds fixtures and assertions shared by TUI tests.
package testutil

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/golden"

	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/pkg/tuitest"
)

// Epoch is the fixed creation time used by fixtures.
var Epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// RequireGolden compares output with a golden file using golden.RequireEqual().
func RequireGolden(t *testing.T, output string) {
	t.Helper()
	golden.RequireEqual(t, []byte(output))
}

// StripANSI removes ANSI escape codes and trailing whitespace from content.
func StripANSI(content string) string {
	return tuitest.StripANSI(content)
}

// Clock returns a time source frozen at Epoch plus offset.
func Clock(offset time.Duration) func() time.Time {
	return func() time.Time { return Epoch.Add(offset) }
}

// Comment creates a live comment created at Epoch.
func Comment(id, parentID, author, content string) corethread.Comment {
	return corethread.Comment{
		ID:        id,
		ParentID:  parentID,
		Author:    author,
		Content:   content,
		CreatedAt: Epoch,
	}
}

// Deleted creates a soft-deleted comment created at Epoch.
func Deleted(id, parentID string) corethread.Comment {
	c := Comment(id, parentID, "ghost", "gone")
	c.IsDeleted = true
	return c
}
