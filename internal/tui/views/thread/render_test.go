package thread

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/tui/testutil"
)

func TestRenderBlock(t *testing.T) {
	b := block{
		comment:  corethread.Comment{ID: "b", ParentID: "a", Author: "bob"},
		quote:    "alice",
		hasQuote: true,
		depth:    1,
		lines:    []string{"one", "two", "three", "four"},
		visible:  2,
		toggle:   "Show more",
		age:      "5m",
	}

	got := testutil.StripANSI(renderBlock(b, 2))
	want := "  │ bob → @alice · 5m\n" +
		"  │ one\n" +
		"  │ two\n" +
		"  │ Show more"
	assert.Equal(t, want, got)
}

func TestRenderBlock_DeletedAndFocused(t *testing.T) {
	c := corethread.Comment{ID: "a", Author: "mallory", Content: "secret", IsDeleted: true}
	b := block{
		comment: c,
		lines:   styleBody([]string{c.DisplayContent()}, true),
		visible: 1,
		focused: true,
	}

	got := testutil.StripANSI(renderBlock(b, 2))
	assert.Equal(t, "▌ [deleted]\n▌ [this comment has been deleted]", got)
	assert.NotContains(t, got, "mallory")
	assert.NotContains(t, got, "secret")
}

func TestGuide(t *testing.T) {
	tests := []struct {
		depth, indent int
		want          string
	}{
		{depth: 0, indent: 2, want: ""},
		{depth: 1, indent: 2, want: "│ "},
		{depth: 3, indent: 2, want: "    │ "},
		{depth: 2, indent: 1, want: " │"},
		{depth: 2, indent: 0, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, testutil.StripANSI(guide(tt.depth, tt.indent)), "depth=%d indent=%d", tt.depth, tt.indent)
	}
}

func TestWrapBody(t *testing.T) {
	assert.Nil(t, wrapBody("", 20))
	assert.Equal(t, []string{"a", "b"}, wrapBody("a\nb\n", 20))

	lines := wrapBody("aaaa bbbb cccc dddd", 10)
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 10)
	}
	assert.Equal(t, "aaaa bbbb cccc dddd", strings.Join(strings.Fields(strings.Join(lines, " ")), " "))

	assert.Len(t, wrapBody("abc", 0), 1, "width below the minimum is raised")
}

func TestRenderToggle_Slide(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     string
	}{
		{name: "start", progress: 0, want: "    Show more"},
		{name: "halfway", progress: 0.5, want: "  Show more"},
		{name: "done", progress: 1, want: "Show more"},
		{name: "out of range", progress: 3, want: "Show more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testutil.StripANSI(renderToggle("Show more", tt.progress, 4, false, false, false))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisibleRows(t *testing.T) {
	const row = 19.2
	assert.Equal(t, 5, visibleRows(96, row, false, 5))
	assert.Equal(t, 3, visibleRows(57.6, row, true, 5))
	assert.Equal(t, 4, visibleRows(80, row, true, 5))
	assert.Equal(t, 1, visibleRows(0, row, true, 5), "a clipped body keeps one row")
	assert.Equal(t, 2, visibleRows(500, row, true, 2))
}

func TestRenderHeader(t *testing.T) {
	assert.Equal(t, "Comments (0)", testutil.StripANSI(renderHeader("", 0, 0, false, "")))
	assert.Equal(t,
		"Comments · thread.json (4 · 1 deleted)",
		testutil.StripANSI(renderHeader("thread.json", 4, 1, false, "")),
	)
}

func TestRenderError(t *testing.T) {
	got := testutil.StripANSI(renderError(errors.New("boom"), 80))
	assert.Equal(t, "load failed: boom", got)

	got = testutil.StripANSI(renderError(errors.New("a very long failure message"), 12))
	assert.Equal(t, "load failed…", got)
}

func TestFormatAge(t *testing.T) {
	now := testutil.Epoch
	tests := []struct {
		at   time.Time
		want string
	}{
		{at: time.Time{}, want: ""},
		{at: now.Add(time.Minute), want: "now"},
		{at: now.Add(-30 * time.Second), want: "30s"},
		{at: now.Add(-5 * time.Minute), want: "5m"},
		{at: now.Add(-3 * time.Hour), want: "3h"},
		{at: now.Add(-72 * time.Hour), want: "3d"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAge(now, tt.at))
	}
}
