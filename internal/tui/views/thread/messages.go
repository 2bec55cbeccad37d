package thread

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/threads/internal/core/collapse"
	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/data/source"
)

// Loader fetches the full comment list. Every call replaces the thread.
type Loader func(ctx context.Context) ([]corethread.Comment, error)

const loadTimeout = 10 * time.Second

type commentsLoadedMsg struct {
	comments []corethread.Comment
	err      error
}

// measureMsg arrives one turn after layout with a ticket per body to measure.
type measureMsg struct {
	tickets []collapse.Ticket
}

type resizeSettledMsg struct {
	seq int
}

type frameMsg struct{}

type fileChangedMsg struct {
	event source.Event
}

type markdownRenderedMsg struct {
	rendered map[string]mdEntry
	failed   map[string]mdJob
	err      error
}

func loadComments(load Loader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		comments, err := load(ctx)
		return commentsLoadedMsg{comments: comments, err: err}
	}
}

// requestMeasure defers measurement to a later turn so it reads the layout
// produced by the current one.
func requestMeasure(tickets []collapse.Ticket) tea.Cmd {
	if len(tickets) == 0 {
		return nil
	}
	return func() tea.Msg {
		return measureMsg{tickets: tickets}
	}
}

func scheduleResizeSettled(d time.Duration, seq int) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return resizeSettledMsg{seq: seq} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return resizeSettledMsg{seq: seq}
	})
}

func scheduleFrame(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// waitForChange blocks on the watcher channel. A closed channel ends the
// subscription.
func waitForChange(ch <-chan source.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{event: ev}
	}
}
