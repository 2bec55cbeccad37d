package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/threads/internal/core/config"
	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/tui/testutil"
	"github.com/colonyops/threads/internal/tui/views/thread"
	"github.com/colonyops/threads/pkg/tuitest"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Animation.Duration = 0
	return New(Options{Thread: thread.Options{
		Config: &cfg,
		Title:  "thread.json",
		Now:    testutil.Clock(time.Minute),
	}})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModel_ViewIsFullScreen(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tuitest.WindowSize(60, 20))

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Contains(t, testutil.StripANSI(m.Thread().View()), "Comments · thread.json (0)")
}

func TestModel_ForwardsToThread(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tuitest.WindowSize(60, 20))

	tv := m.Thread()
	tv.SetComments([]corethread.Comment{
		testutil.Comment("a", "", "alice", "hello"),
		testutil.Comment("b", "a", "bob", "hi"),
	})
	m.view = tv

	m, _ = update(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, "b", m.Thread().FocusedID())
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tuitest.KeyPress('q'))
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.True(t, m.quitting)
	assert.False(t, m.View().AltScreen)
}
