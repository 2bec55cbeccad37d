package thread

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/threads/internal/core/action"
	"github.com/colonyops/threads/pkg/tuitest"
)

func asKeyMsg(t *testing.T, msg tea.Msg) tea.KeyMsg {
	t.Helper()
	k, ok := msg.(tea.KeyMsg)
	require.True(t, ok, "%T is not a key message", msg)
	return k
}

func TestKeyMap_Resolve(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.Msg
		want action.Type
	}{
		{name: "j", msg: tuitest.KeyPress('j'), want: action.TypeDown},
		{name: "down arrow", msg: tuitest.KeyDown(), want: action.TypeDown},
		{name: "enter", msg: tuitest.KeyEnter(), want: action.TypeToggle},
		{name: "space", msg: tuitest.KeySpace(), want: action.TypeToggle},
		{name: "shift G", msg: tuitest.KeyText("G"), want: action.TypeBottom},
		{name: "ctrl+c", msg: tuitest.KeyCtrl('c'), want: action.TypeQuit},
		{name: "unbound", msg: tuitest.KeyPress('z'), want: action.TypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyMsg := asKeyMsg(t, tt.msg)
			assert.Equal(t, tt.want, km.Resolve(keyMsg))
		})
	}
}

func TestKeyMap_UserOverrides(t *testing.T) {
	resolved := map[string]action.Action{
		"x": {Type: action.TypeToggle, Key: "x", Help: "flip"},
		"q": {Type: action.TypeQuit, Key: "q", Help: "quit"},
	}
	km := NewKeyMap(resolved)

	assert.Equal(t, action.TypeToggle, km.Resolve(asKeyMsg(t, tuitest.KeyPress('x'))))
	assert.Equal(t, action.TypeNone, km.Resolve(asKeyMsg(t, tuitest.KeyEnter())))

	compact := km.CompactHelp()
	require.Len(t, compact, 2)
	assert.Equal(t, "x", compact[0].Help().Key)
	assert.Equal(t, "flip", compact[0].Help().Desc)
}

func TestKeyMap_HelpSections(t *testing.T) {
	sections := DefaultKeyMap().HelpSections()
	require.Len(t, sections, 3)
	assert.Equal(t, "Navigation", sections[0].Title)

	comments := sections[1]
	require.NotEmpty(t, comments.Entries)
	assert.Equal(t, "enter/space", comments.Entries[0].Key)
	assert.Equal(t, "show more / show less", comments.Entries[0].Desc)
}
