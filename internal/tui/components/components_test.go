package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/threads/pkg/tuitest"
)

func TestPad(t *testing.T) {
	assert.Empty(t, Pad(-1))
	assert.Empty(t, Pad(0))
	assert.Equal(t, "   ", Pad(3))
	assert.Len(t, Pad(maxCachedPad), maxCachedPad)
	assert.Len(t, Pad(maxCachedPad+5), maxCachedPad+5)
}

func TestHelpDialog_View(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpSection{
		{Title: "Comments", Entries: []HelpEntry{
			{Key: "enter", Desc: "show more / show less"},
			{Key: "e", Desc: "expand all"},
		}},
		{Title: "Empty"},
	})

	out := tuitest.StripANSI(d.View())
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "Comments")
	assert.Contains(t, out, "enter  show more / show less")
	assert.Contains(t, out, "e      expand all")
	assert.NotContains(t, out, "Empty")
}

func TestHelpDialog_Overlay(t *testing.T) {
	d := NewHelpDialog("Keys", []HelpSection{
		{Title: "General", Entries: []HelpEntry{{Key: "q", Desc: "quit"}}},
	})

	bg := "background line one\nbackground line two"
	out := tuitest.StripANSI(d.Overlay(bg, 40, 20))
	assert.Contains(t, out, "quit")
}
