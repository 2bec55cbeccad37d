// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/threads/internal/core/styles"
)

// HelpEntry is one key and what it does.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection groups entries under a title.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog lists key bindings in a bordered box.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog. Sections without entries are dropped.
func NewHelpDialog(title string, sections []HelpSection) *HelpDialog {
	kept := sections[:0:0]
	for _, s := range sections {
		if len(s.Entries) > 0 {
			kept = append(kept, s)
		}
	}
	return &HelpDialog{title: title, sections: kept}
}

// View renders the dialog box.
func (h *HelpDialog) View() string {
	keyWidth := 0
	for _, s := range h.sections {
		for _, e := range s.Entries {
			keyWidth = max(keyWidth, lipgloss.Width(e.Key))
		}
	}

	var lines []string
	for i, s := range h.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.DialogSectionStyle.Render(s.Title))
		for _, e := range s.Entries {
			key := e.Key + Pad(keyWidth-lipgloss.Width(e.Key)+2)
			lines = append(lines, styles.DialogKeyStyle.Render(key)+styles.DialogDescStyle.Render(e.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.DialogTitleStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		"",
		styles.HelpStyle.Render("? close"),
	)
	return styles.DialogStyle.Render(content)
}

// Overlay renders the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
