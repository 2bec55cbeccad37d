package thread

import (
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/threads/internal/core/action"
	"github.com/colonyops/threads/internal/tui/components"
)

// KeyMap holds one binding per action. A binding collects every key that
// resolves to its action.
type KeyMap struct {
	bindings map[action.Type]key.Binding
}

// helpSections is the layout of the help dialog.
var helpSections = []struct {
	title string
	types []action.Type
}{
	{"Navigation", []action.Type{action.TypeDown, action.TypeUp, action.TypeTop, action.TypeBottom, action.TypePageDown, action.TypePageUp}},
	{"Comments", []action.Type{action.TypeToggle, action.TypeExpandAll, action.TypeCollapseAll}},
	{"General", []action.Type{action.TypeReload, action.TypeHelp, action.TypeQuit}},
}

// NewKeyMap builds bindings from a key to action table.
func NewKeyMap(resolved map[string]action.Action) KeyMap {
	keys := make(map[action.Type][]string)
	help := make(map[action.Type]string)
	for k, a := range resolved {
		keys[a.Type] = append(keys[a.Type], k)
		if help[a.Type] == "" {
			help[a.Type] = a.Help
		}
	}

	km := KeyMap{bindings: make(map[action.Type]key.Binding, len(keys))}
	for t, ks := range keys {
		sort.Slice(ks, func(i, j int) bool {
			if len(ks[i]) != len(ks[j]) {
				return len(ks[i]) < len(ks[j])
			}
			return ks[i] < ks[j]
		})
		km.bindings[t] = key.NewBinding(
			key.WithKeys(ks...),
			key.WithHelp(ks[0], help[t]),
		)
	}
	return km
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	resolved := action.Defaults()
	for k, a := range resolved {
		a.Key = k
		resolved[k] = a
	}
	return NewKeyMap(resolved)
}

// Resolve returns the action bound to msg, or TypeNone.
func (km KeyMap) Resolve(msg tea.KeyMsg) action.Type {
	for t, b := range km.bindings {
		if key.Matches(msg, b) {
			return t
		}
	}
	return action.TypeNone
}

// HelpSections returns every binding grouped for the help dialog. Keys
// bound to the same action are listed together.
func (km KeyMap) HelpSections() []components.HelpSection {
	out := make([]components.HelpSection, 0, len(helpSections))
	for _, sec := range helpSections {
		entries := make([]components.HelpEntry, 0, len(sec.types))
		for _, t := range sec.types {
			b, ok := km.bindings[t]
			if !ok {
				continue
			}
			entries = append(entries, components.HelpEntry{
				Key:  strings.Join(b.Keys(), "/"),
				Desc: b.Help().Desc,
			})
		}
		out = append(out, components.HelpSection{Title: sec.title, Entries: entries})
	}
	return out
}

// CompactHelp returns the bindings shown while the help line is collapsed.
func (km KeyMap) CompactHelp() []key.Binding {
	out := make([]key.Binding, 0, 3)
	for _, t := range []action.Type{action.TypeToggle, action.TypeHelp, action.TypeQuit} {
		if b, ok := km.bindings[t]; ok {
			out = append(out, b)
		}
	}
	return out
}
