package action

import (
	"fmt"
	"strings"
)

// Type identifies the kind of action a keybinding triggers in the thread view.
type Type string

const (
	TypeNone        Type = ""
	TypeDown        Type = "down"
	TypeUp          Type = "up"
	TypeTop         Type = "top"
	TypeBottom      Type = "bottom"
	TypePageDown    Type = "page_down"
	TypePageUp      Type = "page_up"
	TypeToggle      Type = "toggle"
	TypeExpandAll   Type = "expand_all"
	TypeCollapseAll Type = "collapse_all"
	TypeReload      Type = "reload"
	TypeHelp        Type = "help"
	TypeQuit        Type = "quit"
)

var typeNames = []Type{
	TypeDown,
	TypeUp,
	TypeTop,
	TypeBottom,
	TypePageDown,
	TypePageUp,
	TypeToggle,
	TypeExpandAll,
	TypeCollapseAll,
	TypeReload,
	TypeHelp,
	TypeQuit,
}

// ErrInvalidType is returned by ParseType for unknown names.
var ErrInvalidType = fmt.Errorf("not a valid action, try [%s]", strings.Join(TypeNames(), ", "))

// TypeNames returns the names of every bindable action.
func TypeNames() []string {
	out := make([]string, len(typeNames))
	for i, t := range typeNames {
		out[i] = string(t)
	}
	return out
}

// ParseType converts a config string into a Type.
func ParseType(name string) (Type, error) {
	n := Type(strings.ToLower(strings.TrimSpace(name)))
	for _, t := range typeNames {
		if t == n {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%q is %w", name, ErrInvalidType)
}

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is a bindable action.
func (t Type) IsValid() bool {
	_, err := ParseType(string(t))
	return err == nil
}
