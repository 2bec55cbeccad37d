// Package action defines the named actions keybindings resolve to.
package action

// Action is a resolved keybinding ready for the thread view to execute.
type Action struct {
	Type Type
	Key  string
	Help string
}

// Defaults returns the built-in key to action table.
func Defaults() map[string]Action {
	return map[string]Action{
		"j":      {Type: TypeDown, Help: "next comment"},
		"down":   {Type: TypeDown, Help: "next comment"},
		"k":      {Type: TypeUp, Help: "previous comment"},
		"up":     {Type: TypeUp, Help: "previous comment"},
		"g":      {Type: TypeTop, Help: "first comment"},
		"home":   {Type: TypeTop, Help: "first comment"},
		"G":      {Type: TypeBottom, Help: "last comment"},
		"end":    {Type: TypeBottom, Help: "last comment"},
		"pgdown": {Type: TypePageDown, Help: "page down"},
		"ctrl+d": {Type: TypePageDown, Help: "page down"},
		"pgup":   {Type: TypePageUp, Help: "page up"},
		"ctrl+u": {Type: TypePageUp, Help: "page up"},
		"enter":  {Type: TypeToggle, Help: "show more / show less"},
		"space":  {Type: TypeToggle, Help: "show more / show less"},
		"e":      {Type: TypeExpandAll, Help: "expand all"},
		"c":      {Type: TypeCollapseAll, Help: "collapse all"},
		"r":      {Type: TypeReload, Help: "reload"},
		"?":      {Type: TypeHelp, Help: "toggle help"},
		"q":      {Type: TypeQuit, Help: "quit"},
		"ctrl+c": {Type: TypeQuit, Help: "quit"},
	}
}
