package components

import "strings"

// maxCachedPad is the widest padding served from the cache.
const maxCachedPad = 200

var padCache = strings.Repeat(" ", maxCachedPad)

// Pad returns a string of n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= maxCachedPad {
		return padCache[:n]
	}
	return strings.Repeat(" ", n)
}
