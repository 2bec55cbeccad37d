// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Thread view styles.
	HeaderTitleStyle   lipgloss.Style
	HeaderCountStyle   lipgloss.Style
	AuthorStyle        lipgloss.Style
	DeletedAuthorStyle lipgloss.Style
	AgeStyle           lipgloss.Style
	QuoteStyle         lipgloss.Style
	BodyStyle          lipgloss.Style
	DeletedBodyStyle   lipgloss.Style
	ToggleStyle        lipgloss.Style
	ToggleFocusedStyle lipgloss.Style
	ThreadGuideStyle   lipgloss.Style
	CursorStyle        lipgloss.Style
	ErrorBannerStyle   lipgloss.Style
	HelpStyle          lipgloss.Style
	SpinnerStyle       lipgloss.Style

	// Dialog styles.
	DialogStyle        lipgloss.Style
	DialogTitleStyle   lipgloss.Style
	DialogSectionStyle lipgloss.Style
	DialogKeyStyle     lipgloss.Style
	DialogDescStyle    lipgloss.Style
)

// ColorPool is used for deterministic color hashing of authors.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	HeaderTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HeaderCountStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	AuthorStyle = lipgloss.NewStyle().Bold(true)
	DeletedAuthorStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	AgeStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	QuoteStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	BodyStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DeletedBodyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ToggleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	ToggleFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true)

	ThreadGuideStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)
	CursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	DialogTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	DialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	DialogKeyStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DialogDescStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	ColorPool = authorColors(p, 8)
}

// authorColors spreads n colors between the palette's primary and success
// colors in HCL space so neighbouring authors stay distinguishable.
func authorColors(p Palette, n int) []color.Color {
	from, ok1 := colorful.MakeColor(p.Primary)
	to, ok2 := colorful.MakeColor(p.Success)
	if !ok1 || !ok2 || n < 2 {
		return []color.Color{p.Primary, p.Secondary, p.Success, p.Warning, p.Error}
	}

	pool := make([]color.Color, 0, n+2)
	for i := range n {
		t := float64(i) / float64(n-1)
		pool = append(pool, lipgloss.Color(from.BlendHcl(to, t).Clamped().Hex()))
	}
	return append(pool, p.Warning, p.Error)
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
