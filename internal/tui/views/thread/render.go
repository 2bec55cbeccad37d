package thread

import (
	"fmt"
	"math"
	"strings"
	"time"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/threads/internal/core/styles"
	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/tui/components"
)

const (
	gutterWidth  = 2
	minWrapWidth = 10
	headerRows   = 1
)

// block is everything needed to draw one comment.
type block struct {
	comment  corethread.Comment
	quote    string
	hasQuote bool
	depth    int
	lines    []string
	visible  int
	toggle   string
	focused  bool
	age      string
}

// renderBlock draws a comment card: the author line, the visible body rows
// and the toggle when one exists.
func renderBlock(b block, indent int) string {
	prefix := gutter(b.focused) + guide(b.depth, indent)

	var out strings.Builder
	out.WriteString(prefix)
	out.WriteString(authorLine(b))

	for _, line := range b.lines[:min(b.visible, len(b.lines))] {
		out.WriteString("\n")
		out.WriteString(prefix)
		out.WriteString(line)
	}

	if b.toggle != "" {
		out.WriteString("\n")
		out.WriteString(prefix)
		out.WriteString(b.toggle)
	}

	return out.String()
}

func gutter(focused bool) string {
	if focused {
		return styles.CursorStyle.Render(styles.GlyphCursor) + " "
	}
	return components.Pad(gutterWidth)
}

// guide indents a block by depth, drawing a thread line in the last level.
func guide(depth, indent int) string {
	if depth == 0 || indent == 0 {
		return ""
	}
	return components.Pad((depth-1)*indent) + styles.ThreadGuideStyle.Render(styles.GlyphGuide) + components.Pad(indent-1)
}

func authorLine(b block) string {
	var line strings.Builder
	if b.comment.IsDeleted {
		line.WriteString(styles.DeletedAuthorStyle.Render(b.comment.DisplayAuthor()))
	} else {
		authorStyle := styles.AuthorStyle.Foreground(styles.ColorForString(b.comment.Author))
		line.WriteString(authorStyle.Render(b.comment.DisplayAuthor()))
	}

	if b.hasQuote {
		line.WriteString(" → ")
		line.WriteString(styles.QuoteStyle.Render("@" + b.quote))
	}

	if b.age != "" {
		line.WriteString(styles.AgeStyle.Render(" · " + b.age))
	}
	return line.String()
}

// wrapBody splits text into display rows no wider than width.
func wrapBody(text string, width int) []string {
	if text == "" {
		return nil
	}
	width = max(width, minWrapWidth)
	wrapped := ansi.Wrap(strings.ReplaceAll(text, "\t", "    "), width, "")
	return strings.Split(strings.TrimRight(wrapped, "\n"), "\n")
}

// styleBody colors plain body rows. Markdown output is already styled.
func styleBody(lines []string, deleted bool) []string {
	st := styles.BodyStyle
	if deleted {
		st = styles.DeletedBodyStyle
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = st.Render(l)
	}
	return out
}

// renderToggle draws the toggle label, slid right by offset columns while a
// transition is in flight.
func renderToggle(label string, progress float64, slide int, focused, icons bool, expanded bool) string {
	if icons {
		icon := styles.IconChevronDn
		if expanded {
			icon = styles.IconChevronUp
		}
		label = icon + " " + label
	}

	st := styles.ToggleStyle
	if focused {
		st = styles.ToggleFocusedStyle
	}

	offset := int(math.Round(float64(slide) * (1 - clamp01(progress))))
	return components.Pad(offset) + st.Render(label)
}

// visibleRows converts a clamped px height into whole terminal rows.
func visibleRows(clamped, rowPx float64, clipped bool, total int) int {
	if !clipped {
		return total
	}
	rows := int(math.Floor(clamped/rowPx + 1e-6))
	return min(max(rows, 1), total)
}

func renderHeader(title string, total, deleted int, icons bool, loading string) string {
	label := "Comments"
	if icons {
		label = styles.IconComments + " " + label
	}
	if title != "" {
		label += " · " + title
	}

	counts := fmt.Sprintf("%d", total)
	if deleted > 0 {
		counts += fmt.Sprintf(" · %d deleted", deleted)
	}

	line := styles.HeaderTitleStyle.Render(label) + " " + styles.HeaderCountStyle.Render("("+counts+")")
	if loading != "" {
		line += " " + loading
	}
	return line
}

func renderError(err error, width int) string {
	msg := ansi.Truncate("load failed: "+err.Error(), max(width, minWrapWidth), "…")
	return styles.ErrorBannerStyle.Render(msg)
}

// formatAge returns a compact relative age such as "5m" or "3d".
func formatAge(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < 0:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}

// height returns the number of rows a rendered string occupies.
func height(s string) int {
	return lipgloss.Height(s)
}
