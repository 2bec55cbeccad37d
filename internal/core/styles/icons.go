package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Thread glyphs.
var (
	IconReply     = "" // nf-fa-reply
	IconDeleted   = "" // nf-fa-trash
	IconChevronDn = "" // nf-fa-chevron_down
	IconChevronUp = "" // nf-fa-chevron_up
	IconComments  = "" // nf-fa-comments
)

// Plain glyphs that do not depend on a patched font.
const (
	GlyphGuide  = "│"
	GlyphCursor = "▌"
)
