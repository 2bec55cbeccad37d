// Package thread is the Bubble Tea view for a threaded comment section with
// show more / show less truncation.
package thread

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/threads/internal/core/action"
	"github.com/colonyops/threads/internal/core/collapse"
	"github.com/colonyops/threads/internal/core/config"
	"github.com/colonyops/threads/internal/core/logging"
	"github.com/colonyops/threads/internal/core/styles"
	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/core/truncate"
	"github.com/colonyops/threads/internal/data/source"
	"github.com/colonyops/threads/internal/tui/components"
)

// chromeRows are the rows outside the viewport: header, status and footer.
const chromeRows = 3

// Options configures a thread View.
type Options struct {
	Config  *config.Config
	Title   string              // shown in the header, usually the file name
	Root    string              // render only the replies under this comment, "" for the whole thread
	Static  bool                // non-interactive render with no focused comment
	Load    Loader              // nil for views fed through SetComments
	Changes <-chan source.Event // file change notifications, nil to disable
	Now     func() time.Time    // clock for ages and animation, defaults to time.Now
}

// View is the Bubble Tea sub-model for a comment thread.
type View struct {
	cfg     *config.Config
	policy  truncate.Policy
	keys    KeyMap
	title   string
	root    string
	load    Loader
	changes <-chan source.Event
	now     func() time.Time
	log     zerolog.Logger

	tree     *corethread.Tree
	registry *collapse.Registry
	host     *host
	markdown *markdownCache
	bodies   map[string][]string // full body rows per comment at the current width
	order    []string            // comment IDs in display order
	depths   map[string]int
	heights  map[string]int // rendered block height per comment
	content  string

	focus     int
	viewport  viewport.Model
	spinner   spinner.Model
	loading   bool
	loadErr   error
	showHelp  bool
	animating bool

	width     int
	height    int
	resizeSeq int
}

// New creates a thread View.
func New(opts Options) View {
	cfg := opts.Config
	keys := DefaultKeyMap()
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	} else {
		keys = NewKeyMap(cfg.ResolvedKeybindings())
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	focus := 0
	if opts.Static {
		focus = -1
	}

	return View{
		cfg:      cfg,
		policy:   cfg.Policy(),
		keys:     keys,
		title:    opts.Title,
		root:     opts.Root,
		load:     opts.Load,
		changes:  opts.Changes,
		now:      now,
		log:      logging.Component("thread-view"),
		tree:     corethread.New(nil),
		registry: collapse.NewRegistry(cfg.Animation.Duration),
		host:     newHost(cfg.RowStyle()),
		markdown: newMarkdownCache(),
		bodies:   make(map[string][]string),
		depths:   make(map[string]int),
		heights:  make(map[string]int),
		viewport: viewport.New(),
		focus:    focus,
		spinner:  s,
		loading:  opts.Load != nil,
	}
}

// Init returns the initial commands for the thread view.
func (v View) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(v.changes)}
	if v.load != nil {
		cmds = append(cmds, loadComments(v.load), v.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the thread view.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return v.handleResize(msg)
	case resizeSettledMsg:
		if msg.seq != v.resizeSeq {
			return v, nil
		}
		return v, v.measure(v.order)
	case commentsLoadedMsg:
		return v.handleLoaded(msg)
	case measureMsg:
		v.applyMeasurements(msg.tickets)
		v.refresh()
		return v, nil
	case markdownRenderedMsg:
		return v.handleMarkdown(msg)
	case frameMsg:
		return v.handleFrame()
	case fileChangedMsg:
		v.log.Debug().Str("path", msg.event.Path).Msg("comment file changed")
		if v.load == nil {
			return v, waitForChange(v.changes)
		}
		v.loading = true
		return v, tea.Batch(loadComments(v.load), waitForChange(v.changes), v.spinner.Tick)
	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		if v.showHelp {
			return v.handleHelpKey(msg)
		}
		return v.handleKey(msg)
	case tea.MouseWheelMsg:
		if v.showHelp {
			return v, nil
		}
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the thread view.
func (v View) View() string {
	var b strings.Builder

	loading := ""
	if v.loading {
		loading = v.spinner.View()
	}
	b.WriteString(renderHeader(v.title, v.tree.Len(), v.tree.Deleted(), v.cfg.Render.Icons, loading))
	b.WriteString("\n")

	if v.loadErr != nil {
		b.WriteString(renderError(v.loadErr, v.width))
	}
	b.WriteString("\n")

	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	if v.showHelp {
		dialog := components.NewHelpDialog("Keyboard shortcuts", v.keys.HelpSections())
		return dialog.Overlay(b.String(), v.width, v.height)
	}
	return b.String()
}

// SetSize updates the view dimensions and lays the thread out again.
func (v *View) SetSize(width, height int) tea.Cmd {
	v.width = width
	v.height = height
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(max(height-chromeRows, 1))
	if width <= 0 {
		v.host.invalidate()
		return nil
	}

	cmd := renderMarkdown(v.relayout())
	v.refresh()
	v.anchorFocus()
	return cmd
}

// SetComments replaces the thread. Controllers survive for comment IDs that
// are still present; the rest are destroyed.
func (v *View) SetComments(comments []corethread.Comment) tea.Cmd {
	focused := v.FocusedID()
	v.syncTree(comments)
	v.restoreFocus(focused)

	md := renderMarkdown(v.relayout())
	v.refresh()
	v.anchorFocus()
	return tea.Batch(md, v.measure(v.order))
}

// Flush completes pending markdown rendering and measures every body
// synchronously. Interactive views get the same results through commands;
// Flush serves non-interactive output.
func (v *View) Flush() {
	for jobs := v.relayout(); len(jobs) > 0; jobs = v.relayout() {
		msg := renderJobs(jobs)
		if len(v.markdown.store(msg)) == 0 {
			break
		}
	}

	tickets := make([]collapse.Ticket, 0, len(v.order))
	for _, id := range v.order {
		if t, ok := v.registry.Request(id); ok {
			tickets = append(tickets, t)
		}
	}
	v.applyMeasurements(tickets)
	v.refresh()
}

// ExpandAll expands every overflowing comment without animating.
func (v *View) ExpandAll() int {
	now := v.now()
	n := v.registry.ExpandAll(now)
	v.registry.Settle(now.Add(collapse.MaxDuration))
	v.refresh()
	return n
}

// Content returns the full rendered thread, independent of scrolling.
func (v View) Content() string {
	return v.content
}

// FocusedID returns the ID of the focused comment, or "" for an empty thread.
func (v View) FocusedID() string {
	if v.focus < 0 || v.focus >= len(v.order) {
		return ""
	}
	return v.order[v.focus]
}

// Loading returns true while a load is in flight.
func (v View) Loading() bool {
	return v.loading
}

// Err returns the last load error, cleared by the next successful load.
func (v View) Err() error {
	return v.loadErr
}

func (v View) handleResize(msg tea.WindowSizeMsg) (View, tea.Cmd) {
	first := v.width == 0
	cmd := v.SetSize(msg.Width, msg.Height)
	if first {
		return v, tea.Batch(cmd, v.measure(v.order))
	}

	v.resizeSeq++
	return v, tea.Batch(cmd, scheduleResizeSettled(v.cfg.TUI.ResizeDebounce, v.resizeSeq))
}

func (v View) handleLoaded(msg commentsLoadedMsg) (View, tea.Cmd) {
	v.loading = false
	if msg.err != nil {
		v.loadErr = msg.err
		v.log.Error().Err(msg.err).Msg("failed to load comments")
		return v, nil
	}

	v.loadErr = nil
	return v, v.SetComments(msg.comments)
}

func (v View) handleMarkdown(msg markdownRenderedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		v.log.Warn().Err(msg.err).Msg("markdown rendering failed")
	}

	changed := v.markdown.store(msg)
	if len(changed) == 0 {
		return v, nil
	}

	cmd := renderMarkdown(v.relayout())
	v.refresh()
	return v, tea.Batch(cmd, v.measure(changed))
}

func (v View) handleFrame() (View, tea.Cmd) {
	now := v.now()
	v.refresh()
	if v.registry.Animating(now) {
		return v, scheduleFrame(v.cfg.Animation.Frame)
	}

	v.animating = false
	v.registry.Settle(now)
	v.refresh()
	v.anchorFocus()
	return v, nil
}

func (v View) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	now := v.now()

	switch v.keys.Resolve(msg) {
	case action.TypeQuit:
		return v, tea.Quit
	case action.TypeDown:
		v.moveFocus(v.focus + 1)
	case action.TypeUp:
		v.moveFocus(v.focus - 1)
	case action.TypeTop:
		v.moveFocus(0)
	case action.TypeBottom:
		v.moveFocus(len(v.order) - 1)
	case action.TypePageDown:
		v.viewport.PageDown()
		v.focusFirstVisible()
	case action.TypePageUp:
		v.viewport.PageUp()
		v.focusFirstVisible()
	case action.TypeToggle:
		if ctrl := v.registry.Get(v.FocusedID()); ctrl != nil && ctrl.Toggle(now) {
			return v, v.startAnimation(now)
		}
	case action.TypeExpandAll:
		if v.registry.ExpandAll(now) > 0 {
			return v, v.startAnimation(now)
		}
	case action.TypeCollapseAll:
		if v.registry.CollapseAll(now) > 0 {
			return v, v.startAnimation(now)
		}
	case action.TypeReload:
		if v.load != nil && !v.loading {
			v.loading = true
			return v, tea.Batch(loadComments(v.load), v.spinner.Tick)
		}
	case action.TypeHelp:
		v.showHelp = !v.showHelp
	}
	return v, nil
}

// handleHelpKey handles keys while the help dialog is open. Everything but
// closing the dialog or ctrl+c is swallowed.
func (v View) handleHelpKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return v, tea.Quit
	case "esc", "?", "q":
		v.showHelp = false
		return v, nil
	}
	if v.keys.Resolve(msg) == action.TypeHelp {
		v.showHelp = false
	}
	return v, nil
}

// syncTree rebuilds the tree and mounts or unmounts per-comment state so it
// matches the new comment set.
func (v *View) syncTree(comments []corethread.Comment) {
	v.tree = corethread.New(comments)
	for _, issue := range v.tree.Issues() {
		v.log.Warn().
			Str("kind", issue.Kind.String()).
			Str("comment", issue.CommentID).
			Str("parent", issue.ParentID).
			Int("position", issue.Position).
			Msg("malformed comment reference")
	}

	if v.root != "" && v.tree.Depth(v.root) < 0 {
		v.log.Warn().Str("root", v.root).Msg("root comment not found")
	}

	order := make([]string, 0, v.tree.Len())
	depths := make(map[string]int, v.tree.Len())
	v.tree.Walk(v.root, func(c corethread.Comment, depth int) bool {
		order = append(order, c.ID)
		depths[c.ID] = depth
		return true
	})
	v.order = order
	v.depths = depths

	for _, id := range v.registry.Sync(order) {
		v.host.unmount(id)
		v.markdown.forget(id)
		delete(v.bodies, id)
		delete(v.heights, id)
	}
	for _, id := range order {
		v.host.mount(id)
	}
}

func (v *View) restoreFocus(id string) {
	for i, o := range v.order {
		if o == id {
			v.focus = i
			return
		}
	}
	v.focus = min(v.focus, max(len(v.order)-1, 0))
}

func (v *View) contentWidth() int {
	w := v.width - gutterWidth
	if v.cfg.Render.MaxWidth > 0 {
		w = min(w, v.cfg.Render.MaxWidth)
	}
	return w
}

func (v *View) bodyWidth(depth int) int {
	return max(v.contentWidth()-depth*v.cfg.Render.Indent, minWrapWidth)
}

// relayout wraps every body at its current width and updates the layout
// host. It returns the markdown renders that must be issued.
func (v *View) relayout() map[string]mdJob {
	if v.width <= 0 {
		return nil
	}

	var jobs map[string]mdJob
	for _, id := range v.order {
		c, _ := v.tree.Get(id)
		text := c.DisplayContent()
		width := v.bodyWidth(v.depths[id])

		var lines []string
		if v.cfg.Render.Markdown && !c.IsDeleted && text != "" {
			job := mdJob{src: text, width: width}
			if out, ok := v.markdown.get(id, job); ok {
				lines = strings.Split(out, "\n")
			} else {
				lines = styleBody(wrapBody(text, width), false)
				if v.markdown.want(id, job) {
					if jobs == nil {
						jobs = make(map[string]mdJob)
					}
					jobs[id] = job
				}
			}
		} else {
			lines = styleBody(wrapBody(text, width), c.IsDeleted)
		}

		v.bodies[id] = lines
		m := v.host.mount(id)
		m.body.rows = len(lines)
		m.body.empty = text == ""
		m.body.laidOut = true
	}
	return jobs
}

// measure issues tickets for ids and defers their measurement to the next
// turn. Nothing is measured before the first layout.
func (v *View) measure(ids []string) tea.Cmd {
	if v.width <= 0 {
		return nil
	}
	tickets := make([]collapse.Ticket, 0, len(ids))
	for _, id := range ids {
		if t, ok := v.registry.Request(id); ok {
			tickets = append(tickets, t)
		}
	}
	return requestMeasure(tickets)
}

func (v *View) applyMeasurements(tickets []collapse.Ticket) {
	for _, t := range tickets {
		ctx := logging.WithCommentID(context.Background(), t.ID)

		verdict, err := truncate.Evaluate(v.host.body(t.ID), v.policy)
		if err != nil {
			if truncate.IsUnavailable(err) {
				v.log.Debug().Ctx(ctx).Err(err).Msg("body not measurable yet")
			} else {
				v.log.Warn().Ctx(ctx).Err(err).Msg("measurement failed")
			}
			continue
		}

		if err := v.registry.Apply(t, verdict); err != nil {
			if errors.Is(err, collapse.ErrStale) {
				v.log.Debug().Ctx(ctx).
					Uint64("generation", t.Generation).
					Uint64("seq", t.Seq).
					Msg("discarded stale measurement")
			}
			continue
		}
		v.log.Debug().Ctx(ctx).Str("verdict", verdict.String()).Msg("measured")
	}
}

// refresh draws every block, positions the layout host and hands the result
// to the viewport.
func (v *View) refresh() {
	if v.width <= 0 {
		return
	}

	if len(v.order) == 0 {
		v.content = styles.HelpStyle.Render("  No comments yet")
		v.viewport.SetContent(v.content)
		return
	}

	now := v.now()
	var b strings.Builder
	row := 0
	for i, id := range v.order {
		blk := v.blockFor(id, i == v.focus, now)
		rendered := renderBlock(blk, v.cfg.Render.Indent)
		v.host.place(id, row, headerRows)

		h := height(rendered)
		v.heights[id] = h
		row += h + 1

		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(rendered)
	}

	v.content = b.String()
	v.viewport.SetContent(v.content)
}

func (v *View) blockFor(id string, focused bool, now time.Time) block {
	c, _ := v.tree.Get(id)
	quote, hasQuote := v.tree.ResolveParentAuthor(c)
	lines := v.bodies[id]

	blk := block{
		comment:  c,
		quote:    quote,
		hasQuote: hasQuote,
		depth:    v.depths[id],
		lines:    lines,
		visible:  len(lines),
		focused:  focused,
		age:      formatAge(now, c.CreatedAt),
	}

	ctrl := v.registry.Get(id)
	m, ok := v.host.mounts[id]
	if ctrl == nil || !ok {
		return blk
	}

	full, err := m.body.ContentHeight()
	if err != nil {
		return blk
	}
	clamped, clipped := ctrl.ClampHeight(now, v.policy.Limit(m.body), full)
	blk.visible = visibleRows(clamped, v.host.rowPx(), clipped, len(lines))

	if ctrl.ToggleVisible() {
		blk.toggle = renderToggle(
			ctrl.Label(),
			ctrl.Progress(now),
			v.cfg.Animation.SlideOffset,
			focused,
			v.cfg.Render.Icons,
			ctrl.State() == collapse.Expanded,
		)
	}
	return blk
}

func (v *View) startAnimation(now time.Time) tea.Cmd {
	v.refresh()
	v.anchorFocus()

	if !v.registry.Animating(now) {
		v.registry.Settle(now)
		v.refresh()
		return nil
	}
	if v.animating {
		return nil
	}
	v.animating = true
	return scheduleFrame(v.cfg.Animation.Frame)
}

func (v *View) moveFocus(i int) {
	if len(v.order) == 0 {
		return
	}
	v.focus = min(max(i, 0), len(v.order)-1)
	v.refresh()
	v.anchorFocus()
}

// anchorFocus scrolls the viewport so the focused card is visible, preferring
// its top edge when it is taller than the viewport.
func (v *View) anchorFocus() {
	id := v.FocusedID()
	top, ok := v.host.rowOf(id)
	if !ok {
		return
	}
	bottom := top + v.heights[id] - 1
	offset := v.viewport.YOffset()
	visible := max(v.height-chromeRows, 1)

	switch {
	case top < offset:
		v.viewport.SetYOffset(top)
	case bottom >= offset+visible:
		v.viewport.SetYOffset(min(top, bottom-visible+1))
	}
}

// focusFirstVisible moves focus to the first card starting inside the
// viewport after a page scroll.
func (v *View) focusFirstVisible() {
	offset := v.viewport.YOffset()
	for i, id := range v.order {
		if top, ok := v.host.rowOf(id); ok && top >= offset {
			v.focus = i
			v.refresh()
			return
		}
	}
}

func (v View) renderHelp() string {
	bindings := v.keys.CompactHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.HelpStyle.Render(strings.Join(parts, " • "))
}
