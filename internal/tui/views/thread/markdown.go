package thread

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/threads/internal/core/styles"
)

// mdJob is one body waiting for markdown rendering at a wrap width.
type mdJob struct {
	src   string
	width int
}

type mdEntry struct {
	mdJob
	out string
}

// markdownCache holds glamour output per comment along with the source and
// width it was rendered for.
type markdownCache struct {
	rendered map[string]mdEntry
	pending  map[string]mdJob
}

func newMarkdownCache() *markdownCache {
	return &markdownCache{
		rendered: make(map[string]mdEntry),
		pending:  make(map[string]mdJob),
	}
}

// get returns the rendered body for id if it matches the job.
func (c *markdownCache) get(id string, job mdJob) (string, bool) {
	e, ok := c.rendered[id]
	if !ok || e.mdJob != job {
		return "", false
	}
	return e.out, true
}

// want marks job as pending and reports whether a render must be issued. A
// job already in flight is not issued twice.
func (c *markdownCache) want(id string, job mdJob) bool {
	if p, ok := c.pending[id]; ok && p == job {
		return false
	}
	c.pending[id] = job
	return true
}

func (c *markdownCache) forget(id string) {
	delete(c.rendered, id)
	delete(c.pending, id)
}

// store records results that still match a pending job and returns the IDs
// that changed. Results superseded by a newer job are dropped. Failed jobs
// are no longer pending, so the next layout issues them again.
func (c *markdownCache) store(msg markdownRenderedMsg) []string {
	for id, job := range msg.failed {
		if p, ok := c.pending[id]; ok && p == job {
			delete(c.pending, id)
		}
	}

	changed := make([]string, 0, len(msg.rendered))
	for id, e := range msg.rendered {
		if p, ok := c.pending[id]; !ok || p != e.mdJob {
			continue
		}
		delete(c.pending, id)
		c.rendered[id] = e
		changed = append(changed, id)
	}
	return changed
}

// renderMarkdown renders bodies off the event loop, one renderer per wrap
// width. Bodies that fail to render keep their plain layout until retried.
func renderMarkdown(jobs map[string]mdJob) tea.Cmd {
	if len(jobs) == 0 {
		return nil
	}
	return func() tea.Msg {
		return renderJobs(jobs)
	}
}

func renderJobs(jobs map[string]mdJob) markdownRenderedMsg {
	renderers := make(map[int]*glamour.TermRenderer)
	out := make(map[string]mdEntry, len(jobs))
	failed := make(map[string]mdJob)
	var firstErr error

	for id, job := range jobs {
		r, ok := renderers[job.width]
		if !ok {
			var err error
			r, err = glamour.NewTermRenderer(
				glamour.WithStyles(styles.GlamourStyle()),
				glamour.WithWordWrap(job.width),
			)
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("create markdown renderer: %w", err)
				}
				failed[id] = job
				continue
			}
			renderers[job.width] = r
		}

		rendered, err := r.Render(job.src)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("render markdown: %w", err)
			}
			failed[id] = job
			continue
		}
		out[id] = mdEntry{mdJob: job, out: strings.Trim(rendered, "\n")}
	}

	return markdownRenderedMsg{rendered: out, failed: failed, err: firstErr}
}
