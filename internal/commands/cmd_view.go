package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/data/source"
	"github.com/colonyops/threads/internal/profiler"
	"github.com/colonyops/threads/internal/tui"
	"github.com/colonyops/threads/internal/tui/views/thread"
)

type ViewCmd struct {
	flags *Flags

	// flags
	title        string
	root         string
	noWatch      bool
	profilerPort int
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Flags returns the view flags for registration on the root command
func (cmd *ViewCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Usage:       "header title (defaults to the file name)",
			Destination: &cmd.title,
		},
		&cli.StringFlag{
			Name:        "root",
			Usage:       "show only the replies under this comment ID",
			Destination: &cmd.root,
		},
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload when the comment file changes",
			Sources:     cli.EnvVars("THREADS_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("THREADS_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the view command to the application. Its flags live on the
// root command and are inherited.
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open a comment file in the interactive viewer",
		UsageText: "threads view [options] <file>",
		Description: `Renders the thread full screen. Long comments are collapsed to a few lines
with a "Show more" toggle; press enter on a comment to expand or collapse it.

The file is reloaded when it changes on disk unless --no-watch is set.
Expanded comments stay expanded across reloads.`,
		ShellComplete: CommentFileCompleter(),
		Action:        cmd.Run,
	})

	return app
}

// Run executes the viewer. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("no comment file given. Run 'threads --help' for usage")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open comment file: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	cfg := cmd.flags.Config

	var changes <-chan source.Event
	if cfg.Watch.Enabled && !cmd.noWatch {
		watcher, err := source.NewWatcher(path, cfg.Watch.Debounce)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("file watching disabled")
		} else {
			defer func() { _ = watcher.Close() }()
			changes = watcher.Watch(ctx)
		}
	}

	title := cmd.title
	if title == "" {
		title = filepath.Base(path)
	}

	m := tui.New(tui.Options{
		Thread: thread.Options{
			Config: cfg,
			Title:  title,
			Root:   cmd.root,
			Load: func(ctx context.Context) ([]corethread.Comment, error) {
				return source.LoadFile(ctx, path)
			},
			Changes: changes,
		},
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
