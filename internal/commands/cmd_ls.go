package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	corethread "github.com/colonyops/threads/internal/core/thread"
	"github.com/colonyops/threads/internal/data/source"
	"github.com/colonyops/threads/internal/tui/views/thread"
	"github.com/colonyops/threads/pkg/iojson"
)

const defaultPrintWidth = 80

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	width      int
	expand     bool
	plain      bool
	root       string
	input      iojson.FileReader[[]corethread.Comment]
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	cmd := &LsCmd{flags: flags}
	cmd.input.Decode = source.DecodeNamed
	return cmd
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "Print a thread without opening the viewer",
		UsageText: "threads ls [--json] [--expand] [--root <id>] [-f <file> | <file>]",
		Description: `Renders the thread once and prints it. Comments are truncated exactly as
in the viewer unless --expand is set.

Reads from --file, the first argument, or piped stdin. Use --json for one
JSON object per comment with its depth, verdict, and visible rows. Use
--root to print only the replies under one comment.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "wrap width in columns (defaults to the terminal width)",
				Destination: &cmd.width,
			},
			&cli.BoolFlag{
				Name:        "expand",
				Aliases:     []string{"e"},
				Usage:       "expand every truncated comment",
				Destination: &cmd.expand,
			},
			&cli.StringFlag{
				Name:        "root",
				Usage:       "print only the replies under this comment ID",
				Destination: &cmd.root,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "strip colors and styles",
				Destination: &cmd.plain,
			},
		},
		ShellComplete: CommentFileCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.input.File() == "" && c.Args().Present() {
		cmd.input.SetFile(c.Args().First())
	}

	comments, err := cmd.input.Read()
	if err != nil {
		if cmd.jsonOutput {
			_ = iojson.WriteError(c.Root().ErrWriter, "read comments", map[string]any{
				"file":  cmd.input.File(),
				"error": err.Error(),
			})
		}
		return fmt.Errorf("read comments: %w", err)
	}

	title := ""
	if f := cmd.input.File(); f != "" {
		title = filepath.Base(f)
	}

	v := thread.New(thread.Options{
		Config: cmd.flags.Config,
		Title:  title,
		Root:   cmd.root,
		Static: true,
	})
	v.SetComments(comments)
	v.SetSize(cmd.printWidth(), len(comments)+1)
	v.Flush()
	if cmd.expand {
		v.ExpandAll()
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, e := range v.Entries() {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode comment: %w", err)
			}
		}
		return nil
	}

	content := v.Content()
	if cmd.plain {
		content = ansi.Strip(content)
	}
	_, err = lipgloss.Fprintln(out, content)
	return err
}

func (cmd *LsCmd) printWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPrintWidth
}
