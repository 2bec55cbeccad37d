package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/threads/internal/core/config"
	"github.com/colonyops/threads/internal/core/styles"
	"github.com/colonyops/threads/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "threads config validate [options]",
				Description: "Validates the configuration file, checking the truncation policy, line metrics, widths, and keybindings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one failed check.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationIssue          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	result := validationResult{
		Errors:   issuesFrom(cfg.ValidateDeep(cmd.flags.ConfigPath)),
		Warnings: cfg.Warnings(),
	}
	result.Valid = len(result.Errors) == 0

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, result)
	}

	if !result.Valid {
		return fmt.Errorf("invalid configuration: %d error(s)", len(result.Errors))
	}
	return nil
}

// issuesFrom flattens field errors from the validator into one issue each.
func issuesFrom(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, result validationResult) {
	out := c.Root().Writer

	header := styles.CommandHeaderStyle.Render("config") + " " + styles.DividerStyle.Render(cmd.flags.ConfigPath)
	_, _ = fmt.Fprintln(out, header)

	for _, w := range result.Warnings {
		line := fmt.Sprintf("%s: %s", w.Category, w.Message)
		if w.Item != "" {
			line = fmt.Sprintf("%s (%s): %s", w.Category, w.Item, w.Message)
		}
		_, _ = fmt.Fprintln(out, styles.HelpStyle.Render("  warn  ")+styles.CommandStyle.Render(line))
	}

	for _, e := range result.Errors {
		line := e.Message
		if e.Field != "" {
			line = e.Field + ": " + e.Message
		}
		_, _ = fmt.Fprintln(out, styles.ErrorBannerStyle.Render("  error ")+styles.CommandStyle.Render(line))
	}

	_, _ = fmt.Fprintln(out)
	if result.Valid {
		_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render("Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(out, styles.ErrorBannerStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
