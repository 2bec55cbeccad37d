package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/threads/internal/core/action"
	"github.com/colonyops/threads/internal/core/layout"
)

// minBodyWidth is the narrowest body column a comment can be wrapped to.
const minBodyWidth = 20

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility and cross-field checks. The configPath
// argument specifies the config file location to validate (empty string
// skips the config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("layout.line_height", c.RowStyle(), rowFitsFont),
		criterio.Run("render.max_width", c.Render, bodyWidthFits),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Animation.Duration > 0 && c.Animation.Frame >= c.Animation.Duration {
		warnings = append(warnings, ValidationWarning{
			Category: "Animation",
			Item:     "frame",
			Message:  fmt.Sprintf("frame interval %s is not shorter than duration %s; transitions will jump", c.Animation.Frame, c.Animation.Duration),
		})
	}

	if !c.Watch.Enabled && c.Watch.Debounce != DefaultConfig().Watch.Debounce {
		warnings = append(warnings, ValidationWarning{
			Category: "Watch",
			Item:     "debounce",
			Message:  "debounce is set but watching is disabled",
		})
	}

	defaults := action.Defaults()
	for key, kb := range c.Keybindings {
		if def, ok := defaults[key]; ok && def.Type.String() != kb.Action {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     key,
				Message:  fmt.Sprintf("replaces the default %q binding", def.Type),
			})
		}
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// rowFitsFont rejects an explicit line height smaller than the font, which
// would make every wrapped row overlap the next.
func rowFitsFont(s layout.Style) error {
	if s.LineHeightNormal {
		return nil
	}
	if s.LineHeight < s.FontSize {
		return fmt.Errorf("%gpx is smaller than font_size %gpx", s.LineHeight, s.FontSize)
	}
	return nil
}

// bodyWidthFits checks that a few nesting levels still leave room for text.
func bodyWidthFits(r RenderConfig) error {
	if r.MaxWidth == 0 {
		return nil
	}
	if r.MaxWidth < minBodyWidth+r.Indent*4 {
		return fmt.Errorf("%d columns leaves no room for nested comments at indent %d (need at least %d)",
			r.MaxWidth, r.Indent, minBodyWidth+r.Indent*4)
	}
	return nil
}

// validateKeybindings checks that key names are usable and that the view can
// always be quit.
func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder
	for key := range c.Keybindings {
		if key == "" {
			errs = errs.Append("keybindings", fmt.Errorf("empty key name"))
		}
	}

	canQuit := false
	for _, a := range c.ResolvedKeybindings() {
		if a.Type == action.TypeQuit {
			canQuit = true
			break
		}
	}
	if !canQuit {
		errs = errs.Append("keybindings", fmt.Errorf("no key is bound to %q", action.TypeQuit))
	}

	return errs.ToError()
}
