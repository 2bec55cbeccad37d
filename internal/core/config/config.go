// Package config provides configuration loading and validation for threads.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/threads/internal/core/action"
	"github.com/colonyops/threads/internal/core/collapse"
	"github.com/colonyops/threads/internal/core/layout"
	"github.com/colonyops/threads/internal/core/styles"
	"github.com/colonyops/threads/internal/core/truncate"
)

// Config holds the application configuration.
type Config struct {
	Truncation  TruncationConfig      `yaml:"truncation"`
	Layout      LayoutConfig          `yaml:"layout"`
	Animation   AnimationConfig       `yaml:"animation"`
	Render      RenderConfig          `yaml:"render"`
	TUI         TUIConfig             `yaml:"tui"`
	Watch       WatchConfig           `yaml:"watch"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`
}

// TruncationConfig controls when a comment body is collapsed.
type TruncationConfig struct {
	MaxLines int     `yaml:"max_lines"` // visible lines before a body collapses
	Epsilon  float64 `yaml:"epsilon"`   // px tolerance for sub-pixel rounding
}

// LayoutConfig maps terminal rows onto the pixel model used for measurement.
type LayoutConfig struct {
	FontSize   float64    `yaml:"font_size"`   // px
	LineHeight LineHeight `yaml:"line_height"` // "normal" or px
}

// AnimationConfig controls the expand/collapse transition.
type AnimationConfig struct {
	Duration    time.Duration `yaml:"duration"`     // 0 is instant
	SlideOffset int           `yaml:"slide_offset"` // columns the toggle slides in from
	Frame       time.Duration `yaml:"frame"`        // redraw interval while animating
}

// RenderConfig controls how comment blocks are drawn.
type RenderConfig struct {
	Markdown bool `yaml:"markdown"`  // render bodies with glamour
	Indent   int  `yaml:"indent"`    // columns per nesting level
	MaxWidth int  `yaml:"max_width"` // widest body column, 0 for terminal width
	Icons    bool `yaml:"icons"`     // nerd font glyphs in the header and toggles
}

// TUIConfig holds interactive view settings.
type TUIConfig struct {
	Theme          string        `yaml:"theme"`
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
}

// WatchConfig controls automatic reload of the comment file.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Keybinding maps a key to a built-in action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name (toggle, expand_all, ...)
	Help   string `yaml:"help"`   // help text shown in the TUI, defaults to the action's
}

// LineHeight is either the "normal" keyword or an explicit px value.
type LineHeight struct {
	Normal bool
	Px     float64
}

// UnmarshalYAML accepts "normal" or a number.
func (l *LineHeight) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: line_height must be \"normal\" or a number", node.Line)
	}

	v := strings.TrimSpace(node.Value)
	if strings.EqualFold(v, "normal") || v == "" {
		*l = LineHeight{Normal: true}
		return nil
	}

	px, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil {
		return fmt.Errorf("line %d: line_height must be \"normal\" or a number: %w", node.Line, err)
	}
	*l = LineHeight{Px: px}
	return nil
}

// MarshalYAML writes the keyword or the number back out.
func (l LineHeight) MarshalYAML() (any, error) {
	if l.Normal {
		return "normal", nil
	}
	return l.Px, nil
}

func (l LineHeight) String() string {
	if l.Normal {
		return "normal"
	}
	return strconv.FormatFloat(l.Px, 'f', -1, 64)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	policy := truncate.DefaultPolicy()
	return Config{
		Truncation: TruncationConfig{
			MaxLines: policy.MaxLines,
			Epsilon:  policy.Epsilon,
		},
		Layout: LayoutConfig{
			FontSize:   layout.DefaultFontSize,
			LineHeight: LineHeight{Normal: true},
		},
		Animation: AnimationConfig{
			Duration:    150 * time.Millisecond,
			SlideOffset: 2,
			Frame:       16 * time.Millisecond,
		},
		Render: RenderConfig{
			Indent:   2,
			MaxWidth: 100,
		},
		TUI: TUIConfig{
			Theme:          styles.DefaultTheme,
			ResizeDebounce: 100 * time.Millisecond,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 100 * time.Millisecond,
		},
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults are used instead.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for options that cannot meaningfully be
// zero.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Layout.FontSize == 0 {
		c.Layout.FontSize = defaults.Layout.FontSize
	}
	if c.Animation.Frame == 0 {
		c.Animation.Frame = defaults.Animation.Frame
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Keybindings == nil {
		c.Keybindings = map[string]Keybinding{}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Truncation.MaxLines < 1 {
		return fmt.Errorf("truncation.max_lines must be at least 1")
	}

	if !isFiniteNonNegative(c.Truncation.Epsilon) {
		return fmt.Errorf("truncation.epsilon must be a non-negative number")
	}

	if !(c.Layout.FontSize > 0) || math.IsInf(c.Layout.FontSize, 0) {
		return fmt.Errorf("layout.font_size must be positive")
	}

	if !c.Layout.LineHeight.Normal && (!(c.Layout.LineHeight.Px > 0) || math.IsInf(c.Layout.LineHeight.Px, 0)) {
		return fmt.Errorf("layout.line_height must be \"normal\" or a positive number")
	}

	if c.Animation.Duration < 0 || c.Animation.Duration > collapse.MaxDuration {
		return fmt.Errorf("animation.duration must be between 0 and %s", collapse.MaxDuration)
	}

	if c.Animation.Frame < 0 {
		return fmt.Errorf("animation.frame cannot be negative")
	}

	if c.Animation.SlideOffset < 0 {
		return fmt.Errorf("animation.slide_offset cannot be negative")
	}

	if c.Render.Indent < 0 {
		return fmt.Errorf("render.indent cannot be negative")
	}

	if c.Render.MaxWidth < 0 {
		return fmt.Errorf("render.max_width cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a built-in theme (%s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	if c.TUI.ResizeDebounce < 0 || c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce intervals cannot be negative")
	}

	for key, kb := range c.Keybindings {
		if kb.Action == "" {
			return fmt.Errorf("keybinding %q must have an action", key)
		}
		if _, err := action.ParseType(kb.Action); err != nil {
			return fmt.Errorf("keybinding %q has invalid action: %w", key, err)
		}
	}

	return nil
}

// Policy returns the truncation policy described by the config.
func (c *Config) Policy() truncate.Policy {
	return truncate.Policy{
		MaxLines: c.Truncation.MaxLines,
		Epsilon:  c.Truncation.Epsilon,
	}
}

// RowStyle returns the computed style assigned to one terminal row.
func (c *Config) RowStyle() layout.Style {
	return layout.Style{
		FontSize:         c.Layout.FontSize,
		LineHeight:       c.Layout.LineHeight.Px,
		LineHeightNormal: c.Layout.LineHeight.Normal,
	}
}

// ResolvedKeybindings merges user keybindings over the defaults. User entries
// win for the same key.
func (c *Config) ResolvedKeybindings() map[string]action.Action {
	result := action.Defaults()
	for key := range result {
		a := result[key]
		a.Key = key
		result[key] = a
	}

	for key, kb := range c.Keybindings {
		t, err := action.ParseType(kb.Action)
		if err != nil {
			continue
		}
		help := kb.Help
		if help == "" {
			help = t.String()
		}
		result[key] = action.Action{Type: t, Key: key, Help: help}
	}

	return result
}

func isFiniteNonNegative(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0)
}
