package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings = map[string]Keybinding{
		"x": {Action: "toggle"},
	}

	err := cfg.ValidateDeep("")
	assert.NoError(t, err, "expected valid config")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	dir := t.TempDir()

	err := cfg.ValidateDeep(dir)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "is a directory")
}

func TestValidateDeep_ConfigFileMissingIsFine(t *testing.T) {
	cfg := validConfig(t)
	err := cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
}

func TestValidateDeep_LineHeightBelowFont(t *testing.T) {
	cfg := validConfig(t)
	cfg.Layout.LineHeight = LineHeight{Px: 10}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "layout.line_height")
	assert.Contains(t, fieldErrs[0].Err.Error(), "smaller than font_size")
}

func TestValidateDeep_NarrowMaxWidth(t *testing.T) {
	cfg := validConfig(t)
	cfg.Render.MaxWidth = 12

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "render.max_width")
}

func TestValidateDeep_NoQuitBinding(t *testing.T) {
	cfg := validConfig(t)
	cfg.Keybindings = map[string]Keybinding{
		"q":      {Action: "reload"},
		"ctrl+c": {Action: "reload"},
	}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Equal(t, "keybindings", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "quit")
}

func TestValidateDeep_MultipleErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Layout.LineHeight = LineHeight{Px: 4}
	cfg.Render.MaxWidth = 5

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Truncation.MaxLines = 0

	err := cfg.ValidateDeep("")
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	assert.NotErrorAs(t, err, &fieldErrs)
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Animation.Duration = 10 * time.Millisecond
	cfg.Animation.Frame = 20 * time.Millisecond
	cfg.Keybindings = map[string]Keybinding{"e": {Action: "reload"}}

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)

	categories := []string{warnings[0].Category, warnings[1].Category}
	assert.ElementsMatch(t, []string{"Animation", "Keybindings"}, categories)
}

func TestValidateConfigFile_Unreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	err := validateConfigFile(filepath.Join(locked, "config.yaml"))
	assert.Error(t, err)
}
