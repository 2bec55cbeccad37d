package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONLines(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "threads.log")

	l, closer, err := New("debug", file)
	require.NoError(t, err)
	l.Debug().Str("comment_id", "c1").Msg("measured")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &line))
	assert.Equal(t, "measured", line["message"])
	assert.Equal(t, "c1", line["comment_id"])
	assert.Contains(t, line, "pid")
}

func TestNew_AppendsAcrossRuns(t *testing.T) {
	file := filepath.Join(t.TempDir(), "threads.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("info", file)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)
}

func TestNew_Levels(t *testing.T) {
	l, _, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l, _, err = New(" WARN ", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	_, _, err = New("loud", "")
	assert.Error(t, err)
}
