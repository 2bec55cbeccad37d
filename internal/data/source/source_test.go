package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonList = `[
  {"id": "1", "author": "alice", "content": "root", "created_at": "2025-01-01T12:00:00Z"},
  {"id": "2", "parent_id": "1", "author": "bob", "content": "reply", "is_deleted": true, "created_at": "2025-01-01T12:05:00Z"}
]`

const yamlDoc = `comments:
  - id: "1"
    author: alice
    content: root
    created_at: 2025-01-01T12:00:00Z
  - id: "2"
    parent_id: "1"
    author: bob
    content: reply
    is_deleted: true
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"thread.json", FormatJSON},
		{"thread.JSON", FormatJSON},
		{"thread.yaml", FormatYAML},
		{"thread.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := DetectFormat("thread.toml")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"json list", "thread.json", jsonList},
		{"json document", "thread.json", `{"comments": ` + jsonList + `}`},
		{"yaml document", "thread.yaml", yamlDoc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments, err := LoadFile(context.Background(), writeFile(t, tt.file, tt.body))
			require.NoError(t, err)
			require.Len(t, comments, 2)

			assert.Equal(t, "1", comments[0].ID)
			assert.True(t, comments[0].IsTopLevel())
			assert.Equal(t, "1", comments[1].ParentID)
			assert.True(t, comments[1].IsDeleted)
			assert.Equal(t, 2025, comments[0].CreatedAt.Year())
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(context.Background(), writeFile(t, "thread.txt", jsonList))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(context.Background(), writeFile(t, "thread.json", `[{"id": 1`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
}

func TestDecode_Empty(t *testing.T) {
	comments, err := Decode(strings.NewReader("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestDecodeNamed_Sniffs(t *testing.T) {
	comments, err := DecodeNamed(strings.NewReader(jsonList), "-")
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	comments, err = DecodeNamed(strings.NewReader(yamlDoc), "stdin")
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestWatcher_NotifiesOnWrite(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "thread.json", jsonList)

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := w.Watch(ctx)

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	select {
	case event := <-events:
		assert.Equal(t, w.Path(), event.Path)
		assert.False(t, event.Timestamp.IsZero())
	case <-ctx.Done():
		t.Fatal("timeout waiting for event")
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "thread.json", jsonList)

	w, err := NewWatcher(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	events := w.Watch(context.Background())

	sibling := filepath.Join(filepath.Dir(path), "other.json")
	require.NoError(t, os.WriteFile(sibling, []byte(`[]`), 0o644))

	select {
	case <-events:
		t.Fatal("unexpected event for sibling file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "thread.json", jsonList)

	w, err := NewWatcher(path, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	events := w.Watch(context.Background())

	for range 5 {
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	}

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	select {
	case <-events:
		t.Fatal("burst produced more than one event")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesSubscribers(t *testing.T) {
	path := writeFile(t, "thread.json", jsonList)

	w, err := NewWatcher(path, 0)
	require.NoError(t, err)

	events := w.Watch(context.Background())
	require.NoError(t, w.Close())

	_, ok := <-events
	assert.False(t, ok)

	late := w.Watch(context.Background())
	_, ok = <-late
	assert.False(t, ok, "watching a closed watcher yields a closed channel")
}

func TestWatcher_ContextUnsubscribes(t *testing.T) {
	path := writeFile(t, "thread.json", jsonList)

	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	events := w.Watch(ctx)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
