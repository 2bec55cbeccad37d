package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/colonyops/threads/internal/core/logging"
)

const (
	defaultDebounce = 100 * time.Millisecond
	eventBufferSize = 8
)

// Event reports that the watched comment file changed on disk.
type Event struct {
	Path      string
	Timestamp time.Time
}

// Watcher watches a single comment file using fsnotify. The parent directory
// is watched so editors that replace the file by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu          sync.Mutex
	subscribers []chan Event
	timer       *time.Timer
	closed      bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Bursts of writes within debounce collapse
// into a single Event; a non-positive debounce uses the default.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		ctx:      ctx,
		cancel:   cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Watch returns a channel that receives an Event after each settled change.
// The channel is closed when ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, eventBufferSize)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		close(ch)
		return ch
	}
	w.subscribers = append(w.subscribers, ch)
	w.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			w.unsubscribe(ch)
		case <-w.ctx.Done():
			// Watcher is closing, channel will be closed by Close()
		}
	}()

	return ch
}

// Close stops watching and closes all subscriber channels.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	for _, ch := range w.subscribers {
		close(ch)
	}
	w.subscribers = nil
	w.closed = true
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) unsubscribe(ch chan Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, sub := range w.subscribers {
		if sub == ch {
			w.subscribers = append(w.subscribers[:i], w.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()
	log := logging.Component("watcher")

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", w.path).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.path {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	event := Event{Path: w.path, Timestamp: time.Now()}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.timer = nil
	for _, ch := range w.subscribers {
		select {
		case ch <- event:
		default:
			// Channel full, a reload is already pending
		}
	}
}
