package source

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 50 * time.Millisecond

// watcher signals when a single file is written or recreated. It watches the
// parent directory so editors that replace the file are still seen.
type watcher struct {
	fs       *fsnotify.Watcher
	name     string
	changes  chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
	closeErr error
	once     sync.Once
}

func newWatcher(path string) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}
	w := &watcher{
		fs:      fs,
		name:    filepath.Base(path),
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.kick()
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

// kick coalesces bursts of events into one signal.
func (w *watcher) kick() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounce, func() {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	})
}

// Changes fires at most once per debounced burst.
func (w *watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		w.closeErr = w.fs.Close()
	})
	return w.closeErr
}
