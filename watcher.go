package main

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kylesnowschwartz/medtrack/medication"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
)

// watcherDebounce is the delay after the last file event before the data
// file is re-read. Editors and our own Save touch the file several times per
// write; 300ms coalesces that into a single reload.
const watcherDebounce = 300 * time.Millisecond

// dataReloadMsg carries the full record list after the data file changed.
type dataReloadMsg struct {
	records []medication.Record
}

// watcherErrMsg reports errors from the file watcher goroutine.
type watcherErrMsg struct {
	err error
}

// dataWatcher monitors the data file and pushes reloaded records through a
// channel. Save replaces the file by rename, so the watch is on the parent
// directory and events are filtered by name.
//
// Loading happens on the single run() goroutine. Timer callbacks send
// signals instead of calling methods directly.
type dataWatcher struct {
	path    string
	sub     chan []medication.Record
	errc    chan error
	done    chan struct{}
	signals chan struct{} // debounced reload trigger; capacity 1

	// Guards the debounce timer so stop() can cancel it safely.
	mu       sync.Mutex
	debounce *time.Timer
	stopOnce sync.Once
}

func newDataWatcher(path string) *dataWatcher {
	return &dataWatcher{
		path:    filepath.Clean(path),
		sub:     make(chan []medication.Record, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		signals: make(chan struct{}, 1),
	}
}

// stop signals the watcher goroutine to exit and cancels any pending debounce.
func (w *dataWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
}

// sendSignal does a non-blocking send on the signals channel.
func (w *dataWatcher) sendSignal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// run starts the fsnotify loop. Intended to be called as a goroutine.
//
// Closes sub and errc on exit so blocked waitForReload/waitForWatcherErr
// Cmds unblock and return nil instead of leaking goroutines.
func (w *dataWatcher) run() {
	defer close(w.sub)
	defer close(w.errc)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.errc <- err
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.errc <- err
		return
	}

	for {
		select {
		case <-w.done:
			return

		case <-w.signals:
			w.reload()

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(watcherDebounce, w.sendSignal)
				w.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal: forward to the TUI, never to stderr (leaks through alt screen).
			w.sendErr(err)
		}
	}
}

func (w *dataWatcher) sendErr(err error) {
	select {
	case w.errc <- err:
	default:
	}
}

// reload reads the data file and sends the records. A missing file is
// skipped: it shows up briefly while another writer renames over it.
func (w *dataWatcher) reload() {
	records, err := medication.Load(w.path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		w.sendErr(err)
		return
	}

	// Non-blocking send: drop a stale list if the receiver hasn't consumed it.
	select {
	case w.sub <- records:
	default:
		select {
		case <-w.sub:
		default:
		}
		w.sub <- records
	}
}

// waitForReload blocks on the subscription channel and wraps the result in a
// dataReloadMsg. Returns nil when the channel is closed (watcher stopped).
func waitForReload(sub chan []medication.Record) tea.Cmd {
	return func() tea.Msg {
		records, ok := <-sub
		if !ok {
			return nil
		}
		return dataReloadMsg{records: records}
	}
}

// waitForWatcherErr blocks on the error channel and wraps the result in a
// watcherErrMsg. Returns nil when the channel is closed (watcher stopped).
func waitForWatcherErr(errc chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-errc
		if !ok {
			return nil
		}
		return watcherErrMsg{err: err}
	}
}
