package tui

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// storeChangedMsg reports a write to the store by any process.
type storeChangedMsg struct{}

type watchErrMsg struct{ err error }

// newStoreWatcher watches path, or its parent directory when path is a file.
// SQLite writes land in sibling -wal and -shm files, so the directory is
// watched rather than the database file itself.
func newStoreWatcher(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		dir = path
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// relevantEvent reports whether ev touches the store at path.
func relevantEvent(ev fsnotify.Event, path string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
		return false
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return true
	}
	return strings.HasPrefix(filepath.Base(ev.Name), filepath.Base(path))
}

// watchStoreCmd blocks until the next relevant change and reports it.
func watchStoreCmd(w *fsnotify.Watcher, path string) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if relevantEvent(ev, path) {
					return storeChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}
