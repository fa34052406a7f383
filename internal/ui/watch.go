package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// startWatching watches the project directory. Editors often replace files
// instead of writing them, so watching the directory catches both.
func (m *Model) startWatching() tea.Cmd {
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}
	dir := m.deck.Root()
	if dir != m.watchDir {
		if m.watchDir != "" {
			_ = m.watcher.Remove(m.watchDir)
		}
		if err := m.watcher.Add(dir); err != nil {
			m.err = err
			return nil
		}
		m.watchDir = dir
	}
	return m.waitForFileEvent()
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go m.watchLoop(watcher, m.watchChan)
	return nil
}

func (m *Model) watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	ch := m.watchChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// handleFileEvent redraws when the current slide or the style file changed.
func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	path := filepath.Clean(msg.path)
	if path == filepath.Clean(m.deck.Path(m.state.Slide)) ||
		(m.stylePath != "" && path == filepath.Clean(m.stylePath)) {
		m.redraw()
	}
	return m.waitForFileEvent()
}

// Close stops the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
