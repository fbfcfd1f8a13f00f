package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Notifier signals when the followed file may have changed. Signals are
// coalesced; consumers still decide via Poller.Check.
type Notifier struct {
	watcher *fsnotify.Watcher
	events  chan struct{}
	done    chan struct{}
	exited  chan struct{}
	once    sync.Once

	mu     sync.Mutex
	dir    string
	target string
}

// NewNotifier starts an fsnotify watcher with nothing followed yet.
func NewNotifier() (*Notifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	n := &Notifier{
		watcher: w,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go n.run()
	return n, nil
}

// Follow switches the notifier to path. The parent directory is watched so
// that atomic rename-over writes are seen.
func (n *Notifier) Follow(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	n.mu.Lock()
	defer n.mu.Unlock()

	if dir != n.dir {
		if n.dir != "" {
			_ = n.watcher.Remove(n.dir)
		}
		if err := n.watcher.Add(dir); err != nil {
			n.dir = ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		n.dir = dir
	}
	n.target = abs
	return nil
}

// Events delivers one value per burst of changes to the followed file. The
// channel is closed by Close.
func (n *Notifier) Events() <-chan struct{} {
	return n.events
}

// Close stops the watcher and closes the Events channel. It is safe to call
// more than once.
func (n *Notifier) Close() error {
	var err error
	n.once.Do(func() {
		close(n.done)
		err = n.watcher.Close()
		<-n.exited
		close(n.events)
	})
	return err
}

func (n *Notifier) run() {
	defer close(n.exited)
	for {
		select {
		case <-n.done:
			return
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			n.mu.Lock()
			match := filepath.Clean(event.Name) == n.target
			n.mu.Unlock()
			if !match {
				continue
			}
			select {
			case n.events <- struct{}{}:
			default:
			}
		case _, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
