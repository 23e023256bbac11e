package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 100 * time.Millisecond

// Watcher publishes the path of every character spec or behavior script that
// changes on disk, so the game can retune the character without restarting.
// Rapid write bursts (editor save, atomic rename) are coalesced into a single
// event per path.
type Watcher struct {
	fw *fsnotify.Watcher

	// Events and Errors are closed by the watcher goroutine on shutdown.
	Events chan string
	Errors chan error

	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fw:     fw,
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Safe to call more than once; Events and Errors are
// closed once the watcher goroutine drains.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// pending paths wait out the debounce window before publishing, so a
	// burst of writes to one file emits one event carrying the final state.
	pending := make(map[string]struct{})
	var flush <-chan time.Time

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			if !watchedFile(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			if flush == nil {
				flush = time.After(debounceWindow)
			}

		case <-flush:
			for path := range pending {
				select {
				case w.Events <- path:
				case <-w.done:
					return
				}
			}
			pending = make(map[string]struct{})
			flush = nil

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}

func watchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	default:
		return false
	}
}
