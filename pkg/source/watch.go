package source

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// DefaultDebounce coalesces bursts of writes to the watched file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-reads an entry file whenever it changes and hands the result
// to a callback. The callback runs on the watcher goroutine; a Bubble Tea
// host forwards it with Program.Send.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(navtree.Entries)
	watcher  *fsnotify.Watcher
}

// NewWatcher watches path. The parent directory is watched rather than the
// file so editors that replace the file on save are still seen.
func NewWatcher(path string, debounce time.Duration, onChange func(navtree.Entries)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, debounce: debounce, onChange: onChange, watcher: fw}, nil
}

// Run delivers changes until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Only reload on write/create events (not chmod, etc)
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("warning: watcher error on %s: %v", w.path, err)

		case <-fire:
			fire = nil
			entries, err := ReadFile(w.path)
			if err != nil {
				log.Printf("warning: reload %s: %v", w.path, err)
				continue
			}
			w.onChange(entries)
		}
	}
}
