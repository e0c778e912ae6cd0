package content

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// Holder serves the current Site snapshot. Snapshots are never mutated; a
// reload swaps the pointer.
type Holder struct {
	site atomic.Pointer[Site]
	path string
}

// NewHolder returns a holder over the embedded content, or over the file at
// path when one is given.
func NewHolder(path string) (*Holder, error) {
	h := &Holder{path: path}
	var (
		site *Site
		err  error
	)
	if path == "" {
		site, err = Default()
	} else {
		site, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	h.site.Store(site)
	return h, nil
}

// Static wraps an already parsed site.
func Static(site *Site) *Holder {
	h := &Holder{}
	h.site.Store(site)
	return h
}

func (h *Holder) Site() *Site { return h.site.Load() }

// Reload re-reads the content file. A parse failure keeps the previous snapshot.
func (h *Holder) Reload() error {
	if h.path == "" {
		return nil
	}
	site, err := LoadFile(h.path)
	if err != nil {
		return err
	}
	h.site.Store(site)
	return nil
}

// Watch reloads the content file whenever it changes on disk, until ctx is done.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		return fmt.Errorf("no content file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating content watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", h.path, err)
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		target := filepath.Clean(h.path)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := h.Reload(); err != nil {
						log.Printf("Content reload failed, keeping previous content: %v", err)
						return
					}
					log.Printf("Content reloaded from %s", h.path)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Content watcher error: %v", err)
			}
		}
	}()
	return nil
}
