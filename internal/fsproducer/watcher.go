// Package fsproducer is a reference external producer for the ingestion
// pipeline: workspace enumeration and watching are out of scope for the
// core pipeline itself, but Service.Enqueue needs at least one real
// producer to be exercised end-to-end by cmd/astidx. It does recursive
// fsnotify watches with new-directory auto-watch, but has no debounce
// batching of its own — the coalescer already debounces every path once
// Enqueue hands it an event with force=false, so re-debouncing here would
// just delay the coalescer's own cooldown window.
package fsproducer

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/astidx/internal/types"
)

// Enqueuer is the subset of ingest.Service the watcher needs.
type Enqueuer interface {
	Enqueue(event types.Event, force bool)
}

// Watcher recursively watches a directory tree and forwards create/write
// events to an Enqueuer as Add events, and forwards renames and removes as
// Add events too. For a deleted file PI's text read then fails and the
// document is skipped, so the file's prior symbols stay in the index until
// the next Reset; the pipeline's Event type has no delete kind.
type Watcher struct {
	fsw     *fsnotify.Watcher
	target  Enqueuer
	exclude []string

	mu      sync.Mutex
	watched map[string]bool
}

// New creates a Watcher. exclude is the same doublestar pattern list the
// default FileTextResolver uses, applied here so excluded directories are
// never even watched.
func New(target Enqueuer, exclude []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:     fsw,
		target:  target,
		exclude: exclude,
		watched: make(map[string]bool),
	}, nil
}

// Start walks root adding a watch to every directory, then begins
// forwarding events until Close is called.
func (w *Watcher) Start(root string) error {
	if err := w.addWatches(root); err != nil {
		return err
	}
	go w.run()
	return nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addWatches(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Printf("fsproducer: failed to watch %s: %v", path, err)
			return nil
		}
		w.mu.Lock()
		w.watched[path] = true
		w.mu.Unlock()
		return nil
	})
}

func (w *Watcher) excluded(path string) bool {
	for _, pattern := range w.exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("fsproducer: watch error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.excluded(event.Name) {
				if err := w.fsw.Add(event.Name); err != nil {
					log.Printf("fsproducer: failed to watch new directory %s: %v", event.Name, err)
				}
			}
			return
		}
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0:
		if w.excluded(event.Name) {
			return
		}
		w.target.Enqueue(types.NewAddEvent([]types.Document{{Path: event.Name}}), false)
	}
}
