package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/astidx/internal/symbolstore"
	"github.com/standardbeagle/astidx/internal/types"
)

// newFullScan walks root and builds a single Add event covering every
// non-excluded regular file. Workspace enumeration is out of scope for
// the core pipeline; this is the CLI's own minimal producer, parallel to
// fsproducer.Watcher, for seeding the index on startup.
func newFullScan(root string, exclude []string) types.Event {
	var docs []types.Document
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		for _, pattern := range exclude {
			if matched, _ := doublestar.Match(pattern, path); matched {
				return nil
			}
		}
		docs = append(docs, types.Document{Path: path})
		return nil
	})
	return types.NewAddEvent(docs)
}

// waitForQuiescence polls store until it reports no pending resolve work,
// used by the inspect subcommand to know when a one-shot index pass is
// done. There is no event to block on across package boundaries (RS's
// loop is internal to internal/ingest), so a short poll is the simplest
// correct option here.
func waitForQuiescence(store *symbolstore.Store) {
	const (
		pollInterval = 200 * time.Millisecond
		maxWait      = 2 * time.Minute
	)
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		if !store.NeedUpdate() {
			// Confirm it's settled, not just caught between PI's write and
			// RS's next NeedUpdate check.
			time.Sleep(pollInterval)
			if !store.NeedUpdate() {
				return
			}
			continue
		}
		time.Sleep(pollInterval)
	}
}
