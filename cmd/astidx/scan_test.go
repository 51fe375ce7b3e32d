package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/astidx/internal/symbolstore"
)

func TestNewFullScanWalksTreeAndHonorsExclude(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.go"), []byte("package p\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendor", "dropped.go"), []byte("package p\n"), 0o644))

	event := newFullScan(root, []string{filepath.Join(root, "vendor", "*.go")})

	var paths []string
	for _, d := range event.Docs {
		paths = append(paths, d.Path)
	}
	sort.Strings(paths)

	assert.Contains(t, paths, filepath.Join(root, "keep.go"))
	assert.NotContains(t, paths, filepath.Join(root, "vendor", "dropped.go"))
}

func TestNewFullScanEmptyDirProducesNoDocs(t *testing.T) {
	root := t.TempDir()
	event := newFullScan(root, nil)
	assert.Empty(t, event.Docs)
}

func TestWaitForQuiescenceReturnsOnceStoreStopsNeedingUpdate(t *testing.T) {
	store := symbolstore.New()
	store.AddOrUpdateSymbols(symbolstore.FileIDFor("/a.go"), "/a.go", nil)

	done := make(chan struct{})
	go func() {
		waitForQuiescence(store)
		close(done)
	}()

	// waitForQuiescence double-checks with a pollInterval sleep before
	// returning, so clear the dirty flag promptly and expect it to unblock
	// well before the 2-minute ceiling.
	store.CreateExtraIndexes(nil)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("waitForQuiescence did not return after the store settled")
	}
}
