// Package fsresolver is the default FileTextResolver: it reads a
// document's text straight from disk. A host that keeps files open in an
// editor buffer is expected to wrap this with its own overlay rather than
// modify it — this package knows nothing about editor state.
package fsresolver

import (
	"context"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/astidx/internal/errors"
)

// Resolver reads file text from disk, refusing paths matched by an
// exclude glob list (vendor directories, binary assets).
type Resolver struct {
	excludes []string
}

// New creates a Resolver. excludes are doublestar patterns (e.g.
// "**/vendor/**", "**/*.min.js") matched against the absolute path.
func New(excludes []string) *Resolver {
	return &Resolver{excludes: excludes}
}

// Read returns path's current on-disk contents.
func (r *Resolver) Read(ctx context.Context, path string) (string, error) {
	for _, pattern := range r.excludes {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return "", errors.NewFileError(path, os.ErrPermission)
		}
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewFileError(path, err)
	}
	return string(data), nil
}
