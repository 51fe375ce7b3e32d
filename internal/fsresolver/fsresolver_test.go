package fsresolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReturnsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a"), 0o644))

	r := New(nil)
	text, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "package a", text)
}

func TestReadExcludedPath(t *testing.T) {
	dir := t.TempDir()
	vendorDir := filepath.Join(dir, "vendor", "pkg")
	require.NoError(t, os.MkdirAll(vendorDir, 0o755))
	path := filepath.Join(vendorDir, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a"), 0o644))

	r := New([]string{filepath.Join(dir, "vendor", "**")})
	_, err := r.Read(context.Background(), path)
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	r := New(nil)
	_, err := r.Read(context.Background(), "/nonexistent/path/a.go")
	assert.Error(t, err)
}

func TestReadRespectsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(nil)
	_, err := r.Read(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
