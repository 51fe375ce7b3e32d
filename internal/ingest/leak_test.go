//go:build leaktests
// +build leaktests

package ingest

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/standardbeagle/astidx/internal/hostctx"
	"github.com/standardbeagle/astidx/internal/types"
)

// TestServiceStopLeavesNoGoroutinesRunning verifies CC, PI, and RS all exit
// their loops once Stop is called, rather than leaking goroutines blocked
// on the weak host handle or a poll timer.
func TestServiceStopLeavesNoGoroutinesRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	resolver := newFakeResolver()
	parser := newFakeParser()
	store := newFakeStore()
	svc := New(resolver, parser, store, testSink(), testConfig())

	host := hostctx.New("/project")
	handles := svc.Start(host)

	svc.Enqueue(types.NewAddEvent([]types.Document{{Path: "/a.go"}}), true)
	waitFor(t, time.Second, func() bool { return store.symbolCount() == 1 })

	svc.Stop()
	<-handles.Coalescer
	<-handles.Indexer
	<-handles.Resolver
}
