package hostctx

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeakValueWhileStrongHeld(t *testing.T) {
	ctx := New("/project")
	w := Weaken(ctx)

	got, ok := w.Value()
	require.True(t, ok)
	assert.Same(t, ctx, got)
	runtime.KeepAlive(ctx)
}

func TestWeakValueAfterCollection(t *testing.T) {
	w := func() Weak {
		ctx := New("/project")
		return Weaken(ctx)
	}()

	// ctx has no remaining strong reference once the closure above returns;
	// force a collection cycle so the weak pointer clears.
	for i := 0; i < 10; i++ {
		runtime.GC()
		if _, ok := w.Value(); !ok {
			return
		}
	}
	t.Fatal("weak handle still resolved after repeated GC cycles")
}

func TestMarkShuttingDown(t *testing.T) {
	ctx := New("/project")
	assert.False(t, ctx.ShuttingDown())
	ctx.MarkShuttingDown()
	assert.True(t, ctx.ShuttingDown())
}
