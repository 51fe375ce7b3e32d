// Package hostctx models the host process's global context as an external
// collaborator. The pipeline never owns it: the indexer task is handed a
// weak reference so that the task holding it can never keep the host alive
// past its intended shutdown, and can detect shutdown by a failed upgrade
// instead of a cancellation signal it would have to coordinate with every
// caller of enqueue().
//
// The weak-pointer idiom here wraps the strong value in weak.Pointer, hands
// out a Weak via Weaken, and has the holder call Value() each time it needs
// the host.
package hostctx

import "weak"

// Context is the host process's context as the pipeline sees it: the
// project root and a shutdown flag. The pipeline's FileTextResolver is
// passed to ingest.New directly, not reached through Context. Fields are
// intentionally minimal; richer host functionality lives outside this
// module's scope.
type Context struct {
	// ProjectRoot is the absolute path of the workspace root this index
	// describes. Informational only; the pipeline does not use it to
	// resolve paths (Documents already carry absolute paths).
	ProjectRoot string

	// shuttingDown is set by MarkShuttingDown to make repeated calls and
	// diagnostics idempotent; the weak pointer going unreachable is what
	// actually terminates PI, this field only helps tests and logging.
	shuttingDown bool
}

// New creates a live host context rooted at projectRoot.
func New(projectRoot string) *Context {
	return &Context{ProjectRoot: projectRoot}
}

// Weak is a non-owning handle to a Context. Holding only a Weak does not
// keep ctx alive; once every strong reference is dropped, ctx becomes
// eligible for garbage collection and Weak.Value returns false.
type Weak struct {
	ptr weak.Pointer[Context]
}

// Weaken produces a Weak handle to ctx.
func Weaken(ctx *Context) Weak {
	return Weak{ptr: weak.Make(ctx)}
}

// Value attempts to upgrade the weak handle. ok is false once the host
// context has been collected, meaning "host is gone, terminate" for
// whichever task holds the handle.
func (w Weak) Value() (ctx *Context, ok bool) {
	ctx = w.ptr.Value()
	return ctx, ctx != nil
}

// MarkShuttingDown flags ctx as shutting down. It does not, by itself,
// release the strong reference the host holds; the host must drop its
// own *Context (e.g. by letting it fall out of scope) for Weak.Value to
// eventually start failing.
func (c *Context) MarkShuttingDown() {
	c.shuttingDown = true
}

// ShuttingDown reports the flag set by MarkShuttingDown.
func (c *Context) ShuttingDown() bool {
	return c.shuttingDown
}
