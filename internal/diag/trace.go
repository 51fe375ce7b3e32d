// Package diag is the pipeline's diagnostic sink: a cheap-unless-enabled
// verbose trace channel, leveled structured events that are always
// visible, a sideband "AST COMPLETE" marker stream, and Prometheus
// counters describing the pipeline's own health.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableTrace is a build flag for verbose tracing, overridable at build
// time: go build -ldflags "-X .../internal/diag.EnableTrace=true"
var EnableTrace = "false"

var (
	traceOutput io.Writer
	traceMu     sync.Mutex
)

// SetTraceOutput sets the writer verbose trace output goes to. Pass nil to
// disable it entirely (the default).
func SetTraceOutput(w io.Writer) {
	traceMu.Lock()
	defer traceMu.Unlock()
	traceOutput = w
}

// TraceEnabled reports whether verbose tracing is active, via the build
// flag or the ASTIDX_TRACE=1 environment variable.
func TraceEnabled() bool {
	if EnableTrace == "true" {
		return true
	}
	v := os.Getenv("ASTIDX_TRACE")
	return v == "1" || v == "true"
}

func traceWriter() io.Writer {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceOutput
}

// Trace prints a component-tagged verbose line, a no-op unless tracing is
// enabled and an output writer has been configured. It carries
// high-frequency detail that would otherwise flood normal operational
// logs; no pipeline task (CC, PI, RS) calls it.
func Trace(component, format string, args ...interface{}) {
	if !TraceEnabled() {
		return
	}
	w := traceWriter()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[TRACE:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}
