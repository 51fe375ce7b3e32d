package diag

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink(t *testing.T) (*Sink, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var logBuf, sideBuf bytes.Buffer
	reg := prometheus.NewRegistry()
	return NewSink(&logBuf, &sideBuf, reg), &logBuf, &sideBuf
}

func TestSinkInfoAndWarn(t *testing.T) {
	sink, logBuf, _ := newTestSink(t)

	sink.Info("PI", "parsed %d files", 3)
	sink.Warn("PI", "read failed for %s", "a.go")

	out := logBuf.String()
	assert.Contains(t, out, "[PI] parsed 3 files")
	assert.Contains(t, out, "[PI] WARN: read failed for a.go")
}

func TestSinkComplete(t *testing.T) {
	sink, logBuf, sideBuf := newTestSink(t)

	sink.Complete()

	assert.Contains(t, sideBuf.String(), "AST COMPLETE")
	assert.Contains(t, logBuf.String(), "AST COMPLETE")
}

func TestSinkRecordParsedAndSymbols(t *testing.T) {
	sink, _, _ := newTestSink(t)

	sink.RecordParsed(5)
	sink.RecordParsed(0) // no-op, must not panic or decrement
	sink.RecordSymbols(12)

	assert.Equal(t, float64(5), testutil.ToFloat64(sink.parsedTotal))
	assert.Equal(t, float64(12), testutil.ToFloat64(sink.symbolsTotal))
}

func TestSinkRecordUnparsed(t *testing.T) {
	sink, _, _ := newTestSink(t)

	sink.RecordUnparsed("read_error", 2)
	sink.RecordUnparsed("read_error", 1)

	require.Equal(t, float64(3), testutil.ToFloat64(sink.unparsedTotal.WithLabelValues("read_error")))
}

func TestSinkRecordResolvePass(t *testing.T) {
	sink, _, _ := newTestSink(t)
	sink.RecordResolvePass("types", 10*time.Millisecond)
	// A HistogramVec observation is opaque via ToFloat64; just confirm it
	// doesn't panic and the label exists.
	_, err := sink.resolveDuration.GetMetricWithLabelValues("types")
	require.NoError(t, err)
}

func TestSinkQueueDepthAndHoldOff(t *testing.T) {
	sink, _, _ := newTestSink(t)

	sink.SetQueueDepth("immediate", 7)
	assert.Equal(t, float64(7), testutil.ToFloat64(sink.queueDepth.WithLabelValues("immediate")))

	sink.SetHoldOff(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(sink.holdOff))
	sink.SetHoldOff(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(sink.holdOff))
}
