package observ

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"spvdecomp/internal/trace"
)

func TestTimer_ReportAndSummary(t *testing.T) {
	tm := NewTimer(nil, 0)
	idx := tm.Begin("decode")
	tm.End(idx, "")
	err := tm.Measure("build", func() error { return errors.New("boom") })
	require.EqualError(t, err, "boom")
	tm.End(42, "ignored")

	report := tm.Report()
	require.Len(t, report.Phases, 2)
	require.Equal(t, "decode", report.Phases[0].Name)
	require.Equal(t, "failed", report.Phases[1].Note)
	require.GreaterOrEqual(t, report.TotalMS, report.Phases[0].DurationMS)

	summary := tm.Summary()
	require.True(t, strings.HasPrefix(summary, "timings:\n"))
	require.Contains(t, summary, "// failed")
	require.Contains(t, summary, "total")
}

func TestTimer_EmptyReport(t *testing.T) {
	require.Equal(t, Report{}, NewTimer(nil, 0).Report())
}

func TestTimer_EmitsStageSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelStage, trace.FormatText)
	tm := NewTimer(tr, 0)
	require.NoError(t, tm.Measure("render", func() error { return nil }))

	out := buf.String()
	require.Contains(t, out, "→ render")
	require.Contains(t, out, "← render")
}
