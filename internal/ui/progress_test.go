package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"spvdecomp/internal/pipeline"
)

func feed(t *testing.T, m tea.Model, events ...pipeline.Event) *progressModel {
	t.Helper()
	for _, ev := range events {
		m, _ = m.Update(eventMsg(ev))
	}
	pm, ok := m.(*progressModel)
	require.True(t, ok)
	return pm
}

func TestProgressModel_TracksFunctions(t *testing.T) {
	events := make(chan pipeline.Event)
	m := feed(t, NewProgressModel("shader.spv", events),
		pipeline.Event{Stage: pipeline.StageRender, Status: pipeline.StatusWorking},
		pipeline.Event{Function: "main", Stage: pipeline.StageRender, Status: pipeline.StatusQueued},
		pipeline.Event{Function: "helper", Stage: pipeline.StageRender, Status: pipeline.StatusWorking},
		pipeline.Event{Function: "main", Stage: pipeline.StageRender, Status: pipeline.StatusDone},
	)

	require.Len(t, m.items, 2)
	require.Equal(t, "rendering", m.stageLabel)
	require.InDelta(t, 0.75, m.percent(), 1e-9)

	view := m.View()
	require.Contains(t, view, "shader.spv (rendering)")
	require.Contains(t, view, "main")
	require.Contains(t, view, "helper")

	m2, cmd := m.Update(doneMsg{})
	require.NotNil(t, cmd)
	require.Contains(t, m2.View(), "done: shader.spv")
}

func TestProgressModel_Failure(t *testing.T) {
	m := feed(t, NewProgressModel("x", nil),
		pipeline.Event{Function: "broken", Status: pipeline.StatusError, Err: errors.New("boom")},
	)
	require.True(t, m.failed)
	m.done = true
	require.Contains(t, m.View(), "failed: x")
}

func TestProgressModel_ListsMostRecentRows(t *testing.T) {
	m := feed(t, NewProgressModel("many", nil))
	for i := 0; i < maxRows+3; i++ {
		m = feed(t, m, pipeline.Event{Function: strings.Repeat("f", i+1), Status: pipeline.StatusDone})
	}
	require.Contains(t, m.View(), "3 more")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abcd...", truncate("abcdefghij", 7))
	require.Equal(t, "ab", truncate("abcdef", 2))
	require.Equal(t, "keep", truncate("keep", 0))
}

func TestStageLabel(t *testing.T) {
	require.Equal(t, "decoding", stageLabel(pipeline.StageDecode, pipeline.StatusWorking))
	require.Equal(t, "build failed", stageLabel(pipeline.StageBuild, pipeline.StatusError))
	require.Equal(t, "", stageLabel(pipeline.StageRead, pipeline.StatusQueued))
}
