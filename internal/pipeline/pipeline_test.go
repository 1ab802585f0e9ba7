package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimings(t *testing.T) {
	var tm Timings
	require.False(t, tm.Has(StageDecode))
	require.Zero(t, tm.Sum())

	tm.Set(StageDecode, 2*time.Millisecond)
	tm.Set(StageRender, 3*time.Millisecond)
	require.True(t, tm.Has(StageDecode))
	require.Equal(t, 2*time.Millisecond, tm.Duration(StageDecode))
	require.Equal(t, 5*time.Millisecond, tm.Sum())
	require.Equal(t, 3*time.Millisecond, tm.Sum(StageRender, StageBuild))

	var nilTimings *Timings
	nilTimings.Set(StageRead, time.Second)
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 1)
	Emit(ChannelSink{Ch: ch}, Event{Stage: StageBuild, Status: StatusDone})
	require.Equal(t, StageBuild, (<-ch).Stage)

	var got []Event
	Emit(FuncSink(func(e Event) { got = append(got, e) }), Event{Function: "main"})
	Emit(nil, Event{Function: "ignored"})
	ChannelSink{}.OnEvent(Event{})
	require.Len(t, got, 1)
	require.Equal(t, "main", got[0].Function)
}
