// Package pipeline describes the stages of a decompilation run and the
// progress events they report.
package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageRead loads the input file.
	StageRead Stage = "read"
	// StageDecode turns bytes or assembly text into an instruction stream.
	StageDecode Stage = "decode"
	// StageBuild feeds the stream into the module builder.
	StageBuild Stage = "build"
	// StageRender lowers every function to text.
	StageRender Stage = "render"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageRead, StageDecode, StageBuild, StageRender}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one function, or for the whole run when
// Function is empty.
type Event struct {
	Function string
	Stage    Stage
	Status   Status
	Err      error
	Elapsed  time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages, or across
// every stage when none are given.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
