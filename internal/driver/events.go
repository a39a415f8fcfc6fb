// Package driver orchestrates the tokenize/parse/expand/run pipeline
// behind the CLI commands.
package driver

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	StageLoad   Stage = "load"
	StageParse  Stage = "parse"
	StageExpand Stage = "expand"
	StageRun    Stage = "run"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole pipeline when File
// is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// sinkFunc adapts a function to a ProgressSink.
type sinkFunc func(Event)

func (f sinkFunc) OnEvent(ev Event) { f(ev) }

// SinkFunc wraps fn as a ProgressSink.
func SinkFunc(fn func(Event)) ProgressSink { return sinkFunc(fn) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
