package driver

import (
	"io"
	"time"

	"github.com/wrachwal/deftuple/internal/eval"
)

type RunOptions struct {
	MaxDiagnostics int
	Sink           ProgressSink
	Timings        bool
}

type RunResult struct {
	Check *CheckResult
	// RunErr is the runtime failure, if any. Shape mismatches from
	// deferred conversions surface here, not in the bag.
	RunErr  error
	Elapsed time.Duration
}

// Run checks the scripts and, when the bag stays clean, executes the
// lowered program writing show output to out.
func Run(paths []string, out io.Writer, opts RunOptions) (*RunResult, error) {
	checked, err := Check(paths, CheckOptions{
		MaxDiagnostics: opts.MaxDiagnostics,
		Sink:           opts.Sink,
		Timings:        opts.Timings,
	})
	if err != nil {
		return nil, err
	}
	result := &RunResult{Check: checked}
	if checked.Bag.HasErrors() {
		return result, nil
	}

	emit(opts.Sink, Event{Stage: StageRun, Status: StatusWorking})
	start := time.Now()
	result.RunErr = eval.Run(checked.Program, out)
	result.Elapsed = time.Since(start)

	status := StatusDone
	if result.RunErr != nil {
		status = StatusError
	}
	emit(opts.Sink, Event{Stage: StageRun, Status: status, Err: result.RunErr, Elapsed: result.Elapsed})
	return result, nil
}
