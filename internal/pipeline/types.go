package pipeline

import "time"

// Stage describes a step of formatting one file.
type Stage string

const (
	// StageDiscover collects the files to format.
	StageDiscover Stage = "discover"
	// StageRead loads a file (or answers from the cache).
	StageRead Stage = "read"
	// StageFormat parses and formats a file.
	StageFormat Stage = "format"
	// StageVerify re-formats the output to check idempotence.
	StageVerify Stage = "verify"
	// StageWrite rewrites the file on disk.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Outcome is what happened to a file that finished without error.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeChanged: the output differs from the input (rewritten, or
	// reported in check mode).
	OutcomeChanged Outcome = "changed"
)

// Event reports progress for a file (or for the whole run when File is empty).
// Outcome and Cached are set only on the final StatusDone event of a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Outcome Outcome
	Cached  bool
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: files are formatted in parallel.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations summed over all files.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Add accumulates a duration for the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
