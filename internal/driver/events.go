package driver

import "context"

// Stage is the step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota
	StageScan
	StageFix
	StageWrite
)

// Status of a file within its stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Event reports progress of one file. File is empty for run-level events.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
}

func (o *Options) emit(ctx context.Context, ev Event) {
	if o.Events == nil {
		return
	}
	select {
	case o.Events <- ev:
	case <-ctx.Done():
	}
}
