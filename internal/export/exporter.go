package export

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInProgress is returned when an export is triggered while another one runs.
var ErrInProgress = errors.New("export already in progress")

// State is the phase of an Exporter.
type State string

const (
	StateIdle      State = "idle"
	StateExporting State = "exporting"
)

// Outcome is the result of the last finished attempt.
type Outcome struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Finished time.Time `json:"finished"`
}

// Status is a point-in-time view of an Exporter.
type Status struct {
	State State    `json:"state"`
	Last  *Outcome `json:"last,omitempty"`
}

// Exporter runs one export or publish attempt at a time. It moves from idle to
// exporting and back to idle with the outcome recorded; a failed attempt
// leaves nothing behind except its message.
type Exporter struct {
	mu    sync.Mutex
	state State
	last  *Outcome
}

// NewExporter creates an idle exporter.
func NewExporter() *Exporter {
	return &Exporter{state: StateIdle}
}

// Status returns the current state and the last outcome.
func (e *Exporter) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{State: e.state}
	if e.last != nil {
		last := *e.last
		st.Last = &last
	}
	return st
}

// Run executes action unless another attempt is in flight. action returns the
// success message shown to the admin. The returned Outcome is also recorded as
// the last outcome; the action's error is passed through unchanged.
func (e *Exporter) Run(ctx context.Context, action func(context.Context) (string, error)) (Outcome, error) {
	e.mu.Lock()
	if e.state == StateExporting {
		e.mu.Unlock()
		return Outcome{}, ErrInProgress
	}
	e.state = StateExporting
	e.mu.Unlock()

	outcome := Outcome{Message: "action aborted"}
	defer func() {
		e.mu.Lock()
		e.state = StateIdle
		e.last = &outcome
		e.mu.Unlock()
	}()

	msg, err := action(ctx)

	outcome = Outcome{Success: err == nil, Message: msg, Finished: time.Now()}
	if err != nil {
		outcome.Message = err.Error()
	}
	return outcome, err
}
