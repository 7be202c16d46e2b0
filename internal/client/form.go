// Package client implements the form component: local validation with the
// shared schema, submission to the server, and reconciliation of the
// server's authoritative errors into the display state.
package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"signup-form/internal/validator"
)

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission of the same form is still pending.
var ErrSubmitInProgress = errors.New("form submission already in progress")

// Outcome summarises how a submit attempt ended.
type Outcome int

const (
	OutcomeLocalInvalid Outcome = iota + 1
	OutcomeServerRejected
	OutcomeAccepted
	OutcomeTransportFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLocalInvalid:
		return "local_invalid"
	case OutcomeServerRejected:
		return "server_rejected"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeTransportFailed:
		return "transport_failed"
	default:
		return "unknown"
	}
}

// Form owns the display state of one form instance.
type Form struct {
	submitter Submitter
	logger    *slog.Logger

	pending atomic.Bool

	mu    sync.RWMutex
	state State
}

// NewForm creates a form with every field untouched
func NewForm(submitter Submitter, logger *slog.Logger) *Form {
	return &Form{
		submitter: submitter,
		logger:    logger,
		state:     NewState(),
	}
}

// State returns a snapshot of the current display state
func (f *Form) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.clone()
}

// Pending reports whether a submission is in flight; the submit control
// should be disabled while it is true.
func (f *Form) Pending() bool {
	return f.pending.Load()
}

func (f *Form) dispatch(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Reduce(f.state, ev)
}

// Submit runs one submit attempt with the raw values of the form.
//
// Values failing local validation never leave the client. Locally valid
// values are posted; the server's answer then overrides local state for the
// fields it names. A transport failure returns an error wrapping
// ErrTransport and sets the form notice.
func (f *Form) Submit(ctx context.Context, values map[string]any) (Outcome, error) {
	if !f.pending.CompareAndSwap(false, true) {
		return 0, ErrSubmitInProgress
	}
	defer f.pending.Store(false)

	result := validator.Validate(values)
	f.dispatch(LocalValidated{Errors: validator.FirstPerField(result.Issues)})
	if !result.OK() {
		f.logger.Debug("Form invalid locally", "issues", len(result.Issues))
		return OutcomeLocalInvalid, nil
	}

	resp, err := f.submitter.Submit(ctx, values)
	if err != nil {
		f.dispatch(TransportFailed{Err: err})
		f.logger.Warn("Form submission failed", "error", err)
		return OutcomeTransportFailed, err
	}

	if resp.Success {
		f.dispatch(SubmitSucceeded{})
		f.logger.Info("Form submission accepted")
		return OutcomeAccepted, nil
	}

	f.dispatch(ServerRejected{Errors: resp.Server})
	f.logger.Info("Form submission rejected by server", "fields", len(resp.Server))
	return OutcomeServerRejected, nil
}
