package client

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"signup-form/internal/domain"
)

// Status is the display state of one field.
type Status int

const (
	StatusUntouched Status = iota
	StatusInvalid
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusValid:
		return "valid"
	default:
		return "untouched"
	}
}

// Source tells where an Invalid message came from.
type Source int

const (
	SourceNone Source = iota
	SourceLocal
	SourceServer
)

// FieldState is what the form shows next to one input.
type FieldState struct {
	Status  Status
	Message string
	Source  Source
}

// State is the error display state of the whole form. It is a value: Reduce
// returns a new State and never mutates its argument.
type State struct {
	Fields map[domain.Field]FieldState
	// Notice is a form-level message not tied to any field.
	Notice string
}

// NewState returns a form where every field is untouched.
func NewState() State {
	fields := make(map[domain.Field]FieldState, len(domain.Fields))
	for _, f := range domain.Fields {
		fields[f] = FieldState{}
	}
	return State{Fields: fields}
}

// Error returns the message displayed under a field, if any.
func (s State) Error(f domain.Field) (string, bool) {
	fs := s.Fields[f]
	if fs.Status != StatusInvalid {
		return "", false
	}
	return fs.Message, true
}

// Errors returns every displayed field error in declaration order.
func (s State) Errors() []domain.FieldError {
	var out []domain.FieldError
	for _, f := range domain.Fields {
		if msg, ok := s.Error(f); ok {
			out = append(out, domain.FieldError{Field: f, Message: msg})
		}
	}
	return out
}

// HasErrors reports whether any field is currently invalid.
func (s State) HasErrors() bool {
	return len(s.Errors()) > 0
}

func (s State) clone() State {
	fields := make(map[domain.Field]FieldState, len(s.Fields))
	for f, fs := range s.Fields {
		fields[f] = fs
	}
	return State{Fields: fields, Notice: s.Notice}
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// LocalValidated carries the first local message per failing field.
// Fields absent from Errors passed local validation.
type LocalValidated struct {
	Errors map[domain.Field]string
}

// ServerRejected carries the server error map as received on the wire.
type ServerRejected struct {
	Errors map[string]string
}

// SubmitSucceeded is dispatched when the server accepted the submission.
type SubmitSucceeded struct{}

// TransportFailed is dispatched when no response was received.
type TransportFailed struct {
	Err error
}

func (LocalValidated) event()  {}
func (ServerRejected) event()  {}
func (SubmitSucceeded) event() {}
func (TransportFailed) event() {}

// TransportFailureNotice is shown when a submission never got a response.
const TransportFailureNotice = "Submitting form failed!"

// cleared is the state of a field with nothing to report.
var cleared = FieldState{Status: StatusValid, Source: SourceNone}

// fallbackServerMessage replaces server messages that sanitize to nothing.
const fallbackServerMessage = "Invalid value"

// serverText strips markup from server messages before display.
// Policies are safe for concurrent use once built.
var serverText = bluemonday.StrictPolicy()

// Reduce applies one event to the form state.
func Reduce(s State, ev Event) State {
	next := s.clone()
	if next.Fields == nil {
		next = NewState()
		next.Notice = s.Notice
	}

	switch e := ev.(type) {
	case LocalValidated:
		next.Notice = ""
		for _, f := range domain.Fields {
			if msg, failed := e.Errors[f]; failed {
				next.Fields[f] = FieldState{Status: StatusInvalid, Message: msg, Source: SourceLocal}
			} else {
				next.Fields[f] = cleared
			}
		}
	case ServerRejected:
		next.Notice = ""
		for name, msg := range e.Errors {
			f, known := domain.ParseField(name)
			if !known {
				continue
			}
			next.Fields[f] = FieldState{Status: StatusInvalid, Message: sanitize(msg), Source: SourceServer}
		}
	case SubmitSucceeded:
		next.Notice = ""
		for _, f := range domain.Fields {
			next.Fields[f] = cleared
		}
	case TransportFailed:
		next.Notice = TransportFailureNotice
	}
	return next
}

func sanitize(msg string) string {
	clean := strings.TrimSpace(html.UnescapeString(serverText.Sanitize(msg)))
	if clean == "" {
		return fallbackServerMessage
	}
	return clean
}
