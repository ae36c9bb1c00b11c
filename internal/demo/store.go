package demo

import (
	"context"
	"errors"
	"time"
)

// ErrNotOpen is returned when submitting while the modal is closed
var ErrNotOpen = errors.New("demo request form is not open")

// Submitter delivers a demo request. A nil error means the request was accepted.
type Submitter interface {
	Submit(ctx context.Context, fields Fields) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, fields Fields) error

// Submit calls f
func (f SubmitterFunc) Submit(ctx context.Context, fields Fields) error {
	return f(ctx, fields)
}

// UserError is an error whose message can be shown to the visitor as is
type UserError interface {
	error
	UserMessage() string
}

// Message is a UserError carrying a fixed text
type Message string

func (m Message) Error() string       { return string(m) }
func (m Message) UserMessage() string { return string(m) }

const (
	genericFailure = "We couldn't send your request. Please try again."
	timeoutFailure = "Sending your request took too long. Please try again."
	reopenedNotice = "Your form was reset before it was sent. Check your details and send it again."
)

// State is the serializable demo request state of one visitor
type State struct {
	Open        bool              `json:"open"`
	Fields      Fields            `json:"fields,omitempty"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// Store owns a visitor's demo request state and is the only way to change it
type Store struct {
	state     State
	submitter Submitter
	timeout   time.Duration
}

// Option configures a Store
type Option func(*Store)

// WithTimeout bounds each submission. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// NewStore returns a closed store
func NewStore(submitter Submitter, opts ...Option) *Store {
	return Resume(State{}, submitter, opts...)
}

// Resume continues from a previously saved state
func Resume(state State, submitter Submitter, opts ...Option) *Store {
	s := &Store{state: state, submitter: submitter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsOpen reports whether the modal is shown
func (s *Store) IsOpen() bool {
	return s.state.Open
}

// State returns a copy of the current state
func (s *Store) State() State {
	st := s.state
	st.Fields = s.state.Fields.Clone()
	if s.state.FieldErrors != nil {
		st.FieldErrors = make(map[string]string, len(s.state.FieldErrors))
		for k, v := range s.state.FieldErrors {
			st.FieldErrors[k] = v
		}
	}
	return st
}

// Open shows the modal. It reports false when the modal was already open.
func (s *Store) Open() bool {
	if s.state.Open {
		return false
	}
	s.state.Open = true
	return true
}

// Close dismisses the modal without submitting. Draft fields are kept.
func (s *Store) Close() bool {
	if !s.state.Open {
		return false
	}
	s.state.Open = false
	s.clearErrors()
	return true
}

// Submit hands fields to the submitter. On success the modal closes and the
// draft is discarded; on failure it stays open with an error for the visitor.
func (s *Store) Submit(ctx context.Context, fields Fields) error {
	if !s.state.Open {
		return ErrNotOpen
	}
	s.state.Fields = fields.Clone()
	s.clearErrors()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.submitter.Submit(ctx, fields.Clone()); err != nil {
		s.fail(err)
		return err
	}

	s.state = State{}
	return nil
}

// Reopen shows the modal with fields after the open state was lost, asking the
// visitor to send again. Nothing is submitted.
func (s *Store) Reopen(fields Fields) {
	s.state = State{Open: true, Fields: fields.Clone(), Error: reopenedNotice}
}

// Reset returns to a closed, empty state
func (s *Store) Reset() {
	s.state = State{}
}

func (s *Store) fail(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.state.FieldErrors = make(map[string]string, len(verr.Fields))
		for k, v := range verr.Fields {
			s.state.FieldErrors[k] = v
		}
	}

	var uerr UserError
	switch {
	case errors.As(err, &uerr):
		s.state.Error = uerr.UserMessage()
	case errors.Is(err, context.DeadlineExceeded):
		s.state.Error = timeoutFailure
	default:
		s.state.Error = genericFailure
	}
}

func (s *Store) clearErrors() {
	s.state.Error = ""
	s.state.FieldErrors = nil
}
