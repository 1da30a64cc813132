// Package payment holds the state machine for a single in-flight
// mobile-money payment. The provider's answer arrives over racing, unordered
// channels; the machine applies the first terminal report per epoch and
// treats everything after it as duplicate or noise.
package payment

import (
	"errors"
)

type State string

const (
	StateIdle                 State = "idle"
	StateSubmitting           State = "submitting"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSucceeded            State = "succeeded"
	StateFailed               State = "failed"
	StateTimedOut             State = "timed_out"
)

func (s State) String() string {
	return string(s)
}

// Terminal reports whether no further automatic transition occurs without an
// explicit retry.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailed, StateTimedOut:
		return true
	default:
		return false
	}
}

func (s State) Retryable() bool {
	return s == StateFailed || s == StateTimedOut
}

// Source identifies which channel produced an outcome.
type Source string

const (
	SourcePush  Source = "push"
	SourcePoll  Source = "poll"
	SourceQuery Source = "query"
)

type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeFailure OutcomeKind = "failure"
	OutcomeTimeout OutcomeKind = "timeout"
)

// Outcome is one terminal report from a channel.
type Outcome struct {
	Kind             OutcomeKind
	ConfirmationCode string
	FailureReason    string
	Source           Source
}

var (
	ErrNotIdle       = errors.New("transaction already submitted")
	ErrNotSubmitting = errors.New("transaction is not being submitted")
	ErrNotRetryable  = errors.New("transaction is not in a retryable state")
)

// Transaction tracks one payment-bearing booking attempt. It is not
// self-locking: the reconciler serializes access under its own mutex.
type Transaction struct {
	id               string
	correlationToken string
	epoch            int
	state            State
	confirmationCode string
	failureReason    string
}

func NewTransaction() *Transaction {
	return &Transaction{state: StateIdle}
}

func (t *Transaction) ID() string               { return t.id }
func (t *Transaction) CorrelationToken() string { return t.correlationToken }
func (t *Transaction) Epoch() int               { return t.epoch }
func (t *Transaction) State() State             { return t.state }

// BeginSubmit moves Idle -> Submitting. A new submission is only permitted
// from Idle; one Transaction per user-initiated attempt.
func (t *Transaction) BeginSubmit() error {
	if t.state != StateIdle {
		return ErrNotIdle
	}
	t.state = StateSubmitting
	return nil
}

// AbortSubmit returns to Idle after a submission-time transport error. There
// is no transaction id yet, so there is nothing to reconcile against.
func (t *Transaction) AbortSubmit() error {
	if t.state != StateSubmitting {
		return ErrNotSubmitting
	}
	t.state = StateIdle
	return nil
}

// ConfirmSubmitted records the backend-assigned id and the provider
// correlation token, moving Submitting -> AwaitingConfirmation.
func (t *Transaction) ConfirmSubmitted(id, correlationToken string) error {
	if t.state != StateSubmitting {
		return ErrNotSubmitting
	}
	if id == "" {
		return errors.New("transaction id must not be empty")
	}
	t.id = id
	t.correlationToken = correlationToken
	t.state = StateAwaitingConfirmation
	return nil
}

// ApplyOutcome applies a terminal report. It returns false, changing
// nothing, when the report is stale (epoch mismatch) or when a terminal
// state was already reached: the first determination wins and a later
// contradictory report is noise, not new information. Returning false on
// duplicates is what keeps side effects (timers, teardown) single-shot.
func (t *Transaction) ApplyOutcome(epoch int, o Outcome) bool {
	if epoch != t.epoch {
		return false
	}
	if t.state != StateAwaitingConfirmation && t.state != StateSubmitting {
		return false
	}

	switch o.Kind {
	case OutcomeSuccess:
		t.state = StateSucceeded
		t.confirmationCode = o.ConfirmationCode
		t.failureReason = ""
	case OutcomeFailure:
		t.state = StateFailed
		t.failureReason = o.FailureReason
		t.confirmationCode = ""
	case OutcomeTimeout:
		t.state = StateTimedOut
		t.confirmationCode = ""
		t.failureReason = ""
	default:
		return false
	}
	return true
}

// BeginRetry starts a new epoch from Failed or TimedOut. Outcomes produced
// under older epochs can no longer apply. Returns the new epoch.
func (t *Transaction) BeginRetry() (int, error) {
	if !t.state.Retryable() {
		return t.epoch, ErrNotRetryable
	}
	t.epoch++
	t.state = StateSubmitting
	t.confirmationCode = ""
	t.failureReason = ""
	return t.epoch, nil
}

// MarkAwaiting moves Submitting -> AwaitingConfirmation on the retry path,
// where no new backend submission happens (the id already exists).
func (t *Transaction) MarkAwaiting() error {
	if t.state != StateSubmitting {
		return ErrNotSubmitting
	}
	t.state = StateAwaitingConfirmation
	return nil
}

// ConfirmationCode is populated only on Succeeded.
func (t *Transaction) ConfirmationCode() string { return t.confirmationCode }

// FailureReason is populated only on Failed.
func (t *Transaction) FailureReason() string { return t.failureReason }

// Snapshot is an immutable copy safe to hand across goroutines.
type Snapshot struct {
	TransactionID    string
	CorrelationToken string
	Epoch            int
	State            State
	ConfirmationCode string
	FailureReason    string
}

func (t *Transaction) Snapshot() Snapshot {
	return Snapshot{
		TransactionID:    t.id,
		CorrelationToken: t.correlationToken,
		Epoch:            t.epoch,
		State:            t.state,
		ConfirmationCode: t.confirmationCode,
		FailureReason:    t.failureReason,
	}
}
