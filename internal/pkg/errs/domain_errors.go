package errs

import "errors"

// Failure classes of the payment confirmation flow. These are deliberately
// distinct: a timeout is "no answer within budget", not a declined payment,
// and a failed retry query is neither.
var (
	// Validation errors (local, never reach the network)
	ErrValidation = errors.New("validation failed")

	// Availability errors (block submission)
	ErrAvailabilityConflict = errors.New("resource unavailable")

	// Transport errors (submit/poll/query network failures)
	ErrTransport = errors.New("could not reach server")

	// Flow lifecycle errors
	ErrFlowNotFound     = errors.New("payment flow not found")
	ErrSubmitNotAllowed = errors.New("submission only allowed from idle")
	ErrRetryNotAllowed  = errors.New("retry only allowed after failure or timeout")

	// Retry/query errors ("retry failed" is not a payment failure)
	ErrProviderQueryFailed = errors.New("provider status query failed")
)
