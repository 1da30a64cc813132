package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../tests/mock/usecase/ports.go -package=usecasemock

// TxStatus is the backend's view of a transaction, as reported by the
// polling endpoint and the provider query.
type TxStatus string

const (
	TxStatusPending TxStatus = "pending"
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
)

// SubmitBookingRequest is the write-side snapshot handed to the backend;
// all validation and pricing happened before it is built.
type SubmitBookingRequest struct {
	ResourceID       uuid.UUID
	Start            time.Time
	End              time.Time
	PhoneNumber      string
	TotalCents       int64
	ReservationCents int64
	Note             string
}

// SubmitReceipt carries the backend-assigned transaction id and the
// provider-issued checkout token used only for manual status queries.
type SubmitReceipt struct {
	TransactionID    string
	CorrelationToken string
}

type StatusReport struct {
	Status           TxStatus
	ConfirmationCode string
	FailureReason    string
}

type AvailabilityQuery struct {
	ResourceID uuid.UUID
	Date       string
	Start      string
	End        string
}

type AvailabilityVerdict struct {
	Available bool
	Reason    string
}

// PaymentGateway is the HTTP collaborator set the reconciliation core calls
// into. The backend talks to the payment provider; this module never does.
type PaymentGateway interface {
	SubmitBooking(ctx context.Context, req SubmitBookingRequest) (SubmitReceipt, error)
	TransactionStatus(ctx context.Context, transactionID string) (StatusReport, error)
	QueryProvider(ctx context.Context, transactionID, correlationToken string) (StatusReport, error)
	CheckAvailability(ctx context.Context, q AvailabilityQuery) (AvailabilityVerdict, error)
}

// PushEvent is one provider update delivered over the shared push channel.
type PushEvent struct {
	TransactionID    string
	Status           TxStatus
	Reason           string
	ConfirmationCode string
}

// PushBus is the process-wide push connection. Subscribing never opens a new
// connection; it adds a handler to the shared one. The returned unsubscribe
// is idempotent and removes the handler synchronously.
type PushBus interface {
	Subscribe(handler func(PushEvent)) (unsubscribe func(), err error)
}
