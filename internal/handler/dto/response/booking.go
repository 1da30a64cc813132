package response

import (
	"eventpay/internal/domain/billing"
	"eventpay/internal/usecase"

	"github.com/google/uuid"
)

type QuoteResponse struct {
	DurationHours    float64 `json:"durationHours"`
	TotalCents       int64   `json:"totalCents"`
	ReservationCents int64   `json:"reservationCents"`
}

func FromQuote(q billing.Quote) *QuoteResponse {
	return &QuoteResponse{
		DurationHours:    q.DurationHours,
		TotalCents:       q.Total.Cents(),
		ReservationCents: q.Reservation.Cents(),
	}
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func FromVerdict(v usecase.AvailabilityVerdict) *AvailabilityResponse {
	return &AvailabilityResponse{Available: v.Available, Reason: v.Reason}
}

type FlowResponse struct {
	FlowID           uuid.UUID     `json:"flowId"`
	TransactionID    string        `json:"transactionId,omitempty"`
	State            string        `json:"state"`
	Epoch            int           `json:"epoch"`
	ConfirmationCode string        `json:"confirmationCode,omitempty"`
	FailureReason    string        `json:"failureReason,omitempty"`
	Quote            QuoteResponse `json:"quote"`
}

func FromFlowSnapshot(snap usecase.FlowSnapshot) *FlowResponse {
	return &FlowResponse{
		FlowID:           snap.FlowID,
		TransactionID:    snap.Payment.TransactionID,
		State:            snap.Payment.State.String(),
		Epoch:            snap.Payment.Epoch,
		ConfirmationCode: snap.Payment.ConfirmationCode,
		FailureReason:    snap.Payment.FailureReason,
		Quote:            *FromQuote(snap.Quote),
	}
}
