package gateway

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"eventpay/internal/infra"
	"eventpay/internal/pkg/config"
	"eventpay/internal/usecase"
)

// Backend implements usecase.PaymentGateway against the booking backend's
// REST contract.
type Backend struct {
	client *Client
}

func NewBackend(logger *slog.Logger, cfg config.BackendConfig) *Backend {
	return &Backend{client: NewClient(logger, cfg)}
}

type submitBookingRequest struct {
	ResourceID       string    `json:"resourceId"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	PhoneNumber      string    `json:"phoneNumber"`
	AmountCents      int64     `json:"amountCents"`
	ReservationCents int64     `json:"reservationCents"`
	Note             string    `json:"note,omitempty"`
}

type submitBookingResponse struct {
	TransactionID    string `json:"transactionId"`
	CorrelationToken string `json:"correlationToken"`
}

type transactionStatusResponse struct {
	Status           string `json:"status"`
	ConfirmationCode string `json:"confirmationCode,omitempty"`
	FailureReason    string `json:"failureReason,omitempty"`
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type providerQueryRequest struct {
	TransactionID    string `json:"transactionId"`
	CorrelationToken string `json:"correlationToken"`
}

func (b *Backend) SubmitBooking(ctx context.Context, req usecase.SubmitBookingRequest) (usecase.SubmitReceipt, error) {
	var resp submitBookingResponse
	err := b.client.postJSON(ctx, "/bookings", submitBookingRequest{
		ResourceID:       req.ResourceID.String(),
		StartTime:        req.Start,
		EndTime:          req.End,
		PhoneNumber:      req.PhoneNumber,
		AmountCents:      req.TotalCents,
		ReservationCents: req.ReservationCents,
		Note:             req.Note,
	}, &resp)
	if err != nil {
		return usecase.SubmitReceipt{}, err
	}
	if resp.TransactionID == "" {
		return usecase.SubmitReceipt{}, infra.WrapGatewayErr(b.client.logger,
			infra.KindBadPayload, "submission response missing transaction id", nil)
	}
	return usecase.SubmitReceipt{
		TransactionID:    resp.TransactionID,
		CorrelationToken: resp.CorrelationToken,
	}, nil
}

func (b *Backend) TransactionStatus(ctx context.Context, transactionID string) (usecase.StatusReport, error) {
	var resp transactionStatusResponse
	if err := b.client.getJSON(ctx, "/bookings/"+url.PathEscape(transactionID)+"/status", nil, &resp); err != nil {
		return usecase.StatusReport{}, err
	}
	return b.toStatusReport(resp)
}

func (b *Backend) QueryProvider(ctx context.Context, transactionID, correlationToken string) (usecase.StatusReport, error) {
	var resp transactionStatusResponse
	err := b.client.postJSON(ctx, "/payment/query", providerQueryRequest{
		TransactionID:    transactionID,
		CorrelationToken: correlationToken,
	}, &resp)
	if err != nil {
		return usecase.StatusReport{}, err
	}
	return b.toStatusReport(resp)
}

func (b *Backend) CheckAvailability(ctx context.Context, q usecase.AvailabilityQuery) (usecase.AvailabilityVerdict, error) {
	query := url.Values{}
	query.Set("resourceId", q.ResourceID.String())
	query.Set("date", q.Date)
	query.Set("start", q.Start)
	query.Set("end", q.End)

	var resp availabilityResponse
	if err := b.client.getJSON(ctx, "/availability", query, &resp); err != nil {
		return usecase.AvailabilityVerdict{}, err
	}
	return usecase.AvailabilityVerdict{Available: resp.Available, Reason: resp.Reason}, nil
}

func (b *Backend) toStatusReport(resp transactionStatusResponse) (usecase.StatusReport, error) {
	switch usecase.TxStatus(resp.Status) {
	case usecase.TxStatusPending, usecase.TxStatusSuccess, usecase.TxStatusFailed:
		return usecase.StatusReport{
			Status:           usecase.TxStatus(resp.Status),
			ConfirmationCode: resp.ConfirmationCode,
			FailureReason:    resp.FailureReason,
		}, nil
	default:
		return usecase.StatusReport{}, infra.WrapGatewayErr(b.client.logger,
			infra.KindBadPayload, "unknown transaction status "+resp.Status, nil)
	}
}
