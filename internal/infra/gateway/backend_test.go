//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventpay/internal/infra"
	"eventpay/internal/infra/gateway"
	"eventpay/internal/pkg/config"
	"eventpay/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, handler http.Handler) (*gateway.Backend, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := gateway.NewBackend(logger, config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
	})
	return backend, server
}

func TestSubmitBooking(t *testing.T) {
	resourceID := uuid.New()

	t.Run("posts the booking and returns the receipt", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/bookings", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, resourceID.String(), body["resourceId"])
			assert.Equal(t, "+254712345678", body["phoneNumber"])
			assert.Equal(t, float64(2500), body["amountCents"])
			assert.Equal(t, float64(250), body["reservationCents"])

			_ = json.NewEncoder(w).Encode(map[string]string{
				"transactionId":    "tx-001",
				"correlationToken": "chk-001",
			})
		}))

		receipt, err := backend.SubmitBooking(context.Background(), usecase.SubmitBookingRequest{
			ResourceID:       resourceID,
			Start:            time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			End:              time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC),
			PhoneNumber:      "+254712345678",
			TotalCents:       2500,
			ReservationCents: 250,
		})

		require.NoError(t, err)
		assert.Equal(t, "tx-001", receipt.TransactionID)
		assert.Equal(t, "chk-001", receipt.CorrelationToken)
	})

	t.Run("missing transaction id is a payload error", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"correlationToken": "chk-001"})
		}))

		_, err := backend.SubmitBooking(context.Background(), usecase.SubmitBookingRequest{ResourceID: resourceID})

		assert.True(t, infra.IsKind(err, infra.KindBadPayload), "got %v", err)
	})

	t.Run("unreachable backend is a transport error", func(t *testing.T) {
		backend, server := newTestBackend(t, http.NewServeMux())
		server.Close()

		_, err := backend.SubmitBooking(context.Background(), usecase.SubmitBookingRequest{ResourceID: resourceID})

		assert.True(t, infra.IsKind(err, infra.KindTransport), "got %v", err)
	})
}

func TestTransactionStatus(t *testing.T) {
	t.Run("maps a success report", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/bookings/tx-001/status", r.URL.Path)

			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":           "success",
				"confirmationCode": "QWE123",
			})
		}))

		report, err := backend.TransactionStatus(context.Background(), "tx-001")

		require.NoError(t, err)
		assert.Equal(t, usecase.TxStatusSuccess, report.Status)
		assert.Equal(t, "QWE123", report.ConfirmationCode)
	})

	t.Run("maps a failure report", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status":        "failed",
				"failureReason": "INSUFFICIENT_FUNDS",
			})
		}))

		report, err := backend.TransactionStatus(context.Background(), "tx-001")

		require.NoError(t, err)
		assert.Equal(t, usecase.TxStatusFailed, report.Status)
		assert.Equal(t, "INSUFFICIENT_FUNDS", report.FailureReason)
	})

	t.Run("unknown status is a payload error", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "reversed"})
		}))

		_, err := backend.TransactionStatus(context.Background(), "tx-001")

		assert.True(t, infra.IsKind(err, infra.KindBadPayload), "got %v", err)
	})

	t.Run("unknown transaction is a not-found error", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := backend.TransactionStatus(context.Background(), "tx-404")

		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("server error is a bad-status error", func(t *testing.T) {
		backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := backend.TransactionStatus(context.Background(), "tx-001")

		assert.True(t, infra.IsKind(err, infra.KindBadStatus), "got %v", err)
	})
}

func TestQueryProvider(t *testing.T) {
	backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/query", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tx-001", body["transactionId"])
		assert.Equal(t, "chk-001", body["correlationToken"])

		_ = json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	}))

	report, err := backend.QueryProvider(context.Background(), "tx-001", "chk-001")

	require.NoError(t, err)
	assert.Equal(t, usecase.TxStatusPending, report.Status)
}

func TestCheckAvailability(t *testing.T) {
	resourceID := uuid.New()

	backend, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/availability", r.URL.Path)
		assert.Equal(t, resourceID.String(), r.URL.Query().Get("resourceId"))
		assert.Equal(t, "2026-03-14", r.URL.Query().Get("date"))
		assert.Equal(t, "09:00", r.URL.Query().Get("start"))
		assert.Equal(t, "11:30", r.URL.Query().Get("end"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"available": false,
			"reason":    "slot already booked",
		})
	}))

	verdict, err := backend.CheckAvailability(context.Background(), usecase.AvailabilityQuery{
		ResourceID: resourceID,
		Date:       "2026-03-14",
		Start:      "09:00",
		End:        "11:30",
	})

	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, "slot already booked", verdict.Reason)
}
