//go:build unit

package billing_test

import (
	"testing"
	"time"

	"eventpay/internal/domain/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(t *testing.T, startHour, startMin, endHour, endMin int) (time.Time, time.Time) {
	t.Helper()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute)
}

func TestNewFeeCalculator(t *testing.T) {
	cases := []struct {
		name     string
		fraction float64
		errIs    error
	}{
		{name: "typical fraction", fraction: 0.10},
		{name: "zero fraction", fraction: 0},
		{name: "full fraction", fraction: 1},
		{name: "negative fraction", fraction: -0.1, errIs: billing.ErrInvalidFraction},
		{name: "fraction above one", fraction: 1.1, errIs: billing.ErrInvalidFraction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			calc, err := billing.NewFeeCalculator(tc.fraction)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, calc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.fraction, calc.ReservationFraction())
		})
	}
}

func TestQuoteHourly(t *testing.T) {
	calc, err := billing.NewFeeCalculator(0.10)
	require.NoError(t, err)

	t.Run("fractional hours are billed proportionally", func(t *testing.T) {
		start, end := slot(t, 9, 0, 11, 30)

		quote, err := calc.QuoteHourly(start, end, billing.NewMoney(1000))
		require.NoError(t, err)

		assert.Equal(t, 2.5, quote.DurationHours)
		assert.Equal(t, int64(2500), quote.Total.Cents())
		assert.Equal(t, int64(250), quote.Reservation.Cents())
	})

	t.Run("whole hours", func(t *testing.T) {
		start, end := slot(t, 10, 0, 13, 0)

		quote, err := calc.QuoteHourly(start, end, billing.NewMoney(1500))
		require.NoError(t, err)

		assert.Equal(t, 3.0, quote.DurationHours)
		assert.Equal(t, int64(4500), quote.Total.Cents())
		assert.Equal(t, int64(450), quote.Reservation.Cents())
	})

	t.Run("reservation rounds up, never down", func(t *testing.T) {
		// 2.5h * 402 = 1005; 10% of that is 100.5, collected as 101.
		start, end := slot(t, 9, 0, 11, 30)

		quote, err := calc.QuoteHourly(start, end, billing.NewMoney(402))
		require.NoError(t, err)

		assert.Equal(t, int64(1005), quote.Total.Cents())
		assert.Equal(t, int64(101), quote.Reservation.Cents())
	})

	t.Run("reservation never exceeds total", func(t *testing.T) {
		full, err := billing.NewFeeCalculator(1)
		require.NoError(t, err)

		start, end := slot(t, 9, 0, 10, 0)
		quote, err := full.QuoteHourly(start, end, billing.NewMoney(999))
		require.NoError(t, err)

		assert.Equal(t, quote.Total.Cents(), quote.Reservation.Cents())
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		start, _ := slot(t, 9, 0, 0, 0)

		_, err := calc.QuoteHourly(start, start, billing.NewMoney(1000))
		assert.ErrorIs(t, err, billing.ErrInvalidTimeSlot)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		end, start := slot(t, 9, 0, 11, 0)

		_, err := calc.QuoteHourly(start, end, billing.NewMoney(1000))
		assert.ErrorIs(t, err, billing.ErrInvalidTimeSlot)
	})
}

func TestQuoteFixed(t *testing.T) {
	calc, err := billing.NewFeeCalculator(0.10)
	require.NoError(t, err)

	t.Run("flat price", func(t *testing.T) {
		quote, err := calc.QuoteFixed(billing.NewMoney(12000))
		require.NoError(t, err)

		assert.Zero(t, quote.DurationHours)
		assert.Equal(t, int64(12000), quote.Total.Cents())
		assert.Equal(t, int64(1200), quote.Reservation.Cents())
	})

	t.Run("negative total is rejected", func(t *testing.T) {
		_, err := calc.QuoteFixed(billing.NewMoney(-1))
		assert.Error(t, err)
	})
}
