package billing

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidFraction = errors.New("reservation fraction must be between 0 and 1")

// Quote is immutable once computed for a given input range.
type Quote struct {
	DurationHours float64
	Total         Money
	Reservation   Money
}

// FeeCalculator turns a time range and a rate into a billed duration, a
// total, and the partial reservation amount collected up front to hold the
// booking. Pure and deterministic.
type FeeCalculator struct {
	reservationFraction float64
}

func NewFeeCalculator(reservationFraction float64) (*FeeCalculator, error) {
	if reservationFraction < 0 || reservationFraction > 1 {
		return nil, ErrInvalidFraction
	}
	return &FeeCalculator{reservationFraction: reservationFraction}, nil
}

func (c *FeeCalculator) ReservationFraction() float64 {
	return c.reservationFraction
}

// QuoteHourly prices a slot at an hourly rate. Returns ErrInvalidTimeSlot
// when end <= start; callers surface that as a field-level error instead of
// proceeding.
func (c *FeeCalculator) QuoteHourly(start, end time.Time, hourlyRate Money) (Quote, error) {
	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return Quote{}, err
	}

	hours := slot.Hours()
	total := NewMoney(int64(math.Round(hours * float64(hourlyRate.Cents()))))

	return Quote{
		DurationHours: hours,
		Total:         total,
		Reservation:   c.reservationAmount(total),
	}, nil
}

// QuoteFixed prices a non-hourly resource (flat ticket or service price).
func (c *FeeCalculator) QuoteFixed(total Money) (Quote, error) {
	if total.Cents() < 0 {
		return Quote{}, errors.New("total cannot be negative")
	}
	return Quote{
		Total:       total,
		Reservation: c.reservationAmount(total),
	}, nil
}

// reservation = ceil(total * fraction); rounding up so a held booking never
// collects less than the configured share.
func (c *FeeCalculator) reservationAmount(total Money) Money {
	return NewMoney(int64(math.Ceil(float64(total.Cents()) * c.reservationFraction)))
}
