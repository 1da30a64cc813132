package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type QuoteRequest struct {
	StartTime       time.Time `json:"startTime" binding:"required"`
	EndTime         time.Time `json:"endTime" binding:"required"`
	HourlyRateCents int64     `json:"hourlyRateCents" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	ResourceID      uuid.UUID `json:"resourceId" binding:"required"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	EndTime         time.Time `json:"endTime" binding:"required"`
	HourlyRateCents int64     `json:"hourlyRateCents" binding:"required,gt=0"`
	PhoneNumber     string    `json:"phoneNumber" binding:"required,e164"`
	Note            *string   `json:"note,omitempty"`
}

func (r CreateBookingRequest) GetNote() string {
	if r.Note == nil {
		return ""
	}
	return strings.TrimSpace(*r.Note)
}
