package api

import (
	"errors"
	"net/http"

	reqdto "eventpay/internal/handler/dto/request"
	resdto "eventpay/internal/handler/dto/response"
	"eventpay/internal/handler/httperr"
	"eventpay/internal/pkg/errs"
	"eventpay/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	flows usecase.BookingFlows
}

func NewBookingHandler(flows usecase.BookingFlows) *BookingHandler {
	return &BookingHandler{flows: flows}
}

// Quote prices a slot without touching the network. Validation failures are
// field-level errors, never submissions.
func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	quote, err := h.flows.Quote(req.StartTime, req.EndTime, req.HourlyRateCents)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "End time must be after start time", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuote(quote))
}

func (h *BookingHandler) Availability(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Query("resource_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource id", nil)
		return
	}

	verdict := h.flows.CheckAvailability(c.Request.Context(), usecase.AvailabilityQuery{
		ResourceID: resourceID,
		Date:       c.Query("date"),
		Start:      c.Query("start"),
		End:        c.Query("end"),
	})

	c.JSON(http.StatusOK, resdto.FromVerdict(verdict))
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	snap, err := h.flows.Start(c.Request.Context(), usecase.StartBookingParams{
		ResourceID:      req.ResourceID,
		Start:           req.StartTime,
		End:             req.EndTime,
		HourlyRateCents: req.HourlyRateCents,
		PhoneNumber:     req.PhoneNumber,
		Note:            req.GetNote(),
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "End time must be after start time", nil)
		case errors.Is(err, errs.ErrAvailabilityConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Resource is not available for the requested slot", nil)
		case errors.Is(err, errs.ErrTransport):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Could not reach server, please try again", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Header("Location", "/api/bookings/flows/"+snap.FlowID.String())
	c.JSON(http.StatusAccepted, resdto.FromFlowSnapshot(snap))
}

func (h *BookingHandler) GetFlow(c *gin.Context) {
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid flow id", nil)
		return
	}

	snap, err := h.flows.Get(flowID)
	if err != nil {
		if errors.Is(err, errs.ErrFlowNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment flow not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromFlowSnapshot(snap))
}

// Retry asks the backend to actively query the payment provider. A failed
// query is reported as a retry failure, never as a payment failure.
func (h *BookingHandler) Retry(c *gin.Context) {
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid flow id", nil)
		return
	}

	snap, err := h.flows.Retry(c.Request.Context(), flowID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrFlowNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment flow not found", nil)
		case errors.Is(err, errs.ErrRetryNotAllowed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Retry is only allowed after a failure or timeout", nil)
		case errors.Is(err, errs.ErrProviderQueryFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Retry failed, confirmation is still being tracked", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromFlowSnapshot(snap))
}

func (h *BookingHandler) Dismiss(c *gin.Context) {
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid flow id", nil)
		return
	}

	if err := h.flows.Dismiss(flowID); err != nil {
		if errors.Is(err, errs.ErrFlowNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment flow not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
