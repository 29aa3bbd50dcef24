package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"skybook/internal/checkout"
	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SubmitBooking handles POST /api/v1/bookings
func (c *Controller) SubmitBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SubmitBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	booking, err := c.service.Submit(ctx.Request.Context(), userID, req.SessionID, req.PaymentMethod)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), userID, id)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListBookings handles GET /api/v1/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	bookings, total, err := c.service.ListBookings(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", PaginatedBookings{
		Bookings: bookings,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil)
}

// CancelBooking handles DELETE /api/v1/bookings/:id
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), userID, id)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled", booking, nil)
}

func currentUserID(ctx *gin.Context) (string, bool) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return "", false
	}
	id, ok := userID.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return "", false
	}
	return id, true
}

func respondBookingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, checkout.ErrSessionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrBookingForbidden), errors.Is(err, checkout.ErrSessionForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, ErrMissingFlight), errors.Is(err, ErrNoPassengers):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrPaymentDeclined):
		response.RespondJSON(ctx, "error", http.StatusPaymentRequired, err.Error(), nil, nil)
	case errors.Is(err, ErrAlreadyCancelled):
		response.RespondJSON(ctx, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, err.Error())
	}
}
