package checkout

import (
	"errors"
	"net/http"

	"skybook/internal/seats"
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

// StartSession handles POST /api/v1/checkout
func (c *Controller) StartSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req StartSessionRequest
	// Body is optional; a bare POST starts an empty session.
	_ = ctx.ShouldBindJSON(&req)

	sess, err := c.service.StartSession(ctx.Request.Context(), userID, req.SearchCriteria)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to start checkout session", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Checkout session started", sess.ToResponse(), nil)
}

// GetSession handles GET /api/v1/checkout/:id
func (c *Controller) GetSession(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.GetSession(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout session retrieved", sess.ToResponse(), nil)
}

// Cancel handles DELETE /api/v1/checkout/:id
func (c *Controller) Cancel(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), ctx.Param("id"), userID); err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout session cancelled", nil, nil)
}

// SelectFlight handles POST /api/v1/checkout/:id/flights
func (c *Controller) SelectFlight(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SelectFlightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	flightID, _ := uuid.Parse(req.FlightID)
	cabinID, _ := uuid.Parse(req.CabinID)

	sess, err := c.service.SelectFlight(ctx.Request.Context(), ctx.Param("id"), userID, Leg(req.Leg), flightID, cabinID)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight selected", sess.ToResponse(), nil)
}

// Jump handles POST /api/v1/checkout/:id/jump
func (c *Controller) Jump(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req JumpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	target, err := ParseStep(req.To)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown checkout step", nil, err.Error())
		return
	}

	sess, err := c.service.Jump(ctx.Request.Context(), ctx.Param("id"), userID, target, req.Data)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Moved to "+target.String()+" step", sess.ToResponse(), nil)
}

// LoadSeatMap handles GET /api/v1/checkout/:id/seatmap?leg=outbound
func (c *Controller) LoadSeatMap(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	leg := Leg(ctx.DefaultQuery("leg", string(LegOutbound)))
	if !leg.Valid() {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown leg", nil, nil)
		return
	}

	sess, err := c.service.LoadSeatMap(ctx.Request.Context(), ctx.Param("id"), userID, leg)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map loaded", sess.ToResponse(), nil)
}

// ToggleSeat handles POST /api/v1/checkout/:id/seats/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req ToggleSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	sess, err := c.service.ToggleSeat(ctx.Request.Context(), ctx.Param("id"), userID, req.Row, req.Column)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat toggled", sess.ToResponse(), nil)
}

// ConfirmSeats handles POST /api/v1/checkout/:id/seats/confirm
func (c *Controller) ConfirmSeats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	sess, err := c.service.ConfirmSeats(ctx.Request.Context(), ctx.Param("id"), userID)
	if err != nil {
		respondSessionError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat selection confirmed", sess.ToResponse(), nil)
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

func respondSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Checkout session not found", nil, nil)
	case errors.Is(err, ErrSessionForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
	case errors.Is(err, ErrNoFlightSelected), errors.Is(err, ErrNoSeatMapLoaded), errors.Is(err, ErrUnknownStep):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidPassenger), errors.Is(err, seats.ErrNoSeatsSelected):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, seats.ErrCabinNotFound), errors.Is(err, seats.ErrEmptySeatMap):
		response.RespondJSON(ctx, "error", http.StatusNotFound, err.Error(), nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Checkout operation failed", nil, err.Error())
	}
}
