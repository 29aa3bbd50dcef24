package flights

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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

// ListFlights handles GET /api/v1/flights?origin=CGK&destination=DPS&date=2026-09-20
func (c *Controller) ListFlights(ctx *gin.Context) {
	query := ListQuery{
		Origin:      ctx.Query("origin"),
		Destination: ctx.Query("destination"),
	}

	if dateStr := ctx.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, nil)
			return
		}
		query.Date = &date
	}

	query.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	query.Offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	flights, total, err := c.service.List(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list flights", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flights retrieved successfully", PaginatedFlights{
		Flights: flights,
		Total:   total,
		Limit:   query.Limit,
		Offset:  query.Offset,
	}, nil)
}

// GetFlight handles GET /api/v1/flights/:id
func (c *Controller) GetFlight(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid flight ID", nil, nil)
		return
	}

	flight, err := c.service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFlightNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Flight not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get flight", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight retrieved successfully", flight, nil)
}
