package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/service"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type BookingHandler struct {
	bookings *service.BookingService
}

func RegisterBookings(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService) {
	handler := &BookingHandler{bookings: bookings}

	group := e.Group("/api/v1/users/me/bookings", RequireAuth(auth))
	group.GET("", handler.listMine)
	group.GET("/:id", handler.getMine)
}

func (h *BookingHandler) listMine(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, offset := parsePagination(c, 0, 0)
	result, err := h.bookings.ListByUser(c.Request().Context(), user.ID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list bookings"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"bookings": result.Items,
		"meta": util.Envelope{
			"total":  result.Total,
			"limit":  result.Limit,
			"offset": result.Offset,
		},
	})
}

func (h *BookingHandler) getMine(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}

	stored, err := h.bookings.GetByID(c.Request().Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, util.Error("booking not found"))
		case errors.Is(err, service.ErrBookingForbidden):
			return c.JSON(http.StatusForbidden, util.Error("forbidden"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load booking"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"booking": stored})
}

func parsePagination(c echo.Context, defaultLimit, defaultOffset int) (int, int) {
	limit := defaultLimit
	offset := defaultOffset
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(c.QueryParam("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
