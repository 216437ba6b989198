package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/service"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func RegisterNotifications(e *echo.Echo, auth *service.AuthService, notifications *service.NotificationService) {
	handler := &NotificationHandler{notifications: notifications}

	group := e.Group("/api/v1/users/me", RequireAuth(auth))
	group.GET("/notification-settings", handler.getSettings)
	group.PUT("/notification-settings", handler.updateSettings)
	group.GET("/notifications", handler.list)
	group.GET("/notifications/unread-count", handler.unreadCount)
	group.POST("/notifications/:id/read", handler.markRead)
}

func (h *NotificationHandler) getSettings(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	settings, err := h.notifications.GetSettings(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load notification settings"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"settings": settings})
}

func (h *NotificationHandler) updateSettings(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		NotifyInApp bool `json:"notify_in_app"`
		NotifyEmail bool `json:"notify_email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	settings, err := h.notifications.UpdateSettings(c.Request().Context(), user.ID, req.NotifyInApp, req.NotifyEmail)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to save notification settings"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"settings": settings})
}

func (h *NotificationHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, offset := parsePagination(c, 0, 0)
	result, err := h.notifications.List(c.Request().Context(), user.ID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list notifications"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"notifications": result.Items,
		"meta": util.Envelope{
			"unread": result.Unread,
			"limit":  result.Limit,
			"offset": result.Offset,
		},
	})
}

func (h *NotificationHandler) unreadCount(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	count, err := h.notifications.UnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to count notifications"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"unread": count})
}

func (h *NotificationHandler) markRead(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid notification id"))
	}

	if err := h.notifications.MarkRead(c.Request().Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("notification not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update notification"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
