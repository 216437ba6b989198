package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/service"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type WishlistHandler struct {
	wishlist *service.WishlistService
}

func RegisterWishlist(e *echo.Echo, auth *service.AuthService, wishlist *service.WishlistService) {
	handler := &WishlistHandler{wishlist: wishlist}

	group := e.Group("/api/v1/users/me/wishlist", RequireAuth(auth))
	group.GET("", handler.list)
	group.POST("", handler.toggle)
	group.DELETE("/:slug", handler.remove)
}

func (h *WishlistHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	items, err := h.wishlist.List(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list wishlist"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"wishlist": items,
		"meta":     util.Envelope{"count": len(items)},
	})
}

func (h *WishlistHandler) toggle(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		PackageID string `json:"package_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	added, err := h.wishlist.Toggle(c.Request().Context(), user.ID, req.PackageID)
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update wishlist"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"package_id": req.PackageID,
		"saved":      added,
	})
}

func (h *WishlistHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	err := h.wishlist.Remove(c.Request().Context(), user.ID, c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPackageNotFound):
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		case errors.Is(err, service.ErrWishlistEntryNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update wishlist"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
