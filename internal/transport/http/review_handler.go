package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/service"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func RegisterReviews(e *echo.Echo, auth *service.AuthService, reviews *service.ReviewService) {
	handler := &ReviewHandler{reviews: reviews}

	e.GET("/api/v1/packages/:slug/reviews", handler.list)
	e.POST("/api/v1/packages/:slug/reviews", handler.create, RequireAuth(auth))
}

func (h *ReviewHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 0, 0)

	result, err := h.reviews.ListByPackage(c.Request().Context(), c.Param("slug"), limit, offset)
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list reviews"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"reviews":   result.Reviews,
		"aggregate": result.Aggregate,
		"meta": util.Envelope{
			"limit":  result.Limit,
			"offset": result.Offset,
			"count":  len(result.Reviews),
		},
	})
}

func (h *ReviewHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Rating  int     `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	review, aggregate, err := h.reviews.Create(c.Request().Context(), user, c.Param("slug"), service.ReviewCreateInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPackageNotFound):
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		case errors.Is(err, service.ErrReviewValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrReviewAlreadyExists):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to create review"))
		}
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"review":    review,
		"aggregate": aggregate,
	})
}
