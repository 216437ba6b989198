package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/booking"
	"github.com/wandertrails/wandertrails-api/internal/catalog"
	"github.com/wandertrails/wandertrails-api/internal/payment"
	"github.com/wandertrails/wandertrails-api/internal/service"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type WizardHandler struct {
	catalog  *catalog.Service
	sessions *booking.SessionStore
	bookings *service.BookingService
}

func RegisterWizard(e *echo.Echo, auth *service.AuthService, catalogSvc *catalog.Service, sessions *booking.SessionStore, bookings *service.BookingService) {
	handler := &WizardHandler{
		catalog:  catalogSvc,
		sessions: sessions,
		bookings: bookings,
	}

	group := e.Group("/api/v1/wizard")
	group.POST("", handler.start)
	group.GET("/:id", handler.get)
	group.GET("/:id/quote", handler.quote)
	group.POST("/:id/selection", handler.selection)
	group.POST("/:id/information", handler.information)
	group.POST("/:id/back", handler.back)
	group.POST("/:id/reset", handler.reset)
	group.POST("/:id/payment", handler.payment, OptionalAuth(auth))
}

func (h *WizardHandler) start(c echo.Context) error {
	var req struct {
		PackageID string `json:"package_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	pkg, err := h.catalog.Get(req.PackageID)
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load package"))
	}

	wizard := booking.NewWizard(*pkg)
	sessionID := h.sessions.Start(wizard)

	return c.JSON(http.StatusCreated, util.Envelope{
		"session_id": sessionID,
		"wizard":     buildWizardResponse(wizard),
	})
}

func (h *WizardHandler) get(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}
	var resp util.Envelope
	if err := h.sessions.Do(id, func(w *booking.Wizard) error {
		resp = buildWizardResponse(w)
		return nil
	}); err != nil {
		return h.writeSessionError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"wizard": resp})
}

func (h *WizardHandler) quote(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}
	var quote booking.Quote
	if err := h.sessions.Do(id, func(w *booking.Wizard) error {
		quote = w.QuoteFor()
		return nil
	}); err != nil {
		return h.writeSessionError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"quote": quote})
}

func (h *WizardHandler) selection(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}

	var req struct {
		Date      string `json:"date"`
		Travelers int    `json:"travelers"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Travelers == 0 {
		req.Travelers = booking.DefaultTravelers
	}

	var resp util.Envelope
	if err := h.sessions.Do(id, func(w *booking.Wizard) error {
		if err := w.Select(req.Date, req.Travelers); err != nil {
			return err
		}
		resp = buildWizardResponse(w)
		return nil
	}); err != nil {
		return h.writeWizardError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"wizard": resp})
}

func (h *WizardHandler) information(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	contact := booking.Contact{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
	}

	var resp util.Envelope
	if err := h.sessions.Do(id, func(w *booking.Wizard) error {
		if err := w.Inform(contact); err != nil {
			return err
		}
		resp = buildWizardResponse(w)
		return nil
	}); err != nil {
		return h.writeWizardError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"wizard": resp})
}

func (h *WizardHandler) back(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}
	var resp util.Envelope
	if err := h.sessions.Do(id, func(w *booking.Wizard) error {
		if err := w.Back(); err != nil {
			return err
		}
		resp = buildWizardResponse(w)
		return nil
	}); err != nil {
		return h.writeWizardError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"wizard": resp})
}

func (h *WizardHandler) reset(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}
	var resp util.Envelope
	if err := h.sessions.Do(id, func(w *booking.Wizard) error {
		w.Reset()
		resp = buildWizardResponse(w)
		return nil
	}); err != nil {
		return h.writeSessionError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"wizard": resp})
}

func (h *WizardHandler) payment(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return h.writeSessionError(c, err)
	}

	var userID *uuid.UUID
	if user, ok := CurrentUser(c); ok && user != nil {
		userID = &user.ID
	}

	// The charge runs under the session lock so a concurrent payment request
	// for the same session cannot also see the payment state.
	var result *service.CompleteResult
	var resp util.Envelope
	err = h.sessions.Do(id, func(w *booking.Wizard) error {
		r, err := h.bookings.Complete(c.Request().Context(), w, userID)
		if err != nil {
			return err
		}
		result = r
		resp = buildWizardResponse(w)
		return nil
	})
	if err != nil {
		var chargeErr *payment.ChargeError
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			return h.writeSessionError(c, err)
		case errors.As(err, &chargeErr):
			return c.JSON(http.StatusPaymentRequired, util.Error(chargeErr.Message))
		case errors.Is(err, service.ErrWizardIncomplete):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		case errors.Is(err, service.ErrBookingUnrecorded):
			return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("payment could not be processed"))
		}
	}

	h.sessions.Drop(id)

	return c.JSON(http.StatusCreated, util.Envelope{
		"wizard":        resp,
		"booking":       result.Booking,
		"quote":         result.Quote,
		"client_secret": result.ClientSecret,
	})
}

var errInvalidSessionID = errors.New("invalid session id")

func parseSessionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidSessionID
	}
	return id, nil
}

func (h *WizardHandler) writeSessionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errInvalidSessionID):
		return c.JSON(http.StatusBadRequest, util.Error("invalid session id"))
	case errors.Is(err, booking.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, util.Error("wizard session not found"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

func (h *WizardHandler) writeWizardError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		return h.writeSessionError(c, err)
	case errors.Is(err, booking.ErrDateRequired),
		errors.Is(err, booking.ErrDateUnavailable),
		errors.Is(err, booking.ErrInvalidTravelers),
		errors.Is(err, booking.ErrMissingContact):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, booking.ErrInvalidState):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error("internal error"))
	}
}

func buildWizardResponse(w *booking.Wizard) util.Envelope {
	resp := util.Envelope{
		"state":      w.State,
		"package_id": w.Package.ID,
		"travelers":  w.Travelers,
	}
	if w.Date != "" {
		resp["date"] = w.Date
	}
	if w.State == booking.StatePayment || w.State == booking.StateConfirmation {
		resp["contact"] = util.Envelope{
			"first_name": w.Contact.FirstName,
			"last_name":  w.Contact.LastName,
			"email":      w.Contact.Email,
			"phone":      w.Contact.Phone,
		}
		resp["quote"] = w.QuoteFor()
	}
	return resp
}
