package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wandertrails/wandertrails-api/internal/domain"
	"github.com/wandertrails/wandertrails-api/internal/media"
	"github.com/wandertrails/wandertrails-api/internal/service"
	"github.com/wandertrails/wandertrails-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	e.POST("/api/v1/auth/register", handler.register)
	e.POST("/api/v1/auth/login", handler.login)
	e.POST("/api/v1/auth/google", handler.google)

	me := e.Group("/api/v1/users/me", RequireAuth(auth))
	me.GET("", handler.me)
	me.PUT("/profile", handler.updateProfile)
	me.POST("/avatar", handler.uploadAvatar)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.RegisterWithEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, buildAuthResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.LoginWithEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	return c.JSON(http.StatusOK, buildAuthResponse(result))
}

func (h *AuthHandler) google(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	return c.JSON(http.StatusOK, buildAuthResponse(result))
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildUserResponse(user)})
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		FullName *string `json:"full_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update profile"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildUserResponse(updated)})
}

func (h *AuthHandler) uploadAvatar(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
	}
	defer src.Close()

	updated, err := h.auth.UploadAvatar(c.Request().Context(), user.ID, media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to store avatar"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": buildUserResponse(updated)})
}

func buildAuthResponse(result *service.AuthResult) util.Envelope {
	return util.Envelope{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
		"user":       buildUserResponse(result.User),
	}
}

func buildUserResponse(user *domain.User) util.Envelope {
	resp := util.Envelope{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	}
	if user.FullName != nil {
		resp["full_name"] = *user.FullName
	}
	if user.AvatarURL != nil {
		resp["avatar_url"] = *user.AvatarURL
	}
	return resp
}
