package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/core/ports"
)

// SessionHandler exposes the signed-in identity and the account flows.
type SessionHandler struct {
	session  ports.SessionService
	accounts ports.AccountService
}

func NewSessionHandler(session ports.SessionService, accounts ports.AccountService) *SessionHandler {
	return &SessionHandler{session: session, accounts: accounts}
}

// Get handles GET /session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

// Login handles POST /session/login.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.view())
}

// Register handles POST /session/register.
//
// @Summary      Create a client account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up form"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerResponse{UserID: userID})
}

// UpdateProfile handles PATCH /session/profile.
//
// @Summary      Edit the signed-in profile
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /session/profile [patch]
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.accounts.UpdateProfile(c.Request().Context(), ports.ProfileInput{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		AvatarURL: req.AvatarURL,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.view())
}

// Logout handles DELETE /session. Always succeeds.
//
// @Summary      Sign out
// @Tags         session
// @Success      204
// @Router       /session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.accounts.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) view() sessionResponse {
	id, ok := h.session.Identity()
	if !ok {
		return sessionResponse{}
	}
	resp := sessionResponse{Authenticated: true, User: &id}
	if exp, ok := h.session.Credential().ExpiresAt(); ok {
		resp.ExpiresAt = &exp
	}
	return resp
}
