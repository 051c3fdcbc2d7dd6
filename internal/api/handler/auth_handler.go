package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/api/middleware"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// invalidCredentialsMessage is deliberately the same for a missing field, an
// unknown username, and a wrong password.
const invalidCredentialsMessage = "Invalid username or password"

type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// Login authenticates a user, binds the principal to a new server-side
// session, and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: invalidCredentialsMessage})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Message: invalidCredentialsMessage})
	}

	token, principal, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, loginResponse{Message: invalidCredentialsMessage})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.sessionCookie(token, h.cookieTTL))

	redirect := "/staff-dashboard"
	if principal.Role == domain.RoleAdmin {
		redirect = "/admin-dashboard"
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success:     true,
		Message:     "Login successful",
		RedirectURL: redirect,
	})
}

// Logout destroys the server-side session and expires the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Failure      401  {object}  logoutResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := ctxSessionID(c)
	if sid == "" {
		return domain.ErrUnauthenticated
	}

	if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie("", -1))

	return c.JSON(http.StatusOK, logoutResponse{
		Success:     true,
		Message:     "Logged out successfully",
		RedirectURL: "/login",
	})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
