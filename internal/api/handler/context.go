package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/api/middleware"
	"github.com/taskdesk/task-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the session middleware.
// Nil means the request is unauthenticated; the services turn that into
// ErrUnauthenticated, so handlers pass it through as-is.
func ctxPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(middleware.ContextPrincipal).(*domain.Principal)
	return p
}

// ctxSessionID returns the current session id, or empty when anonymous.
func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.ContextSessionID).(string)
	return sid
}
