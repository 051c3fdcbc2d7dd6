package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "task_session"

// Context keys populated by the Session middleware.
const (
	ContextPrincipal = "principal"
	ContextSessionID = "session_id"
)

// Session resolves the session cookie into a principal and injects it into
// the request context. Requests with no cookie, an invalid token, or a
// destroyed session simply proceed without a principal; role enforcement is
// the access gate's job, not the transport's.
func Session(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return next(c)
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return next(c)
			}

			principal, err := sessions.Get(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return next(c)
				}
				// A session store failure is a real error, not anonymity.
				return err
			}

			c.Set(ContextPrincipal, principal)
			c.Set(ContextSessionID, sid)
			return next(c)
		}
	}
}
