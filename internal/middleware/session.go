// Package middleware contains the Echo middleware for session identity
// and request rate limiting.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yerassyl/event-reservation/internal/session"
)

// userIDKey is the context key the resolved user id is stored under.
const userIDKey = "user_id"

// RequireSession resolves the session cookie into a numeric user id and
// stores it on the Echo context. Requests without a valid session get a
// 401; handlers behind this middleware can rely on UserID succeeding.
func RequireSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if store == nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
			}
			token := ""
			if cookie, err := c.Cookie(session.CookieName); err == nil {
				token = cookie.Value
			}
			userID, err := store.Resolve(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// ResolveSession is the non-failing variant: a valid session attaches
// the user id to the context, anything else passes through untouched.
// Used by endpoints that answer differently for guests instead of
// rejecting them.
func ResolveSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if store != nil {
				if cookie, err := c.Cookie(session.CookieName); err == nil {
					if userID, err := store.Resolve(c.Request().Context(), cookie.Value); err == nil {
						c.Set(userIDKey, userID)
					}
				}
			}
			return next(c)
		}
	}
}

// UserID extracts the user id placed on the context by RequireSession.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}
