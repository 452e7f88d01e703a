package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/model"
	"github.com/iliyamo/event-planner/internal/store"
	"github.com/iliyamo/event-planner/internal/utils"
)

// UserKey is the context key under which Auth stores the resolved user.
const UserKey = "user"

// Auth returns an Echo middleware that validates a Bearer token and loads
// the user it names from the store, rejecting the request with 401 when
// the header is missing, the token invalid or expired, or the encoded
// user no longer exists. Handlers read the resolved user via
// CurrentUser(c), so a request that reaches a handler always acts as a
// real account.
func Auth(secret string, users store.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.UserByID(ctx, userID)
			if err != nil {
				// A token naming a deleted user is as dead as a forged one.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(UserKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by Auth. The second return is
// false on routes that were not wrapped by the middleware.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(UserKey).(model.User)
	return u, ok
}
