package handler // handler defines http handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/store"
)

// reqCtx bounds a store call to 5 seconds, matching the rest of the
// handlers in this package.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// storeError maps store sentinels onto HTTP responses. Anything that is
// not a known sentinel is a server-side failure; the cause is logged and
// the client only sees a generic message.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, store.ErrGuestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	case errors.Is(err, store.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}
	log.Printf("[handler] store error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
