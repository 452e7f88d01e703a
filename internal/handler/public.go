package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/model"
)

// Public endpoints require no authentication. They only ever expose
// events whose owner marked them public; a private event answers exactly
// like a missing one so the endpoint cannot be used to probe for ids.

// GetPublic returns a public event's full projection.
func (h *EventHandler) GetPublic(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.EventByID(ctx, id)
	if err != nil || !e.IsPublic {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "public event not found"})
	}
	return c.JSON(http.StatusOK, e)
}

type publicRegisterReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicRegister self-registers a visitor as an Attending guest on a
// public event. One registration per email per event.
func (h *EventHandler) PublicRegister(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req publicRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.EventByID(ctx, id)
	if err != nil || !e.IsPublic {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found or is not public"})
	}
	for _, g := range e.Guests {
		if g.Email == req.Email {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "this email is already registered for the event"})
		}
	}

	guest := model.Guest{Name: req.Name, Email: req.Email, Status: model.GuestAttending}
	if err := h.Events.AddGuest(ctx, id, &guest); err != nil {
		return storeError(c, err)
	}
	h.notifyRegistration(ctx, e, guest, "public")
	return c.JSON(http.StatusCreated, guest)
}
