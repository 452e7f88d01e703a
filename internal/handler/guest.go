package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/middleware"
	"github.com/iliyamo/event-planner/internal/model"
)

// subresourceAllowed applies the guest/task authorization policy. In the
// default permissive mode only the event's existence matters; in
// owner-only mode the caller must own the event. Either way the event is
// loaded so a missing one yields 404 before any policy decision.
func (h *EventHandler) subresourceAllowed(c echo.Context, eventID uint64) (int, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.EventByID(ctx, eventID)
	if err != nil {
		return http.StatusNotFound, errors.New("event not found")
	}
	if h.OwnerOnlySubresources {
		u, ok := middleware.CurrentUser(c)
		if !ok || u.ID != e.UserID {
			return http.StatusForbidden, errors.New("forbidden")
		}
	}
	return 0, nil
}

type guestReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AddGuest appends a Pending guest to an event's list.
func (h *EventHandler) AddGuest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	if code, err := h.subresourceAllowed(c, id); err != nil {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	guest := model.Guest{Name: req.Name, Email: req.Email, Status: model.GuestPending}
	if err := h.Events.AddGuest(ctx, id, &guest); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, guest)
}

type guestStatusReq struct {
	Status string `json:"status"`
}

// UpdateGuestStatus sets a guest's RSVP status.
func (h *EventHandler) UpdateGuestStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	gid, err := parseID(c, "gid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req guestStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidGuestStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if code, err := h.subresourceAllowed(c, id); err != nil {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.UpdateGuestStatus(ctx, id, gid, req.Status); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteGuest removes one guest; other guests keep their ids.
func (h *EventHandler) DeleteGuest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	gid, err := parseID(c, "gid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	if code, err := h.subresourceAllowed(c, id); err != nil {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.DeleteGuest(ctx, id, gid); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
