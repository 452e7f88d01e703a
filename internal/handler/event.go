package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/middleware"
	"github.com/iliyamo/event-planner/internal/model"
	"github.com/iliyamo/event-planner/internal/queue"
	"github.com/iliyamo/event-planner/internal/store"
)

// EventHandler owns every mutation of the event aggregate: the event
// itself plus its embedded guests and tasks.
//
// OwnerOnlySubresources is the single authorization policy point for
// guest/task mutations. When false (the default) any authenticated user
// may manage guests and tasks on any event by id, which is what clients
// have always been able to do; flipping it restricts those routes to the
// event owner without touching the handlers themselves.
type EventHandler struct {
	Events                store.EventStore
	OwnerOnlySubresources bool

	// Notify publishes a registration notification; nil disables it.
	// Failures are swallowed inside the publisher, a registration never
	// fails because the broker is down.
	Notify func(ctx context.Context, ev queue.GuestRegisteredEvent)
}

func NewEventHandler(events store.EventStore) *EventHandler {
	return &EventHandler{Events: events}
}

type eventInput struct {
	Name        string        `json:"name"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	IsPublic    bool          `json:"isPublic"`
	Guests      []model.Guest `json:"guests"`
	Tasks       []model.Task  `json:"tasks"`
}

// eventPatch uses pointers so a field that was omitted can be told apart
// from one set to its zero value; isPublic=false must stick.
type eventPatch struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

// List returns the authenticated user's own events, insertion order.
func (h *EventHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Events.EventsByOwner(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, events)
}

// Create makes a new event owned by the caller. Guests and tasks may be
// supplied inline (the AI suggestion flow sends tasks); they default to
// empty collections.
func (h *EventHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var in eventInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Date == "" || in.Time == "" || in.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, date, time and location are required"})
	}

	e := model.Event{
		Name:        in.Name,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		UserID:      u.ID,
		UserName:    u.Name,
		Guests:      in.Guests,
		Tasks:       in.Tasks,
	}
	for i := range e.Guests {
		if !model.ValidGuestStatus(e.Guests[i].Status) {
			e.Guests[i].Status = model.GuestPending
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.CreateEvent(ctx, &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, e)
}

// Update applies a partial update to an event the caller owns. Only the
// fields present in the body are overwritten.
func (h *EventHandler) Update(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var patch eventPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.EventByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	if e.UserID != u.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authorized"})
	}

	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.IsPublic != nil {
		e.IsPublic = *patch.IsPublic
	}

	if err := h.Events.UpdateEvent(ctx, &e); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes an event the caller owns together with all of its
// guests and tasks.
func (h *EventHandler) Delete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Events.EventByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	if e.UserID != u.ID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authorized"})
	}
	if err := h.Events.DeleteEvent(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterScraped turns a transient AI-discovered event into a real
// private event owned by the caller, with the caller attending.
func (h *EventHandler) RegisterScraped(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var in model.ScrapedEvent
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Date == "" || in.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, date and location are required"})
	}

	e := model.Event{
		Name:        in.Name,
		Date:        in.Date,
		Time:        "12:00", // scraped events carry no time of day
		Location:    in.Location,
		Description: in.Description,
		IsPublic:    false,
		UserID:      u.ID,
		UserName:    u.Name,
		Guests: []model.Guest{
			{Name: u.Name, Email: u.Email, Status: model.GuestAttending},
		},
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.CreateEvent(ctx, &e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	h.notifyRegistration(ctx, e, e.Guests[0], "scraped")
	return c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) notifyRegistration(ctx context.Context, e model.Event, g model.Guest, source string) {
	if h.Notify == nil {
		return
	}
	h.Notify(ctx, queue.GuestRegisteredEvent{
		EventID:      e.ID,
		EventName:    e.Name,
		OwnerID:      e.UserID,
		GuestID:      g.ID,
		GuestName:    g.Name,
		GuestEmail:   g.Email,
		Status:       g.Status,
		Source:       source,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
