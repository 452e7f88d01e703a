package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/model"
)

type taskReq struct {
	Description string `json:"description"`
}

// AddTask appends an open task to an event's checklist.
func (h *EventHandler) AddTask(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description is required"})
	}
	if code, err := h.subresourceAllowed(c, id); err != nil {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	task := model.Task{Description: req.Description, Completed: false}
	if err := h.Events.AddTask(ctx, id, &task); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// ToggleTask flips a task between done and open. Toggling twice lands
// back on the original value.
func (h *EventHandler) ToggleTask(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	tid, err := parseID(c, "tid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	if code, err := h.subresourceAllowed(c, id); err != nil {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Events.ToggleTask(ctx, id, tid); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTask removes one task from the checklist.
func (h *EventHandler) DeleteTask(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	tid, err := parseID(c, "tid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	if code, err := h.subresourceAllowed(c, id); err != nil {
		return c.JSON(code, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.DeleteTask(ctx, id, tid); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
