package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-planner/internal/ai"
	"github.com/iliyamo/event-planner/internal/model"
)

// Advisor is the capability the AI endpoints need. The concrete Gemini
// client satisfies it; tests plug in a fake. Results are best effort and
// never assumed deterministic.
type Advisor interface {
	Suggest(ctx context.Context, prompt string) (ai.Suggestion, error)
	FindEvents(ctx context.Context, locationQuery string) ([]model.ScrapedEvent, error)
}

// AIHandler proxies prompts to the generative backend.
type AIHandler struct {
	Advisor Advisor
}

func NewAIHandler(a Advisor) *AIHandler { return &AIHandler{Advisor: a} }

type suggestReq struct {
	Prompt string `json:"prompt"`
}

// Suggestions returns an AI-written description and task list for an
// event the user is drafting.
func (h *AIHandler) Suggestions(c echo.Context) error {
	var req suggestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prompt is required"})
	}

	s, err := h.Advisor.Suggest(c.Request().Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "AI backend is not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to get suggestions from AI"})
	}
	return c.JSON(http.StatusOK, s)
}

type scrapeReq struct {
	LocationQuery string `json:"locationQuery"`
}

// ScrapeEvents returns plausible public events near a location. The
// results are transient; registering one turns it into a real event.
func (h *AIHandler) ScrapeEvents(c echo.Context) error {
	var req scrapeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.LocationQuery) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location query is required"})
	}

	events, err := h.Advisor.FindEvents(c.Request().Context(), req.LocationQuery)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "AI backend is not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to scrape events for location"})
	}
	return c.JSON(http.StatusOK, events)
}
