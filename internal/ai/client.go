// Package ai is a thin proxy to the Gemini generateContent API. It asks
// the model for JSON conforming to a fixed schema and validates the shape
// of whatever comes back; a generative backend guarantees nothing, so any
// non-conforming response is reported as a failure instead of repaired.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/event-planner/internal/model"
)

// ErrUnavailable covers every failure mode of the backend: network
// errors, non-200 statuses, and responses that do not match the schema.
var ErrUnavailable = errors.New("ai backend unavailable")

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("ai backend not configured")

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	modelName      = "gemini-2.5-flash"

	findEventsInstruction = "You are a helpful assistant that finds local events and returns them *only* in a structured JSON array format, conforming to the provided schema. Do not add any commentary or markdown."
)

// Suggestion is the shape the suggest operation demands from the model.
type Suggestion struct {
	SuggestedDescription string   `json:"suggestedDescription"`
	SuggestedTasks       []string `json:"suggestedTasks"`
}

// Client calls the Gemini REST API. BaseURL is overridable so tests can
// point it at a local httptest server.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client; baseURL may be empty to use the real API.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Request/response wire types for generateContent. Only the fields we
// use are declared.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var suggestionSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "suggestedDescription": {"type": "STRING"},
    "suggestedTasks": {"type": "ARRAY", "items": {"type": "STRING"}}
  },
  "required": ["suggestedDescription", "suggestedTasks"]
}`)

var scrapedEventsSchema = json.RawMessage(`{
  "type": "ARRAY",
  "items": {
    "type": "OBJECT",
    "properties": {
      "name": {"type": "STRING"},
      "date": {"type": "STRING"},
      "location": {"type": "STRING"},
      "description": {"type": "STRING"}
    },
    "required": ["name", "date", "location", "description"]
  }
}`)

// generate performs one generateContent call and returns the raw JSON
// text of the first candidate.
func (c *Client) generate(ctx context.Context, prompt, system string, schema json.RawMessage) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// Suggest asks the model for an event description plus a task list for
// the given free-text prompt.
func (c *Client) Suggest(ctx context.Context, prompt string) (Suggestion, error) {
	text, err := c.generate(ctx, prompt, "", suggestionSchema)
	if err != nil {
		return Suggestion{}, err
	}
	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return Suggestion{}, fmt.Errorf("%w: malformed suggestion: %v", ErrUnavailable, err)
	}
	if s.SuggestedDescription == "" || s.SuggestedTasks == nil {
		return Suggestion{}, fmt.Errorf("%w: suggestion missing required fields", ErrUnavailable)
	}
	return s, nil
}

// FindEvents asks the model for exactly five plausible upcoming public
// events near the given free-text location. An explicit empty array from
// the backend is a valid empty result; anything malformed is a failure.
func (c *Client) FindEvents(ctx context.Context, locationQuery string) ([]model.ScrapedEvent, error) {
	prompt := fmt.Sprintf("Find 5 plausible, upcoming public events for the following location: %q", locationQuery)
	text, err := c.generate(ctx, prompt, findEventsInstruction, scrapedEventsSchema)
	if err != nil {
		return nil, err
	}
	var events []model.ScrapedEvent
	if err := json.Unmarshal([]byte(text), &events); err != nil {
		return nil, fmt.Errorf("%w: malformed event list: %v", ErrUnavailable, err)
	}
	if events == nil {
		// "null" parses fine but is not the empty array we asked for.
		return nil, fmt.Errorf("%w: event list missing", ErrUnavailable)
	}
	for _, ev := range events {
		if ev.Name == "" || ev.Date == "" || ev.Location == "" {
			return nil, fmt.Errorf("%w: scraped event missing required fields", ErrUnavailable)
		}
	}
	return events, nil
}
