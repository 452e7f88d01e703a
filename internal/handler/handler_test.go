package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-planner/internal/config"
	"github.com/iliyamo/event-planner/internal/handler"
	"github.com/iliyamo/event-planner/internal/model"
	"github.com/iliyamo/event-planner/internal/router"
	"github.com/iliyamo/event-planner/internal/store"
)

const testSecret = "test-secret"

// app wires the real routes against the in-memory store so tests
// exercise routing, middleware and handlers together.
type app struct {
	e      *echo.Echo
	mem    *store.Memory
	events *handler.EventHandler
}

func newApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Config{
		JWTSecret:    testSecret,
		TokenTTLDays: 30,
		BcryptCost:   bcrypt.MinCost, // keep signup fast in tests
	}
	mem := store.NewMemory()
	auth := handler.NewAuthHandler(cfg, mem, mem)
	events := handler.NewEventHandler(mem)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterUsers(e, auth, cfg.JWTSecret, mem)
	router.RegisterEvents(e, events, cfg.JWTSecret, mem, nil, config.CacheConfig{})
	return &app{e: e, mem: mem, events: events}
}

// do issues a request against the app and returns the recorder.
func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type authResp struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// signup registers a user and returns the response with its token.
func (a *app) signup(t *testing.T, name, email, password string) authResp {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/users/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	var resp authResp
	decode(t, rec, &resp)
	return resp
}

// createEvent makes an event as the given token's user.
func (a *app) createEvent(t *testing.T, token string, fields map[string]any) model.Event {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/events", token, fields)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: status %d body %s", rec.Code, rec.Body.String())
	}
	var e model.Event
	decode(t, rec, &e)
	return e
}

func itoa(id uint64) string { return strconv.FormatUint(id, 10) }

func eventFields() map[string]any {
	return map[string]any{
		"name":     "Launch",
		"date":     "2025-01-10",
		"time":     "18:00",
		"location": "HQ",
	}
}
