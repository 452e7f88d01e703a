package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/iliyamo/event-planner/internal/model"
)

func TestCreateEventDefaults(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	ev := a.createEvent(t, alice.Token, eventFields())
	if ev.ID == 0 {
		t.Fatal("event id not assigned")
	}
	if ev.UserID != alice.User.ID || ev.UserName != "Alice" {
		t.Fatalf("owner fields = %d/%q", ev.UserID, ev.UserName)
	}
	if ev.IsPublic {
		t.Fatal("event public by default")
	}
	if len(ev.Guests) != 0 || len(ev.Tasks) != 0 {
		t.Fatalf("guests/tasks not empty: %+v / %+v", ev.Guests, ev.Tasks)
	}
}

func TestCreateEventWithInlineTasks(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	fields := eventFields()
	fields["tasks"] = []map[string]any{{"description": "Book venue"}, {"description": "Send invites"}}
	ev := a.createEvent(t, alice.Token, fields)
	if len(ev.Tasks) != 2 || ev.Tasks[0].Completed {
		t.Fatalf("tasks = %+v", ev.Tasks)
	}
	if ev.Tasks[0].ID == 0 || ev.Tasks[1].ID == 0 {
		t.Fatalf("task ids not assigned: %+v", ev.Tasks)
	}
}

func TestCreateEventValidation(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	rec := a.do(t, http.MethodPost, "/events", alice.Token, map[string]any{"name": "No date"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListReturnsOwnEventsOnly(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	bob := a.signup(t, "Bob", "b@x.com", "pw")

	a.createEvent(t, alice.Token, eventFields())
	a.createEvent(t, alice.Token, eventFields())
	a.createEvent(t, bob.Token, eventFields())

	rec := a.do(t, http.MethodGet, "/events", alice.Token, nil)
	var events []model.Event
	decode(t, rec, &events)
	if len(events) != 2 {
		t.Fatalf("alice sees %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.UserID != alice.User.ID {
			t.Fatalf("foreign event in listing: %+v", e)
		}
	}
}

func TestUpdateIsPartial(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	fields := eventFields()
	fields["isPublic"] = true
	fields["description"] = "original"
	ev := a.createEvent(t, alice.Token, fields)

	rec := a.do(t, http.MethodPut, "/events/"+itoa(ev.ID), alice.Token, map[string]any{"name": "X"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d body %s", rec.Code, rec.Body.String())
	}
	var updated model.Event
	decode(t, rec, &updated)
	if updated.Name != "X" {
		t.Fatalf("name = %q, want X", updated.Name)
	}
	// Everything not in the body keeps its prior value.
	if updated.Date != ev.Date || updated.Time != ev.Time || updated.Location != ev.Location ||
		updated.Description != "original" || !updated.IsPublic {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateCanSetIsPublicFalse(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	fields := eventFields()
	fields["isPublic"] = true
	ev := a.createEvent(t, alice.Token, fields)

	rec := a.do(t, http.MethodPut, "/events/"+itoa(ev.ID), alice.Token, map[string]any{"isPublic": false})
	var updated model.Event
	decode(t, rec, &updated)
	if updated.IsPublic {
		t.Fatal("isPublic=false did not stick")
	}
	// The event must be gone from the public endpoint now.
	pub := a.do(t, http.MethodGet, "/events/public/"+itoa(ev.ID), "", nil)
	if pub.Code != http.StatusNotFound {
		t.Fatalf("public get after unpublish = %d, want 404", pub.Code)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	bob := a.signup(t, "Bob", "b@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPut, "/events/"+itoa(ev.ID), bob.Token, map[string]any{"name": "hijack"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-owner update = %d, want 401", rec.Code)
	}
	rec = a.do(t, http.MethodDelete, "/events/"+itoa(ev.ID), bob.Token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-owner delete = %d, want 401", rec.Code)
	}
}

func TestUpdateMissingEvent(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	rec := a.do(t, http.MethodPut, "/events/999", alice.Token, map[string]any{"name": "X"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteCascades(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")

	fields := eventFields()
	fields["isPublic"] = true
	ev := a.createEvent(t, alice.Token, fields)

	a.do(t, http.MethodPost, "/events/public/"+itoa(ev.ID)+"/register", "", map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/tasks", alice.Token, map[string]string{
		"description": "Book venue",
	})

	rec := a.do(t, http.MethodDelete, "/events/"+itoa(ev.ID), alice.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Nothing embedded in the event is reachable anymore.
	list := a.do(t, http.MethodGet, "/events", alice.Token, nil)
	var events []model.Event
	decode(t, list, &events)
	if len(events) != 0 {
		t.Fatalf("events after delete = %+v", events)
	}
	tickets, err := a.mem.EventsByGuestEmail(context.Background(), "c@x.com")
	if err != nil || len(tickets) != 0 {
		t.Fatalf("guest still reachable after cascade: %+v %v", tickets, err)
	}
}
