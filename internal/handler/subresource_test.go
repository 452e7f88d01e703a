package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/iliyamo/event-planner/internal/model"
)

func TestAddGuestStartsPending(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/guests", alice.Token, map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add guest = %d body %s", rec.Code, rec.Body.String())
	}
	var guest model.Guest
	decode(t, rec, &guest)
	if guest.Status != model.GuestPending {
		t.Fatalf("status = %q, want Pending", guest.Status)
	}

	missing := a.do(t, http.MethodPost, "/events/999/guests", alice.Token, map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("add guest to missing event = %d, want 404", missing.Code)
	}
}

func TestUpdateGuestStatus(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/guests", alice.Token, map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	var guest model.Guest
	decode(t, rec, &guest)

	base := "/events/" + itoa(ev.ID) + "/guests/" + itoa(guest.ID)
	upd := a.do(t, http.MethodPatch, base, alice.Token, map[string]string{"status": model.GuestMaybe})
	if upd.Code != http.StatusNoContent {
		t.Fatalf("update status = %d", upd.Code)
	}
	got, err := a.mem.EventByID(context.Background(), ev.ID)
	if err != nil || got.Guests[0].Status != model.GuestMaybe {
		t.Fatalf("stored status = %+v %v", got.Guests, err)
	}

	bad := a.do(t, http.MethodPatch, base, alice.Token, map[string]string{"status": "Perhaps"})
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("invalid status = %d, want 400", bad.Code)
	}
	gone := a.do(t, http.MethodPatch, "/events/"+itoa(ev.ID)+"/guests/999", alice.Token,
		map[string]string{"status": model.GuestDeclined})
	if gone.Code != http.StatusNotFound {
		t.Fatalf("unknown guest = %d, want 404", gone.Code)
	}
}

func TestDeleteGuest(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/guests", alice.Token, map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	var guest model.Guest
	decode(t, rec, &guest)

	del := a.do(t, http.MethodDelete, "/events/"+itoa(ev.ID)+"/guests/"+itoa(guest.ID), alice.Token, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete guest = %d", del.Code)
	}
	got, _ := a.mem.EventByID(context.Background(), ev.ID)
	if len(got.Guests) != 0 {
		t.Fatalf("guests after delete = %+v", got.Guests)
	}
}

func TestTaskToggleRoundTrip(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/tasks", alice.Token, map[string]string{
		"description": "Book venue",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add task = %d body %s", rec.Code, rec.Body.String())
	}
	var task model.Task
	decode(t, rec, &task)
	if task.Completed {
		t.Fatal("new task already completed")
	}

	toggle := "/events/" + itoa(ev.ID) + "/tasks/" + itoa(task.ID) + "/toggle"
	if r := a.do(t, http.MethodPatch, toggle, alice.Token, nil); r.Code != http.StatusNoContent {
		t.Fatalf("first toggle = %d", r.Code)
	}
	got, _ := a.mem.EventByID(context.Background(), ev.ID)
	if !got.Tasks[0].Completed {
		t.Fatal("task not completed after first toggle")
	}

	// Toggling twice lands back where it started.
	if r := a.do(t, http.MethodPatch, toggle, alice.Token, nil); r.Code != http.StatusNoContent {
		t.Fatalf("second toggle = %d", r.Code)
	}
	got, _ = a.mem.EventByID(context.Background(), ev.ID)
	if got.Tasks[0].Completed {
		t.Fatal("task still completed after second toggle")
	}
}

func TestDeleteTask(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/tasks", alice.Token, map[string]string{
		"description": "Book venue",
	})
	var task model.Task
	decode(t, rec, &task)

	del := a.do(t, http.MethodDelete, "/events/"+itoa(ev.ID)+"/tasks/"+itoa(task.ID), alice.Token, nil)
	if del.Code != http.StatusNoContent {
		t.Fatalf("delete task = %d", del.Code)
	}
	gone := a.do(t, http.MethodDelete, "/events/"+itoa(ev.ID)+"/tasks/"+itoa(task.ID), alice.Token, nil)
	if gone.Code != http.StatusNotFound {
		t.Fatalf("delete again = %d, want 404", gone.Code)
	}
}

func TestPermissiveSubresourcePolicyByDefault(t *testing.T) {
	a := newApp(t)
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	bob := a.signup(t, "Bob", "b@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	// Historically any authenticated user may manage guests and tasks on
	// any event; the default configuration preserves that.
	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/guests", bob.Token, map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("non-owner add guest (permissive) = %d, want 201", rec.Code)
	}
}

func TestOwnerOnlySubresourcePolicy(t *testing.T) {
	a := newApp(t)
	a.events.OwnerOnlySubresources = true
	alice := a.signup(t, "Alice", "a@x.com", "pw")
	bob := a.signup(t, "Bob", "b@x.com", "pw")
	ev := a.createEvent(t, alice.Token, eventFields())

	rec := a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/guests", bob.Token, map[string]string{
		"name": "Carol", "email": "c@x.com",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner add guest (strict) = %d, want 403", rec.Code)
	}
	// The owner is unaffected.
	rec = a.do(t, http.MethodPost, "/events/"+itoa(ev.ID)+"/tasks", alice.Token, map[string]string{
		"description": "Book venue",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("owner add task (strict) = %d, want 201", rec.Code)
	}
}
