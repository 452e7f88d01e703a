// Package store defines the persistence contracts for users and event
// aggregates together with the sentinel errors shared by every
// implementation. Handlers depend on these interfaces only, so the MySQL
// repositories can be swapped for the in-memory store in tests.
package store

import (
	"context"
	"errors"

	"github.com/iliyamo/event-planner/internal/model"
)

// ErrEmailExists is returned by CreateUser when another account already
// uses the email. Handlers translate it into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrEventNotFound is returned when an event id does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrGuestNotFound is returned when a guest id does not exist within the
// addressed event.
var ErrGuestNotFound = errors.New("guest not found")

// ErrTaskNotFound is returned when a task id does not exist within the
// addressed event.
var ErrTaskNotFound = errors.New("task not found")

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts u, assigns its generated ID, and returns
	// ErrEmailExists on a duplicate email.
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (model.User, error)
	UserByID(ctx context.Context, id uint64) (model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// EventStore persists event aggregates. Reads always return the full
// aggregate (event row plus guests and tasks); mutations address the
// aggregate by event id so an implementation can keep the unit intact.
type EventStore interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	EventByID(ctx context.Context, id uint64) (model.Event, error)
	EventsByOwner(ctx context.Context, userID uint64) ([]model.Event, error)
	// EventsByGuestEmail lists events containing a guest with the given
	// email, backing the "my tickets" view.
	EventsByGuestEmail(ctx context.Context, email string) ([]model.Event, error)
	// UpdateEvent overwrites the scalar fields of the event row. Embedded
	// guests and tasks are not touched.
	UpdateEvent(ctx context.Context, e *model.Event) error
	// DeleteEvent removes the event and cascades to its guests and tasks.
	DeleteEvent(ctx context.Context, id uint64) error

	AddGuest(ctx context.Context, eventID uint64, g *model.Guest) error
	UpdateGuestStatus(ctx context.Context, eventID, guestID uint64, status string) error
	DeleteGuest(ctx context.Context, eventID, guestID uint64) error

	AddTask(ctx context.Context, eventID uint64, t *model.Task) error
	// ToggleTask flips the completed flag and returns the new value.
	ToggleTask(ctx context.Context, eventID, taskID uint64) (bool, error)
	DeleteTask(ctx context.Context, eventID, taskID uint64) error
}
