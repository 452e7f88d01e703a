package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-planner/internal/model"
	"github.com/iliyamo/event-planner/internal/store"
)

// Guest and task mutations. Every statement is scoped by event_id as well
// as the child id so a guest of one event can never be addressed through
// another event's URL.

func (r *EventRepo) AddGuest(ctx context.Context, eventID uint64, g *model.Guest) error {
	if err := r.eventExists(ctx, eventID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO guests (event_id, name, email, status) VALUES (?,?,?,?)",
		eventID, g.Name, g.Email, g.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

func (r *EventRepo) UpdateGuestStatus(ctx context.Context, eventID, guestID uint64, status string) error {
	if err := r.eventExists(ctx, eventID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE guests SET status=? WHERE id=? AND event_id=?", status, guestID, eventID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, store.ErrGuestNotFound)
}

func (r *EventRepo) DeleteGuest(ctx context.Context, eventID, guestID uint64) error {
	if err := r.eventExists(ctx, eventID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM guests WHERE id=? AND event_id=?", guestID, eventID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, store.ErrGuestNotFound)
}

func (r *EventRepo) AddTask(ctx context.Context, eventID uint64, t *model.Task) error {
	if err := r.eventExists(ctx, eventID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks (event_id, description, completed) VALUES (?,?,?)",
		eventID, t.Description, t.Completed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// ToggleTask flips completed in place and reads the new value back.
func (r *EventRepo) ToggleTask(ctx context.Context, eventID, taskID uint64) (bool, error) {
	if err := r.eventExists(ctx, eventID); err != nil {
		return false, err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET completed = NOT completed WHERE id=? AND event_id=?", taskID, eventID)
	if err != nil {
		return false, err
	}
	if err := notFoundIfZero(res, store.ErrTaskNotFound); err != nil {
		return false, err
	}
	var completed bool
	err = r.DB.QueryRowContext(ctx,
		"SELECT completed FROM tasks WHERE id=? AND event_id=?", taskID, eventID).Scan(&completed)
	return completed, err
}

func (r *EventRepo) DeleteTask(ctx context.Context, eventID, taskID uint64) error {
	if err := r.eventExists(ctx, eventID); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id=? AND event_id=?", taskID, eventID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, store.ErrTaskNotFound)
}

// eventExists distinguishes a missing event from a missing child so the
// API can report which one was not found.
func (r *EventRepo) eventExists(ctx context.Context, eventID uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id=? LIMIT 1", eventID).Scan(&one)
	if err == sql.ErrNoRows {
		return store.ErrEventNotFound
	}
	return err
}
