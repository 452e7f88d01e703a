// Package repository contains the MySQL data access layer. Events form an
// aggregate with their guests and tasks: reads always return the event row
// together with both child collections, and deletes cascade through the
// foreign keys declared in schema.sql.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-planner/internal/model"
	"github.com/iliyamo/event-planner/internal/store"
)

// EventRepo is the MySQL implementation of store.EventStore.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// CreateEvent inserts the event row and any guests/tasks supplied with it
// inside one transaction, assigning the generated ids back to the model.
func (r *EventRepo) CreateEvent(ctx context.Context, e *model.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO events (name, date, time, location, description, is_public, user_id, user_name) VALUES (?,?,?,?,?,?,?,?)",
		e.Name, e.Date, e.Time, e.Location, e.Description, e.IsPublic, e.UserID, e.UserName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	for i := range e.Guests {
		g := &e.Guests[i]
		res, err := tx.ExecContext(ctx,
			"INSERT INTO guests (event_id, name, email, status) VALUES (?,?,?,?)",
			e.ID, g.Name, g.Email, g.Status)
		if err != nil {
			return err
		}
		gid, err := res.LastInsertId()
		if err != nil {
			return err
		}
		g.ID = uint64(gid)
	}
	for i := range e.Tasks {
		t := &e.Tasks[i]
		res, err := tx.ExecContext(ctx,
			"INSERT INTO tasks (event_id, description, completed) VALUES (?,?,?)",
			e.ID, t.Description, t.Completed)
		if err != nil {
			return err
		}
		tid, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.ID = uint64(tid)
	}
	if e.Guests == nil {
		e.Guests = []model.Guest{}
	}
	if e.Tasks == nil {
		e.Tasks = []model.Task{}
	}
	return tx.Commit()
}

// EventByID loads the full aggregate.
func (r *EventRepo) EventByID(ctx context.Context, id uint64) (model.Event, error) {
	var e model.Event
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,date,time,location,description,is_public,user_id,user_name FROM events WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.Name, &e.Date, &e.Time, &e.Location, &e.Description, &e.IsPublic, &e.UserID, &e.UserName)
	if err == sql.ErrNoRows {
		return model.Event{}, store.ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	if err := r.loadChildren(ctx, &e); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

func (r *EventRepo) loadChildren(ctx context.Context, e *model.Event) error {
	e.Guests = []model.Guest{}
	e.Tasks = []model.Task{}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,status FROM guests WHERE event_id=? ORDER BY id", e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.Status); err != nil {
			return err
		}
		e.Guests = append(e.Guests, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	trows, err := r.DB.QueryContext(ctx,
		"SELECT id,description,completed FROM tasks WHERE event_id=? ORDER BY id", e.ID)
	if err != nil {
		return err
	}
	defer trows.Close()
	for trows.Next() {
		var t model.Task
		if err := trows.Scan(&t.ID, &t.Description, &t.Completed); err != nil {
			return err
		}
		e.Tasks = append(e.Tasks, t)
	}
	return trows.Err()
}

func (r *EventRepo) listWhere(ctx context.Context, where string, arg any) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,date,time,location,description,is_public,user_id,user_name FROM events WHERE "+where+" ORDER BY id", arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Time, &e.Location, &e.Description, &e.IsPublic, &e.UserID, &e.UserName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *EventRepo) EventsByOwner(ctx context.Context, userID uint64) ([]model.Event, error) {
	return r.listWhere(ctx, "user_id=?", userID)
}

// EventsByGuestEmail backs the "my tickets" view: every event that has a
// guest registered under the given email.
func (r *EventRepo) EventsByGuestEmail(ctx context.Context, email string) ([]model.Event, error) {
	return r.listWhere(ctx, "id IN (SELECT event_id FROM guests WHERE email=?)", email)
}

// UpdateEvent overwrites the scalar columns of the event row. Guests and
// tasks are managed through their own statements.
func (r *EventRepo) UpdateEvent(ctx context.Context, e *model.Event) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET name=?, date=?, time=?, location=?, description=?, is_public=? WHERE id=?",
		e.Name, e.Date, e.Time, e.Location, e.Description, e.IsPublic, e.ID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, store.ErrEventNotFound)
}

// DeleteEvent removes the event; guests and tasks go with it via
// ON DELETE CASCADE.
func (r *EventRepo) DeleteEvent(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, store.ErrEventNotFound)
}

// notFoundIfZero maps "no rows affected" onto the given sentinel. An
// UPDATE that writes identical values still reports a matched row on our
// connection settings, so zero really means the id was absent.
func notFoundIfZero(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
