package store

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/event-planner/internal/model"
)

// Memory is an in-process implementation of UserStore and EventStore.
// It backs the handler tests and lets the server run without MySQL in
// development. All maps are guarded by a single mutex; copies are handed
// out so callers never alias internal state.
type Memory struct {
	mu     sync.Mutex
	users  map[uint64]model.User
	events map[uint64]model.Event
	nextID uint64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:  make(map[uint64]model.User),
		events: make(map[uint64]model.Event),
	}
}

func (m *Memory) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Email == u.Email {
			return ErrEmailExists
		}
	}
	u.ID = m.id()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (m *Memory) UserByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *Memory) CountUsers(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// copyEvent deep-copies an aggregate so callers cannot mutate the store's
// slices through the returned value. Empty collections stay non-nil so
// they serialize as [] rather than null, like the SQL store.
func copyEvent(e model.Event) model.Event {
	out := e
	out.Guests = make([]model.Guest, len(e.Guests))
	copy(out.Guests, e.Guests)
	out.Tasks = make([]model.Task, len(e.Tasks))
	copy(out.Tasks, e.Tasks)
	return out
}

func (m *Memory) CreateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.id()
	for i := range e.Guests {
		e.Guests[i].ID = m.id()
	}
	for i := range e.Tasks {
		e.Tasks[i].ID = m.id()
	}
	if e.Guests == nil {
		e.Guests = []model.Guest{}
	}
	if e.Tasks == nil {
		e.Tasks = []model.Task{}
	}
	m.events[e.ID] = copyEvent(*e)
	return nil
}

func (m *Memory) EventByID(_ context.Context, id uint64) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return copyEvent(e), nil
}

func (m *Memory) EventsByOwner(_ context.Context, userID uint64) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Event{}
	for _, e := range m.events {
		if e.UserID == userID {
			out = append(out, copyEvent(e))
		}
	}
	sortByID(out)
	return out, nil
}

func (m *Memory) EventsByGuestEmail(_ context.Context, email string) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Event{}
	for _, e := range m.events {
		for _, g := range e.Guests {
			if g.Email == email {
				out = append(out, copyEvent(e))
				break
			}
		}
	}
	sortByID(out)
	return out, nil
}

// sortByID keeps listings in insertion order, which ids follow.
func sortByID(events []model.Event) {
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
}

func (m *Memory) UpdateEvent(_ context.Context, e *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.events[e.ID]
	if !ok {
		return ErrEventNotFound
	}
	cur.Name = e.Name
	cur.Date = e.Date
	cur.Time = e.Time
	cur.Location = e.Location
	cur.Description = e.Description
	cur.IsPublic = e.IsPublic
	m.events[e.ID] = cur
	return nil
}

func (m *Memory) DeleteEvent(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *Memory) AddGuest(_ context.Context, eventID uint64, g *model.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	g.ID = m.id()
	e.Guests = append(e.Guests, *g)
	m.events[eventID] = e
	return nil
}

func (m *Memory) UpdateGuestStatus(_ context.Context, eventID, guestID uint64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	for i := range e.Guests {
		if e.Guests[i].ID == guestID {
			e.Guests[i].Status = status
			m.events[eventID] = e
			return nil
		}
	}
	return ErrGuestNotFound
}

func (m *Memory) DeleteGuest(_ context.Context, eventID, guestID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	for i := range e.Guests {
		if e.Guests[i].ID == guestID {
			e.Guests = append(e.Guests[:i], e.Guests[i+1:]...)
			m.events[eventID] = e
			return nil
		}
	}
	return ErrGuestNotFound
}

func (m *Memory) AddTask(_ context.Context, eventID uint64, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	t.ID = m.id()
	e.Tasks = append(e.Tasks, *t)
	m.events[eventID] = e
	return nil
}

func (m *Memory) ToggleTask(_ context.Context, eventID, taskID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return false, ErrEventNotFound
	}
	for i := range e.Tasks {
		if e.Tasks[i].ID == taskID {
			e.Tasks[i].Completed = !e.Tasks[i].Completed
			m.events[eventID] = e
			return e.Tasks[i].Completed, nil
		}
	}
	return false, ErrTaskNotFound
}

func (m *Memory) DeleteTask(_ context.Context, eventID, taskID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	for i := range e.Tasks {
		if e.Tasks[i].ID == taskID {
			e.Tasks = append(e.Tasks[:i], e.Tasks[i+1:]...)
			m.events[eventID] = e
			return nil
		}
	}
	return ErrTaskNotFound
}
