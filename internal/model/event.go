package model

// Guest RSVP statuses. Owner-added guests start as Pending; guests who
// register themselves through the public page start as Attending.
const (
	GuestPending   = "Pending"
	GuestAttending = "Attending"
	GuestMaybe     = "Maybe"
	GuestDeclined  = "Declined"
)

// ValidGuestStatus reports whether s is one of the four RSVP statuses.
func ValidGuestStatus(s string) bool {
	switch s {
	case GuestPending, GuestAttending, GuestMaybe, GuestDeclined:
		return true
	}
	return false
}

// Event is the aggregate root: an event row together with its embedded
// guest and task collections. Guests and tasks have no life of their own;
// they are created, mutated and deleted only through their parent event,
// and deleting the event removes them all.
//
// Date is a calendar date ("2006-01-02") and Time a local wall-clock
// string ("15:04"); neither carries a timezone. UserName denormalizes the
// owner's display name so public pages can show a host without a join.
type Event struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	IsPublic    bool    `json:"isPublic"`
	UserID      uint64  `json:"userId"`
	UserName    string  `json:"userName"`
	Guests      []Guest `json:"guests"`
	Tasks       []Task  `json:"tasks"`
}

// Guest is an invitee embedded in an event.
type Guest struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Task is a to-do item embedded in an event.
type Task struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ScrapedEvent is a transient event descriptor produced by the AI proxy.
// It is never persisted as-is; registering for one converts it into a
// private Event owned by the registering user.
type ScrapedEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
