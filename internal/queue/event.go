// Package queue defines message payloads exchanged over the message broker.
package queue

// GuestRegisteredEvent is published when a guest joins an event, either
// through the public self-registration page or by registering a scraped
// event. It carries enough for downstream consumers to log or notify the
// host without querying the primary database.
type GuestRegisteredEvent struct {
	EventID      uint64 `json:"event_id"`
	EventName    string `json:"event_name"`
	OwnerID      uint64 `json:"owner_id"`
	GuestID      uint64 `json:"guest_id"`
	GuestName    string `json:"guest_name"`
	GuestEmail   string `json:"guest_email"`
	Status       string `json:"status"`
	Source       string `json:"source"` // "public" or "scraped"
	RegisteredAt string `json:"registered_at"`
}
