// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// ReservationCreatedEvent is published after a reservation is
// persisted. It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID int64  `json:"reservation_id"`
	EventID       int64  `json:"event_id"`
	EventName     string `json:"event_name"`
	UserID        int64  `json:"user_id"`
	Identifier    string `json:"identifier"`
	CreatedAt     string `json:"created_at"`
}
