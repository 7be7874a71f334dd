package model

// ReservationCapacity is the maximum number of reservations any single
// event may hold.
const ReservationCapacity = 100

// Reservation links a caller-supplied identifier to an Event. The
// CheckIn column historically held a check-in date; the current API
// reuses it for the registrant's identifier (e.g. a student id). The
// CheckOut column only carries data for rows created under the
// date-window overlap policy, where CheckIn/CheckOut are both dates.
// UserID is always the session identity of whoever created the row.
type Reservation struct {
	ID       int64   // reservation.id
	EventID  int64   // reservation.event_id
	UserID   int64   // reservation.user_id
	CheckIn  string  // reservation.check_in
	CheckOut *string // reservation.check_out (nullable)
	Status   bool    // reservation.status
}
