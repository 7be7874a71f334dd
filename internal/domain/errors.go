// Package domain holds the error kinds shared between the service layer
// and the HTTP handlers. Rule violations are raised at the point of
// detection and travel unmodified to the boundary, where they are mapped
// to transport-level responses.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInactiveEvent is returned when a reservation targets an event
	// whose status flag is false.
	ErrInactiveEvent = errors.New("event is inactive")

	// ErrCapacityExceeded is returned when an event already holds the
	// maximum number of reservations (100).
	ErrCapacityExceeded = errors.New("event capacity exceeded")

	// ErrDuplicateRegistration is returned when the same identifier is
	// registered twice against one event.
	ErrDuplicateRegistration = errors.New("identifier already registered for this event")

	// ErrDateOverlap is returned when a proposed reservation window
	// intersects an existing reservation for the same event.
	ErrDateOverlap = errors.New("reservation dates overlap an existing reservation")

	// ErrReservationDates is returned when a reservation window falls
	// outside the event's availability window.
	ErrReservationDates = errors.New("reservation dates outside event availability")

	// ErrInvalidEventUpdate is returned when an event patch conflicts
	// with reservations that already reference the event.
	ErrInvalidEventUpdate = errors.New("event update conflicts with existing reservations")

	// ErrInvalidPagination is returned for a negative page number or a
	// page size below one.
	ErrInvalidPagination = errors.New("invalid pagination parameters")

	// ErrStorage wraps failures of the feedback file store.
	ErrStorage = errors.New("storage failure")

	// ErrInvalidCredentials is returned on login with an unknown student
	// id or a wrong password. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid student id or password")

	// ErrStudentIDTaken is returned when registering an already used
	// student id.
	ErrStudentIDTaken = errors.New("student id already registered")

	// ErrSessionRequired is returned when an operation needs an
	// authenticated session and none was supplied.
	ErrSessionRequired = errors.New("session required")
)

// NotFoundError reports that an entity referenced by id does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d does not exist", e.Entity, e.ID)
}

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DateFormatError reports a string that is not a valid YYYY-MM-DD
// calendar date.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Input)
}

// InvalidSortFieldError reports a sortBy value outside the allow-list of
// sortable event attributes.
type InvalidSortFieldError struct {
	Field string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("cannot sort events by %q", e.Field)
}
