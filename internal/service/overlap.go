package service

import (
	"time"

	"github.com/yerassyl/event-reservation/internal/dateutil"
	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
)

// Overlap policy selection. The existence policy is the current
// production rule: reservations carry an identifier, not dates, so any
// reservation at all blocks an event patch and reservation creation
// needs no date reconciliation. The window policy is the legacy rule
// where check_in/check_out are calendar dates and real interval
// arithmetic applies.
type OverlapPolicy int

const (
	// OverlapExistence blocks event patches whenever any reservation
	// references the event; reservation dates are not load-bearing.
	OverlapExistence OverlapPolicy = iota
	// OverlapWindow applies date-window reconciliation: event patches
	// must keep every reservation window contained, and new reservation
	// windows may not intersect existing ones.
	OverlapWindow
)

// WindowsOverlap reports whether two closed date intervals intersect.
// A shared endpoint counts as an overlap: the only way two windows do
// not conflict is for one to end strictly before the other begins.
func WindowsOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aTo.Before(bFrom) && !bTo.Before(aFrom)
}

// reservationWindow parses a reservation's check_in/check_out as dates.
// Under the window policy both must be present and well-formed.
func reservationWindow(r *model.Reservation) (time.Time, time.Time, error) {
	from, err := dateutil.ParseDate(r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if r.CheckOut == nil {
		return time.Time{}, time.Time{}, &domain.DateFormatError{Input: ""}
	}
	to, err := dateutil.ParseDate(*r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// checkWindowContainsReservations verifies that the event's proposed
// availability window still fully contains every existing reservation
// window. An unset window while reservations exist is a conflict.
func checkWindowContainsReservations(e *model.Event, reservations []model.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	if e.WindowUnset() {
		return domain.ErrInvalidEventUpdate
	}
	from, err := dateutil.ParseDate(*e.AvailableFrom)
	if err != nil {
		return err
	}
	to, err := dateutil.ParseDate(*e.AvailableTo)
	if err != nil {
		return err
	}
	for i := range reservations {
		rFrom, rTo, err := reservationWindow(&reservations[i])
		if err != nil {
			return err
		}
		if rFrom.Before(from) || rTo.After(to) {
			return domain.ErrInvalidEventUpdate
		}
	}
	return nil
}

// checkReservationWindow applies the window-policy checks for a new
// reservation: its window must sit inside the event's availability
// window and must not intersect any existing reservation for the event.
func checkReservationWindow(e *model.Event, proposal *model.Reservation, existing []model.Reservation) error {
	pFrom, pTo, err := reservationWindow(proposal)
	if err != nil {
		return err
	}
	if e.WindowUnset() {
		return domain.ErrReservationDates
	}
	eFrom, err := dateutil.ParseDate(*e.AvailableFrom)
	if err != nil {
		return err
	}
	eTo, err := dateutil.ParseDate(*e.AvailableTo)
	if err != nil {
		return err
	}
	if pFrom.Before(eFrom) || pTo.After(eTo) {
		return domain.ErrReservationDates
	}
	for i := range existing {
		rFrom, rTo, err := reservationWindow(&existing[i])
		if err != nil {
			return err
		}
		if WindowsOverlap(pFrom, pTo, rFrom, rTo) {
			return domain.ErrDateOverlap
		}
	}
	return nil
}
