// Package repository provides plain database/sql access to the event,
// reservation and user tables. Sentinel errors defined here let the
// service layer distinguish failure scenarios without inspecting driver
// errors.
package repository

import "errors"

// ErrEventNotFound is returned when an event id matches no row.
var ErrEventNotFound = errors.New("event not found")

// ErrReservationNotFound is returned when a reservation id matches no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when a user id or student id matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrStudentIDExists is returned when inserting a user whose student id
// is already taken.
var ErrStudentIDExists = errors.New("student id already exists")
