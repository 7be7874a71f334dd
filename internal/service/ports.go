// Package service implements the booking rules: existence validation,
// overlap reconciliation, the capacity/uniqueness guard, paginated
// listing and the user account operations. Services depend on small
// store interfaces so the rules can be exercised against in-memory
// implementations in tests; internal/repository provides the MySQL
// implementations.
package service

import (
	"context"

	"github.com/yerassyl/event-reservation/internal/model"
)

// EventStore is the persistence surface the event rules need.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]model.Event, error)
	ListPaged(ctx context.Context, sortCol string, limit, offset int) ([]model.Event, error)
	ListAvailableBetween(ctx context.Context, dateFrom, dateTo string) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	DeleteCascade(ctx context.Context, id int64) error
	ResyncAutoIncrement(ctx context.Context) error
}

// ReservationStore is the persistence surface the reservation rules need.
type ReservationStore interface {
	Create(ctx context.Context, r *model.Reservation) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Reservation, error)
	CountByEvent(ctx context.Context, eventID int64) (int64, error)
	ExistsByEventAndCheckIn(ctx context.Context, eventID int64, checkIn string) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore is the persistence surface the account operations need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.User, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ReservationNotifier receives a fire-and-forget signal after a
// reservation is persisted. Implementations must never fail the
// primary operation; internal/queue publishes to RabbitMQ.
type ReservationNotifier interface {
	ReservationCreated(ctx context.Context, r *model.Reservation, e *model.Event)
}
