package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
)

// ReservationService implements reservation CRUD and the guard sequence
// applied when a reservation is created: event existence, active
// status, the capacity ceiling, the one-identifier-per-event rule and,
// under the window policy, date reconciliation.
type ReservationService struct {
	reservations ReservationStore
	events       EventStore
	notifier     ReservationNotifier
	policy       OverlapPolicy
	log          zerolog.Logger

	// Serializes the check-then-act guard per event so two concurrent
	// requests cannot both pass the capacity or duplicate check.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewReservationService wires a ReservationService. notifier may be nil
// when no broker is configured.
func NewReservationService(reservations ReservationStore, events EventStore, notifier ReservationNotifier, policy OverlapPolicy, log zerolog.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		events:       events,
		notifier:     notifier,
		policy:       policy,
		log:          log,
		locks:        map[int64]*sync.Mutex{},
	}
}

// GetAllReservations returns every reservation.
func (s *ReservationService) GetAllReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// GetReservation returns the reservation with the given id, validating
// existence first.
func (s *ReservationService) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	if err := s.requireReservationExists(ctx, id); err != nil {
		return nil, err
	}
	return s.reservations.GetByID(ctx, id)
}

// SaveReservation runs the guard sequence and persists the reservation.
// userID is the authenticated identity passed in by the caller; the
// service never reads ambient session state. Returns the new id.
func (s *ReservationService) SaveReservation(ctx context.Context, res *model.Reservation, userID int64) (int64, error) {
	unlock := s.lockEvent(res.EventID)
	defer unlock()

	exists, err := s.events.ExistsByID(ctx, res.EventID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &domain.NotFoundError{Entity: "event", ID: res.EventID}
	}

	event, err := s.events.GetByID(ctx, res.EventID)
	if err != nil {
		return 0, err
	}
	if !event.Status {
		return 0, domain.ErrInactiveEvent
	}

	count, err := s.reservations.CountByEvent(ctx, res.EventID)
	if err != nil {
		return 0, err
	}
	if count >= model.ReservationCapacity {
		return 0, domain.ErrCapacityExceeded
	}

	if res.CheckIn != "" {
		taken, err := s.reservations.ExistsByEventAndCheckIn(ctx, res.EventID, res.CheckIn)
		if err != nil {
			return 0, err
		}
		if taken {
			return 0, domain.ErrDuplicateRegistration
		}
	}

	if s.policy == OverlapWindow {
		existing, err := s.reservations.ListByEvent(ctx, res.EventID)
		if err != nil {
			return 0, err
		}
		if err := checkReservationWindow(event, res, existing); err != nil {
			return 0, err
		}
	}

	res.UserID = userID
	id, err := s.reservations.Create(ctx, res)
	if err != nil {
		return 0, err
	}
	res.ID = id
	s.log.Info().
		Int64("reservation_id", id).
		Int64("event_id", res.EventID).
		Int64("user_id", userID).
		Msg("reservation created")

	if s.notifier != nil {
		go s.notifier.ReservationCreated(context.WithoutCancel(ctx), res, event)
	}
	return id, nil
}

// DeleteReservation removes one reservation after validating existence.
// The returned flag mirrors the original API: true when the row is gone.
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) (bool, error) {
	if err := s.requireReservationExists(ctx, id); err != nil {
		return false, err
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		return false, err
	}
	exists, err := s.reservations.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// requireReservationExists fails with a NotFoundError when the id
// matches no reservation. Pure check, no side effects.
func (s *ReservationService) requireReservationExists(ctx context.Context, id int64) error {
	exists, err := s.reservations.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "reservation", ID: id}
	}
	return nil
}

// lockEvent acquires the per-event mutex, creating it on first use.
func (s *ReservationService) lockEvent(eventID int64) func() {
	s.mu.Lock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}
