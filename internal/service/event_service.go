package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/dateutil"
	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
)

// sortColumns maps the sortable event attribute names accepted by the
// API to their table columns. Anything outside this allow-list is an
// InvalidSortFieldError; sorting is validated as data on purpose.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"type":          "type",
	"description":   "description",
	"availableFrom": "available_from",
	"availableTo":   "available_to",
	"status":        "status",
}

// EventService implements the event operations: CRUD, the paginated
// listing, the availability search and the overlap reconciliation
// applied on patches.
type EventService struct {
	events       EventStore
	reservations ReservationStore
	policy       OverlapPolicy
	log          zerolog.Logger
}

// NewEventService wires an EventService.
func NewEventService(events EventStore, reservations ReservationStore, policy OverlapPolicy, log zerolog.Logger) *EventService {
	return &EventService{events: events, reservations: reservations, policy: policy, log: log}
}

// GetAllEvents returns every event.
func (s *EventService) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.ListAll(ctx)
}

// GetEventPagedList returns one page of events in ascending order of
// sortBy. A page past the end of the data is an empty slice, never an
// error.
func (s *EventService) GetEventPagedList(ctx context.Context, pageNumber, pageSize int, sortBy string) ([]model.Event, error) {
	if pageNumber < 0 || pageSize < 1 {
		return nil, domain.ErrInvalidPagination
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return nil, &domain.InvalidSortFieldError{Field: sortBy}
	}
	return s.events.ListPaged(ctx, col, pageSize, pageNumber*pageSize)
}

// GetEvent returns the event with the given id, validating existence
// first.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	if err := s.requireEventExists(ctx, id); err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, id)
}

// GetAvailable returns events whose availability window matches the
// legacy between-dates query. Both bounds must be well-formed dates.
func (s *EventService) GetAvailable(ctx context.Context, dateFrom, dateTo string) ([]model.Event, error) {
	if _, err := dateutil.ParseDate(dateFrom); err != nil {
		return nil, err
	}
	if _, err := dateutil.ParseDate(dateTo); err != nil {
		return nil, err
	}
	return s.events.ListAvailableBetween(ctx, dateFrom, dateTo)
}

// SaveEvent persists a new event and returns its id. Empty-string
// availability dates are normalized to unset (NULL) before the insert.
func (s *EventService) SaveEvent(ctx context.Context, e *model.Event) (int64, error) {
	normalizeWindow(e)
	id, err := s.events.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("event_id", id).Str("name", e.Name).Msg("event created")
	return id, nil
}

// PatchEvent updates an existing event after the overlap reconciler
// agrees the new state does not conflict with current reservations.
// The returned flag mirrors the original API: true when the event still
// exists after the update.
func (s *EventService) PatchEvent(ctx context.Context, e *model.Event) (bool, error) {
	if err := s.requireEventExists(ctx, e.ID); err != nil {
		return false, err
	}
	if err := s.DoesReservationOverlap(ctx, e); err != nil {
		return false, err
	}
	normalizeWindow(e)
	if err := s.events.Update(ctx, e); err != nil {
		return false, err
	}
	s.log.Info().Int64("event_id", e.ID).Msg("event updated")
	return s.events.ExistsByID(ctx, e.ID)
}

// DoesReservationOverlap decides whether the proposed event state
// conflicts with reservations that already reference it, under the
// configured policy.
func (s *EventService) DoesReservationOverlap(ctx context.Context, e *model.Event) error {
	matching, err := s.reservations.ListByEvent(ctx, e.ID)
	if err != nil {
		return err
	}
	switch s.policy {
	case OverlapWindow:
		return checkWindowContainsReservations(e, matching)
	default:
		if len(matching) != 0 {
			return domain.ErrInvalidEventUpdate
		}
		return nil
	}
}

// DeleteEvent removes the event and, cascading, every reservation that
// references it. Afterwards the id sequence is resynced best-effort;
// a resync failure is logged and never fails the delete.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) (bool, error) {
	if err := s.requireEventExists(ctx, id); err != nil {
		return false, err
	}
	if err := s.events.DeleteCascade(ctx, id); err != nil {
		return false, err
	}
	s.log.Info().Int64("event_id", id).Msg("event deleted with its reservations")

	if err := s.events.ResyncAutoIncrement(ctx); err != nil {
		s.log.Debug().Err(err).Msg("could not resync event id sequence")
	}

	exists, err := s.events.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// requireEventExists fails with a NotFoundError when the id matches no
// event. Pure check, no side effects.
func (s *EventService) requireEventExists(ctx context.Context, id int64) error {
	exists, err := s.events.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "event", ID: id}
	}
	return nil
}

// normalizeWindow stores a fully empty availability window as unset
// rather than as empty strings.
func normalizeWindow(e *model.Event) {
	emptyFrom := e.AvailableFrom == nil || *e.AvailableFrom == ""
	emptyTo := e.AvailableTo == nil || *e.AvailableTo == ""
	if emptyFrom && emptyTo {
		e.AvailableFrom = nil
		e.AvailableTo = nil
	}
}
