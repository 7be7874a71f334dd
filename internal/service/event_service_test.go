package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
)

func newEventService(t *testing.T, policy OverlapPolicy) (*EventService, *fakeEventStore, *fakeReservationStore) {
	t.Helper()
	events := newFakeEventStore()
	reservations := newFakeReservationStore()
	svc := NewEventService(events, reservations, policy, zerolog.Nop())
	return svc, events, reservations
}

func seedEvent(t *testing.T, events *fakeEventStore, e model.Event) int64 {
	t.Helper()
	id, err := events.Create(context.Background(), &e)
	require.NoError(t, err)
	return id
}

func TestGetEventPagedList_RejectsBadPagination(t *testing.T) {
	svc, _, _ := newEventService(t, OverlapExistence)

	_, err := svc.GetEventPagedList(context.Background(), -1, 10, "id")
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)

	_, err = svc.GetEventPagedList(context.Background(), 0, 0, "id")
	assert.ErrorIs(t, err, domain.ErrInvalidPagination)
}

func TestGetEventPagedList_RejectsUnknownSortField(t *testing.T) {
	svc, _, _ := newEventService(t, OverlapExistence)

	_, err := svc.GetEventPagedList(context.Background(), 0, 10, "surname")
	var sfe *domain.InvalidSortFieldError
	require.True(t, errors.As(err, &sfe))
	assert.Equal(t, "surname", sfe.Field)
}

func TestGetEventPagedList_PastEndIsEmpty(t *testing.T) {
	svc, events, _ := newEventService(t, OverlapExistence)
	for i := 0; i < 3; i++ {
		seedEvent(t, events, model.Event{Name: "e", Type: "CONCERT", Status: true})
	}

	page, err := svc.GetEventPagedList(context.Background(), 5, 10, "id")
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGetEventPagedList_SortsAndPages(t *testing.T) {
	svc, events, _ := newEventService(t, OverlapExistence)
	for _, name := range []string{"delta", "alpha", "charlie", "bravo"} {
		seedEvent(t, events, model.Event{Name: name, Type: "WORKSHOP", Status: true})
	}

	first, err := svc.GetEventPagedList(context.Background(), 0, 2, "name")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "alpha", first[0].Name)
	assert.Equal(t, "bravo", first[1].Name)

	second, err := svc.GetEventPagedList(context.Background(), 1, 2, "name")
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "charlie", second[0].Name)
	assert.Equal(t, "delta", second[1].Name)
}

func TestGetEvent_Unknown(t *testing.T) {
	svc, _, _ := newEventService(t, OverlapExistence)

	_, err := svc.GetEvent(context.Background(), 42)
	var nfe *domain.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "event", nfe.Entity)
	assert.Equal(t, int64(42), nfe.ID)
}

func TestRequireEventExists_Idempotent(t *testing.T) {
	svc, events, _ := newEventService(t, OverlapExistence)
	id := seedEvent(t, events, model.Event{Name: "Stable", Type: "CONCERT", Status: true})

	// A pure check: repeating it changes nothing and keeps answering the same.
	require.NoError(t, svc.requireEventExists(context.Background(), id))
	require.NoError(t, svc.requireEventExists(context.Background(), id))

	got, err := events.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Stable", got.Name)
}

func TestGetAvailable_RejectsMalformedDates(t *testing.T) {
	svc, _, _ := newEventService(t, OverlapExistence)

	_, err := svc.GetAvailable(context.Background(), "01/03/2024", "2024-03-31")
	var dfe *domain.DateFormatError
	assert.True(t, errors.As(err, &dfe))

	_, err = svc.GetAvailable(context.Background(), "2024-03-01", "not-a-date")
	assert.True(t, errors.As(err, &dfe))
}

func TestSaveEvent_NormalizesEmptyWindow(t *testing.T) {
	svc, events, _ := newEventService(t, OverlapExistence)

	id, err := svc.SaveEvent(context.Background(), &model.Event{
		Name:          "Open Mic",
		Type:          "CONCERT",
		AvailableFrom: strp(""),
		AvailableTo:   strp(""),
		Status:        true,
	})
	require.NoError(t, err)

	stored, err := events.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, stored.AvailableFrom)
	assert.Nil(t, stored.AvailableTo)
}

func TestPatchEvent_ExistencePolicy(t *testing.T) {
	t.Run("any reservation blocks the patch", func(t *testing.T) {
		svc, events, reservations := newEventService(t, OverlapExistence)
		id := seedEvent(t, events, model.Event{Name: "Jazz Night", Type: "CONCERT", Status: true})
		reservations.seed(model.Reservation{EventID: id, CheckIn: "S123", Status: true})

		_, err := svc.PatchEvent(context.Background(), &model.Event{ID: id, Name: "Jazz Night II", Type: "CONCERT", Status: true})
		assert.ErrorIs(t, err, domain.ErrInvalidEventUpdate)
	})

	t.Run("patch succeeds without reservations", func(t *testing.T) {
		svc, events, _ := newEventService(t, OverlapExistence)
		id := seedEvent(t, events, model.Event{Name: "Jazz Night", Type: "CONCERT", Status: true})

		ok, err := svc.PatchEvent(context.Background(), &model.Event{ID: id, Name: "Jazz Night II", Type: "CONCERT", Status: true})
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := events.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Jazz Night II", stored.Name)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := newEventService(t, OverlapExistence)

		_, err := svc.PatchEvent(context.Background(), &model.Event{ID: 99, Name: "ghost", Type: "CONCERT"})
		var nfe *domain.NotFoundError
		assert.True(t, errors.As(err, &nfe))
	})
}

func TestPatchEvent_WindowPolicy(t *testing.T) {
	t.Run("window containing all reservations passes", func(t *testing.T) {
		svc, events, reservations := newEventService(t, OverlapWindow)
		id := seedEvent(t, events, model.Event{
			Name: "Retreat", Type: "WORKSHOP", Status: true,
			AvailableFrom: strp("2024-03-01"), AvailableTo: strp("2024-03-31"),
		})
		reservations.seed(model.Reservation{EventID: id, CheckIn: "2024-03-10", CheckOut: strp("2024-03-12"), Status: true})

		ok, err := svc.PatchEvent(context.Background(), &model.Event{
			ID: id, Name: "Retreat", Type: "WORKSHOP", Status: true,
			AvailableFrom: strp("2024-03-05"), AvailableTo: strp("2024-03-20"),
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("shrinking past a reservation conflicts", func(t *testing.T) {
		svc, events, reservations := newEventService(t, OverlapWindow)
		id := seedEvent(t, events, model.Event{
			Name: "Retreat", Type: "WORKSHOP", Status: true,
			AvailableFrom: strp("2024-03-01"), AvailableTo: strp("2024-03-31"),
		})
		reservations.seed(model.Reservation{EventID: id, CheckIn: "2024-03-10", CheckOut: strp("2024-03-12"), Status: true})

		_, err := svc.PatchEvent(context.Background(), &model.Event{
			ID: id, Name: "Retreat", Type: "WORKSHOP", Status: true,
			AvailableFrom: strp("2024-03-11"), AvailableTo: strp("2024-03-31"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEventUpdate)
	})

	t.Run("clearing the window with reservations conflicts", func(t *testing.T) {
		svc, events, reservations := newEventService(t, OverlapWindow)
		id := seedEvent(t, events, model.Event{
			Name: "Retreat", Type: "WORKSHOP", Status: true,
			AvailableFrom: strp("2024-03-01"), AvailableTo: strp("2024-03-31"),
		})
		reservations.seed(model.Reservation{EventID: id, CheckIn: "2024-03-10", CheckOut: strp("2024-03-12"), Status: true})

		_, err := svc.PatchEvent(context.Background(), &model.Event{
			ID: id, Name: "Retreat", Type: "WORKSHOP", Status: true,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidEventUpdate)
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("removes the event and resyncs the sequence", func(t *testing.T) {
		svc, events, _ := newEventService(t, OverlapExistence)
		id := seedEvent(t, events, model.Event{Name: "Doomed", Type: "CONFERENCE", Status: true})

		gone, err := svc.DeleteEvent(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, gone)
		assert.Equal(t, 1, events.resyncCalls)

		_, err = events.GetByID(context.Background(), id)
		assert.Error(t, err)
	})

	t.Run("resync failure does not fail the delete", func(t *testing.T) {
		svc, events, _ := newEventService(t, OverlapExistence)
		id := seedEvent(t, events, model.Event{Name: "Doomed", Type: "CONFERENCE", Status: true})
		events.resyncErr = errors.New("alter table denied")

		gone, err := svc.DeleteEvent(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, gone)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := newEventService(t, OverlapExistence)

		_, err := svc.DeleteEvent(context.Background(), 7)
		var nfe *domain.NotFoundError
		assert.True(t, errors.As(err, &nfe))
	})
}
