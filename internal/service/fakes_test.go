package service

import (
	"context"
	"sort"
	"sync"

	"github.com/yerassyl/event-reservation/internal/model"
	"github.com/yerassyl/event-reservation/internal/repository"
)

// In-memory store implementations used across the service tests.

type fakeEventStore struct {
	mu          sync.Mutex
	events      map[int64]model.Event
	nextID      int64
	resyncCalls int
	resyncErr   error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[int64]model.Event{}, nextID: 1}
}

func (s *fakeEventStore) Create(_ context.Context, e *model.Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.events[e.ID] = *e
	return e.ID, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return &e, nil
}

func (s *fakeEventStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.events[id]
	return ok, nil
}

func (s *fakeEventStore) ListAll(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted("id"), nil
}

func (s *fakeEventStore) ListPaged(_ context.Context, sortCol string, limit, offset int) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.sorted(sortCol)
	if offset >= len(all) {
		return []model.Event{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeEventStore) ListAvailableBetween(_ context.Context, _, _ string) ([]model.Event, error) {
	return s.ListAll(context.Background())
}

func (s *fakeEventStore) Update(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = *e
	return nil
}

func (s *fakeEventStore) DeleteCascade(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *fakeEventStore) ResyncAutoIncrement(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resyncCalls++
	return s.resyncErr
}

func (s *fakeEventStore) sorted(col string) []model.Event {
	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		switch col {
		case "name":
			return out[i].Name < out[j].Name
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}

type fakeReservationStore struct {
	mu           sync.Mutex
	reservations map[int64]model.Reservation
	nextID       int64
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{reservations: map[int64]model.Reservation{}, nextID: 1}
}

func (s *fakeReservationStore) seed(r model.Reservation) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.reservations[r.ID] = r
	return r.ID
}

func (s *fakeReservationStore) Create(_ context.Context, r *model.Reservation) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.reservations[r.ID] = *r
	return r.ID, nil
}

func (s *fakeReservationStore) GetByID(_ context.Context, id int64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (s *fakeReservationStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reservations[id]
	return ok, nil
}

func (s *fakeReservationStore) ListAll(_ context.Context) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeReservationStore) ListByEvent(ctx context.Context, eventID int64) ([]model.Reservation, error) {
	all, _ := s.ListAll(ctx)
	out := make([]model.Reservation, 0)
	for _, r := range all {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReservationStore) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	matching, _ := s.ListByEvent(ctx, eventID)
	return int64(len(matching)), nil
}

func (s *fakeReservationStore) ExistsByEventAndCheckIn(ctx context.Context, eventID int64, checkIn string) (bool, error) {
	matching, _ := s.ListByEvent(ctx, eventID)
	for _, r := range matching {
		if r.CheckIn == checkIn {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeReservationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(s.reservations, id)
	return nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]model.User
	nextID int64
	// createErr forces Create to fail, simulating the unique-index race.
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]model.User{}, nextID: 1}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return 0, s.createErr
	}
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = *u
	return u.ID, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) GetByStudentID(_ context.Context, studentID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.StudentID == studentID {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	_, err := s.GetByStudentID(ctx, studentID)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *fakeUserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}

// fakeNotifier records reservation notifications; done is signalled per
// call so tests can wait for the fire-and-forget goroutine.
type fakeNotifier struct {
	done chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 8)}
}

func (n *fakeNotifier) ReservationCreated(_ context.Context, _ *model.Reservation, _ *model.Event) {
	n.done <- struct{}{}
}
