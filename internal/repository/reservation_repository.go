package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yerassyl/event-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. The
// check_in column carries the registrant identifier (historically a
// check-in date); check_out only holds data for rows written under the
// legacy date-window policy.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, event_id, user_id, check_in, check_out, status`

// Create inserts a new reservation and returns the generated id.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) (int64, error) {
	const q = `INSERT INTO reservation (event_id, user_id, check_in, check_out, status) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.EventID, res.UserID, res.CheckIn, nullStr(res.CheckOut), res.Status)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetByID fetches one reservation. Returns ErrReservationNotFound when
// the id does not exist.
func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservation WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

// ExistsByID reports whether a reservation row with the given id exists.
func (r *ReservationRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM reservation WHERE id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListAll returns every reservation ordered by id.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservation ORDER BY id`
	return r.queryReservations(ctx, q)
}

// ListByEvent returns every reservation referencing the given event.
func (r *ReservationRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservation WHERE event_id = ? ORDER BY id`
	return r.queryReservations(ctx, q, eventID)
}

// CountByEvent returns the number of reservations referencing the event.
func (r *ReservationRepo) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM reservation WHERE event_id = ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ExistsByEventAndCheckIn reports whether the identifier is already
// registered for the event.
func (r *ReservationRepo) ExistsByEventAndCheckIn(ctx context.Context, eventID int64, checkIn string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM reservation WHERE event_id = ? AND check_in = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, eventID, checkIn).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes one reservation. Returns ErrReservationNotFound when
// no row was deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservation WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var (
		res model.Reservation
		out sql.NullString
	)
	if err := row.Scan(&res.ID, &res.EventID, &res.UserID, &res.CheckIn, &out, &res.Status); err != nil {
		return nil, err
	}
	res.CheckOut = strPtr(out)
	return &res, nil
}

func (r *ReservationRepo) queryReservations(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
