package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yerassyl/event-reservation/internal/model"
)

// EventRepo provides CRUD operations for events. Availability dates are
// stored as nullable DATE columns holding plain calendar dates; NULL
// means the window is unset.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventColumns = `id, name, type, description, available_from, available_to, status`

// Create inserts a new event and returns the generated id.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) (int64, error) {
	const q = `INSERT INTO event (name, type, description, available_from, available_to, status) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Type, e.Description, nullStr(e.AvailableFrom), nullStr(e.AvailableTo), e.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID fetches one event. Returns ErrEventNotFound when the id does
// not exist.
func (r *EventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM event WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ExistsByID reports whether an event row with the given id exists.
func (r *EventRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM event WHERE id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListAll returns every event ordered by id.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM event ORDER BY id`
	return r.queryEvents(ctx, q)
}

// ListPaged returns one page of events in ascending order of sortCol.
// sortCol must come from the service allow-list; it is interpolated,
// not bound, because ORDER BY columns cannot be parameterized.
func (r *EventRepo) ListPaged(ctx context.Context, sortCol string, limit, offset int) ([]model.Event, error) {
	q := fmt.Sprintf(`SELECT %s FROM event ORDER BY %s ASC LIMIT ? OFFSET ?`, eventColumns, sortCol)
	return r.queryEvents(ctx, q, limit, offset)
}

// ListAvailableBetween reproduces the legacy availability search
// verbatim, asymmetric subquery conditions included. The subquery reads
// as inverted from a natural "ranges intersect" predicate; it is kept
// bug-for-bug as a compatibility target.
func (r *EventRepo) ListAvailableBetween(ctx context.Context, dateFrom, dateTo string) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM event
        WHERE available_from >= ? AND available_to <= ? AND id NOT IN
        (SELECT event_id FROM reservation WHERE check_in >= ? OR check_out <= ?)`
	return r.queryEvents(ctx, q, dateFrom, dateTo, dateFrom, dateTo)
}

// Update rewrites every mutable column of an existing event.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE event SET name = ?, type = ?, description = ?, available_from = ?, available_to = ?, status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		e.Name, e.Type, e.Description, nullStr(e.AvailableFrom), nullStr(e.AvailableTo), e.Status, e.ID)
	return err
}

// DeleteCascade removes the event and every reservation referencing it
// inside one transaction. Returns ErrEventNotFound when no event row
// was deleted.
func (r *EventRepo) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation WHERE event_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return tx.Commit()
}

// ResyncAutoIncrement moves the event table's AUTO_INCREMENT back to
// max(id)+1 after deletions. Best-effort housekeeping: callers log and
// continue on error, the primary operation never depends on it.
func (r *EventRepo) ResyncAutoIncrement(ctx context.Context) error {
	var maxID sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(id) FROM event`).Scan(&maxID); err != nil {
		return err
	}
	next := maxID.Int64 + 1
	if next < 1 {
		next = 1
	}
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE event AUTO_INCREMENT = %d`, next))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e        model.Event
		from, to sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.Description, &from, &to, &e.Status); err != nil {
		return nil, err
	}
	e.AvailableFrom = strPtr(from)
	e.AvailableTo = strPtr(to)
	return &e, nil
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
