package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/yerassyl/event-reservation/internal/model"
)

// UserRepo provides access to the user_account table. Student ids are
// unique; duplicate inserts surface as ErrStudentIDExists.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, student_id, name, surname, password_hash`

// Create inserts a new user and returns the generated id. A duplicate
// student id maps the MySQL duplicate-key error to ErrStudentIDExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (int64, error) {
	const q = `INSERT INTO user_account (student_id, name, surname, password_hash) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.StudentID, u.Name, u.Surname, u.PasswordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, ErrStudentIDExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID fetches one user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM user_account WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// GetByStudentID fetches one user by the unique student id.
func (r *UserRepo) GetByStudentID(ctx context.Context, studentID string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM user_account WHERE student_id = ?`
	return scanUser(r.db.QueryRowContext(ctx, q, studentID))
}

// ExistsByStudentID reports whether the student id is already taken.
func (r *UserRepo) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM user_account WHERE student_id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, studentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ExistsByID reports whether a user row with the given id exists.
func (r *UserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM user_account WHERE id = ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.StudentID, &u.Name, &u.Surname, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
