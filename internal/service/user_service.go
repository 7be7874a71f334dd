package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
	"github.com/yerassyl/event-reservation/internal/repository"
	"github.com/yerassyl/event-reservation/internal/utils"
)

// UserService implements registration, login and current-user lookup.
// Session creation stays with the HTTP layer; the service only deals in
// user records and credentials.
type UserService struct {
	users      UserStore
	bcryptCost int
	log        zerolog.Logger
}

// NewUserService wires a UserService.
func NewUserService(users UserStore, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, log: log}
}

// RegisterInput carries the shape-validated registration fields.
type RegisterInput struct {
	StudentID string
	Name      string
	Surname   string
	Password  string
}

// Register creates a new user with a bcrypt-hashed password. A taken
// student id fails with ErrStudentIDTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	taken, err := s.users.ExistsByStudentID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrStudentIDTaken
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		StudentID:    in.StudentID,
		Name:         in.Name,
		Surname:      in.Surname,
		PasswordHash: hash,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		// The unique index can still race the ExistsByStudentID check.
		if errors.Is(err, repository.ErrStudentIDExists) {
			return nil, domain.ErrStudentIDTaken
		}
		return nil, err
	}
	u.ID = id
	s.log.Info().Str("student_id", u.StudentID).Int64("user_id", id).Msg("user registered")
	return u, nil
}

// Login verifies credentials and returns the user. An unknown student
// id and a wrong password produce the same ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, studentID, password string) (*model.User, error) {
	u, err := s.users.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	s.log.Info().Str("student_id", studentID).Msg("user logged in")
	return u, nil
}

// CurrentUser returns the user attached to a session id.
func (s *UserService) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, &domain.NotFoundError{Entity: "user", ID: userID}
		}
		return nil, err
	}
	return u, nil
}

// RequireUserExists fails with a NotFoundError when the id matches no
// user. Pure check, no side effects.
func (s *UserService) RequireUserExists(ctx context.Context, id int64) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NotFoundError{Entity: "user", ID: id}
	}
	return nil
}
