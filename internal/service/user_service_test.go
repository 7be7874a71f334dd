package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/repository"
	"github.com/yerassyl/event-reservation/internal/utils"
)

func newUserService(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	return NewUserService(users, bcrypt.MinCost, zerolog.Nop()), users
}

func TestRegister(t *testing.T) {
	t.Run("creates the user with a hashed password", func(t *testing.T) {
		svc, _ := newUserService(t)

		u, err := svc.Register(context.Background(), RegisterInput{
			StudentID: "S123", Name: "Aset", Surname: "Bekov", Password: "hunter2secret",
		})
		require.NoError(t, err)
		assert.Positive(t, u.ID)
		assert.NotEqual(t, "hunter2secret", u.PasswordHash)
		assert.True(t, utils.VerifyPassword(u.PasswordHash, "hunter2secret"))
	})

	t.Run("taken student id", func(t *testing.T) {
		svc, _ := newUserService(t)
		_, err := svc.Register(context.Background(), RegisterInput{StudentID: "S123", Name: "A", Surname: "B", Password: "password1"})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), RegisterInput{StudentID: "S123", Name: "C", Surname: "D", Password: "password2"})
		assert.ErrorIs(t, err, domain.ErrStudentIDTaken)
	})

	t.Run("unique index race maps to the same error", func(t *testing.T) {
		svc, users := newUserService(t)
		users.createErr = repository.ErrStudentIDExists

		_, err := svc.Register(context.Background(), RegisterInput{StudentID: "S456", Name: "A", Surname: "B", Password: "password1"})
		assert.ErrorIs(t, err, domain.ErrStudentIDTaken)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService(t)
	registered, err := svc.Register(context.Background(), RegisterInput{
		StudentID: "S123", Name: "Aset", Surname: "Bekov", Password: "hunter2secret",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "S123", "hunter2secret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("unknown student id", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "S999", "hunter2secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "S123", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newUserService(t)
	registered, err := svc.Register(context.Background(), RegisterInput{
		StudentID: "S123", Name: "Aset", Surname: "Bekov", Password: "hunter2secret",
	})
	require.NoError(t, err)

	u, err := svc.CurrentUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "S123", u.StudentID)

	_, err = svc.CurrentUser(context.Background(), registered.ID+100)
	var nfe *domain.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "user", nfe.Entity)
}

func TestRequireUserExists(t *testing.T) {
	svc, _ := newUserService(t)
	registered, err := svc.Register(context.Background(), RegisterInput{
		StudentID: "S123", Name: "Aset", Surname: "Bekov", Password: "hunter2secret",
	})
	require.NoError(t, err)

	assert.NoError(t, svc.RequireUserExists(context.Background(), registered.ID))

	err = svc.RequireUserExists(context.Background(), registered.ID+1)
	var nfe *domain.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, registered.ID+1, nfe.ID)
}
