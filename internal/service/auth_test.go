package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klublotto/klublotto-api/internal/domain"
	"github.com/klublotto/klublotto-api/internal/repository"
	"github.com/klublotto/klublotto-api/internal/repository/dao"
)

func newAuthService(t *testing.T, env *testEnv) *AuthService {
	t.Helper()

	return NewAuthService(repository.NewUserRepository(dao.NewUserDAO(env.db)))
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and defaults to the player role", func(t *testing.T) {
		env := newTestEnv(t)
		auth := newAuthService(t, env)

		created, err := auth.Signup(ctx, domain.User{
			Email:    "anna@example.com",
			Password: "Password1",
		})
		require.NoError(t, err)

		assert.Equal(t, "anna@example.com", created.Email)
		assert.Equal(t, domain.RolePlayer, created.Role)
		assert.NotEqual(t, "Password1", created.Password)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		auth := newAuthService(t, env)

		_, err := auth.Signup(ctx, domain.User{Email: "bo@example.com", Password: "Password1"})
		require.NoError(t, err)

		_, err = auth.Signup(ctx, domain.User{Email: "bo@example.com", Password: "Password2"})
		require.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	auth := newAuthService(t, env)

	_, err := auth.Signup(ctx, domain.User{Email: "carla@example.com", Password: "Password1"})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := auth.Login(ctx, "carla@example.com", "Password1")
		require.NoError(t, err)
		assert.Equal(t, "carla@example.com", user.Email)
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		_, err := auth.Login(ctx, "CARLA@example.com", "Password1")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "carla@example.com", "Password2")
		require.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := auth.Login(ctx, "nobody@example.com", "Password1")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
