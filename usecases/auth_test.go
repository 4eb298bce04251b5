package usecases

import (
	"context"
	"testing"

	"todo-server/db/dbtest"
	"todo-server/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	database := dbtest.Open(t)
	return NewAuthUseCase(repositories.NewUserPgRepository(database)).WithHashCost(bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed password", func(t *testing.T) {
		auth := newAuth(t)
		user, err := auth.Register(ctx, RegisterInput{FirstName: "Ada", LastName: "Lovelace", Username: "ada", Password: "engine"})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEqual(t, "engine", user.PasswordHash)

		stored, err := auth.Users.GetByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, "Ada", stored.FirstName)
		assert.Equal(t, "Lovelace", stored.LastName)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("engine")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, RegisterInput{Username: "ada", Password: "engine"})
		require.NoError(t, err)

		_, err = auth.Register(ctx, RegisterInput{Username: "ada", Password: "other"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("missing credentials", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, RegisterInput{Username: "  ", Password: "engine"})
		assert.ErrorIs(t, err, ErrMissingCredentials)
		_, err = auth.Register(ctx, RegisterInput{Username: "ada"})
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t)
	registered, err := auth.Register(ctx, RegisterInput{FirstName: "Ada", Username: "ada", Password: "engine"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := auth.Login(ctx, "ada", "engine")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "ada", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := auth.Login(ctx, "grace", "engine")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := auth.Login(ctx, "ada", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}
