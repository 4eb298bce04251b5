package repositories

import (
	"context"
	"errors"
	"testing"

	"todo-server/db/dbtest"
	"todo-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type repos struct {
	users UserRepository
	lists ListRepository
	items ItemRepository
}

func setupRepos(t *testing.T) (repos, *entities.User) {
	t.Helper()
	database := dbtest.Open(t)
	r := repos{
		users: NewUserPgRepository(database),
		lists: NewListPgRepository(database),
		items: NewItemPgRepository(database),
	}
	user := &entities.User{FirstName: "Ada", Username: "ada", PasswordHash: "x"}
	require.NoError(t, r.users.Create(context.Background(), user))
	return r, user
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create assigns an id", func(t *testing.T) {
		_, user := setupRepos(t)
		assert.NotEmpty(t, user.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		r, _ := setupRepos(t)
		err := r.users.Create(ctx, &entities.User{Username: "ada", PasswordHash: "y"})
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
	})

	t.Run("GetByID only preloads default items", func(t *testing.T) {
		r, user := setupRepos(t)
		list, _, err := r.lists.Create(ctx, user.ID, "Work")
		require.NoError(t, err)
		_, err = r.items.Add(ctx, user.ID, &list.ID, "named")
		require.NoError(t, err)
		_, err = r.items.Add(ctx, user.ID, nil, "default")
		require.NoError(t, err)

		got, err := r.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "default", got.Items[0].Task)
		assert.Equal(t, []string{"Work"}, got.ListNames())
	})

	t.Run("missing user", func(t *testing.T) {
		r, _ := setupRepos(t)
		_, err := r.users.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		_, err = r.users.GetByUsername(ctx, "grace")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestListRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lists keep creation order", func(t *testing.T) {
		r, user := setupRepos(t)
		for _, name := range []string{"Work", "Groceries", "Books"} {
			_, created, err := r.lists.Create(ctx, user.ID, name)
			require.NoError(t, err)
			assert.True(t, created)
		}
		require.NoError(t, r.lists.DeleteByName(ctx, user.ID, "Groceries"))
		_, _, err := r.lists.Create(ctx, user.ID, "Garden")
		require.NoError(t, err)

		got, err := r.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Work", "Books", "Garden"}, got.ListNames())
	})

	t.Run("Create returns the existing list", func(t *testing.T) {
		r, user := setupRepos(t)
		first, created, err := r.lists.Create(ctx, user.ID, "Work")
		require.NoError(t, err)
		require.True(t, created)

		again, created, err := r.lists.Create(ctx, user.ID, "Work")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("DeleteByName cascades to items", func(t *testing.T) {
		r, user := setupRepos(t)
		list, _, err := r.lists.Create(ctx, user.ID, "Work")
		require.NoError(t, err)
		_, err = r.items.Add(ctx, user.ID, &list.ID, "report")
		require.NoError(t, err)

		require.NoError(t, r.lists.DeleteByName(ctx, user.ID, "Work"))
		n, err := r.items.Count(ctx, user.ID, &list.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		_, err = r.lists.GetByName(ctx, user.ID, "Work")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestItemRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedIfEmpty only seeds empty collections", func(t *testing.T) {
		r, user := setupRepos(t)
		seeded, err := r.items.SeedIfEmpty(ctx, user.ID, nil, []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.True(t, seeded)

		seeded, err = r.items.SeedIfEmpty(ctx, user.ID, nil, []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.False(t, seeded)

		n, err := r.items.Count(ctx, user.ID, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})

	t.Run("Add appends after seeded items", func(t *testing.T) {
		r, user := setupRepos(t)
		_, err := r.items.SeedIfEmpty(ctx, user.ID, nil, []string{"a", "b"})
		require.NoError(t, err)
		item, err := r.items.Add(ctx, user.ID, nil, "c")
		require.NoError(t, err)
		assert.Equal(t, 3, item.Position)
	})

	t.Run("Delete is scoped to the owner", func(t *testing.T) {
		r, user := setupRepos(t)
		other := &entities.User{Username: "grace", PasswordHash: "x"}
		require.NoError(t, r.users.Create(ctx, other))

		item, err := r.items.Add(ctx, user.ID, nil, "mine")
		require.NoError(t, err)
		require.NoError(t, r.items.Delete(ctx, other.ID, nil, item.ID))

		n, err := r.items.Count(ctx, user.ID, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}
