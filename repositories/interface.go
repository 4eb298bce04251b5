package repositories

import (
	"context"
	"todo-server/entities"
)

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	// GetByID loads the user with its default items and its lists (without their items).
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

type ListRepository interface {
	// Create inserts the list at the end of the user's lists. created is false
	// when a list with that name already existed; the existing list is returned.
	Create(ctx context.Context, userID, name string) (list *entities.TodoList, created bool, err error)
	GetByName(ctx context.Context, userID, name string) (*entities.TodoList, error)
	// DeleteByName removes the list and every item in it. Unknown names are a no-op.
	DeleteByName(ctx context.Context, userID, name string) error
}

// ItemRepository works on one collection at a time: the default list when
// listID is nil, the named list with that id otherwise.
type ItemRepository interface {
	Add(ctx context.Context, userID string, listID *string, task string) (*entities.Item, error)
	Delete(ctx context.Context, userID string, listID *string, itemID string) error
	// SeedIfEmpty inserts tasks in order only if the collection has no items.
	SeedIfEmpty(ctx context.Context, userID string, listID *string, tasks []string) (bool, error)
	Count(ctx context.Context, userID string, listID *string) (int64, error)
}
