package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"todo-server/entities"
	"todo-server/repositories"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrListNotFound  = errors.New("list not found")
	ErrEmptyListName = errors.New("list name is required")
	// List names become a single path segment of /lists/:listName
	ErrInvalidListName = errors.New("list name must not contain '/'")
)

// ListView is everything the list page shows.
type ListView struct {
	Ref       ListRef
	Title     string
	Items     []entities.Item
	FirstName string
	ListNames []string
}

type TodoUseCase struct {
	Users repositories.UserRepository
	Lists repositories.ListRepository
	Items repositories.ItemRepository
	locks *UserLocks
	now   func() time.Time
}

func NewTodoUseCase(users repositories.UserRepository, lists repositories.ListRepository, items repositories.ItemRepository, locks *UserLocks) *TodoUseCase {
	return &TodoUseCase{
		Users: users,
		Lists: lists,
		Items: items,
		locks: locks,
		now:   time.Now,
	}
}

// WithClock replaces the clock used for the default list's label.
func (uc *TodoUseCase) WithClock(now func() time.Time) *TodoUseCase {
	uc.now = now
	return uc
}

// Today is the current title of the default list.
func (uc *TodoUseCase) Today() string {
	return TodayLabel(uc.now())
}

// ParseRef resolves a posted list indicator against today's label.
func (uc *TodoUseCase) ParseRef(indicator string) ListRef {
	return ParseListRef(indicator, uc.now())
}

func (uc *TodoUseCase) loadUser(ctx context.Context, userID string) (*entities.User, error) {
	user, err := uc.Users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (uc *TodoUseCase) findList(ctx context.Context, userID, name string) (*entities.TodoList, error) {
	list, err := uc.Lists.GetByName(ctx, userID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load list %q: %w", name, err)
	}
	return list, nil
}

// Home returns the default list. When the list is empty it is seeded with
// the onboarding tasks instead and seeded is true; the caller shows it again.
func (uc *TodoUseCase) Home(ctx context.Context, userID string) (view *ListView, seeded bool, err error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if len(user.Items) == 0 {
		unlock := uc.locks.Lock(userID)
		defer unlock()
		if _, err := uc.Items.SeedIfEmpty(ctx, userID, nil, OnboardingTasks); err != nil {
			return nil, false, fmt.Errorf("seed default list: %w", err)
		}
		return nil, true, nil
	}

	return &ListView{
		Ref:       DefaultList(),
		Title:     uc.Today(),
		Items:     user.Items,
		FirstName: user.FirstName,
		ListNames: user.ListNames(),
	}, false, nil
}

// NamedList returns the list called rawName (capitalized, not trimmed),
// seeding it like Home when it is empty.
func (uc *TodoUseCase) NamedList(ctx context.Context, userID, rawName string) (view *ListView, seeded bool, err error) {
	name := Capitalize(rawName)
	list, err := uc.findList(ctx, userID, name)
	if err != nil {
		return nil, false, err
	}

	if len(list.Items) == 0 {
		unlock := uc.locks.Lock(userID)
		defer unlock()
		if _, err := uc.Items.SeedIfEmpty(ctx, userID, &list.ID, OnboardingTasks); err != nil {
			return nil, false, fmt.Errorf("seed list %q: %w", name, err)
		}
		return &ListView{Ref: NamedList(list.Name)}, true, nil
	}

	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	return &ListView{
		Ref:       NamedList(list.Name),
		Title:     list.Name,
		Items:     list.Items,
		FirstName: user.FirstName,
		ListNames: user.ListNames(),
	}, false, nil
}

func (uc *TodoUseCase) listID(ctx context.Context, userID string, ref ListRef) (*string, error) {
	if ref.IsDefault() {
		return nil, nil
	}
	list, err := uc.findList(ctx, userID, ref.Name())
	if err != nil {
		return nil, err
	}
	return &list.ID, nil
}

// AddItem appends a task to the referenced list.
func (uc *TodoUseCase) AddItem(ctx context.Context, userID string, ref ListRef, task string) (*entities.Item, error) {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	listID, err := uc.listID(ctx, userID, ref)
	if err != nil {
		return nil, err
	}
	item, err := uc.Items.Add(ctx, userID, listID, task)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item from the referenced list. Unknown ids are ignored.
func (uc *TodoUseCase) DeleteItem(ctx context.Context, userID string, ref ListRef, itemID string) error {
	unlock := uc.locks.Lock(userID)
	defer unlock()

	listID, err := uc.listID(ctx, userID, ref)
	if err != nil {
		return err
	}
	if err := uc.Items.Delete(ctx, userID, listID, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// CreateList creates a list named after the normalized rawName unless the
// user already has one by that name. Either way the list's ref is returned.
func (uc *TodoUseCase) CreateList(ctx context.Context, userID, rawName string) (ref ListRef, created bool, err error) {
	name := NormalizeListName(rawName)
	if name == "" {
		return ListRef{}, false, ErrEmptyListName
	}
	if strings.Contains(name, "/") {
		return ListRef{}, false, ErrInvalidListName
	}

	unlock := uc.locks.Lock(userID)
	defer unlock()

	list, created, err := uc.Lists.Create(ctx, userID, name)
	if err != nil {
		return ListRef{}, false, fmt.Errorf("create list %q: %w", name, err)
	}
	return NamedList(list.Name), created, nil
}

// DeleteList removes the list and its items. Missing lists are a no-op.
func (uc *TodoUseCase) DeleteList(ctx context.Context, userID, rawName string) error {
	name := Capitalize(rawName)

	unlock := uc.locks.Lock(userID)
	defer unlock()

	if err := uc.Lists.DeleteByName(ctx, userID, name); err != nil {
		return fmt.Errorf("delete list %q: %w", name, err)
	}
	return nil
}
