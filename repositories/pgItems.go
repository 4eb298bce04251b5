package repositories

import (
	"context"
	"todo-server/db"
	"todo-server/entities"

	"gorm.io/gorm"
)

type itemPgRepository struct {
	db db.Database
}

func NewItemPgRepository(database db.Database) ItemRepository {
	return &itemPgRepository{db: database}
}

// inCollection scopes a query to the items of one collection of one user.
func inCollection(userID string, listID *string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("user_id = ?", userID)
		if listID == nil {
			return tx.Where("list_id IS NULL")
		}
		return tx.Where("list_id = ?", *listID)
	}
}

func lastPosition(tx *gorm.DB, userID string, listID *string) (int, error) {
	var last int
	err := tx.Model(&entities.Item{}).
		Scopes(inCollection(userID, listID)).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	return last, err
}

func (r *itemPgRepository) Add(ctx context.Context, userID string, listID *string, task string) (*entities.Item, error) {
	var item entities.Item
	err := r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		last, err := lastPosition(tx, userID, listID)
		if err != nil {
			return err
		}
		item = entities.Item{UserID: userID, ListID: listID, Task: task, Position: last + 1}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemPgRepository) Delete(ctx context.Context, userID string, listID *string, itemID string) error {
	return r.db.GetDB().WithContext(ctx).
		Scopes(inCollection(userID, listID)).
		Where("id = ?", itemID).
		Delete(&entities.Item{}).Error
}

func (r *itemPgRepository) SeedIfEmpty(ctx context.Context, userID string, listID *string, tasks []string) (bool, error) {
	seeded := false
	err := r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Item{}).Scopes(inCollection(userID, listID)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		items := make([]entities.Item, 0, len(tasks))
		for i, task := range tasks {
			items = append(items, entities.Item{UserID: userID, ListID: listID, Task: task, Position: i + 1})
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func (r *itemPgRepository) Count(ctx context.Context, userID string, listID *string) (int64, error) {
	var count int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Item{}).Scopes(inCollection(userID, listID)).Count(&count).Error
	return count, err
}
