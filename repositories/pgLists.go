package repositories

import (
	"context"
	"errors"
	"todo-server/db"
	"todo-server/entities"

	"gorm.io/gorm"
)

type listPgRepository struct {
	db db.Database
}

func NewListPgRepository(database db.Database) ListRepository {
	return &listPgRepository{db: database}
}

func (r *listPgRepository) Create(ctx context.Context, userID, name string) (*entities.TodoList, bool, error) {
	var list entities.TodoList
	created := false

	err := r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&list).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var last int
		if err := tx.Model(&entities.TodoList{}).
			Where("user_id = ?", userID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error; err != nil {
			return err
		}

		list = entities.TodoList{UserID: userID, Name: name, Position: last + 1}
		if err := tx.Omit("Items").Create(&list).Error; err != nil {
			return err
		}
		created = true
		return nil
	})

	// Another process won the race on the unique index
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, getErr := r.GetByName(ctx, userID, name)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &list, created, nil
}

func (r *listPgRepository) GetByName(ctx context.Context, userID, name string) (*entities.TodoList, error) {
	var list entities.TodoList
	err := r.db.GetDB().WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Where("user_id = ? AND name = ?", userID, name).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listPgRepository) DeleteByName(ctx context.Context, userID, name string) error {
	return r.db.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list entities.TodoList
		err := tx.Where("user_id = ? AND name = ?", userID, name).First(&list).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND list_id = ?", userID, list.ID).Delete(&entities.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&list).Error
	})
}
