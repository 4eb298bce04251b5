package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoList is a named list owned by exactly one user.
type TodoList struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_list_name" json:"user_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_user_list_name" json:"name"`
	Position  int       `gorm:"not null" json:"position"`
	Items     []Item    `gorm:"foreignKey:ListID" json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *TodoList) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
