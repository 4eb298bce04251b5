package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a single task. ListID is nil for items of the user's default list.
type Item struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ListID    *string   `gorm:"type:varchar(36);index" json:"list_id,omitempty"`
	Task      string    `gorm:"type:text" json:"task"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
