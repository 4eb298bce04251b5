package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the aggregate root: it owns its default items and its named lists.
type User struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Items        []Item     `gorm:"foreignKey:UserID" json:"items"`
	Lists        []TodoList `gorm:"foreignKey:UserID" json:"lists"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// ListNames returns the names of the user's lists in creation order.
// It is derived from Lists and never stored on its own.
func (u *User) ListNames() []string {
	names := make([]string, 0, len(u.Lists))
	for _, l := range u.Lists {
		names = append(names, l.Name)
	}
	return names
}
