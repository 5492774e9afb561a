package models

import "time"

// Client represented by one advocate. UserID is set when the client also
// holds a login.
type Client struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	AdvocateID uint  `gorm:"index;not null" json:"advocate_id"`
	UserID     *uint `json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
