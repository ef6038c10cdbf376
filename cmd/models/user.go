package models

import "time"

type User struct {
	ID           uint      `gorm:"column:user_id;primaryKey" json:"userId"`
	Nickname     string    `gorm:"column:nickname;size:255;not null;uniqueIndex" json:"nickname"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Identity is what the auth middleware attaches to a request.
type Identity struct {
	UserID   uint   `json:"userId"`
	Nickname string `json:"nickname"`
}
