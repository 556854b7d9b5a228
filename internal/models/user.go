package models

import "time"

// User represents a registered account.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	AccessToken string    `json:"accessToken" gorm:"uniqueIndex;type:varchar(256);not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
