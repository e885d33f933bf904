package model

import "time"

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      Role      `gorm:"not null;default:0" json:"role"`
	Email     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
