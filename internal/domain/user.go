package domain

import (
	"strings"
	"time"
)

// ReservedUsername cannot be registered: it collides with the /users/me route.
const ReservedUsername = "me"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	FirstName    string    `json:"first_name" gorm:"size:150;not null"`
	LastName     string    `json:"last_name" gorm:"size:150;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Computed per caller: the caller follows this user.
	IsSubscribed bool `json:"is_subscribed" gorm:"->;-:migration;column:is_subscribed"`
}

func (User) TableName() string { return "users" }

// IsReservedUsername reports whether name equals the reserved username, ignoring case.
func IsReservedUsername(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), ReservedUsername)
}
