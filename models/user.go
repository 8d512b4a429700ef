package models

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User is a shop account. Email is unique across all users.
type User struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	PasswordHash  string `gorm:"not null"`
	FirstName     string
	PhoneNumber   string
	Role          Role     `gorm:"type:varchar(20);not null;default:customer"`
	EmailVerified bool     `gorm:"not null"`
	Profile       *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) TableName() string {
	return "users"
}

// Profile holds per-user preferences. Every user owns at most one.
type Profile struct {
	ID                     uint `gorm:"primaryKey"`
	UserID                 uint `gorm:"uniqueIndex;not null"`
	PreferredNotifications bool `gorm:"not null"`
}

func (p *Profile) TableName() string {
	return "profiles"
}
