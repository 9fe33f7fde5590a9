package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Role         UserRole  `gorm:"column:role" json:"role"`
	FirstName    string    `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName     string    `gorm:"column:last_name" json:"last_name,omitempty"`
	Name         string    `gorm:"column:name" json:"name,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
