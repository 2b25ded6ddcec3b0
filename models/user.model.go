package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User is created by upsert on first login. A user with no stored role is a
// student; the default lives here so no endpoint needs its own fallback.
type User struct {
	gorm.Model
	Name          string `gorm:"default:''" json:"name"`
	Email         string `gorm:"unique;not null" json:"email"`
	PhotoURL      string `gorm:"default:''" json:"photoUrl"`
	Role          string `gorm:"default:'student'" json:"role"`
	ClassesCount  int    `gorm:"default:0" json:"classesCount"`  // instructor only
	StudentsCount int    `gorm:"default:0" json:"studentsCount"` // instructor only
	IsDeleted     bool   `gorm:"default:false" json:"-"`
}

// NewUser builds a user for the first-login upsert with the default role
// applied.
func NewUser(email, name, photoURL string) User {
	return User{
		Email:    email,
		Name:     name,
		PhotoURL: photoURL,
		Role:     RoleStudent,
	}
}
