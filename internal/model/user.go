package model

import "time"

// Role is the account kind gating assessment mutation and answer submission.
type Role string

const (
	// RoleStudent may submit answers but never sees question bodies.
	RoleStudent Role = "student"
	// RoleTeacher may create, update and delete assessments.
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User represents a registered account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:256;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role         Role      `json:"role" gorm:"size:50;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsTeacher reports whether the user holds the teacher role.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
