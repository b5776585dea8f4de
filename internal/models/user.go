package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the capability level of a user
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// CanManage reports whether the role may assign shifts, finalize weeks and approve timesheets
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewUser creates a new User with a generated UUID
func NewUser(username, passwordHash string, role Role, department string) *User {
	return &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		Department:   department,
		CreatedAt:    time.Now(),
	}
}

// Principal returns the authenticated identity of the user
func (u *User) Principal() Principal {
	return Principal{
		UserID:     u.ID.String(),
		Username:   u.Username,
		Role:       u.Role,
		Department: u.Department,
	}
}
