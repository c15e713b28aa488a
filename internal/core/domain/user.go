package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user with this email or username already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfTarget = errors.New("cannot perform this action on your own account")
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")

// User models a registered account. PasswordHash never leaves the service
// layer; JSON serialization drops it entirely.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
