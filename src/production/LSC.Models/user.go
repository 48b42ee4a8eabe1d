package lscmodels

import (
	"strings"
	"time"
)

// User represents a dashboard account
type User struct {
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // never exposed
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a new User instance, passwordHash must already be hashed
func NewUser(fullName, email, phone, passwordHash string) *User {
	return &User{
		FullName:     strings.TrimSpace(fullName),
		Email:        NormalizeEmail(email),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// NormalizeEmail is the canonical form used for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
