// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is the argon2id PHC string and must never be serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext carries the identity resolved by the auth middleware
// for the lifetime of a single request.
type AuthContext struct {
	UserID  int64
	TokenID string
}
