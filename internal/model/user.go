// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account — a listener, or an artist when
// IsArtist is set. Artists are the only accounts allowed to upload snippets.
//
// PasswordHash holds the bcrypt hash of the password. The `json:"-"` tag
// makes encoding/json skip the field entirely, so a User can be written
// straight into a response body without ever leaking the hash.
//
// Email and Username are each globally unique, enforced by UNIQUE
// constraints in the users table.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsArtist     bool      `json:"is_artist"`
	CreatedAt    time.Time `json:"created_at"`
}
