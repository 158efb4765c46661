// Package models holds the records the CLI exchanges with the portal server
// and keeps locally.
package models

import "time"

// Profile is the user returned by a successful login, as remembered by the
// CLI between runs.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	UserName  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	SavedAt   time.Time `json:"-"`
}
