// Package models contains the server-side domain records shared by the
// repositories, services and HTTP layer.
package models

import "time"

type Role string

const (
	RoleStudent         Role = "STUDENT"
	RoleCommunityLeader Role = "COMMUNITY_LEADER"
	RoleAdmin           Role = "ADMIN"
)

// User is a stored account. OtpCode is non-nil only while the account waits
// for email verification.
type User struct {
	ID           string
	Email        string
	UserName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	OtpCode      *string
	CreatedAt    time.Time
}

// PublicUser is the externally visible view of a User. It never carries the
// password hash or the pending code.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	UserName  string    `json:"username"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		UserName:  u.UserName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
