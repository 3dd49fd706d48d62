package models

import (
	"time"
)

// SocialLinks holds a user's optional social profile URLs
type SocialLinks struct {
	Twitter string `json:"twitter,omitempty"`
	GitHub  string `json:"github,omitempty"`
	Website string `json:"website,omitempty"`
}

// User represents a registered user
type User struct {
	ID           string      `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	IsAdmin      bool        `json:"isAdmin" db:"is_admin"`
	Bio          string      `json:"bio,omitempty" db:"bio"`
	AvatarURL    string      `json:"avatarUrl,omitempty" db:"avatar_url"`
	Social       SocialLinks `json:"social" db:"-"` // Stored as JSONB in DB
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

// PublicProfile is the projection of a user safe to embed in responses
type PublicProfile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Public returns the response projection of the user
func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name      *string      `json:"name"`
	Email     *string      `json:"email"`
	Bio       *string      `json:"bio"`
	AvatarURL *string      `json:"avatarUrl"`
	Social    *SocialLinks `json:"social"`
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6
