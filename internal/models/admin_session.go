package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminSession represents an unlocked admin mode.
// It only authorizes draft mutations; publishing is authorized separately.
type AdminSession struct {
	// Token is the opaque value sent back in the X-Admin-Session header
	Token string `json:"token"`

	// ExpiresAt is when the session stops authorizing edits
	ExpiresAt time.Time `json:"expires_at"`

	// CreatedAt records when admin mode was unlocked
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminSession creates an admin session valid for ttl.
func NewAdminSession(ttl time.Duration) *AdminSession {
	now := time.Now()
	return &AdminSession{
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired checks if the session has passed its expiry time.
func (s *AdminSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AdminLoginRequest is the body of an admin-mode unlock request.
type AdminLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// FieldUpdate carries the new value of a single editable text field.
type FieldUpdate struct {
	Value string `json:"value"`
}
