package models

import (
	"time"

	"github.com/coursecms/coursesite/internal/constants"
)

// User represents a registered identity.
// It carries only what the identity adapter needs: an email and the password hash.
type User struct {
	ID           int64     `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email" validate:"required,email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Salt         string    `json:"-" db:"salt"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User for the given email.
// Password fields are populated later during signup.
func NewUser(email string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return constants.TableUsers
}

// Sanitize removes the password material before the user is sent to clients.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.Salt = ""
	return &sanitized
}

// UserCredentials represents the login credentials provided by a visitor.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserRegistration represents the data required for signup.
type UserRegistration struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// UserProfile is the per-identity document holding the paid flag.
type UserProfile struct {
	UserID    int64     `json:"-" db:"user_id"`
	HasPaid   bool      `json:"hasPaid" db:"has_paid"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// NewUserProfile creates the default profile of a fresh identity. The paid flag
// starts false and only the purchase webhook ever sets it.
func NewUserProfile(userID int64) *UserProfile {
	now := time.Now()
	return &UserProfile{
		UserID:    userID,
		HasPaid:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the UserProfile model.
func (p *UserProfile) TableName() string {
	return constants.TableUserProfiles
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
