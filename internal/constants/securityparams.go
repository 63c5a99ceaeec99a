// Package constants provides shared constant values used throughout the application.
//
// The securityparams.go file defines context keys, token types and credential limits.
package constants

// Context keys for request-scoped values.
const (
	UserIDContextKey    = "user_id"
	EmailContextKey     = "email"
	RequestIDContextKey = "request_id"
)

// Token types.
const (
	TokenTypeAccess = "access"
)

// Credential limits.
const (
	MinPasswordLength = 8
)

// Cookies.
const (
	AuthTokenCookie = "auth_token"
)

// Rate limit categories.
const (
	RateCategoryAuth    = "auth"
	RateCategoryPublish = "publish"
	RateCategoryWebhook = "webhook"
)
