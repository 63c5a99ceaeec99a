// Package constants provides shared constant values used throughout the application.
//
// The routes_const.go file defines API route paths and URL parameter names.
package constants

// Base routes.
const (
	APIBasePath = "/api"
	HealthPath  = "/health"
	VersionPath = "/version"
)

// Identity routes.
const (
	AuthSignupPath = "/api/auth/signup"
	AuthLoginPath  = "/api/auth/login"
	AuthVerifyPath = "/api/auth/verify"
	AuthLogoutPath = "/api/auth/logout"
)

// Gating and purchase routes.
const (
	AccessPath          = "/api/access"
	ProfilePath         = "/api/profile"
	CheckoutPath        = "/api/checkout"
	PurchaseWebhookPath = "/api/webhooks/purchase"
)

// Content editing and publishing routes.
const (
	PublishPath      = "/api/publish"
	ExportPath       = "/api/export"
	AdminLoginPath   = "/api/admin/login"
	AdminLogoutPath  = "/api/admin/logout"
	AdminSessionPath = "/api/admin/session"
	AdminPanelPath   = "/api/admin/panel"
	DraftsBasePath   = "/api/drafts"
	DraftEventsPath  = "/api/drafts/events"
	DraftThemePath   = "/api/drafts/theme"
	ContentBasePath  = "/api/content"
)

// URL parameter names.
const (
	ParamSlot       = "slot"
	ParamID         = "id"
	ParamResourceID = "resourceID"
	ParamDirection  = "direction"
	ParamField      = "field"
)

// Query parameter names.
const (
	QueryParamConfirm = "confirm"
	QueryParamSlot    = "slot"
)

// Webhook form fields.
const (
	FormFieldEmail     = "email"
	FormFieldProductID = "product_id"
)
