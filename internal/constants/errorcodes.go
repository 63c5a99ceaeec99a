// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines user-facing messages and log categories. Messages
// are informative without revealing implementation details.
package constants

// User-facing messages.
const (
	MsgAuthRequired          = "Authentication required"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgAccessDenied          = "You don't have permission to access this resource"
	MsgInternalServerError   = "An internal server error occurred"
	MsgTokenExpired          = "Authentication token has expired"
	MsgInvalidToken          = "Invalid token"
	MsgRequestBodyTooLarge   = "Request body too large"
	MsgEmptyRequestBody      = "Request body must not be empty"
	MsgMalformedJSON         = "Request body contains malformed JSON"
	MsgResourceNotFound      = "The requested resource could not be found"
	MsgResourceAlreadyExists = "A resource with the same unique identifier already exists"
	MsgMethodNotAllowed      = "Method Not Allowed"
	MsgAdminRequired         = "Admin mode is required to edit content"
	MsgInvalidAccessCode     = "Invalid access code"
	MsgUnknownSlot           = "Unknown draft slot"
	MsgConfirmationRequired  = "Deletion must be confirmed"
)

// Publish, checkout and webhook response messages.
const (
	MsgPublishSuccess        = "Content updated successfully! A new deployment has been triggered."
	MsgPublishInvalidData    = "Bad Request: Invalid site data."
	MsgPublishConfigMissing  = "Server configuration error: Missing GitHub environment variables."
	MsgPublishFailed         = "An internal error occurred."
	MsgCheckoutConfigMissing = "Server configuration error: Payment URL is not configured."
	MsgWebhookConfigMissing  = "Server configuration error."
	MsgWebhookMissingFields  = "Bad Request: Missing required fields."
	MsgWebhookInvalidProduct = "Invalid product."
	MsgWebhookUserNotFound   = "User not found."
	MsgWebhookUserAbsentAck  = "User not found, but webhook acknowledged."
	MsgWebhookError          = "Webhook Error"
)

// Embed-code validation messages.
const (
	MsgEmbedEmpty   = "Please paste an embed code."
	MsgEmbedInvalid = "Invalid embed code. Make sure the pasted code contains an <iframe> tag."
)

// Database error markers.
const (
	DBErrorDuplicateKey         = "duplicate key value violates unique constraint"
	PGErrorDuplicateConstraint  = "23505"
	PGErrorForeignKeyConstraint = "23503"
	PGErrorNotNullConstraint    = "23502"
)

// Log categories and events.
const (
	LogCategoryAuth     = "auth"
	LogCategoryPublish  = "publish"
	LogCategoryPurchase = "purchase"
	LogEventLogin       = "login"
	LogEventRegister    = "register"
	LogRedactedValue    = "[REDACTED]"
)
