// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines response codes, header names and header values
// used by the HTTP layer.
package constants

// Response flags and machine-readable error codes.
const (
	ResponseSuccess = true
	ResponseFailure = false

	CodeBadRequest           = "bad_request"
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeMethodNotAllowed     = "method_not_allowed"
	CodeConflict             = "conflict"
	CodeInternalError        = "internal_error"
	CodeValidationError      = "validation_error"
	CodeInvalidCredentials   = "invalid_credentials"
	CodeTokenExpired         = "token_expired"
	CodeTokenInvalid         = "token_invalid"
	CodeDuplicateResource    = "duplicate_resource"
	CodeAuthenticationFailed = "authentication_failed"
	CodeTooManyRequests      = "too_many_requests"
	CodeUpstreamFailure      = "upstream_failure"
	CodeExportInProgress     = "export_in_progress"
)

// Header names.
const (
	HeaderContentType           = "Content-Type"
	HeaderContentLength         = "Content-Length"
	HeaderContentDisposition    = "Content-Disposition"
	HeaderCacheControl          = "Cache-Control"
	HeaderPragma                = "Pragma"
	HeaderExpires               = "Expires"
	HeaderAuthorization         = "Authorization"
	HeaderAccept                = "Accept"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXAdminSession         = "X-Admin-Session"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderXXSSProtection        = "X-XSS-Protection"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderRetryAfter            = "Retry-After"
)

// Content types.
const (
	ContentTypeJSON       = "application/json"
	ContentTypeTypeScript = "text/typescript; charset=utf-8"
	ContentTypeForm       = "application/x-www-form-urlencoded"
	ContentTypeGitHubJSON = "application/vnd.github.v3+json"
)

// Security header values.
const (
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
	CacheControlNoStore        = "no-cache, no-store, must-revalidate"
	PragmaNoCache              = "no-cache"
	ExpiresZero                = "0"
)
