// Package utils provides utility functions and helpers for the application.
// This file implements a standardized API response system that ensures
// consistent response formats across all API endpoints.
//
// Most endpoints answer with the Response envelope. The publish, checkout and
// webhook endpoints keep the bare bodies their callers (the site front end
// and the payment provider) already parse, and use SendJSON directly.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
)

// Response represents a standardized API response.
type Response struct {
	Success bool        `json:"success"`         // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo  `json:"error,omitempty"` // Error information (omitted for successful responses)
	Meta    *MetaInfo   `json:"meta,omitempty"`  // Metadata about the returned data
}

// ErrorInfo represents error information in the response.
type ErrorInfo struct {
	Code    string                 `json:"code"`              // A machine-readable error code
	Message string                 `json:"message"`           // A human-readable error message
	Details map[string]interface{} `json:"details,omitempty"` // Additional details about the error (e.g., validation errors)
}

// MetaInfo carries response metadata for collection reads.
type MetaInfo struct {
	Count int `json:"count,omitempty"`
}

// JSON sends a JSON response with the given status code and data.
// This is the primary function for sending successful responses.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - data: The data to include in the response
//
// The function automatically sets the success flag based on the status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// JSONWithCount sends a successful response whose meta block carries the item count.
func JSONWithCount(w http.ResponseWriter, statusCode int, data interface{}, count int) {
	SendJSON(w, statusCode, Response{
		Success: constants.ResponseSuccess,
		Data:    data,
		Meta:    &MetaInfo{Count: count},
	})
}

// Attachment sends a generated file as a download.
//
// Parameters:
//   - w: The HTTP response writer
//   - body: The file contents
//   - filename: The name offered to the browser
//   - contentType: The media type of the file
func Attachment(w http.ResponseWriter, body []byte, filename, contentType string) {
	w.Header().Set(constants.HeaderContentType, contentType)
	w.Header().Set(constants.HeaderContentLength, fmt.Sprintf("%d", len(body)))
	w.Header().Set(constants.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
			filename,
			url.PathEscape(filename)))

	// Exports reflect the live draft, never a cached copy
	w.Header().Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
	w.Header().Set(constants.HeaderPragma, constants.PragmaNoCache)
	w.Header().Set(constants.HeaderExpires, constants.ExpiresZero)

	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("Failed to write attachment")
	}
}

// Error sends an error response with the given status code and error information.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - code: A machine-readable error code
//   - message: A human-readable error message
//   - details: Additional details about the error (e.g., validation errors)
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	response := Response{
		Success: constants.ResponseFailure,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// ErrorFromAppError sends an error response based on an AppError.
//
// Parameters:
//   - w: The HTTP response writer
//   - err: The application error
//
// The function extracts the error code, message, and details from the AppError
// and sends an appropriate error response.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := err.Code
	if errCode == "" {
		errCode = codeFor(err.Err)
	}

	details := err.Details
	if details == nil && err.Field != "" {
		details = map[string]interface{}{
			err.Field: err.Message,
		}
	}

	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().Str("dev_info", err.DevInfo).Str("code", errCode).Msg(err.Message)
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// WriteError maps any error onto the AppError taxonomy and sends it.
func WriteError(w http.ResponseWriter, err error) {
	ErrorFromAppError(w, ParseError(err))
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return constants.CodeNotFound
	case errors.Is(err, ErrBadRequest):
		return constants.CodeBadRequest
	case errors.Is(err, ErrUnauthorized):
		return constants.CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return constants.CodeForbidden
	case errors.Is(err, ErrValidation):
		return constants.CodeValidationError
	case errors.Is(err, ErrDuplicate):
		return constants.CodeDuplicateResource
	case errors.Is(err, ErrConflict):
		return constants.CodeConflict
	case errors.Is(err, ErrInvalidCredentials):
		return constants.CodeInvalidCredentials
	case errors.Is(err, ErrExpiredToken):
		return constants.CodeTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return constants.CodeTokenInvalid
	}
	return constants.CodeInternalError
}

// SendJSON is a helper function to send JSON data with proper headers.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - data: The data to marshal to JSON and send
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string, details map[string]interface{}) {
	Error(w, http.StatusBadRequest, constants.CodeBadRequest, message, details)
}

// Unauthorized sends a 401 Unauthorized response with the given message.
// An empty message falls back to the default authentication message.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, http.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, http.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 response with the enveloped error body.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, constants.CodeTooManyRequests, "Too many requests", nil)
}

// InternalServerError sends a 500 Internal Server Error response.
//
// Parameters:
//   - w: The HTTP response writer
//   - err: The error that occurred (logged but not exposed to the client)
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}
