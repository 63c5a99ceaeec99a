package utils_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/publish"
	"github.com/coursecms/coursesite/internal/utils"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		message    string
	}{
		{
			name:       "Basic error",
			err:        errors.New("base error"),
			statusCode: http.StatusBadRequest,
			message:    "Error message",
		},
		{
			name:       "Internal server error",
			err:        errors.New("some internal error"),
			statusCode: http.StatusInternalServerError,
			message:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.New(tt.err, tt.statusCode, tt.message)

			if appErr.Error() != tt.message {
				t.Errorf("New().Error() = %v, want %v", appErr.Error(), tt.message)
			}
			if appErr.StatusCode != tt.statusCode {
				t.Errorf("New().StatusCode = %v, want %v", appErr.StatusCode, tt.statusCode)
			}
			if !errors.Is(appErr, tt.err) {
				t.Errorf("New() does not wrap %v", tt.err)
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	appErr := utils.NewValidationError("themeColor", "Must be a hex color")

	if appErr.Error() != "themeColor: Must be a hex color" {
		t.Errorf("NewValidationError().Error() = %v", appErr.Error())
	}
	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("NewValidationError().StatusCode = %v, want %v", appErr.StatusCode, http.StatusBadRequest)
	}
	if !utils.IsValidationError(appErr) {
		t.Error("IsValidationError() = false, want true")
	}
}

func TestNewConflictError(t *testing.T) {
	appErr := utils.NewConflictError(constants.CodeExportInProgress, "busy")

	if appErr.StatusCode != http.StatusConflict {
		t.Errorf("NewConflictError().StatusCode = %v, want %v", appErr.StatusCode, http.StatusConflict)
	}
	if appErr.Code != constants.CodeExportInProgress {
		t.Errorf("NewConflictError().Code = %v", appErr.Code)
	}
	if utils.IsDuplicateError(appErr) {
		t.Error("a state conflict must not be reported as a duplicate")
	}
}

func TestConstructorsDefaultMessages(t *testing.T) {
	tests := []struct {
		name   string
		err    *utils.AppError
		status int
		msg    string
	}{
		{"unauthorized", utils.NewUnauthorizedError(""), http.StatusUnauthorized, constants.MsgAuthRequired},
		{"forbidden", utils.NewForbiddenError(""), http.StatusForbidden, constants.MsgAccessDenied},
		{"invalid credentials", utils.NewInvalidCredentialsError(), http.StatusUnauthorized, constants.MsgInvalidCredentials},
		{"expired token", utils.NewExpiredTokenError(), http.StatusUnauthorized, constants.MsgTokenExpired},
		{"invalid token", utils.NewInvalidTokenError(), http.StatusUnauthorized, constants.MsgInvalidToken},
		{"internal", utils.NewInternalServerError(errors.New("disk full")), http.StatusInternalServerError, constants.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode != tt.status {
				t.Errorf("StatusCode = %v, want %v", tt.err.StatusCode, tt.status)
			}
			if tt.err.Message != tt.msg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.msg)
			}
		})
	}
}

func TestNewInternalServerError_KeepsDevInfo(t *testing.T) {
	appErr := utils.NewInternalServerError(errors.New("disk full"))
	if appErr.DevInfo != "disk full" {
		t.Errorf("DevInfo = %q, want %q", appErr.DevInfo, "disk full")
	}
	if utils.NewInternalServerError(nil).DevInfo != "" {
		t.Error("DevInfo should be empty for a nil cause")
	}
}

func TestParseError_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not admin", editor.ErrNotAdmin, http.StatusForbidden, constants.MsgAdminRequired},
		{"bad access code", editor.ErrInvalidAccessCode, http.StatusUnauthorized, constants.MsgInvalidAccessCode},
		{"unconfirmed delete", editor.ErrConfirmationRequired, http.StatusBadRequest, constants.MsgConfirmationRequired},
		{"missing record", fmt.Errorf("module 7: %w", editor.ErrRecordNotFound), http.StatusNotFound, constants.MsgResourceNotFound},
		{"unknown slot", draftstore.ErrUnknownSlot, http.StatusNotFound, constants.MsgUnknownSlot},
		{"empty embed", content.ErrEmbedEmpty, http.StatusBadRequest, constants.MsgEmbedEmpty},
		{"invalid embed", content.ErrEmbedInvalid, http.StatusBadRequest, constants.MsgEmbedInvalid},
		{"export running", export.ErrInProgress, http.StatusConflict, export.ErrInProgress.Error()},
		{"no site settings", publish.ErrInvalidSiteData, http.StatusBadRequest, constants.MsgPublishInvalidData},
		{"publish not configured", publish.ErrNotConfigured, http.StatusInternalServerError, constants.MsgPublishConfigMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.ParseError(tt.err)
			if appErr.StatusCode != tt.status {
				t.Errorf("ParseError().StatusCode = %v, want %v", appErr.StatusCode, tt.status)
			}
			if appErr.Message != tt.msg {
				t.Errorf("ParseError().Message = %q, want %q", appErr.Message, tt.msg)
			}
		})
	}
}

func TestParseError_InvalidDocumentIsValidation(t *testing.T) {
	appErr := utils.ParseError(fmt.Errorf("courseFaqs: %w", draftstore.ErrInvalidDocument))
	if !utils.IsValidationError(appErr) {
		t.Errorf("ParseError() = %v, want a validation error", appErr)
	}
}

func TestParseError_Database(t *testing.T) {
	t.Run("postgres unique violation", func(t *testing.T) {
		appErr := utils.ParseError(&pq.Error{Code: "23505", Constraint: "idx_users_email"})
		if appErr.StatusCode != http.StatusConflict {
			t.Errorf("ParseError().StatusCode = %v, want %v", appErr.StatusCode, http.StatusConflict)
		}
		if appErr.Field != "users_email" {
			t.Errorf("ParseError().Field = %q, want users_email", appErr.Field)
		}
	})

	t.Run("postgres not null", func(t *testing.T) {
		appErr := utils.ParseError(&pq.Error{Code: "23502", Column: "email"})
		if !utils.IsValidationError(appErr) || appErr.Field != "email" {
			t.Errorf("ParseError() = %+v, want validation error on email", appErr)
		}
	})

	t.Run("mysql duplicate entry", func(t *testing.T) {
		appErr := utils.ParseError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
		if !utils.IsDuplicateError(appErr) {
			t.Errorf("ParseError() = %+v, want duplicate", appErr)
		}
	})

	t.Run("no rows", func(t *testing.T) {
		appErr := utils.ParseError(errors.New("sql: no rows in result set"))
		if !utils.IsNotFoundError(appErr) {
			t.Errorf("ParseError() = %+v, want not found", appErr)
		}
	})
}

func TestParseError_Passthrough(t *testing.T) {
	original := utils.NewBadRequestError("nope")
	if got := utils.ParseError(fmt.Errorf("wrapped: %w", original)); got != original {
		t.Errorf("ParseError() = %v, want the wrapped AppError", got)
	}

	if got := utils.ParseError(errors.New("something odd")); got.StatusCode != http.StatusInternalServerError {
		t.Errorf("ParseError().StatusCode = %v, want 500", got.StatusCode)
	}
}

func TestNewValidationErrorWithDetails(t *testing.T) {
	details := map[string]string{
		"email":    "Must be a valid email address",
		"password": "This field is required",
	}

	appErr := utils.NewValidationErrorWithDetails("Multiple validation errors", details)

	if appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %v, want %v", appErr.StatusCode, http.StatusBadRequest)
	}
	if !errors.Is(appErr, utils.ErrValidation) {
		t.Error("NewValidationErrorWithDetails() does not wrap ErrValidation")
	}
	if appErr.Details["email"] != "Must be a valid email address" {
		t.Errorf("Details[email] = %v", appErr.Details["email"])
	}
}
