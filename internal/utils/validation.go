package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/models"
)

// validate is shared by every handler; InitValidator replaces it.
var validate *validator.Validate

// tagMessages holds the fixed messages of tags that take no parameter.
var tagMessages = map[string]string{
	"required":        "This field is required",
	"email":           "Must be a valid email address",
	"hexcolor":        "Must be a hex color such as #4682B4",
	"url":             "Must be a valid URL",
	"draft_slot":      "Must be one of the draft slots",
	"strong_password": "Must mix at least 3 of: uppercase letters, lowercase letters, numbers and symbols",
}

// InitValidator builds the validator used by DecodeAndValidate. Field names in
// errors are the JSON names the browser client sends.
func InitValidator() {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"draft_slot":      validateDraftSlot,
		"strong_password": validateStrongPassword,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Error().Err(err).Str("tag", tag).Msg("Failed to register validation")
		}
	}

	validate = v
	log.Info().Int("custom_tags", len(custom)).Msg("Validator initialized")
}

// GetValidator returns the shared validator, building it on first use.
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// DecodeJSON decodes a single JSON object from the request body into v.
// Bodies above constants.MaxRequestBodySize and unknown fields are rejected.
//
// Parameters:
//   - r: The incoming request
//   - v: Pointer to the destination value
//
// Returns:
//   - An *AppError describing the first problem, or nil
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}
	return nil
}

// decodeError maps encoding/json failures onto the AppError taxonomy.
func decodeError(err error) error {
	var (
		maxBytes      *http.MaxBytesError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		invalidTarget *json.InvalidUnmarshalError
	)

	switch {
	case errors.As(err, &maxBytes):
		return NewBadRequestError(constants.MsgRequestBodyTooLarge)
	case errors.Is(err, io.EOF):
		return NewBadRequestError(constants.MsgEmptyRequestBody)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewBadRequestError(constants.MsgMalformedJSON)
	case errors.As(err, &syntaxErr):
		return NewBadRequestError(fmt.Sprintf("%s (at position %d)", constants.MsgMalformedJSON, syntaxErr.Offset))
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return NewValidationError(typeErr.Field, "Must be a "+typeErr.Type.String())
		}
		return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", typeErr.Offset))
	case errors.As(err, &invalidTarget):
		return NewInternalServerError(err)
	}

	// encoding/json has no typed error for unknown fields
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return NewValidationError("unknown_field", "Request body contains unknown field "+field)
	}
	return NewBadRequestError("Error decoding JSON: " + err.Error())
}

// ValidateStruct runs the struct tags of v. A single failing field becomes a
// field error; several become one error with per-field details.
func ValidateStruct(v interface{}) error {
	err := GetValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewBadRequestError(err.Error())
	}

	if len(fieldErrs) == 1 {
		return NewValidationError(fieldErrs[0].Field(), messageFor(fieldErrs[0]))
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = messageFor(fe)
	}
	return NewValidationErrorWithDetails("Multiple validation errors", details)
}

// DecodeAndValidate decodes a JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// messageFor returns the client-facing message of a failed tag.
func messageFor(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters long"
	}

	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("Must be at most %s%s", fe.Param(), unit)
	case "eqfield":
		return fmt.Sprintf("Must match the %s field", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("Failed validation on the '%s' tag", fe.Tag())
	}
}

// validateDraftSlot accepts only the names of the persisted content slots
func validateDraftSlot(fl validator.FieldLevel) bool {
	return models.SlotName(fl.Field().String()).IsValid()
}

// validateStrongPassword requires three of the four character classes.
func validateStrongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, symbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	classes := 0
	for _, present := range []bool{upper, lower, digit, symbol} {
		if present {
			classes++
		}
	}
	return classes >= 3
}

// NewValidationErrorWithDetails creates a validation error with multiple field details
func NewValidationErrorWithDetails(message string, details map[string]string) *AppError {
	detailsMap := make(map[string]interface{}, len(details))
	for field, msg := range details {
		detailsMap[field] = msg
	}

	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Details:    detailsMap,
	}
}

// IsValidEmail reports whether email passes the validator's email rule.
// The purchase webhook uses it before looking up an identity.
func IsValidEmail(email string) bool {
	return GetValidator().Var(email, "required,email") == nil
}

// ValidatePassword checks a signup password for length and character mix.
func ValidatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return NewValidationError("password", fmt.Sprintf("Password must be at least %d characters long", constants.MinPasswordLength))
	}
	if err := GetValidator().Var(password, "strong_password"); err != nil {
		return NewValidationError("password", tagMessages["strong_password"])
	}
	return nil
}
