package utils_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/utils"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		data       interface{}
		wantStatus int
		wantBody   map[string]interface{}
	}{
		{
			name:       "Success response",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "Success"},
			wantStatus: http.StatusOK,
			wantBody: map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"message": "Success"},
			},
		},
		{
			name:       "Error status but with data",
			statusCode: http.StatusBadRequest,
			data:       map[string]string{"reason": "Bad input"},
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]interface{}{
				"success": false,
				"data":    map[string]interface{}{"reason": "Bad input"},
			},
		},
		{
			name:       "Nil data",
			statusCode: http.StatusOK,
			data:       nil,
			wantStatus: http.StatusOK,
			wantBody: map[string]interface{}{
				"success": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a response recorder
			rr := httptest.NewRecorder()

			// Call the function being tested
			utils.JSON(rr, tt.statusCode, tt.data)

			// Check status code
			if status := rr.Code; status != tt.wantStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.wantStatus)
			}

			// Check content type
			if ctype := rr.Header().Get("Content-Type"); ctype != "application/json" {
				t.Errorf("handler returned wrong content type: got %v want application/json", ctype)
			}

			// Parse the response body
			var response map[string]interface{}
			if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
				t.Fatalf("Could not parse response body: %v", err)
			}

			// Check the body content
			if !reflect.DeepEqual(response, tt.wantBody) {
				t.Errorf("handler returned unexpected body: got %v want %v", response, tt.wantBody)
			}
		})
	}
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var response utils.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	return response
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.Error(rr, http.StatusBadRequest, "invalid_input", "Invalid input", map[string]interface{}{"title": "required"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	response := decodeEnvelope(t, rr)
	assert.False(t, response.Success)
	require.NotNil(t, response.Error)
	assert.Equal(t, "invalid_input", response.Error.Code)
	assert.Equal(t, "Invalid input", response.Error.Message)
	assert.Equal(t, "required", response.Error.Details["title"])
}

func TestErrorFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *utils.AppError
		wantStatus int
		wantCode   string
	}{
		{"validation field", utils.NewValidationError("email", "bad"), http.StatusBadRequest, constants.CodeValidationError},
		{"explicit code", utils.NewConflictError(constants.CodeExportInProgress, "busy"), http.StatusConflict, constants.CodeExportInProgress},
		{"expired token", utils.NewExpiredTokenError(), http.StatusUnauthorized, constants.CodeTokenExpired},
		{"internal", utils.NewInternalServerError(errors.New("db down")), http.StatusInternalServerError, constants.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			utils.ErrorFromAppError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			response := decodeEnvelope(t, rr)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.wantCode, response.Error.Code)
			assert.NotContains(t, rr.Body.String(), "db down")
		})
	}
}

func TestErrorFromAppError_FieldBecomesDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.ErrorFromAppError(rr, utils.NewValidationError("embed", constants.MsgEmbedInvalid))

	response := decodeEnvelope(t, rr)
	assert.Equal(t, constants.MsgEmbedInvalid, response.Error.Details["embed"])
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.WriteError(rr, editor.ErrNotAdmin)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	response := decodeEnvelope(t, rr)
	assert.Equal(t, constants.CodeForbidden, response.Error.Code)
	assert.Equal(t, constants.MsgAdminRequired, response.Error.Message)
}

func TestJSONWithCount(t *testing.T) {
	rr := httptest.NewRecorder()
	utils.JSONWithCount(rr, http.StatusOK, []string{"a", "b"}, 2)

	response := decodeEnvelope(t, rr)
	assert.True(t, response.Success)
	require.NotNil(t, response.Meta)
	assert.Equal(t, 2, response.Meta.Count)
}

func TestAttachment(t *testing.T) {
	rr := httptest.NewRecorder()
	body := []byte("export const initialData = {};\n")

	utils.Attachment(rr, body, "initialData.ts", constants.ContentTypeTypeScript)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constants.ContentTypeTypeScript, rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="initialData.ts"; filename*=UTF-8''initialData.ts`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "31", rr.Header().Get("Content-Length"))
	assert.Equal(t, constants.CacheControlNoStore, rr.Header().Get("Cache-Control"))
	assert.Equal(t, body, rr.Body.Bytes())
}

func TestShortcutResponses(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", func(w http.ResponseWriter) { utils.Unauthorized(w, "") }, http.StatusUnauthorized, constants.CodeUnauthorized},
		{"not found", func(w http.ResponseWriter) { utils.NotFound(w, "") }, http.StatusNotFound, constants.CodeNotFound},
		{"method", utils.MethodNotAllowed, http.StatusMethodNotAllowed, constants.CodeMethodNotAllowed},
		{"rate", utils.TooManyRequests, http.StatusTooManyRequests, constants.CodeTooManyRequests},
		{"bad request", func(w http.ResponseWriter) { utils.BadRequest(w, "bad", nil) }, http.StatusBadRequest, constants.CodeBadRequest},
		{"internal", func(w http.ResponseWriter) { utils.InternalServerError(w, errors.New("x")) }, http.StatusInternalServerError, constants.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.write(rr)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, rr).Error.Code)
		})
	}
}
