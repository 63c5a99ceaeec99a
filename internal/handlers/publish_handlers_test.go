package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/publish"
	"github.com/coursecms/coursesite/internal/utils"
)

const validSnapshot = `{"siteSettings":{"themeColor":"#0ea5e9","headerTitle":"Course","footerText":"(c)","contactEmail":"team@example.com"}}`

func TestPublish(t *testing.T) {
	testCases := []struct {
		name            string
		method          string
		body            string
		publishErr      error
		expectedStatus  int
		expectedMessage string
		expectCall      bool
		unconfigured    bool
	}{
		{
			name:            "Success",
			method:          http.MethodPost,
			body:            validSnapshot,
			expectedStatus:  http.StatusOK,
			expectedMessage: constants.MsgPublishSuccess,
			expectCall:      true,
		},
		{
			name:            "Wrong method",
			method:          http.MethodGet,
			expectedStatus:  http.StatusMethodNotAllowed,
			expectedMessage: constants.MsgMethodNotAllowed,
		},
		{
			name:            "Malformed JSON",
			method:          http.MethodPost,
			body:            `{"siteSettings":`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: constants.MsgPublishInvalidData,
		},
		{
			name:            "Missing site settings",
			method:          http.MethodPost,
			body:            `{}`,
			publishErr:      utils.NewValidationError("SiteSettings", "This field is required"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: constants.MsgPublishInvalidData,
			expectCall:      true,
		},
		{
			name:            "Not configured",
			method:          http.MethodPost,
			body:            validSnapshot,
			publishErr:      publish.ErrNotConfigured,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: constants.MsgPublishConfigMissing,
			expectCall:      true,
		},
		{
			name:            "Not configured with malformed body",
			method:          http.MethodPost,
			body:            `{"siteSettings":`,
			unconfigured:    true,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: constants.MsgPublishConfigMissing,
		},
		{
			name:            "Already running",
			method:          http.MethodPost,
			body:            validSnapshot,
			publishErr:      export.ErrInProgress,
			expectedStatus:  http.StatusConflict,
			expectedMessage: export.ErrInProgress.Error(),
			expectCall:      true,
		},
		{
			name:            "Upstream failure",
			method:          http.MethodPost,
			body:            validSnapshot,
			publishErr:      &publish.APIError{Op: "update contents", StatusCode: http.StatusConflict, Status: "409 Conflict", Body: "sha mismatch"},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: constants.MsgPublishFailed,
			expectCall:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := NewPublishHandler(&MockPublishService{
				PublishFunc: func(ctx context.Context, data models.SiteData) (export.Outcome, error) {
					called = true
					if tc.publishErr != nil {
						return export.Outcome{}, tc.publishErr
					}
					require.NotNil(t, data.SiteSettings)
					assert.Equal(t, "Course", data.SiteSettings.HeaderTitle)
					return export.Outcome{Success: true, Message: constants.MsgPublishSuccess, Finished: time.Now()}, nil
				},
				Unconfigured: tc.unconfigured,
			})

			req := newJSONRequest(tc.method, constants.PublishPath, tc.body)
			rec := httptest.NewRecorder()
			handler.Publish(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectCall, called)
			body := decodePlain(t, rec)
			assert.Equal(t, tc.expectedMessage, body["message"])
			if tc.name == "Upstream failure" {
				assert.Contains(t, body["error"], "409 Conflict")
			}
		})
	}
}

func TestPublish_IgnoresUnknownKeys(t *testing.T) {
	handler := NewPublishHandler(&MockPublishService{})

	body := strings.TrimSuffix(validSnapshot, "}") + `,"legacyField":true}`
	rec := httptest.NewRecorder()
	handler.Publish(rec, newJSONRequest(http.MethodPost, constants.PublishPath, body))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublishDrafts(t *testing.T) {
	handler := NewPublishHandler(&MockPublishService{
		PublishDraftsFunc: func(ctx context.Context) (export.Outcome, error) {
			return export.Outcome{}, errors.New("network down")
		},
	})

	rec := httptest.NewRecorder()
	handler.PublishDrafts(rec, httptest.NewRequest(http.MethodPost, constants.PublishPath+"/drafts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, constants.MsgPublishFailed, decodePlain(t, rec)["message"])
}

func TestPublishStatus(t *testing.T) {
	handler := NewPublishHandler(&MockPublishService{
		StatusFunc: func() export.Status {
			return export.Status{State: export.StateExporting}
		},
	})

	rec := httptest.NewRecorder()
	handler.Status(rec, httptest.NewRequest(http.MethodGet, constants.PublishPath+"/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var status export.Status
	decodeData(t, rec, &status)
	assert.Equal(t, export.StateExporting, status.State)
}

func TestExport(t *testing.T) {
	t.Run("Download", func(t *testing.T) {
		handler := NewPublishHandler(&MockPublishService{})

		rec := httptest.NewRecorder()
		handler.Export(rec, httptest.NewRequest(http.MethodGet, constants.ExportPath, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, constants.ContentTypeTypeScript, rec.Header().Get(constants.HeaderContentType))
		assert.Contains(t, rec.Header().Get(constants.HeaderContentDisposition), constants.ExportFileName)
		assert.Equal(t, "export const initialData = {};\n", rec.Body.String())
	})

	t.Run("Render failure", func(t *testing.T) {
		handler := NewPublishHandler(&MockPublishService{
			ExportFunc: func(ctx context.Context) ([]byte, error) {
				return nil, errors.New("decode draft courseModules")
			},
		})

		rec := httptest.NewRecorder()
		handler.Export(rec, httptest.NewRequest(http.MethodGet, constants.ExportPath, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), constants.ExportFileName)
	})
}
