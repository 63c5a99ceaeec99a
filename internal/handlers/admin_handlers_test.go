package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/models"
)

func TestAdminLogin(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"Correct code", `{"code":"letmein"}`, http.StatusOK},
		{"Wrong code", `{"code":"guess"}`, http.StatusUnauthorized},
		{"Missing code", `{}`, http.StatusBadRequest},
		{"Unknown field", `{"code":"letmein","remember":true}`, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAdminHandler(&MockAdminService{ExpectedCode: "letmein"})

			rec := httptest.NewRecorder()
			handler.Login(rec, newJSONRequest(http.MethodPost, constants.AdminLoginPath, tc.body))

			assert.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
			if tc.expectedStatus == http.StatusOK {
				var session models.AdminSession
				decodeData(t, rec, &session)
				assert.NotEmpty(t, session.Token)
				assert.True(t, session.ExpiresAt.After(session.CreatedAt))
			}
		})
	}
}

func TestAdminLogout(t *testing.T) {
	mockService := &MockAdminService{}
	handler := NewAdminHandler(mockService)

	req := httptest.NewRequest(http.MethodPost, constants.AdminLogoutPath, nil)
	req.Header.Set(constants.HeaderXAdminSession, "session-token")
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"session-token"}, mockService.LoggedOut)
}

func TestAdminSessionAndPanel(t *testing.T) {
	handler := NewAdminHandler(&MockAdminService{})

	t.Run("Locked session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Session(rec, httptest.NewRequest(http.MethodGet, "/api/admin/session", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var state map[string]bool
		decodeData(t, rec, &state)
		assert.False(t, state["admin"])
		assert.False(t, state["panelOpen"])
	})

	t.Run("Toggle requires admin mode", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.TogglePanel(rec, httptest.NewRequest(http.MethodPost, "/api/admin/panel", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Toggle flips the panel", func(t *testing.T) {
		admin := unlockedAdmin()

		rec := httptest.NewRecorder()
		handler.TogglePanel(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/panel", nil), admin))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, admin.PanelOpen())

		rec = httptest.NewRecorder()
		handler.Session(rec, withAdmin(httptest.NewRequest(http.MethodGet, "/api/admin/session", nil), admin))
		var state map[string]bool
		decodeData(t, rec, &state)
		assert.True(t, state["admin"])
		assert.True(t, state["panelOpen"])

		rec = httptest.NewRecorder()
		handler.TogglePanel(rec, withAdmin(httptest.NewRequest(http.MethodPost, "/api/admin/panel", nil), admin))
		assert.False(t, admin.PanelOpen())
	})
}
