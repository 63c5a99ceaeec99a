package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/gating"
	"github.com/coursecms/coursesite/internal/models"
)

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, v))
}

func TestGetAccess(t *testing.T) {
	t.Run("Anonymous caller", func(t *testing.T) {
		var seen *gating.Identity
		called := false
		handler := NewAccessHandler(&MockAccessService{
			ResolveFunc: func(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error) {
				called = true
				seen = identity
				return &models.AccessResponse{State: models.AccessAnonymous}, nil
			},
		})

		rec := httptest.NewRecorder()
		handler.GetAccess(rec, httptest.NewRequest(http.MethodGet, constants.AccessPath, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
		assert.Nil(t, seen)

		var resp models.AccessResponse
		decodeData(t, rec, &resp)
		assert.Equal(t, models.AccessAnonymous, resp.State)
	})

	t.Run("Authenticated caller", func(t *testing.T) {
		handler := NewAccessHandler(&MockAccessService{
			ResolveFunc: func(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error) {
				require.NotNil(t, identity)
				assert.Equal(t, int64(7), identity.UserID)
				return &models.AccessResponse{State: models.AccessPaid, Email: identity.Email, HasPaid: true}, nil
			},
		})

		req := withIdentity(httptest.NewRequest(http.MethodGet, constants.AccessPath, nil), 7, "buyer@example.com")
		rec := httptest.NewRecorder()
		handler.GetAccess(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp models.AccessResponse
		decodeData(t, rec, &resp)
		assert.Equal(t, models.AccessPaid, resp.State)
		assert.Equal(t, "buyer@example.com", resp.Email)
		assert.True(t, resp.HasPaid)
	})

	t.Run("Profile read failure", func(t *testing.T) {
		handler := NewAccessHandler(&MockAccessService{
			ResolveFunc: func(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error) {
				return nil, errors.New("connection reset")
			},
		})

		req := withIdentity(httptest.NewRequest(http.MethodGet, constants.AccessPath, nil), 7, "buyer@example.com")
		rec := httptest.NewRecorder()
		handler.GetAccess(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetProfile(t *testing.T) {
	handler := NewAccessHandler(&MockAccessService{})

	t.Run("Requires identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.GetProfile(rec, httptest.NewRequest(http.MethodGet, constants.ProfilePath, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Returns paid flag", func(t *testing.T) {
		req := withIdentity(httptest.NewRequest(http.MethodGet, constants.ProfilePath, nil), 3, "user@example.com")
		rec := httptest.NewRecorder()
		handler.GetProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var profile map[string]interface{}
		decodeData(t, rec, &profile)
		assert.Equal(t, false, profile["hasPaid"])
	})
}
