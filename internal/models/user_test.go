package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/models"
)

func TestNewUser(t *testing.T) {
	now := time.Now()
	user := models.NewUser("learner@example.com")

	assert.Equal(t, "learner@example.com", user.Email)
	assert.Equal(t, int64(0), user.ID, "A new User should have zero ID until saved to database")
	assert.WithinDuration(t, now, user.CreatedAt, time.Second)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.Equal(t, "users", user.TableName())
}

func TestUser_Sanitize(t *testing.T) {
	user := &models.User{
		ID:           7,
		Email:        "learner@example.com",
		PasswordHash: "hash",
		Salt:         "salt",
	}

	sanitized := user.Sanitize()

	assert.Empty(t, sanitized.PasswordHash)
	assert.Empty(t, sanitized.Salt)
	assert.Equal(t, user.ID, sanitized.ID)
	assert.Equal(t, user.Email, sanitized.Email)

	// The original keeps its password material
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, "salt", user.Salt)
}

func TestUser_JSONHidesPasswordMaterial(t *testing.T) {
	data, err := json.Marshal(&models.User{ID: 1, Email: "a@example.com", PasswordHash: "hash", Salt: "salt"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "salt")
}

func TestNewUserProfile(t *testing.T) {
	profile := models.NewUserProfile(42)

	assert.Equal(t, int64(42), profile.UserID)
	assert.False(t, profile.HasPaid, "A fresh profile must start unpaid")
	assert.Equal(t, "user_profiles", profile.TableName())

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hasPaid":false}`, string(data))
}
