package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmin_Login(t *testing.T) {
	admin := NewAdmin("112233")

	assert.ErrorIs(t, admin.Login("000000"), ErrInvalidAccessCode)
	assert.False(t, admin.IsAdmin())

	assert.NoError(t, admin.Login("112233"))
	assert.True(t, admin.IsAdmin())
}

func TestAdmin_EmptyCodeDisablesAdminMode(t *testing.T) {
	admin := NewAdmin("")

	assert.ErrorIs(t, admin.Login(""), ErrInvalidAccessCode)
	assert.False(t, admin.IsAdmin())
}

func TestAdmin_PanelOnlyTogglesInAdminMode(t *testing.T) {
	admin := NewAdmin("112233")

	assert.False(t, admin.TogglePanel())
	assert.False(t, admin.PanelOpen())

	assert.NoError(t, admin.Login("112233"))
	assert.True(t, admin.TogglePanel())
	assert.False(t, admin.TogglePanel())
	assert.True(t, admin.TogglePanel())
}

func TestAdmin_LogoutClosesPanel(t *testing.T) {
	admin := NewAdmin("112233")
	assert.NoError(t, admin.Login("112233"))
	admin.TogglePanel()

	admin.Logout()

	assert.False(t, admin.IsAdmin())
	assert.False(t, admin.PanelOpen())
}
