package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/editor"
)

func TestAdminService_Login(t *testing.T) {
	svc := NewAdminService("112233", time.Hour)

	session, err := svc.Login("112233")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	admin, ok := svc.Lookup(session.Token)
	require.True(t, ok)
	assert.True(t, admin.IsAdmin())

	_, err = svc.Login("000000")
	assert.ErrorIs(t, err, editor.ErrInvalidAccessCode)
}

func TestAdminService_DisabledWithoutCode(t *testing.T) {
	svc := NewAdminService("", time.Hour)

	_, err := svc.Login("")

	assert.ErrorIs(t, err, editor.ErrInvalidAccessCode)
}

func TestAdminService_LookupUnknown(t *testing.T) {
	svc := NewAdminService("112233", time.Hour)

	_, ok := svc.Lookup("")
	assert.False(t, ok)

	_, ok = svc.Lookup("missing")
	assert.False(t, ok)
}

func TestAdminService_Logout(t *testing.T) {
	svc := NewAdminService("112233", time.Hour)
	first, err := svc.Login("112233")
	require.NoError(t, err)
	second, err := svc.Login("112233")
	require.NoError(t, err)

	admin, _ := svc.Lookup(first.Token)
	svc.Logout(first.Token)

	assert.False(t, admin.IsAdmin())
	_, ok := svc.Lookup(first.Token)
	assert.False(t, ok)

	// Other sessions stay unlocked
	_, ok = svc.Lookup(second.Token)
	assert.True(t, ok)

	svc.Logout("unknown")
}

func TestAdminService_Expiry(t *testing.T) {
	svc := NewAdminService("112233", time.Hour)
	now := time.Now()
	svc.now = func() time.Time { return now }

	session, err := svc.Login("112233")
	require.NoError(t, err)

	// Use slides the expiry forward
	now = now.Add(50 * time.Minute)
	_, ok := svc.Lookup(session.Token)
	require.True(t, ok)

	now = now.Add(50 * time.Minute)
	_, ok = svc.Lookup(session.Token)
	require.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok = svc.Lookup(session.Token)
	assert.False(t, ok)
}

func TestAdminService_PurgeExpired(t *testing.T) {
	svc := NewAdminService("112233", time.Minute)
	now := time.Now()
	svc.now = func() time.Time { return now }

	_, err := svc.Login("112233")
	require.NoError(t, err)

	assert.Equal(t, 0, svc.PurgeExpired())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, svc.PurgeExpired())
}
