package auth_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/config"
)

func fastConfig() *auth.PasswordConfig {
	return &auth.PasswordConfig{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := fastConfig()

	hash, salt, err := auth.HashPassword("Password123!", cfg)
	require.NoError(t, err)

	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	require.NoError(t, err)
	assert.Len(t, rawSalt, 16)

	ok, err := auth.VerifyPassword("Password123!", hash, salt, cfg)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifyPassword("password123!", hash, salt, cfg)
	require.NoError(t, err)
	assert.False(t, ok)

	// Same password, fresh salt
	other, otherSalt, err := auth.HashPassword("Password123!", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, salt, otherSalt)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPassword_KeyLengthChange(t *testing.T) {
	cfg := fastConfig()
	hash, salt, err := auth.HashPassword("Password123!", cfg)
	require.NoError(t, err)

	cfg.KeyLength = 64
	ok, err := auth.VerifyPassword("Password123!", hash, salt, cfg)
	require.NoError(t, err)
	assert.True(t, ok, "hashes stored under the old key length must keep verifying")
}

func TestVerifyPassword_Malformed(t *testing.T) {
	cfg := fastConfig()

	_, err := auth.VerifyPassword("x", "%%%", "c2FsdA==", cfg)
	assert.ErrorIs(t, err, auth.ErrMalformedHash)

	_, err = auth.VerifyPassword("x", "aGFzaA==", "%%%", cfg)
	assert.ErrorIs(t, err, auth.ErrMalformedHash)

	_, err = auth.VerifyPassword("x", "", "c2FsdA==", cfg)
	assert.ErrorIs(t, err, auth.ErrMalformedHash)
}

func TestConfigFromAppConfig(t *testing.T) {
	assert.Equal(t, auth.DefaultPasswordConfig(), auth.ConfigFromAppConfig(nil))
	assert.Equal(t, auth.DefaultPasswordConfig(), auth.ConfigFromAppConfig(&config.AppConfig{}))

	appCfg := &config.AppConfig{}
	appCfg.PasswordHash.Memory = 2048
	appCfg.PasswordHash.Iterations = 2
	appCfg.PasswordHash.Parallelism = 1
	appCfg.PasswordHash.SaltLength = 8
	appCfg.PasswordHash.KeyLength = 16

	got := auth.ConfigFromAppConfig(appCfg)
	assert.Equal(t, &auth.PasswordConfig{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 8, KeyLength: 16}, got)
}
