package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Equal(t, "http://localhost:8080", cfg.ShortURLBase)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tinyapp_session", cfg.AuthCookieName)
	assert.NotEmpty(t, cfg.AuthCookieSigningSecretKey)
	assert.Empty(t, cfg.TrustedSubnet)
}

func TestConfigEnvOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7000")
	t.Setenv("BASE_URL", "http://envonly.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTH_COOKIE_NAME", "session")
	t.Setenv("TRUSTED_SUBNET", "192.168.1.0/24")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.RunAddr)
	assert.Equal(t, "http://envonly.com", cfg.ShortURLBase)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "session", cfg.AuthCookieName)
	assert.Equal(t, "192.168.1.0/24", cfg.TrustedSubnet)
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

func TestConfigRejectsInvalidTrustedSubnet(t *testing.T) {
	t.Setenv("TRUSTED_SUBNET", "not-a-cidr")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

func TestConfigRejectsNonBase64Secret(t *testing.T) {
	t.Setenv("AUTH_COOKIE_SIGNING_SECRET_KEY", "???not base64???")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}
