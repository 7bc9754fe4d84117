package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// An env-only deployment carries no config file, so every key the app reads
// must still come through from the environment.
func TestLoadConfig_EnvOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "rootpass")
	t.Setenv("PROVIDER_FLIGHTS_URL", "http://flights.local/search")

	LoadConfig()

	assert.Equal(t, "test_secret", AppConfig.JWTSecret)
	assert.Equal(t, "root@example.com", AppConfig.AdminEmail)
	assert.Equal(t, "root", AppConfig.AdminUsername)
	assert.Equal(t, "rootpass", AppConfig.AdminPassword)
	assert.Equal(t, "http://flights.local/search", AppConfig.ProviderFlightsURL)

	// Defaults still apply for everything the environment left unset.
	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, 120, AppConfig.SessionTTLMinutes)
}
