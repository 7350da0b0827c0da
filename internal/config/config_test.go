package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validProductionConfig() *Config {
	return &Config{
		Port:          "5050",
		Env:           "production",
		AuthJWTSecret: "secure-identity-secret-at-least-32-chars",
		DBPassword:    "secure-password",
		DBSSLMode:     "require",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid production config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing auth secret", func(c *Config) { c.AuthJWTSecret = "" }, true},
		{"Default auth secret in production", func(c *Config) {
			c.AuthJWTSecret = "dev-identity-secret-change-in-production"
		}, true},
		{"Short auth secret in production", func(c *Config) { c.AuthJWTSecret = "too-short" }, true},
		{"Default DB password in production", func(c *Config) { c.DBPassword = "password" }, true},
		{"Empty DB password in production", func(c *Config) { c.DBPassword = "" }, true},
		{"Prod alias enforced", func(c *Config) { c.Env = "prod"; c.DBPassword = "" }, true},
		{"Short auth secret in development", func(c *Config) {
			c.Env = "development"
			c.AuthJWTSecret = "short-dev-secret"
		}, false},
		{"Default DB password in development", func(c *Config) {
			c.Env = "development"
			c.DBPassword = "password"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validProductionConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "5050", c.Port)
	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "proconnect-identity", c.AuthIssuer)
	assert.Equal(t, "proconnect-client", c.AuthAudience)
	assert.Equal(t, "uploads", c.UploadDir)
	assert.Equal(t, 5, c.MediaMaxUploadMB)
	assert.Equal(t, 512, c.ProfilePictureSize)
	assert.False(t, c.TracingEnabled)
}
