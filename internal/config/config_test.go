package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		return &Config{
			Env:        "production",
			Port:       "8480",
			JWTSecret:  "secure-secret-at-least-32-chars-long",
			DBPassword: "secure-password",
			DBSSLMode:  "require",
			RedisURL:   "redis://localhost:6379",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid production config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Default JWT secret in production", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Short JWT secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"Default DB password in production", func(c *Config) { c.DBPassword = "password" }, true},
		{"Empty DB password in production", func(c *Config) { c.DBPassword = "" }, true},
		{"Prod alias enforced too", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
		{"Development tolerates weak values", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "dev-secret"
			c.DBPassword = "password"
		}, false},
		{"Test env tolerates weak values", func(c *Config) {
			c.Env = "test"
			c.DBPassword = "password"
		}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := base()
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
