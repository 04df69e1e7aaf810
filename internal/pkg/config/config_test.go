package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultValues(t *testing.T) {
	cfg, err := Parse(context.Background(), envconfig.MapLookuper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "http://localhost:4000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, "renova_auth", cfg.Session.Key)
	assert.Empty(t, cfg.Session.Secret)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.Equal(t, "renova_storefront", cfg.Mongo.Database)
	assert.False(t, cfg.Receipts.Enabled)
	assert.Equal(t, "renova-tickets", cfg.Receipts.Bucket)
}

func TestParse_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*testing.T, *Config)
	}{
		{
			name: "backend api",
			envVars: map[string]string{
				"API_BASE_URL": "https://api.renova.example",
				"API_TIMEOUT":  "3s",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.renova.example", cfg.API.BaseURL)
				assert.Equal(t, 3*time.Second, cfg.API.Timeout)
			},
		},
		{
			name: "redis sessions",
			envVars: map[string]string{
				"SESSION_BACKEND": "redis",
				"SESSION_TTL":     "24h",
				"SESSION_SECRET":  "s3cret",
				"REDIS_URL":       "redis://cache:6379/2",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
				assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
				assert.Equal(t, "s3cret", cfg.Session.Secret)
				assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
			},
		},
		{
			name: "receipt archive",
			envVars: map[string]string{
				"RECEIPTS_ENABLED": "true",
				"MINIO_ENDPOINT":   "minio:9000",
				"MINIO_USE_SSL":    "true",
			},
			expected: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Receipts.Enabled)
				assert.Equal(t, "minio:9000", cfg.Receipts.Endpoint)
				assert.True(t, cfg.Receipts.UseSSL)
			},
		},
		{
			name:    "production",
			envVars: map[string]string{"ENV": "production", "SYNC_WORKERS": "16"},
			expected: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, 16, cfg.Sync.Workers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(context.Background(), envconfig.MapLookuper(tt.envVars))
			require.NoError(t, err)
			tt.expected(t, cfg)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"unknown backend": {"SESSION_BACKEND": "sqlite"},
		"zero workers":    {"SYNC_WORKERS": "0"},
		"bad duration":    {"API_TIMEOUT": "soon"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
