package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "qltb_sid", cfg.Session.CookieName)
	assert.Equal(t, "https://quan-ly-thiet-bi-backend.onrender.com/api", cfg.API.BaseURL)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:3001/api/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/api", cfg.API.BaseURL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://api.local/api"},
			Session: SessionConfig{Backend: SessionBackendMemory, CookieName: "sid"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "memory ok", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Session.Backend = "etcd" }, wantErr: true},
		{name: "redis without addr", mutate: func(c *Config) { c.Session.Backend = SessionBackendRedis }, wantErr: true},
		{name: "redis with addr", mutate: func(c *Config) {
			c.Session.Backend = SessionBackendRedis
			c.Redis.Addr = "127.0.0.1:6379"
		}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Session.Backend = SessionBackendPostgres }, wantErr: true},
		{name: "relative api url", mutate: func(c *Config) { c.API.BaseURL = "/api" }, wantErr: true},
		{name: "empty cookie name", mutate: func(c *Config) { c.Session.CookieName = "" }, wantErr: true},
		{name: "relative audit webhook", mutate: func(c *Config) { c.Audit.WebhookURL = "/hooks" }, wantErr: true},
		{name: "absolute audit webhook", mutate: func(c *Config) { c.Audit.WebhookURL = "https://hooks.local/audit" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
