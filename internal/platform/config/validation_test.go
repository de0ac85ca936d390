package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := Load("", isolated(t.TempDir())...)
	require.NoError(t, err)

	return cfg
}

func TestValidate_FieldConstraints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"unknown environment", func(c *Config) { c.App.Environment = "staging" },
			"app.environment must be one of: local, dev, qa, prod, test"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"short read timeout", func(c *Config) { c.Server.ReadTimeout = 10 * time.Millisecond },
			"server.read_timeout must be at least 1s"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" },
			"log.level must be one of: trace, debug, info, warn, error"},
		{"log file without path", func(c *Config) { c.Log.File.Enabled = true; c.Log.File.Path = "" },
			"log.file.path is required when enabled is true"},
		{"telemetry without endpoint", func(c *Config) { c.Telemetry.Enabled = true },
			"telemetry.endpoint is required when enabled is true"},
		{"sampling rate above one", func(c *Config) { c.Telemetry.SamplingRate = 1.5 },
			"telemetry.sampling_rate must be at most 1"},
		{"unknown auth mode", func(c *Config) { c.Auth.Mode = "cookie" }, "auth.mode must be one of: header, firebase"},
		{"header mode without header", func(c *Config) { c.Auth.SubjectHeader = "" },
			"auth.subject_header is required when mode is header"},
		{"zero retry attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 0 }, "client.retry.max_attempts is required"},
		{"flat multiplier", func(c *Config) { c.Client.Retry.Multiplier = 1 }, "client.retry.multiplier must be at least 1.1"},
		{"unknown store", func(c *Config) { c.Store.Driver = "mongo" },
			"store.driver must be one of: memory, postgres, rest"},
		{"bad rest url", func(c *Config) { c.Rest.BaseURL = "not a url" }, "rest.base_url must be a valid URL"},
		{"unknown cache", func(c *Config) { c.Cache.Driver = "memcached" },
			"cache.driver must be one of: memory, redis, sqlite"},
		{"redis db out of range", func(c *Config) { c.Redis.DB = 16 }, "redis.db must be at most 15"},
		{"share without export dir", func(c *Config) { c.Share.Enabled = true; c.Share.ExportDir = "" },
			"share.export_dir is required when enabled is true"},
		{"card scale too large", func(c *Config) { c.Share.CardScale = 9 }, "share.card_scale must be at most 8"},
		{"cors without origins", func(c *Config) { c.CORS.Enabled = true },
			"cors.allow_origins is required when cors.enabled is true"},
		{"short session ttl", func(c *Config) { c.Session.IdleTTL = time.Millisecond },
			"session.idle_ttl must be at least 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_BackendDependencies(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"postgres without dsn", func(c *Config) { c.Store.Driver = "postgres" },
			"database.dsn is required when store.driver is postgres"},
		{"rest without url", func(c *Config) { c.Store.Driver = "rest" },
			"rest.base_url is required when store.driver is rest"},
		{"redis without addr", func(c *Config) { c.Cache.Driver = "redis"; c.Redis.Addr = "" },
			"redis.addr is required when cache.driver is redis"},
		{"sqlite without path", func(c *Config) { c.Cache.Driver = "sqlite"; c.SQLite.Path = "" },
			"sqlite.path is required when cache.driver is sqlite"},
		{"firebase auth while disabled", func(c *Config) { c.Auth.Mode = "firebase" },
			"firebase.enabled must be true when auth.mode is firebase"},
		{"unknown time zone", func(c *Config) { c.Notifications.Enabled = true; c.Notifications.Timezone = "Mars/Olympus" },
			`notifications.timezone "Mars/Olympus" is not a valid IANA zone`},
		{"inverted retry window", func(c *Config) { c.Client.Retry.InitialInterval = 10 * time.Second },
			"client.retry.initial_interval must not exceed client.retry.max_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Server.Port = 0
	cfg.Store.Driver = "postgres"
	cfg.Cache.Driver = "redis"
	cfg.Redis.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "invalid configuration:")
	assert.Contains(t, msg, "server.port is required")
	assert.Contains(t, msg, "database.dsn is required")
	assert.Contains(t, msg, "redis.addr is required")
}

func TestValidate_ConfiguredBackends(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Store.Driver = "rest"
	cfg.Rest.BaseURL = "https://vault.supabase.co/rest/v1"
	cfg.Cache.Driver = "redis"
	cfg.Auth = AuthConfig{Mode: "firebase"}
	cfg.Firebase.Enabled = true
	cfg.Notifications = NotificationsConfig{Enabled: true, Timezone: "UTC"}
	cfg.CORS = CORSConfig{Enabled: true, AllowOrigins: []string{"https://app.example"}}

	assert.NoError(t, cfg.Validate())
}
