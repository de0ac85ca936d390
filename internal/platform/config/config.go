// Package config loads the service configuration from defaults, YAML
// profiles and APP_ environment variables, and validates it before startup.
package config

import "time"

// Config is the whole service configuration. Each section maps to the
// top-level YAML key named in its koanf tag.
type Config struct {
	App           AppConfig           `koanf:"app"           validate:"required"`
	Server        ServerConfig        `koanf:"server"        validate:"required"`
	Log           LogConfig           `koanf:"log"           validate:"required"`
	Telemetry     TelemetryConfig     `koanf:"telemetry"`
	Auth          AuthConfig          `koanf:"auth"          validate:"required"`
	Client        ClientConfig        `koanf:"client"        validate:"required"`
	Store         StoreConfig         `koanf:"store"         validate:"required"`
	Database      DatabaseConfig      `koanf:"database"`
	Rest          RestConfig          `koanf:"rest"`
	Cache         CacheConfig         `koanf:"cache"         validate:"required"`
	Redis         RedisConfig         `koanf:"redis"`
	SQLite        SQLiteConfig        `koanf:"sqlite"`
	Firebase      FirebaseConfig      `koanf:"firebase"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Share         ShareConfig         `koanf:"share"`
	Session       SessionConfig       `koanf:"session"       validate:"required"`
	CORS          CORSConfig          `koanf:"cors"`
}

// AppConfig identifies the deployment.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig tunes the HTTP listener.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig adds a rotated JSON log file next to the primary output.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig enables OTLP trace and metric export over gRPC.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// AuthConfig selects how requests are authenticated.
// Mode "header" trusts SubjectHeader as set by an upstream gateway;
// mode "firebase" verifies a Bearer ID token.
type AuthConfig struct {
	Mode          string `koanf:"mode"           validate:"required,oneof=header firebase"`
	SubjectHeader string `koanf:"subject_header" validate:"required_if=Mode header"`
}

// ClientConfig tunes the outbound REST client.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig bounds retries of 5xx, 429 and transport failures.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig sets when the outbound breaker opens and how it
// probes for recovery.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig sizes the idle connection pool.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory postgres rest"`

	// SeedFile is a YAML quote list loaded into the memory store at startup.
	SeedFile string `koanf:"seed_file"`
}

// DatabaseConfig contains PostgreSQL pool settings.
type DatabaseConfig struct {
	DSN               string        `koanf:"dsn"`
	MaxConns          int32         `koanf:"max_conns"           validate:"omitempty,min=1"`
	MinConns          int32         `koanf:"min_conns"           validate:"omitempty,min=0"`
	MaxConnLifetime   time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `koanf:"health_check_period"`
	Migrate           bool          `koanf:"migrate"`
}

// RestConfig points at a PostgREST-compatible table API.
type RestConfig struct {
	BaseURL     string `koanf:"base_url"     validate:"omitempty,url"`
	APIKey      string `koanf:"api_key"`
	Schema      string `koanf:"schema"`
	ServiceName string `koanf:"service_name"`
}

// CacheConfig selects the local cache backend.
type CacheConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory redis sqlite"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr       string        `koanf:"addr"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"          validate:"min=0,max=15"`
	KeyPrefix  string        `koanf:"key_prefix"`
	TTL        time.Duration `koanf:"ttl"`
	PoolSize   int           `koanf:"pool_size"   validate:"omitempty,min=1"`
	MaxRetries int           `koanf:"max_retries" validate:"omitempty,min=0"`
}

// SQLiteConfig contains the embedded cache database path.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// FirebaseConfig enables Firebase Auth and Cloud Messaging.
type FirebaseConfig struct {
	Enabled         bool   `koanf:"enabled"`
	ProjectID       string `koanf:"project_id"`
	CredentialsFile string `koanf:"credentials_file"`
}

// NotificationsConfig controls daily reminder scheduling.
type NotificationsConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Timezone       string        `koanf:"timezone"`
	DeliverTimeout time.Duration `koanf:"deliver_timeout"`
}

// ShareConfig controls card export and the directory share targets.
type ShareConfig struct {
	Enabled    bool   `koanf:"enabled"`
	ExportDir  string `koanf:"export_dir"  validate:"required_if=Enabled true"`
	OutboxDir  string `koanf:"outbox_dir"`
	GalleryDir string `koanf:"gallery_dir"`
	CardScale  int    `koanf:"card_scale"  validate:"omitempty,min=1,max=8"`
}

// SessionConfig controls per-user session eviction.
type SessionConfig struct {
	IdleTTL       time.Duration `koanf:"idle_ttl"       validate:"required,min=1s"`
	SweepInterval time.Duration `koanf:"sweep_interval" validate:"required,min=1s"`
}

// CORSConfig configures cross-origin access for web clients.
type CORSConfig struct {
	Enabled      bool          `koanf:"enabled"`
	AllowOrigins []string      `koanf:"allow_origins"`
	MaxAge       time.Duration `koanf:"max_age"`
}
