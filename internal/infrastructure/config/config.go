package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Provider  ProviderConfig
	Lookup    LookupConfig
	Reconcile ReconcileConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
	MaxBatchSize    int // largest write batch committed in one transaction
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the Redis host:port address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
	RateLimit        float64 // requests per second per client, 0 = unlimited
	RateBurst        int

	SwaggerEnabled    bool     // serve API docs under /swagger
	SwaggerAllowedIPs []string // IPs or CIDRs allowed to read the docs, empty = all
}

// ProviderConfig holds the external inventory service settings
type ProviderConfig struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	Burst     int
}

// LookupConfig holds consumer stock lookup settings
type LookupConfig struct {
	FallbackLatitude  float64
	FallbackLongitude float64
	Timeout           time.Duration
}

// ReconcileConfig holds inventory reconciliation settings
type ReconcileConfig struct {
	BatchSize         int
	LeaseTTL          time.Duration
	HistorySize       int
	ScheduleEnabled   bool
	ScheduleInterval  time.Duration
	MaxConcurrentJobs int
	JobTimeout        time.Duration
}

// EventsConfig holds stock-change event publishing settings
type EventsConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	MetricsEnabled    bool
	MetricsInterval   time.Duration
	DBTraceEnabled    bool // Enable database query tracing (otelgorm)
	LogsEnabled       bool // Export zap logs through the OTLP log bridge

	ProfilingEnabled  bool   // Push continuous profiles to Pyroscope
	ProfilingAddress  string // Pyroscope server address
	ProfilingExtended bool   // Collect allocation and goroutine profiles too
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHELF_ prefix (e.g., SHELF_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			MaxBatchSize:    v.GetInt("database.max_batch_size"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			CORSAllowOrigins:  v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
			RateLimit:         v.GetFloat64("http.rate_limit"),
			RateBurst:         v.GetInt("http.rate_burst"),
			SwaggerEnabled:    v.GetBool("http.swagger_enabled"),
			SwaggerAllowedIPs: v.GetStringSlice("http.swagger_allowed_ips"),
		},
		Provider: ProviderConfig{
			BaseURL:   v.GetString("provider.base_url"),
			APIKey:    v.GetString("provider.api_key"),
			Timeout:   v.GetDuration("provider.timeout"),
			RateLimit: v.GetFloat64("provider.rate_limit"),
			Burst:     v.GetInt("provider.burst"),
		},
		Lookup: LookupConfig{
			FallbackLatitude:  v.GetFloat64("lookup.fallback_latitude"),
			FallbackLongitude: v.GetFloat64("lookup.fallback_longitude"),
			Timeout:           v.GetDuration("lookup.timeout"),
		},
		Reconcile: ReconcileConfig{
			BatchSize:         v.GetInt("reconcile.batch_size"),
			LeaseTTL:          v.GetDuration("reconcile.lease_ttl"),
			HistorySize:       v.GetInt("reconcile.history_size"),
			ScheduleEnabled:   v.GetBool("reconcile.schedule_enabled"),
			ScheduleInterval:  v.GetDuration("reconcile.schedule_interval"),
			MaxConcurrentJobs: v.GetInt("reconcile.max_concurrent_jobs"),
			JobTimeout:        v.GetDuration("reconcile.job_timeout"),
		},
		Events: EventsConfig{
			Enabled:      v.GetBool("events.enabled"),
			Brokers:      v.GetStringSlice("events.brokers"),
			Topic:        v.GetString("events.topic"),
			WriteTimeout: v.GetDuration("events.write_timeout"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			ProfilingEnabled:  v.GetBool("telemetry.profiling_enabled"),
			ProfilingAddress:  v.GetString("telemetry.profiling_address"),
			ProfilingExtended: v.GetBool("telemetry.profiling_extended"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shelfsync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "shelfsync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.MaxBatchSize == 0 {
		cfg.Database.MaxBatchSize = 500
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.RateLimit > 0 && cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateBurst = int(cfg.HTTP.RateLimit) + 1
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 10 * time.Second
	}
	if cfg.Provider.Burst == 0 {
		cfg.Provider.Burst = 5
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 8 * time.Second
	}
	if cfg.Reconcile.BatchSize == 0 {
		cfg.Reconcile.BatchSize = 450
	}
	if cfg.Reconcile.LeaseTTL == 0 {
		cfg.Reconcile.LeaseTTL = 5 * time.Minute
	}
	if cfg.Reconcile.HistorySize == 0 {
		cfg.Reconcile.HistorySize = 20
	}
	if cfg.Reconcile.ScheduleInterval == 0 {
		cfg.Reconcile.ScheduleInterval = time.Hour
	}
	if cfg.Reconcile.MaxConcurrentJobs == 0 {
		cfg.Reconcile.MaxConcurrentJobs = 3
	}
	if cfg.Reconcile.JobTimeout == 0 {
		cfg.Reconcile.JobTimeout = 10 * time.Minute
	}
	if cfg.Events.Topic == "" {
		cfg.Events.Topic = "catalog.stock-changed"
	}
	if cfg.Events.WriteTimeout == 0 {
		cfg.Events.WriteTimeout = 5 * time.Second
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "shelfsync"
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.ProfilingAddress == "" {
		cfg.Telemetry.ProfilingAddress = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Database.MaxBatchSize <= 0 {
		return fmt.Errorf("database.max_batch_size must be positive")
	}

	if c.Reconcile.BatchSize < 0 {
		return fmt.Errorf("reconcile.batch_size cannot be negative")
	}
	if c.Reconcile.BatchSize > c.Database.MaxBatchSize {
		return fmt.Errorf("reconcile.batch_size (%d) cannot exceed database.max_batch_size (%d)",
			c.Reconcile.BatchSize, c.Database.MaxBatchSize)
	}
	if c.Reconcile.ScheduleEnabled && c.Reconcile.LeaseTTL < c.Reconcile.JobTimeout {
		return fmt.Errorf("reconcile.lease_ttl (%s) must cover reconcile.job_timeout (%s)",
			c.Reconcile.LeaseTTL, c.Reconcile.JobTimeout)
	}

	if c.Lookup.FallbackLatitude < -90 || c.Lookup.FallbackLatitude > 90 {
		return fmt.Errorf("lookup.fallback_latitude must be between -90 and 90")
	}
	if c.Lookup.FallbackLongitude < -180 || c.Lookup.FallbackLongitude > 180 {
		return fmt.Errorf("lookup.fallback_longitude must be between -180 and 180")
	}

	if c.Provider.RateLimit < 0 {
		return fmt.Errorf("provider.rate_limit cannot be negative")
	}
	if c.Provider.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Provider.BaseURL); err != nil {
			return fmt.Errorf("provider.base_url is invalid: %w", err)
		}
	}

	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers is required when events are enabled")
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url is required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
