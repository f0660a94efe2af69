// Package config loads service configuration from an optional .env file, an
// optional config.yaml and COUNSEL_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. COUNSEL_LEDGER_BACKEND.
const EnvPrefix = "COUNSEL"

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendKafka    = "kafka"
)

type Config struct {
	Server    Server         `mapstructure:"server"`
	Database  DatabaseConfig `mapstructure:"database"`
	Redis     RedisConfig    `mapstructure:"redis"`
	Ledger    Ledger         `mapstructure:"ledger"`
	Auth      Auth           `mapstructure:"auth"`
	Audit     Audit          `mapstructure:"audit"`
	RateLimit RateLimit      `mapstructure:"rate_limit"`
	Tracing   Tracing        `mapstructure:"tracing"`
	Logging   Logging        `mapstructure:"logging"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig configures the Postgres pool. An empty URL keeps identity
// and case data in memory.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Ledger selects where applications live and bounds every store call.
type Ledger struct {
	Backend      string        `mapstructure:"backend"`
	StoreTimeout time.Duration `mapstructure:"store_timeout"`
	// LookupConcurrency bounds parallel prisoner lookups per notification listing.
	LookupConcurrency int `mapstructure:"lookup_concurrency"`
}

// Auth enables bearer verification when SigningKey is set.
type Auth struct {
	SigningKey string `mapstructure:"signing_key"`
	Issuer     string `mapstructure:"issuer"`
}

func (a Auth) Enabled() bool { return a.SigningKey != "" }

// RateLimit throttles each caller on the authenticated routes. Zero
// Requests disables it.
type RateLimit struct {
	Backend  string        `mapstructure:"backend"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

func (r RateLimit) Enabled() bool { return r.Requests > 0 }

type Audit struct {
	Sink         string   `mapstructure:"sink"`
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`
}

// Tracing exports spans over OTLP/HTTP when Endpoint is set.
type Tracing struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	ServiceName string  `mapstructure:"service_name"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the working directory and environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(viper.New())
}

// LoadWith reads configuration through v, letting callers point it at a
// specific file or preset values.
func LoadWith(v *viper.Viper) (*Config, error) {
	applyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("ledger.backend", BackendMemory)
	v.SetDefault("ledger.store_timeout", 3*time.Second)
	v.SetDefault("ledger.lookup_concurrency", 8)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.issuer", "counsel")

	v.SetDefault("audit.sink", BackendMemory)
	v.SetDefault("audit.kafka_brokers", []string{})
	v.SetDefault("audit.kafka_topic", "counsel.audit")

	v.SetDefault("rate_limit.backend", BackendMemory)
	v.SetDefault("rate_limit.requests", 0)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", false)
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.service_name", "counsel")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Ledger.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("ledger.backend=postgres requires database.url"))
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("ledger.backend=redis requires redis.url"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ledger.backend %q", c.Ledger.Backend))
	}
	if c.Ledger.StoreTimeout <= 0 {
		errs = append(errs, errors.New("ledger.store_timeout must be positive"))
	}
	if c.Ledger.LookupConcurrency < 1 {
		errs = append(errs, errors.New("ledger.lookup_concurrency must be at least 1"))
	}

	switch c.Audit.Sink {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("audit.sink=postgres requires database.url"))
		}
	case BackendKafka:
		if len(c.Audit.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("audit.sink=kafka requires audit.kafka_brokers"))
		}
		if c.Audit.KafkaTopic == "" {
			errs = append(errs, errors.New("audit.sink=kafka requires audit.kafka_topic"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown audit.sink %q", c.Audit.Sink))
	}

	if c.RateLimit.Enabled() {
		switch c.RateLimit.Backend {
		case BackendMemory:
		case BackendRedis:
			if c.Redis.URL == "" {
				errs = append(errs, errors.New("rate_limit.backend=redis requires redis.url"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown rate_limit.backend %q", c.RateLimit.Backend))
		}
		if c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("rate_limit.window must be positive"))
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, errors.New("tracing.sample_ratio must be within [0,1]"))
	}
	return errors.Join(errs...)
}
