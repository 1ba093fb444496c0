package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Black-And-White-Club/golfcard/pkg/observability"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Cache         CacheConfig         `yaml:"cache"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
	Scoring       ScoringConfig       `yaml:"scoring"`
}

// PostgresConfig holds Postgres configuration. An empty DSN runs the store
// local-only.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig selects the local history cache.
type CacheConfig struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
	// MaxClients rate limit buckets are kept before those idle for
	// ClientIdle are pruned. Zero uses the API defaults.
	MaxClients int           `yaml:"max_clients"`
	ClientIdle time.Duration `yaml:"client_idle"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	MetricsAddress string `yaml:"metrics_address"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	Environment    string `yaml:"environment"`
}

// ScoringConfig holds the handicap allowances applied when a round leaves
// its percentage unset.
type ScoringConfig struct {
	DefaultHandicapPercentage   int `yaml:"default_handicap_percentage"`
	SindicatoHandicapPercentage int `yaml:"sindicato_handicap_percentage"`
}

const (
	defaultHTTPAddr         = ":8080"
	defaultCacheDriver      = "sqlite"
	defaultCachePath        = "golfcard-cache.db"
	defaultRateLimit        = 10
	defaultRateBurst        = 20
	defaultHandicapPct      = 100
	defaultSindicatoHandPct = 75
)

// LoadConfig loads the configuration from a YAML file. A missing file falls
// back to the environment; environment variables always override the file.
// A .env file in the working directory is loaded first when present.
func LoadConfig(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Cache.RedisDB = n
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT value: %v", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("HTTP_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_BURST value: %v", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("HTTP_MAX_CLIENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_MAX_CLIENTS value: %v", err)
		}
		cfg.HTTP.MaxClients = n
	}
	if v := os.Getenv("HTTP_CLIENT_IDLE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_CLIENT_IDLE value: %v", err)
		}
		cfg.HTTP.ClientIdle = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Cache.Driver == "" {
		c.Cache.Driver = defaultCacheDriver
	}
	if c.Cache.Path == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaultHTTPAddr
	}
	if c.HTTP.RateLimit == 0 {
		c.HTTP.RateLimit = defaultRateLimit
	}
	if c.HTTP.RateBurst == 0 {
		c.HTTP.RateBurst = defaultRateBurst
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Scoring.DefaultHandicapPercentage == 0 {
		c.Scoring.DefaultHandicapPercentage = defaultHandicapPct
	}
	if c.Scoring.SindicatoHandicapPercentage == 0 {
		c.Scoring.SindicatoHandicapPercentage = defaultSindicatoHandPct
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:    "golfcard",
		Environment:    appCfg.Observability.Environment,
		LogLevel:       appCfg.Observability.LogLevel,
		LogFormat:      appCfg.Observability.LogFormat,
		TracesEndpoint: appCfg.Observability.OTLPEndpoint,
	}
}
