package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultMetricsAddr    = ":9090"
	defaultDataSource     = "snyk_vulnerability_dataset.csv"
	defaultFetchTimeout   = 15 * time.Second
	defaultMaxUploadBytes = 32 << 20
	defaultShutdownGrace  = 10 * time.Second
)

type Config struct {
	HTTPAddr       string
	MetricsAddr    string
	DataSource     string
	FetchTimeout   time.Duration
	MaxUploadBytes int64
	ShutdownGrace  time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		HTTPAddr:       getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:    getenvDefault("METRICS_ADDR", defaultMetricsAddr),
		DataSource:     strings.TrimSpace(getenvDefault("DATA_SOURCE", defaultDataSource)),
		FetchTimeout:   defaultFetchTimeout,
		MaxUploadBytes: getenvInt64Default("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		ShutdownGrace:  defaultShutdownGrace,
	}

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if v := os.Getenv("SHUTDOWN_GRACE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ShutdownGrace = d
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used to start the service.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("HTTP_ADDR is required")
	}
	if c.DataSource == "" {
		return errors.New("DATA_SOURCE is required")
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// MetricsEnabled reports whether the metrics listener should start.
func (c Config) MetricsEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(c.MetricsAddr)) {
	case "", "off", "disabled", "false":
		return false
	default:
		return true
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64Default(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
