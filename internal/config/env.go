package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "SOLDES"

// Env holds settings read from the environment (and .env). Registry values
// override the project file when set.
type Env struct {
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	RegistryURL     string        `envconfig:"REGISTRY_URL"`
	RegistryTimeout time.Duration `envconfig:"REGISTRY_TIMEOUT"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	MaxUploadMB     int64         `envconfig:"MAX_UPLOAD_MB" default:"32"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"60"` // requests per minute per client
}

// LoadEnv reads SOLDES_* variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &env, nil
}

// Apply copies environment overrides into cfg.
func (e *Env) Apply(cfg *Config) {
	if e.RegistryURL != "" {
		cfg.Registry.BaseURL = e.RegistryURL
	}
	if e.RegistryTimeout > 0 {
		cfg.Registry.Timeout = e.RegistryTimeout
	}
}

// NewLogger returns a slog.Logger writing to w in the configured format.
func NewLogger(e *Env, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if e == nil {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err == nil {
		opts.Level = level
	}
	if strings.EqualFold(e.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
