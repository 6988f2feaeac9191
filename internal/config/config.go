package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App     App
	HTTP    HTTP
	Model   Model
	Probe   Probe
	Metrics Metrics
	Log     Log
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"diagnosis-api"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type HTTP struct {
	ListenAddress     string        `env:"HTTP_LISTEN_ADDRESS" envDefault:"0.0.0.0:5000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes      int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"65536"`
	LogFieldMaxLen    int           `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"4096"`
	MaskLogBodies     bool          `env:"HTTP_LOG_MASK_BODIES" envDefault:"true"`
}

type Model struct {
	Path             string        `env:"MODEL_PATH" envDefault:"modelo.json"`
	ExpectedFeatures int           `env:"MODEL_EXPECTED_FEATURES" envDefault:"30"`
	CacheTTL         time.Duration `env:"PREDICTION_CACHE_TTL" envDefault:"0s"`
	CacheSize        int           `env:"PREDICTION_CACHE_SIZE" envDefault:"1024"`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:"0.0.0.0:8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:"0.0.0.0:9090"`
}

type Log struct {
	Level          string `env:"LOG_LEVEL" envDefault:"info"`
	Format         string `env:"LOG_FORMAT" envDefault:"json"`
	File           string `env:"LOG_FILE"`
	FileMaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`
	FileMaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`
}

// Load reads .env when present, then the process environment, which wins.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, fmt.Errorf("config.validate: %w", err)
	}

	return config, nil
}

func (c Config) validate() error {
	switch {
	case c.Model.Path == "":
		return errors.New("MODEL_PATH is empty")
	case c.Model.ExpectedFeatures < 0:
		return fmt.Errorf("MODEL_EXPECTED_FEATURES must not be negative, got %d", c.Model.ExpectedFeatures)
	case c.Model.CacheTTL < 0:
		return fmt.Errorf("PREDICTION_CACHE_TTL must not be negative, got %s", c.Model.CacheTTL)
	case c.Model.CacheSize < 0:
		return fmt.Errorf("PREDICTION_CACHE_SIZE must not be negative, got %d", c.Model.CacheSize)
	case c.HTTP.MaxBodyBytes <= 0:
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be positive, got %d", c.HTTP.MaxBodyBytes)
	}

	return nil
}
