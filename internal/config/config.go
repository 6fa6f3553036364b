package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	EnvDataDir     = "HANDBOOK_DATA_DIR"
	EnvAddress     = "HANDBOOK_ADDRESS"
	EnvLogLevel    = "HANDBOOK_LOG_LEVEL"
	EnvCORSOrigins = "HANDBOOK_CORS_ORIGINS"
	EnvRateLimit   = "HANDBOOK_RATE_LIMIT"
	EnvRateBurst   = "HANDBOOK_RATE_BURST"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	DataDir     string   `yaml:"data_dir"`
	Address     string   `yaml:"address"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`
	RateLimit   float64  `yaml:"rate_limit"` // Requests per second, 0 disables throttling
	RateBurst   int      `yaml:"rate_burst"`
}

func Default() Config {
	return Config{
		DataDir:     "data",
		Address:     ":8080",
		LogLevel:    "info",
		CORSOrigins: []string{"*"},
		RateLimit:   20,
		RateBurst:   40,
	}
}

// Load builds the configuration from the defaults, then the YAML file (if any), then the environment.
// A .env file in the working directory is read into the environment first when present.
func Load(file string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("cannot read .env file: %w", err)
	}

	config := Default()
	if file != "" {
		bytes, err := os.ReadFile(file)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(bytes, &config); err != nil {
			return Config{}, fmt.Errorf("%w: %v: %w", ErrInvalidConfig, file, err)
		}
	}

	if err := config.applyEnvironment(); err != nil {
		return Config{}, err
	}
	return config, config.Validate()
}

func (config *Config) applyEnvironment() error {
	if value, ok := os.LookupEnv(EnvDataDir); ok {
		config.DataDir = value
	}
	if value, ok := os.LookupEnv(EnvAddress); ok {
		config.Address = value
	}
	if value, ok := os.LookupEnv(EnvLogLevel); ok {
		config.LogLevel = value
	}
	if value, ok := os.LookupEnv(EnvCORSOrigins); ok {
		config.CORSOrigins = splitList(value)
	}
	if value, ok := os.LookupEnv(EnvRateLimit); ok {
		limit, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %v: %w", ErrInvalidConfig, EnvRateLimit, err)
		}
		config.RateLimit = limit
	}
	if value, ok := os.LookupEnv(EnvRateBurst); ok {
		burst, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %v: %w", ErrInvalidConfig, EnvRateBurst, err)
		}
		config.RateBurst = burst
	}
	return nil
}

func (config Config) Validate() error {
	if config.DataDir == "" {
		return fmt.Errorf("%w: data directory must be specified", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if config.RateLimit < 0 || config.RateBurst < 0 {
		return fmt.Errorf("%w: rate limit and burst cannot be negative", ErrInvalidConfig)
	}
	if config.RateLimit > 0 && config.RateBurst == 0 {
		return fmt.Errorf("%w: a rate limit needs a positive burst", ErrInvalidConfig)
	}
	return nil
}

// ApplyLogging sets the global logger level
func (config Config) ApplyLogging() {
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func splitList(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(part string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(part)
		return trimmed, trimmed != ""
	})
}
