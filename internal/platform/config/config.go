package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errInvalidPort      = errors.New("config: invalid PORT number")
	errDelayOutOfRange  = errors.New("config: SCAN_STEP_DELAY must be between 0s and 10s")
	errUnreadableConfig = errors.New("config: cannot read config file")
	errInvalidDelay     = errors.New("config: invalid step_delay duration")
)

// Config holds all application configuration. Values come from an
// optional YAML file pointed to by ACCESSLENS_CONFIG, with environment
// variables taking precedence over the file.
type Config struct {
	Port      string
	LogLevel  string
	StepDelay time.Duration
	ReportDir string
}

// fileConfig is the YAML shape of the optional config file. Durations
// are strings ("300ms") and parsed after unmarshalling.
type fileConfig struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	StepDelay string `yaml:"step_delay"`
	ReportDir string `yaml:"report_dir"`
}

// Load reads configuration from the optional YAML file and environment
// variables, applying sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:      "8080",
		LogLevel:  "ERROR",
		StepDelay: 300 * time.Millisecond,
		ReportDir: ".",
	}

	if path := os.Getenv("ACCESSLENS_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.StepDelay = getEnvAsDuration("SCAN_STEP_DELAY", cfg.StepDelay)
	cfg.ReportDir = getEnv("REPORT_DIR", cfg.ReportDir)

	return cfg, cfg.validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errUnreadableConfig, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: %w", errUnreadableConfig, err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.ReportDir != "" {
		c.ReportDir = fc.ReportDir
	}
	if fc.StepDelay != "" {
		d, err := time.ParseDuration(fc.StepDelay)
		if err != nil {
			return fmt.Errorf("%w: %q", errInvalidDelay, fc.StepDelay)
		}
		c.StepDelay = d
	}

	return nil
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.StepDelay < 0 || c.StepDelay > 10*time.Second {
		return fmt.Errorf("%w: got %s", errDelayOutOfRange, c.StepDelay)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
