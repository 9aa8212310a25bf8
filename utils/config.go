package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rusq/osenv/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables read at startup.
const (
	EnvHost       = "VCAP_APP_HOST"
	EnvPort       = "VCAP_APP_PORT"
	EnvConfigFile = "GREETER_CONFIG"
)

const (
	DefaultHost            = "localhost"
	DefaultPort            = 3000
	DefaultShutdownTimeout = 10 // seconds
	DefaultLogLevel        = "info"
)

var ErrInvalidPort = errors.New("invalid port value")

// Config is resolved once at process start and passed by value.
// Host is only displayed in the startup banner, the listener always binds
// every interface.
type Config struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"`
	LogLevel        string `yaml:"log_level"`
}

// DefaultConfig returns the fallback values used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        DefaultLogLevel,
	}
}

// GetConfig resolves the configuration: defaults, then the optional YAML file
// named by GREETER_CONFIG, then VCAP_APP_HOST and VCAP_APP_PORT.
// Absent and empty variables both fall back.
func GetConfig() (Config, error) {
	config := DefaultConfig()

	if path := osenv.Value(EnvConfigFile, ""); path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return Config{}, err
		}
	}

	if host := osenv.Value(EnvHost, ""); host != "" {
		config.Host = host
	}

	if raw := osenv.Value(EnvPort, ""); raw != "" {
		port, err := ParsePort(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvPort, err)
		}
		config.Port = port
	}

	if config.Port < 0 || config.Port > 65535 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidPort, config.Port)
	}

	return config, nil
}

// ParsePort accepts plain decimal digits in 0..65535, no sign or spaces.
func ParsePort(raw string) (int, error) {
	port, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, raw)
	}
	return int(port), nil
}

// loadConfigFile overlays the non-zero fields of the YAML file onto config.
func loadConfigFile(path string, config *Config) error {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fromFile Config
	if err := yaml.Unmarshal(configFile, &fromFile); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fromFile.Host != "" {
		config.Host = fromFile.Host
	}
	if fromFile.Port != 0 {
		config.Port = fromFile.Port
	}
	// set shutdown timeout only if configured
	if fromFile.ShutdownTimeout > 0 {
		config.ShutdownTimeout = fromFile.ShutdownTimeout
	}
	if fromFile.LogLevel != "" {
		config.LogLevel = fromFile.LogLevel
	}

	return nil
}
