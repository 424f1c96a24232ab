package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/timer-endpoints/internal/domain/timer"
	"github.com/oshokin/timer-endpoints/internal/logger"
	"github.com/oshokin/timer-endpoints/internal/tick"
)

// Config holds the settings of the timer daemon.
type Config struct {
	// TickRate is the number of ticks per second of the time source.
	TickRate uint64 `yaml:"tick_rate"`
	// LogLevel is the minimum level of log entries (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// MaxReportBytes caps the size of a rendered status block.
	MaxReportBytes int `yaml:"max_report_bytes"`
	// MetricsAddress is an optional host:port serving Prometheus metrics.
	MetricsAddress string `yaml:"metrics_address,omitempty"`
	// Endpoints lists the timer endpoints to register at startup.
	Endpoints []Endpoint `yaml:"endpoints"`
}

// Endpoint describes one timer endpoint.
type Endpoint struct {
	// Name is the address of the endpoint, e.g. "stopwatch".
	Name string `yaml:"name"`
	// Kind is either "stopwatch" or "countdown".
	Kind string `yaml:"kind"`
	// LogLevel optionally overrides the process log level for this endpoint.
	LogLevel string `yaml:"log_level,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for daemon settings.
	DefaultConfigFilename = "timer-endpoints-settings.yaml"

	// DefaultTickRate matches the classic 100 Hz jiffy clock.
	DefaultTickRate = 100

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultMaxReportBytes is the historical status buffer size.
	DefaultMaxReportBytes = timer.MaxReportBytes

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEndpointNameRequired is returned for an endpoint without a name.
	errEndpointNameRequired = errors.New("endpoint name must be provided")
	// errDuplicateEndpoint is returned when two endpoints share a name.
	errDuplicateEndpoint = errors.New("duplicate endpoint name")
	// errInvalidLogLevel is returned for an unknown log level.
	errInvalidLogLevel = errors.New("invalid log level")
	// errInvalidReportLimit is returned for a non-positive report size.
	errInvalidReportLimit = errors.New("max report bytes must be positive")
)

// Default returns settings with the conventional stopwatch and countdown endpoints.
func Default() *Config {
	cfg := new(Config)

	// Validate only fills in defaults here, it cannot fail on an empty config.
	_ = Validate(cfg) //nolint:errcheck // See comment above.

	return cfg
}

// DefaultEndpoints returns the conventional endpoint pair.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Name: "stopwatch", Kind: timer.KindStopwatch.String()},
		{Name: "countdown", Kind: timer.KindCountdown.String()},
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is like Load but falls back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and checks the settings for consistency.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.TickRate == 0 {
		settings.TickRate = DefaultTickRate
	}

	if err := tick.Rate(settings.TickRate).Validate(); err != nil {
		return fmt.Errorf("invalid tick rate: %w", err)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, settings.LogLevel)
	}

	if settings.MaxReportBytes == 0 {
		settings.MaxReportBytes = DefaultMaxReportBytes
	}

	if settings.MaxReportBytes < 0 {
		return errInvalidReportLimit
	}

	if len(settings.Endpoints) == 0 {
		settings.Endpoints = DefaultEndpoints()
	}

	seen := make(map[string]struct{}, len(settings.Endpoints))
	for _, ep := range settings.Endpoints {
		if ep.Name == "" {
			return errEndpointNameRequired
		}

		if _, ok := seen[ep.Name]; ok {
			return fmt.Errorf("%w: %q", errDuplicateEndpoint, ep.Name)
		}

		seen[ep.Name] = struct{}{}

		if _, err := timer.ParseKind(ep.Kind); err != nil {
			return fmt.Errorf("endpoint %q: %w", ep.Name, err)
		}

		if ep.LogLevel == "" {
			continue
		}

		if _, ok := logger.ParseLogLevel(ep.LogLevel); !ok {
			return fmt.Errorf("endpoint %q: %w: %q", ep.Name, errInvalidLogLevel, ep.LogLevel)
		}
	}

	if settings.MetricsAddress == "" {
		return nil
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
		return fmt.Errorf("invalid metrics address: %w", err)
	}

	return nil
}
