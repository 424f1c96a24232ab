package timerd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/oshokin/timer-endpoints/internal/config"
	"github.com/oshokin/timer-endpoints/internal/console"
	"github.com/oshokin/timer-endpoints/internal/domain/timer"
	"github.com/oshokin/timer-endpoints/internal/logger"
	"github.com/oshokin/timer-endpoints/internal/metrics"
	"github.com/oshokin/timer-endpoints/internal/service/endpoint"
	"github.com/oshokin/timer-endpoints/internal/tick"
	"github.com/oshokin/timer-endpoints/internal/version"
)

// Options controls the timerd process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// RequireConfig makes a missing settings file an error instead of using defaults.
	RequireConfig bool
	// LogLevel overrides the level from the settings file when not empty.
	LogLevel string
}

// ErrInvalidLogLevel indicates an unknown log level override.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Host is a fully wired set of timer endpoints.
type Host struct {
	// Registry holds the configured endpoints.
	Registry *endpoint.Registry
	// Source is the tick source shared by all endpoints.
	Source *tick.ClockSource
	// Gatherer exposes the metrics of the endpoints.
	Gatherer prometheus.Gatherer
	// teardown lists the endpoint names to unregister on Close.
	teardown []string
}

// Run loads configuration, registers the endpoints and runs the operator
// console until ctx is canceled or the user quits.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "timerd")

	settings, err := loadSettings(opts)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	host, err := NewHost(ctx, settings, clock.New())
	if err != nil {
		return fmt.Errorf("initialise endpoints: %w", err)
	}

	defer host.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if settings.MetricsAddress != "" {
		go func() {
			if err := metrics.Serve(ctx, settings.MetricsAddress, host.Gatherer); err != nil {
				logger.ErrorKV(ctx, "Metrics server failed", "error", err)
			}
		}()
	}

	logger.InfoKV(ctx, "Starting timerd", version.KV()...)
	logger.InfoKV(ctx, "Timer endpoints ready",
		"tick_rate", settings.TickRate,
		"uptime_ceiling", host.Source.Ceiling().String(),
		"endpoints", len(settings.Endpoints))

	return console.New(host.Registry, os.Stdout).Run(ctx, cancel)
}

// NewHost creates the tick source, metrics and endpoints described by settings.
func NewHost(ctx context.Context, settings *config.Config, clk clock.Clock) (*Host, error) {
	source, err := tick.NewClockSource(clk, tick.Rate(settings.TickRate))
	if err != nil {
		return nil, fmt.Errorf("create tick source: %w", err)
	}

	collector := metrics.New()

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	for _, c := range collector.PrometheusCollectors() {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	host := &Host{
		Registry: endpoint.NewRegistry(source,
			endpoint.WithObserver(collector),
			endpoint.WithReportLimit(settings.MaxReportBytes)),
		Source:   source,
		Gatherer: registry,
	}

	for _, ep := range settings.Endpoints {
		kind, err := timer.ParseKind(ep.Kind)
		if err != nil {
			host.Close(ctx)

			return nil, fmt.Errorf("endpoint %q: %w", ep.Name, err)
		}

		registered, err := host.Registry.Register(ctx, ep.Name, kind)
		if err != nil {
			host.Close(ctx)

			return nil, err
		}

		host.teardown = append(host.teardown, ep.Name)

		if level, ok := logger.ParseLogLevel(ep.LogLevel); ok {
			registered.SetLogLevel(&level)
		}
	}

	return host, nil
}

// Close unregisters every endpoint created by NewHost.
func (h *Host) Close(ctx context.Context) {
	for _, name := range h.teardown {
		if err := h.Registry.Unregister(ctx, name); err != nil {
			logger.WarnKV(ctx, "Failed to remove endpoint", "endpoint", name, "error", err)
		}
	}

	h.teardown = nil
}

// loadSettings reads the settings file and applies command line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	var (
		settings *config.Config
		err      error
	)

	if opts.RequireConfig {
		settings, err = config.Load(opts.ConfigPath)
	} else {
		settings, err = config.LoadOrDefault(opts.ConfigPath)
	}

	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		if _, ok := logger.ParseLogLevel(opts.LogLevel); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, opts.LogLevel)
		}

		settings.LogLevel = opts.LogLevel
	}

	return settings, nil
}
