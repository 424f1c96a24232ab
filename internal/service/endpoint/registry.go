package endpoint

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/oshokin/timer-endpoints/internal/domain/timer"
	"github.com/oshokin/timer-endpoints/internal/logger"
	"github.com/oshokin/timer-endpoints/internal/tick"
)

var (
	// ErrEndpointExists is returned when registering a name twice.
	ErrEndpointExists = errors.New("endpoint already registered")
	// ErrEndpointNotFound is returned for an unknown endpoint name.
	ErrEndpointNotFound = errors.New("endpoint not found")
	// errEmptyName is returned when registering an endpoint without a name.
	errEmptyName = errors.New("endpoint name is empty")
)

// Registry owns the endpoints of a process and hands out handles to them.
type Registry struct {
	// source is shared by all endpoints.
	source tick.Source
	// observer is passed to every endpoint.
	observer Observer
	// reportLimit is passed to every endpoint.
	reportLimit int
	// endpoints maps names to endpoints.
	endpoints map[string]*Endpoint
	// mu protects endpoints.
	mu sync.RWMutex
}

// Option customizes a Registry.
type Option func(*Registry)

// WithObserver sets the observer notified about commands and reads.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithReportLimit sets the maximum size of a rendered report.
func WithReportLimit(limit int) Option {
	return func(r *Registry) {
		if limit > 0 {
			r.reportLimit = limit
		}
	}
}

// NewRegistry creates an empty registry measuring time with source.
func NewRegistry(source tick.Source, opts ...Option) *Registry {
	r := &Registry{
		source:      source,
		observer:    nopObserver{},
		reportLimit: timer.MaxReportBytes,
		endpoints:   make(map[string]*Endpoint),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register creates a ready endpoint of the given kind under name.
func (r *Registry) Register(ctx context.Context, name string, kind timer.Kind) (*Endpoint, error) {
	if name == "" {
		return nil, errEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.endpoints[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrEndpointExists, name)
	}

	ep := newEndpoint(name, kind, r.source, r.observer, r.reportLimit)
	r.endpoints[name] = ep

	logger.InfoKV(ctx, "Timer endpoint registered", "endpoint", name, "kind", kind.String())

	return ep, nil
}

// Unregister removes the endpoint. Existing handles keep working on the
// detached timer but are no longer reachable by name.
func (r *Registry) Unregister(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.endpoints[name]; !ok {
		return fmt.Errorf("%w: %q", ErrEndpointNotFound, name)
	}

	delete(r.endpoints, name)

	logger.InfoKV(ctx, "Timer endpoint removed", "endpoint", name)

	return nil
}

// Lookup returns the endpoint registered under name.
func (r *Registry) Lookup(name string) (*Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ep, ok := r.endpoints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEndpointNotFound, name)
	}

	return ep, nil
}

// Endpoints returns all registered endpoints ordered by name.
func (r *Registry) Endpoints() []*Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		result = append(result, ep)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].name < result[j].name
	})

	return result
}

// nopObserver discards all notifications.
type nopObserver struct{}

func (nopObserver) CommandApplied(string, timer.Command, error) {}

func (nopObserver) ReportRead(string, bool) {}
