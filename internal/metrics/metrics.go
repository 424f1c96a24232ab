package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/timer-endpoints/internal/domain/timer"
)

const (
	namespace = "timer"
	subsystem = "endpoint"
)

// Command results used as the "result" label.
const (
	ResultAccepted   = "accepted"
	ResultRejected   = "rejected"
	ResultUnknownTag = "unknown_tag"
	ResultMalformed  = "malformed"
	ResultOverflow   = "overflow"
)

// Read outcomes used as the "result" label.
const (
	ReadDelivered = "delivered"
	ReadSilent    = "silent"
)

// Collector counts commands and reads per endpoint.
type Collector struct {
	// commands counts written commands by endpoint, tag and result.
	commands *prometheus.CounterVec
	// reads counts reads by endpoint and whether a report was delivered.
	reads *prometheus.CounterVec
}

// New creates an unregistered Collector.
func New() *Collector {
	return &Collector{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Commands written to timer endpoints by tag and result.",
			},
			[]string{"endpoint", "tag", "result"},
		),
		reads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reads_total",
				Help:      "Reads of timer endpoints by outcome.",
			},
			[]string{"endpoint", "result"},
		),
	}
}

// PrometheusCollectors returns the collectors to register.
func (c *Collector) PrometheusCollectors() []prometheus.Collector {
	return []prometheus.Collector{c.commands, c.reads}
}

// CommandApplied records the outcome of a written command.
func (c *Collector) CommandApplied(endpoint string, cmd timer.Command, err error) {
	c.commands.WithLabelValues(endpoint, cmd.Tag.String(), Result(err)).Inc()
}

// ReportRead records whether a read delivered a report.
func (c *Collector) ReportRead(endpoint string, delivered bool) {
	result := ReadSilent
	if delivered {
		result = ReadDelivered
	}

	c.reads.WithLabelValues(endpoint, result).Inc()
}

// Result maps the error returned by timer.Apply to a result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultAccepted
	case errors.Is(err, timer.ErrUnknownTag):
		return ResultUnknownTag
	case errors.Is(err, timer.ErrMalformedValue):
		return ResultMalformed
	case errors.Is(err, timer.ErrLoadOverflow):
		return ResultOverflow
	default:
		return ResultRejected
	}
}
