package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/timer-endpoints/internal/domain/timer"
)

// TestResult maps each rejection kind to its label.
func TestResult(t *testing.T) {
	t.Parallel()

	cases := map[string]error{
		ResultAccepted:   nil,
		ResultRejected:   fmt.Errorf("wrap: %w", timer.ErrRejectedTransition),
		ResultUnknownTag: fmt.Errorf("wrap: %w", timer.ErrUnknownTag),
		ResultMalformed:  fmt.Errorf("wrap: %w", timer.ErrMalformedValue),
		ResultOverflow:   fmt.Errorf("wrap: %w", timer.ErrLoadOverflow),
	}
	for want, err := range cases {
		require.Equal(t, want, Result(err))
	}
}

// TestCollectorCounts checks the counters after a few commands and reads.
func TestCollectorCounts(t *testing.T) {
	t.Parallel()

	c := New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(c.PrometheusCollectors()...)

	c.CommandApplied("stopwatch", timer.ParseCommand("s"), nil)
	c.CommandApplied("stopwatch", timer.ParseCommand("s"), timer.ErrRejectedTransition)
	c.CommandApplied("stopwatch", timer.ParseCommand("x"), timer.ErrUnknownTag)
	c.ReportRead("stopwatch", true)
	c.ReportRead("stopwatch", false)
	c.ReportRead("stopwatch", false)

	require.InDelta(t, 1, testutil.ToFloat64(c.commands.WithLabelValues("stopwatch", "start", ResultAccepted)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.commands.WithLabelValues("stopwatch", "start", ResultRejected)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.commands.WithLabelValues("stopwatch", "noop", ResultUnknownTag)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(c.reads.WithLabelValues("stopwatch", ReadDelivered)), 0)
	require.InDelta(t, 2, testutil.ToFloat64(c.reads.WithLabelValues("stopwatch", ReadSilent)), 0)
}

// TestHandler exposes the registered counters in the text format.
func TestHandler(t *testing.T) {
	t.Parallel()

	c := New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(c.PrometheusCollectors()...)

	c.CommandApplied("countdown", timer.ParseCommand("l10"), nil)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `timer_endpoint_commands_total{endpoint="countdown",result="accepted",tag="load"} 1`)
}
