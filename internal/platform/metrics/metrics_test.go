package metrics_test

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragochi/internal/platform/metrics"
)

func TestWriteTextIncludesCounters(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.Transitions.WithLabelValues("start").Inc()
	m.Transitions.WithLabelValues("start").Inc()
	m.StoreFailures.WithLabelValues("snapshot").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("start")))

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `dragochi_tracking_transitions_total{op="start"} 2`)
	assert.Contains(t, out, `dragochi_store_failures_total{store="snapshot"} 1`)
}
