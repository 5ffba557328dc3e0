package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOutcome(t *testing.T) {
	m := New()
	m.RecordOutcome("success", 1200)
	m.RecordOutcome("success", 300)
	m.RecordOutcome("failure", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AgentOutcomesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AgentOutcomesTotal.WithLabelValues("failure")))
}

func TestLaunchCounters(t *testing.T) {
	m := New()
	m.RecordLaunch()
	m.RecordRejected()
	m.RecordRejected()
	m.RecordLaunchDuration(3 * time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchesTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LaunchesRejectedTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLaunch()
		m.RecordRejected()
		m.RecordLaunchDuration(time.Second)
		m.RecordOutcome("crashed", 10)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.RecordLaunch()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "swarm_launches_total 1")
}
