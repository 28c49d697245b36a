package observability

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveStage(t *testing.T) {
	m := NewMetrics("")

	m.ObserveStage("onchain", ResultOK, 120*time.Millisecond)
	m.ObserveStage("offchain", ResultDegraded, 2*time.Second)
	m.ObserveStage("offchain", ResultDegraded, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageResults.WithLabelValues("onchain", ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StageResults.WithLabelValues("offchain", ResultDegraded)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDuration))
}

func TestMetrics_ObserveRPC(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveRPC("getAccountInfo", 50*time.Millisecond, nil)
	m.ObserveRPC("getAccountInfo", 50*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.RPCCallLatency, "test_rpc_call_duration_seconds"))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveStage("onchain", ResultOK, time.Second)
		m.ObserveRPC("getAccountInfo", time.Second, nil)
		require.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
		_, err := m.Gatherer().Gather()
		require.NoError(t, err)
	})
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics("")
	m.ObserveStage("dns", ResultOK, 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "tokeninfo.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.Contains(text, `solana_token_info_pipeline_stage_results_total{result="ok",stage="dns"} 1`), text)
	assert.Contains(t, text, "solana_token_info_pipeline_stage_duration_seconds_bucket")
}
