package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesIsolatedRegistry(t *testing.T) {
	a := New()
	b := New()
	a.DocumentsLoaded.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.DocumentsLoaded))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DocumentsLoaded))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.TokensCounted.Add(12)
	m.SinkWritesTotal.WithLabelValues("csv", "ok").Inc()
	m.StageDuration.WithLabelValues("count").Observe(0.02)

	path := filepath.Join(t.TempDir(), "concordance.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "concordance_tokens_total 12")
	assert.Contains(t, body, `concordance_sink_writes_total{sink="csv",status="ok"} 1`)
	assert.Contains(t, body, `concordance_stage_duration_seconds_count{stage="count"} 1`)
}

func TestWriteTextfileDisabled(t *testing.T) {
	assert.NoError(t, New().WriteTextfile(""))
}
