package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRunID(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("debug", "json", &buf)

	ctx := WithRunID(context.Background(), "run-42")
	FromContext(ctx).Debug("stage done", "stage", "count")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "run-42", line["run_id"])
	assert.Equal(t, "count", line["stage"])
	assert.Equal(t, "DEBUG", line["level"])
}

func TestSetupLevelFilters(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("warn", "text", &buf)
	WithComponent("loader").Info("hidden")
	assert.Empty(t, buf.String())

	WithComponent("loader").Warn("shown")
	assert.Contains(t, buf.String(), "component=loader")
}

func TestRunIDMissing(t *testing.T) {
	assert.Equal(t, "", RunID(context.Background()))
}
