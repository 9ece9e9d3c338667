// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logfactory/internal/logger"
)

func TestRecordCounter(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	counter := NewRecordCounter(registry)

	console := new(bytes.Buffer)
	factory, err := logger.NewFactory(
		logger.WithLogDir(t.TempDir()),
		logger.WithBackend(logger.NewBackend()),
		logger.WithConsole(console),
		logger.WithProcessors(counter.Processor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = factory.Backend().Close() })

	uploads, err := factory.GetLogger("uploads.go")
	require.NoError(t, err)
	other, err := factory.GetLogger("other.go")
	require.NoError(t, err)

	uploads.Info("first")
	uploads.Info("second")
	uploads.Error("failed")
	uploads.Debug("filtered before the pipeline")
	other.Warn("warned")

	assert.InDelta(t, 2, testutil.ToFloat64(counter.records.WithLabelValues("INFO", "uploads.go")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(counter.records.WithLabelValues("ERROR", "uploads.go")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(counter.records.WithLabelValues("DEBUG", "uploads.go")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(counter.records.WithLabelValues("WARN", "other.go")), 0)
	assert.Equal(t, 4, testutil.CollectAndCount(counter.records, "logfactory_log_records_total"))

	assert.NotContains(t, console.String(), "filtered before the pipeline")
}

func TestRecordCounterDuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	NewRecordCounter(registry)
	assert.Panics(t, func() {
		NewRecordCounter(registry)
	})
}

func TestWriteTextFile(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	counter := NewRecordCounter(registry)
	process := counter.Processor()
	process(logger.Entry{Name: "uploads.go", Level: logger.INFO}, logger.Record{})
	process(logger.Entry{Name: "uploads.go", Level: logger.INFO}, logger.Record{})
	process(logger.Entry{Name: "uploads.go", Level: logger.WARN}, logger.Record{})

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o600))
	require.NoError(t, WriteTextFile(path, registry))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale content")
	assert.Contains(t, string(content), "# TYPE logfactory_log_records_total counter\n")
	assert.Contains(t, string(content), `logfactory_log_records_total{level="INFO",logger="uploads.go"} 2`+"\n")
	assert.Contains(t, string(content), `logfactory_log_records_total{level="WARN",logger="uploads.go"} 1`+"\n")
}

func TestWriteTextFileErrors(t *testing.T) {
	t.Parallel()

	err := WriteTextFile(t.TempDir(), prometheus.NewRegistry())
	require.ErrorIs(t, err, ErrMetricsFile)
	assert.ErrorIs(t, err, syscall.EISDIR)
}
