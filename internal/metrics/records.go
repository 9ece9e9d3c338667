// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mia-platform/logfactory/internal/logger"
)

const (
	levelLabel  = "level"
	loggerLabel = "logger"
)

// RecordCounter counts the log records rendered by a pipeline.
type RecordCounter struct {
	records *prometheus.CounterVec
}

// NewRecordCounter registers the record counter on registerer.
// It panics if a collector with the same name is already registered.
func NewRecordCounter(registerer prometheus.Registerer) *RecordCounter {
	return &RecordCounter{
		records: promauto.With(registerer).NewCounterVec(prometheus.CounterOpts{
			Name: "logfactory_log_records_total",
			Help: "Total log records written, by level and logger name.",
		}, []string{levelLabel, loggerLabel}),
	}
}

// Processor returns a pipeline processor incrementing the counter for every
// record it sees. The record passes through unchanged.
func (c *RecordCounter) Processor() logger.Processor {
	return func(entry logger.Entry, record logger.Record) logger.Record {
		c.records.WithLabelValues(entry.Level.String(), entry.Name).Inc()
		return record
	}
}
