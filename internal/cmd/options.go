// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mia-platform/logfactory/internal/logger"
	"github.com/mia-platform/logfactory/internal/metrics"
)

// options configures the event written by the emit command.
type options struct {
	message        string
	fields         []any
	level          string
	sinkLevel      string
	name           string
	factoryOptions []logger.Option

	// metricsFile receives the records gathered by gatherer once the event is written.
	metricsFile string
	gatherer    prometheus.Gatherer
}

// validate checks the configured values and reports invalid setups.
func (o *options) validate() error {
	if o.message == "" {
		return errEmptyMessage
	}

	if _, err := logger.ParseLevel(o.level); err != nil {
		return fmt.Errorf("%w: %w", errInvalidLevel, err)
	}

	if _, err := logger.ParseLevel(o.sinkLevel); err != nil {
		return fmt.Errorf("%w: %w", errInvalidLevel, err)
	}

	return nil
}

// execute configures the logging backend if needed and writes the event.
func (o *options) execute(ctx context.Context) error {
	factory, err := logger.NewFactory(o.factoryOptions...)
	if err != nil {
		return err
	}

	log, err := factory.GetLogger(o.name)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug("emitting event", "logFile", factory.LogFilePath(), "logger", log.Name())

	switch logger.LevelFromString(o.level) {
	case logger.TRACE:
		log.Trace(o.message, o.fields...)
	case logger.DEBUG:
		log.Debug(o.message, o.fields...)
	case logger.WARN:
		log.Warn(o.message, o.fields...)
	case logger.ERROR:
		log.Error(o.message, o.fields...)
	default:
		log.Info(o.message, o.fields...)
	}

	if o.metricsFile == "" {
		return nil
	}

	logger.FromContext(ctx).Debug("writing metrics", "metricsFile", o.metricsFile)
	return metrics.WriteTextFile(o.metricsFile, o.gatherer)
}
