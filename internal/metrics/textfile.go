// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package metrics

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	// ErrMetricsFile reports failures while writing the metrics text file.
	ErrMetricsFile = errors.New("cannot write metrics file")
)

// WriteTextFile writes every metric family collected by gatherer to path using
// the Prometheus text exposition format. An existing file is truncated.
func WriteTextFile(path string, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrMetricsFile, path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrMetricsFile, path, err)
	}

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(file, family); err != nil {
			_ = file.Close()
			return fmt.Errorf("%w %q: %w", ErrMetricsFile, path, err)
		}
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrMetricsFile, path, err)
	}
	return nil
}
