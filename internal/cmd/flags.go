// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mia-platform/logfactory/internal/config"
	"github.com/mia-platform/logfactory/internal/info"
	"github.com/mia-platform/logfactory/internal/logger"
	"github.com/mia-platform/logfactory/internal/metrics"
)

const (
	configFileFlagName  = "config-file"
	configFileFlagShort = "c"
	configFileFlagUsage = "Path to a YAML file with the logDir, logFile and logLevel settings"

	logDirFlagName  = "log-dir"
	logDirFlagUsage = "Directory holding the log file, relative to the working directory if not absolute"

	logFileFlagName  = "log-file"
	logFileFlagUsage = "Name of the log file, defaults to the current UTC time"

	sinkLevelFlagName  = "sink-level"
	sinkLevelFlagUsage = "Minimum level written to the console and to the log file"

	levelFlagName  = "level"
	levelFlagUsage = "Level of the emitted event"

	nameFlagName  = "name"
	nameFlagUsage = "Logger name; only the last path element is kept"

	metricsFileFlagName  = "metrics-file"
	metricsFileFlagUsage = "Write the count of emitted records to this file in the Prometheus text format"
)

// flags collects the CLI options of the emit command.
type flags struct {
	configFile  string
	logDir      string
	logFile     string
	sinkLevel   string
	level       string
	name        string
	metricsFile string
}

// addFlags registers the CLI flags on cmd.
func (f *flags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configFile, configFileFlagName, configFileFlagShort, "", configFileFlagUsage)
	cmd.Flags().StringVar(&f.logDir, logDirFlagName, "", logDirFlagUsage)
	cmd.Flags().StringVar(&f.logFile, logFileFlagName, "", logFileFlagUsage)
	cmd.Flags().StringVar(&f.sinkLevel, sinkLevelFlagName, "", sinkLevelFlagUsage)
	cmd.Flags().StringVar(&f.level, levelFlagName, logger.INFO.String(), levelFlagUsage)
	cmd.Flags().StringVar(&f.name, nameFlagName, info.AppName, nameFlagUsage)
	cmd.Flags().StringVar(&f.metricsFile, metricsFileFlagName, "", metricsFileFlagUsage)
}

// toOptions builds an options instance from the parsed flags, the loaded
// configuration and the CLI arguments.
func (f *flags) toOptions(cmd *cobra.Command, args []string, backend *logger.Backend) (*options, error) {
	if len(args) == 0 {
		return nil, errNoArguments
	}

	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed(logDirFlagName) {
		cfg.LogDir = f.logDir
	}
	if cmd.Flags().Changed(logFileFlagName) {
		cfg.LogFile = f.logFile
	}
	if cmd.Flags().Changed(sinkLevelFlagName) {
		cfg.LogLevel = f.sinkLevel
	}

	fields, err := parseFields(args[1:])
	if err != nil {
		return nil, err
	}

	opts := &options{
		message:   args[0],
		fields:    fields,
		level:     f.level,
		sinkLevel: cfg.LogLevel,
		name:      f.name,
		factoryOptions: append(cfg.FactoryOptions(),
			logger.WithBackend(backend),
			logger.WithConsole(cmd.OutOrStdout()),
		),
	}

	if f.metricsFile != "" {
		registry := prometheus.NewRegistry()
		counter := metrics.NewRecordCounter(registry)
		opts.metricsFile = f.metricsFile
		opts.gatherer = registry
		opts.factoryOptions = append(opts.factoryOptions, logger.WithProcessors(counter.Processor()))
	}

	return opts, nil
}
