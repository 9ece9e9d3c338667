// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the logging configuration from an optional YAML file
// and the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mia-platform/logfactory/internal/logger"
)

var (
	// ErrParsing reports failures that occur while reading or decoding the configuration file.
	ErrParsing = errors.New("error parsing")
	// ErrConfigNotValid reports configurations with invalid values.
	ErrConfigNotValid = errors.New("logging configuration not valid")
)

// Config holds where log files are written and the minimum level of the sinks.
// Environment variables take precedence over the values read from file.
type Config struct {
	LogDir   string `env:"LOG_DIR" yaml:"logDir"`
	LogFile  string `env:"LOG_FILE" yaml:"logFile"`
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`
}

// Load reads the file at path, if path is not empty, then applies the
// environment variables and the defaults, and validates the result.
func Load(path string) (*Config, error) {
	config := new(Config)
	if path != "" {
		if err := config.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotValid, err.Error())
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	// an empty file leaves every value to env and defaults
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.LogDir == "" {
		c.LogDir = logger.DefaultLogDir
	}
	if c.LogLevel == "" {
		c.LogLevel = logger.INFO.String()
	}
}

func (c *Config) validate() error {
	configErrors := make([]string, 0)

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		configErrors = append(configErrors, "LOG_LEVEL "+err.Error())
	}

	if c.LogFile != "" && (filepath.Base(c.LogFile) != c.LogFile || c.LogFile == "." || c.LogFile == "..") {
		configErrors = append(configErrors, fmt.Sprintf("LOG_FILE %q must be a file name without directories", c.LogFile))
	}

	if len(configErrors) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigNotValid, strings.Join(configErrors, ", "))
	}
	return nil
}

// Level returns the configured minimum level.
func (c *Config) Level() logger.Level {
	return logger.LevelFromString(c.LogLevel)
}

// FactoryOptions converts the configuration into logger.Factory options.
func (c *Config) FactoryOptions() []logger.Option {
	opts := []logger.Option{
		logger.WithLogDir(c.LogDir),
		logger.WithLevel(c.Level()),
	}

	if c.LogFile != "" {
		opts = append(opts, logger.WithLogFile(c.LogFile))
	}

	return opts
}
