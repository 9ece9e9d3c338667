// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultLogDir is the directory, relative to the working directory, holding log files.
	DefaultLogDir = "logs"

	logFileTimeLayout = "2006_01_02_15_04_05"
	logFileExtension  = ".log"

	logDirPermissions  = 0o755
	logFilePermissions = 0o644

	consoleSinkName = "console"
	fileSinkName    = "file"
)

var (
	// ErrLogDirectory wraps failures creating or resolving the log directory.
	ErrLogDirectory = errors.New("log directory")
	// ErrLogFile wraps failures opening the log file.
	ErrLogFile = errors.New("log file")
)

// Factory resolves where log lines are persisted and hands out named loggers.
// The first GetLogger call on a Backend configures it with the sinks of the
// calling Factory; later calls from any Factory sharing that Backend reuse it.
type Factory struct {
	logsDir     string
	logFilePath string

	logDir     string
	logFile    string
	backend    *Backend
	console    io.Writer
	level      Level
	clock      func() time.Time
	processors []Processor
}

// Option customizes a Factory.
type Option func(*Factory)

// WithLogDir sets the log directory. Relative paths are resolved against the
// working directory.
func WithLogDir(dir string) Option {
	return func(f *Factory) {
		f.logDir = dir
	}
}

// WithLogFile sets the log file name inside the log directory.
func WithLogFile(name string) Option {
	return func(f *Factory) {
		f.logFile = name
	}
}

// WithBackend makes the Factory configure and use backend instead of the
// process wide one.
func WithBackend(backend *Backend) Option {
	return func(f *Factory) {
		f.backend = backend
	}
}

// WithConsole replaces standard output as the console sink destination.
func WithConsole(writer io.Writer) Option {
	return func(f *Factory) {
		f.console = writer
	}
}

// WithLevel sets the minimum level of the console and file sinks.
func WithLevel(level Level) Option {
	return func(f *Factory) {
		f.level = level
	}
}

// WithClock sets the time source for the default file name and record timestamps.
func WithClock(clock func() time.Time) Option {
	return func(f *Factory) {
		f.clock = clock
	}
}

// WithProcessors adds processors to the pipeline, after the level and logger
// name are set and before the message is renamed.
func WithProcessors(processors ...Processor) Option {
	return func(f *Factory) {
		f.processors = append(f.processors, processors...)
	}
}

// NewFactory resolves the log file path and makes sure its directory exists.
func NewFactory(opts ...Option) (*Factory, error) {
	factory := &Factory{
		logDir:  DefaultLogDir,
		backend: defaultBackend,
		console: os.Stdout,
		level:   INFO,
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(factory)
	}

	logsDir := factory.logDir
	if !filepath.IsAbs(logsDir) {
		workingDir, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLogDirectory, err)
		}
		logsDir = filepath.Join(workingDir, logsDir)
	}

	if err := os.MkdirAll(logsDir, logDirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogDirectory, err)
	}

	logFile := factory.logFile
	if logFile == "" {
		logFile = DefaultLogFileName(factory.clock())
	}

	factory.logsDir = logsDir
	factory.logFilePath = filepath.Join(logsDir, logFile)
	return factory, nil
}

// DefaultLogFileName returns the log file name derived from t in UTC.
func DefaultLogFileName(t time.Time) string {
	return t.UTC().Format(logFileTimeLayout) + logFileExtension
}

// LogsDir returns the absolute path of the log directory.
func (f *Factory) LogsDir() string {
	return f.logsDir
}

// LogFilePath returns the absolute path of the log file this Factory writes
// to if it is the one configuring the Backend.
func (f *Factory) LogFilePath() string {
	return f.logFilePath
}

// Backend returns the Backend used by the Factory.
func (f *Factory) Backend() *Backend {
	return f.backend
}

// GetLogger returns a logger named after the last element of name, configuring
// the Backend first if nobody did it yet.
func (f *Factory) GetLogger(name string) (Logger, error) {
	if err := f.backend.Configure(f.configure); err != nil {
		return nil, err
	}

	return f.backend.Named(loggerName(name)), nil
}

// configure attaches the console and file sinks and installs the JSON pipeline.
func (f *Factory) configure() error {
	if f.backend.SinkCount() == 0 {
		file, err := os.OpenFile(f.logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogFile, err)
		}

		attached := f.backend.AttachSinks(
			NewSink(consoleSinkName, f.console, f.level),
			NewSink(fileSinkName, file, f.level),
		)
		if !attached {
			_ = file.Close()
		} else {
			f.backend.addCloser(file)
		}
	}

	f.backend.UsePipeline(DefaultPipeline(f.clock, f.processors...))
	return nil
}

// loggerName reduces a path-like identifier to its final element.
func loggerName(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}
