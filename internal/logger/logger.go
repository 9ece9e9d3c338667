// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &instance{log: hclog.NewNullLogger()}
)

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// WithName returns a new Logger instance with the specified name.
	WithName(name string) Logger

	// Name returns the name bound to the logger.
	Name() string

	// With returns a new Logger that adds the key/value pairs to every record.
	With(args ...interface{}) Logger

	// SetLevel updates the logger level.
	SetLevel(level Level)

	// Trace emit a message and key/value pairs at the TRACE level.
	Trace(msg string, args ...interface{})

	// Debug emit a message and key/value pairs at the DEBUG level.
	Debug(msg string, args ...interface{})

	// Info emit a message and key/value pairs at the INFO level.
	Info(msg string, args ...interface{})

	// Warn emit a message and key/value pairs at the WARN level.
	Warn(msg string, args ...interface{})

	// Error emit a message and key/value pairs at the ERROR level.
	Error(msg string, args ...interface{})
}

// Make sure that instance is a Logger.
var _ Logger = &instance{}

// instance is a Logger implementation.
type instance struct {
	log     hclog.Logger
	backend *Backend
}

// NewLogger creates a logger rendering JSON lines to writer at INFO level,
// on its own Backend.
func NewLogger(writer io.Writer) Logger {
	backend := NewBackend()
	backend.AttachSinks(NewSink("writer", writer, INFO))
	backend.UsePipeline(DefaultPipeline(nil))

	return backend.Named("")
}

func (i instance) WithName(name string) Logger {
	return &instance{
		log:     i.log.ResetNamed(name),
		backend: i.backend,
	}
}

func (i instance) Name() string {
	return i.log.Name()
}

func (i instance) With(args ...interface{}) Logger {
	return &instance{
		log:     i.log.With(args...),
		backend: i.backend,
	}
}

// SetLevel changes the level of every sink of the backend, and so of every
// logger sharing it.
func (i instance) SetLevel(level Level) {
	if i.backend == nil {
		return
	}
	i.backend.SetLevel(level)
}

func (i instance) Trace(msg string, args ...interface{}) {
	i.log.Trace(msg, args...)
}

func (i instance) Debug(msg string, args ...interface{}) {
	i.log.Debug(msg, args...)
}

func (i instance) Info(msg string, args ...interface{}) {
	i.log.Info(msg, args...)
}

func (i instance) Warn(msg string, args ...interface{}) {
	i.log.Warn(msg, args...)
}

func (i instance) Error(msg string, args ...interface{}) {
	i.log.Error(msg, args...)
}
