// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
)

var (
	// defaultBackend is shared by every Factory that is not given its own Backend.
	defaultBackend = NewBackend()

	// fallbackPipeline renders records for backends that never installed a pipeline.
	fallbackPipeline = DefaultPipeline(time.Now)
)

// Backend is the logging context shared by all the loggers it hands out.
// Sinks and the pipeline are installed once and then used by every logger.
type Backend struct {
	root hclog.InterceptLogger

	configLock sync.Mutex
	configured atomic.Bool

	lock     sync.RWMutex
	sinks    []*Sink
	pipeline *Pipeline
	closers  []io.Closer
}

// Make sure that dispatcher can be registered as an hclog sink.
var _ hclog.SinkAdapter = &dispatcher{}

// dispatcher receives every call made on the backend loggers, renders it once
// and writes the result to every interested sink.
type dispatcher struct {
	backend *Backend
}

// NewBackend returns an unconfigured Backend without sinks.
func NewBackend() *Backend {
	backend := &Backend{}
	backend.root = hclog.NewInterceptLogger(&hclog.LoggerOptions{
		Output: io.Discard,
		Level:  hclog.Trace,
	})
	backend.root.RegisterSink(&dispatcher{backend: backend})

	return backend
}

// DefaultBackend returns the process wide Backend.
func DefaultBackend() *Backend {
	return defaultBackend
}

// Configure runs setup once for the lifetime of the Backend. The Backend is
// marked configured only if setup succeeds, so a failed setup can be retried
// by a later call.
func (b *Backend) Configure(setup func() error) error {
	if b.configured.Load() {
		return nil
	}

	b.configLock.Lock()
	defer b.configLock.Unlock()
	if b.configured.Load() {
		return nil
	}

	if err := setup(); err != nil {
		return err
	}

	b.configured.Store(true)
	return nil
}

// Configured reports whether Configure already completed successfully.
func (b *Backend) Configured() bool {
	return b.configured.Load()
}

// AttachSinks attaches sinks only if the Backend has none yet, and reports
// whether they were attached.
func (b *Backend) AttachSinks(sinks ...*Sink) bool {
	b.lock.Lock()
	defer b.lock.Unlock()

	if len(b.sinks) > 0 {
		return false
	}

	b.sinks = append(b.sinks, sinks...)
	return true
}

// SinkCount returns the number of attached sinks.
func (b *Backend) SinkCount() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.sinks)
}

// UsePipeline installs pipeline if none was installed before, and reports
// whether it was installed.
func (b *Backend) UsePipeline(pipeline *Pipeline) bool {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.pipeline != nil {
		return false
	}

	b.pipeline = pipeline
	return true
}

// SetLevel updates the minimum level of every attached sink.
func (b *Backend) SetLevel(level Level) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	for _, sink := range b.sinks {
		sink.SetLevel(level)
	}
}

// Named returns a logger using this Backend with the given name.
// An empty name returns the unnamed root logger.
func (b *Backend) Named(name string) Logger {
	if name == "" {
		return &instance{log: b.root, backend: b}
	}

	return &instance{log: b.root.ResetNamed(name), backend: b}
}

// Close releases the files opened on behalf of the Backend. Sinks stay
// attached; writes to closed files are silently dropped.
func (b *Backend) Close() error {
	b.lock.Lock()
	closers := b.closers
	b.closers = nil
	b.lock.Unlock()

	errs := make([]error, 0, len(closers))
	for _, closer := range closers {
		errs = append(errs, closer.Close())
	}

	return errors.Join(errs...)
}

func (b *Backend) addCloser(closer io.Closer) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.closers = append(b.closers, closer)
}

// snapshot returns the sinks and pipeline to use for a single log call.
func (b *Backend) snapshot() ([]*Sink, *Pipeline) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	pipeline := b.pipeline
	if pipeline == nil {
		pipeline = fallbackPipeline
	}
	return b.sinks, pipeline
}

func (d *dispatcher) Accept(name string, level hclog.Level, msg string, args ...interface{}) {
	sinks, pipeline := d.backend.snapshot()

	enabled := make([]*Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink.enabled(level) {
			enabled = append(enabled, sink)
		}
	}

	if len(enabled) == 0 {
		return
	}

	entry := Entry{Name: name, Level: levelFromHclog(level), Message: msg}
	line, ok := pipeline.Process(entry, recordFromArgs(args))
	if !ok {
		return
	}

	for _, sink := range enabled {
		sink.write(line)
	}
}
