// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Sink is a destination receiving rendered log lines at or above its level.
type Sink struct {
	name   string
	writer io.Writer
	level  atomic.Int32

	lock sync.Mutex
}

// NewSink returns a sink writing lines of at least level to writer.
func NewSink(name string, writer io.Writer, level Level) *Sink {
	sink := &Sink{
		name:   name,
		writer: writer,
	}
	sink.SetLevel(level)
	return sink
}

// Name returns the sink name.
func (s *Sink) Name() string {
	return s.name
}

// SetLevel updates the minimum level accepted by the sink.
func (s *Sink) SetLevel(level Level) {
	s.level.Store(int32(level.convertedLevel()))
}

func (s *Sink) enabled(level hclog.Level) bool {
	return level >= hclog.Level(s.level.Load())
}

// write emits the line followed by a newline. Write errors are ignored.
func (s *Sink) write(line []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	buffer := make([]byte, 0, len(line)+1)
	buffer = append(buffer, line...)
	buffer = append(buffer, '\n')
	_, _ = s.writer.Write(buffer)
}
