// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EventKey is the key of the log message in rendered records.
	EventKey = "event"
	// TimestampKey is the key of the record time in rendered records.
	TimestampKey = "timestamp"
	// LevelKey is the key of the record severity in rendered records.
	LevelKey = "level"
	// LoggerNameKey is the key of the emitting logger name in rendered records.
	LoggerNameKey = "logger"

	// extraValueKey collects the last value of an odd length argument list.
	extraValueKey = "EXTRA_VALUE_AT_END"

	// timestampLayout is ISO-8601 with microseconds, always rendered in UTC.
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// Record is a log event as a set of fields.
type Record map[string]any

// Entry carries the metadata of a log call that is not part of the record fields.
type Entry struct {
	Name    string
	Level   Level
	Message string
}

// Processor transforms a record before rendering. A nil return drops the record.
type Processor func(entry Entry, record Record) Record

// Renderer serializes a processed record into a single line, without the trailing newline.
type Renderer func(record Record) ([]byte, error)

// Pipeline is the ordered chain of processors followed by the final renderer.
type Pipeline struct {
	processors []Processor
	render     Renderer
}

// NewPipeline returns a pipeline running processors in order before calling render.
func NewPipeline(render Renderer, processors ...Processor) *Pipeline {
	return &Pipeline{
		processors: processors,
		render:     render,
	}
}

// DefaultPipeline returns the pipeline used by the Factory: timestamp, level and
// logger name are added, then the extra processors run, then the message is
// stored as event and the record is rendered as JSON.
func DefaultPipeline(clock func() time.Time, extra ...Processor) *Pipeline {
	processors := []Processor{
		TimeStamper(TimestampKey, clock),
		AddLogLevel,
		AddLoggerName,
	}
	processors = append(processors, extra...)
	processors = append(processors, EventRenamer(EventKey))

	return NewPipeline(JSONRenderer, processors...)
}

// Process runs the record through the pipeline. The boolean is false when a
// processor dropped the record.
func (p *Pipeline) Process(entry Entry, record Record) ([]byte, bool) {
	for _, processor := range p.processors {
		if record = processor(entry, record); record == nil {
			return nil, false
		}
	}

	line, err := p.render(record)
	if err != nil {
		line = renderFailure(entry, record, err)
	}

	return line, true
}

// TimeStamper sets key to the current time from clock in UTC ISO-8601 format.
func TimeStamper(key string, clock func() time.Time) Processor {
	if clock == nil {
		clock = time.Now
	}

	return func(_ Entry, record Record) Record {
		record[key] = clock().UTC().Format(timestampLayout)
		return record
	}
}

// AddLogLevel sets the lowercase level name under LevelKey.
func AddLogLevel(entry Entry, record Record) Record {
	record[LevelKey] = entry.Level.lowerName()
	return record
}

// AddLoggerName sets the logger name under LoggerNameKey for named loggers.
func AddLoggerName(entry Entry, record Record) Record {
	if entry.Name != "" {
		record[LoggerNameKey] = entry.Name
	}
	return record
}

// EventRenamer stores the log message under the to key. The message replaces
// any caller field already using that key.
func EventRenamer(to string) Processor {
	return func(entry Entry, record Record) Record {
		record[to] = entry.Message
		return record
	}
}

// JSONRenderer renders the record as a compact JSON object. Values that cannot
// be encoded are rendered with their fmt representation.
func JSONRenderer(record Record) ([]byte, error) {
	line, err := json.Marshal(record)
	if err == nil {
		return line, nil
	}

	safe := make(Record, len(record))
	for key, value := range record {
		if _, err := json.Marshal(value); err != nil {
			safe[key] = fmt.Sprintf("%+v", value)
			continue
		}
		safe[key] = value
	}

	return json.Marshal(safe)
}

// renderFailure builds a minimal line reporting why the record could not be rendered.
func renderFailure(entry Entry, record Record, err error) []byte {
	event := record[EventKey]
	if event == nil {
		event = entry.Message
	}

	line, _ := json.Marshal(map[string]string{
		TimestampKey: time.Now().UTC().Format(timestampLayout),
		LevelKey:     entry.Level.lowerName(),
		EventKey:     fmt.Sprint(event),
		"error":      "log record rendering failed: " + err.Error(),
	})
	return line
}

// recordFromArgs builds the initial record out of hclog style key/value
// arguments. The message travels in Entry, so every caller key survives.
func recordFromArgs(args []any) Record {
	record := make(Record, len(args)/2+3)

	if len(args)%2 != 0 {
		record[extraValueKey] = fieldValue(args[len(args)-1])
		args = args[:len(args)-1]
	}

	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		record[key] = fieldValue(args[i+1])
	}

	return record
}

func fieldValue(value any) any {
	switch v := value.(type) {
	case error:
		return v.Error()
	case hclog.Format:
		if len(v) == 0 {
			return ""
		}
		if format, ok := v[0].(string); ok {
			return fmt.Sprintf(format, v[1:]...)
		}
		return fmt.Sprint(v...)
	case time.Duration:
		return v.String()
	default:
		return value
	}
}
