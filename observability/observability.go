// Package observability defines the logging hooks the library emits run
// lifecycle information through. Nothing logs by default: callers that want
// output plug in their own Logger implementation.
package observability

import "time"

// Logger is a minimal structured logger contract.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is one structured key/value pair.
type Field interface {
	Key() string
	Value() interface{}
}

type field struct {
	key string
	val interface{}
}

func (f field) Key() string        { return f.key }
func (f field) Value() interface{} { return f.val }

// String creates a string field.
func String(key, value string) Field { return field{key, value} }

// Int creates an int field.
func Int(key string, value int) Field { return field{key, value} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return field{key, value} }

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field { return field{key, value} }

// Error creates an error field under the "error" key.
func Error(err error) Field { return field{"error", err} }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Standard metric names emitted alongside log records.
const (
	MetricDecodeTime      = "ocr.decode.duration"
	MetricAnnotationCount = "ocr.annotations.count"
	MetricPaintedElements = "ocr.paint.elements"
	MetricTicksSkipped    = "ocr.ticks.skipped"
	MetricRunDuration     = "ocr.run.duration"
)
