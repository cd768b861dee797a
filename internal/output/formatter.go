package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Result is the outcome of one command
type Result struct {
	Command   string    `json:"command"`
	Value     any       `json:"value,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event represents a system event
type Event struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Formatter is the interface for output formatters
type Formatter interface {
	// WriteResult writes a command result
	WriteResult(result Result) error

	// WriteEvent writes a system event (e.g., playback state changes)
	WriteEvent(eventType, message string) error

	// Flush ensures all buffered output is written
	Flush() error

	// Close closes the formatter and releases resources
	Close() error
}

// Output format names.
const (
	FormatText    = "text"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewFormatter returns the formatter for format: "text", "console"
// (text with timestamps) or "json".
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", FormatText:
		return NewPlainTextFormatter(w), nil
	case FormatConsole:
		f := NewPlainTextFormatter(w)
		f.timestamps = true
		return f, nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// JSONFormatter writes one JSON document per result
type JSONFormatter struct {
	writer  io.Writer
	encoder *json.Encoder
	results []Result
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return &JSONFormatter{
		writer:  writer,
		encoder: encoder,
	}
}

// WriteResult writes a result in JSON format
func (j *JSONFormatter) WriteResult(result Result) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	j.results = append(j.results, result)
	return j.encoder.Encode(result)
}

// WriteEvent writes a system event
func (j *JSONFormatter) WriteEvent(eventType, message string) error {
	return j.encoder.Encode(Event{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

func (j *JSONFormatter) Flush() error { return nil }

func (j *JSONFormatter) Close() error { return nil }

// Results returns every result written so far
func (j *JSONFormatter) Results() []Result {
	return j.results
}

// PlainTextFormatter writes results the way a shell user reads them: one
// list item per line, maps as sorted "key: value" lines.
type PlainTextFormatter struct {
	writer     io.Writer
	timestamps bool
}

// NewPlainTextFormatter creates a new plain text formatter
func NewPlainTextFormatter(writer io.Writer) *PlainTextFormatter {
	return &PlainTextFormatter{
		writer: writer,
	}
}

// WriteResult writes a result in plain text
func (p *PlainTextFormatter) WriteResult(result Result) error {
	if result.Value == nil {
		return nil
	}
	var buf bytes.Buffer
	for _, line := range textLines(result.Value) {
		if p.timestamps {
			ts := result.Timestamp
			if ts.IsZero() {
				ts = time.Now()
			}
			fmt.Fprintf(&buf, "[%s] ", ts.Format("15:04:05"))
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	_, err := p.writer.Write(buf.Bytes())
	return err
}

// WriteEvent writes a system event
func (p *PlainTextFormatter) WriteEvent(eventType, message string) error {
	timestamp := time.Now().Format("15:04:05")
	_, err := fmt.Fprintf(p.writer, "[%s] [%s] %s\n", timestamp, eventType, message)
	return err
}

func (p *PlainTextFormatter) Flush() error { return nil }

func (p *PlainTextFormatter) Close() error { return nil }

func textLines(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case []string:
		return x
	case fmt.Stringer:
		return []string{x.String()}
	case json.Marshaler:
		data, err := x.MarshalJSON()
		if err != nil {
			return []string{fmt.Sprint(v)}
		}
		var buf bytes.Buffer
		if json.Indent(&buf, data, "", "  ") != nil {
			return []string{string(data)}
		}
		return strings.Split(buf.String(), "\n")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		lines := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			lines = append(lines, fmt.Sprint(rv.Index(i).Interface()))
		}
		return lines
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		values := make(map[string]string, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = fmt.Sprint(iter.Value().Interface())
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+": "+values[k])
		}
		return lines
	}
	return []string{fmt.Sprint(v)}
}
