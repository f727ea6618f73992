package logtail

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Entry is one parsed line of the bookrecs JSON log.
type Entry struct {
	Time      time.Time
	Level     zerolog.Level
	Component string
	Message   string
	RequestID string
	Error     string
	// Fields holds every other key, rendered as text.
	Fields map[string]string
	// Raw is the original line. Lines that are not JSON keep only Raw.
	Raw string
}

var reservedKeys = map[string]bool{
	zerolog.TimestampFieldName: true,
	zerolog.LevelFieldName:     true,
	zerolog.MessageFieldName:   true,
	zerolog.ErrorFieldName:     true,
	"component":                true,
	"request_id":               true,
}

// Parse decodes a zerolog JSON line. Anything that does not decode becomes an
// entry with NoLevel and the raw text as its message.
func Parse(line string) Entry {
	e := Entry{Raw: line, Level: zerolog.NoLevel}

	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		e.Message = strings.TrimSpace(line)
		return e
	}

	if v, ok := raw[zerolog.LevelFieldName].(string); ok {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			e.Level = lvl
		}
	}
	if v, ok := raw[zerolog.TimestampFieldName].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			e.Time = ts
		}
	}
	e.Message = stringField(raw, zerolog.MessageFieldName)
	e.Error = stringField(raw, zerolog.ErrorFieldName)
	e.Component = stringField(raw, "component")
	e.RequestID = stringField(raw, "request_id")

	for k, v := range raw {
		if reservedKeys[k] {
			continue
		}
		if e.Fields == nil {
			e.Fields = make(map[string]string)
		}
		e.Fields[k] = render(v)
	}
	return e
}

// AtLeast reports whether e is at or above minLevel. Unparsed lines always pass.
func (e Entry) AtLeast(minLevel zerolog.Level) bool {
	if e.Level == zerolog.NoLevel {
		return true
	}
	return e.Level >= minLevel
}

// FieldKeys returns the extra field names in sorted order.
func (e Entry) FieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Filter returns the entries at or above minLevel.
func Filter(entries []Entry, minLevel zerolog.Level) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.AtLeast(minLevel) {
			out = append(out, e)
		}
	}
	return out
}

func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	return render(v)
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
