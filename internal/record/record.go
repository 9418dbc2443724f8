// Package record defines the immutable log record that flows through the
// engine from enqueue to persisted line.
package record

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Level is one of six ordered severities.
type Level int

// Ordered severities, lowest to highest.
const (
	Verbose Level = iota
	Debug
	Info
	Warning
	Error
	Fatal
)

var levelNames = map[Level]string{
	Verbose: "verbose",
	Debug:   "debug",
	Info:    "info",
	Warning: "warning",
	Error:   "error",
	Fatal:   "fatal",
}

var levelShort = map[Level]string{
	Verbose: "V",
	Debug:   "D",
	Info:    "I",
	Warning: "W",
	Error:   "E",
	Fatal:   "F",
}

var namesToLevel = map[string]Level{
	"verbose": Verbose,
	"debug":   Debug,
	"info":    Info,
	"warning": Warning,
	"error":   Error,
	"fatal":   Fatal,
}

// String returns the lowercase level name, e.g. "info".
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "info"
}

// Short returns the single-letter name, e.g. "I".
func (l Level) Short() string {
	if s, ok := levelShort[l]; ok {
		return s
	}
	return "I"
}

// ParseLevel parses a lowercase level name, defaulting to Info for
// unrecognized input (spec: "tolerant to unknown level").
func ParseLevel(name string) Level {
	if l, ok := namesToLevel[name]; ok {
		return l
	}
	return Info
}

const (
	maxCategoryLen = 50
	maxMessageLen  = 5000
	truncateSuffix = "… [truncated]"
)

// Record is an immutable log entry. Construct with New; fields are
// unexported so nothing outside this package can mutate a record in place.
type Record struct {
	timestamp time.Time
	level     Level
	category  string
	message   string
	context   map[string]any
	sessionID string
	seq       uint64
}

// New builds a Record, applying the category/message validation and
// truncation rules from the data model.
func New(ts time.Time, level Level, category, message string, ctx map[string]any, sessionID string, seq uint64) Record {
	category = normalizeCategory(category)
	message = truncateMessage(message)
	return Record{
		timestamp: ts,
		level:     level,
		category:  category,
		message:   message,
		context:   ctx,
		sessionID: sessionID,
		seq:       seq,
	}
}

func normalizeCategory(category string) string {
	if category == "" {
		return "UNKNOWN"
	}
	if len(category) > maxCategoryLen {
		return truncateToRuneBoundary(category, maxCategoryLen)
	}
	return category
}

func truncateMessage(message string) string {
	if len(message) <= maxMessageLen {
		return message
	}
	cut := maxMessageLen - len(truncateSuffix)
	if cut < 0 {
		cut = 0
	}
	return truncateToRuneBoundary(message, cut) + truncateSuffix
}

// truncateToRuneBoundary cuts s to at most n bytes without splitting a
// multi-byte rune, walking back to the nearest rune start if the cut
// lands mid-character.
func truncateToRuneBoundary(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Timestamp, Level, Category, Message, Context, SessionID and Seq are plain
// accessors; Context returns the record's own map (callers must not mutate
// it — redact.Apply returns a fresh record with a fresh context instead of
// mutating in place).
func (r Record) Timestamp() time.Time    { return r.timestamp }
func (r Record) Level() Level            { return r.level }
func (r Record) Category() string        { return r.category }
func (r Record) Message() string         { return r.message }
func (r Record) Context() map[string]any { return r.context }
func (r Record) SessionID() string       { return r.sessionID }
func (r Record) Seq() uint64             { return r.seq }

// WithContext returns a copy of r with the context replaced.
func (r Record) WithContext(ctx map[string]any) Record {
	r.context = ctx
	return r
}

// Equal implements the structural equality from §4.1: context is
// intentionally excluded.
func (r Record) Equal(other Record) bool {
	return r.timestamp.Equal(other.timestamp) &&
		r.level == other.level &&
		r.category == other.category &&
		r.message == other.message &&
		r.seq == other.seq
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ToWire returns the canonical full wire map.
func (r Record) ToWire() map[string]any {
	m := map[string]any{
		"timestamp": r.timestamp.UTC().Format(isoMillis),
		"level":     r.level.String(),
		"category":  r.category,
		"message":   r.message,
	}
	if len(r.context) > 0 {
		m["context"] = r.context
	}
	if r.sessionID != "" {
		m["sessionId"] = r.sessionID
	}
	if r.seq != 0 {
		m["seq"] = r.seq
	}
	return m
}

// FromWire parses the full wire shape, tolerant to an unknown level and
// missing optional keys.
func FromWire(m map[string]any) (Record, error) {
	ts, err := parseWireTimestamp(m["timestamp"])
	if err != nil {
		return Record{}, err
	}
	level := Info
	if lv, ok := m["level"].(string); ok {
		level = ParseLevel(lv)
	}
	category, _ := m["category"].(string)
	message, _ := m["message"].(string)
	var ctx map[string]any
	if c, ok := m["context"].(map[string]any); ok {
		ctx = c
	}
	sessionID, _ := m["sessionId"].(string)
	var seq uint64
	switch v := m["seq"].(type) {
	case uint64:
		seq = v
	case int:
		seq = uint64(v)
	case float64:
		seq = uint64(v)
	}
	return Record{
		timestamp: ts,
		level:     level,
		category:  category,
		message:   message,
		context:   ctx,
		sessionID: sessionID,
		seq:       seq,
	}, nil
}

func parseWireTimestamp(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("record: wire timestamp missing or not a string")
	}
	t, err := time.Parse(isoMillis, s)
	if err != nil {
		// Tolerate RFC3339Nano too, since truncation to millis is one-way.
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("record: invalid wire timestamp %q: %w", s, err)
		}
	}
	return t, nil
}

// ToCompactWire returns the compact wire map with short keys.
func (r Record) ToCompactWire() map[string]any {
	m := map[string]any{
		"t": r.timestamp.UTC().UnixMilli(),
		"l": int(r.level),
		"c": r.category,
		"m": r.message,
	}
	if len(r.context) > 0 {
		m["x"] = r.context
	}
	if r.sessionID != "" {
		m["s"] = r.sessionID
	}
	if r.seq != 0 {
		m["n"] = r.seq
	}
	return m
}

// FromCompactWire parses the compact wire shape.
func FromCompactWire(m map[string]any) (Record, error) {
	var millis int64
	switch v := m["t"].(type) {
	case int64:
		millis = v
	case float64:
		millis = int64(v)
	default:
		return Record{}, fmt.Errorf("record: compact wire missing t")
	}
	ts := time.UnixMilli(millis).UTC()

	level := Info
	switch v := m["l"].(type) {
	case int:
		level = Level(v)
	case float64:
		level = Level(int(v))
	}

	category, _ := m["c"].(string)
	message, _ := m["m"].(string)
	var ctx map[string]any
	if c, ok := m["x"].(map[string]any); ok {
		ctx = c
	}
	sessionID, _ := m["s"].(string)
	var seq uint64
	switch v := m["n"].(type) {
	case uint64:
		seq = v
	case int:
		seq = uint64(v)
	case float64:
		seq = uint64(v)
	}
	return Record{
		timestamp: ts,
		level:     level,
		category:  category,
		message:   message,
		context:   ctx,
		sessionID: sessionID,
		seq:       seq,
	}, nil
}
