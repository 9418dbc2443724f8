// Package format turns a record into one line of bytes, grounded on the
// teacher's FileLogger.Log / formatText (internal/logger/file_logger.go).
package format

import "github.com/ironlog/ironlog/internal/record"

// Formatter maps one record to one line of bytes.
type Formatter interface {
	Format(r record.Record) ([]byte, error)
	FileExtension() string
	MIMEType() string
}

// Name identifies a configured format.
type Name string

const (
	JSON        Name = "json"
	CompactJSON Name = "compactJson"
	PlainText   Name = "plainText"
	CSV         Name = "csv"
	Custom      Name = "custom"
)

// ByName returns the built-in Formatter for a given configured name. Custom
// is handled by the caller (see Resolve), never returned here.
func ByName(n Name) (Formatter, bool) {
	switch n {
	case JSON:
		return JSONFormatter{}, true
	case CompactJSON:
		return CompactJSONFormatter{}, true
	case PlainText:
		return PlainTextFormatter{}, true
	case CSV:
		return CSVFormatter{}, true
	default:
		return nil, false
	}
}

// CustomFunc is the signature a registered custom formatter must have.
// Custom formatters are registered at init() time (package-level, not a
// per-engine closure) because the worker stage runs off the caller's
// goroutine and the function must be safely callable from there.
type CustomFunc func(record.Record) ([]byte, error)

var customRegistry = map[string]CustomFunc{}

// RegisterCustom registers a named custom formatter function.
func RegisterCustom(name string, fn CustomFunc) {
	customRegistry[name] = fn
}

// LookupCustom retrieves a registered custom formatter by name.
func LookupCustom(name string) (CustomFunc, bool) {
	fn, ok := customRegistry[name]
	return fn, ok
}

// Resolve picks the formatter to actually use in the worker stage. A
// configured Custom format with no registered function (or empty name)
// falls back to CompactJSON silently (as does an unknown name), and
// fellBack reports whether the fallback was used (FormatterReversalImpossible, spec.md §7).
func Resolve(n Name, customName string) (fn func(record.Record) ([]byte, error), fellBack bool) {
	if n == Custom {
		if custom, ok := LookupCustom(customName); ok {
			return custom, false
		}
		compact := CompactJSONFormatter{}
		return compact.Format, true
	}
	f, ok := ByName(n)
	if !ok {
		compact := CompactJSONFormatter{}
		return compact.Format, true
	}
	return f.Format, false
}
