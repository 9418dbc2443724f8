package format

import (
	"encoding/json"

	"github.com/ironlog/ironlog/internal/record"
)

// JSONFormatter renders the full wire shape as newline-delimited JSON.
type JSONFormatter struct{}

func (JSONFormatter) Format(r record.Record) ([]byte, error) {
	return json.Marshal(r.ToWire())
}

func (JSONFormatter) FileExtension() string { return ".log" }
func (JSONFormatter) MIMEType() string      { return "application/x-ndjson" }

// CompactJSONFormatter renders the compact wire shape.
type CompactJSONFormatter struct{}

func (CompactJSONFormatter) Format(r record.Record) ([]byte, error) {
	return json.Marshal(r.ToCompactWire())
}

func (CompactJSONFormatter) FileExtension() string { return ".log" }
func (CompactJSONFormatter) MIMEType() string      { return "application/x-ndjson" }
