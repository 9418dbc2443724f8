package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"github.com/ironlog/ironlog/internal/record"
)

// CSVFormatter renders header "timestamp,level,category,message,context,sessionId"
// with RFC4180-style quoting via encoding/csv.
type CSVFormatter struct{}

const CSVHeader = "timestamp,level,category,message,context,sessionId"

func (CSVFormatter) Format(r record.Record) ([]byte, error) {
	contextField := ""
	if ctx := r.Context(); len(ctx) > 0 {
		b, err := json.Marshal(ctx)
		if err != nil {
			return nil, err
		}
		contextField = string(b)
	}

	fields := []string{
		r.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z"),
		r.Level().String(),
		r.Category(),
		r.Message(),
		contextField,
		r.SessionID(),
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (CSVFormatter) FileExtension() string { return ".csv" }
func (CSVFormatter) MIMEType() string      { return "text/csv" }
