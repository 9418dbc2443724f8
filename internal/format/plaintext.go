package format

import (
	"encoding/json"
	"strings"

	"github.com/ironlog/ironlog/internal/record"
)

const levelFieldWidth = 7

// PlainTextFormatter renders:
//
//	[<ISO-8601 timestamp>] [<LEVEL padded to width 7>] [<category>] <message>[ <compact JSON context>]
//
// Width 7 is preserved exactly as specified even though "warning" and
// "verbose" are the only seven-letter names (spec.md §9, Open Questions).
type PlainTextFormatter struct{}

func (PlainTextFormatter) Format(r record.Record) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("[")
	sb.WriteString(r.Timestamp().UTC().Format("2006-01-02T15:04:05.000Z"))
	sb.WriteString("] [")
	sb.WriteString(padLevel(r.Level().String()))
	sb.WriteString("] [")
	sb.WriteString(r.Category())
	sb.WriteString("] ")
	sb.WriteString(r.Message())

	if ctx := r.Context(); len(ctx) > 0 {
		b, err := json.Marshal(ctx)
		if err != nil {
			return nil, err
		}
		sb.WriteString(" ")
		sb.Write(b)
	}

	return []byte(sb.String()), nil
}

func padLevel(name string) string {
	upper := strings.ToUpper(name)
	if len(upper) >= levelFieldWidth {
		return upper
	}
	return upper + strings.Repeat(" ", levelFieldWidth-len(upper))
}

func (PlainTextFormatter) FileExtension() string { return ".log" }
func (PlainTextFormatter) MIMEType() string      { return "text/plain" }
