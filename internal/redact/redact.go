// Package redact applies ordered regex substitutions over a record's
// message and context tree. It is grounded on the teacher's
// internal/validation recursive-map-walk shape, generalized from
// truncation to substitution.
package redact

import (
	"regexp"

	"github.com/ironlog/ironlog/internal/record"
)

// Pattern is one named regex substitution.
type Pattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// Redactor applies an ordered list of patterns to every textual leaf of a
// record. A Redactor is a pure function over records: Apply never mutates
// its argument.
type Redactor struct {
	patterns []Pattern
}

// New builds a Redactor from an ordered pattern list.
func New(patterns []Pattern) *Redactor {
	cp := make([]Pattern, len(patterns))
	copy(cp, patterns)
	return &Redactor{patterns: cp}
}

// Patterns returns a copy of the configured pattern list.
func (r *Redactor) Patterns() []Pattern {
	cp := make([]Pattern, len(r.patterns))
	copy(cp, r.patterns)
	return cp
}

// Apply returns a structurally identical record with every textual leaf
// passed through all patterns in order.
func (r *Redactor) Apply(rec record.Record) record.Record {
	message := r.redactString(rec.Message())
	ctx := rec.Context()
	var redactedCtx map[string]any
	if ctx != nil {
		redactedCtx = r.redactMap(ctx)
	}
	// Redaction changes only the message and context; Record has no
	// WithMessage, so rebuild it with record.New from the other fields.
	out := record.New(rec.Timestamp(), rec.Level(), rec.Category(), message, redactedCtx, rec.SessionID(), rec.Seq())
	return out
}

func (r *Redactor) redactString(s string) string {
	for _, p := range r.patterns {
		s = p.Regex.ReplaceAllString(s, p.Replacement)
	}
	return s
}

func (r *Redactor) redactMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = r.redactValue(v)
	}
	return out
}

func (r *Redactor) redactSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = r.redactValue(v)
	}
	return out
}

func (r *Redactor) redactValue(v any) any {
	switch vv := v.(type) {
	case string:
		return r.redactString(vv)
	case map[string]any:
		return r.redactMap(vv)
	case []any:
		return r.redactSlice(vv)
	default:
		// Numbers, booleans, nil pass through unchanged.
		return v
	}
}
