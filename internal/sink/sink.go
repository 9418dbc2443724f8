// Package sink implements spec.md §4.5 step 8's "additional synchronous
// consumers" — side-path recipients of raw records distinct from file
// persistence. Grounded on the teacher's internal/logger.Logger interface
// generalized from "log destination" to "sink" (sinks never replace
// current.log, they run alongside it).
package sink

import "github.com/ironlog/ironlog/internal/record"

// Sink receives every record that passes engine ingress, independent of
// whether it is later persisted to disk. A sink's failure must never
// affect the caller or other sinks (the engine wraps each call).
type Sink interface {
	Write(r record.Record) error
}

// Func adapts a plain function to the Sink interface, for tests and
// simple custom sinks.
type Func func(r record.Record) error

func (f Func) Write(r record.Record) error { return f(r) }
