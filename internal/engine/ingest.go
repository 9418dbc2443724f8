package engine

import (
	"context"
	"time"

	"github.com/ironlog/ironlog/internal/record"
	"github.com/ironlog/ironlog/internal/sink"
)

// Log is the two-clear-entry-point ingress named in spec.md §9's
// "flexible argument parsing" guidance: no positional-polymorphism
// overloads, just log (no category) and LogIn (explicit category).
func (e *Engine) Log(ctx context.Context, level record.Level, message string, recordCtx map[string]any) {
	e.enqueue(ctx, level, "", message, recordCtx)
}

// LogIn logs with an explicit category.
func (e *Engine) LogIn(ctx context.Context, level record.Level, category, message string, recordCtx map[string]any) {
	e.enqueue(ctx, level, category, message, recordCtx)
}

// enqueue performs the nine steps of spec.md §4.5 in order.
func (e *Engine) enqueue(ctx context.Context, level record.Level, category, message string, callerCtx map[string]any) {
	// 1. Gates.
	if !e.opts.Enabled {
		return
	}
	if e.sensitiveMode.Load() {
		return
	}
	if int64(level) < e.activeMinLevel.Load() {
		return
	}

	// 2. Category/message validation happens inside record.New
	// (normalization + truncation); nothing to reject here.
	// 3. Overflow purge happens at step 7's buffer.Push, which drops the
	// oldest entry once the buffer is at capacity.

	mergedCtx := mergeCallerContext(callerCtx)

	// 4. Context provider merge.
	for _, provider := range e.opts.ContextProviders {
		mergedCtx = applyProvider(provider, mergedCtx)
	}

	// 5. Context sanitization.
	sanitized := Sanitize(mergedCtx)

	// 6. Assign timestamp/seq.
	seq := e.nextSeq()
	rec := record.New(time.Now(), level, category, message, sanitized, e.sessionID, seq)

	// 7. Append; overflow purge happens as part of Push.
	if dropped := e.buffer.Push(rec); dropped {
		e.dropped.Add(1)
	}
	e.logged.Add(1)

	// 8. Fan-out.
	hookCtx := withHookDepth(ctx)
	callOnLog(hookCtx, e.opts.Hooks, rec)
	for _, s := range e.opts.Sinks {
		writeSinkSafely(s, rec)
	}

	// 9. Trigger check.
	if e.buffer.Len() >= e.opts.BufferSize || level >= record.Error {
		go func() { _ = e.flush(level >= record.Error) }()
	}
}

func (e *Engine) nextSeq() uint64 {
	e.seqMu.Lock()
	defer e.seqMu.Unlock()
	e.seq++
	return e.seq
}

func mergeCallerContext(callerCtx map[string]any) map[string]any {
	if len(callerCtx) == 0 {
		return nil
	}
	out := make(map[string]any, len(callerCtx))
	for k, v := range callerCtx {
		out[k] = v
	}
	return out
}

// applyProvider invokes one context provider, swallowing panics and nil
// returns as "skip" per spec.md §4.5 step 4, and merges its keys over the
// accumulated context (later providers overwrite earlier keys).
func applyProvider(provider ContextProvider, acc map[string]any) (result map[string]any) {
	result = acc
	defer func() {
		if recover() != nil {
			result = acc
		}
	}()

	contributed := provider()
	if contributed == nil {
		return acc
	}
	if acc == nil {
		acc = make(map[string]any, len(contributed))
	}
	for k, v := range contributed {
		acc[k] = v
	}
	return acc
}

// writeSinkSafely calls a sink's Write, isolating its failure from the
// caller and from other sinks (spec.md §4.5 step 8).
func writeSinkSafely(s sink.Sink, rec record.Record) {
	defer func() { _ = recover() }()
	_ = s.Write(rec)
}
