package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/ironlog/ironlog/internal/redact"
	"github.com/ironlog/ironlog/internal/rotation"
)

// runWorkerBatch implements spec.md §4.7. Must be called with flushLock
// held. Grounded on the teacher's FileLogger.Log (marshal, size-check,
// truncate, write) generalized from one-record-one-write to
// one-batch-one-write with restore-to-head-on-failure.
func (e *Engine) runWorkerBatch() error {
	// 1. Not fully initialized: leave records buffered.
	if !e.initialized || !e.dirUsable {
		return nil
	}

	// 2. Snapshot and clear.
	batch := e.buffer.DrainAll()
	if len(batch) == 0 {
		return nil
	}

	// 3. Ensure directory exists.
	if err := e.ensureDirectory(); err != nil {
		e.buffer.RestoreToHead(batch)
		e.writeFailures.Add(1)
		callOnError(e.opts.Hooks, err, "")
		return err
	}

	// 4. Effective pattern list = configured ∪ runtime patterns.
	patterns := e.effectivePatterns()
	var redactor *redact.Redactor
	if len(patterns) > 0 {
		redactor = redact.New(patterns)
	}

	// 5. Pipeline: redact -> format -> (encrypt) -> line.
	lines := make([]string, 0, len(batch))
	for _, rec := range batch {
		if redactor != nil {
			rec = redactor.Apply(rec)
		}
		line, err := e.formatFunc(rec)
		if err != nil {
			e.buffer.RestoreToHead(batch)
			e.writeFailures.Add(1)
			callOnError(e.opts.Hooks, err, "")
			return err
		}
		if e.encryptor != nil {
			enc, err := e.encryptor.EncryptToLine(line)
			if err != nil {
				e.buffer.RestoreToHead(batch)
				e.writeFailures.Add(1)
				callOnError(e.opts.Hooks, err, "")
				return err
			}
			lines = append(lines, enc)
			continue
		}
		lines = append(lines, string(line))
	}

	current := rotation.CurrentLogPath(e.opts.Directory)
	payload := []byte(strings.Join(lines, "\n") + "\n")

	f, err := os.OpenFile(current, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		e.buffer.RestoreToHead(batch)
		e.writeFailures.Add(1)
		callOnError(e.opts.Hooks, err, "")
		return fmt.Errorf("engine: opening %s: %w", current, err)
	}
	_, writeErr := f.Write(payload)
	closeErr := f.Close()
	if writeErr != nil {
		e.buffer.RestoreToHead(batch)
		e.writeFailures.Add(1)
		callOnError(e.opts.Hooks, writeErr, "")
		return writeErr
	}
	if closeErr != nil {
		e.writeFailures.Add(1)
		callOnError(e.opts.Hooks, closeErr, "")
		return closeErr
	}

	// 7. Success: onFlush, then rotation.
	callOnFlush(e.opts.Hooks, len(batch))

	if e.opts.RotationStrategy != nil {
		rotated, err := e.opts.RotationStrategy.MaybeRotate(e.opts.Directory, e.opts.RotationMaxSize)
		if err != nil {
			callOnError(e.opts.Hooks, err, "")
		} else if rotated {
			callOnRotate(e.opts.Hooks)
		}
	}

	return nil
}
