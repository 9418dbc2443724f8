package engine

import (
	"os"
	"path/filepath"
)

// flush acquires the single-flight flush lock and runs one worker batch
// if the buffer is non-empty. critical marks a flush requested by a
// high-severity ingress (spec.md §4.6's demand trigger); the batch runs
// the same way whatever its value.
func (e *Engine) flush(critical bool) error {
	e.flushLock.Lock()
	defer e.flushLock.Unlock()

	if e.buffer.Len() == 0 {
		return nil
	}
	return e.runWorkerBatch()
}

// Flush is the public, synchronous force-flush operation from spec.md
// §4.6.
func (e *Engine) Flush() error {
	return e.flush(true)
}

// Stats returns a snapshot of the engine's counters and a file-scan
// report of its log directory.
func (e *Engine) Stats() Stats {
	size, count, oldest, newest := scanDirectory(e.opts.Directory)
	return Stats{
		SessionID:     e.sessionID,
		TotalLogged:   e.logged.Load(),
		BufferedCount: e.buffer.Len(),
		DroppedCount:  e.dropped.Load(),
		WriteFailures: e.writeFailures.Load(),
		StorageUsed:   size,
		FileCount:     count,
		OldestEntry:   oldest,
		NewestEntry:   newest,
	}
}

// Clear deletes every *.log file in the directory and empties the
// buffer, per spec.md §4.8.
func (e *Engine) Clear() error {
	e.flushLock.Lock()
	defer e.flushLock.Unlock()

	e.buffer.DrainAll()

	matches, err := filepath.Glob(filepath.Join(e.opts.Directory, "*.log"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		_ = os.Remove(m)
	}
	return nil
}
