// Package rotation implements the two on-disk rotation strategies from
// spec.md §4.8: a multi-file ring and a single-file head-trim. Config shape
// (max size, max age parsing) is grounded on the teacher's
// internal/config.ParseSize/ParseDuration; the move/rename/trim sequences
// themselves are written fresh since the teacher's lumberjack-based
// rotation cannot express either shape (see DESIGN.md).
package rotation

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const currentLogName = "current.log"

// Strategy decides whether current.log needs rotating/trimming and
// performs the operation.
type Strategy interface {
	// MaybeRotate inspects current.log under dir and rotates/trims it if
	// it has reached maxFileSize. Returns true if a rotation/trim moved or
	// rewrote any file.
	MaybeRotate(dir string, maxFileSize int64) (bool, error)
}

// CurrentLogPath returns the path to the active log file under dir.
func CurrentLogPath(dir string) string {
	return filepath.Join(dir, currentLogName)
}

func fileSize(path string) (int64, bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return info.Size(), true, nil
}

// RingStrategy implements the multi-file ring: backup_1.log is the
// youngest backup, backup_{maxFiles-1}.log the oldest. See spec.md §4.8.
type RingStrategy struct {
	MaxFiles int // including current.log; ring holds at most MaxFiles-1 backups
}

func (s RingStrategy) backupPath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("backup_%d.log", i))
}

// MaybeRotate performs one rotation cycle if current.log has reached
// maxFileSize. The delete-oldest / rename-chain / rename-current sequence
// is not atomic as a whole (spec.md §9, Open Questions): a crash between
// steps can leave gaps, and this is accepted as-is.
func (s RingStrategy) MaybeRotate(dir string, maxFileSize int64) (bool, error) {
	if s.MaxFiles < 1 {
		return false, fmt.Errorf("rotation: maxFiles must be >= 1, got %d", s.MaxFiles)
	}
	current := CurrentLogPath(dir)
	size, exists, err := fileSize(current)
	if err != nil {
		return false, err
	}
	if !exists || size < maxFileSize {
		return false, nil
	}

	// Delete the oldest backup, if present.
	oldest := s.backupPath(dir, s.MaxFiles-1)
	if _, err := os.Stat(oldest); err == nil {
		if err := os.Remove(oldest); err != nil {
			return false, fmt.Errorf("rotation: removing oldest backup: %w", err)
		}
	}

	// Shift backup_i -> backup_{i+1} from oldest to youngest.
	for i := s.MaxFiles - 2; i >= 1; i-- {
		src := s.backupPath(dir, i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := s.backupPath(dir, i+1)
		if err := os.Rename(src, dst); err != nil {
			return false, fmt.Errorf("rotation: renaming backup_%d: %w", i, err)
		}
	}

	// current.log -> backup_1.log
	if s.MaxFiles > 1 {
		if err := os.Rename(current, s.backupPath(dir, 1)); err != nil {
			return false, fmt.Errorf("rotation: renaming current.log: %w", err)
		}
	} else {
		if err := os.Remove(current); err != nil {
			return false, fmt.Errorf("rotation: removing current.log: %w", err)
		}
	}

	// Fresh empty current.log.
	f, err := os.OpenFile(current, os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return false, fmt.Errorf("rotation: creating new current.log: %w", err)
	}
	_ = f.Close()

	return true, nil
}

// TrimStrategy implements the single-file head-trim: the oldest
// TrimPercent of lines are dropped once current.log reaches maxFileSize.
type TrimStrategy struct {
	TrimPercent float64 // 0-100
}

// MaybeRotate streams current.log line-by-line (never materializing the
// whole file as one string), drops the oldest TrimPercent of lines, and
// rewrites the file with the tail. If the rewrite itself fails, the file is
// truncated to empty rather than left to grow unbounded.
func (s TrimStrategy) MaybeRotate(dir string, maxFileSize int64) (bool, error) {
	current := CurrentLogPath(dir)
	size, exists, err := fileSize(current)
	if err != nil {
		return false, err
	}
	if !exists || size < maxFileSize {
		return false, nil
	}

	lines, err := readLines(current)
	if err != nil {
		return false, fmt.Errorf("rotation: reading current.log for trim: %w", err)
	}
	total := len(lines)
	if total == 0 {
		return false, nil
	}

	toRemove := ceilDiv(total*int(s.TrimPercent*100), 10000)
	if toRemove >= total {
		keep := ceilDiv(total*10, 100)
		if keep < 1 {
			keep = 1
		}
		toRemove = total - keep
	}
	tail := lines[toRemove:]

	if err := rewriteOrTruncate(current, tail); err != nil {
		return false, err
	}
	return true, nil
}

func ceilDiv(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	if numerator <= 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func rewriteOrTruncate(path string, lines []string) error {
	tmp := path + ".trim.tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640)
	if err != nil {
		return truncateToEmpty(path)
	}
	w := bufio.NewWriter(f)
	writeErr := error(nil)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			writeErr = err
			break
		}
		if _, err := w.WriteString("\n"); err != nil {
			writeErr = err
			break
		}
	}
	if writeErr == nil {
		writeErr = w.Flush()
	}
	_ = f.Close()
	if writeErr != nil {
		_ = os.Remove(tmp)
		return truncateToEmpty(path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return truncateToEmpty(path)
	}
	return nil
}

func truncateToEmpty(path string) error {
	return os.Truncate(path, 0)
}
