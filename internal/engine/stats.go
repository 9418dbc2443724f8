package engine

import (
	"os"
	"path/filepath"
	"time"
)

// Stats mirrors spec.md §4.9's counters plus the file-scan report.
type Stats struct {
	SessionID     string
	TotalLogged   uint64
	BufferedCount int
	DroppedCount  uint64
	WriteFailures uint64
	StorageUsed   int64
	FileCount     int
	OldestEntry   *time.Time
	NewestEntry   *time.Time
}

// scanDirectory computes storage-used/file-count/oldest/newest across the
// *.log files under dir. Returns zero values if dir does not exist.
func scanDirectory(dir string) (size int64, count int, oldest, newest *time.Time) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return 0, 0, nil, nil
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		size += info.Size()
		count++
		mt := info.ModTime()
		if oldest == nil || mt.Before(*oldest) {
			t := mt
			oldest = &t
		}
		if newest == nil || mt.After(*newest) {
			t := mt
			newest = &t
		}
	}
	return size, count, oldest, newest
}
