package rotation

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Retention removes *.log files older than MaxAge, never dropping the
// total preserved record count below MinEntries regardless of age. The
// periodic-ticker shape is grounded on the teacher's
// internal/security.TokenValidationRateLimiter cleanup loop.
type Retention struct {
	MaxAge     time.Duration
	MinEntries int

	ticker *time.Ticker
	stop   chan struct{}
}

// NewRetention starts a background goroutine that runs Cleanup(dir) every
// interval until Stop is called.
func NewRetention(maxAge time.Duration, minEntries int, interval time.Duration, dir string) *Retention {
	r := &Retention{
		MaxAge:     maxAge,
		MinEntries: minEntries,
		ticker:     time.NewTicker(interval),
		stop:       make(chan struct{}),
	}
	go r.loop(dir)
	return r
}

func (r *Retention) loop(dir string) {
	for {
		select {
		case <-r.ticker.C:
			_, _ = r.Cleanup(dir)
		case <-r.stop:
			r.ticker.Stop()
			return
		}
	}
}

// Stop halts the background cleanup goroutine. Safe to call once.
func (r *Retention) Stop() {
	close(r.stop)
}

type backupFile struct {
	path    string
	modTime time.Time
	entries int
}

// countLines returns the number of lines (records) in path; a final line
// without a trailing newline is counted too.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

// Cleanup removes *.log files under dir older than MaxAge, oldest first,
// stopping as soon as deleting the next stale file would drop the total
// preserved record count below MinEntries (spec.md §4.8/§4.9).
// Returns the number of files removed.
func (r *Retention) Cleanup(dir string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return 0, err
	}

	var files []backupFile
	totalEntries := 0
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		n, err := countLines(m)
		if err != nil {
			continue
		}
		files = append(files, backupFile{path: m, modTime: info.ModTime(), entries: n})
		totalEntries += n
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	cutoff := time.Now().Add(-r.MaxAge)
	removed := 0
	for _, f := range files {
		if !f.modTime.Before(cutoff) {
			continue
		}
		if totalEntries-f.entries < r.MinEntries {
			break
		}
		if err := os.Remove(f.path); err != nil {
			continue
		}
		totalEntries -= f.entries
		removed++
	}
	return removed, nil
}
