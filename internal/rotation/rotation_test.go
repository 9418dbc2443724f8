package rotation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCurrent(t *testing.T, dir string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(CurrentLogPath(dir), []byte(content), 0640))
}

func TestRingStrategyNoRotationBelowThreshold(t *testing.T) {
	dir := t.TempDir()
	writeCurrent(t, dir, "short")
	rotated, err := RingStrategy{MaxFiles: 3}.MaybeRotate(dir, 1000)
	require.NoError(t, err)
	assert.False(t, rotated)
}

func TestRingStrategyRotatesAndShifts(t *testing.T) {
	dir := t.TempDir()
	writeCurrent(t, dir, "aaaaaaaaaa")

	rotated, err := RingStrategy{MaxFiles: 3}.MaybeRotate(dir, 5)
	require.NoError(t, err)
	assert.True(t, rotated)

	b1, err := os.ReadFile(filepath.Join(dir, "backup_1.log"))
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaaa", string(b1))

	cur, err := os.ReadFile(CurrentLogPath(dir))
	require.NoError(t, err)
	assert.Empty(t, string(cur))

	// Second rotation: backup_1 shifts to backup_2, new current becomes backup_1.
	writeCurrent(t, dir, "bbbbbbbbbb")
	rotated, err = RingStrategy{MaxFiles: 3}.MaybeRotate(dir, 5)
	require.NoError(t, err)
	assert.True(t, rotated)

	b2, err := os.ReadFile(filepath.Join(dir, "backup_2.log"))
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaaaa", string(b2))

	b1, err = os.ReadFile(filepath.Join(dir, "backup_1.log"))
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbbbb", string(b1))
}

func TestRingStrategyDropsOldestBeyondMaxFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup_2.log"), []byte("oldest"), 0640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backup_1.log"), []byte("younger"), 0640))
	writeCurrent(t, dir, "cccccccccc")

	rotated, err := RingStrategy{MaxFiles: 3}.MaybeRotate(dir, 5)
	require.NoError(t, err)
	assert.True(t, rotated)

	_, err = os.Stat(filepath.Join(dir, "backup_2.log"))
	assert.NoError(t, err) // backup_1 shifted into backup_2, old backup_2 content overwritten
	b2, err := os.ReadFile(filepath.Join(dir, "backup_2.log"))
	require.NoError(t, err)
	assert.NotEqual(t, "oldest", string(b2))
}

func TestTrimStrategyTrimsOldestLines(t *testing.T) {
	dir := t.TempDir()
	lines := ""
	for i := 0; i < 10; i++ {
		lines += "line\n"
	}
	writeCurrent(t, dir, lines)

	rotated, err := TrimStrategy{TrimPercent: 50}.MaybeRotate(dir, 5)
	require.NoError(t, err)
	assert.True(t, rotated)

	content, err := os.ReadFile(CurrentLogPath(dir))
	require.NoError(t, err)
	remaining := string(content)
	assert.Less(t, len(remaining), len(lines))
}

func TestTrimStrategyNoRotationBelowThreshold(t *testing.T) {
	dir := t.TempDir()
	writeCurrent(t, dir, "short")
	rotated, err := TrimStrategy{TrimPercent: 50}.MaybeRotate(dir, 1000)
	require.NoError(t, err)
	assert.False(t, rotated)
}

func TestTrimStrategyHandlesMissingFile(t *testing.T) {
	dir := t.TempDir()
	rotated, err := TrimStrategy{TrimPercent: 50}.MaybeRotate(dir, 1)
	require.NoError(t, err)
	assert.False(t, rotated)
}
