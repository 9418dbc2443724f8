package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0640))
	return path
}

func TestLoadConfigMinimal(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.MinLevel)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadConfigMissingDirectory(t *testing.T) {
	path := writeConfig(t, `
enabled: true
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidMinLevel(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
min_level: noisy
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
format: xml
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigCustomFormatRequiresName(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
format: custom
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRotationMultiFileRequiresMaxFiles(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
rotation:
  strategy: multiFile
  max_file_size: 10MB
  max_files: 0
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRotationSingleFileValid(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
rotation:
  strategy: singleFile
  max_file_size: 10MB
  trim_percent: 25
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.Rotation.TrimPercent)
}

func TestLoadConfigSinkGelfRequiresHostAndPort(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
sinks:
  - kind: gelf
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigSinkGelfValid(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
sinks:
  - kind: gelf
    host: graylog.local
    port: 12201
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Sinks, 1)
}

func TestLoadConfigDuplicateSinkNames(t *testing.T) {
	path := writeConfig(t, `
directory: /tmp/ironlog
sinks:
  - kind: gelf
    name: primary
    host: a
    port: 1
  - kind: gelf
    name: primary
    host: b
    port: 2
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestParseSizeUnits(t *testing.T) {
	v, err := ParseSize("10MB")
	require.NoError(t, err)
	assert.Equal(t, int64(10*1024*1024), v)
}

func TestParseDurationDaysSuffix(t *testing.T) {
	d, err := ParseDuration("2d")
	require.NoError(t, err)
	assert.Equal(t, 48*60*60*1e9, float64(d))
}

func TestParseDurationRejectsNonPositive(t *testing.T) {
	_, err := ParseDuration("0s")
	assert.Error(t, err)
}
