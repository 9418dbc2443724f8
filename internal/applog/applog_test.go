package applog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(level Severity) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Logger{writer: buf, level: level}, buf
}

func TestLogfSkipsBelowLevel(t *testing.T) {
	l, buf := newTestLogger(Warn)
	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestLogfEmitsAtOrAboveLevel(t *testing.T) {
	l, buf := newTestLogger(Warn)
	l.Error("boom %d", 5)
	assert.Contains(t, buf.String(), "ERROR: boom 5")
}

func TestSetLevelFromStringValid(t *testing.T) {
	l, _ := newTestLogger(Warn)
	require.NoError(t, l.SetLevelFromString("debug"))
	assert.Equal(t, Debug, l.level)
}

func TestSetLevelFromStringInvalid(t *testing.T) {
	l, _ := newTestLogger(Warn)
	assert.Error(t, l.SetLevelFromString("nope"))
}

func TestGetReturnsSingleton(t *testing.T) {
	a := Get()
	b := Get()
	assert.Same(t, a, b)
}

func TestLogLineIncludesTimestampBrackets(t *testing.T) {
	l, buf := newTestLogger(Trace)
	l.Trace("hi")
	assert.True(t, strings.HasPrefix(buf.String(), "["))
}
