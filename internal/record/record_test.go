package record

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTruncatesCategoryAndMessage(t *testing.T) {
	longCategory := strings.Repeat("x", 60)
	longMessage := strings.Repeat("y", 6000)

	r := New(time.Now(), Info, longCategory, longMessage, nil, "sess_1", 1)

	assert.Len(t, r.Category(), 50)
	assert.True(t, strings.HasSuffix(r.Message(), truncateSuffix))
	assert.LessOrEqual(t, len(r.Message()), maxMessageLen)
}

func TestNewDefaultsEmptyCategory(t *testing.T) {
	r := New(time.Now(), Info, "", "hello", nil, "sess_1", 1)
	assert.Equal(t, "UNKNOWN", r.Category())
}

func TestEqualExcludesContext(t *testing.T) {
	ts := time.Now()
	a := New(ts, Info, "T", "m", map[string]any{"a": 1}, "s", 5)
	b := New(ts, Info, "T", "m", map[string]any{"a": 2}, "s", 5)
	assert.True(t, a.Equal(b))
}

func TestWireRoundTrip(t *testing.T) {
	ts := time.Now().UTC().Truncate(time.Millisecond)
	orig := New(ts, Warning, "Auth", "login failed", map[string]any{"user": "bob"}, "sess_abc", 42)

	wire := orig.ToWire()
	got, err := FromWire(wire)
	require.NoError(t, err)

	assert.True(t, orig.Timestamp().Equal(got.Timestamp()))
	assert.Equal(t, orig.Level(), got.Level())
	assert.Equal(t, orig.Category(), got.Category())
	assert.Equal(t, orig.Message(), got.Message())
	assert.Equal(t, orig.SessionID(), got.SessionID())
	assert.Equal(t, orig.Seq(), got.Seq())
}

func TestCompactWireRoundTrip(t *testing.T) {
	ts := time.Now().UTC().Truncate(time.Millisecond)
	orig := New(ts, Error, "DB", "timeout", map[string]any{"retries": float64(3)}, "sess_xyz", 7)

	wire := orig.ToCompactWire()
	got, err := FromCompactWire(wire)
	require.NoError(t, err)

	assert.True(t, orig.Timestamp().Equal(got.Timestamp()))
	assert.Equal(t, orig.Level(), got.Level())
	assert.Equal(t, orig.Category(), got.Category())
	assert.Equal(t, orig.Message(), got.Message())
	assert.Equal(t, orig.SessionID(), got.SessionID())
	assert.Equal(t, orig.Seq(), got.Seq())
}

func TestFromWireUnknownLevelDefaultsToInfo(t *testing.T) {
	r, err := FromWire(map[string]any{
		"timestamp": time.Now().UTC().Format(isoMillis),
		"level":     "nonsense",
		"category":  "T",
		"message":   "m",
	})
	require.NoError(t, err)
	assert.Equal(t, Info, r.Level())
}

func TestEmptyContextOmittedFromWire(t *testing.T) {
	r := New(time.Now(), Info, "T", "m", nil, "", 0)
	wire := r.ToWire()
	_, hasContext := wire["context"]
	assert.False(t, hasContext)

	compact := r.ToCompactWire()
	_, hasX := compact["x"]
	assert.False(t, hasX)
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, Verbose < Debug)
	assert.True(t, Debug < Info)
	assert.True(t, Info < Warning)
	assert.True(t, Warning < Error)
	assert.True(t, Error < Fatal)
}

func TestLevelShortNames(t *testing.T) {
	assert.Equal(t, "V", Verbose.Short())
	assert.Equal(t, "D", Debug.Short())
	assert.Equal(t, "I", Info.Short())
	assert.Equal(t, "W", Warning.Short())
	assert.Equal(t, "E", Error.Short())
	assert.Equal(t, "F", Fatal.Short())
}
