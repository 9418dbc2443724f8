package engine

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNilIsNil(t *testing.T) {
	assert.Nil(t, Sanitize(nil))
	assert.Nil(t, Sanitize(map[string]any{}))
}

func TestSanitizeTruncatesLongString(t *testing.T) {
	long := strings.Repeat("a", 20000)
	out := Sanitize(map[string]any{"k": long})
	s := out["k"].(string)
	assert.True(t, strings.HasSuffix(s, "… [truncated]"))
	assert.Less(t, len(s), 20000)
}

func TestSanitizeLeavesShortStringAlone(t *testing.T) {
	out := Sanitize(map[string]any{"k": "short"})
	assert.Equal(t, "short", out["k"])
}

func TestSanitizeTooManyKeysAddsTruncatedMarker(t *testing.T) {
	m := make(map[string]any, 150)
	for i := 0; i < 150; i++ {
		m["k"+strconv.Itoa(i)] = i
	}
	out := Sanitize(m)
	assert.LessOrEqual(t, len(out)-1, sanitizeMaxKeys) // -1 for the marker key
	assert.Equal(t, true, out["_truncated"])
}

func TestSanitizeTooLargeListReplaced(t *testing.T) {
	list := make([]any, 2000)
	out := Sanitize(map[string]any{"items": list})
	replaced, ok := out["items"].(map[string]any)
	if assert.True(t, ok) {
		assert.Equal(t, "List too large", replaced["_error"])
		assert.Equal(t, 2000, replaced["_length"])
	}
}

func TestSanitizeCycleDetected(t *testing.T) {
	inner := map[string]any{}
	inner["self"] = inner
	out := Sanitize(map[string]any{"a": inner})
	nested := out["a"].(map[string]any)
	assert.Equal(t, "Circular reference detected", nested["self"].(map[string]any)["_circular"])
}

func TestSanitizeDeepNestingReplaced(t *testing.T) {
	var build func(depth int) map[string]any
	build = func(depth int) map[string]any {
		if depth == 0 {
			return map[string]any{"leaf": true}
		}
		return map[string]any{"next": build(depth - 1)}
	}
	deep := build(20)
	out := Sanitize(deep)
	// Walk down until we hit the depth-exceeded marker.
	cur := out
	found := false
	for i := 0; i < 25; i++ {
		if _, ok := cur["_depth"]; ok {
			found = true
			break
		}
		next, ok := cur["next"].(map[string]any)
		if !ok {
			break
		}
		cur = next
	}
	assert.True(t, found)
}

func TestSanitizePassesThroughScalars(t *testing.T) {
	out := Sanitize(map[string]any{"n": 5, "b": true, "nil": nil})
	assert.Equal(t, 5, out["n"])
	assert.Equal(t, true, out["b"])
	assert.Nil(t, out["nil"])
}

