package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironlog/ironlog/internal/record"
)

func TestCallOnLogRespectsRecursionGuard(t *testing.T) {
	calls := 0
	hooks := Hooks{OnLog: func(r record.Record) { calls++ }}

	ctx := context.Background()
	for i := 0; i <= maxHookRecursionDepth+2; i++ {
		callOnLog(ctx, hooks, record.Record{})
		ctx = withHookDepth(ctx)
	}

	assert.Equal(t, maxHookRecursionDepth+1, calls)
}

func TestCallOnLogNilHookNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		callOnLog(context.Background(), Hooks{}, record.Record{})
	})
}

func TestHookPanicRecovered(t *testing.T) {
	hooks := Hooks{OnLog: func(r record.Record) { panic("boom") }}
	assert.NotPanics(t, func() {
		callOnLog(context.Background(), hooks, record.Record{})
	})
}

func TestCallOnErrorAndOnRotateNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		callOnError(Hooks{}, nil, "")
		callOnRotate(Hooks{})
		callOnFlush(Hooks{}, 0)
	})
}
