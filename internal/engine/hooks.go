package engine

import (
	"context"

	"github.com/ironlog/ironlog/internal/record"
)

// Hooks carries the four lifecycle callbacks from spec.md §4.9. Every
// hook invocation is guarded so a panic inside a hook cannot escape into
// the engine (mirrors the teacher's AppLogger.logf swallowing formatting
// errors rather than propagating them to callers).
type Hooks struct {
	OnLog    func(r record.Record)
	OnFlush  func(count int)
	OnRotate func()
	OnError  func(err error, trace string)
}

const maxHookRecursionDepth = 5

type hookDepthKey struct{}

// withHookDepth returns a context carrying an incremented recursion depth.
// Go has no stable per-goroutine-local storage (unlike the source
// runtime's thread-local), so the depth counter travels explicitly on the
// context passed into enqueue — the idiomatic substitute.
func withHookDepth(ctx context.Context) context.Context {
	return context.WithValue(ctx, hookDepthKey{}, hookDepth(ctx)+1)
}

func hookDepth(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	d, _ := ctx.Value(hookDepthKey{}).(int)
	return d
}

// callOnLog invokes hooks.OnLog unless the recursion guard has tripped
// (depth > maxHookRecursionDepth), and never lets a hook panic escape.
func callOnLog(ctx context.Context, hooks Hooks, r record.Record) {
	if hooks.OnLog == nil {
		return
	}
	if hookDepth(ctx) > maxHookRecursionDepth {
		return
	}
	defer func() { _ = recover() }()
	hooks.OnLog(r)
}

func callOnFlush(hooks Hooks, count int) {
	if hooks.OnFlush == nil {
		return
	}
	defer func() { _ = recover() }()
	hooks.OnFlush(count)
}

func callOnRotate(hooks Hooks) {
	if hooks.OnRotate == nil {
		return
	}
	defer func() { _ = recover() }()
	hooks.OnRotate()
}

func callOnError(hooks Hooks, err error, trace string) {
	if hooks.OnError == nil {
		return
	}
	defer func() { _ = recover() }()
	hooks.OnError(err, trace)
}
