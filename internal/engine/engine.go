// Package engine implements the core logging pipeline: ingestion (C5),
// the flush scheduler (C6), the worker stage (C7), rotation hand-off (C8),
// and stats/hooks (C9). Package layout and the explicit Init/Dispose pair
// (rather than hiding construction inside the logging calls) are grounded
// on the teacher's internal/logger package, generalized from a
// sync.Once-only singleton (GetAppLogger) to an explicit lifecycle per
// spec.md §9's "do not hide construction inside the logging functions".
package engine

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ironlog/ironlog/internal/crypto"
	"github.com/ironlog/ironlog/internal/format"
	"github.com/ironlog/ironlog/internal/record"
	"github.com/ironlog/ironlog/internal/redact"
	"github.com/ironlog/ironlog/internal/ringbuffer"
	"github.com/ironlog/ironlog/internal/rotation"
	"github.com/ironlog/ironlog/internal/sink"
)

// ContextProvider is invoked at every ingress to contribute auto-context.
// A nil return means "skip"; a panic is recovered and treated as skip.
type ContextProvider func() map[string]any

// Options configures one Engine instance. One field per row of spec.md
// §3's configuration table.
type Options struct {
	MinLevel          record.Level
	Enabled           bool
	BufferSize        int
	FlushInterval     time.Duration
	Directory         string
	FormatName        format.Name
	CustomFormatName  string
	RotationStrategy  rotation.Strategy
	RotationMaxSize   int64
	EncryptionKey     []byte // nil/empty => plaintext lines
	RedactionPatterns []redact.Pattern
	ContextProviders  []ContextProvider
	Hooks             Hooks
	RetentionMaxAge   time.Duration
	RetentionMin      int
	RetentionInterval time.Duration
	Sinks             []sink.Sink
	SensitiveMode     bool
}

// Engine is the process-wide log pipeline. Create with New, then Init
// before any enqueue; Dispose releases timers and file state.
type Engine struct {
	initLock  sync.Mutex
	flushLock sync.Mutex

	opts Options

	sessionID string
	seqMu     sync.Mutex
	seq       uint64

	buffer *ringbuffer.Buffer[record.Record]

	activeMinLevel atomic.Int64
	sensitiveMode  atomic.Bool

	initialized bool
	dirUsable   bool

	redactor       *redact.Redactor
	encryptor      *crypto.Encryptor
	formatFunc     func(record.Record) ([]byte, error)
	formatFellBack bool

	runtimePatterns   []redact.Pattern
	runtimePatternsMu sync.Mutex

	flushTicker     *time.Ticker
	retentionTimer  *rotation.Retention
	stopTimers      chan struct{}

	logged        atomic.Uint64
	dropped       atomic.Uint64
	writeFailures atomic.Uint64
}

const maxRuntimePatterns = 100

// New constructs an Engine that is not yet initialized and rejects an
// invalid encryption key; call Init to start its timers and prepare its
// directory.
func New(opts Options) (*Engine, error) {
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1000
	}
	e := &Engine{
		opts:   opts,
		buffer: ringbuffer.New[record.Record](opts.BufferSize),
	}
	e.activeMinLevel.Store(int64(opts.MinLevel))
	e.sensitiveMode.Store(opts.SensitiveMode)

	if len(opts.RedactionPatterns) > 0 {
		e.redactor = redact.New(opts.RedactionPatterns)
	}

	if len(opts.EncryptionKey) > 0 {
		enc, err := crypto.New(opts.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("engine: invalid encryption key: %w", err)
		}
		e.encryptor = enc
	}

	fn, fellBack := format.Resolve(opts.FormatName, opts.CustomFormatName)
	e.formatFunc = fn
	e.formatFellBack = fellBack

	return e, nil
}

// Init performs idempotent startup: assigns a fresh session id, ensures
// the log directory exists (degrading to memory-only mode on failure
// rather than failing outright, per spec.md §4.9's state machine),
// and starts the flush and retention timers. Concurrent Init calls
// produce exactly one initialized engine.
func (e *Engine) Init() error {
	e.initLock.Lock()
	defer e.initLock.Unlock()

	if e.initialized {
		return nil
	}

	sessionID, err := newSessionID()
	if err != nil {
		return fmt.Errorf("engine: generating session id: %w", err)
	}
	e.sessionID = sessionID

	e.dirUsable = e.ensureDirectory() == nil

	e.stopTimers = make(chan struct{})
	if e.opts.FlushInterval > 0 {
		e.flushTicker = time.NewTicker(e.opts.FlushInterval)
		go e.periodicFlushLoop()
	}
	if e.opts.RetentionInterval > 0 && e.opts.RetentionMaxAge > 0 {
		e.retentionTimer = rotation.NewRetention(e.opts.RetentionMaxAge, e.opts.RetentionMin, e.opts.RetentionInterval, e.opts.Directory)
	}

	e.initialized = true
	return nil
}

func (e *Engine) ensureDirectory() error {
	if e.opts.Directory == "" {
		return fmt.Errorf("engine: directory not configured")
	}
	return os.MkdirAll(e.opts.Directory, 0750)
}

// Dispose cancels timers, runs one final flush, and marks the engine
// uninitialized. Safe to call once after Init.
func (e *Engine) Dispose() error {
	e.initLock.Lock()
	defer e.initLock.Unlock()

	if !e.initialized {
		return nil
	}

	if e.flushTicker != nil {
		e.flushTicker.Stop()
	}
	if e.retentionTimer != nil {
		e.retentionTimer.Stop()
	}
	if e.stopTimers != nil {
		close(e.stopTimers)
	}

	err := e.flush(true)

	if e.encryptor != nil {
		e.encryptor.Dispose()
	}

	e.initialized = false
	return err
}

// SetSensitiveMode toggles the runtime flag that silently drops all
// ingress until cleared (spec.md §3).
func (e *Engine) SetSensitiveMode(on bool) {
	e.sensitiveMode.Store(on)
}

// SetActiveMinLevel overrides the configured minimum level at runtime.
func (e *Engine) SetActiveMinLevel(level record.Level) {
	e.activeMinLevel.Store(int64(level))
}

// SessionID returns the identifier assigned at the last successful Init.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// AddRuntimePattern appends a redaction pattern that applies in addition
// to the configured set, bounded to maxRuntimePatterns (oldest evicted),
// per spec.md §4.7 step 4.
func (e *Engine) AddRuntimePattern(p redact.Pattern) {
	e.runtimePatternsMu.Lock()
	defer e.runtimePatternsMu.Unlock()
	e.runtimePatterns = append(e.runtimePatterns, p)
	if len(e.runtimePatterns) > maxRuntimePatterns {
		e.runtimePatterns = e.runtimePatterns[len(e.runtimePatterns)-maxRuntimePatterns:]
	}
}

func (e *Engine) effectivePatterns() []redact.Pattern {
	var configured []redact.Pattern
	if e.redactor != nil {
		configured = e.redactor.Patterns()
	}
	e.runtimePatternsMu.Lock()
	defer e.runtimePatternsMu.Unlock()
	if len(e.runtimePatterns) == 0 {
		return configured
	}
	out := make([]redact.Pattern, 0, len(configured)+len(e.runtimePatterns))
	out = append(out, configured...)
	out = append(out, e.runtimePatterns...)
	return out
}

func (e *Engine) periodicFlushLoop() {
	for {
		select {
		case <-e.flushTicker.C:
			_ = e.flush(false)
		case <-e.stopTimers:
			return
		}
	}
}

func newSessionID() (string, error) {
	return "sess_" + strconv.FormatInt(time.Now().UnixMilli(), 36), nil
}
