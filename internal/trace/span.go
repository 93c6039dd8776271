package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

var (
	globalSeq   uint64
	globalSpans uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return atomic.AddUint64(&globalSpans, 1)
}

// getGoroutineID extracts the current goroutine ID from runtime.Stack:
// "goroutine 123 [running]:\n...".
func getGoroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	gid, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// open tracks file spans that have begun and not ended; Heartbeat reports
// them so a file stuck in the resolution pass can be named.
var open struct {
	mu    sync.Mutex
	files map[uint64]string
}

func trackOpen(id uint64, label string) {
	open.mu.Lock()
	defer open.mu.Unlock()
	if open.files == nil {
		open.files = make(map[uint64]string)
	}
	open.files[id] = label
}

// relabelOpen changes the label of a span that is still open.
func relabelOpen(id uint64, label string) {
	open.mu.Lock()
	defer open.mu.Unlock()
	if _, ok := open.files[id]; ok {
		open.files[id] = label
	}
}

func untrackOpen(id uint64) {
	open.mu.Lock()
	defer open.mu.Unlock()
	delete(open.files, id)
}

// OpenFiles returns labels of file spans still running, oldest first.
func OpenFiles() []string {
	open.mu.Lock()
	defer open.mu.Unlock()
	ids := make([]uint64, 0, len(open.files))
	for id := range open.files {
		ids = append(ids, id)
	}
	// id растут монотонно, значит меньший id открыт раньше
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = open.files[id]
	}
	return out
}

// Span is one begin/end pair. A disabled span is a no-op on every method.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a new span and emits SpanBegin event.
// parent is the parent span ID (0 if root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}

	id := NextSpanID()
	gid := getGoroutineID()
	now := time.Now()
	t.Emit(&Event{
		Time:     now,
		Seq:      NextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   id,
		ParentID: parent,
		GID:      gid,
		Name:     name,
	})
	if scope == ScopeFile {
		trackOpen(id, name)
	}
	return &Span{
		tracer:   t,
		id:       id,
		parentID: parent,
		gid:      gid,
		scope:    scope,
		name:     name,
		started:  now,
	}
}

// Start begins a span under the span carried by ctx and returns a context
// carrying the new one.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	span := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx).SpanID)
	if span.ID() == 0 {
		return ctx, span
	}
	return WithSpanContext(ctx, SpanContext{SpanID: span.ID(), GID: span.gid}), span
}

// End emits SpanEnd event and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	if s.scope == ScopeFile {
		untrackOpen(s.id)
	}

	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return dur
}

// EndErr ends the span with the error text as detail, or ok.
func (s *Span) EndErr(err error) time.Duration {
	if err != nil {
		return s.End("error: " + err.Error())
	}
	return s.End("ok")
}

// WithExtra adds a key-value pair to the end event.
// Returns the span for method chaining.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	if key == "path" && s.scope == ScopeFile {
		relabelOpen(s.id, s.name+" "+value)
	}
	return s
}

// ID returns the span ID; 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
