package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory. Nothing is written until
// Dump; a hanging or failing run can then be inspected after the fact.
type RingTracer struct {
	mu     sync.Mutex
	buf    []Event
	next   int // slot for the next event
	stored int // min(total emitted, len(buf))
	level  Level
}

// NewRingTracer creates a ring of the given capacity (4096 when <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	if t.stored < len(t.buf) {
		t.stored++
	}
	t.mu.Unlock()
}

// Len is the number of events currently held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stored
}

// Snapshot returns the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.stored)
	start := t.next - t.stored
	if start < 0 {
		out = append(out, t.buf[len(t.buf)+start:]...)
		start = 0
	}
	return append(out, t.buf[start:t.next]...)
}

// FileEvents returns the events of the spans tagged with path and of
// everything nested under them. Span tags are only known at span end, so a
// span still open when the snapshot is taken is missed.
func (t *RingTracer) FileEvents(path string) []Event {
	events := t.Snapshot()
	spans := make(map[uint64]bool)
	for i := range events {
		if events[i].Kind == KindSpanEnd && events[i].Extra["path"] == path {
			spans[events[i].SpanID] = true
		}
	}
	if len(spans) == 0 {
		return nil
	}
	// children end before their parent, so walk backwards
	for i := len(events) - 1; i >= 0; i-- {
		ev := &events[i]
		if ev.SpanID != 0 && spans[ev.ParentID] {
			spans[ev.SpanID] = true
		}
	}
	var out []Event
	for i := range events {
		ev := &events[i]
		if spans[ev.SpanID] || (ev.Kind == KindPoint && spans[ev.ParentID]) {
			out = append(out, *ev)
		}
	}
	return out
}

// Dump writes the held events in the given format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return WriteEvents(w, t.Snapshot(), format)
}

// WriteEvents formats events one per line.
func WriteEvents(w io.Writer, events []Event, format Format) error {
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// RingOf finds the ring behind t: t itself or a MultiTracer child.
func RingOf(t Tracer) *RingTracer {
	switch t := t.(type) {
	case *RingTracer:
		return t
	case *MultiTracer:
		return t.Ring()
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
