package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestChannelSinkForwards(t *testing.T) {
	ch := make(chan Event, 4)
	sink := ChannelSink{Ch: ch}
	EmitQueued(sink, []string{"a.rb", "b.rb"})
	boom := errors.New("boom")
	Emit(sink, "a.rb", StageFormat, StatusError, boom, time.Millisecond)
	close(ch)

	var got []Event
	for ev := range ch {
		got = append(got, ev)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 events, got %d", len(got))
	}
	if got[0].Status != StatusQueued || got[1].File != "b.rb" {
		t.Fatalf("unexpected queued events: %+v", got[:2])
	}
	if !errors.Is(got[2].Err, boom) || got[2].Stage != StageFormat {
		t.Fatalf("unexpected last event: %+v", got[2])
	}
}

func TestEmitResultCarriesOutcome(t *testing.T) {
	ch := make(chan Event, 1)
	EmitResult(ChannelSink{Ch: ch}, "a.rb", OutcomeChanged, true, time.Millisecond)
	ev := <-ch
	if ev.Status != StatusDone || ev.Outcome != OutcomeChanged || !ev.Cached {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestNilSinkIsIgnored(t *testing.T) {
	EmitQueued(nil, []string{"a.rb"})
	Emit(nil, "", StageDiscover, StatusDone, nil, 0)
	EmitResult(nil, "a.rb", OutcomeUnchanged, false, 0)
	ChannelSink{}.OnEvent(Event{})
}

func TestTimingsAccumulate(t *testing.T) {
	var tm Timings
	tm.Add(StageFormat, 2*time.Millisecond)
	tm.Add(StageFormat, 3*time.Millisecond)
	tm.Add(StageWrite, time.Millisecond)
	if !tm.Has(StageFormat) || tm.Has(StageVerify) {
		t.Fatalf("Has mismatch")
	}
	if got := tm.Duration(StageFormat); got != 5*time.Millisecond {
		t.Fatalf("format: want 5ms, got %v", got)
	}
	if got := tm.Sum(StageFormat, StageWrite); got != 6*time.Millisecond {
		t.Fatalf("sum: want 6ms, got %v", got)
	}
}
