package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Record("discover", time.Millisecond, "3 files")
	tm.Accumulate("format", 2*time.Millisecond)
	tm.Accumulate("read", time.Millisecond)
	tm.Accumulate("format", 4*time.Millisecond)
	idx := tm.Begin("report")
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	var names []string
	for _, p := range rep.Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "discover,format,read,report" {
		t.Fatalf("phases: %s", got)
	}
	format := rep.Phases[1]
	if !format.Summed || format.Samples != 2 || format.DurationMS != 6 {
		t.Fatalf("format phase: %+v", format)
	}
	// summed phases stay out of the total
	if rep.TotalMS < 1 || rep.TotalMS >= 7 {
		t.Fatalf("total: %v", rep.TotalMS)
	}
	sum := tm.Summary()
	for _, want := range []string{"// 3 files", "// sum of 2, avg 3.00 ms", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary has no %q:\n%s", want, sum)
		}
	}
}

func TestAccumulateConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Accumulate("format", time.Millisecond)
		}()
	}
	wg.Wait()
	if p := tm.Report().Phases; len(p) != 1 || p[0].Samples != 8 {
		t.Fatalf("phases: %+v", p)
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Fatalf("want empty report, got %+v", rep)
	}
}
