package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one line of the --timings table.
//
// A wall phase ran once on the main goroutine (discover, report). A summed
// phase adds up one stage over every file; with several workers its total
// can exceed the wall time of the run, so it is kept out of TotalMS.
type Phase struct {
	Name    string
	Start   time.Time
	Dur     time.Duration
	Note    string
	Samples int
	Summed  bool
}

// Timer collects the phases of an rbfmt run. Safe for concurrent use:
// workers call Accumulate in parallel.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	byName map[string]int // summed phases only
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), byName: make(map[string]int)}
}

// Begin starts a wall phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase started by Begin; unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) || t.phases[idx].Summed {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Record adds a wall phase measured elsewhere.
func (t *Timer) Record(name string, dur time.Duration, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note})
}

// Accumulate adds one sample to the summed phase name, creating it on first
// use. Phases keep the order of their first sample.
func (t *Timer) Accumulate(name string, dur time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, ok := t.byName[name]
	if !ok {
		idx = len(t.phases)
		t.byName[name] = idx
		t.phases = append(t.phases, Phase{Name: name, Summed: true})
	}
	t.phases[idx].Dur += dur
	t.phases[idx].Samples++
}

// Summary renders the table printed by --timings.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		note := p.Note
		if p.Summed {
			note = fmt.Sprintf("sum of %d, avg %.2f ms", p.Samples, p.DurationMS/float64(p.Samples))
		}
		if note != "" {
			b.WriteString("  // " + note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return b.String()
}

// PhaseReport - фаза в виде для сериализации.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
	Samples    int     `json:"samples,omitempty" yaml:"samples,omitempty"`
	Summed     bool    `json:"summed,omitempty" yaml:"summed,omitempty"`
}

// Report: TotalMS covers wall phases only.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		if !p.Summed {
			total += p.Dur
		}
		report.Phases[i] = PhaseReport{
			Name:       p.Name,
			DurationMS: durationToMillis(p.Dur),
			Note:       p.Note,
			Samples:    p.Samples,
			Summed:     p.Summed,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
