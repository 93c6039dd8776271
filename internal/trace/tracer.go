package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer receives trace events. Emit must be goroutine-safe: files are
// formatted in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on exit
	ModeBoth
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(s)
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto picks by OutputPath extension
	Output     io.Writer     // stream output; OutputPath is used when nil
	OutputPath string        // "-" or "" is stderr
	RingSize   int           // default 4096
	Heartbeat  time.Duration // interval, 0 = off
}

// New builds the tracer for cfg; LevelOff gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	format := cfg.Format.ForPath(cfg.OutputPath)

	stream := func() (Tracer, error) {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamTracer(w, cfg.Level, format), nil
	}
	switch cfg.Mode {
	case ModeStream:
		return stream()
	case ModeRing:
		// the ring is written to OutputPath by whoever owns it, at exit
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		s, err := stream()
		if err != nil {
			return nil, err
		}
		return NewMultiTracer(cfg.Level, s, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

// fileOutput buffers writes to a trace file; Flush pushes them out.
type fileOutput struct {
	*bufio.Writer
	f *os.File
}

func (o *fileOutput) Close() error {
	if err := o.Flush(); err != nil {
		_ = o.f.Close()
		return err
	}
	return o.f.Close()
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath) // #nosec G304 -- path is a CLI flag
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return &fileOutput{Writer: bufio.NewWriter(f), f: f}, nil
}

func isStdStream(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}
