package driver

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

type diffLine struct {
	op   diffpatch.Operation
	text string // без '\n'
	old  int    // номер строки в старом тексте (1-based), 0 для вставок
	new  int
}

// UnifiedDiff renders a unified diff of before and after; "" when they are
// equal.
func UnifiedDiff(path string, before, after []byte, colorize bool) string {
	if string(before) == string(after) {
		return ""
	}
	lines := lineDiff(string(before), string(after))

	pal := newDiffPalette(colorize)
	var b strings.Builder
	b.WriteString(pal.header.Sprintf("--- a/%s", path))
	b.WriteByte('\n')
	b.WriteString(pal.header.Sprintf("+++ b/%s", path))
	b.WriteByte('\n')

	for _, h := range hunks(lines, diffContext) {
		writeHunk(&b, lines[h[0]:h[1]], pal)
	}
	return b.String()
}

func lineDiff(before, after string) []diffLine {
	dmp := diffpatch.New()
	a, bb, arr := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, bb, false), arr)

	var out []diffLine
	oldN, newN := 0, 0
	for _, d := range diffs {
		for _, text := range splitKeepLast(d.Text) {
			l := diffLine{op: d.Type, text: text}
			switch d.Type {
			case diffpatch.DiffEqual:
				oldN++
				newN++
				l.old, l.new = oldN, newN
			case diffpatch.DiffDelete:
				oldN++
				l.old = oldN
			case diffpatch.DiffInsert:
				newN++
				l.new = newN
			}
			out = append(out, l)
		}
	}
	return out
}

// splitKeepLast splits on '\n'; a final line without newline is kept.
func splitKeepLast(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// hunks returns [start, end) ranges of lines, each a run of changes padded
// with ctx equal lines; ranges closer than 2*ctx are merged.
func hunks(lines []diffLine, ctx int) [][2]int {
	var out [][2]int
	for i, l := range lines {
		if l.op == diffpatch.DiffEqual {
			continue
		}
		start := max(i-ctx, 0)
		end := min(i+ctx+1, len(lines))
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func writeHunk(b *strings.Builder, lines []diffLine, pal diffPalette) {
	oldStart, newStart, oldCount, newCount := 0, 0, 0, 0
	for _, l := range lines {
		if l.old > 0 {
			if oldStart == 0 {
				oldStart = l.old
			}
			oldCount++
		}
		if l.new > 0 {
			if newStart == 0 {
				newStart = l.new
			}
			newCount++
		}
	}
	b.WriteString(pal.hunk.Sprintf("@@ -%s +%s @@", hunkRange(oldStart, oldCount), hunkRange(newStart, newCount)))
	b.WriteByte('\n')
	for _, l := range lines {
		switch l.op {
		case diffpatch.DiffDelete:
			b.WriteString(pal.del.Sprint("-" + l.text))
		case diffpatch.DiffInsert:
			b.WriteString(pal.ins.Sprint("+" + l.text))
		default:
			b.WriteString(" " + l.text)
		}
		b.WriteByte('\n')
	}
}

func hunkRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

type diffPalette struct {
	header *color.Color
	hunk   *color.Color
	del    *color.Color
	ins    *color.Color
}

func newDiffPalette(enabled bool) diffPalette {
	p := diffPalette{
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		del:    color.New(color.FgRed),
		ins:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.del, p.ins} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
