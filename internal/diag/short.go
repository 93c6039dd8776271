package diag

import (
	"fmt"
	"sort"
	"strings"

	"rbfmt/internal/source"
)

// FormatShort renders one line per diagnostic: "error SYN2001 path:line:col message".
// The output is sorted and stable, which makes it usable in golden tests.
func FormatShort(items []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(items) == 0 {
		return ""
	}
	type row struct {
		path      string
		line, col uint32
		sev, code string
		msg       string
	}
	rows := make([]row, 0, len(items))
	for _, d := range items {
		f := fs.Get(d.Primary.File)
		pos := f.Position(d.Primary.Start)
		rows = append(rows, row{
			path: f.Path, line: pos.Line, col: pos.Col,
			sev: strings.ToLower(d.Severity.String()), code: d.Code.ID(),
			msg: sanitizeMessage(d.Message),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].path != rows[j].path {
			return rows[i].path < rows[j].path
		}
		if rows[i].line != rows[j].line {
			return rows[i].line < rows[j].line
		}
		return rows[i].col < rows[j].col
	})
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", r.sev, r.code, r.path, r.line, r.col, r.msg)
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
