package format

// Delims are the open/close strings of a breakable in each layout.
// Inline groups put their first element right after the opener.
type Delims struct {
	Name        string
	SingleOpen  string
	SingleClose string
	MultiOpen   string
	MultiClose  string
	Inline      bool
}

func (d Delims) open(multi bool) string {
	if multi {
		return d.MultiOpen
	}
	return d.SingleOpen
}

func (d Delims) close(multi bool) string {
	if multi {
		return d.MultiClose
	}
	return d.SingleClose
}

var (
	// MethodCallDelims: foo(a, b).
	MethodCallDelims = Delims{Name: "call", SingleOpen: "(", SingleClose: ")", MultiOpen: "(", MultiClose: ")"}
	// ArrayDelims: [a, b].
	ArrayDelims = Delims{Name: "array", SingleOpen: "[", SingleClose: "]", MultiOpen: "[", MultiClose: "]"}
	// HashDelims: { a: 1 } в строку, фигурные скобки на своих строках иначе.
	HashDelims = Delims{Name: "hash", SingleOpen: "{ ", SingleClose: " }", MultiOpen: "{", MultiClose: "}"}
	// BraceBlockDelims: foo { |x| x } / foo { |x|\n  x\n}.
	BraceBlockDelims = Delims{Name: "brace-block", SingleOpen: "{", SingleClose: " }", MultiOpen: "{", MultiClose: "}", Inline: true}
	// BlockParamsDelims: |a, b|.
	BlockParamsDelims = Delims{Name: "block-params", SingleOpen: "|", SingleClose: "|", MultiOpen: "|", MultiClose: "|", Inline: true}
	// DefParamsDelims: def foo(a, b).
	DefParamsDelims = Delims{Name: "def-params", SingleOpen: "(", SingleClose: ")", MultiOpen: "(", MultiClose: ")"}
	// CommandArgsDelims: `puts a, b`, при переносе аргументы берутся в скобки.
	CommandArgsDelims = Delims{Name: "command", SingleOpen: " ", SingleClose: "", MultiOpen: "(", MultiClose: ")"}
	// ReturnDelims: `return a, b` / `return [\n  a,\n  b\n]`.
	ReturnDelims = Delims{Name: "return", SingleOpen: " ", SingleClose: "", MultiOpen: " [", MultiClose: "]"}
	// WhenDelims: условия `when a, b`.
	WhenDelims = Delims{Name: "when", Inline: true}
	// RescueDelims: классы `rescue A, B`.
	RescueDelims = Delims{Name: "rescue", Inline: true}
)
