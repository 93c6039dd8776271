package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind enumerates stream tokens. Kinds before SoftNewline are concrete and
// render the same way everywhere; the rest are resolved by the enclosing
// breakable.
type Kind uint8

const (
	DirectPart Kind = iota
	Keyword
	Indent
	Space
	Comma
	Delim
	HardNewline
	Comment         // целая строка комментария
	TrailingComment // комментарий после кода, рендерится как " " + Text
	Heredoc         // тело и закрывающая строка heredoc'а
	Verbatim        // секция __END__, пишется как есть

	SoftNewline // "" в одну строку, "\n" в несколько
	SoftIndent  // "" / отступ
	CommaSpace  // ", " / ","
	BreakSpace  // " " / "\n"
	Breakable
)

var kindNames = [...]string{
	DirectPart:      "direct",
	Keyword:         "keyword",
	Indent:          "indent",
	Space:           "space",
	Comma:           "comma",
	Delim:           "delim",
	HardNewline:     "newline",
	Comment:         "comment",
	TrailingComment: "trailing",
	Heredoc:         "heredoc",
	Verbatim:        "verbatim",
	SoftNewline:     "softnl",
	SoftIndent:      "softindent",
	CommaSpace:      "commaspace",
	BreakSpace:      "breakspace",
	Breakable:       "breakable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind?"
}

// Abstract reports whether the rendering depends on the enclosing breakable.
func (k Kind) Abstract() bool { return k >= SoftNewline }

// Role tags tokens for the blank-line rules of the intermediary.
type Role uint8

const (
	RoleNone Role = iota
	RoleOpener
	RoleContinuation
	RoleEnd
	RoleOpenDelim
	RoleCloseDelim
	RoleLeadingDot
)

// keywordRoles: ключевые слова, открывающие и продолжающие блоки.
// Модификаторы (`x if y`) идут через EmitModifierKeyword без роли.
var keywordRoles = map[string]Role{
	"def":    RoleOpener,
	"class":  RoleOpener,
	"module": RoleOpener,
	"if":     RoleOpener,
	"unless": RoleOpener,
	"while":  RoleOpener,
	"until":  RoleOpener,
	"case":   RoleOpener,
	"begin":  RoleOpener,
	"do":     RoleOpener,
	"for":    RoleOpener,
	"else":   RoleContinuation,
	"elsif":  RoleContinuation,
	"when":   RoleContinuation,
	"in":     RoleContinuation,
	"rescue": RoleContinuation,
	"ensure": RoleContinuation,
	"end":    RoleEnd,
}

// Token is one element of the stream.
type Token struct {
	Kind  Kind
	Text  string
	Depth int // Indent, SoftIndent
	Role  Role
	Raw   bool // Comment: строка =begin-блока, без отступа

	Entry    *BreakableEntry  // Breakable
	Heredocs []*HeredocString // SoftNewline: тела, начавшиеся до этого перевода строки
	Heredoc  *HeredocString   // Heredoc
	Bare     bool             // Heredoc: без завершающего перевода строки
}

func indentString(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("  ", depth)
}

// text renders a non-breakable token in the given mode.
func (t Token) text(multi bool) string {
	switch t.Kind {
	case Indent:
		return indentString(t.Depth)
	case Space:
		return " "
	case Comma:
		return ","
	case HardNewline:
		return "\n"
	case TrailingComment:
		return " " + t.Text
	case SoftNewline:
		if multi {
			return "\n"
		}
		return ""
	case SoftIndent:
		if multi {
			return indentString(t.Depth)
		}
		return ""
	case CommaSpace:
		if multi {
			return ","
		}
		return ", "
	case BreakSpace:
		if multi {
			return "\n"
		}
		return " "
	default:
		return t.Text
	}
}

// forcesBreak reports tokens that cannot be rendered inside one line.
func (t Token) forcesBreak() bool {
	switch t.Kind {
	case HardNewline, Comment, TrailingComment, Heredoc, Verbatim:
		return true
	case Breakable:
		return t.Entry.forcedBreak()
	}
	return false
}

// singleWidth - ширина токена в однострочном виде.
func (t Token) singleWidth() int {
	if t.Kind == Breakable {
		return t.Entry.singleWidth()
	}
	return runewidth.StringWidth(t.text(false))
}

// newlineLike: точки, после которых ShiftComments вставляет строки комментариев.
// BreakSpace считается переводом строки: вставленный комментарий всё равно
// делает группу многострочной.
func (t Token) newlineLike() bool {
	switch t.Kind {
	case HardNewline, SoftNewline, BreakSpace, Heredoc:
		return true
	}
	return false
}

// content reports tokens a trailing comment may follow.
func (t Token) content() bool {
	switch t.Kind {
	case SoftNewline, SoftIndent, HardNewline, Indent, Space, BreakSpace:
		return false
	case DirectPart:
		return t.Text != ""
	}
	return true
}

// commentLike reports tokens that end a line's code: nothing may follow
// them on that line.
func (t Token) commentLike() bool {
	switch t.Kind {
	case Comment, TrailingComment, Verbatim:
		return true
	}
	return false
}
