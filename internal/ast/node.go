package ast

import "rbfmt/internal/token"

// Pos - первая и последняя строка узла в исходнике (1-based).
// Для heredoc'а EndLine - строка открывающего маркера, тело учитывается отдельно.
type Pos struct {
	Line    int
	EndLine int
}

// Lines возвращает позицию узла.
func (p Pos) Lines() Pos { return p }

// Node - любой узел дерева.
type Node interface {
	Lines() Pos
	node()
}

// Program - корень дерева одного файла.
type Program struct {
	Pos
	Body *Body
	// Data - секция после __END__ целиком, вместе с маркером; "" если её нет.
	Data     string
	DataLine int
}

// Body - последовательность выражений-инструкций.
type Body struct {
	Pos
	Stmts []Node
}

// Empty reports whether the body has no statements.
func (b *Body) Empty() bool { return b == nil || len(b.Stmts) == 0 }

// Begin - тело с необязательными rescue/else/ensure.
// Explicit означает явный `begin ... end`; у def/class/do тело неявное.
type Begin struct {
	Pos
	Explicit   bool
	Body       *Body
	Rescues    []*Rescue
	Else       *Body
	ElseLine   int
	Ensure     *Body
	EnsureLine int
}

// Simple reports whether there is nothing besides the main body.
func (b *Begin) Simple() bool {
	return len(b.Rescues) == 0 && b.Else == nil && b.Ensure == nil
}

// Rescue - ветка `rescue A, B => e`.
type Rescue struct {
	Pos
	Classes []Node
	Var     Node
	Body    *Body
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitXString
	LitSymbol
	LitRegexp
	LitWords
	LitKeyword // nil, true, false, self, redo, retry, __method__ ...
)

// Literal хранит исходный текст литерала как есть.
type Literal struct {
	Pos
	Kind LitKind
	Text string
}

// Heredoc - `<<~ID` с отложенным телом.
type Heredoc struct {
	Pos
	Opener  string // <<~ID, <<-'ID', ...
	Kind    token.HeredocKind
	ID      string
	Body    string
	BodyEnd int // строка с закрывающим ID
}

// StrConcat - соседние строковые литералы: "a" "b", в том числе через `\`.
type StrConcat struct {
	Pos
	Parts []Node
}

// Ident - локальная переменная, вызов без аргументов, @ivar, @@cvar, $gvar или Const.
type Ident struct {
	Pos
	Name string
}

// Colon2 - Foo::Bar; Scope == nil для ::Foo.
type Colon2 struct {
	Pos
	Scope Node
	Name  string
}

func (*Program) node()   {}
func (*Body) node()      {}
func (*Begin) node()     {}
func (*Rescue) node()    {}
func (*Literal) node()   {}
func (*Heredoc) node()   {}
func (*StrConcat) node() {}
func (*Ident) node()     {}
func (*Colon2) node()    {}
