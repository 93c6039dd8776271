package ast

// Call - вызов метода. Recv == nil для вызова без получателя.
// yield, super, defined? и undef тоже представлены вызовами.
type Call struct {
	Pos
	Recv  Node
	Op    string // "." "&." "::" или "" без получателя
	Name  string
	Args  []Node
	Paren bool // аргументы в скобках, включая пустые ()
	Block *Block
	// DotLine - строка оператора Op, нужна для цепочек с точкой в начале строки.
	DotLine int
}

// Command reports whether arguments are written without parentheses.
func (c *Call) Command() bool { return !c.Paren && len(c.Args) > 0 }

// Index - recv[args].
type Index struct {
	Pos
	Recv Node
	Args []Node
}

// Block - `{ |x| ... }` или `do |x| ... end`.
type Block struct {
	Pos
	Brace  bool
	Params *Params
	Body   *Begin
}

// Lambda - ->(x) { ... } / -> do ... end.
type Lambda struct {
	Pos
	Params *Params
	Brace  bool
	Body   *Begin
}

type ParamKind uint8

const (
	ParamReq ParamKind = iota
	ParamOpt
	ParamRest
	ParamKey // key: или key: default
	ParamKwRest
	ParamNoKw // **nil
	ParamBlock
	ParamForward // ...
	ParamDestructure
)

// Param - один параметр def/блока/лямбды.
type Param struct {
	Pos
	Kind    ParamKind
	Name    string // для ParamKey вместе с двоеточием
	Default Node
	Sub     *Params
}

type Params struct {
	Pos
	List []*Param
}

// Len is nil-safe.
func (ps *Params) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.List)
}

func (*Call) node()   {}
func (*Index) node()  {}
func (*Block) node()  {}
func (*Lambda) node() {}
func (*Param) node()  {}
func (*Params) node() {}
