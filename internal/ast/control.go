package ast

// If - if/unless/elsif. Else - *If (elsif) или *Body.
type If struct {
	Pos
	Kw       string
	Cond     Node
	Then     *Body
	Else     Node
	ElseLine int
}

// Modifier - `body if cond`, а также unless/while/until/rescue.
type Modifier struct {
	Pos
	Kw   string
	Body Node
	Cond Node
}

// While - while/until.
type While struct {
	Pos
	Kw   string
	Cond Node
	Body *Body
}

type For struct {
	Pos
	Vars []Node
	Iter Node
	Body *Body
}

type Case struct {
	Pos
	Subject  Node
	Whens    []*When
	Else     *Body
	ElseLine int
}

type When struct {
	Pos
	Conds []Node
	Body  *Body
}

// Def - определение метода; Singleton != nil для `def self.x`.
type Def struct {
	Pos
	Singleton Node
	Name      string
	Params    *Params
	Body      *Begin
}

type Class struct {
	Pos
	Path  Node
	Super Node
	Body  *Begin
}

// SClass - class << target.
type SClass struct {
	Pos
	Target Node
	Body   *Begin
}

type Module struct {
	Pos
	Path Node
	Body *Begin
}

// Jump - return/break/next с необязательными аргументами.
type Jump struct {
	Pos
	Kw   string
	Args []Node
}

// Alias - alias new old.
type Alias struct {
	Pos
	New, Old Node
}

func (*If) node()       {}
func (*Modifier) node() {}
func (*While) node()    {}
func (*For) node()      {}
func (*Case) node()     {}
func (*When) node()     {}
func (*Def) node()      {}
func (*Class) node()    {}
func (*SClass) node()   {}
func (*Module) node()   {}
func (*Jump) node()     {}
func (*Alias) node()    {}
