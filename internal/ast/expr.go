package ast

// ArrayLit - [a, b]. Bracketed == false для правой части `a, b = 1, 2`.
type ArrayLit struct {
	Pos
	Elems     []Node
	Bracketed bool
}

// HashLit - { a: 1, "b" => 2 }.
type HashLit struct {
	Pos
	Pairs []Node
}

// Pair - элемент хеша или именованный аргумент.
// Label непуст для формы `key: value` (вместе с двоеточием), иначе Key => Value.
// Value == nil для сокращённой формы `{ x: }`.
type Pair struct {
	Pos
	Label string
	Key   Node
	Value Node
}

// Splat - *x, **x или &x. Value может быть nil (анонимные `*`, `**`, `&`).
type Splat struct {
	Pos
	Op    string
	Value Node
}

// Range - a..b, a...b; любая сторона может отсутствовать.
type Range struct {
	Pos
	Lo, Hi Node
	Op     string
}

// Unary - !x, -x, +x, ~x, not x.
type Unary struct {
	Pos
	Op      string
	Operand Node
}

// Binary - инфиксный оператор, включая && || and or.
type Binary struct {
	Pos
	Op          string
	Left, Right Node
	OpLine      int
}

// Ternary - c ? a : b.
type Ternary struct {
	Pos
	Cond, Then, Else Node
}

// Assign - x = v, x += v, a.b ||= v, a[i] = v.
type Assign struct {
	Pos
	Target Node
	Op     string
	Value  Node
}

// MultiAssign - a, *b = v.
type MultiAssign struct {
	Pos
	Targets []Node
	Value   Node
}

// Paren - (expr), (a; b) или ().
type Paren struct {
	Pos
	Stmts []Node
}

func (*ArrayLit) node()    {}
func (*HashLit) node()     {}
func (*Pair) node()        {}
func (*Splat) node()       {}
func (*Range) node()       {}
func (*Unary) node()       {}
func (*Binary) node()      {}
func (*Ternary) node()     {}
func (*Assign) node()      {}
func (*MultiAssign) node() {}
func (*Paren) node()       {}
