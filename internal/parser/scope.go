package parser

// scope - множество известных локальных переменных. Ruby различает
// `x -1` (x - переменная, бинарный минус) и `foo -1` (вызов с аргументом)
// только по тому, было ли x присвоено раньше.
type scope struct {
	vars   map[string]struct{}
	parent *scope
	hard   bool // def/class/module не видят внешних переменных
}

func newScope(parent *scope, hard bool) *scope {
	return &scope{vars: map[string]struct{}{}, parent: parent, hard: hard}
}

func (s *scope) declare(name string) {
	s.vars[name] = struct{}{}
}

func (s *scope) isLocal(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			return true
		}
		if cur.hard {
			return false
		}
	}
	return false
}

// push открывает новую область видимости; вызывать через defer.
func (p *Parser) push(hard bool) func() {
	outer := p.scope
	p.scope = newScope(outer, hard)
	return func() { p.scope = outer }
}
