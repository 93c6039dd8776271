package parser

import (
	"slices"

	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/lexer"
	"rbfmt/internal/source"
	"rbfmt/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Program
	Bag     *diag.Bag
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	last     token.Token // последний съеденный токен
	lastSpan source.Span
	scope    *scope

	// cmdArgs > 0 - разбираем аргументы команды без скобок: `do` принадлежит
	// внешнему вызову. noDo > 0 - условие while/until/for, где `do` - часть цикла.
	cmdArgs int
	noDo    int
	// noPipe - значение по умолчанию параметра блока: '|' закрывает список.
	noPipe bool
}

// ParseFile - входная точка для разбора одного файла.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:    lx,
		opts:  opts,
		scope: newScope(nil, true),
	}
	prog := p.parseProgram()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Program: prog, Bag: bag}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// advance - съедает следующий токен и обновляет last
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.last = tok
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan(), Text: p.peek().Text}, false
}

// diagSpan - для EOF указываем на конец последнего токена
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// unexpected репортует текущий токен как неожиданный.
func (p *Parser) unexpected(where string) {
	tok := p.peek()
	text := tok.Text
	if tok.Kind == token.EOF {
		text = "end of file"
	} else if tok.Kind == token.Newline {
		text = "newline"
	}
	p.err(diag.SynUnexpectedToken, "unexpected "+quote(text)+" "+where)
}

func quote(s string) string {
	return "'" + s + "'"
}

// resyncStatement прокручивает до конца инструкции. Терминаторы блоков
// (end, }, ) ...) не съедаются: их ждёт внешний разбор.
func (p *Parser) resyncStatement() {
	for {
		switch p.peek().Kind {
		case token.EOF, token.Newline, token.Semicolon, token.DataSection:
			return
		}
		if isBodyTerminator(p.peek().Kind) {
			return
		}
		p.advance()
	}
}

// pos строит позицию от стартовой строки до последнего съеденного токена.
func (p *Parser) pos(line int) ast.Pos {
	end := p.last.EndLine
	if end < line {
		end = line
	}
	return ast.Pos{Line: line, EndLine: end}
}

// nested сбрасывает контекст команды внутри скобок; вызывать через defer.
func (p *Parser) nested() func() {
	cmd, noDo, noPipe := p.cmdArgs, p.noDo, p.noPipe
	p.cmdArgs, p.noDo, p.noPipe = 0, 0, false
	return func() {
		p.cmdArgs, p.noDo, p.noPipe = cmd, noDo, noPipe
	}
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}
