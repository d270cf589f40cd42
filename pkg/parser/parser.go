// Package parser implements a backtracking recursive descent parser for
// preprocessed C11 with GNU and Clang extensions.
//
// C cannot be parsed without knowing which identifiers name types, so
// every entry point takes a symbol environment. The parser consults it at
// each identifier and records the names declared along the way. When an
// alternative fails, the environment is rolled back to the state it had
// before the alternative was tried.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

// SyntaxError reports the furthest position the parser reached and the
// tokens it would have accepted there.
type SyntaxError struct {
	Offset   int
	Line     int
	Column   int
	Expected []string
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "unexpected token at line %d column %d", e.Line, e.Column)
	if len(e.Expected) > 0 {
		quoted := make([]string, len(e.Expected))
		for i, name := range e.Expected {
			quoted[i] = "'" + name + "'"
		}
		sb.WriteString(", expected ")
		sb.WriteString(strings.Join(quoted, ", "))
	}
	return sb.String()
}

// parser holds the token stream and the furthest failure seen so far.
type parser[N cabs.Name] struct {
	tokens []lexer.Token
	pos    int
	env    *env.Env[N]
	names  cabs.Interner[N]

	farthest int
	expected map[string]struct{}
}

func newParser[N cabs.Name](input string, e *env.Env[N]) *parser[N] {
	return &parser[N]{
		tokens:   lexer.Tokenize(input),
		env:      e,
		names:    e.Names(),
		expected: make(map[string]struct{}),
	}
}

// run applies rule to the whole input. The environment keeps the changes
// made by a successful parse and is left untouched by a failed one.
func run[N cabs.Name, T any](input string, e *env.Env[N], rule func(*parser[N]) (T, bool)) (T, error) {
	p := newParser(input, e)
	m := e.Checkpoint()
	v, ok := rule(p)
	if ok && !p.curTokenIs(lexer.TokenEOF) {
		p.fail("<end of input>")
		ok = false
	}
	if !ok {
		e.Rollback(m)
		var zero T
		return zero, p.syntaxError()
	}
	e.Commit(m)
	return v, nil
}

// Constant parses a single integer, floating or character constant.
func Constant[N cabs.Name](input string, e *env.Env[N]) (cabs.Node[cabs.Constant], error) {
	return run(input, e, (*parser[N]).constant)
}

// Expression parses an expression, including the comma operator.
func Expression[N cabs.Name](input string, e *env.Env[N]) (cabs.Node[cabs.Expression], error) {
	return run(input, e, (*parser[N]).expression)
}

// Declaration parses one declaration and registers the names it declares.
func Declaration[N cabs.Name](input string, e *env.Env[N]) (cabs.Node[*cabs.Declaration[N]], error) {
	return run(input, e, (*parser[N]).declaration)
}

// Statement parses one statement.
func Statement[N cabs.Name](input string, e *env.Env[N]) (cabs.Node[cabs.Statement], error) {
	return run(input, e, (*parser[N]).statement)
}

// TranslationUnit parses a whole preprocessed file. Names declared at file
// scope are dropped from the environment when the parse ends.
func TranslationUnit[N cabs.Name](input string, e *env.Env[N]) (cabs.Node[cabs.TranslationUnit], error) {
	return run(input, e, (*parser[N]).translationUnit)
}

func (p *parser[N]) syntaxError() *SyntaxError {
	tok := p.tokens[p.farthest]
	expected := make([]string, 0, len(p.expected))
	for name := range p.expected {
		expected = append(expected, name)
	}
	sort.Strings(expected)
	return &SyntaxError{
		Offset:   tok.Pos,
		Line:     tok.Line,
		Column:   tok.Column,
		Expected: expected,
	}
}

// fail records that name was expected at the current token. Only the
// failures at the furthest token are kept.
func (p *parser[N]) fail(name string) {
	switch {
	case p.pos > p.farthest:
		p.farthest = p.pos
		p.expected = map[string]struct{}{name: {}}
	case p.pos == p.farthest:
		p.expected[name] = struct{}{}
	}
}

// attempt runs rule speculatively. On failure the token position and the
// environment are restored.
func attempt[N cabs.Name, T any](p *parser[N], rule func() (T, bool)) (T, bool) {
	pos := p.pos
	m := p.env.Checkpoint()
	v, ok := rule()
	if ok {
		p.env.Commit(m)
		return v, true
	}
	p.pos = pos
	p.env.Rollback(m)
	var zero T
	return zero, false
}

func (p *parser[N]) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser[N]) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser[N]) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *parser[N]) curTokenIs(t lexer.TokenType) bool {
	return p.cur().Type == t
}

func (p *parser[N]) peekTokenIs(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *parser[N]) expect(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.fail(t.String())
	return false
}

// start returns the offset of the current token.
func (p *parser[N]) start() int {
	return p.cur().Pos
}

// span returns the range from start to the end of the last consumed token.
func (p *parser[N]) span(start int) span.Span {
	end := start
	if p.pos > 0 {
		end = max(p.tokens[p.pos-1].End, start)
	}
	return span.New(start, end)
}

// word returns the current token's text if it is a keyword of the active
// flavor.
func (p *parser[N]) word() string {
	tok := p.cur()
	if tok.Type == lexer.TokenIdent && p.env.IsReserved(tok.Literal) {
		return tok.Literal
	}
	return ""
}

func (p *parser[N]) isKeyword(words ...string) bool {
	w := p.word()
	if w == "" {
		return false
	}
	for _, k := range words {
		if w == k {
			return true
		}
	}
	return false
}

// keyword consumes one of words or records the first as expected.
func (p *parser[N]) keyword(words ...string) bool {
	if p.isKeyword(words...) {
		p.nextToken()
		return true
	}
	p.fail(words[0])
	return false
}

func (p *parser[N]) isIdentifier() bool {
	tok := p.cur()
	return tok.Type == lexer.TokenIdent && !p.env.IsReserved(tok.Literal)
}

func (p *parser[N]) identifier() (cabs.Node[cabs.Identifier[N]], bool) {
	if !p.isIdentifier() {
		p.fail("<identifier>")
		return cabs.Node[cabs.Identifier[N]]{}, false
	}
	tok := p.cur()
	p.nextToken()
	id := cabs.Identifier[N]{Name: p.names.Intern(tok.Literal)}
	return span.NewNode(id, span.New(tok.Pos, tok.End)), true
}

func (p *parser[N]) isTypename() bool {
	return p.isIdentifier() && p.env.IsTypename(p.names.Intern(p.cur().Literal))
}

// gnuExtension skips any __extension__ markers.
func (p *parser[N]) gnuExtension() {
	for p.isKeyword("__extension__") {
		p.nextToken()
	}
}
