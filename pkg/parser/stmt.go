package parser

import (
	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

type stmtNode = cabs.Node[cabs.Statement]

func stmt(s cabs.Statement, sp span.Span) stmtNode {
	return span.NewNode(s, sp)
}

func (p *parser[N]) statement() (stmtNode, bool) {
	start := p.start()
	switch p.word() {
	case "case", "default":
		return p.labeledStatement()
	case "if":
		return p.scoped(p.ifStatement)
	case "switch":
		return p.scoped(p.switchStatement)
	case "while":
		return p.scoped(p.whileStatement)
	case "do":
		return p.scoped(p.doWhileStatement)
	case "for":
		return p.scoped(p.forStatement)
	case "goto":
		p.nextToken()
		id, ok := p.identifier()
		if !ok || !p.expect(lexer.TokenSemicolon) {
			return stmtNode{}, false
		}
		return stmt(cabs.GotoStatement[N]{Label: id}, p.span(start)), true
	case "continue", "break":
		brk := p.word() == "break"
		p.nextToken()
		if !p.expect(lexer.TokenSemicolon) {
			return stmtNode{}, false
		}
		if brk {
			return stmt(cabs.BreakStatement{}, p.span(start)), true
		}
		return stmt(cabs.ContinueStatement{}, p.span(start)), true
	case "return":
		p.nextToken()
		r := cabs.ReturnStatement{}
		if !p.curTokenIs(lexer.TokenSemicolon) {
			e, ok := p.expression()
			if !ok {
				return stmtNode{}, false
			}
			r.Expression = &e
		}
		if !p.expect(lexer.TokenSemicolon) {
			return stmtNode{}, false
		}
		return stmt(r, p.span(start)), true
	case "asm", "__asm", "__asm__":
		return p.asmStatement()
	}
	switch {
	case p.curTokenIs(lexer.TokenLBrace):
		return p.compoundStatement()
	case p.isIdentifier() && p.peekTokenIs(lexer.TokenColon):
		return p.labeledStatement()
	}
	return p.expressionStatement()
}

// scoped runs rule inside a fresh scope.
func (p *parser[N]) scoped(rule func() (stmtNode, bool)) (stmtNode, bool) {
	p.env.EnterScope()
	s, ok := rule()
	if ok {
		p.env.LeaveScope()
	}
	return s, ok
}

func (p *parser[N]) scopedStatement() (stmtNode, bool) {
	return p.scoped(p.statement)
}

func (p *parser[N]) expressionStatement() (stmtNode, bool) {
	start := p.start()
	s := cabs.ExpressionStatement{}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		e, ok := p.expression()
		if !ok {
			return stmtNode{}, false
		}
		s.Expression = &e
	}
	if !p.expect(lexer.TokenSemicolon) {
		return stmtNode{}, false
	}
	return stmt(s, p.span(start)), true
}

func (p *parser[N]) labeledStatement() (stmtNode, bool) {
	start := p.start()
	label, ok := p.label()
	if !ok {
		return stmtNode{}, false
	}
	if _, ok := p.attributes(); !ok {
		return stmtNode{}, false
	}
	s, ok := p.statement()
	if !ok {
		return stmtNode{}, false
	}
	return stmt(&cabs.LabeledStatement{Label: label, Statement: s}, p.span(start)), true
}

func (p *parser[N]) label() (cabs.Node[cabs.Label], bool) {
	start := p.start()
	var l cabs.Label
	switch {
	case p.isKeyword("default"):
		p.nextToken()
		l = cabs.DefaultLabel{}
	case p.isKeyword("case"):
		p.nextToken()
		low, ok := p.constantExpression()
		if !ok {
			return cabs.Node[cabs.Label]{}, false
		}
		l = cabs.CaseLabel{Expression: low}
		if p.env.GNU() && p.curTokenIs(lexer.TokenEllipsis) {
			p.nextToken()
			high, ok := p.constantExpression()
			if !ok {
				return cabs.Node[cabs.Label]{}, false
			}
			l = &cabs.CaseRange{Low: low, High: high}
		}
	default:
		id, ok := p.identifier()
		if !ok {
			return cabs.Node[cabs.Label]{}, false
		}
		l = id.Value
	}
	if !p.expect(lexer.TokenColon) {
		return cabs.Node[cabs.Label]{}, false
	}
	return span.NewNode(l, p.span(start)), true
}

// compoundStatement parses a braced block in its own scope.
func (p *parser[N]) compoundStatement() (stmtNode, bool) {
	start := p.start()
	if !p.expect(lexer.TokenLBrace) {
		return stmtNode{}, false
	}
	p.env.EnterScope()
	items := cabs.CompoundStatement{}
	for !p.curTokenIs(lexer.TokenRBrace) {
		item, ok := p.blockItem()
		if !ok {
			return stmtNode{}, false
		}
		items = append(items, item)
	}
	p.nextToken()
	p.env.LeaveScope()
	return stmt(items, p.span(start)), true
}

// blockItem tries a declaration before a statement, so that `T * x;`
// declares x when T names a type.
func (p *parser[N]) blockItem() (cabs.Node[cabs.BlockItem], bool) {
	if p.isKeyword("_Static_assert") {
		sa, ok := p.staticAssert()
		return span.NewNode[cabs.BlockItem](sa.Value, sa.Span), ok
	}
	if d, ok := attempt(p, p.declaration); ok {
		return span.NewNode[cabs.BlockItem](d.Value, d.Span), true
	}
	s, ok := p.statement()
	return span.NewNode[cabs.BlockItem](s.Value, s.Span), ok
}

func (p *parser[N]) parenExpression() (exprNode, bool) {
	if !p.expect(lexer.TokenLParen) {
		return exprNode{}, false
	}
	e, ok := p.expression()
	return e, ok && p.expect(lexer.TokenRParen)
}

func (p *parser[N]) ifStatement() (stmtNode, bool) {
	start := p.start()
	p.nextToken()
	cond, ok := p.parenExpression()
	if !ok {
		return stmtNode{}, false
	}
	then, ok := p.scopedStatement()
	if !ok {
		return stmtNode{}, false
	}
	s := &cabs.IfStatement{Condition: cond, Then: then}
	if p.isKeyword("else") {
		p.nextToken()
		els, ok := p.scopedStatement()
		if !ok {
			return stmtNode{}, false
		}
		s.Else = &els
	}
	return stmt(s, p.span(start)), true
}

func (p *parser[N]) switchStatement() (stmtNode, bool) {
	start := p.start()
	p.nextToken()
	e, ok := p.parenExpression()
	if !ok {
		return stmtNode{}, false
	}
	body, ok := p.scopedStatement()
	if !ok {
		return stmtNode{}, false
	}
	return stmt(&cabs.SwitchStatement{Expression: e, Statement: body}, p.span(start)), true
}

func (p *parser[N]) whileStatement() (stmtNode, bool) {
	start := p.start()
	p.nextToken()
	e, ok := p.parenExpression()
	if !ok {
		return stmtNode{}, false
	}
	body, ok := p.scopedStatement()
	if !ok {
		return stmtNode{}, false
	}
	return stmt(&cabs.WhileStatement{Expression: e, Statement: body}, p.span(start)), true
}

func (p *parser[N]) doWhileStatement() (stmtNode, bool) {
	start := p.start()
	p.nextToken()
	body, ok := p.scopedStatement()
	if !ok || !p.keyword("while") {
		return stmtNode{}, false
	}
	e, ok := p.parenExpression()
	if !ok || !p.expect(lexer.TokenSemicolon) {
		return stmtNode{}, false
	}
	return stmt(&cabs.DoWhileStatement{Statement: body, Expression: e}, p.span(start)), true
}

func (p *parser[N]) forStatement() (stmtNode, bool) {
	start := p.start()
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return stmtNode{}, false
	}
	init, ok := p.forInitializer()
	if !ok {
		return stmtNode{}, false
	}
	s := &cabs.ForStatement{Initializer: init}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		cond, ok := p.expression()
		if !ok {
			return stmtNode{}, false
		}
		s.Condition = &cond
	}
	if !p.expect(lexer.TokenSemicolon) {
		return stmtNode{}, false
	}
	if !p.curTokenIs(lexer.TokenRParen) {
		step, ok := p.expression()
		if !ok {
			return stmtNode{}, false
		}
		s.Step = &step
	}
	if !p.expect(lexer.TokenRParen) {
		return stmtNode{}, false
	}
	if s.Statement, ok = p.scopedStatement(); !ok {
		return stmtNode{}, false
	}
	return stmt(s, p.span(start)), true
}

// forInitializer parses the first clause of a for statement, including
// its terminating semicolon.
func (p *parser[N]) forInitializer() (cabs.Node[cabs.ForInitializer], bool) {
	start := p.start()
	switch {
	case p.curTokenIs(lexer.TokenSemicolon):
		p.nextToken()
		return span.NewNode[cabs.ForInitializer](cabs.ForEmpty{}, span.New(start, start)), true
	case p.isKeyword("_Static_assert"):
		sa, ok := p.staticAssert()
		return span.NewNode[cabs.ForInitializer](sa.Value, sa.Span), ok
	}
	if d, ok := attempt(p, p.declaration); ok {
		return span.NewNode[cabs.ForInitializer](d.Value, d.Span), true
	}
	e, ok := p.expression()
	if !ok || !p.expect(lexer.TokenSemicolon) {
		return cabs.Node[cabs.ForInitializer]{}, false
	}
	return span.NewNode[cabs.ForInitializer](cabs.ForExpression{Expression: e}, e.Span), true
}
