package parser

import (
	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

type derivedNode = cabs.Node[cabs.DerivedDeclarator]

func (p *parser[N]) declarator() (cabs.Node[*cabs.Declarator[N]], bool) {
	return p.declaratorOf(false)
}

// abstractDeclarator parses a declarator without a name. It must contain
// at least one pointer or suffix.
func (p *parser[N]) abstractDeclarator() (cabs.Node[*cabs.Declarator[N]], bool) {
	d, ok := p.declaratorOf(true)
	if !ok {
		return d, false
	}
	if _, isAbstract := d.Value.Kind.Value.(cabs.AbstractDeclarator); isAbstract && len(d.Value.Derived) == 0 {
		p.fail("<declarator>")
		return d, false
	}
	return d, true
}

// declaratorOf parses leading attributes, pointers, the name or nested
// declarator, then array and function suffixes. Derived lists the
// pointers first.
func (p *parser[N]) declaratorOf(abstract bool) (cabs.Node[*cabs.Declarator[N]], bool) {
	var zero cabs.Node[*cabs.Declarator[N]]
	start := p.start()
	d := &cabs.Declarator[N]{}
	var ok bool
	if d.Extensions, ok = p.attributes(); !ok {
		return zero, false
	}
	if d.Derived, ok = p.pointers(); !ok {
		return zero, false
	}

	switch {
	case !abstract && p.curTokenIs(lexer.TokenLParen):
		p.nextToken()
		inner, ok := p.declarator()
		if !ok || !p.expect(lexer.TokenRParen) {
			return zero, false
		}
		d.Kind = span.NewNode[cabs.DeclaratorKind](inner.Value, inner.Span)
	case !abstract:
		id, ok := p.identifier()
		if !ok {
			return zero, false
		}
		d.Kind = span.NewNode[cabs.DeclaratorKind](id.Value, id.Span)
	default:
		pos := p.start()
		if p.curTokenIs(lexer.TokenLParen) {
			inner, ok := attempt(p, func() (cabs.Node[*cabs.Declarator[N]], bool) {
				p.nextToken()
				inner, ok := p.abstractDeclarator()
				return inner, ok && p.expect(lexer.TokenRParen)
			})
			if ok {
				d.Kind = span.NewNode[cabs.DeclaratorKind](inner.Value, inner.Span)
			}
		}
		if d.Kind.Value == nil {
			d.Kind = span.NewNode[cabs.DeclaratorKind](cabs.AbstractDeclarator{}, span.New(pos, pos))
		}
	}

	suffixes, ok := p.derivedDeclarators(abstract)
	if !ok {
		return zero, false
	}
	d.Derived = append(d.Derived, suffixes...)
	return span.NewNode(d, p.span(start)), true
}

// pointers parses `*` and, under Clang, block pointer `^` prefixes.
func (p *parser[N]) pointers() ([]derivedNode, bool) {
	var out []derivedNode
	for {
		start := p.start()
		block := p.curTokenIs(lexer.TokenCaret) && p.env.Clang()
		if !p.curTokenIs(lexer.TokenStar) && !block {
			return out, true
		}
		p.nextToken()
		quals, ok := p.pointerQualifiers()
		if !ok {
			return nil, false
		}
		var dd cabs.DerivedDeclarator = cabs.PointerDeclarator(quals)
		if block {
			dd = cabs.BlockDeclarator(quals)
		}
		out = append(out, span.NewNode(dd, p.span(start)))
	}
}

func (p *parser[N]) pointerQualifiers() ([]cabs.Node[cabs.PointerQualifier], bool) {
	var quals []cabs.Node[cabs.PointerQualifier]
	for {
		tok := p.cur()
		if q, ok := typeQualifiers[p.word()]; ok {
			p.nextToken()
			quals = append(quals, span.NewNode[cabs.PointerQualifier](q, span.New(tok.Pos, tok.End)))
			continue
		}
		if !p.isKeyword("__attribute__", "__attribute") {
			return quals, true
		}
		exts, ok := p.attributeSpecifier()
		if !ok {
			return nil, false
		}
		quals = append(quals, span.NewNode[cabs.PointerQualifier](cabs.Extensions(exts), p.span(tok.Pos)))
	}
}

func (p *parser[N]) typeQualifierList() []cabs.Node[cabs.TypeQualifier] {
	var quals []cabs.Node[cabs.TypeQualifier]
	for {
		tok := p.cur()
		q, ok := typeQualifiers[p.word()]
		if !ok {
			return quals
		}
		p.nextToken()
		quals = append(quals, span.NewNode(q, span.New(tok.Pos, tok.End)))
	}
}

func (p *parser[N]) derivedDeclarators(abstract bool) ([]derivedNode, bool) {
	var out []derivedNode
	for {
		start := p.start()
		var dd cabs.DerivedDeclarator
		var ok bool
		switch {
		case p.curTokenIs(lexer.TokenLBracket):
			dd, ok = p.arrayDeclarator()
		case p.curTokenIs(lexer.TokenLParen):
			dd, ok = p.functionDeclarator(abstract)
		default:
			return out, true
		}
		if !ok {
			return nil, false
		}
		out = append(out, span.NewNode(dd, p.span(start)))
	}
}

func (p *parser[N]) arrayDeclarator() (cabs.DerivedDeclarator, bool) {
	p.nextToken()
	a := &cabs.ArrayDeclarator{}
	static := p.isKeyword("static")
	if static {
		p.nextToken()
	}
	a.Qualifiers = p.typeQualifierList()
	if !static && p.isKeyword("static") {
		p.nextToken()
		static = true
	}
	switch {
	case static:
		e, ok := p.assignment()
		if !ok {
			return nil, false
		}
		a.Size = cabs.ArraySize{Kind: cabs.SizeStaticExpression, Expression: &e}
	case p.curTokenIs(lexer.TokenStar) && p.peekTokenIs(lexer.TokenRBracket):
		p.nextToken()
		a.Size = cabs.ArraySize{Kind: cabs.SizeVariableUnknown}
	case p.curTokenIs(lexer.TokenRBracket):
		a.Size = cabs.ArraySize{Kind: cabs.SizeUnknown}
	default:
		e, ok := p.assignment()
		if !ok {
			return nil, false
		}
		a.Size = cabs.ArraySize{Kind: cabs.SizeVariableExpression, Expression: &e}
	}
	if !p.expect(lexer.TokenRBracket) {
		return nil, false
	}
	return a, true
}

// functionDeclarator parses a parameter list. Empty parentheses after a
// name form an old-style declarator; after an abstract declarator they
// form an empty prototype.
func (p *parser[N]) functionDeclarator(abstract bool) (cabs.DerivedDeclarator, bool) {
	p.nextToken()
	if p.curTokenIs(lexer.TokenRParen) {
		p.nextToken()
		if abstract {
			return &cabs.FunctionDeclarator[N]{}, true
		}
		return cabs.KRFunctionDeclarator[N]{}, true
	}
	fd, ok := attempt(p, func() (*cabs.FunctionDeclarator[N], bool) {
		fd, ok := p.parameterTypeList()
		return fd, ok && p.expect(lexer.TokenRParen)
	})
	if ok {
		return fd, true
	}
	if abstract {
		return nil, false
	}
	ids, ok := p.identifierList()
	if !ok || !p.expect(lexer.TokenRParen) {
		return nil, false
	}
	return ids, true
}

// parameterTypeList parses prototype parameters in a scope of their own.
func (p *parser[N]) parameterTypeList() (*cabs.FunctionDeclarator[N], bool) {
	p.env.EnterScope()
	fd := &cabs.FunctionDeclarator[N]{}
	for {
		param, ok := p.parameterDeclaration()
		if !ok {
			return nil, false
		}
		fd.Parameters = append(fd.Parameters, param)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
		if p.curTokenIs(lexer.TokenEllipsis) {
			p.nextToken()
			fd.Ellipsis = cabs.EllipsisSome
			break
		}
	}
	p.env.LeaveScope()
	return fd, true
}

func (p *parser[N]) parameterDeclaration() (cabs.Node[*cabs.ParameterDeclaration[N]], bool) {
	var zero cabs.Node[*cabs.ParameterDeclaration[N]]
	start := p.start()
	specs, ok := p.declarationSpecifiers()
	if !ok {
		return zero, false
	}
	param := &cabs.ParameterDeclaration[N]{Specifiers: specs}
	d, ok := attempt(p, func() (cabs.Node[*cabs.Declarator[N]], bool) {
		d, ok := p.declarator()
		if !ok {
			return d, false
		}
		if !p.curTokenIs(lexer.TokenComma) && !p.curTokenIs(lexer.TokenRParen) && !p.isExtensionStart() {
			p.fail(",")
			p.fail(")")
			return d, false
		}
		return d, true
	})
	if !ok {
		d, ok = attempt(p, p.abstractDeclarator)
	}
	if ok {
		param.Declarator = &d
		p.env.HandleDeclarator(d.Value, env.Identifier)
	}
	if param.Extensions, ok = p.declaratorExtensions(); !ok {
		return zero, false
	}
	return span.NewNode(param, p.span(start)), true
}

func (p *parser[N]) identifierList() (cabs.KRFunctionDeclarator[N], bool) {
	var ids cabs.KRFunctionDeclarator[N]
	for {
		id, ok := p.identifier()
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
		if !p.curTokenIs(lexer.TokenComma) {
			return ids, true
		}
		p.nextToken()
	}
}
