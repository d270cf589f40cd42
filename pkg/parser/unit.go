package parser

import (
	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

// translationUnit parses a whole file in a scope of its own, so names
// declared in one parse do not leak into the next.
func (p *parser[N]) translationUnit() (cabs.Node[cabs.TranslationUnit], bool) {
	start := p.start()
	p.env.EnterScope()
	unit := cabs.TranslationUnit{}
	for !p.curTokenIs(lexer.TokenEOF) {
		d, ok := p.externalDeclaration()
		if !ok {
			return cabs.Node[cabs.TranslationUnit]{}, false
		}
		unit = append(unit, d)
	}
	p.env.LeaveScope()
	return span.NewNode(unit, p.span(start)), true
}

func (p *parser[N]) externalDeclaration() (cabs.Node[cabs.ExternalDeclaration], bool) {
	if p.isKeyword("_Static_assert") {
		sa, ok := p.staticAssert()
		return span.NewNode[cabs.ExternalDeclaration](sa.Value, sa.Span), ok
	}
	if d, ok := attempt(p, p.declaration); ok {
		return span.NewNode[cabs.ExternalDeclaration](d.Value, d.Span), true
	}
	f, ok := p.functionDefinition()
	return span.NewNode[cabs.ExternalDeclaration](f.Value, f.Span), ok
}

// functionDefinition binds the function name at the enclosing scope, then
// parses old-style parameter declarations and the body in a scope holding
// the parameters.
func (p *parser[N]) functionDefinition() (cabs.Node[*cabs.FunctionDefinition[N]], bool) {
	var zero cabs.Node[*cabs.FunctionDefinition[N]]
	start := p.start()
	p.gnuExtension()
	specs, ok := p.declarationSpecifiers()
	if !ok {
		return zero, false
	}
	d, ok := p.declarator()
	if !ok {
		return zero, false
	}
	exts, ok := p.attributes()
	if !ok {
		return zero, false
	}
	extend(&d, exts, p.span(start))
	p.env.HandleDeclarator(d.Value, env.SymbolFor(specs))

	f := &cabs.FunctionDefinition[N]{Specifiers: specs, Declarator: d}
	p.env.EnterScope()
	p.declareParameters(d.Value)
	for !p.curTokenIs(lexer.TokenLBrace) {
		decl, ok := p.declaration()
		if !ok {
			p.fail("{")
			return zero, false
		}
		f.Declarations = append(f.Declarations, decl)
	}
	if f.Statement, ok = p.compoundStatement(); !ok {
		return zero, false
	}
	p.env.LeaveScope()
	return span.NewNode(f, p.span(start)), true
}

// declareParameters binds the parameter names of the innermost function
// declarator in d.
func (p *parser[N]) declareParameters(d *cabs.Declarator[N]) bool {
	if inner, ok := d.Kind.Value.(*cabs.Declarator[N]); ok && p.declareParameters(inner) {
		return true
	}
	for _, dd := range d.Derived {
		switch fn := dd.Value.(type) {
		case *cabs.FunctionDeclarator[N]:
			for _, param := range fn.Parameters {
				if param.Value.Declarator != nil {
					p.env.HandleDeclarator(param.Value.Declarator.Value, env.Identifier)
				}
			}
			return true
		case cabs.KRFunctionDeclarator[N]:
			for _, id := range fn {
				p.env.AddSymbol(id.Value.Name, env.Identifier)
			}
			return true
		}
	}
	return false
}
