package parser

import (
	"strings"

	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

type extNode = cabs.Node[cabs.Extension]

var asmKeywords = []string{"asm", "__asm", "__asm__"}

func (p *parser[N]) isExtensionStart() bool {
	return p.isKeyword("__attribute__", "__attribute") || p.isKeyword(asmKeywords...)
}

// attributes parses any number of attribute specifiers.
func (p *parser[N]) attributes() ([]extNode, bool) {
	var out []extNode
	for p.isKeyword("__attribute__", "__attribute") {
		exts, ok := p.attributeSpecifier()
		if !ok {
			return nil, false
		}
		out = append(out, exts...)
	}
	return out, true
}

// declaratorExtensions parses the asm labels and attributes that may
// follow a declarator.
func (p *parser[N]) declaratorExtensions() ([]extNode, bool) {
	var out []extNode
	for {
		switch {
		case p.isKeyword("__attribute__", "__attribute"):
			exts, ok := p.attributeSpecifier()
			if !ok {
				return nil, false
			}
			out = append(out, exts...)
		case p.isKeyword(asmKeywords...):
			start := p.start()
			p.nextToken()
			if !p.expect(lexer.TokenLParen) {
				return nil, false
			}
			sym, ok := p.stringLiteral()
			if !ok || !p.expect(lexer.TokenRParen) {
				return nil, false
			}
			out = append(out, span.NewNode[cabs.Extension](cabs.AsmLabel{Symbol: sym}, p.span(start)))
		default:
			return out, true
		}
	}
}

// attributeSpecifier parses __attribute__((a, b(x), ...)). Empty entries
// are skipped.
func (p *parser[N]) attributeSpecifier() ([]extNode, bool) {
	p.nextToken()
	if !p.expect(lexer.TokenLParen) || !p.expect(lexer.TokenLParen) {
		return nil, false
	}
	var out []extNode
	for !p.curTokenIs(lexer.TokenRParen) {
		if p.curTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		a, ok := p.attribute()
		if !ok {
			return nil, false
		}
		out = append(out, a)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
	}
	if !p.expect(lexer.TokenRParen) || !p.expect(lexer.TokenRParen) {
		return nil, false
	}
	return out, true
}

func (p *parser[N]) attribute() (extNode, bool) {
	start := p.start()
	tok := p.cur()
	if tok.Type != lexer.TokenIdent {
		p.fail("<attribute>")
		return extNode{}, false
	}
	if p.env.Clang() && tok.Literal == "availability" && p.peekTokenIs(lexer.TokenLParen) {
		return p.availability()
	}
	p.nextToken()
	a := &cabs.Attribute{Name: span.NewNode(tok.Literal, span.New(tok.Pos, tok.End))}
	if p.curTokenIs(lexer.TokenLParen) {
		p.nextToken()
		args, ok := p.arguments()
		if !ok {
			return extNode{}, false
		}
		a.Arguments = args
	}
	return span.NewNode[cabs.Extension](a, p.span(start)), true
}

var availabilityVersions = map[string]cabs.AvailabilityClauseKind{
	"introduced": cabs.AvailabilityIntroduced,
	"deprecated": cabs.AvailabilityDeprecated,
	"obsoleted":  cabs.AvailabilityObsoleted,
}

var availabilityTexts = map[string]cabs.AvailabilityClauseKind{
	"message":     cabs.AvailabilityMessage,
	"replacement": cabs.AvailabilityReplacement,
}

// availability parses availability(platform, clause, ...).
func (p *parser[N]) availability() (extNode, bool) {
	start := p.start()
	p.nextToken()
	p.nextToken()
	platform, ok := p.identifier()
	if !ok {
		return extNode{}, false
	}
	a := &cabs.AvailabilityAttribute[N]{Platform: platform}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		c, ok := p.availabilityClause()
		if !ok {
			return extNode{}, false
		}
		a.Clauses = append(a.Clauses, c)
	}
	if !p.expect(lexer.TokenRParen) {
		return extNode{}, false
	}
	return span.NewNode[cabs.Extension](a, p.span(start)), true
}

func (p *parser[N]) availabilityClause() (cabs.Node[*cabs.AvailabilityClause], bool) {
	var zero cabs.Node[*cabs.AvailabilityClause]
	start := p.start()
	tok := p.cur()
	_, version := availabilityVersions[tok.Literal]
	_, text := availabilityTexts[tok.Literal]
	if tok.Type != lexer.TokenIdent || !(version || text || tok.Literal == "unavailable") {
		p.fail("<availability clause>")
		return zero, false
	}
	p.nextToken()
	c := &cabs.AvailabilityClause{}
	if tok.Literal == "unavailable" {
		c.Kind = cabs.AvailabilityUnavailable
		return span.NewNode(c, p.span(start)), true
	}
	if kind, ok := availabilityVersions[tok.Literal]; ok {
		if !p.expect(lexer.TokenAssign) {
			return zero, false
		}
		v, ok := p.availabilityVersion()
		if !ok {
			return zero, false
		}
		c.Kind, c.Version = kind, &v
		return span.NewNode(c, p.span(start)), true
	}
	if !p.expect(lexer.TokenAssign) {
		return zero, false
	}
	s, ok := p.stringLiteral()
	if !ok {
		return zero, false
	}
	c.Kind, c.Text = availabilityTexts[tok.Literal], &s
	return span.NewNode(c, p.span(start)), true
}

// availabilityVersion splits a number token such as 10.12.1 into its
// components.
func (p *parser[N]) availabilityVersion() (cabs.Node[cabs.AvailabilityVersion], bool) {
	tok := p.cur()
	if tok.Type != lexer.TokenNumber {
		p.fail("<version>")
		return cabs.Node[cabs.AvailabilityVersion]{}, false
	}
	parts := strings.Split(tok.Literal, ".")
	if len(parts) > 3 {
		p.fail("<version>")
		return cabs.Node[cabs.AvailabilityVersion]{}, false
	}
	for _, part := range parts {
		if part == "" || countWhile(part, isDigit) != len(part) {
			p.fail("<version>")
			return cabs.Node[cabs.AvailabilityVersion]{}, false
		}
	}
	p.nextToken()
	v := cabs.AvailabilityVersion{Major: parts[0]}
	if len(parts) > 1 {
		v.Minor = parts[1]
	}
	if len(parts) > 2 {
		v.Subminor = parts[2]
	}
	return span.NewNode(v, span.New(tok.Pos, tok.End)), true
}

// asmStatement parses GNU inline assembly. Without a qualifier or any
// operand section it is basic asm.
func (p *parser[N]) asmStatement() (cabs.Node[cabs.Statement], bool) {
	var zero cabs.Node[cabs.Statement]
	start := p.start()
	p.nextToken()
	var qual *cabs.Node[cabs.TypeQualifier]
	if q, ok := typeQualifiers[p.word()]; ok {
		tok := p.cur()
		p.nextToken()
		n := span.NewNode(q, span.New(tok.Pos, tok.End))
		qual = &n
	}
	if !p.expect(lexer.TokenLParen) {
		return zero, false
	}
	tmpl, ok := p.stringLiteral()
	if !ok {
		return zero, false
	}
	asm := &cabs.GnuExtendedAsm[N]{Qualifier: qual, Template: tmpl}
	sections := 0
	for sections < 3 && p.curTokenIs(lexer.TokenColon) {
		p.nextToken()
		sections++
		if sections == 3 {
			if asm.Clobbers, ok = p.clobbers(); !ok {
				return zero, false
			}
			break
		}
		operands, ok := p.asmOperands()
		if !ok {
			return zero, false
		}
		if sections == 1 {
			asm.Outputs = operands
		} else {
			asm.Inputs = operands
		}
	}
	if !p.expect(lexer.TokenRParen) || !p.expect(lexer.TokenSemicolon) {
		return zero, false
	}
	var s cabs.Statement = asm
	if sections == 0 && qual == nil {
		s = cabs.GnuBasicAsm{Template: tmpl}
	}
	return span.NewNode(s, p.span(start)), true
}

func (p *parser[N]) asmOperands() ([]cabs.Node[*cabs.GnuAsmOperand[N]], bool) {
	var out []cabs.Node[*cabs.GnuAsmOperand[N]]
	if !p.curTokenIs(lexer.TokenString) && !p.curTokenIs(lexer.TokenLBracket) {
		return out, true
	}
	for {
		op, ok := p.asmOperand()
		if !ok {
			return nil, false
		}
		out = append(out, op)
		if !p.curTokenIs(lexer.TokenComma) {
			return out, true
		}
		p.nextToken()
	}
}

func (p *parser[N]) asmOperand() (cabs.Node[*cabs.GnuAsmOperand[N]], bool) {
	var zero cabs.Node[*cabs.GnuAsmOperand[N]]
	start := p.start()
	op := &cabs.GnuAsmOperand[N]{}
	if p.curTokenIs(lexer.TokenLBracket) {
		p.nextToken()
		id, ok := p.identifier()
		if !ok || !p.expect(lexer.TokenRBracket) {
			return zero, false
		}
		op.SymbolicName = &id
	}
	var ok bool
	if op.Constraints, ok = p.stringLiteral(); !ok {
		return zero, false
	}
	if !p.expect(lexer.TokenLParen) {
		return zero, false
	}
	if op.VariableName, ok = p.expression(); !ok || !p.expect(lexer.TokenRParen) {
		return zero, false
	}
	return span.NewNode(op, p.span(start)), true
}

func (p *parser[N]) clobbers() ([]cabs.Node[cabs.StringLiteral], bool) {
	var out []cabs.Node[cabs.StringLiteral]
	if !p.curTokenIs(lexer.TokenString) {
		return out, true
	}
	for {
		s, ok := p.stringLiteral()
		if !ok {
			return nil, false
		}
		out = append(out, s)
		if !p.curTokenIs(lexer.TokenComma) {
			return out, true
		}
		p.nextToken()
	}
}
