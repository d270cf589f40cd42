package parser

import (
	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

type binaryOperator struct {
	op   cabs.BinaryOperator
	prec int
}

// Binary operators from lowest to highest precedence. All are left
// associative.
var binaryOperators = map[lexer.TokenType]binaryOperator{
	lexer.TokenOr:        {cabs.OpLogicalOr, 1},
	lexer.TokenAnd:       {cabs.OpLogicalAnd, 2},
	lexer.TokenPipe:      {cabs.OpBitwiseOr, 3},
	lexer.TokenCaret:     {cabs.OpBitwiseXor, 4},
	lexer.TokenAmpersand: {cabs.OpBitwiseAnd, 5},
	lexer.TokenEq:        {cabs.OpEquals, 6},
	lexer.TokenNe:        {cabs.OpNotEquals, 6},
	lexer.TokenLt:        {cabs.OpLess, 7},
	lexer.TokenGt:        {cabs.OpGreater, 7},
	lexer.TokenLe:        {cabs.OpLessOrEqual, 7},
	lexer.TokenGe:        {cabs.OpGreaterOrEqual, 7},
	lexer.TokenShl:       {cabs.OpShiftLeft, 8},
	lexer.TokenShr:       {cabs.OpShiftRight, 8},
	lexer.TokenPlus:      {cabs.OpAdd, 9},
	lexer.TokenMinus:     {cabs.OpSubtract, 9},
	lexer.TokenStar:      {cabs.OpMultiply, 10},
	lexer.TokenSlash:     {cabs.OpDivide, 10},
	lexer.TokenPercent:   {cabs.OpModulo, 10},
}

const precLogicalOr = 1

var assignmentOperators = map[lexer.TokenType]cabs.BinaryOperator{
	lexer.TokenAssign:        cabs.OpAssign,
	lexer.TokenStarAssign:    cabs.OpAssignMultiply,
	lexer.TokenSlashAssign:   cabs.OpAssignDivide,
	lexer.TokenPercentAssign: cabs.OpAssignModulo,
	lexer.TokenPlusAssign:    cabs.OpAssignPlus,
	lexer.TokenMinusAssign:   cabs.OpAssignMinus,
	lexer.TokenShlAssign:     cabs.OpAssignShiftLeft,
	lexer.TokenShrAssign:     cabs.OpAssignShiftRight,
	lexer.TokenAndAssign:     cabs.OpAssignBitwiseAnd,
	lexer.TokenXorAssign:     cabs.OpAssignBitwiseXor,
	lexer.TokenOrAssign:      cabs.OpAssignBitwiseOr,
}

var unaryOperators = map[lexer.TokenType]cabs.UnaryOperator{
	lexer.TokenAmpersand: cabs.OpAddress,
	lexer.TokenStar:      cabs.OpIndirection,
	lexer.TokenPlus:      cabs.OpPlus,
	lexer.TokenMinus:     cabs.OpMinus,
	lexer.TokenTilde:     cabs.OpComplement,
	lexer.TokenNot:       cabs.OpNegate,
}

type exprNode = cabs.Node[cabs.Expression]

func expr(e cabs.Expression, sp span.Span) exprNode {
	return span.NewNode(e, sp)
}

func binop(op cabs.Node[cabs.BinaryOperator], lhs, rhs exprNode) exprNode {
	return expr(&cabs.BinaryOperatorExpression{Operator: op, LHS: lhs, RHS: rhs}, lhs.Span.Enclose(rhs.Span))
}

// expression parses a comma separated list of assignment expressions.
func (p *parser[N]) expression() (exprNode, bool) {
	start := p.start()
	first, ok := p.assignment()
	if !ok || !p.curTokenIs(lexer.TokenComma) {
		return first, ok
	}
	list := cabs.CommaExpression{first}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		e, ok := p.assignment()
		if !ok {
			return e, false
		}
		list = append(list, e)
	}
	return expr(list, p.span(start)), true
}

// assignment parses an assignment expression. The left operand of an
// assignment must be a unary expression, which castExpression reports, so
// the operand is never parsed twice.
func (p *parser[N]) assignment() (exprNode, bool) {
	lhs, unary, ok := p.castExpression()
	if !ok {
		return lhs, false
	}
	if unary {
		tok := p.cur()
		if op, isAssign := assignmentOperators[tok.Type]; isAssign {
			p.nextToken()
			rhs, ok := p.assignment()
			if !ok {
				return rhs, false
			}
			return binop(span.NewNode(op, span.New(tok.Pos, tok.End)), lhs, rhs), true
		}
	}
	return p.conditional(lhs)
}

// constantExpression parses a conditional expression.
func (p *parser[N]) constantExpression() (exprNode, bool) {
	lhs, _, ok := p.castExpression()
	if !ok {
		return lhs, false
	}
	return p.conditional(lhs)
}

// conditional continues a conditional expression whose first operand has
// already been parsed.
func (p *parser[N]) conditional(first exprNode) (exprNode, bool) {
	cond, ok := p.binary(first, precLogicalOr)
	if !ok || !p.curTokenIs(lexer.TokenQuestion) {
		return cond, ok
	}
	p.nextToken()
	then, ok := p.expression()
	if !ok {
		return then, false
	}
	if !p.expect(lexer.TokenColon) {
		return then, false
	}
	els, ok := p.constantExpression()
	if !ok {
		return els, false
	}
	c := &cabs.ConditionalExpression{Condition: cond, Then: then, Else: els}
	return expr(c, cond.Span.Enclose(els.Span)), true
}

// binary applies precedence climbing to operators binding at least as
// tightly as minPrec.
func (p *parser[N]) binary(lhs exprNode, minPrec int) (exprNode, bool) {
	for {
		tok := p.cur()
		bin, ok := binaryOperators[tok.Type]
		if !ok || bin.prec < minPrec {
			return lhs, true
		}
		p.nextToken()
		rhs, _, ok := p.castExpression()
		if !ok {
			return rhs, false
		}
		for {
			next, ok := binaryOperators[p.cur().Type]
			if !ok || next.prec <= bin.prec {
				break
			}
			if rhs, ok = p.binary(rhs, bin.prec+1); !ok {
				return rhs, false
			}
		}
		lhs = binop(span.NewNode(bin.op, span.New(tok.Pos, tok.End)), lhs, rhs)
	}
}

// castExpression parses a cast or a unary expression. The second result
// reports whether a plain unary expression was parsed.
func (p *parser[N]) castExpression() (exprNode, bool, bool) {
	start := p.start()
	if p.isKeyword("__extension__") {
		p.nextToken()
		return p.castExpression()
	}
	if p.curTokenIs(lexer.TokenLParen) {
		cast, ok := attempt(p, func() (exprNode, bool) {
			tn, ok := p.parenthesizedTypeName()
			if !ok {
				return exprNode{}, false
			}
			e, _, ok := p.castExpression()
			if !ok {
				return e, false
			}
			return expr(&cabs.CastExpression[N]{TypeName: tn, Expression: e}, p.span(start)), true
		})
		if ok {
			return cast, false, true
		}
	}
	e, ok := p.unaryExpression()
	return e, true, ok
}

// parenthesizedTypeName parses `( type-name )` not followed by a brace,
// which would make it a compound literal.
func (p *parser[N]) parenthesizedTypeName() (cabs.Node[*cabs.TypeName[N]], bool) {
	if !p.expect(lexer.TokenLParen) {
		return cabs.Node[*cabs.TypeName[N]]{}, false
	}
	tn, ok := p.typeName()
	if !ok || !p.expect(lexer.TokenRParen) {
		return tn, false
	}
	if p.curTokenIs(lexer.TokenLBrace) {
		return tn, false
	}
	return tn, true
}

func (p *parser[N]) unaryExpression() (exprNode, bool) {
	start := p.start()
	tok := p.cur()

	switch tok.Type {
	case lexer.TokenIncrement, lexer.TokenDecrement:
		p.nextToken()
		operand, ok := p.unaryExpression()
		if !ok {
			return operand, false
		}
		op := cabs.OpPreIncrement
		if tok.Type == lexer.TokenDecrement {
			op = cabs.OpPreDecrement
		}
		return p.unaryNode(op, tok, operand, start), true
	}
	if op, ok := unaryOperators[tok.Type]; ok {
		p.nextToken()
		operand, _, ok := p.castExpression()
		if !ok {
			return operand, false
		}
		return p.unaryNode(op, tok, operand, start), true
	}

	switch p.word() {
	case "sizeof":
		p.nextToken()
		if p.curTokenIs(lexer.TokenLParen) {
			tn, ok := attempt(p, p.parenthesizedTypeName)
			if ok {
				return expr(&cabs.SizeOfType[N]{TypeName: tn}, p.span(start)), true
			}
		}
		operand, ok := p.unaryExpression()
		if !ok {
			return operand, false
		}
		return expr(&cabs.SizeOfValue{Expression: operand}, p.span(start)), true
	case "_Alignof", "__alignof", "__alignof__":
		p.nextToken()
		if !p.expect(lexer.TokenLParen) {
			return exprNode{}, false
		}
		tn, ok := p.typeName()
		if !ok || !p.expect(lexer.TokenRParen) {
			return exprNode{}, false
		}
		return expr(&cabs.AlignOf[N]{TypeName: tn}, p.span(start)), true
	}
	return p.postfixExpression()
}

func (p *parser[N]) unaryNode(op cabs.UnaryOperator, tok lexer.Token, operand exprNode, start int) exprNode {
	u := &cabs.UnaryOperatorExpression{
		Operator: span.NewNode(op, span.New(tok.Pos, tok.End)),
		Operand:  operand,
	}
	return expr(u, p.span(start))
}

func (p *parser[N]) postfixExpression() (exprNode, bool) {
	start := p.start()
	var e exprNode
	ok := false
	if p.curTokenIs(lexer.TokenLParen) {
		e, ok = attempt(p, p.compoundLiteral)
	}
	if !ok {
		if e, ok = p.primaryExpression(); !ok {
			return e, false
		}
	}

	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.TokenLBracket:
			p.nextToken()
			index, ok := p.expression()
			if !ok || !p.expect(lexer.TokenRBracket) {
				return index, false
			}
			op := span.NewNode(cabs.OpIndex, p.span(tok.Pos))
			e = expr(&cabs.BinaryOperatorExpression{Operator: op, LHS: e, RHS: index}, p.span(start))
		case lexer.TokenLParen:
			p.nextToken()
			args, ok := p.arguments()
			if !ok {
				return e, false
			}
			e = expr(&cabs.CallExpression{Callee: e, Arguments: args}, p.span(start))
		case lexer.TokenDot, lexer.TokenArrow:
			p.nextToken()
			id, ok := p.identifier()
			if !ok {
				return e, false
			}
			op := cabs.MemberDirect
			if tok.Type == lexer.TokenArrow {
				op = cabs.MemberIndirect
			}
			m := &cabs.MemberExpression[N]{
				Operator:   span.NewNode(op, span.New(tok.Pos, tok.End)),
				Expression: e,
				Identifier: id,
			}
			e = expr(m, p.span(start))
		case lexer.TokenIncrement, lexer.TokenDecrement:
			p.nextToken()
			op := cabs.OpPostIncrement
			if tok.Type == lexer.TokenDecrement {
				op = cabs.OpPostDecrement
			}
			e = p.unaryNode(op, tok, e, start)
		default:
			return e, true
		}
	}
}

// arguments parses a call's argument list after the opening parenthesis.
func (p *parser[N]) arguments() ([]exprNode, bool) {
	var args []exprNode
	if p.curTokenIs(lexer.TokenRParen) {
		p.nextToken()
		return args, true
	}
	for {
		a, ok := p.assignment()
		if !ok {
			return nil, false
		}
		args = append(args, a)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	return args, p.expect(lexer.TokenRParen)
}

func (p *parser[N]) compoundLiteral() (exprNode, bool) {
	start := p.start()
	if !p.expect(lexer.TokenLParen) {
		return exprNode{}, false
	}
	tn, ok := p.typeName()
	if !ok || !p.expect(lexer.TokenRParen) || !p.expect(lexer.TokenLBrace) {
		return exprNode{}, false
	}
	items, ok := p.initializerList()
	if !ok || !p.expect(lexer.TokenRBrace) {
		return exprNode{}, false
	}
	return expr(&cabs.CompoundLiteral[N]{TypeName: tn, InitializerList: items}, p.span(start)), true
}

func (p *parser[N]) primaryExpression() (exprNode, bool) {
	start := p.start()
	tok := p.cur()

	switch tok.Type {
	case lexer.TokenIdent:
		switch p.word() {
		case "":
			id, _ := p.identifier()
			return expr(id.Value, id.Span), true
		case "_Generic":
			return p.genericSelection()
		case "__builtin_va_arg":
			return p.vaArg()
		case "__builtin_offsetof":
			return p.offsetOf()
		}
	case lexer.TokenNumber, lexer.TokenChar:
		c, ok := p.constant()
		return expr(c.Value, c.Span), ok
	case lexer.TokenString:
		s, _ := p.stringLiteral()
		return expr(s.Value, s.Span), true
	case lexer.TokenLParen:
		p.nextToken()
		if p.env.GNU() && p.curTokenIs(lexer.TokenLBrace) {
			body, ok := p.compoundStatement()
			if !ok || !p.expect(lexer.TokenRParen) {
				return exprNode{}, false
			}
			return expr(&cabs.StatementExpression{Statement: body}, p.span(start)), true
		}
		e, ok := p.expression()
		if !ok || !p.expect(lexer.TokenRParen) {
			return e, false
		}
		return e, true
	}
	p.fail("<identifier>")
	p.fail("<constant>")
	p.fail("<string literal>")
	p.fail("(")
	return exprNode{}, false
}

// stringLiteral parses one or more adjacent string literal tokens.
func (p *parser[N]) stringLiteral() (cabs.Node[cabs.StringLiteral], bool) {
	start := p.start()
	if !p.curTokenIs(lexer.TokenString) {
		p.fail("<string literal>")
		return cabs.Node[cabs.StringLiteral]{}, false
	}
	var parts cabs.StringLiteral
	for p.curTokenIs(lexer.TokenString) {
		parts = append(parts, p.cur().Literal)
		p.nextToken()
	}
	return span.NewNode(parts, p.span(start)), true
}

func (p *parser[N]) genericSelection() (exprNode, bool) {
	start := p.start()
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return exprNode{}, false
	}
	control, ok := p.assignment()
	if !ok {
		return control, false
	}
	var assocs []cabs.Node[cabs.GenericAssociation]
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		a, ok := p.genericAssociation()
		if !ok {
			return exprNode{}, false
		}
		assocs = append(assocs, a)
	}
	if len(assocs) == 0 {
		p.fail(",")
		return exprNode{}, false
	}
	if !p.expect(lexer.TokenRParen) {
		return exprNode{}, false
	}
	return expr(&cabs.GenericSelection{Expression: control, Associations: assocs}, p.span(start)), true
}

func (p *parser[N]) genericAssociation() (cabs.Node[cabs.GenericAssociation], bool) {
	start := p.start()
	if p.isKeyword("default") {
		p.nextToken()
		if !p.expect(lexer.TokenColon) {
			return cabs.Node[cabs.GenericAssociation]{}, false
		}
		e, ok := p.assignment()
		if !ok {
			return cabs.Node[cabs.GenericAssociation]{}, false
		}
		a := &cabs.GenericAssociationDefault{Expression: e}
		return span.NewNode[cabs.GenericAssociation](a, p.span(start)), true
	}
	tn, ok := p.typeName()
	if !ok || !p.expect(lexer.TokenColon) {
		return cabs.Node[cabs.GenericAssociation]{}, false
	}
	e, ok := p.assignment()
	if !ok {
		return cabs.Node[cabs.GenericAssociation]{}, false
	}
	a := &cabs.GenericAssociationType[N]{TypeName: tn, Expression: e}
	return span.NewNode[cabs.GenericAssociation](a, p.span(start)), true
}

func (p *parser[N]) vaArg() (exprNode, bool) {
	start := p.start()
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return exprNode{}, false
	}
	list, ok := p.assignment()
	if !ok || !p.expect(lexer.TokenComma) {
		return exprNode{}, false
	}
	tn, ok := p.typeName()
	if !ok || !p.expect(lexer.TokenRParen) {
		return exprNode{}, false
	}
	return expr(&cabs.VaArgExpression[N]{VaList: list, TypeName: tn}, p.span(start)), true
}

func (p *parser[N]) offsetOf() (exprNode, bool) {
	start := p.start()
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return exprNode{}, false
	}
	tn, ok := p.typeName()
	if !ok || !p.expect(lexer.TokenComma) {
		return exprNode{}, false
	}
	des, ok := p.offsetDesignator()
	if !ok || !p.expect(lexer.TokenRParen) {
		return exprNode{}, false
	}
	return expr(&cabs.OffsetOfExpression[N]{TypeName: tn, Designator: des}, p.span(start)), true
}

func (p *parser[N]) offsetDesignator() (cabs.Node[*cabs.OffsetDesignator[N]], bool) {
	start := p.start()
	base, ok := p.identifier()
	if !ok {
		return cabs.Node[*cabs.OffsetDesignator[N]]{}, false
	}
	d := &cabs.OffsetDesignator[N]{Base: base}
	for {
		mstart := p.start()
		var m cabs.OffsetMember
		switch p.cur().Type {
		case lexer.TokenDot:
			p.nextToken()
			id, ok := p.identifier()
			if !ok {
				return cabs.Node[*cabs.OffsetDesignator[N]]{}, false
			}
			m = cabs.OffsetMemberField[N]{Identifier: id}
		case lexer.TokenArrow:
			p.nextToken()
			id, ok := p.identifier()
			if !ok {
				return cabs.Node[*cabs.OffsetDesignator[N]]{}, false
			}
			m = cabs.OffsetMemberIndirect[N]{Identifier: id}
		case lexer.TokenLBracket:
			p.nextToken()
			e, ok := p.expression()
			if !ok || !p.expect(lexer.TokenRBracket) {
				return cabs.Node[*cabs.OffsetDesignator[N]]{}, false
			}
			m = cabs.OffsetMemberIndex{Expression: e}
		default:
			return span.NewNode(d, p.span(start)), true
		}
		d.Members = append(d.Members, span.NewNode(m, p.span(mstart)))
	}
}
