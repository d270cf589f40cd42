package parser

import (
	"github.com/raymyers/cparse/pkg/cabs"
	"github.com/raymyers/cparse/pkg/env"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/span"
)

var storageClasses = map[string]cabs.StorageClassSpecifier{
	"typedef":       cabs.StorageTypedef,
	"extern":        cabs.StorageExtern,
	"static":        cabs.StorageStatic,
	"_Thread_local": cabs.StorageThreadLocal,
	"__thread":      cabs.StorageThreadLocal,
	"auto":          cabs.StorageAuto,
	"register":      cabs.StorageRegister,
}

var typeQualifiers = map[string]cabs.TypeQualifier{
	"const":             cabs.QualifierConst,
	"__const":           cabs.QualifierConst,
	"__const__":         cabs.QualifierConst,
	"restrict":          cabs.QualifierRestrict,
	"__restrict":        cabs.QualifierRestrict,
	"__restrict__":      cabs.QualifierRestrict,
	"volatile":          cabs.QualifierVolatile,
	"__volatile":        cabs.QualifierVolatile,
	"__volatile__":      cabs.QualifierVolatile,
	"_Nonnull":          cabs.QualifierNonnull,
	"_Null_unspecified": cabs.QualifierNullUnspecified,
	"_Nullable":         cabs.QualifierNullable,
	"_Atomic":           cabs.QualifierAtomic,
}

var functionSpecifiers = map[string]cabs.FunctionSpecifier{
	"inline":     cabs.FunctionInline,
	"__inline":   cabs.FunctionInline,
	"__inline__": cabs.FunctionInline,
	"_Noreturn":  cabs.FunctionNoreturn,
}

// basicTypes may be combined with each other. void is the exception and
// is handled as a unique type specifier.
var basicTypes = map[string]cabs.BasicType{
	"char":        cabs.TypeChar,
	"short":       cabs.TypeShort,
	"int":         cabs.TypeInt,
	"long":        cabs.TypeLong,
	"float":       cabs.TypeFloat,
	"double":      cabs.TypeDouble,
	"signed":      cabs.TypeSigned,
	"__signed":    cabs.TypeSigned,
	"__signed__":  cabs.TypeSigned,
	"unsigned":    cabs.TypeUnsigned,
	"_Bool":       cabs.TypeBool,
	"_Complex":    cabs.TypeComplex,
	"__complex":   cabs.TypeComplex,
	"__complex__": cabs.TypeComplex,
}

var ts18661Types = map[string]cabs.TS18661FloatType{
	"_Float16":     {Format: cabs.BinaryInterchange, Width: 16},
	"_Float32":     {Format: cabs.BinaryInterchange, Width: 32},
	"_Float64":     {Format: cabs.BinaryInterchange, Width: 64},
	"_Float128":    {Format: cabs.BinaryInterchange, Width: 128},
	"_Float32x":    {Format: cabs.BinaryExtended, Width: 32},
	"_Float64x":    {Format: cabs.BinaryExtended, Width: 64},
	"_Float128x":   {Format: cabs.BinaryExtended, Width: 128},
	"_Decimal32":   {Format: cabs.DecimalInterchange, Width: 32},
	"_Decimal64":   {Format: cabs.DecimalInterchange, Width: 64},
	"_Decimal128":  {Format: cabs.DecimalInterchange, Width: 128},
	"_Decimal64x":  {Format: cabs.DecimalExtended, Width: 64},
	"_Decimal128x": {Format: cabs.DecimalExtended, Width: 128},
}

// typeSeen tracks the type specifiers of one specifier list. A typedef
// name, struct, enum, typeof, _Atomic(...) or void must stand alone; the
// basic types combine freely with each other.
type typeSeen int

const (
	typeNone typeSeen = iota
	typeBasic
	typeUnique
)

type specNode = cabs.Node[cabs.DeclarationSpecifier]

// specifierList parses declaration specifiers. With full unset only type
// specifiers, qualifiers and extensions are accepted, as in struct fields
// and type names. At least one type specifier is required.
func (p *parser[N]) specifierList(full bool) ([]specNode, bool) {
	var specs []specNode
	seen := typeNone
	for {
		spec, kind, status := p.specifier(full, seen)
		if status == failed {
			return nil, false
		}
		if status == noMatch {
			break
		}
		specs = append(specs, spec)
		if kind != typeNone {
			seen = kind
		}
	}
	if seen == typeNone {
		p.fail("<type specifier>")
		return nil, false
	}
	return specs, true
}

func (p *parser[N]) declarationSpecifiers() ([]specNode, bool) {
	return p.specifierList(true)
}

func (p *parser[N]) specifierQualifiers() ([]cabs.Node[cabs.SpecifierQualifier], bool) {
	specs, ok := p.specifierList(false)
	if !ok {
		return nil, false
	}
	out := make([]cabs.Node[cabs.SpecifierQualifier], len(specs))
	for i, s := range specs {
		out[i] = span.NewNode(s.Value.(cabs.SpecifierQualifier), s.Span)
	}
	return out, true
}

type status int

const (
	noMatch status = iota
	matched
	failed
)

// specifier parses one specifier. The kind result is the type specifier
// class it belongs to, typeNone for qualifiers and the like.
func (p *parser[N]) specifier(full bool, seen typeSeen) (specNode, typeSeen, status) {
	start := p.start()
	tok := p.cur()
	if tok.Type != lexer.TokenIdent {
		return specNode{}, typeNone, noMatch
	}
	leaf := func(s cabs.DeclarationSpecifier, kind typeSeen) (specNode, typeSeen, status) {
		p.nextToken()
		return span.NewNode(s, span.New(tok.Pos, tok.End)), kind, matched
	}
	result := func(s cabs.DeclarationSpecifier, kind typeSeen, ok bool) (specNode, typeSeen, status) {
		if !ok {
			return specNode{}, typeNone, failed
		}
		return span.NewNode(s, p.span(start)), kind, matched
	}

	word := p.word()
	if word == "" {
		if seen == typeNone && p.isTypename() {
			id, _ := p.identifier()
			return span.NewNode[cabs.DeclarationSpecifier](cabs.TypedefName[N]{Identifier: id}, id.Span), typeUnique, matched
		}
		return specNode{}, typeNone, noMatch
	}

	unique := seen == typeNone
	switch {
	case word == "__attribute__" || word == "__attribute":
		exts, ok := p.attributeSpecifier()
		return result(cabs.Extensions(exts), typeNone, ok)
	case word == "_Atomic" && p.peekTokenIs(lexer.TokenLParen):
		if !unique {
			return specNode{}, typeNone, noMatch
		}
		p.nextToken()
		p.nextToken()
		tn, ok := p.typeName()
		ok = ok && p.expect(lexer.TokenRParen)
		return result(&cabs.AtomicType[N]{TypeName: tn}, typeUnique, ok)
	}
	if q, ok := typeQualifiers[word]; ok {
		return leaf(q, typeNone)
	}
	if b, ok := basicTypes[word]; ok {
		if seen == typeUnique {
			return specNode{}, typeNone, noMatch
		}
		return leaf(b, typeBasic)
	}
	if t, ok := ts18661Types[word]; ok {
		if seen == typeUnique {
			return specNode{}, typeNone, noMatch
		}
		return leaf(t, typeBasic)
	}
	if full {
		if s, ok := storageClasses[word]; ok {
			return leaf(s, typeNone)
		}
		if f, ok := functionSpecifiers[word]; ok {
			return leaf(f, typeNone)
		}
		if word == "_Alignas" {
			a, ok := p.alignmentSpecifier()
			return result(a, typeNone, ok)
		}
	}
	if !unique {
		return specNode{}, typeNone, noMatch
	}
	switch word {
	case "void":
		return leaf(cabs.TypeVoid, typeUnique)
	case "struct", "union":
		s, ok := p.structType()
		return result(s, typeUnique, ok)
	case "enum":
		e, ok := p.enumType()
		return result(e, typeUnique, ok)
	case "typeof", "__typeof", "__typeof__":
		t, ok := p.typeOf()
		return result(t, typeUnique, ok)
	}
	return specNode{}, typeNone, noMatch
}

func (p *parser[N]) alignmentSpecifier() (cabs.AlignmentSpecifier, bool) {
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return nil, false
	}
	tn, ok := attempt(p, func() (cabs.Node[*cabs.TypeName[N]], bool) {
		tn, ok := p.typeName()
		return tn, ok && p.expect(lexer.TokenRParen)
	})
	if ok {
		return &cabs.AlignAsType[N]{TypeName: tn}, true
	}
	e, ok := p.constantExpression()
	if !ok || !p.expect(lexer.TokenRParen) {
		return nil, false
	}
	return &cabs.AlignAsConstant{Expression: e}, true
}

func (p *parser[N]) typeOf() (cabs.TypeOf, bool) {
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return nil, false
	}
	tn, ok := attempt(p, func() (cabs.Node[*cabs.TypeName[N]], bool) {
		tn, ok := p.typeName()
		return tn, ok && p.expect(lexer.TokenRParen)
	})
	if ok {
		return &cabs.TypeOfType[N]{TypeName: tn}, true
	}
	e, ok := p.expression()
	if !ok || !p.expect(lexer.TokenRParen) {
		return nil, false
	}
	return &cabs.TypeOfExpression{Expression: e}, true
}

// structType parses a struct or union specifier. Member names live in
// their own namespace and are not registered; the member list gets its
// own scope for the enumerators declared inside it.
func (p *parser[N]) structType() (*cabs.StructType[N], bool) {
	tok := p.cur()
	kind := cabs.KindStruct
	if tok.Literal == "union" {
		kind = cabs.KindUnion
	}
	p.nextToken()
	s := &cabs.StructType[N]{Kind: span.NewNode(kind, span.New(tok.Pos, tok.End))}
	if _, ok := p.attributes(); !ok {
		return nil, false
	}
	if p.isIdentifier() {
		id, _ := p.identifier()
		s.Identifier = &id
	}
	if !p.curTokenIs(lexer.TokenLBrace) {
		if s.Identifier == nil {
			p.fail("<identifier>")
			p.fail("{")
			return nil, false
		}
		return s, true
	}
	p.nextToken()
	s.Defined = true
	p.env.EnterScope()
	for !p.curTokenIs(lexer.TokenRBrace) {
		d, ok := p.structDeclaration()
		if !ok {
			return nil, false
		}
		s.Declarations = append(s.Declarations, d)
	}
	if len(s.Declarations) == 0 && !p.env.GNU() {
		p.fail("<type specifier>")
		return nil, false
	}
	p.env.LeaveScope()
	p.nextToken()
	return s, true
}

func (p *parser[N]) structDeclaration() (cabs.Node[cabs.StructDeclaration], bool) {
	start := p.start()
	p.gnuExtension()
	if p.isKeyword("_Static_assert") {
		sa, ok := p.staticAssert()
		return span.NewNode[cabs.StructDeclaration](sa.Value, sa.Span), ok
	}
	specs, ok := p.specifierQualifiers()
	if !ok {
		return cabs.Node[cabs.StructDeclaration]{}, false
	}
	f := &cabs.StructField[N]{Specifiers: specs}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		for {
			d, ok := p.structDeclarator()
			if !ok {
				return cabs.Node[cabs.StructDeclaration]{}, false
			}
			f.Declarators = append(f.Declarators, d)
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expect(lexer.TokenSemicolon) {
		return cabs.Node[cabs.StructDeclaration]{}, false
	}
	return span.NewNode[cabs.StructDeclaration](f, p.span(start)), true
}

func (p *parser[N]) structDeclarator() (cabs.Node[*cabs.StructDeclarator[N]], bool) {
	start := p.start()
	sd := &cabs.StructDeclarator[N]{}
	if !p.curTokenIs(lexer.TokenColon) {
		d, ok := p.declarator()
		if !ok {
			return cabs.Node[*cabs.StructDeclarator[N]]{}, false
		}
		sd.Declarator = &d
	}
	if p.curTokenIs(lexer.TokenColon) {
		p.nextToken()
		w, ok := p.constantExpression()
		if !ok {
			return cabs.Node[*cabs.StructDeclarator[N]]{}, false
		}
		sd.BitWidth = &w
	}
	exts, ok := p.declaratorExtensions()
	if !ok {
		return cabs.Node[*cabs.StructDeclarator[N]]{}, false
	}
	if sd.Declarator != nil {
		extend(sd.Declarator, exts, p.span(start))
	}
	return span.NewNode(sd, p.span(start)), true
}

// enumType parses an enum specifier. Each enumerator is registered as an
// identifier in the current scope as soon as it is complete.
func (p *parser[N]) enumType() (*cabs.EnumType[N], bool) {
	p.nextToken()
	e := &cabs.EnumType[N]{}
	if _, ok := p.attributes(); !ok {
		return nil, false
	}
	if p.isIdentifier() {
		id, _ := p.identifier()
		e.Identifier = &id
	}
	if !p.curTokenIs(lexer.TokenLBrace) {
		if e.Identifier == nil {
			p.fail("<identifier>")
			p.fail("{")
			return nil, false
		}
		return e, true
	}
	p.nextToken()
	for {
		en, ok := p.enumerator()
		if !ok {
			return nil, false
		}
		e.Enumerators = append(e.Enumerators, en)
		p.env.AddSymbol(en.Value.Identifier.Value.Name, env.Identifier)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
		if p.curTokenIs(lexer.TokenRBrace) {
			break
		}
	}
	if !p.expect(lexer.TokenRBrace) {
		return nil, false
	}
	return e, true
}

func (p *parser[N]) enumerator() (cabs.Node[*cabs.Enumerator[N]], bool) {
	start := p.start()
	id, ok := p.identifier()
	if !ok {
		return cabs.Node[*cabs.Enumerator[N]]{}, false
	}
	en := &cabs.Enumerator[N]{Identifier: id}
	if en.Extensions, ok = p.attributes(); !ok {
		return cabs.Node[*cabs.Enumerator[N]]{}, false
	}
	if p.curTokenIs(lexer.TokenAssign) {
		p.nextToken()
		v, ok := p.constantExpression()
		if !ok {
			return cabs.Node[*cabs.Enumerator[N]]{}, false
		}
		en.Expression = &v
	}
	return span.NewNode(en, p.span(start)), true
}

func (p *parser[N]) typeName() (cabs.Node[*cabs.TypeName[N]], bool) {
	start := p.start()
	specs, ok := p.specifierQualifiers()
	if !ok {
		return cabs.Node[*cabs.TypeName[N]]{}, false
	}
	tn := &cabs.TypeName[N]{Specifiers: specs}
	if d, ok := attempt(p, p.abstractDeclarator); ok {
		tn.Declarator = &d
	}
	return span.NewNode(tn, p.span(start)), true
}

// declaration parses a declaration and registers its names. Each name is
// registered right after its declarator, before its initializer.
func (p *parser[N]) declaration() (cabs.Node[*cabs.Declaration[N]], bool) {
	start := p.start()
	p.gnuExtension()
	specs, ok := p.declarationSpecifiers()
	if !ok {
		return cabs.Node[*cabs.Declaration[N]]{}, false
	}
	d := &cabs.Declaration[N]{Specifiers: specs}
	sym := env.SymbolFor(specs)
	if !p.curTokenIs(lexer.TokenSemicolon) {
		for {
			id, ok := p.initDeclarator(sym)
			if !ok {
				return cabs.Node[*cabs.Declaration[N]]{}, false
			}
			d.Declarators = append(d.Declarators, id)
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expect(lexer.TokenSemicolon) {
		return cabs.Node[*cabs.Declaration[N]]{}, false
	}
	return span.NewNode(d, p.span(start)), true
}

func (p *parser[N]) initDeclarator(sym env.Symbol) (cabs.Node[*cabs.InitDeclarator[N]], bool) {
	start := p.start()
	d, ok := p.declarator()
	if !ok {
		return cabs.Node[*cabs.InitDeclarator[N]]{}, false
	}
	exts, ok := p.declaratorExtensions()
	if !ok {
		return cabs.Node[*cabs.InitDeclarator[N]]{}, false
	}
	extend(&d, exts, p.span(start))
	p.env.HandleDeclarator(d.Value, sym)

	id := &cabs.InitDeclarator[N]{Declarator: d}
	if p.curTokenIs(lexer.TokenAssign) {
		p.nextToken()
		init, ok := p.initializer()
		if !ok {
			return cabs.Node[*cabs.InitDeclarator[N]]{}, false
		}
		id.Initializer = &init
	}
	return span.NewNode(id, p.span(start)), true
}

// extend appends trailing extensions to a declarator and widens its span.
func extend[N cabs.Name](d *cabs.Node[*cabs.Declarator[N]], exts []cabs.Node[cabs.Extension], sp span.Span) {
	if len(exts) == 0 {
		return
	}
	d.Value.Extensions = append(d.Value.Extensions, exts...)
	d.Span = d.Span.Enclose(sp)
}

func (p *parser[N]) staticAssert() (cabs.Node[*cabs.StaticAssert], bool) {
	start := p.start()
	if !p.keyword("_Static_assert") || !p.expect(lexer.TokenLParen) {
		return cabs.Node[*cabs.StaticAssert]{}, false
	}
	e, ok := p.constantExpression()
	if !ok || !p.expect(lexer.TokenComma) {
		return cabs.Node[*cabs.StaticAssert]{}, false
	}
	msg, ok := p.stringLiteral()
	if !ok || !p.expect(lexer.TokenRParen) || !p.expect(lexer.TokenSemicolon) {
		return cabs.Node[*cabs.StaticAssert]{}, false
	}
	return span.NewNode(&cabs.StaticAssert{Expression: e, Message: msg}, p.span(start)), true
}

func (p *parser[N]) initializer() (cabs.Node[cabs.Initializer], bool) {
	start := p.start()
	if p.curTokenIs(lexer.TokenLBrace) {
		p.nextToken()
		items, ok := p.initializerList()
		if !ok || !p.expect(lexer.TokenRBrace) {
			return cabs.Node[cabs.Initializer]{}, false
		}
		return span.NewNode[cabs.Initializer](cabs.ListInitializer[N](items), p.span(start)), true
	}
	e, ok := p.assignment()
	if !ok {
		return cabs.Node[cabs.Initializer]{}, false
	}
	return span.NewNode[cabs.Initializer](&cabs.ExpressionInitializer{Expression: e}, e.Span), true
}

// initializerList parses the items of a braced list, up to the closing
// brace. A trailing comma is allowed; an empty list needs GNU.
func (p *parser[N]) initializerList() ([]cabs.Node[*cabs.InitializerListItem[N]], bool) {
	var items []cabs.Node[*cabs.InitializerListItem[N]]
	if p.curTokenIs(lexer.TokenRBrace) && p.env.GNU() {
		return items, true
	}
	for {
		item, ok := p.initializerListItem()
		if !ok {
			return nil, false
		}
		items = append(items, item)
		if !p.curTokenIs(lexer.TokenComma) {
			return items, true
		}
		p.nextToken()
		if p.curTokenIs(lexer.TokenRBrace) {
			return items, true
		}
	}
}

func (p *parser[N]) initializerListItem() (cabs.Node[*cabs.InitializerListItem[N]], bool) {
	start := p.start()
	item := &cabs.InitializerListItem[N]{}
	if p.env.GNU() && p.isIdentifier() && p.peekTokenIs(lexer.TokenColon) {
		id, _ := p.identifier()
		p.nextToken()
		item.Designation = append(item.Designation, span.NewNode[cabs.Designator](cabs.MemberDesignator[N]{Identifier: id}, id.Span))
	} else {
		for p.curTokenIs(lexer.TokenLBracket) || p.curTokenIs(lexer.TokenDot) {
			d, ok := p.designator()
			if !ok {
				return cabs.Node[*cabs.InitializerListItem[N]]{}, false
			}
			item.Designation = append(item.Designation, d)
		}
		if len(item.Designation) > 0 && !p.expect(lexer.TokenAssign) {
			return cabs.Node[*cabs.InitializerListItem[N]]{}, false
		}
	}
	init, ok := p.initializer()
	if !ok {
		return cabs.Node[*cabs.InitializerListItem[N]]{}, false
	}
	item.Initializer = init
	return span.NewNode(item, p.span(start)), true
}

func (p *parser[N]) designator() (cabs.Node[cabs.Designator], bool) {
	start := p.start()
	if p.curTokenIs(lexer.TokenDot) {
		p.nextToken()
		id, ok := p.identifier()
		if !ok {
			return cabs.Node[cabs.Designator]{}, false
		}
		return span.NewNode[cabs.Designator](cabs.MemberDesignator[N]{Identifier: id}, p.span(start)), true
	}
	if !p.expect(lexer.TokenLBracket) {
		return cabs.Node[cabs.Designator]{}, false
	}
	from, ok := p.constantExpression()
	if !ok {
		return cabs.Node[cabs.Designator]{}, false
	}
	var d cabs.Designator = cabs.IndexDesignator{Expression: from}
	if p.env.GNU() && p.curTokenIs(lexer.TokenEllipsis) {
		p.nextToken()
		to, ok := p.constantExpression()
		if !ok {
			return cabs.Node[cabs.Designator]{}, false
		}
		d = &cabs.RangeDesignator{From: from, To: to}
	}
	if !p.expect(lexer.TokenRBracket) {
		return cabs.Node[cabs.Designator]{}, false
	}
	return span.NewNode(d, p.span(start)), true
}
