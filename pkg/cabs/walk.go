package cabs

import (
	"fmt"

	"github.com/raymyers/cparse/pkg/span"
)

// Kind names a node kind reported by Walk.
type Kind string

const (
	KindIdentifier              Kind = "Identifier"
	KindConstant                Kind = "Constant"
	KindInteger                 Kind = "Integer"
	KindIntegerBase             Kind = "IntegerBase"
	KindIntegerSuffix           Kind = "IntegerSuffix"
	KindIntegerSize             Kind = "IntegerSize"
	KindFloat                   Kind = "Float"
	KindFloatBase               Kind = "FloatBase"
	KindFloatSuffix             Kind = "FloatSuffix"
	KindFloatFormat             Kind = "FloatFormat"
	KindStringLiteral           Kind = "StringLiteral"
	KindExpression              Kind = "Expression"
	KindMemberOperator          Kind = "MemberOperator"
	KindGenericSelection        Kind = "GenericSelection"
	KindGenericAssociation      Kind = "GenericAssociation"
	KindGenericAssociationType  Kind = "GenericAssociationType"
	KindMemberExpression        Kind = "MemberExpression"
	KindCallExpression          Kind = "CallExpression"
	KindCompoundLiteral         Kind = "CompoundLiteral"
	KindSizeOfType              Kind = "SizeOfTy"
	KindSizeOfValue             Kind = "SizeOfVal"
	KindAlignOf                 Kind = "AlignOf"
	KindUnaryOperator           Kind = "UnaryOperator"
	KindUnaryOperatorExpression Kind = "UnaryOperatorExpression"
	KindCastExpression          Kind = "CastExpression"
	KindBinaryOperator          Kind = "BinaryOperator"
	KindBinaryOperatorExpr      Kind = "BinaryOperatorExpression"
	KindConditionalExpression   Kind = "ConditionalExpression"
	KindVaArgExpression         Kind = "VaArgExpression"
	KindOffsetOfExpression      Kind = "OffsetOfExpression"
	KindOffsetDesignator        Kind = "OffsetDesignator"
	KindOffsetMember            Kind = "OffsetMember"
	KindDeclaration             Kind = "Declaration"
	KindDeclarationSpecifier    Kind = "DeclarationSpecifier"
	KindInitDeclarator          Kind = "InitDeclarator"
	KindStorageClassSpecifier   Kind = "StorageClassSpecifier"
	KindTypeSpecifier           Kind = "TypeSpecifier"
	KindTS18661FloatType        Kind = "TS18661FloatType"
	KindTS18661FloatFormat      Kind = "TS18661FloatFormat"
	KindStructType              Kind = "StructType"
	KindStructKind              Kind = "StructKind"
	KindStructDeclaration       Kind = "StructDeclaration"
	KindStructField             Kind = "StructField"
	KindSpecifierQualifier      Kind = "SpecifierQualifier"
	KindStructDeclarator        Kind = "StructDeclarator"
	KindEnumType                Kind = "EnumType"
	KindEnumerator              Kind = "Enumerator"
	KindTypeQualifier           Kind = "TypeQualifier"
	KindFunctionSpecifier       Kind = "FunctionSpecifier"
	KindAlignmentSpecifier      Kind = "AlignmentSpecifier"
	KindDeclarator              Kind = "Declarator"
	KindDeclaratorKind          Kind = "DeclaratorKind"
	KindDerivedDeclarator       Kind = "DerivedDeclarator"
	KindArrayDeclarator         Kind = "ArrayDeclarator"
	KindFunctionDeclarator      Kind = "FunctionDeclarator"
	KindPointerQualifier        Kind = "PointerQualifier"
	KindArraySize               Kind = "ArraySize"
	KindParameterDeclaration    Kind = "ParameterDeclaration"
	KindEllipsis                Kind = "Ellipsis"
	KindTypeName                Kind = "TypeName"
	KindInitializer             Kind = "Initializer"
	KindInitializerListItem     Kind = "InitializerListItem"
	KindDesignator              Kind = "Designator"
	KindRangeDesignator         Kind = "RangeDesignator"
	KindStaticAssert            Kind = "StaticAssert"
	KindStatement               Kind = "Statement"
	KindLabeledStatement        Kind = "LabeledStatement"
	KindIfStatement             Kind = "IfStatement"
	KindSwitchStatement         Kind = "SwitchStatement"
	KindWhileStatement          Kind = "WhileStatement"
	KindDoWhileStatement        Kind = "DoWhileStatement"
	KindForStatement            Kind = "ForStatement"
	KindLabel                   Kind = "Label"
	KindCaseRange               Kind = "CaseRange"
	KindForInitializer          Kind = "ForInitializer"
	KindBlockItem               Kind = "BlockItem"
	KindExternalDeclaration     Kind = "ExternalDeclaration"
	KindFunctionDefinition      Kind = "FunctionDefinition"
	KindExtension               Kind = "Extension"
	KindAttribute               Kind = "Attribute"
	KindAsmStatement            Kind = "AsmStatement"
	KindAvailabilityAttribute   Kind = "AvailabilityAttribute"
	KindAvailabilityClause      Kind = "AvailabilityClause"
	KindGnuExtendedAsm          Kind = "GnuExtendedAsmStatement"
	KindGnuAsmOperand           Kind = "GnuAsmOperand"
	KindTypeOf                  Kind = "TypeOf"
	KindTranslationUnit         Kind = "TranslationUnit"
)

// Item is one node reported by Walk. Value holds the node itself, typed
// as the family interface for wrapper kinds (Expression, Statement,
// DeclarationSpecifier, ...) and as the concrete type otherwise.
type Item struct {
	Kind  Kind
	Value any
	Span  span.Span
}

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// the node with w.
type Visitor interface {
	Visit(item Item) (w Visitor)
}

// Walk traverses a tree in depth-first order. The root must be a node of
// one of the entry point results: Node[TranslationUnit],
// Node[ExternalDeclaration], Node[*Declaration[N]], Node[Statement],
// Node[Expression], Node[Constant], Node[*TypeName[N]] or
// Node[*Declarator[N]]. A bare TranslationUnit is also accepted.
//
// Children are visited in source order with two exceptions: binary
// operators are reported after both operands, and prefix unary operators
// before their operand.
func Walk[N Name](v Visitor, root any) {
	var w walker[N]
	switch n := root.(type) {
	case TranslationUnit:
		w.translationUnit(v, n, span.None())
	case Node[TranslationUnit]:
		w.translationUnit(v, n.Value, n.Span)
	case Node[ExternalDeclaration]:
		w.externalDeclaration(v, n.Value, n.Span)
	case Node[*Declaration[N]]:
		w.declaration(v, n.Value, n.Span)
	case Node[Statement]:
		w.statement(v, n.Value, n.Span)
	case Node[Expression]:
		w.expression(v, n.Value, n.Span)
	case Node[Constant]:
		w.constant(v, n.Value, n.Span)
	case Node[*TypeName[N]]:
		w.typeName(v, n.Value, n.Span)
	case Node[*Declarator[N]]:
		w.declarator(v, n.Value, n.Span)
	default:
		panic(fmt.Sprintf("cabs.Walk: unsupported root %T", root))
	}
}

type inspector func(Item) bool

func (f inspector) Visit(item Item) Visitor {
	if f(item) {
		return f
	}
	return nil
}

// Inspect traverses a tree in depth-first order, calling f for each node.
// Children are skipped when f returns false.
func Inspect[N Name](root any, f func(Item) bool) {
	Walk[N](inspector(f), root)
}

type walker[N Name] struct{}

func (walker[N]) leaf(v Visitor, k Kind, val any, sp span.Span) {
	v.Visit(Item{Kind: k, Value: val, Span: sp})
}

func enter(v Visitor, k Kind, val any, sp span.Span) Visitor {
	return v.Visit(Item{Kind: k, Value: val, Span: sp})
}

func (w walker[N]) identifier(v Visitor, n Node[Identifier[N]]) {
	w.leaf(v, KindIdentifier, n.Value, n.Span)
}

func (w walker[N]) stringLiteral(v Visitor, n Node[StringLiteral]) {
	w.leaf(v, KindStringLiteral, n.Value, n.Span)
}

func (w walker[N]) expressions(v Visitor, list []Node[Expression]) {
	for _, e := range list {
		w.expression(v, e.Value, e.Span)
	}
}

func (w walker[N]) extensions(v Visitor, list []Node[Extension]) {
	for _, e := range list {
		w.extension(v, e.Value, e.Span)
	}
}

func (w walker[N]) constant(v Visitor, c Constant, sp span.Span) {
	if v = enter(v, KindConstant, c, sp); v == nil {
		return
	}
	switch c := c.(type) {
	case Integer:
		if v := enter(v, KindInteger, c, sp); v != nil {
			w.leaf(v, KindIntegerBase, c.Base, sp)
			if s := enter(v, KindIntegerSuffix, c.Suffix, sp); s != nil {
				w.leaf(s, KindIntegerSize, c.Suffix.Size, sp)
			}
		}
	case Float:
		if v := enter(v, KindFloat, c, sp); v != nil {
			w.leaf(v, KindFloatBase, c.Base, sp)
			if s := enter(v, KindFloatSuffix, c.Suffix, sp); s != nil {
				w.floatFormat(s, c.Suffix.Format, sp)
			}
		}
	}
}

func (w walker[N]) floatFormat(v Visitor, f FloatFormat, sp span.Span) {
	if v = enter(v, KindFloatFormat, f, sp); v == nil {
		return
	}
	if f.Kind == FormatTS18661 {
		w.ts18661FloatType(v, f.Extended, sp)
	}
}

func (w walker[N]) ts18661FloatType(v Visitor, t TS18661FloatType, sp span.Span) {
	if v = enter(v, KindTS18661FloatType, t, sp); v == nil {
		return
	}
	w.leaf(v, KindTS18661FloatFormat, t.Format, sp)
}

func (w walker[N]) expression(v Visitor, e Expression, sp span.Span) {
	if v = enter(v, KindExpression, e, sp); v == nil {
		return
	}
	switch e := e.(type) {
	case Identifier[N]:
		w.leaf(v, KindIdentifier, e, sp)
	case Constant:
		w.constant(v, e, sp)
	case StringLiteral:
		w.leaf(v, KindStringLiteral, e, sp)
	case *GenericSelection:
		if v := enter(v, KindGenericSelection, e, sp); v != nil {
			w.expression(v, e.Expression.Value, e.Expression.Span)
			for _, a := range e.Associations {
				w.genericAssociation(v, a.Value, a.Span)
			}
		}
	case *MemberExpression[N]:
		if v := enter(v, KindMemberExpression, e, sp); v != nil {
			w.leaf(v, KindMemberOperator, e.Operator.Value, e.Operator.Span)
			w.expression(v, e.Expression.Value, e.Expression.Span)
			w.identifier(v, e.Identifier)
		}
	case *CallExpression:
		if v := enter(v, KindCallExpression, e, sp); v != nil {
			w.expression(v, e.Callee.Value, e.Callee.Span)
			w.expressions(v, e.Arguments)
		}
	case *CompoundLiteral[N]:
		if v := enter(v, KindCompoundLiteral, e, sp); v != nil {
			w.typeName(v, e.TypeName.Value, e.TypeName.Span)
			for _, item := range e.InitializerList {
				w.initializerListItem(v, item.Value, item.Span)
			}
		}
	case *SizeOfType[N]:
		if v := enter(v, KindSizeOfType, e, sp); v != nil {
			w.typeName(v, e.TypeName.Value, e.TypeName.Span)
		}
	case *SizeOfValue:
		if v := enter(v, KindSizeOfValue, e, sp); v != nil {
			w.expression(v, e.Expression.Value, e.Expression.Span)
		}
	case *AlignOf[N]:
		if v := enter(v, KindAlignOf, e, sp); v != nil {
			w.typeName(v, e.TypeName.Value, e.TypeName.Span)
		}
	case *UnaryOperatorExpression:
		if v := enter(v, KindUnaryOperatorExpression, e, sp); v != nil {
			if e.Operator.Value.IsPostfix() {
				w.expression(v, e.Operand.Value, e.Operand.Span)
				w.leaf(v, KindUnaryOperator, e.Operator.Value, e.Operator.Span)
			} else {
				w.leaf(v, KindUnaryOperator, e.Operator.Value, e.Operator.Span)
				w.expression(v, e.Operand.Value, e.Operand.Span)
			}
		}
	case *CastExpression[N]:
		if v := enter(v, KindCastExpression, e, sp); v != nil {
			w.typeName(v, e.TypeName.Value, e.TypeName.Span)
			w.expression(v, e.Expression.Value, e.Expression.Span)
		}
	case *BinaryOperatorExpression:
		if v := enter(v, KindBinaryOperatorExpr, e, sp); v != nil {
			w.expression(v, e.LHS.Value, e.LHS.Span)
			w.expression(v, e.RHS.Value, e.RHS.Span)
			w.leaf(v, KindBinaryOperator, e.Operator.Value, e.Operator.Span)
		}
	case *ConditionalExpression:
		if v := enter(v, KindConditionalExpression, e, sp); v != nil {
			w.expression(v, e.Condition.Value, e.Condition.Span)
			w.expression(v, e.Then.Value, e.Then.Span)
			w.expression(v, e.Else.Value, e.Else.Span)
		}
	case CommaExpression:
		w.expressions(v, e)
	case *VaArgExpression[N]:
		if v := enter(v, KindVaArgExpression, e, sp); v != nil {
			w.expression(v, e.VaList.Value, e.VaList.Span)
			w.typeName(v, e.TypeName.Value, e.TypeName.Span)
		}
	case *OffsetOfExpression[N]:
		if v := enter(v, KindOffsetOfExpression, e, sp); v != nil {
			w.typeName(v, e.TypeName.Value, e.TypeName.Span)
			w.offsetDesignator(v, e.Designator.Value, e.Designator.Span)
		}
	case *StatementExpression:
		w.statement(v, e.Statement.Value, e.Statement.Span)
	}
}

func (w walker[N]) genericAssociation(v Visitor, a GenericAssociation, sp span.Span) {
	if v = enter(v, KindGenericAssociation, a, sp); v == nil {
		return
	}
	switch a := a.(type) {
	case *GenericAssociationType[N]:
		if v := enter(v, KindGenericAssociationType, a, sp); v != nil {
			w.typeName(v, a.TypeName.Value, a.TypeName.Span)
			w.expression(v, a.Expression.Value, a.Expression.Span)
		}
	case *GenericAssociationDefault:
		w.expression(v, a.Expression.Value, a.Expression.Span)
	}
}

func (w walker[N]) offsetDesignator(v Visitor, d *OffsetDesignator[N], sp span.Span) {
	if v = enter(v, KindOffsetDesignator, d, sp); v == nil {
		return
	}
	w.identifier(v, d.Base)
	for _, m := range d.Members {
		mv := enter(v, KindOffsetMember, m.Value, m.Span)
		if mv == nil {
			continue
		}
		switch m := m.Value.(type) {
		case OffsetMemberField[N]:
			w.identifier(mv, m.Identifier)
		case OffsetMemberIndirect[N]:
			w.identifier(mv, m.Identifier)
		case OffsetMemberIndex:
			w.expression(mv, m.Expression.Value, m.Expression.Span)
		}
	}
}

func (w walker[N]) declaration(v Visitor, d *Declaration[N], sp span.Span) {
	if v = enter(v, KindDeclaration, d, sp); v == nil {
		return
	}
	w.declarationSpecifiers(v, d.Specifiers)
	for _, id := range d.Declarators {
		iv := enter(v, KindInitDeclarator, id.Value, id.Span)
		if iv == nil {
			continue
		}
		w.declarator(iv, id.Value.Declarator.Value, id.Value.Declarator.Span)
		if init := id.Value.Initializer; init != nil {
			w.initializer(iv, init.Value, init.Span)
		}
	}
}

func (w walker[N]) declarationSpecifiers(v Visitor, list []Node[DeclarationSpecifier]) {
	for _, s := range list {
		w.declarationSpecifier(v, s.Value, s.Span)
	}
}

func (w walker[N]) declarationSpecifier(v Visitor, s DeclarationSpecifier, sp span.Span) {
	if v = enter(v, KindDeclarationSpecifier, s, sp); v == nil {
		return
	}
	switch s := s.(type) {
	case StorageClassSpecifier:
		w.leaf(v, KindStorageClassSpecifier, s, sp)
	case TypeSpecifier:
		w.typeSpecifier(v, s, sp)
	case TypeQualifier:
		w.leaf(v, KindTypeQualifier, s, sp)
	case FunctionSpecifier:
		w.leaf(v, KindFunctionSpecifier, s, sp)
	case AlignmentSpecifier:
		if v := enter(v, KindAlignmentSpecifier, s, sp); v != nil {
			switch a := s.(type) {
			case *AlignAsType[N]:
				w.typeName(v, a.TypeName.Value, a.TypeName.Span)
			case *AlignAsConstant:
				w.expression(v, a.Expression.Value, a.Expression.Span)
			}
		}
	case Extensions:
		w.extensions(v, s)
	}
}

func (w walker[N]) specifierQualifiers(v Visitor, list []Node[SpecifierQualifier]) {
	for _, s := range list {
		sv := enter(v, KindSpecifierQualifier, s.Value, s.Span)
		if sv == nil {
			continue
		}
		switch q := s.Value.(type) {
		case TypeSpecifier:
			w.typeSpecifier(sv, q, s.Span)
		case TypeQualifier:
			w.leaf(sv, KindTypeQualifier, q, s.Span)
		case Extensions:
			w.extensions(sv, q)
		}
	}
}

func (w walker[N]) typeSpecifier(v Visitor, t TypeSpecifier, sp span.Span) {
	if v = enter(v, KindTypeSpecifier, t, sp); v == nil {
		return
	}
	switch t := t.(type) {
	case *AtomicType[N]:
		w.typeName(v, t.TypeName.Value, t.TypeName.Span)
	case *StructType[N]:
		w.structType(v, t, sp)
	case *EnumType[N]:
		w.enumType(v, t, sp)
	case TypedefName[N]:
		w.identifier(v, t.Identifier)
	case TypeOf:
		if v := enter(v, KindTypeOf, t, sp); v != nil {
			switch t := t.(type) {
			case *TypeOfExpression:
				w.expression(v, t.Expression.Value, t.Expression.Span)
			case *TypeOfType[N]:
				w.typeName(v, t.TypeName.Value, t.TypeName.Span)
			}
		}
	case TS18661FloatType:
		w.ts18661FloatType(v, t, sp)
	}
}

func (w walker[N]) structType(v Visitor, s *StructType[N], sp span.Span) {
	if v = enter(v, KindStructType, s, sp); v == nil {
		return
	}
	w.leaf(v, KindStructKind, s.Kind.Value, s.Kind.Span)
	if s.Identifier != nil {
		w.identifier(v, *s.Identifier)
	}
	for _, d := range s.Declarations {
		dv := enter(v, KindStructDeclaration, d.Value, d.Span)
		if dv == nil {
			continue
		}
		switch d := d.Value.(type) {
		case *StructField[N]:
			w.structField(dv, d, sp)
		case *StaticAssert:
			w.staticAssert(dv, d, sp)
		}
	}
}

func (w walker[N]) structField(v Visitor, f *StructField[N], sp span.Span) {
	if v = enter(v, KindStructField, f, sp); v == nil {
		return
	}
	w.specifierQualifiers(v, f.Specifiers)
	for _, d := range f.Declarators {
		dv := enter(v, KindStructDeclarator, d.Value, d.Span)
		if dv == nil {
			continue
		}
		if d.Value.Declarator != nil {
			w.declarator(dv, d.Value.Declarator.Value, d.Value.Declarator.Span)
		}
		if d.Value.BitWidth != nil {
			w.expression(dv, d.Value.BitWidth.Value, d.Value.BitWidth.Span)
		}
	}
}

func (w walker[N]) enumType(v Visitor, e *EnumType[N], sp span.Span) {
	if v = enter(v, KindEnumType, e, sp); v == nil {
		return
	}
	if e.Identifier != nil {
		w.identifier(v, *e.Identifier)
	}
	for _, en := range e.Enumerators {
		ev := enter(v, KindEnumerator, en.Value, en.Span)
		if ev == nil {
			continue
		}
		w.identifier(ev, en.Value.Identifier)
		if en.Value.Expression != nil {
			w.expression(ev, en.Value.Expression.Value, en.Value.Expression.Span)
		}
		w.extensions(ev, en.Value.Extensions)
	}
}

func (w walker[N]) declarator(v Visitor, d *Declarator[N], sp span.Span) {
	if v = enter(v, KindDeclarator, d, sp); v == nil {
		return
	}
	if kv := enter(v, KindDeclaratorKind, d.Kind.Value, d.Kind.Span); kv != nil {
		switch k := d.Kind.Value.(type) {
		case Identifier[N]:
			w.leaf(kv, KindIdentifier, k, d.Kind.Span)
		case *Declarator[N]:
			w.declarator(kv, k, d.Kind.Span)
		}
	}
	for _, dd := range d.Derived {
		w.derivedDeclarator(v, dd.Value, dd.Span)
	}
	w.extensions(v, d.Extensions)
}

func (w walker[N]) derivedDeclarator(v Visitor, d DerivedDeclarator, sp span.Span) {
	if v = enter(v, KindDerivedDeclarator, d, sp); v == nil {
		return
	}
	switch d := d.(type) {
	case PointerDeclarator:
		w.pointerQualifiers(v, d)
	case BlockDeclarator:
		w.pointerQualifiers(v, d)
	case KRFunctionDeclarator[N]:
		for _, id := range d {
			w.identifier(v, id)
		}
	case *ArrayDeclarator:
		if v := enter(v, KindArrayDeclarator, d, sp); v != nil {
			for _, q := range d.Qualifiers {
				w.leaf(v, KindTypeQualifier, q.Value, q.Span)
			}
			if sv := enter(v, KindArraySize, d.Size, sp); sv != nil && d.Size.Expression != nil {
				w.expression(sv, d.Size.Expression.Value, d.Size.Expression.Span)
			}
		}
	case *FunctionDeclarator[N]:
		if v := enter(v, KindFunctionDeclarator, d, sp); v != nil {
			for _, p := range d.Parameters {
				w.parameterDeclaration(v, p.Value, p.Span)
			}
			w.leaf(v, KindEllipsis, d.Ellipsis, sp)
		}
	}
}

func (w walker[N]) pointerQualifiers(v Visitor, list []Node[PointerQualifier]) {
	for _, q := range list {
		qv := enter(v, KindPointerQualifier, q.Value, q.Span)
		if qv == nil {
			continue
		}
		switch qual := q.Value.(type) {
		case TypeQualifier:
			w.leaf(qv, KindTypeQualifier, qual, q.Span)
		case Extensions:
			w.extensions(qv, qual)
		}
	}
}

func (w walker[N]) parameterDeclaration(v Visitor, p *ParameterDeclaration[N], sp span.Span) {
	if v = enter(v, KindParameterDeclaration, p, sp); v == nil {
		return
	}
	w.declarationSpecifiers(v, p.Specifiers)
	if p.Declarator != nil {
		w.declarator(v, p.Declarator.Value, p.Declarator.Span)
	}
	w.extensions(v, p.Extensions)
}

func (w walker[N]) typeName(v Visitor, t *TypeName[N], sp span.Span) {
	if v = enter(v, KindTypeName, t, sp); v == nil {
		return
	}
	w.specifierQualifiers(v, t.Specifiers)
	if t.Declarator != nil {
		w.declarator(v, t.Declarator.Value, t.Declarator.Span)
	}
}

func (w walker[N]) initializer(v Visitor, i Initializer, sp span.Span) {
	if v = enter(v, KindInitializer, i, sp); v == nil {
		return
	}
	switch i := i.(type) {
	case *ExpressionInitializer:
		w.expression(v, i.Expression.Value, i.Expression.Span)
	case ListInitializer[N]:
		for _, item := range i {
			w.initializerListItem(v, item.Value, item.Span)
		}
	}
}

func (w walker[N]) initializerListItem(v Visitor, item *InitializerListItem[N], sp span.Span) {
	if v = enter(v, KindInitializerListItem, item, sp); v == nil {
		return
	}
	for _, d := range item.Designation {
		dv := enter(v, KindDesignator, d.Value, d.Span)
		if dv == nil {
			continue
		}
		switch des := d.Value.(type) {
		case IndexDesignator:
			w.expression(dv, des.Expression.Value, des.Expression.Span)
		case MemberDesignator[N]:
			w.identifier(dv, des.Identifier)
		case *RangeDesignator:
			if rv := enter(dv, KindRangeDesignator, des, d.Span); rv != nil {
				w.expression(rv, des.From.Value, des.From.Span)
				w.expression(rv, des.To.Value, des.To.Span)
			}
		}
	}
	w.initializer(v, item.Initializer.Value, item.Initializer.Span)
}

func (w walker[N]) staticAssert(v Visitor, s *StaticAssert, sp span.Span) {
	if v = enter(v, KindStaticAssert, s, sp); v == nil {
		return
	}
	w.expression(v, s.Expression.Value, s.Expression.Span)
	w.stringLiteral(v, s.Message)
}

func (w walker[N]) statement(v Visitor, s Statement, sp span.Span) {
	if v = enter(v, KindStatement, s, sp); v == nil {
		return
	}
	switch s := s.(type) {
	case *LabeledStatement:
		if v := enter(v, KindLabeledStatement, s, sp); v != nil {
			w.label(v, s.Label.Value, s.Label.Span)
			w.statement(v, s.Statement.Value, s.Statement.Span)
		}
	case CompoundStatement:
		for _, item := range s {
			w.blockItem(v, item.Value, item.Span)
		}
	case ExpressionStatement:
		if s.Expression != nil {
			w.expression(v, s.Expression.Value, s.Expression.Span)
		}
	case *IfStatement:
		if v := enter(v, KindIfStatement, s, sp); v != nil {
			w.expression(v, s.Condition.Value, s.Condition.Span)
			w.statement(v, s.Then.Value, s.Then.Span)
			if s.Else != nil {
				w.statement(v, s.Else.Value, s.Else.Span)
			}
		}
	case *SwitchStatement:
		if v := enter(v, KindSwitchStatement, s, sp); v != nil {
			w.expression(v, s.Expression.Value, s.Expression.Span)
			w.statement(v, s.Statement.Value, s.Statement.Span)
		}
	case *WhileStatement:
		if v := enter(v, KindWhileStatement, s, sp); v != nil {
			w.expression(v, s.Expression.Value, s.Expression.Span)
			w.statement(v, s.Statement.Value, s.Statement.Span)
		}
	case *DoWhileStatement:
		if v := enter(v, KindDoWhileStatement, s, sp); v != nil {
			w.statement(v, s.Statement.Value, s.Statement.Span)
			w.expression(v, s.Expression.Value, s.Expression.Span)
		}
	case *ForStatement:
		if v := enter(v, KindForStatement, s, sp); v != nil {
			w.forInitializer(v, s.Initializer.Value, s.Initializer.Span)
			if s.Condition != nil {
				w.expression(v, s.Condition.Value, s.Condition.Span)
			}
			if s.Step != nil {
				w.expression(v, s.Step.Value, s.Step.Span)
			}
			w.statement(v, s.Statement.Value, s.Statement.Span)
		}
	case GotoStatement[N]:
		w.identifier(v, s.Label)
	case ReturnStatement:
		if s.Expression != nil {
			w.expression(v, s.Expression.Value, s.Expression.Span)
		}
	case AsmStatement:
		w.asmStatement(v, s, sp)
	}
}

func (w walker[N]) label(v Visitor, l Label, sp span.Span) {
	if v = enter(v, KindLabel, l, sp); v == nil {
		return
	}
	switch l := l.(type) {
	case Identifier[N]:
		w.leaf(v, KindIdentifier, l, sp)
	case CaseLabel:
		w.expression(v, l.Expression.Value, l.Expression.Span)
	case *CaseRange:
		if v := enter(v, KindCaseRange, l, sp); v != nil {
			w.expression(v, l.Low.Value, l.Low.Span)
			w.expression(v, l.High.Value, l.High.Span)
		}
	}
}

func (w walker[N]) forInitializer(v Visitor, f ForInitializer, sp span.Span) {
	if v = enter(v, KindForInitializer, f, sp); v == nil {
		return
	}
	switch f := f.(type) {
	case ForExpression:
		w.expression(v, f.Expression.Value, f.Expression.Span)
	case *Declaration[N]:
		w.declaration(v, f, sp)
	case *StaticAssert:
		w.staticAssert(v, f, sp)
	}
}

func (w walker[N]) blockItem(v Visitor, b BlockItem, sp span.Span) {
	if v = enter(v, KindBlockItem, b, sp); v == nil {
		return
	}
	switch b := b.(type) {
	case *Declaration[N]:
		w.declaration(v, b, sp)
	case *StaticAssert:
		w.staticAssert(v, b, sp)
	case Statement:
		w.statement(v, b, sp)
	}
}

func (w walker[N]) externalDeclaration(v Visitor, d ExternalDeclaration, sp span.Span) {
	if v = enter(v, KindExternalDeclaration, d, sp); v == nil {
		return
	}
	switch d := d.(type) {
	case *Declaration[N]:
		w.declaration(v, d, sp)
	case *StaticAssert:
		w.staticAssert(v, d, sp)
	case *FunctionDefinition[N]:
		if v := enter(v, KindFunctionDefinition, d, sp); v != nil {
			w.declarationSpecifiers(v, d.Specifiers)
			w.declarator(v, d.Declarator.Value, d.Declarator.Span)
			for _, decl := range d.Declarations {
				w.declaration(v, decl.Value, decl.Span)
			}
			w.statement(v, d.Statement.Value, d.Statement.Span)
		}
	}
}

func (w walker[N]) extension(v Visitor, e Extension, sp span.Span) {
	if v = enter(v, KindExtension, e, sp); v == nil {
		return
	}
	switch e := e.(type) {
	case *Attribute:
		if v := enter(v, KindAttribute, e, sp); v != nil {
			w.expressions(v, e.Arguments)
		}
	case AsmLabel:
		w.stringLiteral(v, e.Symbol)
	case *AvailabilityAttribute[N]:
		if v := enter(v, KindAvailabilityAttribute, e, sp); v != nil {
			for _, c := range e.Clauses {
				cv := enter(v, KindAvailabilityClause, c.Value, c.Span)
				if cv != nil && c.Value.Text != nil {
					w.stringLiteral(cv, *c.Value.Text)
				}
			}
		}
	}
}

func (w walker[N]) asmStatement(v Visitor, s AsmStatement, sp span.Span) {
	if v = enter(v, KindAsmStatement, s, sp); v == nil {
		return
	}
	switch s := s.(type) {
	case GnuBasicAsm:
		w.stringLiteral(v, s.Template)
	case *GnuExtendedAsm[N]:
		if v := enter(v, KindGnuExtendedAsm, s, sp); v != nil {
			if s.Qualifier != nil {
				w.leaf(v, KindTypeQualifier, s.Qualifier.Value, s.Qualifier.Span)
			}
			w.stringLiteral(v, s.Template)
			for _, o := range s.Outputs {
				w.asmOperand(v, o.Value, o.Span)
			}
			for _, i := range s.Inputs {
				w.asmOperand(v, i.Value, i.Span)
			}
			for _, c := range s.Clobbers {
				w.stringLiteral(v, c)
			}
		}
	}
}

func (w walker[N]) asmOperand(v Visitor, o *GnuAsmOperand[N], sp span.Span) {
	if v = enter(v, KindGnuAsmOperand, o, sp); v == nil {
		return
	}
	if o.SymbolicName != nil {
		w.identifier(v, *o.SymbolicName)
	}
	w.stringLiteral(v, o.Constraints)
	w.expression(v, o.VariableName.Value, o.VariableName.Span)
}

func (w walker[N]) translationUnit(v Visitor, tu TranslationUnit, sp span.Span) {
	if v = enter(v, KindTranslationUnit, tu, sp); v == nil {
		return
	}
	for _, d := range tu {
		w.externalDeclaration(v, d.Value, d.Span)
	}
}
