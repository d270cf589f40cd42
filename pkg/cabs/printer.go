package cabs

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders a tree as C source. Parsing the output with the same
// flavor and typedef names gives back an equal tree, spans aside.
type Printer[N Name] struct {
	w      io.Writer
	names  Interner[N]
	indent int
}

// NewPrinter creates a printer writing to w.
func NewPrinter[N Name](w io.Writer, names Interner[N]) *Printer[N] {
	return &Printer[N]{w: w, names: names}
}

// Fprint writes root as C source to w. root is a translation unit,
// declaration, statement or expression, bare or wrapped in a Node.
func Fprint[N Name](w io.Writer, names Interner[N], root any) {
	NewPrinter(w, names).Print(root)
}

// Sprint returns root as C source.
func Sprint[N Name](names Interner[N], root any) string {
	var sb strings.Builder
	Fprint(&sb, names, root)
	return sb.String()
}

// Print writes root. See Fprint.
func (p *Printer[N]) Print(root any) {
	switch r := root.(type) {
	case Node[TranslationUnit]:
		p.PrintTranslationUnit(r.Value)
	case TranslationUnit:
		p.PrintTranslationUnit(r)
	case Node[*Declaration[N]]:
		p.declaration(r.Value)
		p.write("\n")
	case *Declaration[N]:
		p.declaration(r)
		p.write("\n")
	case Node[Statement]:
		p.statement(r.Value)
		p.write("\n")
	case Statement:
		p.statement(r)
		p.write("\n")
	case Node[Expression]:
		p.expression(r, precComma)
	case Expression:
		p.expression(Node[Expression]{Value: r}, precComma)
	default:
		fmt.Fprintf(p.w, "/* unknown node %T */", root)
	}
}

// PrintTranslationUnit prints each external declaration followed by a
// blank line.
func (p *Printer[N]) PrintTranslationUnit(tu TranslationUnit) {
	for _, d := range tu {
		p.externalDeclaration(d.Value)
		p.write("\n\n")
	}
}

func (p *Printer[N]) write(parts ...string) {
	for _, s := range parts {
		io.WriteString(p.w, s)
	}
}

func (p *Printer[N]) newline() {
	p.write("\n", strings.Repeat("  ", p.indent))
}

func (p *Printer[N]) name(id Identifier[N]) {
	p.write(p.names.Recover(id.Name))
}

func (p *Printer[N]) externalDeclaration(d ExternalDeclaration) {
	switch d := d.(type) {
	case *Declaration[N]:
		p.declaration(d)
	case *StaticAssert:
		p.staticAssert(d)
	case *FunctionDefinition[N]:
		p.functionDefinition(d)
	default:
		fmt.Fprintf(p.w, "/* unknown external declaration %T */", d)
	}
}

func (p *Printer[N]) functionDefinition(f *FunctionDefinition[N]) {
	p.declarationSpecifiers(f.Specifiers)
	p.write(" ")
	p.declarator(f.Declarator.Value)
	for _, d := range f.Declarations {
		p.newline()
		p.declaration(d.Value)
	}
	p.newline()
	p.statement(f.Statement.Value)
}

// Declarations

func (p *Printer[N]) declaration(d *Declaration[N]) {
	p.declarationSpecifiers(d.Specifiers)
	for i, init := range d.Declarators {
		if i == 0 {
			p.write(" ")
		} else {
			p.write(", ")
		}
		p.declarator(init.Value.Declarator.Value)
		if init.Value.Initializer != nil {
			p.write(" = ")
			p.initializer(init.Value.Initializer.Value)
		}
	}
	p.write(";")
}

func (p *Printer[N]) staticAssert(s *StaticAssert) {
	p.write("_Static_assert(")
	p.expression(s.Expression, precConditional)
	p.write(", ")
	p.stringLiteral(s.Message.Value)
	p.write(");")
}

func (p *Printer[N]) declarationSpecifiers(list []Node[DeclarationSpecifier]) {
	for i, s := range list {
		if i > 0 {
			p.write(" ")
		}
		p.declarationSpecifier(s.Value)
	}
}

func (p *Printer[N]) declarationSpecifier(s DeclarationSpecifier) {
	switch s := s.(type) {
	case StorageClassSpecifier:
		p.write(storageClassText[s])
	case FunctionSpecifier:
		p.write(functionSpecifierText[s])
	case *AlignAsType[N]:
		p.write("_Alignas(")
		p.typeName(s.TypeName.Value)
		p.write(")")
	case *AlignAsConstant:
		p.write("_Alignas(")
		p.expression(s.Expression, precConditional)
		p.write(")")
	case SpecifierQualifier:
		p.specifierQualifier(s)
	default:
		fmt.Fprintf(p.w, "/* unknown specifier %T */", s)
	}
}

func (p *Printer[N]) specifierQualifiers(list []Node[SpecifierQualifier]) {
	for i, s := range list {
		if i > 0 {
			p.write(" ")
		}
		p.specifierQualifier(s.Value)
	}
}

func (p *Printer[N]) specifierQualifier(s SpecifierQualifier) {
	switch s := s.(type) {
	case TypeQualifier:
		p.write(qualifierText[s])
	case Extensions:
		p.extensionList(s)
	case TypeSpecifier:
		p.typeSpecifier(s)
	default:
		fmt.Fprintf(p.w, "/* unknown specifier %T */", s)
	}
}

func (p *Printer[N]) typeSpecifier(t TypeSpecifier) {
	switch t := t.(type) {
	case BasicType:
		p.write(basicTypeText[t])
	case TS18661FloatType:
		p.write(ts18661TypeText(t))
	case TypedefName[N]:
		p.name(t.Identifier.Value)
	case *AtomicType[N]:
		p.write("_Atomic(")
		p.typeName(t.TypeName.Value)
		p.write(")")
	case *TypeOfExpression:
		p.write("__typeof__(")
		p.expression(t.Expression, precComma)
		p.write(")")
	case *TypeOfType[N]:
		p.write("__typeof__(")
		p.typeName(t.TypeName.Value)
		p.write(")")
	case *StructType[N]:
		p.structType(t)
	case *EnumType[N]:
		p.enumType(t)
	default:
		fmt.Fprintf(p.w, "/* unknown type specifier %T */", t)
	}
}

func (p *Printer[N]) structType(s *StructType[N]) {
	if s.Kind.Value == KindUnion {
		p.write("union")
	} else {
		p.write("struct")
	}
	if s.Identifier != nil {
		p.write(" ")
		p.name(s.Identifier.Value)
	}
	if !s.Defined {
		return
	}
	p.write(" {")
	p.indent++
	for _, d := range s.Declarations {
		p.newline()
		switch d := d.Value.(type) {
		case *StructField[N]:
			p.structField(d)
		case *StaticAssert:
			p.staticAssert(d)
		}
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *Printer[N]) structField(f *StructField[N]) {
	p.specifierQualifiers(f.Specifiers)
	for i, d := range f.Declarators {
		if i == 0 {
			p.write(" ")
		} else {
			p.write(", ")
		}
		if d.Value.Declarator != nil {
			p.declarator(d.Value.Declarator.Value)
		}
		if d.Value.BitWidth != nil {
			p.write(" : ")
			p.expression(*d.Value.BitWidth, precConditional)
		}
	}
	p.write(";")
}

func (p *Printer[N]) enumType(e *EnumType[N]) {
	p.write("enum")
	if e.Identifier != nil {
		p.write(" ")
		p.name(e.Identifier.Value)
	}
	if len(e.Enumerators) == 0 {
		return
	}
	p.write(" {")
	p.indent++
	for i, en := range e.Enumerators {
		if i > 0 {
			p.write(",")
		}
		p.newline()
		p.name(en.Value.Identifier.Value)
		for _, ext := range en.Value.Extensions {
			p.write(" ")
			p.extension(ext.Value)
		}
		if en.Value.Expression != nil {
			p.write(" = ")
			p.expression(*en.Value.Expression, precConditional)
		}
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *Printer[N]) typeName(t *TypeName[N]) {
	p.specifierQualifiers(t.Specifiers)
	if t.Declarator != nil {
		p.write(" ")
		p.declarator(t.Declarator.Value)
	}
}

// declarator prints the leading pointers, the name or nested declarator,
// the array and function suffixes, then the extensions.
func (p *Printer[N]) declarator(d *Declarator[N]) {
	i := 0
	for ; i < len(d.Derived); i++ {
		switch q := d.Derived[i].Value.(type) {
		case PointerDeclarator:
			p.write("*")
			p.pointerQualifiers(q)
			continue
		case BlockDeclarator:
			p.write("^")
			p.pointerQualifiers(q)
			continue
		}
		break
	}

	switch k := d.Kind.Value.(type) {
	case Identifier[N]:
		p.name(k)
	case *Declarator[N]:
		p.write("(")
		p.declarator(k)
		p.write(")")
	}

	for ; i < len(d.Derived); i++ {
		switch s := d.Derived[i].Value.(type) {
		case *ArrayDeclarator:
			p.arrayDeclarator(s)
		case *FunctionDeclarator[N]:
			p.functionDeclarator(s)
		case KRFunctionDeclarator[N]:
			p.write("(")
			for j, id := range s {
				if j > 0 {
					p.write(", ")
				}
				p.name(id.Value)
			}
			p.write(")")
		default:
			fmt.Fprintf(p.w, "/* misplaced %T */", s)
		}
	}

	for _, ext := range d.Extensions {
		p.write(" ")
		p.extension(ext.Value)
	}
}

func (p *Printer[N]) pointerQualifiers(list []Node[PointerQualifier]) {
	for _, q := range list {
		switch q := q.Value.(type) {
		case TypeQualifier:
			p.write(qualifierText[q])
		case Extensions:
			p.extensionList(q)
		}
		p.write(" ")
	}
}

func (p *Printer[N]) arrayDeclarator(a *ArrayDeclarator) {
	p.write("[")
	var words []string
	if a.Size.Kind == SizeStaticExpression {
		words = append(words, "static")
	}
	for _, q := range a.Qualifiers {
		words = append(words, qualifierText[q.Value])
	}
	p.write(strings.Join(words, " "))
	if len(words) > 0 && a.Size.Kind != SizeUnknown {
		p.write(" ")
	}
	switch a.Size.Kind {
	case SizeVariableUnknown:
		p.write("*")
	case SizeVariableExpression, SizeStaticExpression:
		p.expression(*a.Size.Expression, precAssignment)
	}
	p.write("]")
}

func (p *Printer[N]) functionDeclarator(f *FunctionDeclarator[N]) {
	p.write("(")
	for i, param := range f.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.declarationSpecifiers(param.Value.Specifiers)
		if param.Value.Declarator != nil {
			p.write(" ")
			p.declarator(param.Value.Declarator.Value)
		}
		for _, ext := range param.Value.Extensions {
			p.write(" ")
			p.extension(ext.Value)
		}
	}
	if f.Ellipsis == EllipsisSome {
		p.write(", ...")
	}
	p.write(")")
}

func (p *Printer[N]) initializer(i Initializer) {
	switch i := i.(type) {
	case *ExpressionInitializer:
		p.expression(i.Expression, precAssignment)
	case ListInitializer[N]:
		p.initializerList(i)
	}
}

func (p *Printer[N]) initializerList(items []Node[*InitializerListItem[N]]) {
	p.write("{")
	for i, item := range items {
		if i > 0 {
			p.write(",")
		}
		p.write(" ")
		for _, d := range item.Value.Designation {
			p.designator(d.Value)
		}
		if len(item.Value.Designation) > 0 {
			p.write(" = ")
		}
		p.initializer(item.Value.Initializer.Value)
	}
	if len(items) > 0 {
		p.write(" ")
	}
	p.write("}")
}

func (p *Printer[N]) designator(d Designator) {
	switch d := d.(type) {
	case IndexDesignator:
		p.write("[")
		p.expression(d.Expression, precConditional)
		p.write("]")
	case MemberDesignator[N]:
		p.write(".")
		p.name(d.Identifier.Value)
	case *RangeDesignator:
		p.write("[")
		p.expression(d.From, precConditional)
		p.write(" ... ")
		p.expression(d.To, precConditional)
		p.write("]")
	}
}

// Extensions

func (p *Printer[N]) extensionList(list Extensions) {
	for i, ext := range list {
		if i > 0 {
			p.write(" ")
		}
		p.extension(ext.Value)
	}
}

func (p *Printer[N]) extension(e Extension) {
	switch e := e.(type) {
	case *Attribute:
		p.write("__attribute__((", e.Name.Value)
		if len(e.Arguments) > 0 {
			p.write("(")
			p.expressionList(e.Arguments)
			p.write(")")
		}
		p.write("))")
	case AsmLabel:
		p.write("__asm__(")
		p.stringLiteral(e.Symbol.Value)
		p.write(")")
	case *AvailabilityAttribute[N]:
		p.write("__attribute__((availability(")
		p.name(e.Platform.Value)
		for _, c := range e.Clauses {
			p.write(", ")
			p.availabilityClause(c.Value)
		}
		p.write(")))")
	}
}

func (p *Printer[N]) availabilityClause(c *AvailabilityClause) {
	p.write(strings.ToLower(c.Kind.String()))
	switch {
	case c.Version != nil:
		p.write("=", c.Version.Value.String())
	case c.Text != nil:
		p.write("=")
		p.stringLiteral(c.Text.Value)
	}
}

// Statements

func (p *Printer[N]) statement(s Statement) {
	switch s := s.(type) {
	case *LabeledStatement:
		p.label(s.Label.Value)
		p.newline()
		p.statement(s.Statement.Value)
	case CompoundStatement:
		p.compound(s)
	case ExpressionStatement:
		if s.Expression != nil {
			p.expression(*s.Expression, precComma)
		}
		p.write(";")
	case *IfStatement:
		p.write("if (")
		p.expression(s.Condition, precComma)
		p.write(")")
		then := s.Then.Value
		if inner, ok := then.(*IfStatement); ok && inner.Else == nil && s.Else != nil {
			// keep the else with the outer if
			then = CompoundStatement{{Value: inner}}
		}
		compound := p.body(then)
		if s.Else == nil {
			return
		}
		if compound {
			p.write(" ")
		} else {
			p.newline()
		}
		p.write("else")
		if elif, ok := s.Else.Value.(*IfStatement); ok {
			p.write(" ")
			p.statement(elif)
			return
		}
		p.body(s.Else.Value)
	case *SwitchStatement:
		p.write("switch (")
		p.expression(s.Expression, precComma)
		p.write(")")
		p.body(s.Statement.Value)
	case *WhileStatement:
		p.write("while (")
		p.expression(s.Expression, precComma)
		p.write(")")
		p.body(s.Statement.Value)
	case *DoWhileStatement:
		p.write("do")
		if p.body(s.Statement.Value) {
			p.write(" ")
		} else {
			p.newline()
		}
		p.write("while (")
		p.expression(s.Expression, precComma)
		p.write(");")
	case *ForStatement:
		p.forStatement(s)
	case GotoStatement[N]:
		p.write("goto ")
		p.name(s.Label.Value)
		p.write(";")
	case ContinueStatement:
		p.write("continue;")
	case BreakStatement:
		p.write("break;")
	case ReturnStatement:
		p.write("return")
		if s.Expression != nil {
			p.write(" ")
			p.expression(*s.Expression, precComma)
		}
		p.write(";")
	case GnuBasicAsm:
		p.write("__asm__(")
		p.stringLiteral(s.Template.Value)
		p.write(");")
	case *GnuExtendedAsm[N]:
		p.extendedAsm(s)
	default:
		fmt.Fprintf(p.w, "/* unknown statement %T */", s)
	}
}

// body prints the statement controlled by if, while and the like, and
// reports whether it was a compound statement.
func (p *Printer[N]) body(s Statement) bool {
	if c, ok := s.(CompoundStatement); ok {
		p.write(" ")
		p.compound(c)
		return true
	}
	p.indent++
	p.newline()
	p.statement(s)
	p.indent--
	return false
}

func (p *Printer[N]) compound(items CompoundStatement) {
	p.write("{")
	p.indent++
	for _, item := range items {
		p.newline()
		p.blockItem(item.Value)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *Printer[N]) blockItem(item BlockItem) {
	switch item := item.(type) {
	case *Declaration[N]:
		p.declaration(item)
	case *StaticAssert:
		p.staticAssert(item)
	case Statement:
		p.statement(item)
	}
}

func (p *Printer[N]) label(l Label) {
	switch l := l.(type) {
	case Identifier[N]:
		p.name(l)
	case CaseLabel:
		p.write("case ")
		p.expression(l.Expression, precConditional)
	case *CaseRange:
		p.write("case ")
		p.expression(l.Low, precConditional)
		p.write(" ... ")
		p.expression(l.High, precConditional)
	case DefaultLabel:
		p.write("default")
	}
	p.write(":")
}

func (p *Printer[N]) forStatement(s *ForStatement) {
	p.write("for (")
	switch init := s.Initializer.Value.(type) {
	case ForEmpty:
		p.write(";")
	case ForExpression:
		p.expression(init.Expression, precComma)
		p.write(";")
	case *Declaration[N]:
		p.declaration(init)
	case *StaticAssert:
		p.staticAssert(init)
	}
	if s.Condition != nil {
		p.write(" ")
		p.expression(*s.Condition, precComma)
	}
	p.write(";")
	if s.Step != nil {
		p.write(" ")
		p.expression(*s.Step, precComma)
	}
	p.write(")")
	p.body(s.Statement.Value)
}

func (p *Printer[N]) extendedAsm(s *GnuExtendedAsm[N]) {
	p.write("__asm__ ")
	if s.Qualifier != nil {
		p.write(qualifierText[s.Qualifier.Value], " ")
	}
	p.write("(")
	p.stringLiteral(s.Template.Value)

	sections := 0
	switch {
	case len(s.Clobbers) > 0:
		sections = 3
	case len(s.Inputs) > 0:
		sections = 2
	case len(s.Outputs) > 0 || s.Qualifier == nil:
		// without a qualifier or operands it would read back as basic asm
		sections = 1
	}
	operandLists := [][]Node[*GnuAsmOperand[N]]{s.Outputs, s.Inputs}
	for i := 0; i < sections; i++ {
		p.write(" :")
		if i == 2 {
			for j, c := range s.Clobbers {
				if j > 0 {
					p.write(",")
				}
				p.write(" ")
				p.stringLiteral(c.Value)
			}
			break
		}
		for j, op := range operandLists[i] {
			if j > 0 {
				p.write(",")
			}
			p.write(" ")
			p.asmOperand(op.Value)
		}
	}
	p.write(");")
}

func (p *Printer[N]) asmOperand(op *GnuAsmOperand[N]) {
	if op.SymbolicName != nil {
		p.write("[")
		p.name(op.SymbolicName.Value)
		p.write("] ")
	}
	p.stringLiteral(op.Constraints.Value)
	p.write(" (")
	p.expression(op.VariableName, precComma)
	p.write(")")
}

// Expressions

// Precedence levels, loosest first.
const (
	precComma = iota + 1
	precAssignment
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

type binaryInfo struct {
	text string
	prec int
}

var binaryOperators = map[BinaryOperator]binaryInfo{
	OpMultiply:         {"*", precMultiplicative},
	OpDivide:           {"/", precMultiplicative},
	OpModulo:           {"%", precMultiplicative},
	OpAdd:              {"+", precAdditive},
	OpSubtract:         {"-", precAdditive},
	OpShiftLeft:        {"<<", precShift},
	OpShiftRight:       {">>", precShift},
	OpLess:             {"<", precRelational},
	OpGreater:          {">", precRelational},
	OpLessOrEqual:      {"<=", precRelational},
	OpGreaterOrEqual:   {">=", precRelational},
	OpEquals:           {"==", precEquality},
	OpNotEquals:        {"!=", precEquality},
	OpBitwiseAnd:       {"&", precBitwiseAnd},
	OpBitwiseXor:       {"^", precBitwiseXor},
	OpBitwiseOr:        {"|", precBitwiseOr},
	OpLogicalAnd:       {"&&", precLogicalAnd},
	OpLogicalOr:        {"||", precLogicalOr},
	OpAssign:           {"=", precAssignment},
	OpAssignMultiply:   {"*=", precAssignment},
	OpAssignDivide:     {"/=", precAssignment},
	OpAssignModulo:     {"%=", precAssignment},
	OpAssignPlus:       {"+=", precAssignment},
	OpAssignMinus:      {"-=", precAssignment},
	OpAssignShiftLeft:  {"<<=", precAssignment},
	OpAssignShiftRight: {">>=", precAssignment},
	OpAssignBitwiseAnd: {"&=", precAssignment},
	OpAssignBitwiseXor: {"^=", precAssignment},
	OpAssignBitwiseOr:  {"|=", precAssignment},
}

var unaryOperatorText = map[UnaryOperator]string{
	OpPostIncrement: "++",
	OpPostDecrement: "--",
	OpPreIncrement:  "++",
	OpPreDecrement:  "--",
	OpAddress:       "&",
	OpIndirection:   "*",
	OpPlus:          "+",
	OpMinus:         "-",
	OpComplement:    "~",
	OpNegate:        "!",
}

func (p *Printer[N]) precedence(e Expression) int {
	switch e := e.(type) {
	case *MemberExpression[N], *CallExpression, *CompoundLiteral[N]:
		return precPostfix
	case *UnaryOperatorExpression:
		if e.Operator.Value.IsPostfix() {
			return precPostfix
		}
		return precUnary
	case *SizeOfType[N], *SizeOfValue, *AlignOf[N], *CastExpression[N]:
		return precUnary
	case *BinaryOperatorExpression:
		if e.Operator.Value == OpIndex {
			return precPostfix
		}
		return binaryOperators[e.Operator.Value].prec
	case *ConditionalExpression:
		return precConditional
	case CommaExpression:
		return precComma
	}
	return precPrimary
}

// expression prints e, parenthesized when it binds looser than min.
func (p *Printer[N]) expression(e Node[Expression], min int) {
	if p.precedence(e.Value) < min {
		p.write("(")
		p.expressionValue(e.Value)
		p.write(")")
		return
	}
	p.expressionValue(e.Value)
}

func (p *Printer[N]) expressionList(list []Node[Expression]) {
	for i, e := range list {
		if i > 0 {
			p.write(", ")
		}
		p.expression(e, precAssignment)
	}
}

func (p *Printer[N]) expressionValue(e Expression) {
	switch e := e.(type) {
	case Identifier[N]:
		p.name(e)
	case Integer:
		p.write(integerText(e))
	case Float:
		p.write(floatText(e))
	case Character:
		p.write(string(e))
	case StringLiteral:
		p.stringLiteral(e)
	case *GenericSelection:
		p.write("_Generic(")
		p.expression(e.Expression, precAssignment)
		for _, a := range e.Associations {
			p.write(", ")
			switch a := a.Value.(type) {
			case *GenericAssociationType[N]:
				p.typeName(a.TypeName.Value)
				p.write(": ")
				p.expression(a.Expression, precAssignment)
			case *GenericAssociationDefault:
				p.write("default: ")
				p.expression(a.Expression, precAssignment)
			}
		}
		p.write(")")
	case *MemberExpression[N]:
		p.expression(e.Expression, precPostfix)
		if e.Operator.Value == MemberIndirect {
			p.write("->")
		} else {
			p.write(".")
		}
		p.name(e.Identifier.Value)
	case *CallExpression:
		p.expression(e.Callee, precPostfix)
		p.write("(")
		p.expressionList(e.Arguments)
		p.write(")")
	case *CompoundLiteral[N]:
		p.write("(")
		p.typeName(e.TypeName.Value)
		p.write(")")
		p.initializerList(e.InitializerList)
	case *SizeOfType[N]:
		p.write("sizeof(")
		p.typeName(e.TypeName.Value)
		p.write(")")
	case *SizeOfValue:
		p.write("sizeof(")
		p.expression(e.Expression, precComma)
		p.write(")")
	case *AlignOf[N]:
		p.write("_Alignof(")
		p.typeName(e.TypeName.Value)
		p.write(")")
	case *UnaryOperatorExpression:
		p.unary(e)
	case *CastExpression[N]:
		p.write("(")
		p.typeName(e.TypeName.Value)
		p.write(")")
		p.expression(e.Expression, precUnary)
	case *BinaryOperatorExpression:
		p.binary(e)
	case *ConditionalExpression:
		p.expression(e.Condition, precLogicalOr)
		p.write(" ? ")
		p.expression(e.Then, precComma)
		p.write(" : ")
		p.expression(e.Else, precConditional)
	case CommaExpression:
		for i, item := range e {
			if i > 0 {
				p.write(", ")
			}
			p.expression(item, precAssignment)
		}
	case *VaArgExpression[N]:
		p.write("__builtin_va_arg(")
		p.expression(e.VaList, precAssignment)
		p.write(", ")
		p.typeName(e.TypeName.Value)
		p.write(")")
	case *OffsetOfExpression[N]:
		p.write("__builtin_offsetof(")
		p.typeName(e.TypeName.Value)
		p.write(", ")
		p.offsetDesignator(e.Designator.Value)
		p.write(")")
	case *StatementExpression:
		p.write("(")
		p.statement(e.Statement.Value)
		p.write(")")
	default:
		fmt.Fprintf(p.w, "/* unknown expression %T */", e)
	}
}

func (p *Printer[N]) unary(e *UnaryOperatorExpression) {
	op := e.Operator.Value
	if op.IsPostfix() {
		p.expression(e.Operand, precPostfix)
		p.write(unaryOperatorText[op])
		return
	}
	p.write(unaryOperatorText[op])
	// - -x must not run together into --x
	if inner, ok := e.Operand.Value.(*UnaryOperatorExpression); ok && !inner.Operator.Value.IsPostfix() {
		p.write("(")
		p.unary(inner)
		p.write(")")
		return
	}
	p.expression(e.Operand, precUnary)
}

func (p *Printer[N]) binary(e *BinaryOperatorExpression) {
	op := e.Operator.Value
	if op == OpIndex {
		p.expression(e.LHS, precPostfix)
		p.write("[")
		p.expression(e.RHS, precComma)
		p.write("]")
		return
	}
	info := binaryOperators[op]
	if info.prec == precAssignment {
		p.expression(e.LHS, precUnary)
		p.write(" ", info.text, " ")
		p.expression(e.RHS, precAssignment)
		return
	}
	p.expression(e.LHS, info.prec)
	p.write(" ", info.text, " ")
	p.expression(e.RHS, info.prec+1)
}

func (p *Printer[N]) offsetDesignator(d *OffsetDesignator[N]) {
	p.name(d.Base.Value)
	for _, m := range d.Members {
		switch m := m.Value.(type) {
		case OffsetMemberField[N]:
			p.write(".")
			p.name(m.Identifier.Value)
		case OffsetMemberIndirect[N]:
			p.write("->")
			p.name(m.Identifier.Value)
		case OffsetMemberIndex:
			p.write("[")
			p.expression(m.Expression, precComma)
			p.write("]")
		}
	}
}

func (p *Printer[N]) stringLiteral(s StringLiteral) {
	p.write(strings.Join(s, " "))
}

// Tokens

var storageClassText = map[StorageClassSpecifier]string{
	StorageTypedef:     "typedef",
	StorageExtern:      "extern",
	StorageStatic:      "static",
	StorageThreadLocal: "_Thread_local",
	StorageAuto:        "auto",
	StorageRegister:    "register",
}

var functionSpecifierText = map[FunctionSpecifier]string{
	FunctionInline:   "inline",
	FunctionNoreturn: "_Noreturn",
}

var qualifierText = map[TypeQualifier]string{
	QualifierConst:           "const",
	QualifierRestrict:        "restrict",
	QualifierVolatile:        "volatile",
	QualifierNonnull:         "_Nonnull",
	QualifierNullUnspecified: "_Null_unspecified",
	QualifierNullable:        "_Nullable",
	QualifierAtomic:          "_Atomic",
}

var basicTypeText = map[BasicType]string{
	TypeVoid:     "void",
	TypeChar:     "char",
	TypeShort:    "short",
	TypeInt:      "int",
	TypeLong:     "long",
	TypeFloat:    "float",
	TypeDouble:   "double",
	TypeSigned:   "signed",
	TypeUnsigned: "unsigned",
	TypeBool:     "_Bool",
	TypeComplex:  "_Complex",
}

func ts18661TypeText(t TS18661FloatType) string {
	switch t.Format {
	case BinaryExtended:
		return fmt.Sprintf("_Float%dx", t.Width)
	case DecimalInterchange:
		return fmt.Sprintf("_Decimal%d", t.Width)
	case DecimalExtended:
		return fmt.Sprintf("_Decimal%dx", t.Width)
	}
	return fmt.Sprintf("_Float%d", t.Width)
}

func integerText(i Integer) string {
	var sb strings.Builder
	switch i.Base {
	case BaseHexadecimal:
		sb.WriteString("0x")
	case BaseBinary:
		sb.WriteString("0b")
	case BaseOctal:
		sb.WriteString("0")
	}
	sb.WriteString(i.Number)
	if i.Suffix.Unsigned {
		sb.WriteString("u")
	}
	switch i.Suffix.Size {
	case SizeLong:
		sb.WriteString("l")
	case SizeLongLong:
		sb.WriteString("ll")
	}
	if i.Suffix.Imaginary {
		sb.WriteString("i")
	}
	return sb.String()
}

func floatText(f Float) string {
	var sb strings.Builder
	if f.Base == FloatHexadecimal {
		sb.WriteString("0x")
	}
	sb.WriteString(f.Number)
	switch f.Suffix.Format.Kind {
	case FormatFloat:
		sb.WriteString("f")
	case FormatLongDouble:
		sb.WriteString("l")
	case FormatTS18661:
		t := f.Suffix.Format.Extended
		if t.Format == DecimalInterchange || t.Format == DecimalExtended {
			sb.WriteString("d")
		} else {
			sb.WriteString("f")
		}
		fmt.Fprintf(&sb, "%d", t.Width)
		if t.Format == BinaryExtended || t.Format == DecimalExtended {
			sb.WriteString("x")
		}
	}
	if f.Suffix.Imaginary {
		sb.WriteString("i")
	}
	return sb.String()
}
