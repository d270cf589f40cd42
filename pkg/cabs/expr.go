package cabs

// Expression is the sum of all expression forms.
type Expression interface {
	implExpression()
}

// MemberOperator distinguishes a.b from a->b.
type MemberOperator int

const (
	MemberDirect MemberOperator = iota
	MemberIndirect
)

func (op MemberOperator) String() string {
	if op == MemberIndirect {
		return "Indirect"
	}
	return "Direct"
}

// UnaryOperator is a prefix or postfix operator.
type UnaryOperator int

const (
	OpPostIncrement UnaryOperator = iota
	OpPostDecrement
	OpPreIncrement
	OpPreDecrement
	OpAddress
	OpIndirection
	OpPlus
	OpMinus
	OpComplement
	OpNegate
)

func (op UnaryOperator) String() string {
	names := []string{"PostIncrement", "PostDecrement", "PreIncrement", "PreDecrement",
		"Address", "Indirection", "Plus", "Minus", "Complement", "Negate"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// IsPostfix reports whether op follows its operand.
func (op UnaryOperator) IsPostfix() bool {
	return op == OpPostIncrement || op == OpPostDecrement
}

// BinaryOperator is an infix operator, including subscript and
// assignment.
type BinaryOperator int

const (
	OpIndex BinaryOperator = iota
	OpMultiply
	OpDivide
	OpModulo
	OpAdd
	OpSubtract
	OpShiftLeft
	OpShiftRight
	OpLess
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
	OpEquals
	OpNotEquals
	OpBitwiseAnd
	OpBitwiseXor
	OpBitwiseOr
	OpLogicalAnd
	OpLogicalOr
	OpAssign
	OpAssignMultiply
	OpAssignDivide
	OpAssignModulo
	OpAssignPlus
	OpAssignMinus
	OpAssignShiftLeft
	OpAssignShiftRight
	OpAssignBitwiseAnd
	OpAssignBitwiseXor
	OpAssignBitwiseOr
)

var binaryOperatorNames = []string{
	"Index", "Multiply", "Divide", "Modulo", "Plus", "Minus", "ShiftLeft", "ShiftRight",
	"Less", "Greater", "LessOrEqual", "GreaterOrEqual", "Equals", "NotEquals",
	"BitwiseAnd", "BitwiseXor", "BitwiseOr", "LogicalAnd", "LogicalOr",
	"Assign", "AssignMultiply", "AssignDivide", "AssignModulo", "AssignPlus", "AssignMinus",
	"AssignShiftLeft", "AssignShiftRight", "AssignBitwiseAnd", "AssignBitwiseXor", "AssignBitwiseOr",
}

func (op BinaryOperator) String() string {
	if int(op) < len(binaryOperatorNames) {
		return binaryOperatorNames[op]
	}
	return "?"
}

// GenericSelection is _Generic(expr, associations...).
type GenericSelection struct {
	Expression   Node[Expression]
	Associations []Node[GenericAssociation]
}

// GenericAssociation is GenericAssociationType or GenericAssociationDefault.
type GenericAssociation interface {
	implGenericAssociation()
}

// GenericAssociationType is `type-name : expr`.
type GenericAssociationType[N Name] struct {
	TypeName   Node[*TypeName[N]]
	Expression Node[Expression]
}

// GenericAssociationDefault is `default : expr`.
type GenericAssociationDefault struct {
	Expression Node[Expression]
}

// MemberExpression is a.b or a->b.
type MemberExpression[N Name] struct {
	Operator   Node[MemberOperator]
	Expression Node[Expression]
	Identifier Node[Identifier[N]]
}

// CallExpression is a function call.
type CallExpression struct {
	Callee    Node[Expression]
	Arguments []Node[Expression]
}

// CompoundLiteral is (type-name){ initializers }.
type CompoundLiteral[N Name] struct {
	TypeName        Node[*TypeName[N]]
	InitializerList []Node[*InitializerListItem[N]]
}

// SizeOfType is sizeof(type-name).
type SizeOfType[N Name] struct {
	TypeName Node[*TypeName[N]]
}

// SizeOfValue is sizeof applied to an expression.
type SizeOfValue struct {
	Expression Node[Expression]
}

// AlignOf is _Alignof(type-name) and its GNU spellings.
type AlignOf[N Name] struct {
	TypeName Node[*TypeName[N]]
}

// UnaryOperatorExpression applies a prefix or postfix operator.
type UnaryOperatorExpression struct {
	Operator Node[UnaryOperator]
	Operand  Node[Expression]
}

// CastExpression is (type-name) expr.
type CastExpression[N Name] struct {
	TypeName   Node[*TypeName[N]]
	Expression Node[Expression]
}

// BinaryOperatorExpression applies an infix operator. Subscripts use
// OpIndex with the array on the left.
type BinaryOperatorExpression struct {
	Operator Node[BinaryOperator]
	LHS      Node[Expression]
	RHS      Node[Expression]
}

// ConditionalExpression is cond ? then : else.
type ConditionalExpression struct {
	Condition Node[Expression]
	Then      Node[Expression]
	Else      Node[Expression]
}

// CommaExpression holds two or more comma-separated expressions.
type CommaExpression []Node[Expression]

// VaArgExpression is GNU __builtin_va_arg(list, type-name).
type VaArgExpression[N Name] struct {
	VaList   Node[Expression]
	TypeName Node[*TypeName[N]]
}

// OffsetOfExpression is GNU __builtin_offsetof(type-name, designator).
type OffsetOfExpression[N Name] struct {
	TypeName   Node[*TypeName[N]]
	Designator Node[*OffsetDesignator[N]]
}

// OffsetDesignator is the member path of __builtin_offsetof.
type OffsetDesignator[N Name] struct {
	Base    Node[Identifier[N]]
	Members []Node[OffsetMember]
}

// OffsetMember is one step after the base of an offsetof designator.
type OffsetMember interface {
	implOffsetMember()
}

// OffsetMemberField is `.name`.
type OffsetMemberField[N Name] struct {
	Identifier Node[Identifier[N]]
}

// OffsetMemberIndirect is `->name`.
type OffsetMemberIndirect[N Name] struct {
	Identifier Node[Identifier[N]]
}

// OffsetMemberIndex is `[expr]`.
type OffsetMemberIndex struct {
	Expression Node[Expression]
}

// StatementExpression is a GNU ({ ... }) expression.
type StatementExpression struct {
	Statement Node[Statement]
}

func (Identifier[N]) implExpression() {}
func (*GenericSelection) implExpression() {}
func (*MemberExpression[N]) implExpression() {}
func (*CallExpression) implExpression() {}
func (*CompoundLiteral[N]) implExpression() {}
func (*SizeOfType[N]) implExpression() {}
func (*SizeOfValue) implExpression() {}
func (*AlignOf[N]) implExpression() {}
func (*UnaryOperatorExpression) implExpression() {}
func (*CastExpression[N]) implExpression() {}
func (*BinaryOperatorExpression) implExpression() {}
func (*ConditionalExpression) implExpression() {}
func (CommaExpression) implExpression() {}
func (*VaArgExpression[N]) implExpression() {}
func (*OffsetOfExpression[N]) implExpression() {}
func (*StatementExpression) implExpression() {}
func (*GenericAssociationType[N]) implGenericAssociation() {}
func (*GenericAssociationDefault) implGenericAssociation() {}
func (OffsetMemberField[N]) implOffsetMember() {}
func (OffsetMemberIndirect[N]) implOffsetMember() {}
func (OffsetMemberIndex) implOffsetMember() {}
