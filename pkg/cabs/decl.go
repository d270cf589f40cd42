package cabs

// Declaration is a specifier list followed by zero or more declarators.
type Declaration[N Name] struct {
	Specifiers  []Node[DeclarationSpecifier]
	Declarators []Node[*InitDeclarator[N]]
}

// DeclarationSpecifier is a storage class, type specifier, type
// qualifier, function specifier, alignment specifier or Extensions.
type DeclarationSpecifier interface {
	implDeclarationSpecifier()
}

// SpecifierQualifier is a type specifier, type qualifier or Extensions,
// as allowed in struct fields and type names.
type SpecifierQualifier interface {
	implSpecifierQualifier()
}

// InitDeclarator is a declarator with an optional initializer.
type InitDeclarator[N Name] struct {
	Declarator  Node[*Declarator[N]]
	Initializer *Node[Initializer]
}

// StorageClassSpecifier is typedef, extern, static, _Thread_local, auto
// or register.
type StorageClassSpecifier int

const (
	StorageTypedef StorageClassSpecifier = iota
	StorageExtern
	StorageStatic
	StorageThreadLocal
	StorageAuto
	StorageRegister
)

func (s StorageClassSpecifier) String() string {
	names := []string{"Typedef", "Extern", "Static", "ThreadLocal", "Auto", "Register"}
	if int(s) < len(names) {
		return names[s]
	}
	return "?"
}

// TypeSpecifier is BasicType, AtomicType, StructType, EnumType,
// TypedefName, TypeOf or TS18661FloatType.
type TypeSpecifier interface {
	DeclarationSpecifier
	SpecifierQualifier
	implTypeSpecifier()
}

// BasicType is a keyword type specifier.
type BasicType int

const (
	TypeVoid BasicType = iota
	TypeChar
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeSigned
	TypeUnsigned
	TypeBool
	TypeComplex
)

func (t BasicType) String() string {
	names := []string{"Void", "Char", "Short", "Int", "Long", "Float", "Double", "Signed", "Unsigned", "Bool", "Complex"}
	if int(t) < len(names) {
		return names[t]
	}
	return "?"
}

// AtomicType is _Atomic(type-name).
type AtomicType[N Name] struct {
	TypeName Node[*TypeName[N]]
}

// TypedefName is a type specifier naming a typedef.
type TypedefName[N Name] struct {
	Identifier Node[Identifier[N]]
}

// TypeOf is TypeOfExpression or TypeOfType (GNU typeof).
type TypeOf interface {
	TypeSpecifier
	implTypeOf()
}

// TypeOfExpression is typeof(expr).
type TypeOfExpression struct {
	Expression Node[Expression]
}

// TypeOfType is typeof(type-name).
type TypeOfType[N Name] struct {
	TypeName Node[*TypeName[N]]
}

// StructKind is struct or union.
type StructKind int

const (
	KindStruct StructKind = iota
	KindUnion
)

func (k StructKind) String() string {
	if k == KindUnion {
		return "Union"
	}
	return "Struct"
}

// StructType is a struct or union specifier. Defined is set when a member
// list was written, which may be empty under GNU.
type StructType[N Name] struct {
	Kind         Node[StructKind]
	Identifier   *Node[Identifier[N]]
	Declarations []Node[StructDeclaration]
	Defined      bool
}

// StructDeclaration is a StructField or StaticAssert.
type StructDeclaration interface {
	implStructDeclaration()
}

// StructField declares one or more members sharing specifiers.
type StructField[N Name] struct {
	Specifiers  []Node[SpecifierQualifier]
	Declarators []Node[*StructDeclarator[N]]
}

// StructDeclarator is a member declarator with an optional bit width.
type StructDeclarator[N Name] struct {
	Declarator *Node[*Declarator[N]]
	BitWidth   *Node[Expression]
}

// EnumType is an enum specifier. Enumerators is empty for a reference to
// a previously declared enum.
type EnumType[N Name] struct {
	Identifier  *Node[Identifier[N]]
	Enumerators []Node[*Enumerator[N]]
}

// Enumerator is a single enumeration constant.
type Enumerator[N Name] struct {
	Identifier Node[Identifier[N]]
	Expression *Node[Expression]
	Extensions []Node[Extension]
}

// TypeQualifier is const, restrict, volatile, _Atomic or a Clang
// nullability qualifier.
type TypeQualifier int

const (
	QualifierConst TypeQualifier = iota
	QualifierRestrict
	QualifierVolatile
	QualifierNonnull
	QualifierNullUnspecified
	QualifierNullable
	QualifierAtomic
)

func (q TypeQualifier) String() string {
	names := []string{"Const", "Restrict", "Volatile", "Nonnull", "NullUnspecified", "Nullable", "Atomic"}
	if int(q) < len(names) {
		return names[q]
	}
	return "?"
}

// FunctionSpecifier is inline or _Noreturn.
type FunctionSpecifier int

const (
	FunctionInline FunctionSpecifier = iota
	FunctionNoreturn
)

func (f FunctionSpecifier) String() string {
	if f == FunctionNoreturn {
		return "Noreturn"
	}
	return "Inline"
}

// AlignmentSpecifier is AlignAsType or AlignAsConstant.
type AlignmentSpecifier interface {
	DeclarationSpecifier
	implAlignmentSpecifier()
}

// AlignAsType is _Alignas(type-name).
type AlignAsType[N Name] struct {
	TypeName Node[*TypeName[N]]
}

// AlignAsConstant is _Alignas(constant-expression).
type AlignAsConstant struct {
	Expression Node[Expression]
}

// Declarator names an entity and describes how its type is derived from
// the specifiers. Derived is ordered from the name outwards.
type Declarator[N Name] struct {
	Kind       Node[DeclaratorKind]
	Derived    []Node[DerivedDeclarator]
	Extensions []Node[Extension]
}

// DeclaratorKind is AbstractDeclarator, an Identifier or a parenthesized
// *Declarator.
type DeclaratorKind interface {
	implDeclaratorKind()
}

// AbstractDeclarator marks a declarator without a name.
type AbstractDeclarator struct{}

// DerivedDeclarator is PointerDeclarator, ArrayDeclarator,
// FunctionDeclarator, KRFunctionDeclarator or BlockDeclarator.
type DerivedDeclarator interface {
	implDerivedDeclarator()
}

// PointerDeclarator is `*` with its qualifiers.
type PointerDeclarator []Node[PointerQualifier]

// BlockDeclarator is a Clang block pointer `^` with its qualifiers.
type BlockDeclarator []Node[PointerQualifier]

// KRFunctionDeclarator is an old-style identifier list. Empty parentheses
// produce an empty list.
type KRFunctionDeclarator[N Name] []Node[Identifier[N]]

// ArrayDeclarator is `[...]`.
type ArrayDeclarator struct {
	Qualifiers []Node[TypeQualifier]
	Size       ArraySize
}

// ArraySizeKind tells how an array dimension was written.
type ArraySizeKind int

const (
	SizeUnknown            ArraySizeKind = iota // []
	SizeVariableUnknown                         // [*]
	SizeVariableExpression                      // [n]
	SizeStaticExpression                        // [static n]
)

func (k ArraySizeKind) String() string {
	names := []string{"Unknown", "VariableUnknown", "VariableExpression", "StaticExpression"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// ArraySize is an array dimension. Expression is set for the two
// expression kinds.
type ArraySize struct {
	Kind       ArraySizeKind
	Expression *Node[Expression]
}

// FunctionDeclarator is a prototype parameter list.
type FunctionDeclarator[N Name] struct {
	Parameters []Node[*ParameterDeclaration[N]]
	Ellipsis   Ellipsis
}

// PointerQualifier is a TypeQualifier or Extensions.
type PointerQualifier interface {
	implPointerQualifier()
}

// ParameterDeclaration is one parameter of a prototype.
type ParameterDeclaration[N Name] struct {
	Specifiers []Node[DeclarationSpecifier]
	Declarator *Node[*Declarator[N]]
	Extensions []Node[Extension]
}

// Ellipsis records whether a prototype ends in `...`.
type Ellipsis int

const (
	EllipsisNone Ellipsis = iota
	EllipsisSome
)

func (e Ellipsis) String() string {
	if e == EllipsisSome {
		return "Some"
	}
	return "None"
}

// TypeName is a type as written in casts, sizeof and similar places.
type TypeName[N Name] struct {
	Specifiers []Node[SpecifierQualifier]
	Declarator *Node[*Declarator[N]]
}

// Initializer is ExpressionInitializer or ListInitializer.
type Initializer interface {
	implInitializer()
}

// ExpressionInitializer is a single assignment expression.
type ExpressionInitializer struct {
	Expression Node[Expression]
}

// ListInitializer is a braced initializer list.
type ListInitializer[N Name] []Node[*InitializerListItem[N]]

// InitializerListItem is an initializer with its designation.
type InitializerListItem[N Name] struct {
	Designation []Node[Designator]
	Initializer Node[Initializer]
}

// Designator is IndexDesignator, MemberDesignator or RangeDesignator.
type Designator interface {
	implDesignator()
}

// IndexDesignator is `[expr]`.
type IndexDesignator struct {
	Expression Node[Expression]
}

// MemberDesignator is `.name`, or GNU `name:`.
type MemberDesignator[N Name] struct {
	Identifier Node[Identifier[N]]
}

// RangeDesignator is GNU `[from ... to]`.
type RangeDesignator struct {
	From Node[Expression]
	To   Node[Expression]
}

// StaticAssert is _Static_assert(expr, message).
type StaticAssert struct {
	Expression Node[Expression]
	Message    Node[StringLiteral]
}

func (StorageClassSpecifier) implDeclarationSpecifier() {}
func (BasicType) implDeclarationSpecifier() {}
func (BasicType) implSpecifierQualifier() {}
func (BasicType) implTypeSpecifier() {}
func (*AtomicType[N]) implDeclarationSpecifier() {}
func (*AtomicType[N]) implSpecifierQualifier() {}
func (*AtomicType[N]) implTypeSpecifier() {}
func (*StructType[N]) implDeclarationSpecifier() {}
func (*StructType[N]) implSpecifierQualifier() {}
func (*StructType[N]) implTypeSpecifier() {}
func (*EnumType[N]) implDeclarationSpecifier() {}
func (*EnumType[N]) implSpecifierQualifier() {}
func (*EnumType[N]) implTypeSpecifier() {}
func (TypedefName[N]) implDeclarationSpecifier() {}
func (TypedefName[N]) implSpecifierQualifier() {}
func (TypedefName[N]) implTypeSpecifier() {}
func (*TypeOfExpression) implDeclarationSpecifier() {}
func (*TypeOfExpression) implSpecifierQualifier() {}
func (*TypeOfExpression) implTypeSpecifier() {}
func (*TypeOfExpression) implTypeOf() {}
func (*TypeOfType[N]) implDeclarationSpecifier() {}
func (*TypeOfType[N]) implSpecifierQualifier() {}
func (*TypeOfType[N]) implTypeSpecifier() {}
func (*TypeOfType[N]) implTypeOf() {}
func (TS18661FloatType) implDeclarationSpecifier() {}
func (TS18661FloatType) implSpecifierQualifier() {}
func (TS18661FloatType) implTypeSpecifier() {}
func (TypeQualifier) implDeclarationSpecifier() {}
func (TypeQualifier) implSpecifierQualifier() {}
func (TypeQualifier) implPointerQualifier() {}
func (FunctionSpecifier) implDeclarationSpecifier() {}
func (*AlignAsType[N]) implDeclarationSpecifier() {}
func (*AlignAsType[N]) implAlignmentSpecifier() {}
func (*AlignAsConstant) implDeclarationSpecifier() {}
func (*AlignAsConstant) implAlignmentSpecifier() {}
func (*StructField[N]) implStructDeclaration() {}
func (*StaticAssert) implStructDeclaration() {}
func (AbstractDeclarator) implDeclaratorKind() {}
func (Identifier[N]) implDeclaratorKind() {}
func (*Declarator[N]) implDeclaratorKind() {}
func (PointerDeclarator) implDerivedDeclarator() {}
func (BlockDeclarator) implDerivedDeclarator() {}
func (KRFunctionDeclarator[N]) implDerivedDeclarator() {}
func (*ArrayDeclarator) implDerivedDeclarator() {}
func (*FunctionDeclarator[N]) implDerivedDeclarator() {}
func (*ExpressionInitializer) implInitializer() {}
func (ListInitializer[N]) implInitializer() {}
func (IndexDesignator) implDesignator() {}
func (MemberDesignator[N]) implDesignator() {}
func (*RangeDesignator) implDesignator() {}
