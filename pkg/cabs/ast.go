// Package cabs defines the abstract syntax tree for preprocessed C11 with
// GNU and Clang extensions.
//
// Every grammar family is a sealed interface; its variants are the types
// that implement the family's marker method. Children are wrapped in
// span.Node so each subtree carries the byte range it was parsed from.
// Types that directly hold identifiers are generic over the name
// representation N (see Interner).
package cabs

import "github.com/raymyers/cparse/pkg/span"

// Node is a shorthand for span.Node.
type Node[T any] = span.Node[T]

// Identifier names a variable, function, type, label or member.
type Identifier[N Name] struct {
	Name N
}

// Constant is Integer, Float or Character.
type Constant interface {
	Expression
	implConstant()
}

// IntegerBase is the radix an integer constant was written in.
type IntegerBase int

const (
	BaseDecimal IntegerBase = iota
	BaseOctal
	BaseHexadecimal
	BaseBinary // GNU
)

func (b IntegerBase) String() string {
	names := []string{"Decimal", "Octal", "Hexadecimal", "Binary"}
	if int(b) < len(names) {
		return names[b]
	}
	return "?"
}

// IntegerSize is the width requested by an integer suffix.
type IntegerSize int

const (
	SizeInt IntegerSize = iota
	SizeLong
	SizeLongLong
)

func (s IntegerSize) String() string {
	names := []string{"Int", "Long", "LongLong"}
	if int(s) < len(names) {
		return names[s]
	}
	return "?"
}

// IntegerSuffix holds the u, l/ll and GNU i/j suffix flags.
type IntegerSuffix struct {
	Size      IntegerSize
	Unsigned  bool
	Imaginary bool
}

// Integer is an integer constant. Number holds the digits without the
// radix prefix or suffix.
type Integer struct {
	Base   IntegerBase
	Number string
	Suffix IntegerSuffix
}

// FloatBase is the radix a floating constant was written in.
type FloatBase int

const (
	FloatDecimal FloatBase = iota
	FloatHexadecimal
)

func (b FloatBase) String() string {
	if b == FloatHexadecimal {
		return "Hexadecimal"
	}
	return "Decimal"
}

// FloatKind selects the format of a floating constant.
type FloatKind int

const (
	FormatDouble FloatKind = iota
	FormatFloat
	FormatLongDouble
	FormatTS18661
)

func (k FloatKind) String() string {
	names := []string{"Double", "Float", "LongDouble", "TS18661"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// TS18661FloatFormat is the interchange or extended format family of an
// ISO/IEC TS 18661 type.
type TS18661FloatFormat int

const (
	BinaryInterchange TS18661FloatFormat = iota
	BinaryExtended
	DecimalInterchange
	DecimalExtended
)

func (f TS18661FloatFormat) String() string {
	names := []string{"BinaryInterchange", "BinaryExtended", "DecimalInterchange", "DecimalExtended"}
	if int(f) < len(names) {
		return names[f]
	}
	return "?"
}

// TS18661FloatType is a _FloatN, _FloatNx, _DecimalN or _DecimalNx type.
type TS18661FloatType struct {
	Format TS18661FloatFormat
	Width  int
}

// FloatFormat is the format selected by a floating suffix. Extended is
// only meaningful when Kind is FormatTS18661.
type FloatFormat struct {
	Kind     FloatKind
	Extended TS18661FloatType
}

// FloatSuffix holds the format and GNU imaginary flag.
type FloatSuffix struct {
	Format    FloatFormat
	Imaginary bool
}

// Float is a floating constant. Number holds the text without the 0x
// prefix or suffix.
type Float struct {
	Base   FloatBase
	Number string
	Suffix FloatSuffix
}

// Character is a character constant exactly as written, quotes and
// prefix included.
type Character string

// StringLiteral is a sequence of adjacent string literal tokens, each kept
// exactly as written.
type StringLiteral []string

func (Integer) implExpression() {}
func (Float) implExpression() {}
func (Character) implExpression() {}
func (Integer) implConstant() {}
func (Float) implConstant() {}
func (Character) implConstant() {}
func (StringLiteral) implExpression() {}
