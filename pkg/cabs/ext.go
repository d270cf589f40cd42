package cabs

// Extension is an Attribute, AsmLabel or AvailabilityAttribute.
type Extension interface {
	implExtension()
}

// Extensions is a run of vendor extensions used where a specifier or
// qualifier is expected.
type Extensions []Node[Extension]

// Attribute is one entry of GNU __attribute__((...)).
type Attribute struct {
	Name      Node[string]
	Arguments []Node[Expression]
}

// AsmLabel is GNU `asm("symbol")` after a declarator.
type AsmLabel struct {
	Symbol Node[StringLiteral]
}

// AvailabilityAttribute is Clang __attribute__((availability(...))).
type AvailabilityAttribute[N Name] struct {
	Platform Node[Identifier[N]]
	Clauses  []Node[*AvailabilityClause]
}

// AvailabilityClauseKind selects the form of an availability clause.
type AvailabilityClauseKind int

const (
	AvailabilityIntroduced AvailabilityClauseKind = iota
	AvailabilityDeprecated
	AvailabilityObsoleted
	AvailabilityUnavailable
	AvailabilityMessage
	AvailabilityReplacement
)

func (k AvailabilityClauseKind) String() string {
	names := []string{"Introduced", "Deprecated", "Obsoleted", "Unavailable", "Message", "Replacement"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// AvailabilityClause is one clause of an availability attribute. Version
// is set for the introduced, deprecated and obsoleted kinds, Text for
// message and replacement.
type AvailabilityClause struct {
	Kind    AvailabilityClauseKind
	Version *Node[AvailabilityVersion]
	Text    *Node[StringLiteral]
}

// AvailabilityVersion is a dotted platform version. Minor and Subminor
// are empty when absent.
type AvailabilityVersion struct {
	Major    string
	Minor    string
	Subminor string
}

func (v AvailabilityVersion) String() string {
	s := v.Major
	if v.Minor != "" {
		s += "." + v.Minor
	}
	if v.Subminor != "" {
		s += "." + v.Subminor
	}
	return s
}

// AsmStatement is GnuBasicAsm or GnuExtendedAsm.
type AsmStatement interface {
	Statement
	implAsmStatement()
}

// GnuBasicAsm is `asm("template");`.
type GnuBasicAsm struct {
	Template Node[StringLiteral]
}

// GnuExtendedAsm is `asm qualifier (template : outputs : inputs : clobbers);`.
type GnuExtendedAsm[N Name] struct {
	Qualifier *Node[TypeQualifier]
	Template  Node[StringLiteral]
	Outputs   []Node[*GnuAsmOperand[N]]
	Inputs    []Node[*GnuAsmOperand[N]]
	Clobbers  []Node[StringLiteral]
}

// GnuAsmOperand is `[name] "constraint" (expr)`.
type GnuAsmOperand[N Name] struct {
	SymbolicName *Node[Identifier[N]]
	Constraints  Node[StringLiteral]
	VariableName Node[Expression]
}

func (*Attribute) implExtension() {}
func (AsmLabel) implExtension() {}
func (*AvailabilityAttribute[N]) implExtension() {}

func (Extensions) implDeclarationSpecifier() {}
func (Extensions) implSpecifierQualifier() {}
func (Extensions) implPointerQualifier() {}

func (GnuBasicAsm) implAsmStatement() {}
func (*GnuExtendedAsm[N]) implAsmStatement() {}
