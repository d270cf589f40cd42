package cabs

// Statement is the sum of all statement forms. Every statement is also a
// block item.
type Statement interface {
	BlockItem
	implStatement()
}

// LabeledStatement is a statement preceded by a label.
type LabeledStatement struct {
	Label     Node[Label]
	Statement Node[Statement]
}

// Label is an Identifier, CaseLabel, CaseRange or DefaultLabel.
type Label interface {
	implLabel()
}

// CaseLabel is `case expr:`.
type CaseLabel struct {
	Expression Node[Expression]
}

// CaseRange is GNU `case low ... high:`.
type CaseRange struct {
	Low  Node[Expression]
	High Node[Expression]
}

// DefaultLabel is `default:`.
type DefaultLabel struct{}

// CompoundStatement is a braced block.
type CompoundStatement []Node[BlockItem]

// ExpressionStatement is an expression followed by `;`, or a null
// statement when Expression is nil.
type ExpressionStatement struct {
	Expression *Node[Expression]
}

// IfStatement is if/else.
type IfStatement struct {
	Condition Node[Expression]
	Then      Node[Statement]
	Else      *Node[Statement]
}

// SwitchStatement is switch (expr) stmt.
type SwitchStatement struct {
	Expression Node[Expression]
	Statement  Node[Statement]
}

// WhileStatement is while (expr) stmt.
type WhileStatement struct {
	Expression Node[Expression]
	Statement  Node[Statement]
}

// DoWhileStatement is do stmt while (expr);.
type DoWhileStatement struct {
	Statement  Node[Statement]
	Expression Node[Expression]
}

// ForStatement is a for loop.
type ForStatement struct {
	Initializer Node[ForInitializer]
	Condition   *Node[Expression]
	Step        *Node[Expression]
	Statement   Node[Statement]
}

// ForInitializer is ForEmpty, ForExpression, *Declaration or
// *StaticAssert.
type ForInitializer interface {
	implForInitializer()
}

// ForEmpty is an omitted for initializer.
type ForEmpty struct{}

// ForExpression is an expression for initializer.
type ForExpression struct {
	Expression Node[Expression]
}

// GotoStatement is goto label;.
type GotoStatement[N Name] struct {
	Label Node[Identifier[N]]
}

// ContinueStatement is continue;.
type ContinueStatement struct{}

// BreakStatement is break;.
type BreakStatement struct{}

// ReturnStatement is return with an optional value.
type ReturnStatement struct {
	Expression *Node[Expression]
}

// BlockItem is a *Declaration, *StaticAssert or Statement.
type BlockItem interface {
	implBlockItem()
}

// ExternalDeclaration is a *Declaration, *StaticAssert or
// *FunctionDefinition.
type ExternalDeclaration interface {
	implExternalDeclaration()
}

// FunctionDefinition is a function with its body. Declarations holds the
// old-style parameter declarations between the declarator and the body.
type FunctionDefinition[N Name] struct {
	Specifiers   []Node[DeclarationSpecifier]
	Declarator   Node[*Declarator[N]]
	Declarations []Node[*Declaration[N]]
	Statement    Node[Statement]
}

// TranslationUnit is the sequence of external declarations in a file.
type TranslationUnit []Node[ExternalDeclaration]

func (Identifier[N]) implLabel() {}
func (CaseLabel) implLabel() {}
func (*CaseRange) implLabel() {}
func (DefaultLabel) implLabel() {}

func (*LabeledStatement) implStatement() {}
func (CompoundStatement) implStatement() {}
func (ExpressionStatement) implStatement() {}
func (*IfStatement) implStatement() {}
func (*SwitchStatement) implStatement() {}
func (*WhileStatement) implStatement() {}
func (*DoWhileStatement) implStatement() {}
func (*ForStatement) implStatement() {}
func (GotoStatement[N]) implStatement() {}
func (ContinueStatement) implStatement() {}
func (BreakStatement) implStatement() {}
func (ReturnStatement) implStatement() {}
func (GnuBasicAsm) implStatement() {}
func (*GnuExtendedAsm[N]) implStatement() {}

func (*LabeledStatement) implBlockItem() {}
func (CompoundStatement) implBlockItem() {}
func (ExpressionStatement) implBlockItem() {}
func (*IfStatement) implBlockItem() {}
func (*SwitchStatement) implBlockItem() {}
func (*WhileStatement) implBlockItem() {}
func (*DoWhileStatement) implBlockItem() {}
func (*ForStatement) implBlockItem() {}
func (GotoStatement[N]) implBlockItem() {}
func (ContinueStatement) implBlockItem() {}
func (BreakStatement) implBlockItem() {}
func (ReturnStatement) implBlockItem() {}
func (GnuBasicAsm) implBlockItem() {}
func (*GnuExtendedAsm[N]) implBlockItem() {}
func (*Declaration[N]) implBlockItem() {}
func (*StaticAssert) implBlockItem() {}

func (ForEmpty) implForInitializer() {}
func (ForExpression) implForInitializer() {}
func (*Declaration[N]) implForInitializer() {}
func (*StaticAssert) implForInitializer() {}

func (*Declaration[N]) implExternalDeclaration() {}
func (*StaticAssert) implExternalDeclaration() {}
func (*FunctionDefinition[N]) implExternalDeclaration() {}
