package ast

// Node represents any element of a module tree
type Node interface {
	base() *Base
}

// Stmt represents a module item or a statement inside a block
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression
type Expr interface {
	Node
	exprNode()
}

// Span is a byte range within the parsed source
type Span struct {
	Start int
	End   int
}

// Layout holds the source fragments of a parsed node: *Text parts interleaved with child nodes.
// Printing the layout of an unmodified node reproduces its source exactly.
type Layout []Node

// Base carries position and layout shared by all nodes; both are empty for synthesized nodes
type Base struct {
	Span   Span
	Layout Layout
}

func (b *Base) base() *Base { return b }

// Text is a verbatim source fragment within a layout
type Text struct {
	Value string
}

func (t *Text) base() *Base { return nil }

// Module is one parsed source file
type Module struct {
	Base
	Body []Stmt
}

// ImportKind identifies an import binding form
type ImportKind int

const (
	ImportDefault ImportKind = iota
	ImportNamed
	ImportNamespace
)

// Import represents an import declaration
type Import struct {
	Base
	Specifiers []*ImportSpecifier
	Source     string
}

// ImportSpecifier represents one binding introduced by an import declaration
type ImportSpecifier struct {
	Base
	Kind     ImportKind
	Local    *Ident
	Imported string
}

// Class represents a class declaration or expression
type Class struct {
	Base
	Name *Ident
}

// VarDecl represents a var, let or const declaration
type VarDecl struct {
	Base
	Kind  string
	Decls []*Declarator
}

// Declarator is a single binding of a VarDecl; Target is an *Ident or a destructuring pattern
type Declarator struct {
	Base
	Target Node
	Init   Expr
}

// Function represents a function declaration or a function expression
type Function struct {
	Base
	Async     bool
	Generator bool
	Name      *Ident
	Body      *Block
}

// Arrow represents an arrow function; Body is a *Block or an Expr.
// Params are only populated for synthesized arrows, parsed ones keep them in the layout.
type Arrow struct {
	Base
	Async  bool
	Params []Expr
	Body   Node
}

// Call represents a call expression
type Call struct {
	Base
	Callee Expr
	Args   []Expr
}

// Member represents a non-computed property access
type Member struct {
	Base
	Object   Expr
	Property string
}

// Assign represents an assignment expression
type Assign struct {
	Base
	Target Expr
	Value  Expr
}

// ExprStmt represents an expression statement
type ExprStmt struct {
	Base
	Expr Expr
}

// ExportDecl represents export of a declaration, e.g. export const A = ...
type ExportDecl struct {
	Base
	Decl Stmt
}

// ExportDefault represents export default of a declaration or an expression
type ExportDefault struct {
	Base
	Value Node
}

// Block represents a statement block
type Block struct {
	Base
	Stmts []Stmt
}

// Ident represents an identifier
type Ident struct {
	Base
	Name string
}

// String represents a string literal
type String struct {
	Base
	Value string
}

// Bool represents a boolean literal
type Bool struct {
	Base
	Value bool
}

// Verbatim represents any construct that is kept as is; Kind holds the parser node type
type Verbatim struct {
	Base
	Kind string
}

func (*Import) stmtNode()        {}
func (*Class) stmtNode()         {}
func (*VarDecl) stmtNode()       {}
func (*Function) stmtNode()      {}
func (*ExprStmt) stmtNode()      {}
func (*ExportDecl) stmtNode()    {}
func (*ExportDefault) stmtNode() {}
func (*Block) stmtNode()         {}
func (*Verbatim) stmtNode()      {}

func (*Class) exprNode()    {}
func (*Function) exprNode() {}
func (*Arrow) exprNode()    {}
func (*Call) exprNode()     {}
func (*Member) exprNode()   {}
func (*Assign) exprNode()   {}
func (*Ident) exprNode()    {}
func (*String) exprNode()   {}
func (*Bool) exprNode()     {}
func (*Verbatim) exprNode() {}

// SpanOf returns node source span
func SpanOf(n Node) Span {
	if b := n.base(); b != nil {
		return b.Span
	}
	return Span{}
}

// LayoutOf returns node layout, nil for synthesized nodes and text fragments
func LayoutOf(n Node) Layout {
	if b := n.base(); b != nil {
		return b.Layout
	}
	return nil
}

// IsParsed returns true if node was produced by a parser
func IsParsed(n Node) bool {
	return LayoutOf(n) != nil
}
