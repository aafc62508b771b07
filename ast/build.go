package ast

import "strings"

// NewIdent creates identifier
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

// NewString creates string literal
func NewString(value string) *String {
	return &String{Value: value}
}

// NewBool creates boolean literal
func NewBool(value bool) *Bool {
	return &Bool{Value: value}
}

// NewCall creates call expression
func NewCall(callee Expr, args ...Expr) *Call {
	return &Call{Callee: callee, Args: args}
}

// NewMember creates object.property expression
func NewMember(object Expr, property string) *Member {
	return &Member{Object: object, Property: property}
}

// MemberPath creates member chain from a dotted path, e.g. "global.$RefreshRuntime$.register"
func MemberPath(path string) Expr {
	parts := strings.Split(path, ".")
	var result Expr = NewIdent(parts[0])
	for _, part := range parts[1:] {
		result = NewMember(result, part)
	}
	return result
}

// NewAssign creates assignment expression
func NewAssign(target, value Expr) *Assign {
	return &Assign{Target: target, Value: value}
}

// NewArrow creates arrow function
func NewArrow(params []Expr, body Node) *Arrow {
	return &Arrow{Params: params, Body: body}
}

// NewExprStmt creates expression statement
func NewExprStmt(expr Expr) *ExprStmt {
	return &ExprStmt{Expr: expr}
}

// NewVar creates single var declaration
func NewVar(name string, init Expr) *VarDecl {
	return &VarDecl{Kind: "var", Decls: []*Declarator{{Target: NewIdent(name), Init: init}}}
}

// NewBlock creates statement block
func NewBlock(stmts ...Stmt) *Block {
	return &Block{Stmts: stmts}
}
