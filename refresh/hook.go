package refresh

import (
	"strings"

	"github.com/viant/jsxrefresh/ast"
)

// BuiltinHooks lists React stateful primitives
var BuiltinHooks = map[string]bool{
	"useState":            true,
	"useReducer":          true,
	"useEffect":           true,
	"useLayoutEffect":     true,
	"useMemo":             true,
	"useCallback":         true,
	"useRef":              true,
	"useContext":          true,
	"useImperativeHandle": true,
	"useDebugValue":       true,
}

// Usage is the hook usage found in a declaration subtree
type Usage struct {
	// NonEmpty is false only when the component function body has no statements
	NonEmpty     bool
	BuiltinHooks int
	CustomHooks  int
	blocks       []*ast.Block
}

// Hooks returns total number of hook calls
func (u *Usage) Hooks() int {
	return u.BuiltinHooks + u.CustomHooks
}

// Bodies returns number of analyzed blocks
func (u *Usage) Bodies() int {
	return len(u.blocks)
}

// Instrument prepends signature probe call to every analyzed block
func (u *Usage) Instrument(probe func() ast.Stmt) {
	for _, block := range u.blocks {
		block.Stmts = append([]ast.Stmt{probe()}, block.Stmts...)
	}
}

// analyzeHooks scans blocks reachable from root. Only direct statements of each block are
// classified; scope decides whether blocks nested in an analyzed block are visited as well.
// Parameter lists are not scanned, so default value callbacks are left alone.
// Emptiness is taken from the body of the function value binds; a value without a block,
// e.g. an expression bodied arrow or memo(Bar), counts as non-empty.
func analyzeHooks(root, value ast.Node, scope Scope) *Usage {
	ret := &Usage{NonEmpty: true}
	if body := componentBody(value); body != nil {
		ret.NonEmpty = len(body.Stmts) > 0
	}
	var visit ast.Visitor
	visit = func(n ast.Node) bool {
		switch actual := n.(type) {
		case *ast.Function:
			ast.Walk(actual.Body, visit)
			return false
		case *ast.Arrow:
			ast.Walk(actual.Body, visit)
			return false
		case *ast.Block:
			ret.blocks = append(ret.blocks, actual)
			for _, stmt := range actual.Stmts {
				ret.count(stmt)
			}
			return scope == ScopeNested
		}
		return true
	}
	ast.Walk(root, visit)
	return ret
}

// componentBody returns the block of a function value, looking through HOC call arguments
func componentBody(value ast.Node) *ast.Block {
	switch actual := value.(type) {
	case *ast.Function:
		return actual.Body
	case *ast.Arrow:
		block, _ := actual.Body.(*ast.Block)
		return block
	case *ast.Call:
		for _, arg := range actual.Args {
			switch arg.(type) {
			case *ast.Function, *ast.Arrow:
				return componentBody(arg)
			case *ast.Call:
				if body := componentBody(arg); body != nil {
					return body
				}
			}
		}
	}
	return nil
}

func (u *Usage) count(stmt ast.Stmt) {
	switch actual := stmt.(type) {
	case *ast.ExprStmt:
		if call, ok := actual.Expr.(*ast.Call); ok {
			u.countCall(call)
		}
	case *ast.VarDecl:
		for _, decl := range actual.Decls {
			if call, ok := decl.Init.(*ast.Call); ok {
				u.countCall(call)
			}
		}
	}
}

// countCall classifies bare identifier callees; member callees such as React.useState are not hooks here
func (u *Usage) countCall(call *ast.Call) {
	ident, ok := call.Callee.(*ast.Ident)
	if !ok {
		return
	}
	switch {
	case BuiltinHooks[ident.Name]:
		u.BuiltinHooks++
	case strings.HasPrefix(ident.Name, "use"):
		u.CustomHooks++
	}
}
