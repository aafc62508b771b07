package refresh

import "github.com/viant/jsxrefresh/ast"

// candidate is a declaration shape that may bind a component
type candidate struct {
	kind  Kind
	name  *ast.Ident
	value ast.Node
}

// classify recognizes declaration shapes; it inspects declaration sites only,
// so re-exports such as export default Foo or export { Foo } are never candidates.
func classify(item ast.Stmt) candidate {
	switch actual := item.(type) {
	case *ast.VarDecl:
		return classifyVar(actual)
	case *ast.Function:
		return classifyFunction(actual)
	case *ast.ExportDecl:
		switch decl := actual.Decl.(type) {
		case *ast.VarDecl:
			return classifyVar(decl)
		case *ast.Function:
			return classifyFunction(decl)
		}
	case *ast.ExportDefault:
		if fn, ok := actual.Value.(*ast.Function); ok {
			return classifyFunction(fn)
		}
	}
	return candidate{}
}

func classifyFunction(fn *ast.Function) candidate {
	if fn.Name == nil {
		return candidate{}
	}
	return candidate{kind: FunctionComponent, name: fn.Name, value: fn}
}

// classifyVar only examines single declarator statements:
// with var A, B, C = fn there is no telling which binding is the component.
func classifyVar(decl *ast.VarDecl) candidate {
	if len(decl.Decls) != 1 {
		return candidate{}
	}
	declarator := decl.Decls[0]
	name, ok := declarator.Target.(*ast.Ident)
	if !ok || declarator.Init == nil {
		return candidate{}
	}
	switch declarator.Init.(type) {
	case *ast.Function:
		return candidate{kind: FunctionComponent, name: name, value: declarator.Init}
	case *ast.Arrow:
		return candidate{kind: ArrowComponent, name: name, value: declarator.Init}
	case *ast.Call:
		return candidate{kind: HocWrappedComponent, name: name, value: declarator.Init}
	}
	return candidate{}
}
