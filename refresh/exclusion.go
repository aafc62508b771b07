package refresh

import "github.com/viant/jsxrefresh/ast"

// collectExclusions returns component-like names that must never become refresh boundaries:
// imported bindings, defined in another module, and class declarations.
func collectExclusions(module *ast.Module) map[string]bool {
	ret := map[string]bool{}
	add := func(ident *ast.Ident) {
		if ident != nil && IsComponentName(ident.Name) {
			ret[ident.Name] = true
		}
	}
	for _, item := range module.Body {
		switch actual := item.(type) {
		case *ast.Import:
			for _, spec := range actual.Specifiers {
				if spec.Kind == ast.ImportNamespace {
					continue
				}
				add(spec.Local)
			}
		case *ast.Class:
			add(actual.Name)
		case *ast.ExportDecl:
			if class, ok := actual.Decl.(*ast.Class); ok {
				add(class.Name)
			}
		case *ast.ExportDefault:
			if class, ok := actual.Value.(*ast.Class); ok {
				add(class.Name)
			}
		}
	}
	return ret
}
