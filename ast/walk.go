package ast

import "reflect"

// Visitor is called for every node in a walk; returning false skips the node children
type Visitor func(n Node) bool

// Walk traverses tree rooted at n in source order
func Walk(n Node, visit Visitor) {
	if isNil(n) || !visit(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, visit)
	}
}

// Children returns direct child nodes of n in source order.
// Parsed nodes are traversed through their layout, so constructs kept as Verbatim are still reachable.
func Children(n Node) []Node {
	if block, ok := n.(*Block); ok {
		result := make([]Node, 0, len(block.Stmts))
		for _, stmt := range block.Stmts {
			result = appendNode(result, stmt)
		}
		return result
	}
	if layout := LayoutOf(n); layout != nil {
		var result []Node
		for _, part := range layout {
			if _, ok := part.(*Text); ok {
				continue
			}
			result = appendNode(result, part)
		}
		return result
	}
	var result []Node
	switch actual := n.(type) {
	case *Module:
		for _, stmt := range actual.Body {
			result = appendNode(result, stmt)
		}
	case *Import:
		for _, spec := range actual.Specifiers {
			result = appendNode(result, spec)
		}
	case *ImportSpecifier:
		result = appendNode(result, actual.Local)
	case *Class:
		result = appendNode(result, actual.Name)
	case *VarDecl:
		for _, decl := range actual.Decls {
			result = appendNode(result, decl)
		}
	case *Declarator:
		result = appendNode(result, actual.Target)
		result = appendNode(result, actual.Init)
	case *Function:
		result = appendNode(result, actual.Name)
		result = appendNode(result, actual.Body)
	case *Arrow:
		for _, param := range actual.Params {
			result = appendNode(result, param)
		}
		result = appendNode(result, actual.Body)
	case *Call:
		result = appendNode(result, actual.Callee)
		for _, arg := range actual.Args {
			result = appendNode(result, arg)
		}
	case *Member:
		result = appendNode(result, actual.Object)
	case *Assign:
		result = appendNode(result, actual.Target)
		result = appendNode(result, actual.Value)
	case *ExprStmt:
		result = appendNode(result, actual.Expr)
	case *ExportDecl:
		result = appendNode(result, actual.Decl)
	case *ExportDefault:
		result = appendNode(result, actual.Value)
	}
	return result
}

func appendNode(nodes []Node, n Node) []Node {
	if isNil(n) {
		return nodes
	}
	return append(nodes, n)
}

// isNil detects both nil interfaces and typed nil pointers held by an interface
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	value := reflect.ValueOf(n)
	return value.Kind() == reflect.Ptr && value.IsNil()
}
