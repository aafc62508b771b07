package jsx

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/jsxrefresh/ast"
)

// converter turns a tree-sitter syntax tree into an ast.Module.
// Every node keeps its layout, so anything not modeled explicitly survives as ast.Verbatim.
type converter struct {
	src []byte
}

// part is one direct child of a syntax node
type part struct {
	field string
	kind  string
	raw   *sitter.Node
	node  ast.Node
}

func (c *converter) module(root *sitter.Node) *ast.Module {
	layout, parts := c.split(root, 0, uint32(len(c.src)), true)
	ret := &ast.Module{Base: ast.Base{Span: ast.Span{End: len(c.src)}, Layout: layout}}
	for _, p := range parts {
		if stmt, ok := p.node.(ast.Stmt); ok {
			ret.Body = append(ret.Body, stmt)
		}
	}
	return ret
}

// split builds node layout; named children are converted, tokens become text.
// Comments are converted into statements only when keepComments is set (module level).
func (c *converter) split(n *sitter.Node, from, to uint32, keepComments bool) (ast.Layout, []part) {
	var layout ast.Layout
	var parts []part
	text := strings.Builder{}
	flush := func() {
		if text.Len() > 0 {
			layout = append(layout, &ast.Text{Value: text.String()})
			text.Reset()
		}
	}
	cursor := from
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		start, end := child.StartByte(), child.EndByte()
		if start > cursor {
			text.Write(c.src[cursor:start])
		}
		if start < cursor {
			start = cursor
		}
		if end < start {
			end = start
		}
		aPart := part{field: n.FieldNameForChild(i), kind: child.Type(), raw: child}
		if child.IsNamed() && (child.Type() != "comment" || keepComments) {
			aPart.node = c.convert(child)
			flush()
			layout = append(layout, aPart.node)
		} else {
			text.Write(c.src[start:end])
		}
		parts = append(parts, aPart)
		cursor = end
	}
	if to > cursor {
		text.Write(c.src[cursor:to])
	}
	flush()
	return layout, parts
}

func (c *converter) base(n *sitter.Node, layout ast.Layout) ast.Base {
	if layout == nil {
		layout = ast.Layout{&ast.Text{}}
	}
	return ast.Base{Span: ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}, Layout: layout}
}

func (c *converter) layout(n *sitter.Node) (ast.Layout, []part) {
	return c.split(n, n.StartByte(), n.EndByte(), false)
}

func (c *converter) convert(n *sitter.Node) ast.Node {
	switch n.Type() {
	case "identifier", "type_identifier":
		return c.ident(n)
	case "statement_block":
		return c.block(n)
	case "import_statement":
		return c.importDecl(n)
	case "class_declaration", "abstract_class_declaration", "class":
		return c.class(n)
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "variable_declarator":
		return c.declarator(n)
	case "function_declaration", "generator_function_declaration",
		"function", "function_expression", "generator_function":
		return c.function(n)
	case "arrow_function":
		return c.arrow(n)
	case "call_expression":
		return c.call(n)
	case "member_expression":
		return c.member(n)
	case "expression_statement":
		return c.exprStmt(n)
	case "export_statement":
		return c.export(n)
	}
	return c.verbatim(n)
}

func (c *converter) verbatim(n *sitter.Node) ast.Node {
	layout, _ := c.layout(n)
	return &ast.Verbatim{Base: c.base(n, layout), Kind: n.Type()}
}

func (c *converter) ident(n *sitter.Node) ast.Node {
	name := n.Content(c.src)
	return &ast.Ident{Base: c.base(n, ast.Layout{&ast.Text{Value: name}}), Name: name}
}

func (c *converter) block(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Block{Base: c.base(n, layout)}
	for _, p := range parts {
		if stmt, ok := p.node.(ast.Stmt); ok {
			ret.Stmts = append(ret.Stmts, stmt)
		}
	}
	return ret
}

func (c *converter) importDecl(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Import{Base: c.base(n, layout)}
	for _, p := range parts {
		switch {
		case p.field == "source":
			ret.Source = strings.Trim(p.raw.Content(c.src), "'\"")
		case p.kind == "import_clause":
			ret.Specifiers = c.importSpecifiers(p.raw)
		}
	}
	return ret
}

func (c *converter) importSpecifiers(clause *sitter.Node) []*ast.ImportSpecifier {
	var result []*ast.ImportSpecifier
	for j := 0; j < int(clause.NamedChildCount()); j++ {
		child := clause.NamedChild(j)
		switch child.Type() {
		case "identifier":
			result = append(result, &ast.ImportSpecifier{Kind: ast.ImportDefault, Local: c.detachedIdent(child), Imported: "default"})
		case "namespace_import":
			for k := 0; k < int(child.NamedChildCount()); k++ {
				if local := child.NamedChild(k); local.Type() == "identifier" {
					result = append(result, &ast.ImportSpecifier{Kind: ast.ImportNamespace, Local: c.detachedIdent(local), Imported: "*"})
				}
			}
		case "named_imports":
			for k := 0; k < int(child.NamedChildCount()); k++ {
				specifier := child.NamedChild(k)
				if specifier.Type() != "import_specifier" {
					continue
				}
				name := specifier.ChildByFieldName("name")
				if name == nil {
					continue
				}
				local := name
				if alias := specifier.ChildByFieldName("alias"); alias != nil {
					local = alias
				}
				result = append(result, &ast.ImportSpecifier{Kind: ast.ImportNamed, Local: c.detachedIdent(local), Imported: name.Content(c.src)})
			}
		}
	}
	return result
}

// detachedIdent creates identifier that is not part of any layout
func (c *converter) detachedIdent(n *sitter.Node) *ast.Ident {
	return &ast.Ident{Base: ast.Base{Span: ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}}, Name: n.Content(c.src)}
}

func (c *converter) class(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Class{Base: c.base(n, layout)}
	for _, p := range parts {
		if p.field == "name" {
			ret.Name, _ = p.node.(*ast.Ident)
		}
	}
	return ret
}

func (c *converter) varDecl(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.VarDecl{Base: c.base(n, layout)}
	for _, p := range parts {
		switch p.kind {
		case "var", "let", "const":
			if p.node == nil {
				ret.Kind = p.kind
			}
		}
		if decl, ok := p.node.(*ast.Declarator); ok {
			ret.Decls = append(ret.Decls, decl)
		}
	}
	return ret
}

func (c *converter) declarator(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Declarator{Base: c.base(n, layout)}
	for _, p := range parts {
		switch p.field {
		case "name":
			ret.Target = p.node
		case "value":
			ret.Init, _ = p.node.(ast.Expr)
		}
	}
	return ret
}

func (c *converter) function(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Function{Base: c.base(n, layout), Generator: strings.Contains(n.Type(), "generator")}
	for _, p := range parts {
		switch {
		case p.field == "name":
			ret.Name, _ = p.node.(*ast.Ident)
		case p.field == "body":
			ret.Body, _ = p.node.(*ast.Block)
		case p.kind == "async" && p.node == nil:
			ret.Async = true
		case p.kind == "*" && p.node == nil:
			ret.Generator = true
		}
	}
	return ret
}

func (c *converter) arrow(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Arrow{Base: c.base(n, layout)}
	for _, p := range parts {
		switch {
		case p.field == "body":
			ret.Body = p.node
		case p.kind == "async" && p.node == nil:
			ret.Async = true
		}
	}
	return ret
}

func (c *converter) call(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Call{Base: c.base(n, layout)}
	for _, p := range parts {
		switch p.field {
		case "function":
			ret.Callee, _ = p.node.(ast.Expr)
		case "arguments":
			if p.kind != "arguments" || p.node == nil {
				continue
			}
			for _, arg := range ast.Children(p.node) {
				if expr, ok := arg.(ast.Expr); ok {
					ret.Args = append(ret.Args, expr)
				}
			}
		}
	}
	return ret
}

func (c *converter) member(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.Member{Base: c.base(n, layout)}
	for _, p := range parts {
		switch p.field {
		case "object":
			ret.Object, _ = p.node.(ast.Expr)
		case "property":
			ret.Property = p.raw.Content(c.src)
		}
	}
	return ret
}

func (c *converter) exprStmt(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	ret := &ast.ExprStmt{Base: c.base(n, layout)}
	for _, p := range parts {
		if expr, ok := p.node.(ast.Expr); ok && ret.Expr == nil {
			ret.Expr = expr
		}
	}
	return ret
}

// export converts export statements; re-exports and export clauses stay verbatim
func (c *converter) export(n *sitter.Node) ast.Node {
	layout, parts := c.layout(n)
	isDefault := false
	var declaration, value ast.Node
	for _, p := range parts {
		switch {
		case p.kind == "default" && p.node == nil:
			isDefault = true
		case p.field == "declaration":
			declaration = p.node
		case p.field == "value":
			value = p.node
		case p.field == "source", p.kind == "export_clause", p.kind == "namespace_export":
			return &ast.Verbatim{Base: c.base(n, layout), Kind: n.Type()}
		}
	}
	switch {
	case isDefault && declaration != nil:
		return &ast.ExportDefault{Base: c.base(n, layout), Value: declaration}
	case isDefault && value != nil:
		return &ast.ExportDefault{Base: c.base(n, layout), Value: value}
	case declaration != nil:
		if stmt, ok := declaration.(ast.Stmt); ok {
			return &ast.ExportDecl{Base: c.base(n, layout), Decl: stmt}
		}
	}
	return &ast.Verbatim{Base: c.base(n, layout), Kind: n.Type()}
}
