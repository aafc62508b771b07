package jsx

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/viant/jsxrefresh/ast"
)

// Emitter is responsible for converting module tree back to JSX source code
type Emitter struct {
	// Indent is used for synthesized blocks, two spaces by default
	Indent string
}

// Emit converts module to source code.
// A module whose body was not changed is emitted exactly as it was parsed.
func (e *Emitter) Emit(module *ast.Module) ([]byte, error) {
	indent := e.Indent
	if indent == "" {
		indent = "  "
	}
	p := &printer{indent: indent}
	p.module(module)
	return p.buf.Bytes(), nil
}

type printer struct {
	buf    bytes.Buffer
	indent string
	depth  int
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) module(m *ast.Module) {
	if m.Layout != nil && sameBody(m) {
		p.layout(m.Layout)
		return
	}
	for _, stmt := range m.Body {
		p.node(stmt)
		p.write("\n")
	}
}

// sameBody checks whether module body still lists exactly the parsed items
func sameBody(m *ast.Module) bool {
	i := 0
	for _, part := range m.Layout {
		stmt, ok := part.(ast.Stmt)
		if !ok {
			continue
		}
		if i >= len(m.Body) || m.Body[i] != stmt {
			return false
		}
		i++
	}
	return i == len(m.Body)
}

func (p *printer) layout(layout ast.Layout) {
	for _, part := range layout {
		if text, ok := part.(*ast.Text); ok {
			p.write(text.Value)
			continue
		}
		p.node(part)
	}
}

func (p *printer) node(n ast.Node) {
	switch actual := n.(type) {
	case *ast.Block:
		p.block(actual)
		return
	case *ast.Module:
		p.module(actual)
		return
	}
	if layout := ast.LayoutOf(n); layout != nil {
		p.layout(layout)
		return
	}
	switch actual := n.(type) {
	case *ast.Text:
		p.write(actual.Value)
	case *ast.Ident:
		p.write(actual.Name)
	case *ast.String:
		p.write(quote(actual.Value))
	case *ast.Bool:
		if actual.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.Import:
		p.importDecl(actual)
	case *ast.Class:
		p.write("class")
		if actual.Name != nil {
			p.write(" " + actual.Name.Name)
		}
		p.write(" {}")
	case *ast.VarDecl:
		p.write(actual.Kind + " ")
		for i, decl := range actual.Decls {
			if i > 0 {
				p.write(", ")
			}
			p.node(decl)
		}
		p.write(";")
	case *ast.Declarator:
		p.node(actual.Target)
		if actual.Init != nil {
			p.write(" = ")
			p.node(actual.Init)
		}
	case *ast.Function:
		if actual.Async {
			p.write("async ")
		}
		p.write("function")
		if actual.Generator {
			p.write("*")
		}
		if actual.Name != nil {
			p.write(" " + actual.Name.Name)
		}
		p.write("() ")
		if actual.Body != nil {
			p.block(actual.Body)
		} else {
			p.write("{}")
		}
	case *ast.Arrow:
		if actual.Async {
			p.write("async ")
		}
		p.write("(")
		p.list(actual.Params)
		p.write(") => ")
		p.node(actual.Body)
	case *ast.Call:
		p.operand(actual.Callee)
		p.write("(")
		p.list(actual.Args)
		p.write(")")
	case *ast.Member:
		p.operand(actual.Object)
		p.write("." + actual.Property)
	case *ast.Assign:
		p.node(actual.Target)
		p.write(" = ")
		p.node(actual.Value)
	case *ast.ExprStmt:
		p.node(actual.Expr)
		p.write(";")
	case *ast.ExportDecl:
		p.write("export ")
		p.node(actual.Decl)
	case *ast.ExportDefault:
		p.write("export default ")
		p.node(actual.Value)
		if _, ok := actual.Value.(ast.Stmt); !ok {
			p.write(";")
		}
	}
}

// operand prints callee or member object, wrapping expressions that would otherwise bind differently
func (p *printer) operand(n ast.Expr) {
	if ast.IsParsed(n) {
		p.node(n)
		return
	}
	switch n.(type) {
	case *ast.Function, *ast.Arrow, *ast.Assign, *ast.Class:
		p.write("(")
		p.node(n)
		p.write(")")
	default:
		p.node(n)
	}
}

func (p *printer) list(exprs []ast.Expr) {
	for i, expr := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.node(expr)
	}
}

func (p *printer) importDecl(decl *ast.Import) {
	p.write("import ")
	var defaults, named []string
	for _, spec := range decl.Specifiers {
		switch spec.Kind {
		case ast.ImportDefault:
			defaults = append(defaults, spec.Local.Name)
		case ast.ImportNamespace:
			defaults = append(defaults, "* as "+spec.Local.Name)
		case ast.ImportNamed:
			if spec.Imported != "" && spec.Imported != spec.Local.Name {
				named = append(named, spec.Imported+" as "+spec.Local.Name)
			} else {
				named = append(named, spec.Local.Name)
			}
		}
	}
	if len(named) > 0 {
		defaults = append(defaults, "{ "+strings.Join(named, ", ")+" }")
	}
	if len(defaults) > 0 {
		p.write(strings.Join(defaults, ", ") + " from ")
	}
	p.write(quote(decl.Source) + ";")
}

func (p *printer) block(b *ast.Block) {
	if b.Layout == nil {
		p.canonicalBlock(b)
		return
	}
	parsed := map[ast.Node]bool{}
	for _, part := range b.Layout {
		parsed[part] = true
	}
	inserted := 0
	for inserted < len(b.Stmts) && !parsed[b.Stmts[inserted]] {
		inserted++
	}
	head, ok := b.Layout[0].(*ast.Text)
	if inserted == 0 || !ok || !strings.HasPrefix(head.Value, "{") {
		if inserted > 0 {
			p.canonicalBlock(b)
			return
		}
		p.layout(b.Layout)
		return
	}
	rest := head.Value[1:]
	if nl := strings.LastIndex(rest, "\n"); nl >= 0 && len(b.Stmts) > inserted && strings.TrimSpace(rest[nl+1:]) == "" {
		indent := rest[nl+1:]
		p.write("{")
		for _, stmt := range b.Stmts[:inserted] {
			p.write("\n" + indent)
			p.node(stmt)
		}
		p.write(rest)
	} else {
		p.write("{ ")
		for _, stmt := range b.Stmts[:inserted] {
			p.node(stmt)
			p.write(" ")
		}
		p.write(strings.TrimLeft(rest, " \t"))
	}
	p.layout(b.Layout[1:])
}

func (p *printer) canonicalBlock(b *ast.Block) {
	if len(b.Stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.depth++
	for _, stmt := range b.Stmts {
		p.write(strings.Repeat(p.indent, p.depth))
		p.node(stmt)
		p.write("\n")
	}
	p.depth--
	p.write(strings.Repeat(p.indent, p.depth) + "}")
}

// quote returns JSON quoted string, a valid JS string literal
func quote(s string) string {
	buf := bytes.Buffer{}
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
