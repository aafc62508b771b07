package refresh

import (
	"unicode"
	"unicode/utf8"

	"github.com/viant/jsxrefresh/ast"
)

// Kind classifies a top-level declaration
type Kind int

const (
	NotAComponent Kind = iota
	// FunctionComponent is a function declaration or a binding initialized with a function expression
	FunctionComponent
	// ArrowComponent is a binding initialized with an arrow function
	ArrowComponent
	// HocWrappedComponent is a binding initialized with a call, e.g. memo(...) or forwardRef(...)
	HocWrappedComponent
)

// String returns kind name
func (k Kind) String() string {
	switch k {
	case FunctionComponent:
		return "function"
	case ArrowComponent:
		return "arrow"
	case HocWrappedComponent:
		return "hoc"
	}
	return "none"
}

// Component is an accepted refresh boundary
type Component struct {
	Name         string
	ID           string
	Kind         Kind
	Span         ast.Span
	BuiltinHooks int
	CustomHooks  int
}

// HasHooks returns true if component body calls any hook
func (c *Component) HasHooks() bool {
	return c.BuiltinHooks+c.CustomHooks > 0
}

// HasCustomHooks returns true if component body calls a custom hook
func (c *Component) HasCustomHooks() bool {
	return c.CustomHooks > 0
}

// IsComponentName returns true if name starts with an uppercase letter
func IsComponentName(name string) bool {
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return false
	}
	return unicode.IsUpper(first)
}

// ComponentID returns module qualified component id
func ComponentID(moduleID, name string) string {
	return moduleID + ":" + name
}
