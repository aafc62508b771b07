package refresh

import (
	"fmt"

	"github.com/viant/jsxrefresh/ast"
	"github.com/viant/jsxrefresh/config"
)

// Names recognized by the refresh runtime library
const (
	RegisterGlobal  = "$RefreshReg$"
	SignatureGlobal = "$RefreshSig$"
	RuntimeGlobal   = "$RefreshRuntime$"
	HMRGlobal       = "__hmr"
	PrevRegister    = "__prevRefreshReg"
	PrevSignature   = "__prevRefreshSig"
	SignatureLocal  = "__s"
)

// Globals builds references to process-wide refresh bindings under a root object
type Globals struct {
	// Root is the global object, e.g. "global" or "globalThis"; empty means bare identifiers
	Root string
}

// Ref returns reference to a global binding
func (g Globals) Ref(name string, properties ...string) ast.Expr {
	var ret ast.Expr
	if g.Root == "" {
		ret = ast.NewIdent(name)
	} else {
		ret = ast.NewMember(ast.NewIdent(g.Root), name)
	}
	for _, property := range properties {
		ret = ast.NewMember(ret, property)
	}
	return ret
}

// Register returns registration hook reference
func (g Globals) Register() ast.Expr { return g.Ref(RegisterGlobal) }

// Signature returns signature hook reference
func (g Globals) Signature() ast.Expr { return g.Ref(SignatureGlobal) }

// Runtime returns runtime member reference
func (g Globals) Runtime(properties ...string) ast.Expr { return g.Ref(RuntimeGlobal, properties...) }

// Runtime generates the code addressing a particular refresh runtime protocol
type Runtime interface {
	// Name returns runtime name used in configuration
	Name() string
	// InstallRegister returns statement installing a fresh registration function
	InstallRegister(g Globals) ast.Stmt
	// InstallSignature returns statement installing a fresh signature function factory
	InstallSignature(g Globals) ast.Stmt
	// Register returns statement registering a component
	Register(g Globals, component *Component) ast.Stmt
	// Accept returns statement opting a component into hot swapping
	Accept(g Globals, component *Component) ast.Stmt
}

// ContextRuntime addresses runtime exposing getRegisterFunction, getCreateSignatureFunction and getContext
type ContextRuntime struct{}

func (ContextRuntime) Name() string { return config.RuntimeContext }

func (ContextRuntime) InstallRegister(g Globals) ast.Stmt {
	return ast.NewExprStmt(ast.NewAssign(g.Register(), ast.NewCall(g.Runtime("getRegisterFunction"))))
}

func (ContextRuntime) InstallSignature(g Globals) ast.Stmt {
	return ast.NewExprStmt(ast.NewAssign(g.Signature(), ast.NewCall(g.Runtime("getCreateSignatureFunction"))))
}

// Register registers component under its local name
func (ContextRuntime) Register(g Globals, component *Component) ast.Stmt {
	return ast.NewExprStmt(ast.NewCall(g.Register(), ast.NewIdent(component.Name), ast.NewString(component.Name)))
}

func (ContextRuntime) Accept(g Globals, component *Component) ast.Stmt {
	context := ast.NewCall(g.Runtime("getContext"), ast.NewIdent(component.Name))
	return ast.NewExprStmt(ast.NewCall(ast.NewMember(context, "accept")))
}

// HMRRuntime addresses runtime exposing register and createSignatureFunctionForTransform,
// with acceptance going through the HMR namespace function
type HMRRuntime struct{}

func (HMRRuntime) Name() string { return config.RuntimeHMR }

// InstallRegister installs wrapper forwarding to runtime register(type, id)
func (HMRRuntime) InstallRegister(g Globals) ast.Stmt {
	params := []ast.Expr{ast.NewIdent("type"), ast.NewIdent("id")}
	forward := ast.NewCall(g.Runtime("register"), ast.NewIdent("type"), ast.NewIdent("id"))
	return ast.NewExprStmt(ast.NewAssign(g.Register(), ast.NewArrow(params, forward)))
}

func (HMRRuntime) InstallSignature(g Globals) ast.Stmt {
	return ast.NewExprStmt(ast.NewAssign(g.Signature(), g.Runtime("createSignatureFunctionForTransform")))
}

// Register registers component under its module qualified id
func (HMRRuntime) Register(g Globals, component *Component) ast.Stmt {
	return ast.NewExprStmt(ast.NewCall(g.Register(), ast.NewIdent(component.Name), ast.NewString(component.ID)))
}

func (HMRRuntime) Accept(g Globals, component *Component) ast.Stmt {
	namespace := ast.NewCall(g.Ref(HMRGlobal), ast.NewIdent(component.Name), ast.NewString(component.ID))
	return ast.NewExprStmt(ast.NewCall(ast.NewMember(namespace, "accept")))
}

// RuntimeByName returns runtime for configuration name, empty name selects ContextRuntime
func RuntimeByName(name string) (Runtime, error) {
	switch name {
	case "", config.RuntimeContext:
		return ContextRuntime{}, nil
	case config.RuntimeHMR:
		return HMRRuntime{}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrRuntime, name)
}
