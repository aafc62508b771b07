package refresh

import (
	"github.com/viant/jsxrefresh/ast"
	"github.com/viant/jsxrefresh/config"
	"go.uber.org/zap"
)

// Transformer instruments component modules for Fast Refresh.
// It holds configuration only; every Transform call works on its own state,
// so one Transformer can serve concurrent modules sharing the same module id.
type Transformer struct {
	moduleID string
	runtime  Runtime
	globals  Globals
	scope    Scope
	probe    ProbePolicy
	logger   *zap.Logger
}

// Result holds rewritten module and the accepted components in discovery order
type Result struct {
	Module     *ast.Module
	Components []*Component
}

// Changed returns true if any component was instrumented
func (r *Result) Changed() bool {
	return len(r.Components) > 0
}

// New creates a transformer for a module
func New(moduleID string, options ...Option) *Transformer {
	ret := &Transformer{
		moduleID: moduleID,
		runtime:  ContextRuntime{},
		globals:  Globals{Root: config.DefaultRoot},
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// ModuleID returns module id
func (t *Transformer) ModuleID() string {
	return t.moduleID
}

// Transform rewrites module. Blocks of accepted components are probed in place;
// the returned module lists prologue, original items and epilogue.
// A module without components is returned as is.
func (t *Transformer) Transform(module *ast.Module) (*Result, error) {
	if t.moduleID == "" {
		return nil, config.ErrModuleID
	}
	r := &run{
		Transformer: t,
		excluded:    collectExclusions(module),
		seen:        map[string]bool{},
	}
	r.scan(module)
	if len(r.components) == 0 {
		return &Result{Module: module}, nil
	}
	body := r.finalize()
	t.logger.Debug("module instrumented",
		zap.String("module", t.moduleID),
		zap.Int("components", len(r.components)),
		zap.Int("items", len(body)))
	return &Result{
		Module:     &ast.Module{Base: module.Base, Body: body},
		Components: r.components,
	}, nil
}

// run is the state of a single Transform call
type run struct {
	*Transformer
	excluded   map[string]bool
	seen       map[string]bool
	body       []ast.Stmt
	components []*Component
	probed     bool
}

// scan visits module items in source order; accepted items are instrumented in place
func (r *run) scan(module *ast.Module) {
	for _, item := range module.Body {
		r.accept(item)
		r.body = append(r.body, item)
	}
}

func (r *run) accept(item ast.Stmt) {
	found := classify(item)
	if found.kind == NotAComponent {
		return
	}
	name := found.name.Name
	switch {
	case !IsComponentName(name):
		return
	case r.seen[name]:
		r.logger.Debug("duplicate component skipped", zap.String("module", r.moduleID), zap.String("name", name))
		return
	case r.excluded[name]:
		r.logger.Debug("excluded component skipped", zap.String("module", r.moduleID), zap.String("name", name))
		return
	}
	usage := analyzeHooks(item, found.value, r.scope)
	if !usage.NonEmpty {
		r.logger.Debug("empty component body skipped", zap.String("module", r.moduleID), zap.String("name", name))
		return
	}
	if r.probe == ProbeAlways || usage.Hooks() > 0 {
		usage.Instrument(r.probeStmt)
		r.probed = r.probed || usage.Bodies() > 0
	}
	r.seen[name] = true
	component := &Component{
		Name:         name,
		ID:           ComponentID(r.moduleID, name),
		Kind:         found.kind,
		Span:         ast.SpanOf(found.name),
		BuiltinHooks: usage.BuiltinHooks,
		CustomHooks:  usage.CustomHooks,
	}
	r.components = append(r.components, component)
	r.logger.Debug("component accepted",
		zap.String("id", component.ID),
		zap.Stringer("kind", component.Kind),
		zap.Int("builtinHooks", component.BuiltinHooks),
		zap.Int("customHooks", component.CustomHooks))
}

// probeStmt returns __s();
func (r *run) probeStmt() ast.Stmt {
	return ast.NewExprStmt(ast.NewCall(ast.NewIdent(SignatureLocal)))
}

// finalize assembles prologue, scanned items, per component epilogue and restoration.
// The __s local is declared whenever a probe was emitted, hooked or not.
func (r *run) finalize() []ast.Stmt {
	g := r.globals
	ret := []ast.Stmt{
		ast.NewVar(PrevRegister, g.Register()),
		ast.NewVar(PrevSignature, g.Signature()),
		r.runtime.InstallRegister(g),
	}
	if r.probed {
		ret = append(ret,
			r.runtime.InstallSignature(g),
			ast.NewVar(SignatureLocal, ast.NewCall(g.Signature())))
	}
	ret = append(ret, r.body...)
	for _, component := range r.components {
		if component.HasHooks() {
			ret = append(ret, ast.NewExprStmt(ast.NewCall(ast.NewIdent(SignatureLocal),
				ast.NewIdent(component.Name),
				ast.NewString(component.ID),
				ast.NewBool(component.HasCustomHooks()))))
		}
		ret = append(ret, r.runtime.Register(g, component), r.runtime.Accept(g, component))
	}
	return append(ret,
		ast.NewExprStmt(ast.NewAssign(g.Register(), ast.NewIdent(PrevRegister))),
		ast.NewExprStmt(ast.NewAssign(g.Signature(), ast.NewIdent(PrevSignature))))
}
