package refresh

import (
	"fmt"

	"github.com/viant/jsxrefresh/config"
	"go.uber.org/zap"
)

// Scope controls how deep the hook analyzer descends into a component declaration
type Scope int

const (
	// ScopeOutermost stops at the first function body on every path
	ScopeOutermost Scope = iota
	// ScopeNested analyzes and probes every block of the declaration, nested callbacks included
	ScopeNested
)

// ProbePolicy controls which component bodies receive the signature probe
type ProbePolicy int

const (
	// ProbeWhenHooked probes bodies of components calling at least one hook
	ProbeWhenHooked ProbePolicy = iota
	// ProbeAlways probes every analyzed body of an accepted component
	ProbeAlways
)

type Option func(*Transformer)

// WithRuntime sets runtime protocol
func WithRuntime(runtime Runtime) Option {
	return func(t *Transformer) {
		t.runtime = runtime
	}
}

// WithScope sets hook analyzer scope
func WithScope(scope Scope) Option {
	return func(t *Transformer) {
		t.scope = scope
	}
}

// WithProbe sets probe policy
func WithProbe(policy ProbePolicy) Option {
	return func(t *Transformer) {
		t.probe = policy
	}
}

// WithRoot sets global object name used by generated code
func WithRoot(root string) Option {
	return func(t *Transformer) {
		t.globals.Root = root
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// OptionsFrom converts plugin configuration into transformer options
func OptionsFrom(cfg *config.Options) ([]Option, error) {
	runtime, err := RuntimeByName(cfg.Runtime)
	if err != nil {
		return nil, err
	}
	ret := []Option{WithRuntime(runtime), WithRoot(cfg.RootObject())}
	switch cfg.Scope {
	case "", config.ScopeOutermost:
		ret = append(ret, WithScope(ScopeOutermost))
	case config.ScopeNested:
		ret = append(ret, WithScope(ScopeNested))
	default:
		return nil, fmt.Errorf("%w: unsupported scope %q", config.ErrConfig, cfg.Scope)
	}
	switch cfg.Probe {
	case "", config.ProbeHooks:
		ret = append(ret, WithProbe(ProbeWhenHooked))
	case config.ProbeAlways:
		ret = append(ret, WithProbe(ProbeAlways))
	default:
		return nil, fmt.Errorf("%w: unsupported probe policy %q", config.ErrConfig, cfg.Probe)
	}
	return ret, nil
}
