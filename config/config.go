package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Fatal configuration errors; any of them aborts a transform before rewriting starts
var (
	ErrConfig      = errors.New("jsxrefresh: invalid configuration")
	ErrModuleID    = fmt.Errorf("%w: moduleId is required", ErrConfig)
	ErrEnvironment = fmt.Errorf("%w: transform should only be enabled in development environment, pass skipEnvCheck to override", ErrConfig)
	ErrRuntime     = fmt.Errorf("%w: unsupported runtime", ErrConfig)
)

const (
	// Development is the only environment the transform runs in without skipEnvCheck
	Development = "development"
	DefaultRoot = "global"

	RuntimeContext = "context"
	RuntimeHMR     = "hmr-id"

	ScopeOutermost = "outermost"
	ScopeNested    = "nested"

	ProbeAlways = "always"
	ProbeHooks  = "hooks"
)

// Options represents plugin configuration supplied by the host
type Options struct {
	ModuleID     string `yaml:"moduleId" toml:"moduleId" json:"moduleId"`
	SkipEnvCheck bool   `yaml:"skipEnvCheck" toml:"skipEnvCheck" json:"skipEnvCheck"`
	Runtime      string `yaml:"runtime,omitempty" toml:"runtime" json:"runtime,omitempty"`
	Scope        string `yaml:"scope,omitempty" toml:"scope" json:"scope,omitempty"`
	Probe        string `yaml:"probe,omitempty" toml:"probe" json:"probe,omitempty"`
	Root         string `yaml:"root,omitempty" toml:"root" json:"root,omitempty"`
}

// DefaultOptions returns options with defaults applied
func DefaultOptions() *Options {
	return &Options{Runtime: RuntimeContext, Scope: ScopeOutermost, Probe: ProbeHooks, Root: DefaultRoot}
}

// RootObject returns global object name
func (o *Options) RootObject() string {
	if o.Root == "" {
		return DefaultRoot
	}
	return o.Root
}

// Init applies defaults to unset fields
func (o *Options) Init() {
	defaults := DefaultOptions()
	if o.Runtime == "" {
		o.Runtime = defaults.Runtime
	}
	if o.Scope == "" {
		o.Scope = defaults.Scope
	}
	if o.Probe == "" {
		o.Probe = defaults.Probe
	}
	if o.Root == "" {
		o.Root = defaults.Root
	}
}

// Validate checks option values; module id is checked per module since hosts may supply it late
func (o *Options) Validate() error {
	switch o.Runtime {
	case "", RuntimeContext, RuntimeHMR:
	default:
		return fmt.Errorf("%w: %q", ErrRuntime, o.Runtime)
	}
	switch o.Scope {
	case "", ScopeOutermost, ScopeNested:
	default:
		return fmt.Errorf("%w: unsupported scope %q", ErrConfig, o.Scope)
	}
	switch o.Probe {
	case "", ProbeHooks, ProbeAlways:
	default:
		return fmt.Errorf("%w: unsupported probe policy %q", ErrConfig, o.Probe)
	}
	if strings.ContainsAny(o.Root, " \t\r\n;()") {
		return fmt.Errorf("%w: invalid root object %q", ErrConfig, o.Root)
	}
	return nil
}

// Fingerprint returns string identifying options that affect generated code
func (o *Options) Fingerprint() string {
	return strings.Join([]string{o.Runtime, o.Scope, o.Probe, o.RootObject()}, "|")
}

// Gate refuses to run outside development unless the check is skipped
func Gate(env string, options *Options) error {
	if env == Development || options.SkipEnvCheck {
		return nil
	}
	return fmt.Errorf("%w (env: %q)", ErrEnvironment, env)
}

// Parse decodes plugin configuration blob, JSON or YAML
func Parse(blob []byte) (*Options, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, fmt.Errorf("%w: empty plugin configuration", ErrConfig)
	}
	ret := &Options{}
	if err := yaml.Unmarshal(blob, ret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	ret.Init()
	return ret, ret.Validate()
}

// Load reads options from a .json, .yaml, .yml or .toml file
func Load(path string) (*Options, error) {
	ret := &Options{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, ret); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrConfig, path, err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrConfig, path, err)
		}
	}
	ret.Init()
	return ret, ret.Validate()
}
