package plugin

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/viant/afs"
	"github.com/viant/jsxrefresh/cache"
	"github.com/viant/jsxrefresh/config"
	"github.com/viant/jsxrefresh/inspector/jsx"
	"github.com/viant/jsxrefresh/refresh"
	"go.uber.org/zap"
)

// Plugin is the host side pipeline: parse, instrument and emit one module at a time.
// It is safe for concurrent use.
type Plugin struct {
	options   *config.Options
	env       string
	transform []refresh.Option
	inspector *jsx.Inspector
	emitter   *jsx.Emitter
	cache     *cache.Cache
	fs        afs.Service
	logger    *zap.Logger
}

// Request represents a single module transform request
type Request struct {
	// ModuleID overrides configured module id when set
	ModuleID string
	// Filename selects parser dialect
	Filename string
	Source   []byte
}

// Result represents transformed module
type Result struct {
	ModuleID   string
	Code       []byte
	Components []string
	// Details are available for results that were not served from cache
	Details []*refresh.Component
	Cached  bool
}

// Changed returns true if any component was instrumented
func (r *Result) Changed() bool {
	return len(r.Components) > 0
}

type Option func(*Plugin)

// WithCache sets result cache
func WithCache(c *cache.Cache) Option {
	return func(p *Plugin) {
		p.cache = c
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithFS sets file system service used by TransformFile
func WithFS(fs afs.Service) Option {
	return func(p *Plugin) {
		p.fs = fs
	}
}

// New validates configuration and creates plugin; configuration and environment
// problems are fatal and reported before any module is rewritten
func New(options *config.Options, env string, opts ...Option) (*Plugin, error) {
	if options == nil {
		return nil, fmt.Errorf("%w: missing plugin options", config.ErrConfig)
	}
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := config.Gate(env, options); err != nil {
		return nil, err
	}
	transform, err := refresh.OptionsFrom(options)
	if err != nil {
		return nil, err
	}
	ret := &Plugin{
		options:   options,
		env:       env,
		transform: transform,
		emitter:   &jsx.Emitter{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.inspector = jsx.NewInspector(jsx.WithFS(ret.fs))
	ret.transform = append(ret.transform, refresh.WithLogger(ret.logger))
	return ret, nil
}

// Options returns plugin options
func (p *Plugin) Options() *config.Options {
	return p.options
}

// Transform instruments a module; a module without components is returned unchanged byte for byte
func (p *Plugin) Transform(ctx context.Context, request *Request) (*Result, error) {
	moduleID := request.ModuleID
	if moduleID == "" {
		moduleID = p.options.ModuleID
	}
	if moduleID == "" {
		return nil, config.ErrModuleID
	}
	fingerprint := p.options.Fingerprint() + "|" + jsx.DialectOf(request.Filename).String()
	key, err := cache.Key(moduleID, fingerprint, request.Source)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		entry, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			p.logger.Warn("cache lookup failed", zap.String("module", moduleID), zap.Error(err))
		}
		if ok {
			return &Result{ModuleID: moduleID, Code: entry.Code, Components: entry.Components, Cached: true}, nil
		}
	}

	file, err := p.inspector.InspectNamed(ctx, request.Filename, request.Source)
	if err != nil {
		return nil, err
	}
	if file.HasError {
		p.logger.Warn("syntax errors kept verbatim", zap.String("module", moduleID), zap.String("file", request.Filename))
	}
	transformed, err := refresh.New(moduleID, p.transform...).Transform(file.Module)
	if err != nil {
		return nil, err
	}
	ret := &Result{ModuleID: moduleID, Code: request.Source, Details: transformed.Components}
	for _, component := range transformed.Components {
		ret.Components = append(ret.Components, component.Name)
	}
	if transformed.Changed() {
		if ret.Code, err = p.emitter.Emit(transformed.Module); err != nil {
			return nil, fmt.Errorf("failed to emit %s: %w", moduleID, err)
		}
	}
	p.logger.Debug("module transformed",
		zap.String("module", moduleID),
		zap.Strings("components", ret.Components))
	if p.cache != nil {
		if err = p.cache.Put(ctx, key, &cache.Entry{Code: ret.Code, Components: ret.Components}); err != nil {
			p.logger.Warn("cache store failed", zap.String("module", moduleID), zap.Error(err))
		}
	}
	return ret, nil
}

// TransformFile reads source URL, transforms it and writes the result to dest URL
func (p *Plugin) TransformFile(ctx context.Context, moduleID, sourceURL, destURL string) (*Result, error) {
	source, err := p.fs.DownloadWithURL(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sourceURL, err)
	}
	ret, err := p.Transform(ctx, &Request{ModuleID: moduleID, Filename: sourceURL, Source: source})
	if err != nil {
		return nil, err
	}
	if err = p.fs.Upload(ctx, destURL, os.FileMode(0644), bytes.NewReader(ret.Code)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", destURL, err)
	}
	return ret, nil
}
