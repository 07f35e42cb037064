package esgen

import (
	"github.com/esgen/esgen/decl"
	"github.com/esgen/esgen/imports"
	"github.com/esgen/esgen/scope"
)

// bundleConfig collects the functional options passed to NewBundle,
// Generate, or Evaluate before a *scope.Bundle is actually constructed.
type bundleConfig struct {
	format   scope.Format
	imports  *imports.Collection
	decls    *decl.Collection
	reserved []string
	setup    []func(*scope.Bundle)
}

// Option configures a bundle constructed by NewBundle, Generate, or
// Evaluate.
type Option func(*bundleConfig)

// WithFormat overrides the bundle's rendering format. Generate defaults to
// scope.ES2015; Evaluate defaults to scope.IIFE; NewBundle has no default
// of its own and requires one of WithFormat or an explicit format argument
// to NewBundle.
func WithFormat(f scope.Format) Option {
	return func(c *bundleConfig) { c.format = f }
}

// WithImports preinstalls an imports collection other than the default
// empty one — e.g. one seeded by a previous bundle's Reference calls, for
// a caller that wants several generated documents to share import
// aggregation.
func WithImports(coll *imports.Collection) Option {
	return func(c *bundleConfig) { c.imports = coll }
}

// WithDeclarations preinstalls a declarations collection other than the
// default empty one, analogous to WithImports.
func WithDeclarations(coll *decl.Collection) Option {
	return func(c *bundleConfig) { c.decls = coll }
}

// WithReservedNames pre-reserves names directly against the bundle's root
// namespace so they are never handed out to a generated symbol — for
// ambient globals the generated code is expected to reference literally
// (e.g. "console", "globalThis").
func WithReservedNames(names ...string) Option {
	return func(c *bundleConfig) { c.reserved = append(c.reserved, names...) }
}

// WithSetup registers a callback run once against the freshly constructed
// bundle, before the caller's Build function — the hook for scope-local
// singleton pre-population (scope.Scope.Value) or any other one-time bundle
// initialization.
func WithSetup(fn func(*scope.Bundle)) Option {
	return func(c *bundleConfig) { c.setup = append(c.setup, fn) }
}

// NewBundle constructs a fresh, active bundle with the given options
// applied. defaultFormat is used unless an explicit WithFormat option
// overrides it.
func NewBundle(defaultFormat scope.Format, opts ...Option) *scope.Bundle {
	cfg := bundleConfig{format: defaultFormat}
	for _, o := range opts {
		o(&cfg)
	}

	b := scope.NewBundle(cfg.format)

	if cfg.imports != nil {
		b.Imports = cfg.imports
	}

	if cfg.decls != nil {
		b.Declarations = cfg.decls
	}

	for _, name := range cfg.reserved {
		b.Namespace().Reserve(name)
	}

	for _, fn := range cfg.setup {
		fn(b)
	}

	return b
}
