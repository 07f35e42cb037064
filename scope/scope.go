// Package scope implements the generator's hierarchical scope tree together
// with the symbol, naming, and namespace machinery that resolves which
// concrete name a reference to a program symbol ultimately receives.
//
// A Bundle is the root scope, Scope.Nest produces children that inherit
// the bundle pointer and chain their namespace to their parent's, and
// Namespace.Refer lookup walks outward until a namespace that has named
// the requested symbol is found.
package scope

import (
	"fmt"

	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/internal/eserr"
)

// Kind distinguishes the three scope variants the generator needs.
type Kind int

// The three scope kinds.
const (
	// KindBundle is the root scope of an emitted document.
	KindBundle Kind = iota
	// KindBlock is a plain nested scope (e.g. a class body, a block).
	KindBlock
	// KindFunction is a nested scope carrying its own async/generator
	// modifiers.
	KindFunction
)

// Emitter writes a unit of output into p. Emitters are what a code fragment,
// a declaration snippet, or an import clause ultimately reduce to.
type Emitter func(p *format.Printer) error

// ValueFactory produces a scope-local singleton the first time it is
// requested from a given Scope. Implementations are typically package-level
// variables so their identity can key the per-scope memoization map.
type ValueFactory interface {
	NewScopedValue(s *Scope) any
}

// Scope is a unit of emission: the bundle root, or a nested block/function
// scope beneath it. Every Scope carries its own Namespace (chained to its
// parent's) and delegates its imports/declarations collections up to the
// owning Bundle.
type Scope struct {
	kind      Kind
	parent    *Scope
	bundle    *Bundle
	ns        *Namespace
	async     bool
	generator bool
	values    map[ValueFactory]any
}

// Kind returns this scope's variant.
func (s *Scope) Kind() Kind {
	return s.kind
}

// Parent returns the enclosing scope, or nil for the bundle root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Bundle returns the bundle owning this scope.
func (s *Scope) Bundle() *Bundle {
	return s.bundle
}

// Namespace returns this scope's namespace.
func (s *Scope) Namespace() *Namespace {
	return s.ns
}

// IsAsync reports whether code in this scope executes inside an async
// function: a KindFunction scope nested with NestOpts.Async, or a block
// scope beneath one. The bundle root scope reports false.
func (s *Scope) IsAsync() bool {
	return s.async
}

// IsGenerator reports whether code in this scope executes inside a
// generator function.
func (s *Scope) IsGenerator() bool {
	return s.generator
}

// FunctionOrBundle returns the nearest enclosing scope that is either a
// KindFunction scope or the bundle root — the placement target for
// declarations that must live at program top level.
func (s *Scope) FunctionOrBundle() *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.kind == KindFunction || cur.kind == KindBundle {
			return cur
		}
	}
	// Unreachable: the bundle root always satisfies the predicate.
	panic("scope chain has no function-or-bundle ancestor")
}

// NestOpts configures a nested scope created by Nest.
type NestOpts struct {
	// Async marks a KindFunction scope as asynchronous. Ignored for
	// KindBlock, which always inherits its parent's async/generator flags.
	Async bool
	// Generator marks a KindFunction scope as a generator function.
	Generator bool
}

// Nest produces a child scope of the given kind. A KindFunction child
// captures its own async/generator flags from opts; any other kind inherits
// its parent's.
func (s *Scope) Nest(kind Kind, opts ...NestOpts) *Scope {
	child := &Scope{
		kind:   kind,
		parent: s,
		bundle: s.bundle,
		ns:     s.ns.nest(),
	}

	if kind == KindFunction {
		if len(opts) > 0 {
			child.async = opts[0].Async
			child.generator = opts[0].Generator
		}
	} else {
		child.async = s.async
		child.generator = s.generator
	}

	return child
}

// Value returns the scope-local singleton produced by factory, constructing
// and memoizing it on first request.
func (s *Scope) Value(factory ValueFactory) any {
	if s.values == nil {
		s.values = make(map[ValueFactory]any)
	}

	if v, ok := s.values[factory]; ok {
		return v
	}

	v := factory.NewScopedValue(s)
	s.values[factory] = v

	return v
}

// Span opens a new emission span in this scope. Span fails once the owning
// bundle has transitioned to the emitted state.
func (s *Scope) Span(emitters ...Emitter) (*Span, error) {
	if s.bundle.isDone() {
		return nil, eserr.ErrBundleDone
	}

	return &Span{scope: s, emitters: append([]Emitter{}, emitters...)}, nil
}

// Span is a batch of emitters whose output a printer streams, in insertion
// order, once Print is called.
type Span struct {
	scope    *Scope
	emitters []Emitter
	printed  bool
}

// Emit appends further emitters to this span. Fails once the span has
// already been printed.
func (s *Span) Emit(more ...Emitter) error {
	if s.printed {
		return eserr.ErrAlreadyPrinted
	}

	s.emitters = append(s.emitters, more...)

	return nil
}

// Print streams every emitter's output into p, in the order they were
// added, then freezes the span against further Emit calls.
func (s *Span) Print(p *format.Printer) error {
	for _, e := range s.emitters {
		if err := e(p); err != nil {
			return err
		}
	}

	s.printed = true

	return nil
}

// String renders this span into a standalone printer and returns its text.
// Primarily useful in tests.
func (s *Span) String() (string, error) {
	p := format.New()
	if err := s.Print(p); err != nil {
		return "", fmt.Errorf("rendering span: %w", err)
	}

	return p.String(), nil
}
