// Package fragment implements the composable, writable code container that
// every higher-level construct (signatures, classes, declarations, imports)
// ultimately emits through.
//
// A Fragment's builder callbacks are not re-entrant across an event loop:
// esgen's object graph (symbols, namespaces, nested scopes) is built
// eagerly by ordinary Go calls before Emit is ever invoked, so a builder
// only ever needs the scope that is already in hand at the point it is
// written — there is no need to thread a scope parameter through the
// fragment's internal render step. What stays
// genuinely lazy is the *name* a symbol reference renders as
// (scope.Naming.Name is resolved on first access), which is exactly the
// forward-reference behaviour the generator requires.
package fragment

import (
	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
)

// Emitter is a resolved, deferred writer — the form a symbol reference or
// any other piece of non-literal text ultimately takes when written into a
// Fragment. It is an alias for scope.Emitter so callers composing
// fragments need not import scope just to name the type.
type Emitter = scope.Emitter

// Fragment is an ordered, writable container of code. Fragments compose: a
// Fragment can embed other Fragments, literal strings, or resolved
// emitters (scope.Emitter), and only ever produces text once Emit is
// called.
type Fragment struct {
	enclosing *Fragment
	entries   []scope.Emitter
	drained   bool
	cache     map[*scope.Scope]*format.Printer
}

// New constructs an empty, writable fragment.
func New() *Fragment {
	return &Fragment{}
}

// Write appends each value to the fragment, in order. Each value must be a
// string literal, another *Fragment (embedded inline, with cycle
// detection), or a scope.Emitter (a resolved, deferred writer — e.g. a
// symbol reference). Write panics with eserr.ErrAlreadyPrinted if the
// fragment has already been drained by Emit, and with eserr.ErrCycle if a
// value would embed a fragment into itself, directly or transitively.
func (f *Fragment) Write(values ...any) {
	f.checkWritable()

	for _, v := range values {
		f.entries = append(f.entries, f.toEmitter(v))
	}
}

func (f *Fragment) checkWritable() {
	if f.drained {
		panic(eserr.ErrAlreadyPrinted)
	}
}

func (f *Fragment) toEmitter(v any) scope.Emitter {
	switch x := v.(type) {
	case string:
		return func(p *format.Printer) error {
			p.Print(x)
			return nil
		}
	case *Fragment:
		f.adopt(x)

		return x.render
	case scope.Emitter:
		return x
	case func(*format.Printer) error:
		return x
	default:
		panic("fragment: unsupported value written to fragment")
	}
}

// adopt records child as embedded within f, after checking that doing so
// would not create a cycle (i.e. that f is not already, directly or
// transitively, embedded within child).
func (f *Fragment) adopt(child *Fragment) {
	for cur := f; cur != nil; cur = cur.enclosing {
		if cur == child {
			panic(eserr.ErrCycle)
		}
	}

	child.enclosing = f
}

// Line runs build against a fresh child fragment, then splices the child's
// rendered output onto the current line (no newline terminator) when this
// fragment is eventually emitted.
func (f *Fragment) Line(build func(*Fragment)) {
	f.checkWritable()

	child := &Fragment{enclosing: f}
	build(child)

	f.entries = append(f.entries, func(p *format.Printer) error {
		var err error

		p.Line(func(cp *format.Printer) {
			err = child.render(cp)
		})

		return err
	})
}

// Indent runs build against a fresh child fragment indented one step
// (default two spaces) deeper than this fragment, splicing its rendered
// lines in as a block.
func (f *Fragment) Indent(build func(*Fragment), indentString ...string) {
	f.checkWritable()

	child := &Fragment{enclosing: f}
	build(child)

	f.entries = append(f.entries, func(p *format.Printer) error {
		var err error

		p.Indent(func(cp *format.Printer) {
			err = child.render(cp)
		}, indentString...)

		return err
	})
}

// MultiLine runs build against a fresh child fragment and splices its
// rendered lines in verbatim, at the current indent level (useful for
// grouping a sequence of whole-line writes, including explicit blank lines,
// under one builder without changing indentation).
func (f *Fragment) MultiLine(build func(*Fragment)) {
	f.checkWritable()

	child := &Fragment{enclosing: f}
	build(child)

	f.entries = append(f.entries, child.render)
}

// Scope runs build against a fresh child fragment and the given (already
// nested) scope, splicing the child's rendered output in verbatim. The
// scope is supplied by the caller — typically the result of an earlier
// parent.Nest(...) call — rather than threaded in implicitly, since esgen
// builds its scope tree eagerly.
func (f *Fragment) Scope(s *scope.Scope, build func(*Fragment, *scope.Scope)) {
	f.checkWritable()

	child := &Fragment{enclosing: f}
	build(child, s)

	f.entries = append(f.entries, child.render)
}

// Blank requests an explicit blank line.
func (f *Fragment) Blank() {
	f.Write("")
}

// Stmt writes values exactly like Write, then ends the current line so the
// next Write/Stmt call starts a fresh one instead of continuing onto the
// same line. This is the building block every multi-statement body,
// multi-member class, and multi-item list beyond its inline threshold uses
// to place one unit per line without an unwanted blank line in between (the
// way a bare Write("") would, since that also requests an explicit blank —
// see Blank).
func (f *Fragment) Stmt(values ...any) {
	f.Write(values...)
	f.EndLine()
}

// EndLine terminates the current line without requesting a blank one,
// unlike Blank/Write(""). Useful after a Write call that should not share
// its line with whatever is written next.
func (f *Fragment) EndLine() {
	f.checkWritable()

	f.entries = append(f.entries, func(p *format.Printer) error {
		p.EndLine()
		return nil
	})
}

// render writes every entry's output into p, in insertion order.
func (f *Fragment) render(p *format.Printer) error {
	for _, e := range f.entries {
		if err := e(p); err != nil {
			return err
		}
	}

	return nil
}

// AsEmitter exposes this fragment's render step directly as a
// scope.Emitter, for callers (decl snippets, signature call sites) that
// need to hand a fragment to an API expecting a plain emitter rather than
// driving it through Emit's per-scope printer cache.
func (f *Fragment) AsEmitter() scope.Emitter {
	return f.render
}

// Emit renders this fragment into scope s, opening an emission span so that
// ordering and the bundle's active/emitted lifecycle are respected.
// Emitting the same fragment into the same scope twice returns the same
// cached printer and yields identical text; the fragment is frozen against
// further Write calls as soon as it has been emitted once, into any scope.
func (f *Fragment) Emit(s *scope.Scope) (*format.Printer, error) {
	if p, ok := f.cache[s]; ok {
		return p, nil
	}

	span, err := s.Span(f.render)
	if err != nil {
		return nil, err
	}

	p := format.New()
	if err := span.Print(p); err != nil {
		return nil, err
	}

	f.drained = true

	if f.cache == nil {
		f.cache = make(map[*scope.Scope]*format.Printer)
	}

	f.cache[s] = p

	return p, nil
}
