package scope

import (
	"sync"

	"github.com/esgen/esgen/names"
)

// Format selects the output shape a Bundle renders to: a plain ES2015
// module, or an IIFE suitable for in-process evaluation.
type Format int

// The two supported bundle formats.
const (
	// ES2015 renders plain `import`/`export` module syntax.
	ES2015 Format = iota
	// IIFE wraps the output in `(async () => { ... })()` and renders
	// dynamic imports plus a trailing `return {...}` exports object.
	IIFE
)

// String names the format for diagnostics.
func (f Format) String() string {
	if f == IIFE {
		return "IIFE"
	}

	return "ES2015"
}

// Bundle is the root scope of one emitted document. It owns the single
// shared name registry, the bundle-wide table of named unique symbols, and
// the active/emitted lifecycle state machine described by the generator's
// concurrency model: every mutation to the imports/declarations/unique-
// symbol tables is only valid while the bundle is Active.
//
// A Bundle (and every Scope nested beneath it) is meant to be driven by a
// single goroutine; no internal locking guards the scope tree itself; only
// the done/whenDone signal is safe to touch concurrently.
type Bundle struct {
	*Scope

	Format Format

	// Imports and Declarations are extension points: the imports and decl
	// packages each stash their bundle-scoped collection here (lazily, on
	// first use) rather than Bundle importing those packages directly,
	// which would create an import cycle. esgen.Option factory overrides
	// (WithImports/WithDeclarations) may pre-populate them.
	Imports      any
	Declarations any

	uniqueNamings map[*Symbol]AnyNaming

	mu   sync.Mutex
	done bool

	doneCh chan struct{}
}

// NewBundle constructs a fresh, active bundle rendering in the given
// format.
func NewBundle(format Format) *Bundle {
	b := &Bundle{
		Format:        format,
		uniqueNamings: make(map[*Symbol]AnyNaming),
		doneCh:        make(chan struct{}),
	}
	b.Scope = &Scope{
		kind:   KindBundle,
		bundle: b,
		ns:     newRootNamespace(b, names.New()),
	}

	return b
}

// isDone reports whether Done has been called.
func (b *Bundle) isDone() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.done
}

// Done transitions the bundle from active to emitted. Once called, Span
// fails on every scope in the tree. The imports and declarations
// subsystems do not consult this state: each rejects new entries once it
// has itself been rendered.
func (b *Bundle) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.done {
		b.done = true
		close(b.doneCh)
	}
}

// WhenDone blocks until Done has been called.
func (b *Bundle) WhenDone() {
	<-b.doneCh
}
