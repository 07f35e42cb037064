package scope

import (
	"fmt"

	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/names"
)

// Namespace is a nested visibility scope for symbols. A symbol named in
// namespace N is visible in N and every namespace reachable by descending
// nest links from N (i.e. N and all of its descendants) — equivalently, a
// reference is resolvable from namespace M iff the naming's namespace
// equals or encloses M.
type Namespace struct {
	parent   *Namespace
	bundle   *Bundle
	registry *names.Registry
	symbols  map[*Symbol]AnyNaming
}

// newRootNamespace constructs the bundle-root namespace.
func newRootNamespace(b *Bundle, reg *names.Registry) *Namespace {
	return &Namespace{bundle: b, registry: reg, symbols: make(map[*Symbol]AnyNaming)}
}

// nest constructs a child namespace of this one, sharing the bundle and
// descending the name registry tree alongside it.
func (ns *Namespace) nest() *Namespace {
	return &Namespace{
		parent:   ns,
		bundle:   ns.bundle,
		registry: ns.registry.Child(),
		symbols:  make(map[*Symbol]AnyNaming),
	}
}

// Bundle returns the bundle owning this namespace.
func (ns *Namespace) Bundle() *Bundle {
	return ns.bundle
}

// encloses reports whether ns is equal to, or an ancestor of, other.
func (ns *Namespace) encloses(other *Namespace) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == ns {
			return true
		}
	}

	return false
}

// AddSymbol declares sym within this namespace. bind receives the freshly
// constructed base Naming and returns the (possibly specialized) AnyNaming
// to publish; most callers that need no specialized naming can pass
// func(n scope.Naming) scope.AnyNaming { return &n }.
//
// If sym is Unique and has already been named in some other namespace of
// this bundle, AddSymbol fails with eserr.ErrAlreadyNamed: a unique symbol
// may be named in at most one namespace across the whole bundle. Non-unique
// symbols may be named independently in any number of namespaces.
func (ns *Namespace) AddSymbol(sym *Symbol, bind func(Naming) AnyNaming) (AnyNaming, error) {
	if sym.Unique {
		if existing, ok := ns.bundle.uniqueNamings[sym]; ok {
			return nil, fmt.Errorf("%w: %q already named in %p", eserr.ErrAlreadyNamed, sym.RequestedName, existing.Base().Namespace())
		}
	}

	naming := bind(Naming{symbol: sym, ns: ns})
	ns.symbols[sym] = naming

	if sym.Unique {
		ns.bundle.uniqueNamings[sym] = naming
	}

	return naming, nil
}

// findNaming locates the naming published for sym that is visible from ns,
// searching the bundle-wide unique table first and then walking ns's own
// ancestor chain for a non-unique declaration.
func (ns *Namespace) findNaming(sym *Symbol) (AnyNaming, bool) {
	if naming, ok := ns.bundle.uniqueNamings[sym]; ok {
		return naming, true
	}

	for cur := ns; cur != nil; cur = cur.parent {
		if naming, ok := cur.symbols[sym]; ok {
			return naming, true
		}
	}

	return nil, false
}

// Reserve pre-allocates name directly against this namespace's registry,
// without binding it to any symbol — useful for seeding a bundle's root
// namespace with names that must never be handed out to a generated
// symbol (e.g. ambient globals the generated code is expected to
// reference literally, like "console" or "globalThis").
func (ns *Namespace) Reserve(name string) string {
	return ns.registry.Reserve(name)
}

// Refer constructs a resolution handle for looking up sym from this
// namespace, deferring the actual lookup until the handle is used. This is
// the forward-reference mechanism: a fragment can build a Resolution for a
// symbol long before that symbol is ever declared, and only needs the
// declaration to exist by the time the resolution is actually consulted
// (i.e. when the fragment tree is emitted).
func (ns *Namespace) Refer(sym *Symbol) *Resolution {
	return &Resolution{ns: ns, symbol: sym}
}

// Resolution is a deferred lookup of a symbol's naming from a specific
// requesting namespace.
type Resolution struct {
	ns     *Namespace
	symbol *Symbol
}

// GetNaming resolves the naming synchronously. It fails if the symbol has
// not been named anywhere yet, or if it was named in a namespace that does
// not enclose the requesting namespace.
func (r *Resolution) GetNaming() (AnyNaming, error) {
	naming, ok := r.ns.findNaming(r.symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", eserr.ErrUnnamed, r.symbol.RequestedName)
	}

	definingNS := naming.Base().Namespace()
	if !definingNS.encloses(r.ns) {
		return nil, fmt.Errorf("%w: %q named in a namespace that does not enclose the requesting one",
			eserr.ErrInvisible, r.symbol.RequestedName)
	}

	return naming, nil
}

// WhenNamed resolves the naming, exactly as GetNaming. The distinct name
// marks forward-reference call sites: esgen builds its entire symbol graph
// eagerly before any fragment is emitted (see Naming.Name), so the
// forward-reference window is simply "any time before the bundle is
// emitted" and no suspension is needed here.
func (r *Resolution) WhenNamed() (AnyNaming, error) {
	return r.GetNaming()
}

// Name is a convenience that resolves the naming and returns its concrete
// name in one step.
func (r *Resolution) Name() (string, error) {
	naming, err := r.WhenNamed()
	if err != nil {
		return "", err
	}

	return naming.Base().Name(), nil
}
