package scope

import (
	log "github.com/sirupsen/logrus"

	"github.com/esgen/esgen/esident"
)

// Symbol is an identity object standing for some named entity in the
// generated program: a variable, a function, a class, an imported binding.
// Two Symbol values are always distinct even when they share a
// RequestedName — identity is the pointer itself, never the name.
type Symbol struct {
	// RequestedName is the ECMAScript-safe identifier this symbol would
	// like to be known by. The name actually assigned may differ if a
	// conflict forces a "$<n>" suffix.
	RequestedName string
	// Comment, if set, is attached to the symbol's name wherever it is
	// declared.
	Comment *esident.Comment
	// Unique marks this symbol as nameable in at most one namespace across
	// the whole bundle. Non-unique symbols may be named independently in
	// unrelated namespaces (e.g. two sibling function scopes can each bind
	// their own "x" parameter).
	Unique bool
}

// NewSymbol constructs a new symbol. Every call returns a distinct
// identity, even if name and unique match a previous call exactly.
func NewSymbol(name string, unique bool) *Symbol {
	return &Symbol{RequestedName: name, Unique: unique}
}

// AnyNaming is the common handle every specialized naming (function,
// class, import, ...) satisfies by embedding Naming and exposing it via
// Base. Namespace stores namings as AnyNaming so it can enforce uniqueness
// and visibility without knowing about any specific construct kind.
type AnyNaming interface {
	Base() *Naming
}

// Naming binds a Symbol to a concrete, conflict-free name within a specific
// Namespace. Once constructed, a Naming's Symbol/Namespace pair never
// changes; only the concrete Name is lazily resolved, on first access, from
// the namespace's name registry.
type Naming struct {
	symbol *Symbol
	ns     *Namespace

	name     string
	resolved bool
}

// Base returns the naming itself; it exists so AnyNaming can retrieve the
// common fields out of a specialized naming without a type switch.
func (n *Naming) Base() *Naming {
	return n
}

// Symbol returns the symbol this naming binds.
func (n *Naming) Symbol() *Symbol {
	return n.symbol
}

// Namespace returns the namespace this naming was published into.
func (n *Naming) Namespace() *Namespace {
	return n.ns
}

// Name returns the concrete, conflict-free name assigned to this naming's
// symbol, reserving it from the namespace's registry on first access and
// caching the result thereafter. Because symbol construction and naming
// publication both happen eagerly as the caller builds the program graph
// (there is no microtask queue to wait on in Go), by the time any emitter
// calls Name every symbol that will ever be declared in this bundle
// already has a Naming object to resolve against.
func (n *Naming) Name() string {
	if !n.resolved {
		n.name = n.ns.registry.Reserve(n.symbol.RequestedName)
		n.resolved = true

		log.WithFields(log.Fields{"requested": n.symbol.RequestedName, "name": n.name}).Debug("name allocated")
	}

	return n.name
}

// WithComment renders Name with this symbol's attached comment, if any,
// e.g. "foo /* [param] a counter */".
func (n *Naming) WithComment(tag string) string {
	return n.symbol.Comment.Attach(n.Name(), tag)
}
