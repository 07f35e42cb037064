package construct

import (
	"fmt"

	"github.com/esgen/esgen/esident"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/names"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// publicTable is the name-allocation table Class.publicTable shares across
// an entire base/derived chain: one names.Registry handing out conflict-
// free public member keys, a cache from member symbol to its already-
// reserved key (so overriding the same symbol in a derived class reuses
// the base's key rather than reserving a fresh, suffixed one), and the
// global insertion order every class in the chain contributes to.
type publicTable struct {
	registry *names.Registry
	reserved map[*scope.Symbol]string
	order    []*scope.Symbol
}

// ClassNaming is the specialized naming a Class publishes into its
// declaring namespace; besides the usual naming operations it exposes
// Instantiate.
type ClassNaming struct {
	scope.Naming
	class *Class
}

// Instantiate renders "new ClassName(values)" against this naming's
// already-resolved name.
func (n *ClassNaming) Instantiate(values map[string]any) (*fragment.Fragment, error) {
	ctor, err := n.class.EnsureConstructor()
	if err != nil {
		return nil, fmt.Errorf("instantiating %q: %w", n.class.Symbol.RequestedName, err)
	}

	f := fragment.New()
	f.Write("new " + n.Name())
	f.Write(ctor.Sig.Call(values))

	return f, nil
}

// Class is a class construction: its own unique symbol, an optional base
// class, a constructor, and two ordered member maps (public, shared with
// the base chain's name table; private, independent per class).
type Class struct {
	Symbol *scope.Symbol
	Base   *Class

	ctorSig *signature.Signature
	ctor    *Constructor
	ctorRef *MemberRef

	public *publicTable

	privateNames    *names.Registry
	privateReserved map[*scope.Symbol]string
	privateOrder    []*scope.Symbol

	members      map[*scope.Symbol]*MemberRef
	declaredHere map[*scope.Symbol]bool

	naming *ClassNaming
}

// NewClass constructs a class symbol, optionally extending base. ctorSig
// is the signature a constructor declared on this class (explicit or
// synthesized) must carry; a nil ctorSig is treated as the empty
// signature.
func NewClass(name string, base *Class, ctorSig *signature.Signature) *Class {
	return newClass(scope.NewSymbol(name, true), base, ctorSig)
}

// NewClassFromSymbol constructs a class reusing an existing, already
// published naming rather than minting and naming a fresh symbol — for a
// class whose identity already belongs to something else in the bundle
// (typically an imported binding; see esgen.ImportClass), where the
// symbol was already named in the bundle namespace by the imports
// subsystem before any Class ever saw it. Passing published here instead
// of letting Class publish its own naming avoids a spurious
// eserr.ErrAlreadyNamed the first time the class is referenced.
func NewClassFromSymbol(published scope.AnyNaming, base *Class, ctorSig *signature.Signature) *Class {
	// Resolve the name before copying the naming, so the copy and the
	// published naming render the same identifier.
	published.Base().Name()

	c := newClass(published.Base().Symbol(), base, ctorSig)
	c.naming = &ClassNaming{Naming: *published.Base(), class: c}

	return c
}

func newClass(sym *scope.Symbol, base *Class, ctorSig *signature.Signature) *Class {
	if ctorSig == nil {
		ctorSig, _ = signature.New()
	}

	c := &Class{
		Symbol:          sym,
		Base:            base,
		ctorSig:         ctorSig,
		privateNames:    names.New(),
		privateReserved: make(map[*scope.Symbol]string),
		members:         make(map[*scope.Symbol]*MemberRef),
		declaredHere:    make(map[*scope.Symbol]bool),
	}

	if base != nil {
		c.public = base.public
	} else {
		c.public = &publicTable{registry: names.New(), reserved: make(map[*scope.Symbol]string)}
	}

	return c
}

// DeclareMember declares member in this class. If member's symbol was
// already declared here, DeclareMember fails with
// eserr.ErrDuplicateMember. If member's symbol was previously only
// visible as an inherited (materialized, Declared == false) member — or
// is entirely new — it is declared here; a Public member's key is
// resolved once per symbol and shared with every class in the chain (so
// overriding a base member reuses the exact same key), while a Private
// member always gets its own per-class registry entry.
func (c *Class) DeclareMember(member Member) (*MemberRef, error) {
	sym := member.Symbol()

	if c.declaredHere[sym] {
		return nil, fmt.Errorf("%w: %q", eserr.ErrDuplicateMember, sym.RequestedName)
	}

	var key string
	if member.Kind() == Private {
		key = c.reservePrivateKey(sym)
	} else {
		key = c.reservePublicKey(sym)
	}

	ref := &MemberRef{
		Member:   member,
		Name:     sym.RequestedName,
		Key:      key,
		Accessor: "." + key,
		Declared: true,
	}
	ref.handle = member.handle(ref)

	c.members[sym] = ref
	c.declaredHere[sym] = true

	if member.Kind() == Private {
		c.privateOrder = append(c.privateOrder, sym)
	}

	return ref, nil
}

func (c *Class) reservePublicKey(sym *scope.Symbol) string {
	if key, ok := c.public.reserved[sym]; ok {
		return key
	}

	key := c.public.registry.Reserve(esident.Sanitize(sym.RequestedName))
	c.public.reserved[sym] = key
	c.public.order = append(c.public.order, sym)

	return key
}

func (c *Class) reservePrivateKey(sym *scope.Symbol) string {
	if key, ok := c.privateReserved[sym]; ok {
		return key
	}

	key := "#" + c.privateNames.Reserve(esident.Sanitize(sym.RequestedName))
	c.privateReserved[sym] = key

	return key
}

// FindMember locates the member ref visible from this class for sym,
// walking the inheritance chain. A member found in an ancestor (rather
// than declared directly in c) is lazily materialized into c's own member
// table with Declared: false, so a later DeclareMember(member) call for
// the same symbol is recognized as an override rather than a fresh
// declaration.
func (c *Class) FindMember(sym *scope.Symbol) (*MemberRef, bool) {
	if ref, ok := c.members[sym]; ok {
		return ref, true
	}

	for base := c.Base; base != nil; base = base.Base {
		if ref, ok := base.members[sym]; ok {
			materialized := &MemberRef{
				Member:   ref.Member,
				Name:     ref.Name,
				Key:      ref.Key,
				Accessor: ref.Accessor,
				Declared: false,
				handle:   ref.handle,
			}
			c.members[sym] = materialized

			return materialized, true
		}
	}

	return nil, false
}

// EnsureConstructor returns this class's constructor, auto-declaring one
// if DeclareConstructor was never called: inheriting the base's
// constructor after checking it accepts this class's own constructor
// signature (eserr.ErrIncompatibleConstructor otherwise), or — with no
// base — synthesizing an empty "constructor() {}" when this class's
// constructor signature takes no arguments, and otherwise failing with
// eserr.ErrConstructorNotDeclared.
func (c *Class) EnsureConstructor() (*Constructor, error) {
	if c.ctor != nil {
		return c.ctor, nil
	}

	if c.Base != nil {
		baseCtor, err := c.Base.EnsureConstructor()
		if err != nil {
			return nil, err
		}

		if !baseCtor.Sig.AcceptsArgsFor(c.ctorSig) {
			return nil, fmt.Errorf("%w: %q", eserr.ErrIncompatibleConstructor, c.Symbol.RequestedName)
		}

		c.ctor = &Constructor{Sig: c.ctorSig, inherited: true}

		return c.ctor, nil
	}

	if len(c.ctorSig.Params()) == 0 {
		c.ctor = &Constructor{Sig: c.ctorSig}
		return c.ctor, nil
	}

	return nil, eserr.ErrConstructorNotDeclared
}

// DeclareConstructor declares an explicit constructor body for this
// class. If a base class exists, its (possibly itself auto-declared)
// constructor must accept this class's constructor signature, or
// DeclareConstructor fails with eserr.ErrIncompatibleConstructor.
// DeclareConstructor fails with eserr.ErrDuplicateMember if a constructor
// was already declared or auto-declared on this class.
func (c *Class) DeclareConstructor(body Body) error {
	if c.ctor != nil {
		return fmt.Errorf("%w: constructor", eserr.ErrDuplicateMember)
	}

	if c.Base != nil {
		baseCtor, err := c.Base.EnsureConstructor()
		if err != nil {
			return err
		}

		if !baseCtor.Sig.AcceptsArgsFor(c.ctorSig) {
			return fmt.Errorf("%w: %q", eserr.ErrIncompatibleConstructor, c.Symbol.RequestedName)
		}
	}

	c.ctor = &Constructor{Sig: c.ctorSig, body: body}

	return nil
}

func (c *Class) ctorMemberRef() (*MemberRef, error) {
	if c.ctorRef != nil {
		return c.ctorRef, nil
	}

	ctor, err := c.EnsureConstructor()
	if err != nil {
		return nil, err
	}

	c.ctorRef = &MemberRef{
		Member:   nil,
		Name:     "constructor",
		Key:      "constructor",
		Accessor: ".constructor",
		Declared: !ctor.inherited,
		handle:   &ConstructorHandle{class: c},
	}

	return c.ctorRef, nil
}

// Members returns every member visible from this class — private members
// declared directly here, in declaration order, then the constructor,
// then every public member visible here (declared here or inherited) in
// the shared table's chain-wide insertion order. It fails only if the
// constructor cannot be resolved (see EnsureConstructor).
func (c *Class) Members() ([]*MemberRef, error) {
	var out []*MemberRef

	for _, sym := range c.privateOrder {
		out = append(out, c.members[sym])
	}

	ctorRef, err := c.ctorMemberRef()
	if err != nil {
		return nil, err
	}

	out = append(out, ctorRef)

	for _, sym := range c.public.order {
		if ref, ok := c.FindMember(sym); ok {
			out = append(out, ref)
		}
	}

	return out, nil
}

// ensureNaming publishes the class's symbol into the bundle's root
// namespace on first call, caching the result.
func (c *Class) ensureNaming(site *scope.Scope) (*ClassNaming, error) {
	if c.naming != nil {
		return c.naming, nil
	}

	published, err := site.Bundle().Namespace().AddSymbol(c.Symbol, func(n scope.Naming) scope.AnyNaming {
		return &ClassNaming{Naming: n, class: c}
	})
	if err != nil {
		return nil, err
	}

	c.naming = published.(*ClassNaming)

	return c.naming, nil
}

// Declare finalizes and renders this class's declaration —
// "class Name [extends Base] { ...members... }" — at site. Unlike
// Function, whose Body callback is a self-contained closure invoked once
// at first reference, a Class's members are mutated incrementally via
// DeclareMember; Declare is therefore an explicit step the caller invokes
// once member declaration is complete, rather than an implicit first-
// reference trigger that could capture a still-partial member list.
// Instantiate and any member handle may still be used before or after
// Declare, since they only need the class's Naming (published here, or
// eagerly if not yet published) rather than its finalized body text.
func (c *Class) Declare(site *scope.Scope) (*fragment.Fragment, error) {
	naming, err := c.ensureNaming(site)
	if err != nil {
		return nil, err
	}

	classScope := site.Nest(scope.KindBlock)

	header := "class " + naming.Name()

	if c.Base != nil {
		baseNaming, err := c.Base.ensureNaming(site)
		if err != nil {
			return nil, err
		}

		header += " extends " + baseNaming.Name()
	}

	f := fragment.New()
	f.Write(header + " {")
	f.Indent(func(body *fragment.Fragment) {
		c.renderBody(body, classScope)
	})
	f.Write("}")

	return f, nil
}

// renderBody writes every member declared directly in this class (not
// inherited-only ones) into body, in the same private-then-constructor-
// then-public order Members reports.
func (c *Class) renderBody(body *fragment.Fragment, classScope *scope.Scope) {
	for _, sym := range c.privateOrder {
		c.renderOneMember(body, classScope, c.members[sym])
	}

	if ctorRef, err := c.ctorMemberRef(); err == nil && ctorRef.Declared {
		body.Write(c.ctor.render(classScope))
		body.EndLine()
	}

	for _, sym := range c.public.order {
		ref, ok := c.members[sym]
		if !ok || !c.declaredHere[sym] {
			continue
		}

		c.renderOneMember(body, classScope, ref)
	}
}

func (c *Class) renderOneMember(body *fragment.Fragment, classScope *scope.Scope, ref *MemberRef) {
	body.Write(ref.Member.render(classScope, ref))
	body.EndLine()
}

// Instantiate renders "new ClassName(values)", publishing the class's
// naming first if it has not been published yet.
func (c *Class) Instantiate(site *scope.Scope, values map[string]any) (*fragment.Fragment, error) {
	naming, err := c.ensureNaming(site)
	if err != nil {
		return nil, err
	}

	return naming.Instantiate(values)
}
