package construct

import (
	"fmt"

	"github.com/esgen/esgen/decl"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// DeclAt selects where a Function's automatic declaration is placed once
// it is triggered.
type DeclAt int

const (
	// AtBundleScope renders the declaration against the nearest function-
	// or-bundle scope enclosing the site that triggered it. The declaration
	// text itself is always printed in the bundle's top-level declarations
	// block, whichever scope that is.
	AtBundleScope DeclAt = iota
	// AtExports places the declaration at the bundle root, with an export
	// marker.
	AtExports
)

// DeclForm selects the declaration keyword a Function renders with.
type DeclForm int

const (
	// AsFunctionKeyword renders `function name(args) { body }`.
	AsFunctionKeyword DeclForm = iota
	// AsConst renders `const name = (args) => { body };`.
	AsConst
	// AsLet renders `let name = (args) => { body };`.
	AsLet
	// AsVar renders `var name = (args) => { body };`.
	AsVar
)

// DeclPolicy attaches an automatic-declaration policy to a Function at
// construction: the first Call installs this snippet with the declarations
// subsystem. An explicit Declare renders in place and does not install it.
type DeclPolicy struct {
	At        DeclAt
	As        DeclForm
	Async     bool
	Generator bool
	Exported  bool
	// Refs lists other symbols this declaration's body depends on, for
	// dependency-topological ordering (decl.Collection.Declare's refs).
	Refs []*scope.Symbol
	Body Body
}

// FunctionNaming is the specialized naming a Function publishes into its
// declaring namespace; it behaves like any other naming but also exposes
// Call.
type FunctionNaming struct {
	scope.Naming
	fn *Function
}

// Call renders a call expression `name(values)` against this naming's
// already-resolved name.
func (n *FunctionNaming) Call(values map[string]any) *fragment.Fragment {
	f := fragment.New()
	f.Write(n.Name())
	f.Write(n.fn.sig.Call(values))

	return f
}

// Function wraps a named, callable ECMAScript function: a unique symbol
// (a function name is meaningful at exactly one point in the bundle), its
// parameter signature, and an optional automatic-declaration policy.
type Function struct {
	Symbol *scope.Symbol
	sig    *signature.Signature
	policy *DeclPolicy

	naming      *FunctionNaming
	autoApplied bool
}

// NewFunction constructs a function symbol with the given signature. policy
// may be nil, in which case the caller is responsible for an explicit
// Declare before any Call is emitted.
func NewFunction(name string, sig *signature.Signature, policy *DeclPolicy) *Function {
	return &Function{Symbol: scope.NewSymbol(name, true), sig: sig, policy: policy}
}

// NewFunctionFromSymbol wraps an already published naming as a callable
// Function, for a function whose identity already belongs to something
// else in the bundle — typically an imported binding (see
// esgen.ImportFunction), where the symbol was already named in the bundle
// namespace by the imports subsystem before any Function ever saw it. An
// imported function is never auto-declared locally, so it carries no
// DeclPolicy and Declare is never expected to be called on it.
func NewFunctionFromSymbol(published scope.AnyNaming, sig *signature.Signature) *Function {
	// Resolve the name before copying the naming, so the copy and the
	// published naming render the same identifier.
	published.Base().Name()

	fn := &Function{Symbol: published.Base().Symbol(), sig: sig, autoApplied: true}
	fn.naming = &FunctionNaming{Naming: *published.Base(), fn: fn}

	return fn
}

// Signature returns this function's parameter signature.
func (fn *Function) Signature() *signature.Signature {
	return fn.sig
}

// ensureNaming publishes fn's symbol into the bundle's root namespace on
// first call, caching the result.
func (fn *Function) ensureNaming(site *scope.Scope) (*FunctionNaming, error) {
	if fn.naming != nil {
		return fn.naming, nil
	}

	published, err := site.Bundle().Namespace().AddSymbol(fn.Symbol, func(n scope.Naming) scope.AnyNaming {
		return &FunctionNaming{Naming: n, fn: fn}
	})
	if err != nil {
		return nil, err
	}

	fn.naming = published.(*FunctionNaming)

	return fn.naming, nil
}

// named ensures fn's symbol has been published into the bundle's root
// namespace, publishing it (and triggering its DeclPolicy, if any and not
// yet applied) on first call from site's bundle.
func (fn *Function) named(site *scope.Scope) (*FunctionNaming, error) {
	naming, err := fn.ensureNaming(site)
	if err != nil {
		return nil, err
	}

	if err := fn.applyPolicy(site); err != nil {
		return nil, err
	}

	return naming, nil
}

// applyPolicy installs fn's DeclPolicy snippet with the declarations
// subsystem the first time it is needed, if fn carries one.
func (fn *Function) applyPolicy(site *scope.Scope) error {
	if fn.policy == nil || fn.autoApplied {
		return nil
	}

	fn.autoApplied = true

	target := site.FunctionOrBundle()
	placement := decl.AtBundle

	if fn.policy.At == AtExports {
		target = site.Bundle().Scope
		placement = decl.AtExports
	}

	snippet := fn.render(target, fn.policy.As, fn.policy.Async, fn.policy.Generator, fn.policy.Exported, fn.policy.Body)

	return decl.FromBundle(site.Bundle()).Declare(fn.naming, decl.Snippet(snippet), fn.policy.Refs, fn.policy.Exported, placement)
}

// Declare renders this function's declaration explicitly at the current
// emission site, bypassing (or supplementing, for a function with no
// DeclPolicy) the automatic-declaration mechanism. It returns the rendered
// fragment for the caller to write into their own code.
func (fn *Function) Declare(site *scope.Scope, as DeclForm, async, generator bool, body Body) (*fragment.Fragment, error) {
	if _, err := fn.ensureNaming(site); err != nil {
		return nil, err
	}

	emit := fn.render(site, as, async, generator, false, body)

	f := fragment.New()
	f.Write(emit)

	return f, nil
}

// render builds the emitter that writes this function's declaration text
// (either as the automatic DeclPolicy snippet or an explicit Declare call).
// An exported declaration whose resolved name matches its requested name
// carries an inline "export" prefix in ES2015 format; a renamed export is
// instead collected into the trailing export block by the decl subsystem.
func (fn *Function) render(target *scope.Scope, as DeclForm, async, generator, exported bool, body Body) scope.Emitter {
	f := fragment.New()
	fnScope := target.Nest(scope.KindFunction, scope.NestOpts{Async: async, Generator: generator})

	if exported && target.Bundle().Format == scope.ES2015 && fn.naming.Name() == fn.Symbol.RequestedName {
		f.Write("export ")
	}

	switch as {
	case AsFunctionKeyword:
		prefix := "function"
		if async {
			prefix = "async " + prefix
		}

		if generator {
			prefix += "*"
		}

		f.Write(prefix + " " + fn.naming.Name())
		f.Write(fn.sig.Declare(fnScope.Namespace(), nil))
		f.Write(" {")
		f.Indent(func(c *fragment.Fragment) { body(c, fnScope) })
		f.Write("}")
	default:
		keyword := declKeyword(as)

		arrowPrefix := ""
		if async {
			arrowPrefix = "async "
		}

		f.Write(keyword + " " + fn.naming.Name() + " = " + arrowPrefix)
		f.Write(fn.sig.Declare(fnScope.Namespace(), nil))
		f.Write(" => {")
		f.Indent(func(c *fragment.Fragment) { body(c, fnScope) })
		f.Write("};")
	}

	return f.AsEmitter()
}

func declKeyword(as DeclForm) string {
	switch as {
	case AsConst:
		return "const"
	case AsLet:
		return "let"
	case AsVar:
		return "var"
	default:
		return "const"
	}
}

// Call renders a call expression to this function from site, publishing
// (and, if it carries a DeclPolicy, auto-declaring) the function first if
// it has not been named yet.
func (fn *Function) Call(site *scope.Scope, values map[string]any) (*fragment.Fragment, error) {
	naming, err := fn.named(site)
	if err != nil {
		return nil, fmt.Errorf("calling function %q: %w", fn.Symbol.RequestedName, err)
	}

	return naming.Call(values), nil
}
