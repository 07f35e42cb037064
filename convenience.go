package esgen

import (
	"github.com/esgen/esgen/construct"
	"github.com/esgen/esgen/decl"
	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/imports"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// importConfig collects the options Import accepts.
type importConfig struct {
	localName string
}

// ImportOption configures a single Import/ImportClass/ImportFunction call.
type ImportOption func(*importConfig)

// As overrides the local name a binding is imported under; without it the
// local name defaults to the export name itself (subject to the usual
// bundle-wide conflict suffixing).
func As(localName string) ImportOption {
	return func(c *importConfig) { c.localName = localName }
}

func resolveImportConfig(exportName string, opts []ImportOption) importConfig {
	cfg := importConfig{localName: exportName}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Import registers a reference to exportName from module (an opaque,
// comparable module identity — typically the specifier string) and
// returns the published naming, which behaves like any other
// scope.AnyNaming: Base().Name() resolves the local identifier once
// rendered, coalescing with any other import of the same module and
// conflict-suffixed against every other bundle-wide unique name exactly
// like any other import.
//
// Import only spares a caller from having to look up imports.FromBundle
// and the bundle's root namespace by hand.
func Import(b *scope.Bundle, module any, exportName string, opts ...ImportOption) (scope.AnyNaming, error) {
	cfg := resolveImportConfig(exportName, opts)

	return imports.FromBundle(b).Reference(module, exportName, cfg.localName, b.Namespace())
}

// ImportClass registers exportName from module as an imported class: the
// binding's naming comes from the imports subsystem (so it participates in
// per-module aggregation and bundle-wide uniqueness like any other
// import), while ctorSig describes the signature its constructor accepts,
// so the result can be handed to Class.Instantiate or extended as a base
// class by another construct.Class the same way a locally declared class
// can be.
func ImportClass(b *scope.Bundle, module any, exportName string, ctorSig *signature.Signature, opts ...ImportOption) (*construct.Class, error) {
	cfg := resolveImportConfig(exportName, opts)

	naming, err := imports.FromBundle(b).Reference(module, exportName, cfg.localName, b.Namespace())
	if err != nil {
		return nil, err
	}

	return construct.NewClassFromSymbol(naming, nil, ctorSig), nil
}

// ImportFunction registers exportName from module as an imported, callable
// function: the binding's naming comes from the imports subsystem, and sig
// (built the same "name"/"name?"/"...name" way as any other
// signature.New) describes the parameter list Function.Call renders
// against it. An imported function is never auto-declared (there is
// nothing to declare — it already exists in the imported module), so the
// result carries no DeclPolicy.
func ImportFunction(b *scope.Bundle, module any, exportName string, sig *signature.Signature, opts ...ImportOption) (*construct.Function, error) {
	cfg := resolveImportConfig(exportName, opts)

	naming, err := imports.FromBundle(b).Reference(module, exportName, cfg.localName, b.Namespace())
	if err != nil {
		return nil, err
	}

	return construct.NewFunctionFromSymbol(naming, sig), nil
}

// DeclareConst installs a "const name = value;" (or "let"/"var", via form)
// top-level declaration through the decl subsystem — the direct route to
// an exported top-level binding that isn't a Function or Class, e.g. a
// literal or computed constant a generated module wants to expose. refs
// lists other symbols value depends on for dependency-topological
// ordering; exported marks it for the bundle's trailing export block when
// placement is decl.AtExports.
func DeclareConst(b *scope.Bundle, name string, form construct.DeclForm, value fragment.Emitter, refs []*scope.Symbol, exported bool, placement decl.Placement) (scope.AnyNaming, error) {
	sym := scope.NewSymbol(name, true)

	naming, err := b.Namespace().AddSymbol(sym, func(n scope.Naming) scope.AnyNaming { return &n })
	if err != nil {
		return nil, err
	}

	keyword := declKeywordFor(form)

	snippet := func(p *format.Printer) error {
		// An unrenamed ES2015 export renders its "export" prefix inline;
		// a renamed one is collected into the trailing export block by
		// the decl subsystem instead.
		if exported && b.Format == scope.ES2015 && naming.Base().Name() == name {
			p.Print("export ")
		}

		p.Print(keyword + " " + naming.Base().Name() + " = ")

		if err := value(p); err != nil {
			return err
		}

		p.Print(";")

		return nil
	}

	if err := decl.FromBundle(b).Declare(naming, snippet, refs, exported, placement); err != nil {
		return nil, err
	}

	return naming, nil
}

func declKeywordFor(form construct.DeclForm) string {
	switch form {
	case construct.AsLet:
		return "let"
	case construct.AsVar:
		return "var"
	default:
		return "const"
	}
}
