package main

import (
	"fmt"

	"github.com/esgen/esgen"
	"github.com/esgen/esgen/construct"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// literalText wraps a raw string as a fragment.Emitter, for call arguments
// and raw body statements that are written verbatim rather than resolved
// through a symbol.
func literalText(text string) fragment.Emitter {
	f := fragment.New()
	f.Write(text)

	return f.AsEmitter()
}

// buildFromDescriptor compiles d into an esgen.Build callback: every
// import and function declared up front (so forward references between
// them resolve regardless of descriptor order, per the bundle's eager
// symbol graph), then the body statements written against the bundle's
// own scope in descriptor order.
func buildFromDescriptor(d *descriptor) esgen.Build {
	return func(b *scope.Bundle, body *fragment.Fragment) error {
		fns := make(map[string]*construct.Function, len(d.Functions))

		for _, imp := range d.Imports {
			opts := []esgen.ImportOption{}
			if imp.As != "" {
				opts = append(opts, esgen.As(imp.As))
			}

			if _, err := esgen.Import(b, imp.Module, imp.Export, opts...); err != nil {
				return fmt.Errorf("import %q from %q: %w", imp.Export, imp.Module, err)
			}
		}

		for _, fnSpec := range d.Functions {
			fn, err := declareFunction(fnSpec)
			if err != nil {
				return fmt.Errorf("function %q: %w", fnSpec.Name, err)
			}

			fns[fnSpec.Name] = fn
		}

		for _, stmt := range d.Body {
			if err := writeStmt(b, body, stmt, fns); err != nil {
				return err
			}
		}

		return nil
	}
}

// declareFunction builds a construct.Function from spec, carrying a
// DeclPolicy so it auto-declares (at the placement and declaration form
// spec requests) the first time the body calls it.
func declareFunction(spec functionSpec) (*construct.Function, error) {
	keys := make([]string, len(spec.Params))
	for i, p := range spec.Params {
		keys[i] = paramKey(p)
	}

	sig, err := signature.New(keys...)
	if err != nil {
		return nil, err
	}

	at := construct.AtBundleScope
	if spec.At == "exports" {
		at = construct.AtExports
	}

	return construct.NewFunction(spec.Name, sig, &construct.DeclPolicy{
		At:       at,
		As:       declFormFor(spec.As),
		Async:    spec.Async,
		Exported: spec.Exported,
		Body: func(c *fragment.Fragment, s *scope.Scope) {
			for _, line := range spec.Body {
				c.Stmt(line)
			}
		},
	}), nil
}

func paramKey(p paramSpec) string {
	switch {
	case p.Rest:
		return "..." + p.Name
	case p.Optional:
		return p.Name + "?"
	default:
		return p.Name
	}
}

func declFormFor(as string) construct.DeclForm {
	switch as {
	case "const":
		return construct.AsConst
	case "let":
		return construct.AsLet
	case "var":
		return construct.AsVar
	default:
		return construct.AsFunctionKeyword
	}
}

// writeStmt renders one body statement, either a raw literal line or a
// call to a previously declared function.
func writeStmt(b *scope.Bundle, body *fragment.Fragment, stmt bodyStmt, fns map[string]*construct.Function) error {
	if stmt.Call != nil {
		fn, ok := fns[stmt.Call.Function]
		if !ok {
			return fmt.Errorf("body calls undeclared function %q", stmt.Call.Function)
		}

		values := make(map[string]any, len(stmt.Call.Args))
		for k, v := range stmt.Call.Args {
			values[k] = literalText(v)
		}

		call, err := fn.Call(b.Scope, values)
		if err != nil {
			return fmt.Errorf("calling %q: %w", stmt.Call.Function, err)
		}

		body.Stmt(call, ";")

		return nil
	}

	body.Stmt(stmt.Raw)

	return nil
}
