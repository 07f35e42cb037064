// Package esgen implements programmatic generation of ECMAScript source
// text. A caller composes an in-memory description of a program —
// classes, functions, signatures, imported references, variable
// declarations, literal code fragments, built from the scope, fragment,
// signature, construct, imports, and decl subpackages — and this package's
// two entry points, Generate and Evaluate, render that description into a
// formatted, syntactically valid ECMAScript module (or an immediately
// invoked function expression) as text, optionally evaluating it
// in-process to yield live exports.
package esgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"github.com/esgen/esgen/decl"
	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/imports"
	"github.com/esgen/esgen/scope"
)

// Log is the package-level logger tracing document assembly and
// evaluation. It defaults to warn level, so the library stays quiet unless
// a caller raises verbosity. Name allocation, declaration ordering, and
// import aggregation are traced on logrus's standard logger instead.
var Log = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)

	return l
}()

// Build is the callback a caller supplies to Generate/Evaluate.
// It receives the freshly constructed bundle and a fresh fragment nested
// at the bundle's own scope to write the program's top-level body into.
// Imports, classes, and functions referenced from body are registered as a
// side effect of the ordinary Go calls Build makes against b before
// returning — esgen's whole symbol/declaration graph is built eagerly, so
// by the time Build returns every symbol that will ever be declared in
// this bundle already exists (see scope.Naming.Name's doc comment).
type Build func(b *scope.Bundle, body *fragment.Fragment) error

// Generate renders build's program as a plain ECMAScript module: imports
// first, then dependency-ordered top-level declarations, then the
// program's own top-level body, then an export block for anything
// declared with decl.AtExports/construct.AtExports. Defaults to
// scope.ES2015; pass WithFormat to override (there is little reason to,
// since Evaluate is the IIFE-producing entry point).
func Generate(build Build, opts ...Option) (string, error) {
	b := NewBundle(scope.ES2015, opts...)

	return renderDocument(b, build)
}

// Evaluate renders build's program as an IIFE — "(async () => { ... })()"
// — and actually runs it in an in-process ECMAScript host (goja),
// returning the export object produced by its trailing "return {...};"
// block, keyed by each export's published name. Defaults to scope.IIFE;
// forcing another format via WithFormat fails with
// eserr.ErrNotExportable, since only an IIFE bundle returns an exports
// object to collect.
//
// Goja has no real event loop of its own: a generated async function body
// that never awaits a genuinely pending promise (esgen never emits timers
// or network calls) settles synchronously within the single RunString
// call below, so there is no microtask pump to drive here.
func Evaluate(build Build, opts ...Option) (map[string]any, error) {
	b := NewBundle(scope.IIFE, opts...)

	body, err := renderDocument(b, build)
	if err != nil {
		return nil, err
	}

	entries, err := decl.FromBundle(b).AsExports(b)
	if err != nil {
		return nil, fmt.Errorf("esgen: collecting exports: %w", err)
	}

	wrapped := wrapIIFE(body)

	Log.WithField("bytes", len(wrapped)).Debug("evaluating generated IIFE")

	vm := goja.New()

	v, err := vm.RunString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("esgen: evaluating generated code: %w", err)
	}

	promise, ok := v.Export().(*goja.Promise)
	if !ok {
		return nil, errors.New("esgen: generated IIFE did not evaluate to a Promise")
	}

	switch promise.State() {
	case goja.PromiseStateRejected:
		return nil, fmt.Errorf("esgen: generated code rejected: %v", promise.Result())
	case goja.PromiseStatePending:
		return nil, errors.New("esgen: generated code's promise never settled")
	}

	result := promise.Result()
	if goja.IsUndefined(result) || goja.IsNull(result) {
		if len(entries) > 0 {
			return nil, fmt.Errorf("esgen: generated code returned no exports object (expected %d exports)", len(entries))
		}

		return map[string]any{}, nil
	}

	exported, ok := result.Export().(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("esgen: expected the IIFE to return a plain exports object, got %T", result.Export())
	}

	out := make(map[string]any, len(entries))

	for _, e := range entries {
		v, ok := exported[e.Name]
		if !ok {
			return nil, fmt.Errorf("esgen: generated code did not return export %q", e.Name)
		}

		out[e.Name] = v
	}

	return out, nil
}

// renderDocument drives a bundle through Build, emission, and the two-
// phase import/declaration drain, and assembles the final document text:
// imports, a blank separator (only if there were any), declarations, the
// caller's own top-level body, and the trailing export block — matching
// the generator's ordering guarantees (imports before all bodies;
// declarations after the first body pass but before exports; exports
// last).
func renderDocument(b *scope.Bundle, build Build) (string, error) {
	body := fragment.New()

	if err := build(b, body); err != nil {
		return "", fmt.Errorf("esgen: building program: %w", err)
	}

	bodyPrinter, err := body.Emit(b.Scope)
	if err != nil {
		return "", fmt.Errorf("esgen: emitting program body: %w", err)
	}

	bodyLines := bodyPrinter.Lines()

	b.Done()

	importsFmt, declFmt := formatsFor(b.Format)

	importLines := imports.FromBundle(b).Render(importsFmt)

	declLines, err := decl.FromBundle(b).PrintDeclarations()
	if err != nil {
		return "", fmt.Errorf("esgen: printing declarations: %w", err)
	}

	exportLines, err := decl.FromBundle(b).PrintExports(declFmt)
	if err != nil {
		return "", fmt.Errorf("esgen: printing exports: %w", err)
	}

	Log.WithFields(logrus.Fields{
		"imports":      len(importLines),
		"declarations": len(declLines),
		"body":         len(bodyLines),
		"exports":      len(exportLines),
	}).Debug("assembling document")

	p := format.New()

	for _, l := range importLines {
		p.Print(l)
		p.EndLine()
	}

	if len(importLines) > 0 {
		p.Print("")
	}

	for _, l := range declLines {
		p.Print(l)
		p.EndLine()
	}

	for _, l := range bodyLines {
		p.Print(l)
		p.EndLine()
	}

	for _, l := range exportLines {
		p.Print(l)
		p.EndLine()
	}

	return p.String(), nil
}

// formatsFor maps a bundle's Format onto the corresponding imports.Format
// and decl.Format, rather than relying on the three enums sharing
// identical underlying values.
func formatsFor(f scope.Format) (imports.Format, decl.Format) {
	if f == scope.IIFE {
		return imports.IIFE, decl.IIFE
	}

	return imports.ES2015, decl.ES2015
}

// wrapIIFE indents document (the fully assembled module body, rendered in
// IIFE form by renderDocument) one step and wraps it in an async IIFE, the
// shape Evaluate hands to goja.
func wrapIIFE(document string) string {
	lines := strings.Split(document, "\n")

	p := format.New()
	p.Print("(async () => {")
	p.Indent(func(cp *format.Printer) {
		for _, l := range lines {
			cp.Print(l)
			cp.EndLine()
		}
	})
	p.Print("})()")

	return p.String()
}
