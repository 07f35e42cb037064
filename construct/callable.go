// Package construct implements the higher-level callable/class/member
// family layered on top of signature and scope: lambdas and function
// expressions, named functions with automatic or explicit declaration,
// and classes with inherited, overridable public/private members.
package construct

import (
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// Body is a callback that writes a callable's statement body into c,
// which is nested in the callable's own scope s.
type Body func(c *fragment.Fragment, s *scope.Scope)

// Lambda renders an arrow function expression `(args) => { body }`
// (`async (args) => { body }` when async), opening a nested
// scope.KindFunction scope so that symbols referenced from body see the
// correct enclosing async/generator modifiers. It returns both the
// rendered fragment and the scope the body was built against, since a
// caller typically needs the latter to declare further symbols (e.g. the
// lambda's own local variables) visible only within it.
func Lambda(parent *scope.Scope, sig *signature.Signature, async bool, body Body) (*fragment.Fragment, *scope.Scope) {
	fnScope := parent.Nest(scope.KindFunction, scope.NestOpts{Async: async})

	f := fragment.New()

	if async {
		f.Write("async ")
	}

	f.Write(sig.Declare(fnScope.Namespace(), nil))
	f.Write(" => {")
	f.Indent(func(c *fragment.Fragment) { body(c, fnScope) })
	f.Write("}")

	return f, fnScope
}

// FunctionOpts configures FunctionExpr's rendering.
type FunctionOpts struct {
	// Name is written immediately after the function keyword (and its
	// optional "*"); a blank Name renders an anonymous function
	// expression.
	Name      string
	Async     bool
	Generator bool
}

// FunctionExpr renders a function expression or declaration
// `function [*]name(args) { body }`, opening a nested scope.KindFunction
// scope carrying opts' async/generator flags.
func FunctionExpr(parent *scope.Scope, sig *signature.Signature, opts FunctionOpts, body Body) (*fragment.Fragment, *scope.Scope) {
	fnScope := parent.Nest(scope.KindFunction, scope.NestOpts{Async: opts.Async, Generator: opts.Generator})

	f := fragment.New()

	prefix := "function"
	if opts.Async {
		prefix = "async " + prefix
	}

	if opts.Generator {
		prefix += "*"
	}

	if opts.Name != "" {
		prefix += " " + opts.Name
	} else {
		prefix += " "
	}

	f.Write(prefix)
	f.Write(sig.Declare(fnScope.Namespace(), nil))
	f.Write(" {")
	f.Indent(func(c *fragment.Fragment) { body(c, fnScope) })
	f.Write("}")

	return f, fnScope
}
