// Package eserr collects the sentinel errors raised across esgen's
// subsystems.  Every failure documented in the generator's failure model is
// represented here by exactly one sentinel, so callers can test for a
// specific failure with errors.Is regardless of which package raised it.
package eserr

import "errors"

var (
	// ErrCycle indicates a code fragment was inserted into itself.
	ErrCycle = errors.New("can not insert code fragment into itself")
	// ErrAlreadyPrinted indicates a write was attempted against a fragment,
	// declarations collection, or other drained printer after it was drained.
	ErrAlreadyPrinted = errors.New("code printed already")
	// ErrBundleDone indicates a span was requested from a bundle that has
	// already transitioned to the emitted state.
	ErrBundleDone = errors.New("all code emitted already")
	// ErrUnnamed indicates a symbol was referenced synchronously before it
	// had been named in any visible namespace.
	ErrUnnamed = errors.New("is unnamed")
	// ErrInvisible indicates a symbol was named in a namespace that does not
	// enclose the requesting namespace.
	ErrInvisible = errors.New("invisible to requesting namespace")
	// ErrAlreadyNamed indicates a unique symbol was named in a second
	// namespace.
	ErrAlreadyNamed = errors.New("already named in another namespace")
	// ErrDuplicateArg indicates a signature declared two arguments with the
	// same requested name.
	ErrDuplicateArg = errors.New("duplicate arg")
	// ErrDuplicateVararg indicates a signature declared more than one
	// variadic argument.
	ErrDuplicateVararg = errors.New("duplicate vararg")
	// ErrDuplicateMember indicates a class member was declared twice at the
	// same class.
	ErrDuplicateMember = errors.New("already declared in this class")
	// ErrConstructorNotDeclared indicates a class has no base class, a
	// non-empty constructor signature, and no explicit constructor body.
	ErrConstructorNotDeclared = errors.New("constructor not declared")
	// ErrIncompatibleConstructor indicates a derived class's constructor
	// cannot forward its arguments to the base class's constructor.
	ErrIncompatibleConstructor = errors.New("can not accept arguments from base constructor")
	// ErrNotExportable indicates a bundle's exports were requested as a
	// returned object (decl.Collection.AsExports) from a bundle whose
	// format does not return one — only an IIFE bundle ends in a
	// `return {...};` block.
	ErrNotExportable = errors.New("can not export from this bundle format")
)
