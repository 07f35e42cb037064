package construct

import (
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
)

// Field is a class data member, rendered as "key;" or "key = init;" (or,
// for a Private field, "#key;" / "#key = init;").
type Field struct {
	sym         *scope.Symbol
	kind        MemberKind
	initializer *fragment.Fragment
}

// NewField constructs a field symbol of the given visibility.
func NewField(name string, kind MemberKind) *Field {
	return &Field{sym: scope.NewSymbol(name, false), kind: kind}
}

// OverrideField constructs a new Field sharing sym's identity with an
// already-declared member (typically the Symbol of a MemberRef found via
// Class.FindMember on a base class), so that a derived class's
// DeclareMember call is recognized as an override of that member rather
// than a fresh declaration.
func OverrideField(sym *scope.Symbol, kind MemberKind) *Field {
	return &Field{sym: sym, kind: kind}
}

// WithInitializer attaches an initializer expression, rendered as
// "key = <initializer>;" instead of a bare "key;". Returns the field
// itself for chaining at the construction site.
func (f *Field) WithInitializer(initializer *fragment.Fragment) *Field {
	f.initializer = initializer
	return f
}

// Symbol returns the field's identity symbol.
func (f *Field) Symbol() *scope.Symbol {
	return f.sym
}

// Kind returns the field's visibility.
func (f *Field) Kind() MemberKind {
	return f.kind
}

func (f *Field) render(_ *scope.Scope, ref *MemberRef) *fragment.Fragment {
	frag := fragment.New()

	if f.initializer != nil {
		frag.Write(ref.Key + " = ")
		frag.Write(f.initializer)
		frag.Write(";")

		return frag
	}

	frag.Write(ref.Key + ";")

	return frag
}

func (f *Field) handle(ref *MemberRef) any {
	return &FieldHandle{accessor: ref.Accessor}
}

// FieldHandle lets a caller read or write a declared field against an
// arbitrary target expression (e.g. "this", or a constructor parameter's
// resolved name).
type FieldHandle struct {
	accessor string
}

// Get renders "target.accessor" (or "target.#accessor" for a private
// field).
func (h *FieldHandle) Get(target string) string {
	return target + h.accessor
}

// Set renders "target.accessor = value".
func (h *FieldHandle) Set(target, value string) string {
	return target + h.accessor + " = " + value
}
