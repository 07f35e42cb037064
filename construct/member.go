package construct

import (
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
)

// MemberKind distinguishes a class member's visibility, which in turn
// decides its name-allocation table (shared across the inheritance chain
// for Public, per-class for Private) and its rendered key form (a bare
// identifier for Public, "#name" for Private).
type MemberKind int

const (
	// Public members share one name table across a class's whole
	// inheritance chain, so a derived class overriding a base member
	// reuses the exact same rendered key.
	Public MemberKind = iota
	// Private members are independently named per class and always
	// render as "#name".
	Private
)

// Member is implemented by Field, Method: the two member kinds a Class
// declares through DeclareMember. (Constructor is handled separately by
// Class, since it never goes through the public/private name table — its
// key is always the literal "constructor".)
type Member interface {
	// Symbol returns the symbol identifying this member; Symbol identity,
	// not RequestedName, is what Class uses to detect a redeclaration as
	// an override rather than a fresh member.
	Symbol() *scope.Symbol
	Kind() MemberKind

	render(classScope *scope.Scope, ref *MemberRef) *fragment.Fragment
	handle(ref *MemberRef) any
}

// MemberRef is the resolved record Class keeps for one visible member: its
// Member implementation, requested Name, rendered Key (a sanitized bare
// identifier, or "#name" for a private member; keys are never rendered in
// bracketed-literal form), Accessor (the full ".key" form
// appended to a target expression), whether it was declared in this exact
// class (as opposed to lazily materialized from an ancestor), and a
// kind-specific Handle (*FieldHandle, *MethodHandle, or *ConstructorHandle).
type MemberRef struct {
	Member   Member
	Name     string
	Key      string
	Accessor string
	Declared bool

	handle any
}

// Handle returns this member's kind-specific operations handle.
func (r *MemberRef) Handle() any {
	return r.handle
}
