package construct

import (
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// Constructor is a class's constructor member. It is not a Member (it
// never competes for a slot in the public/private name table — its key
// is always the literal "constructor") and is instead owned directly by
// Class, which decides whether it is explicit, inherited, or a
// synthesized empty body (see Class.EnsureConstructor).
type Constructor struct {
	Sig  *signature.Signature
	body Body

	// inherited marks a Constructor produced by EnsureConstructor when a
	// base class exists and no explicit constructor was declared here: no
	// "constructor(...)" text is rendered for it at all (matching plain
	// ECMAScript's implicit inherited constructor), it exists only so
	// Class.Members can report it.
	inherited bool
}

// NewConstructor constructs an explicit constructor with the given
// signature and body.
func NewConstructor(sig *signature.Signature, body Body) *Constructor {
	return &Constructor{Sig: sig, body: body}
}

func (ctor *Constructor) render(classScope *scope.Scope) *fragment.Fragment {
	ctorScope := classScope.Nest(scope.KindFunction)

	f := fragment.New()
	f.Write("constructor")
	f.Write(ctor.Sig.Declare(ctorScope.Namespace(), nil))
	f.Write(" {")
	f.Indent(func(c *fragment.Fragment) {
		if ctor.body != nil {
			ctor.body(c, ctorScope)
		}
	})
	f.Write("}")

	return f
}

// ConstructorHandle exposes no operations of its own beyond being
// reachable through MemberRef.Handle; a class is instantiated via
// Class.Instantiate rather than through the constructor member's handle,
// since only the class's own Naming (not the constructor's) renders the
// "new ClassName(...)" expression.
type ConstructorHandle struct {
	class *Class
}
