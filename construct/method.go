package construct

import (
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
)

// Method is a class function member, rendered as "key(args) { body }".
type Method struct {
	sym       *scope.Symbol
	kind      MemberKind
	sig       *signature.Signature
	async     bool
	generator bool
	body      Body
}

// NewMethod constructs a method symbol of the given visibility.
func NewMethod(name string, kind MemberKind, sig *signature.Signature, async, generator bool, body Body) *Method {
	return &Method{sym: scope.NewSymbol(name, false), kind: kind, sig: sig, async: async, generator: generator, body: body}
}

// OverrideMethod constructs a new Method sharing sym's identity with an
// already-declared member, analogous to OverrideField.
func OverrideMethod(sym *scope.Symbol, kind MemberKind, sig *signature.Signature, async, generator bool, body Body) *Method {
	return &Method{sym: sym, kind: kind, sig: sig, async: async, generator: generator, body: body}
}

// Symbol returns the method's identity symbol.
func (m *Method) Symbol() *scope.Symbol {
	return m.sym
}

// Kind returns the method's visibility.
func (m *Method) Kind() MemberKind {
	return m.kind
}

func (m *Method) render(classScope *scope.Scope, ref *MemberRef) *fragment.Fragment {
	methodScope := classScope.Nest(scope.KindFunction, scope.NestOpts{Async: m.async, Generator: m.generator})

	prefix := ""
	if m.async {
		prefix += "async "
	}

	if m.generator {
		prefix += "*"
	}

	frag := fragment.New()
	frag.Write(prefix + ref.Key)
	frag.Write(m.sig.Declare(methodScope.Namespace(), nil))
	frag.Write(" {")
	frag.Indent(func(c *fragment.Fragment) { m.body(c, methodScope) })
	frag.Write("}")

	return frag
}

func (m *Method) handle(ref *MemberRef) any {
	return &MethodHandle{accessor: ref.Accessor, sig: m.sig}
}

// MethodHandle lets a caller call a declared method against an arbitrary
// target expression.
type MethodHandle struct {
	accessor string
	sig      *signature.Signature
}

// Call renders "target.accessor(values)".
func (h *MethodHandle) Call(target string, values map[string]any) *fragment.Fragment {
	f := fragment.New()
	f.Write(target + h.accessor)
	f.Write(h.sig.Call(values))

	return f
}
