package signature_test

import (
	"testing"

	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literal(text string) fragment.Emitter {
	return func(p *format.Printer) error {
		p.Print(text)
		return nil
	}
}

func TestNewRejectsDuplicateArg(t *testing.T) {
	_, err := signature.New("a", "a")
	require.Error(t, err)
}

func TestNewRejectsDuplicateVararg(t *testing.T) {
	_, err := signature.New("...a", "...b")
	require.Error(t, err)
}

func TestDeclareInlineForFewParams(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "b?")
	require.NoError(t, err)

	f := fragment.New()
	f.Write(sig.Declare(b.Namespace(), nil))

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(a, b)", p.String())
}

func TestDeclareMultilineOverThreshold(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "b", "c", "...d")
	require.NoError(t, err)

	f := fragment.New()
	f.Write(sig.Declare(b.Namespace(), nil))

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(\n  a,\n  b,\n  c,\n  ...d\n)", p.String())
}

func TestCallFillsMissingOptionalsWithUndefined(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "b?", "c")
	require.NoError(t, err)

	f := fragment.New()
	f.Write(sig.Call(map[string]any{
		"a": literal("1"),
		"c": literal("3"),
	}))

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(1, undefined, 3)", p.String())
}

func TestCallTrimsTrailingSyntheticUndefined(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "b?", "c?")
	require.NoError(t, err)

	f := fragment.New()
	f.Write(sig.Call(map[string]any{
		"a": literal("1"),
	}))

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(1)", p.String())
}

func TestCallRendersVariadicSliceExpansion(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "...rest")
	require.NoError(t, err)

	f := fragment.New()
	f.Write(sig.Call(map[string]any{
		"a":    literal("1"),
		"rest": []fragment.Emitter{literal("2"), literal("3")},
	}))

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(1, 2, 3)", p.String())
}

func TestCallMultilineOverThreshold(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "b", "c", "d")
	require.NoError(t, err)

	f := fragment.New()
	f.Write(sig.Call(map[string]any{
		"a": literal("1"), "b": literal("2"), "c": literal("3"), "d": literal("4"),
	}))

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(\n  1,\n  2,\n  3,\n  4\n)", p.String())
}

func TestAcceptsArgsForCompatible(t *testing.T) {
	base, err := signature.New("a", "b?")
	require.NoError(t, err)

	derived, err := signature.New("a", "b", "c?")
	require.NoError(t, err)

	assert.True(t, base.AcceptsArgsFor(derived))
}

func TestAcceptsArgsForRejectsNameMismatch(t *testing.T) {
	base, err := signature.New("a")
	require.NoError(t, err)

	derived, err := signature.New("x")
	require.NoError(t, err)

	assert.False(t, base.AcceptsArgsFor(derived))
}

func TestAcceptsArgsForRejectsMissingRequired(t *testing.T) {
	base, err := signature.New("a", "b")
	require.NoError(t, err)

	derived, err := signature.New("a")
	require.NoError(t, err)

	assert.False(t, base.AcceptsArgsFor(derived))
}
