package scope_test

import (
	"errors"
	"testing"

	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityBind(n scope.Naming) scope.AnyNaming {
	return &n
}

func TestNamingUniquenessWithinRegistry(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	s1 := scope.NewSymbol("x", false)
	s2 := scope.NewSymbol("x", false)

	n1, err := b.Namespace().AddSymbol(s1, identityBind)
	require.NoError(t, err)
	n2, err := b.Namespace().AddSymbol(s2, identityBind)
	require.NoError(t, err)

	assert.Equal(t, "x", n1.Base().Name())
	assert.Equal(t, "x$0", n2.Base().Name())
}

func TestUniqueSymbolRejectsSecondNamespace(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	child := b.Nest(scope.KindBlock)

	sym := scope.NewSymbol("shared", true)

	_, err := b.Namespace().AddSymbol(sym, identityBind)
	require.NoError(t, err)

	_, err = child.Namespace().AddSymbol(sym, identityBind)
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserr.ErrAlreadyNamed))
}

func TestVisibilityMonotonicity(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	child := b.Nest(scope.KindBlock)
	grandchild := child.Nest(scope.KindBlock)
	sibling := b.Nest(scope.KindBlock)

	sym := scope.NewSymbol("v", false)
	naming, err := child.Namespace().AddSymbol(sym, identityBind)
	require.NoError(t, err)

	// Visible in the declaring namespace and every descendant.
	got, err := child.Namespace().Refer(sym).GetNaming()
	require.NoError(t, err)
	assert.Equal(t, naming, got)

	got, err = grandchild.Namespace().Refer(sym).GetNaming()
	require.NoError(t, err)
	assert.Equal(t, naming, got)

	// Not visible to an unrelated sibling.
	_, err = sibling.Namespace().Refer(sym).GetNaming()
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserr.ErrUnnamed))
}

func TestReferUnnamedSymbolFails(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	sym := scope.NewSymbol("never", false)

	_, err := b.Namespace().Refer(sym).GetNaming()
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserr.ErrUnnamed))
}

func TestBundleDoneRejectsSpan(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	b.Done()

	_, err := b.Span()
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserr.ErrBundleDone))
}

func TestSpanEmitAfterPrintFails(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	span, err := b.Span(func(p *format.Printer) error {
		p.Print("x;")
		return nil
	})
	require.NoError(t, err)

	_, printErr := span.String()
	require.NoError(t, printErr)

	err = span.Emit(func(p *format.Printer) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserr.ErrAlreadyPrinted))
}
