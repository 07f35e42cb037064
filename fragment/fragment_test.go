package fragment_test

import (
	"errors"
	"testing"

	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndEmitProducesText(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	f := fragment.New()
	f.Write("const x = ")
	f.Write("1;")

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", p.String())
}

func TestLineSplicesInline(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	f := fragment.New()
	f.Write("const pair = [")
	f.Line(func(c *fragment.Fragment) {
		c.Write("1, 2")
	})
	f.Write("];")

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "const pair = [1, 2];", p.String())
}

func TestIndentProducesBlock(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	f := fragment.New()
	f.Write("function f() {")
	f.Indent(func(c *fragment.Fragment) {
		c.Write("return 1;")
	})
	f.Write("}")

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  return 1;\n}", p.String())
}

func TestEmbeddedFragmentIsSpliced(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	inner := fragment.New()
	inner.Write("1 + 1")

	outer := fragment.New()
	outer.Write("const x = ", inner, ";")

	p, err := outer.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1 + 1;", p.String())
}

func TestWritingFragmentIntoItselfPanics(t *testing.T) {
	f := fragment.New()

	assert.PanicsWithValue(t, eserr.ErrCycle, func() {
		f.Write(f)
	})
}

func TestTransitiveCyclePanics(t *testing.T) {
	a := fragment.New()
	b := fragment.New()

	a.Write(b) // b is now embedded within a

	assert.PanicsWithValue(t, eserr.ErrCycle, func() {
		b.Write(a) // would make a embedded within b too: a cycle
	})
}

func TestWriteAfterEmitPanics(t *testing.T) {
	bundle := scope.NewBundle(scope.ES2015)

	f := fragment.New()
	f.Write("x;")

	_, err := f.Emit(bundle.Scope)
	require.NoError(t, err)

	assert.PanicsWithValue(t, eserr.ErrAlreadyPrinted, func() {
		f.Write("y;")
	})
}

func TestEmitIsIdempotentPerScope(t *testing.T) {
	bundle := scope.NewBundle(scope.ES2015)

	f := fragment.New()
	f.Write("x;")

	p1, err := f.Emit(bundle.Scope)
	require.NoError(t, err)

	p2, err := f.Emit(bundle.Scope)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
}

func TestEmitAfterBundleDoneFails(t *testing.T) {
	bundle := scope.NewBundle(scope.ES2015)
	f := fragment.New()
	f.Write("x;")

	bundle.Done()

	_, err := f.Emit(bundle.Scope)
	require.Error(t, err)
	assert.True(t, errors.Is(err, eserr.ErrBundleDone))
}

func TestMultiLinePreservesExplicitBlankLine(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	f := fragment.New()
	f.MultiLine(func(c *fragment.Fragment) {
		c.Write("a;")
		c.Blank()
		c.Write("b;")
	})

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "a;\n\nb;", p.String())
}
