package construct_test

import (
	"testing"

	"github.com/esgen/esgen/construct"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLambdaRendersArrowFunction(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("x")
	require.NoError(t, err)

	f, _ := construct.Lambda(b.Scope, sig, false, func(c *fragment.Fragment, s *scope.Scope) {
		c.Write("return x + 1;")
	})

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "(x) => {\n  return x + 1;\n}", p.String())
}

func TestLambdaAsyncPrefixed(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New()
	require.NoError(t, err)

	f, s := construct.Lambda(b.Scope, sig, true, func(c *fragment.Fragment, s *scope.Scope) {
		c.Write("return 1;")
	})

	assert.True(t, s.IsAsync())

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "async () => {\n  return 1;\n}", p.String())
}

func TestFunctionExprAnonymous(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("a", "b")
	require.NoError(t, err)

	f, _ := construct.FunctionExpr(b.Scope, sig, construct.FunctionOpts{}, func(c *fragment.Fragment, s *scope.Scope) {
		c.Write("return a + b;")
	})

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "function (a, b) {\n  return a + b;\n}", p.String())
}

func TestFunctionExprNamedGenerator(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New()
	require.NoError(t, err)

	f, s := construct.FunctionExpr(b.Scope, sig, construct.FunctionOpts{Name: "gen", Generator: true}, func(c *fragment.Fragment, s *scope.Scope) {
		c.Write("yield 1;")
	})

	assert.True(t, s.IsGenerator())

	p, err := f.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "function* gen() {\n  yield 1;\n}", p.String())
}
