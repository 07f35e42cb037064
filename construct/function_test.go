package construct_test

import (
	"testing"

	"github.com/esgen/esgen/construct"
	"github.com/esgen/esgen/decl"
	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/scope"
	"github.com/esgen/esgen/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literalText(text string) fragment.Emitter {
	f := fragment.New()
	f.Write(text)

	return f.AsEmitter()
}

func TestFunctionAutoDeclaresOnFirstCall(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New("text")
	require.NoError(t, err)

	fn := construct.NewFunction("print", sig, &construct.DeclPolicy{
		At: construct.AtBundleScope,
		As: construct.AsFunctionKeyword,
		Body: func(c *fragment.Fragment, s *scope.Scope) {
			c.Write("console.log(text);")
		},
	})

	callSite, err := fn.Call(b.Scope, map[string]any{"text": literalText("'hi'")})
	require.NoError(t, err)

	callText, err := callSite.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')", callText.String())

	lines, err := decl.FromBundle(b).Print(decl.ES2015)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"function print(text) {",
		"  console.log(text);",
		"}",
	}, lines)
}

func TestFunctionExplicitDeclareAsConstArrow(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)

	sig, err := signature.New()
	require.NoError(t, err)

	fn := construct.NewFunction("greet", sig, nil)

	greetDecl, err := fn.Declare(b.Scope, construct.AsConst, false, false, func(c *fragment.Fragment, s *scope.Scope) {
		c.Write("return 'hi';")
	})
	require.NoError(t, err)

	p, err := greetDecl.Emit(b.Scope)
	require.NoError(t, err)
	assert.Equal(t, "const greet = () => {\n  return 'hi';\n};", p.String())
}
