package decl_test

import (
	"testing"

	"github.com/esgen/esgen/decl"
	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declare(t *testing.T, b *scope.Bundle, c *decl.Collection, name, text string, refs []*scope.Symbol, exported bool, placement decl.Placement) (*scope.Symbol, scope.AnyNaming) {
	t.Helper()

	sym := scope.NewSymbol(name, true)
	naming, err := b.Namespace().AddSymbol(sym, func(n scope.Naming) scope.AnyNaming { return &n })
	require.NoError(t, err)

	err = c.Declare(naming, func(p *format.Printer) error {
		p.Print(text)
		return nil
	}, refs, exported, placement)
	require.NoError(t, err)

	return sym, naming
}

func TestDependencyOrdering(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	s2, _ := declare(t, b, c, "d2", "const d2 = 1;", nil, false, decl.AtBundle)
	declare(t, b, c, "d1", "const d1 = d2;", []*scope.Symbol{s2}, false, decl.AtBundle)

	lines, err := c.Print(decl.ES2015)
	require.NoError(t, err)
	assert.Equal(t, []string{"const d2 = 1;", "const d1 = d2;"}, lines)
}

func TestDependencyOrderingIgnoresDeclarationOrder(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	// d1 is declared first even though it depends on d2: d2 must still
	// print first because visit() recurses into refs before emitting.
	sym2 := scope.NewSymbol("d2", true)

	declare(t, b, c, "d1", "const d1 = d2;", []*scope.Symbol{sym2}, false, decl.AtBundle)

	naming2, err := b.Namespace().AddSymbol(sym2, func(n scope.Naming) scope.AnyNaming { return &n })
	require.NoError(t, err)
	require.NoError(t, c.Declare(naming2, func(p *format.Printer) error {
		p.Print("const d2 = 1;")
		return nil
	}, nil, false, decl.AtBundle))

	lines, err := c.Print(decl.ES2015)
	require.NoError(t, err)
	assert.Equal(t, []string{"const d2 = 1;", "const d1 = d2;"}, lines)
}

func TestCyclicRefsDoNotLoopForever(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	symA := scope.NewSymbol("a", true)
	namingA, err := b.Namespace().AddSymbol(symA, func(n scope.Naming) scope.AnyNaming { return &n })
	require.NoError(t, err)

	symB := scope.NewSymbol("b", true)
	namingB, err := b.Namespace().AddSymbol(symB, func(n scope.Naming) scope.AnyNaming { return &n })
	require.NoError(t, err)

	require.NoError(t, c.Declare(namingA, func(p *format.Printer) error {
		p.Print("let a;")
		return nil
	}, []*scope.Symbol{symB}, false, decl.AtBundle))

	require.NoError(t, c.Declare(namingB, func(p *format.Printer) error {
		p.Print("let b;")
		return nil
	}, []*scope.Symbol{symA}, false, decl.AtBundle))

	lines, err := c.Print(decl.ES2015)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"let a;", "let b;"}, lines)
}

func TestExportsInlineWhenUnrenamed(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	declare(t, b, c, "foo", "export function foo() {}", nil, true, decl.AtExports)

	lines, err := c.Print(decl.ES2015)
	require.NoError(t, err)
	assert.Equal(t, []string{"export function foo() {}"}, lines)
}

func TestExportsTrailingBlockForRenamed(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	// Both symbols request "internalName"; the second is forced to
	// "internalName$0" by the shared registry, so its export must be
	// rendered via the trailing `export { ... as ... };` block.
	declare(t, b, c, "internalName", "function internalName() {}", nil, false, decl.AtBundle)
	declare(t, b, c, "internalName", "function internalName$0() {}", nil, true, decl.AtExports)

	lines, err := c.Print(decl.ES2015)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"function internalName() {}",
		"function internalName$0() {}",
		"export { internalName$0 as internalName };",
	}, lines)
}

func TestIIFEReturnBlock(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	declare(t, b, c, "foo", "function foo() {}", nil, true, decl.AtExports)

	lines, err := c.Print(decl.IIFE)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"function foo() {}",
		"return {",
		"  foo: foo,",
		"};",
	}, lines)
}

func TestAsExportsRejectsNonIIFEBundle(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	declare(t, b, c, "foo", "function foo() {}", nil, true, decl.AtExports)

	_, err := c.AsExports(b)
	require.ErrorIs(t, err, eserr.ErrNotExportable)
}

func TestAsExportsListsReturnedEntries(t *testing.T) {
	b := scope.NewBundle(scope.IIFE)
	c := decl.NewCollection()

	declare(t, b, c, "foo", "function foo() {}", nil, true, decl.AtExports)
	declare(t, b, c, "hidden", "let hidden;", nil, false, decl.AtBundle)

	entries, err := c.AsExports(b)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foo", entries[0].Name)
	assert.Equal(t, "foo", entries[0].Local)
}

func TestDeclareAfterPrintFails(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := decl.NewCollection()

	declare(t, b, c, "a", "let a;", nil, false, decl.AtBundle)
	_, err := c.Print(decl.ES2015)
	require.NoError(t, err)

	sym := scope.NewSymbol("b", true)
	naming, err := b.Namespace().AddSymbol(sym, func(n scope.Naming) scope.AnyNaming { return &n })
	require.NoError(t, err)

	err = c.Declare(naming, func(p *format.Printer) error { return nil }, nil, false, decl.AtBundle)
	require.Error(t, err)
}
