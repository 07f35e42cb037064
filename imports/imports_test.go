package imports_test

import (
	"testing"

	"github.com/esgen/esgen/imports"
	"github.com/esgen/esgen/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRendersSingleImport(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	_, err := c.Reference("test-module", "test", "test", b.Namespace())
	require.NoError(t, err)

	lines := c.Render(imports.ES2015)
	assert.Equal(t, []string{"import { test } from 'test-module';"}, lines)
}

func TestAggregatesSameModule(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	_, err := c.Reference("test-module", "test1", "test1", b.Namespace())
	require.NoError(t, err)
	_, err = c.Reference("test-module", "test2", "test2", b.Namespace())
	require.NoError(t, err)

	lines := c.Render(imports.ES2015)
	assert.Equal(t, []string{"import { test1, test2 } from 'test-module';"}, lines)
}

func TestConflictingLocalNamesSuffix(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	n1, err := c.Reference("test-module1", "test", "test", b.Namespace())
	require.NoError(t, err)
	n2, err := c.Reference("test-module2", "test", "test", b.Namespace())
	require.NoError(t, err)

	assert.Equal(t, "test", n1.Base().Name())
	assert.Equal(t, "test$0", n2.Base().Name())

	lines := c.Render(imports.ES2015)
	assert.Equal(t, []string{
		"import { test } from 'test-module1';",
		"import { test as test$0 } from 'test-module2';",
	}, lines)
}

func TestDefaultExportRendersWithoutBraces(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	_, err := c.Reference("lib", "default", "Lib", b.Namespace())
	require.NoError(t, err)

	lines := c.Render(imports.ES2015)
	assert.Equal(t, []string{"import Lib from 'lib';"}, lines)
}

func TestMultilineClauseOverThreshold(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := c.Reference("big-module", name, name, b.Namespace())
		require.NoError(t, err)
	}

	lines := c.Render(imports.ES2015)
	assert.Equal(t, []string{
		"import {",
		"  a,",
		"  b,",
		"  c,",
		"  d,",
		"} from 'big-module';",
	}, lines)
}

func TestIIFERendersDynamicImport(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	_, err := c.Reference("test-module", "test", "local", b.Namespace())
	require.NoError(t, err)

	lines := c.Render(imports.IIFE)
	assert.Equal(t, []string{"const { test: local } = await import('test-module');"}, lines)
}

func TestReferenceAfterRenderFails(t *testing.T) {
	b := scope.NewBundle(scope.ES2015)
	c := imports.NewCollection()

	_, err := c.Reference("m", "a", "a", b.Namespace())
	require.NoError(t, err)

	c.Render(imports.ES2015)

	_, err = c.Reference("m", "b", "b", b.Namespace())
	require.Error(t, err)
}
