package format_test

import (
	"testing"

	"github.com/esgen/esgen/format"
	"github.com/stretchr/testify/assert"
)

func TestPrintSimpleLine(t *testing.T) {
	p := format.New()
	p.Print("const ", "x", " = 1;")

	assert.Equal(t, "const x = 1;", p.String())
}

func TestPrintBlankLineCollapsing(t *testing.T) {
	p := format.New()
	p.Print("a;")
	p.Print("")
	p.Print("")
	p.Print("b;")

	assert.Equal(t, []string{"a;", "", "b;"}, p.Lines())
}

func TestIndentAppliesPrefix(t *testing.T) {
	p := format.New()
	p.Print("function f() {")
	p.Indent(func(c *format.Printer) {
		c.Print("return 1;")
	})
	p.Print("}")

	assert.Equal(t, []string{
		"function f() {",
		"  return 1;",
		"}",
	}, p.Lines())
}

func TestLineSplicesInline(t *testing.T) {
	p := format.New()
	p.Print("const greeting = ")
	p.Line(func(c *format.Printer) {
		c.Print("'Hello, World!'")
	})
	p.Print(";")

	assert.Equal(t, "const greeting = 'Hello, World!';", p.String())
}

func TestTrailingBlankLineTrimmed(t *testing.T) {
	p := format.New()
	p.Print("a;")
	p.Print("")

	assert.Equal(t, []string{"a;"}, p.Lines())
}
