// Package decl implements the bundle-scoped top-level declarations
// subsystem: dependency-topological emission ordering and ES2015/IIFE
// export rendering. Ordering is a recursive DFS over each declaration's
// reference graph with a "visiting" mark, so cycles are safe rather than
// fatal.
package decl

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
)

// Format selects which export syntax Print produces for exported
// declarations.
type Format int

const (
	// ES2015 lists renamed exports in a trailing `export { ... };` block;
	// an export whose local name matches the requested name is left to its
	// own snippet's inline `export` prefix (see printExports).
	ES2015 Format = iota
	// IIFE collects every export into one trailing `return { ... };` block.
	IIFE
)

// Placement hints where a declaration belongs.
type Placement int

const (
	// AtBundle marks a declaration that is printed with the others in this
	// collection's top-level block and is never listed in an export block.
	AtBundle Placement = iota
	// AtExports places the declaration at the bundle root, with an export
	// marker.
	AtExports
)

// Snippet is the code a declaration contributes, as a plain printer
// emitter (the same shape a fragment ultimately reduces to).
type Snippet func(p *format.Printer) error

// decl is one registered declaration.
type decl struct {
	naming    scope.AnyNaming
	snippet   Snippet
	refs      []*scope.Symbol
	exported  bool
	placement Placement

	visiting bool
	done     bool
}

// Collection is the bundle-scoped, ordered table of top-level
// declarations. The zero value is not usable; construct with
// NewCollection.
type Collection struct {
	bySymbol map[*scope.Symbol]*decl
	order    []*scope.Symbol
	drained  bool

	declLines    []string
	declRendered bool

	exportLines    map[Format][]string
	exportRendered map[Format]bool
}

// NewCollection constructs an empty declarations collection.
func NewCollection() *Collection {
	return &Collection{
		bySymbol:       make(map[*scope.Symbol]*decl),
		exportLines:    make(map[Format][]string),
		exportRendered: make(map[Format]bool),
	}
}

// FromBundle returns b's declarations collection, lazily constructing one
// and stashing it on the bundle the first time it's needed, analogous to
// imports.FromBundle.
func FromBundle(b *scope.Bundle) *Collection {
	if b.Declarations == nil {
		b.Declarations = NewCollection()
	}

	return b.Declarations.(*Collection)
}

// Declare installs the snippet that realizes sym's declaration. refs lists
// the other symbols sym's snippet depends on — their declarations are
// guaranteed to precede sym's in Print's output if both are declared here.
// Declare fails once Print has drained the collection.
func (c *Collection) Declare(naming scope.AnyNaming, snippet Snippet, refs []*scope.Symbol, exported bool, placement Placement) error {
	if c.drained {
		return eserr.ErrAlreadyPrinted
	}

	sym := naming.Base().Symbol()
	if _, exists := c.bySymbol[sym]; !exists {
		c.order = append(c.order, sym)
	}

	c.bySymbol[sym] = &decl{
		naming:    naming,
		snippet:   snippet,
		refs:      refs,
		exported:  exported,
		placement: placement,
	}

	return nil
}

// Print renders every declared snippet in dependency-topological order
// (each symbol's snippet preceding every other declared-here snippet that
// lists it as a ref), followed by the export block appropriate to f, and
// freezes the collection against further Declare calls. It is equivalent
// to calling PrintDeclarations followed by PrintExports(f) and
// concatenating the results; a caller assembling a full document (see
// esgen.Generate/Evaluate) that needs to interleave a program body between
// the two calls them separately instead.
func (c *Collection) Print(f Format) ([]string, error) {
	declLines, err := c.PrintDeclarations()
	if err != nil {
		return nil, err
	}

	exportLines, err := c.PrintExports(f)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(declLines)+len(exportLines))
	out = append(out, declLines...)
	out = append(out, exportLines...)

	return out, nil
}

// PrintDeclarations renders every declared snippet in dependency-
// topological order and freezes the collection against further Declare
// calls. The result is cached, so calling it more than once (e.g. once
// directly and once indirectly via Print) re-renders nothing and returns
// the same lines.
func (c *Collection) PrintDeclarations() ([]string, error) {
	if c.declRendered {
		return c.declLines, nil
	}

	c.drained = true

	p := format.New()

	for _, sym := range c.order {
		if err := c.visit(p, sym); err != nil {
			return nil, err
		}
	}

	c.declLines = p.Lines()
	c.declRendered = true

	return c.declLines, nil
}

// PrintExports renders the trailing export block appropriate to f and
// freezes the collection against further Declare calls. Like
// PrintDeclarations, the result is cached per format.
func (c *Collection) PrintExports(f Format) ([]string, error) {
	if c.exportRendered[f] {
		return c.exportLines[f], nil
	}

	c.drained = true

	p := format.New()
	if err := c.printExports(p, f); err != nil {
		return nil, err
	}

	lines := p.Lines()
	c.exportLines[f] = lines
	c.exportRendered[f] = true

	return lines, nil
}

// visit renders sym's declaration (and, first, any ref it lists that is
// itself declared in this collection), skipping symbols already rendered
// and symbols mid-visit (breaking a dependency cycle at the revisited
// node rather than recursing forever).
func (c *Collection) visit(p *format.Printer, sym *scope.Symbol) error {
	d, ok := c.bySymbol[sym]
	if !ok || d.done || d.visiting {
		return nil
	}

	d.visiting = true

	for _, ref := range d.refs {
		if err := c.visit(p, ref); err != nil {
			return err
		}
	}

	log.WithField("symbol", sym.RequestedName).Debug("declaration emitted")

	// Resolve the declared name before its snippet renders, so that
	// declarations requesting the same name are suffixed in the order they
	// are printed.
	d.naming.Base().Name()

	if err := d.snippet(p); err != nil {
		return err
	}

	p.EndLine()

	d.visiting = false
	d.done = true

	return nil
}

// ExportEntry is one export a bundle's trailing `return {...};` block
// carries: the requested (published) name and the resolved local name it
// maps to.
type ExportEntry struct {
	Name  string
	Local string
}

// AsExports lists the exports b's trailing `return {...};` block returns,
// in declaration order. It fails with eserr.ErrNotExportable unless b
// renders as an IIFE — an ES2015 bundle exports through `export`
// statements and has no returned object to list.
func (c *Collection) AsExports(b *scope.Bundle) ([]ExportEntry, error) {
	if b.Format != scope.IIFE {
		return nil, fmt.Errorf("%w: %s bundle", eserr.ErrNotExportable, b.Format)
	}

	var out []ExportEntry

	for _, sym := range c.order {
		d := c.bySymbol[sym]
		if !d.exported || d.placement != AtExports {
			continue
		}

		out = append(out, ExportEntry{Name: sym.RequestedName, Local: d.naming.Base().Name()})
	}

	return out, nil
}

// printExports renders the trailing export block. For ES2015, a
// declaration whose resolved local name already equals its requested name
// is assumed to have rendered its own inline `export` prefix as part of
// its snippet (that decision belongs to the construct that built the
// snippet, since only it knows where in its own text "export" belongs) and
// is therefore excluded here; only renamed exports need the trailing
// `export { local as requested };` block. IIFE has no inline form, so
// every export — renamed or not — contributes a `return {...}` entry.
func (c *Collection) printExports(p *format.Printer, f Format) error {
	var names []struct{ local, requested string }

	for _, sym := range c.order {
		d := c.bySymbol[sym]
		if !d.exported || d.placement != AtExports {
			continue
		}

		local := d.naming.Base().Name()

		if f == ES2015 && local == sym.RequestedName {
			continue
		}

		names = append(names, struct{ local, requested string }{local, sym.RequestedName})
	}

	if len(names) == 0 {
		return nil
	}

	if f == IIFE {
		p.EndLine()
		p.Print("return {")
		p.Indent(func(cp *format.Printer) {
			for _, n := range names {
				cp.Print(n.requested + ": " + n.local + ",")
				cp.EndLine()
			}
		})
		p.Print("};")

		return nil
	}

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.local + " as " + n.requested
	}

	p.Print("export { " + strings.Join(parts, ", ") + " };")

	return nil
}
