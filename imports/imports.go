// Package imports implements the bundle-scoped imports subsystem: per-module
// aggregation of imported bindings and their ES2015/IIFE rendering. Each
// module identity gets one record, aggregating every name pulled from it,
// so repeated imports of the same module coalesce into a single clause.
package imports

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/esgen/esgen/format"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
)

// Format selects which import syntax Render produces.
type Format int

const (
	// ES2015 renders `import { a as b } from 'mod';` clauses.
	ES2015 Format = iota
	// IIFE renders `const { a: b } = await import('mod');` clauses.
	IIFE
)

// defaultExport is the well-known export name for a module's default
// export, rendered without braces in ES2015 form.
const defaultExport = "default"

// inlineThreshold is the largest number of bindings a module's clause
// renders on one line; beyond it, Render splits the clause one name per
// line, mirroring the ≤3-argument threshold used for signature rendering.
const inlineThreshold = 3

type binding struct {
	exportName string
	naming     scope.AnyNaming
}

type moduleRecord struct {
	specifier string
	bindings  []*binding
}

// Collection is the bundle-scoped table of imported modules and their
// bindings. The zero value is not usable; construct with NewCollection.
type Collection struct {
	byID    map[any]*moduleRecord
	order   []any
	drained bool
}

// NewCollection constructs an empty imports collection.
func NewCollection() *Collection {
	return &Collection{byID: make(map[any]*moduleRecord)}
}

// FromBundle returns b's imports collection, lazily constructing one and
// stashing it on the bundle the first time it's needed. scope.Bundle keeps
// Imports as an untyped extension point specifically so this package (and
// decl, analogously) can own the concrete collection type without scope
// importing imports and creating a cycle.
func FromBundle(b *scope.Bundle) *Collection {
	if b.Imports == nil {
		b.Imports = NewCollection()
	}

	return b.Imports.(*Collection)
}

// Reference registers an import of exportName from moduleID (an opaque,
// comparable identity — typically the module specifier string itself),
// binding it to requestedLocal in bundleNS. Two references sharing the
// same moduleID coalesce into a single per-module record, regardless of
// which exports they pull in. The returned naming obeys bundle-wide
// uniqueness: a second Reference for the same requestedLocal, even from a
// different module, is suffixed by the name registry exactly like any
// other unique symbol.
func (c *Collection) Reference(moduleID any, exportName, requestedLocal string, bundleNS *scope.Namespace) (scope.AnyNaming, error) {
	if c.drained {
		return nil, eserr.ErrAlreadyPrinted
	}

	rec, ok := c.byID[moduleID]
	if !ok {
		rec = &moduleRecord{specifier: specifierOf(moduleID)}
		c.byID[moduleID] = rec
		c.order = append(c.order, moduleID)
	}

	sym := scope.NewSymbol(requestedLocal, true)

	naming, err := bundleNS.AddSymbol(sym, func(n scope.Naming) scope.AnyNaming { return &n })
	if err != nil {
		return nil, err
	}

	rec.bindings = append(rec.bindings, &binding{exportName: exportName, naming: naming})

	log.WithFields(log.Fields{
		"module": rec.specifier,
		"export": exportName,
		"local":  requestedLocal,
	}).Debug("import registered")

	return naming, nil
}

func specifierOf(moduleID any) string {
	if s, ok := moduleID.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", moduleID)
}

// Render prints every registered module's import clause, in first-reference
// order, and freezes the collection against further Reference calls.
func (c *Collection) Render(f Format) []string {
	c.drained = true

	p := format.New()

	for _, id := range c.order {
		renderModule(p, f, c.byID[id])
		p.EndLine()
	}

	return p.Lines()
}

func renderModule(p *format.Printer, f Format, rec *moduleRecord) {
	quoted := "'" + strings.ReplaceAll(rec.specifier, "'", "\\'") + "'"

	var defaultLocal string

	named := make([]*binding, 0, len(rec.bindings))

	for _, b := range rec.bindings {
		if b.exportName == defaultExport && f == ES2015 {
			defaultLocal = b.naming.Base().Name()
			continue
		}

		named = append(named, b)
	}

	if f == ES2015 {
		renderES2015(p, quoted, defaultLocal, named)
	} else {
		renderIIFE(p, quoted, named)
	}
}

func renderES2015(p *format.Printer, quoted, defaultLocal string, named []*binding) {
	if defaultLocal != "" && len(named) == 0 {
		p.Print("import " + defaultLocal + " from " + quoted + ";")
		return
	}

	prefix := "import "
	if defaultLocal != "" {
		prefix += defaultLocal + ", "
	}

	renderClause(p, prefix, " from "+quoted+";", named, " as ")
}

func renderIIFE(p *format.Printer, quoted string, named []*binding) {
	renderClause(p, "const ", " = await import("+quoted+");", named, ": ")
}

// renderClause writes `prefix{ ... }suffix`, inline when the binding count
// is within inlineThreshold, one binding per indented line otherwise.
func renderClause(p *format.Printer, prefix, suffix string, named []*binding, renameSep string) {
	if len(named) == 0 {
		p.Print(prefix + "{}" + suffix)
		return
	}

	if len(named) <= inlineThreshold {
		items := make([]string, len(named))
		for i, b := range named {
			items[i] = renderBinding(b, renameSep)
		}

		p.Print(prefix + "{ " + strings.Join(items, ", ") + " }" + suffix)

		return
	}

	p.Print(prefix + "{")
	p.Indent(func(cp *format.Printer) {
		for _, b := range named {
			cp.Print(renderBinding(b, renameSep) + ",")
			cp.EndLine()
		}
	})
	p.Print("}" + suffix)
}

func renderBinding(b *binding, renameSep string) string {
	local := b.naming.Base().Name()
	if local == b.exportName {
		return b.exportName
	}

	return b.exportName + renameSep + local
}
