// Package format implements the stream-oriented output assembler shared by
// every emitting subsystem in esgen.  A Printer buffers an ordered sequence
// of lines — built up incrementally via Print/Line/Indent — along with an
// indent prefix, and drains them into a final line stream.
//
// The original library's printer is asynchronous because sub-printers may
// resolve lazily across microtask/macrotask boundaries.  Go has no such
// event loop; esgen instead drives emission through an explicit two-phase
// protocol (see the scope package), so by the time anything is printed every
// sub-printer is already fully populated.  Printer itself stays a plain
// synchronous buffer.
package format

import "strings"

// Printer assembles an ordered stream of text into a final set of lines. The
// zero value is ready to use as a top-level, unindented printer.
type Printer struct {
	prefix string
	lines  []string
	cur    strings.Builder
	dirty  bool
}

// New constructs a top-level printer with no indentation.
func New() *Printer {
	return &Printer{}
}

// Print appends each record to the current (possibly already partially
// written) line. A bare "" terminates the current line and requests an
// explicit blank line.
func (p *Printer) Print(records ...string) {
	for _, r := range records {
		if r == "" {
			p.flush()
			p.lines = append(p.lines, "")
			continue
		}

		p.cur.WriteString(r)
		p.dirty = true
	}
}

// EndLine commits the currently open line (if dirty) so that whatever is
// written next starts a genuinely new line, without requesting a blank one
// the way Print("") does. Safe to call when nothing is open; it is then a
// no-op.
func (p *Printer) EndLine() {
	p.flush()
}

// Line runs build against a fresh inline child sharing this printer's indent
// prefix, then splices the child's first line onto the current open line and
// appends any further lines the child produced (e.g. from a nested Indent
// call) as complete lines of their own.
func (p *Printer) Line(build func(*Printer)) {
	child := &Printer{prefix: p.prefix}
	build(child)

	childLines := child.drain()
	if len(childLines) == 0 {
		return
	}

	p.cur.WriteString(strings.TrimPrefix(childLines[0], p.prefix))
	p.dirty = true

	if len(childLines) > 1 {
		p.flush()
		p.lines = append(p.lines, childLines[1:]...)
	}
}

// Indent runs build against a child printer whose indent prefix is this
// printer's prefix plus indentString (defaulting to two spaces), flushes any
// line already open on the parent, and appends the child's lines verbatim.
func (p *Printer) Indent(build func(*Printer), indentString ...string) {
	step := "  "
	if len(indentString) > 0 {
		step = indentString[0]
	}

	child := &Printer{prefix: p.prefix + step}
	build(child)
	p.flush()
	p.lines = append(p.lines, child.drain()...)
}

// flush commits the currently open line (if any) into the line list.
func (p *Printer) flush() {
	if p.dirty {
		p.lines = append(p.lines, p.prefix+p.cur.String())
		p.cur.Reset()
		p.dirty = false
	}
}

// drain finalizes the printer, returning every line it has accumulated.
func (p *Printer) drain() []string {
	p.flush()
	return p.lines
}

// Lines drains the printer into its final ordered list of lines, with
// consecutive blank lines collapsed to one and any trailing blank line
// trimmed.
func (p *Printer) Lines() []string {
	return collapseBlankRuns(p.drain())
}

// String drains the printer into its final text.
func (p *Printer) String() string {
	return strings.Join(p.Lines(), "\n")
}

// collapseBlankRuns reduces any run of consecutive empty lines to a single
// empty line, and trims trailing blank lines.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	blank := false

	for _, l := range lines {
		if l == "" {
			if blank {
				continue
			}

			blank = true
		} else {
			blank = false
		}

		out = append(out, l)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}
