package esident

import "strings"

// Comment holds zero or more lines of free text to be rendered as an
// ECMAScript comment. A Comment with no lines renders as "/**/"; one line
// renders as a single-line "/* text */"; more than one line renders as a
// multi-line comment with each line prefixed by three spaces.
type Comment struct {
	Lines []string
}

// NewComment constructs a Comment from the given lines.
func NewComment(lines ...string) *Comment {
	return &Comment{Lines: lines}
}

// String renders the comment.
func (c *Comment) String() string {
	if c == nil || len(c.Lines) == 0 {
		return "/**/"
	}

	if len(c.Lines) == 1 {
		return "/* " + c.Lines[0] + " */"
	}

	var b strings.Builder

	b.WriteString("/*\n")

	for _, l := range c.Lines {
		b.WriteString("   ")
		b.WriteString(l)
		b.WriteString("\n")
	}

	b.WriteString("*/")

	return b.String()
}

// Attach appends this comment (optionally tagged, e.g. with a kind label)
// to a name, producing "name /* [tag] comment */". A nil comment returns
// name unchanged.
func (c *Comment) Attach(name string, tag string) string {
	if c == nil || len(c.Lines) == 0 {
		return name
	}

	body := strings.Join(c.Lines, " ")
	if tag != "" {
		return name + " /* [" + tag + "] " + body + " */"
	}

	return name + " /* " + body + " */"
}
