// Package esident implements the small, pure helpers for producing valid
// ECMAScript text fragments: identifier sanitization, comments, and quoted
// string literals. None of these hold any emission state; they are pure
// functions over strings.
package esident

import (
	"fmt"
	"strings"
	"unicode"
)

// reservedWords is the set of ECMAScript keywords (plus a handful of
// contextual/strict-mode reserved words) that cannot be used verbatim as an
// identifier.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "export": true,
	"extends": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true,
	"new": true, "return": true, "super": true, "switch": true,
	"this": true, "throw": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true,
	"yield": true, "let": true, "static": true, "enum": true,
	"await": true, "implements": true, "package": true, "protected": true,
	"interface": true, "private": true, "public": true,
	"null": true, "true": true, "false": true,
}

// Sanitize maps an arbitrary string into a valid ECMAScript identifier.
// Every unsafe code point is replaced with "_xHHHH_" (the lower-case hex of
// its code point); a leading digit is preceded by an underscore; a result
// that collides with a reserved word is suffixed with an underscore.
//
// For any string already a valid identifier, Sanitize is the identity
// function; for any other string, the result is always a valid identifier.
func Sanitize(s string) string {
	if s == "" {
		return "_"
	}

	var b strings.Builder

	for i, r := range s {
		switch {
		case isIdentStart(r):
			b.WriteRune(r)
		case unicode.IsDigit(r) && i == 0:
			// A digit is only unsafe in leading position; keep it, prefixed.
			b.WriteRune('_')
			b.WriteRune(r)
		case isIdentPart(r) && i > 0:
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_x%04x_", r)
		}
	}

	out := b.String()

	if reservedWords[out] {
		out += "_"
	}

	return out
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
