package esident_test

import (
	"testing"

	"github.com/esgen/esgen/esident"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdentityOnValidIdentifier(t *testing.T) {
	for _, n := range []string{"foo", "_bar", "$baz", "camelCase1"} {
		assert.Equal(t, n, esident.Sanitize(n))
	}
}

func TestSanitizeLeadingDigit(t *testing.T) {
	assert.Equal(t, "_1foo", esident.Sanitize("1foo"))
}

func TestSanitizeReservedWord(t *testing.T) {
	assert.Equal(t, "class_", esident.Sanitize("class"))
}

func TestSanitizeUnsafeCharacters(t *testing.T) {
	got := esident.Sanitize("a-b c")
	assert.Regexp(t, `^a_x002d_b_x0020_c$`, got)
}

func TestSanitizeProducesValidIdentifier(t *testing.T) {
	got := esident.Sanitize("1-abc!")
	// Round-tripping an already-sanitized string should be a no-op.
	assert.Equal(t, got, esident.Sanitize(got))
}
