package names_test

import (
	"testing"

	"github.com/esgen/esgen/names"
	"github.com/stretchr/testify/assert"
)

func TestReserveNoConflict(t *testing.T) {
	r := names.New()
	assert.Equal(t, "foo", r.Reserve("foo"))
}

func TestReserveConflictSuffixes(t *testing.T) {
	r := names.New()
	assert.Equal(t, "foo", r.Reserve("foo"))
	assert.Equal(t, "foo$0", r.Reserve("foo"))
	assert.Equal(t, "foo$1", r.Reserve("foo"))
}

func TestReserveIncrementsExistingSuffix(t *testing.T) {
	r := names.New()
	assert.Equal(t, "foo$0", r.Reserve("foo$0"))
	assert.Equal(t, "foo$1", r.Reserve("foo$0"))
}

func TestChildSharesRootTable(t *testing.T) {
	root := names.New()
	a := root.Child()
	b := root.Child()

	assert.Equal(t, "test", a.Reserve("test"))
	assert.Equal(t, "test$0", b.Reserve("test"))
	assert.Equal(t, "test$1", root.Reserve("test"))
}
