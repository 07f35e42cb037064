// Package names implements the hierarchical unique-name allocator described
// by the generator's symbol-naming protocol. A Registry tree mirrors the
// scope tree: every Registry shares its root's table of already-taken names,
// so a name handed out anywhere in the tree is guaranteed unused by every
// other registry descending from (or ascending to) the same root.
package names

import (
	"regexp"
	"strconv"
)

// suffixPattern matches a trailing "$<digits>" conflict suffix so that
// resolving a collision on an already-suffixed name increments the existing
// counter rather than stacking a second suffix.
var suffixPattern = regexp.MustCompile(`^(.*)\$(\d+)$`)

// Registry is a node in the name-registry tree. The root registry owns the
// single shared table of taken names; every descendant delegates allocation
// to it, which is what gives the "unused by every registry that shares any
// ancestor" guarantee for free.
type Registry struct {
	parent *Registry
	root   *Registry
	taken  map[string]bool
}

// New constructs a fresh, empty top-level registry.
func New() *Registry {
	r := &Registry{taken: make(map[string]bool)}
	r.root = r

	return r
}

// Child constructs a nested registry beneath this one. Names reserved
// through the child are still allocated against the shared root table.
func (r *Registry) Child() *Registry {
	return &Registry{parent: r, root: r.root}
}

// Reserve returns a name that is unique within this registry's entire tree
// — conflicts are resolved by appending "$0", "$1", ... ; a preferred name
// that already carries a trailing "$<k>" suffix has that counter
// incremented instead of gaining a second suffix. Once returned, a name is
// never reused, even after the registry that reserved it is discarded: the
// taken-names table only ever grows.
func (r *Registry) Reserve(preferred string) string {
	root := r.root

	candidate := preferred
	for root.taken[candidate] {
		candidate = nextSuffix(candidate)
	}

	root.taken[candidate] = true

	return candidate
}

// nextSuffix computes the next conflict-suffixed candidate for a name that
// is already taken: "foo" -> "foo$0", "foo$0" -> "foo$1", and so on.
func nextSuffix(name string) string {
	if m := suffixPattern.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return m[1] + "$" + strconv.Itoa(n+1)
		}
	}

	return name + "$0"
}
