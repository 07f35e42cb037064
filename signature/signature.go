// Package signature implements callable parameter lists: the ordered
// required/optional/variadic argument model, declaration and call-site
// rendering, and base/derived constructor compatibility checks.
package signature

import (
	"strings"

	"github.com/esgen/esgen/fragment"
	"github.com/esgen/esgen/internal/eserr"
	"github.com/esgen/esgen/scope"
)

// Kind distinguishes the three argument forms a Param may take.
type Kind int

const (
	// Required marks a plain, mandatory argument.
	Required Kind = iota
	// Optional marks an argument renderable as absent.
	Optional
	// Variadic marks the (at most one, always last) rest argument.
	Variadic
)

// Param is one named, kinded argument symbol belonging to a Signature.
type Param struct {
	Symbol *scope.Symbol
	Kind   Kind
}

// Name returns the param's requested name.
func (p Param) Name() string {
	return p.Symbol.RequestedName
}

// inlineThreshold is the largest argument count a Declare/Call renders on
// one line, absent any per-arg override.
const inlineThreshold = 3

// Signature is an ordered list of argument symbols split into required,
// optional, and (at most one) variadic groups, constructed from a key map
// in insertion order.
type Signature struct {
	params []Param
}

// New builds a Signature from keys in order, where each key is "name"
// (required), "name?" (optional), or "...name" (variadic, at most one,
// and must be given last). New fails with eserr.ErrDuplicateArg if two
// keys name the same argument, or eserr.ErrDuplicateVararg if more than
// one variadic key is given.
func New(keys ...string) (*Signature, error) {
	s := &Signature{}

	seen := make(map[string]bool, len(keys))
	haveVariadic := false

	for _, key := range keys {
		name, kind := parseKey(key)

		if seen[name] {
			return nil, eserr.ErrDuplicateArg
		}

		seen[name] = true

		if kind == Variadic {
			if haveVariadic {
				return nil, eserr.ErrDuplicateVararg
			}

			haveVariadic = true
		}

		s.params = append(s.params, Param{Symbol: scope.NewSymbol(name, false), Kind: kind})
	}

	return s, nil
}

func parseKey(key string) (string, Kind) {
	switch {
	case strings.HasPrefix(key, "..."):
		return strings.TrimPrefix(key, "..."), Variadic
	case strings.HasSuffix(key, "?"):
		return strings.TrimSuffix(key, "?"), Optional
	default:
		return key, Required
	}
}

// Params returns the signature's argument symbols, in declared order.
func (s *Signature) Params() []Param {
	return s.params
}

// Declare renders this signature's parameter list as it appears in a
// function/lambda/method/constructor header: "(a, b, c)" inline when there
// are at most inlineThreshold params and overrides supplies no per-arg
// customization, one parameter per comma-terminated line otherwise (no
// trailing comma after the variadic, if present). overrides may supply a
// custom renderer keyed by param name, e.g. to attach a default-value
// expression or destructuring pattern in place of the bare name; its
// presence for any param also forces the multi-line form so the
// override's own text is never crowded onto the argument line.
func (s *Signature) Declare(ns *scope.Namespace, overrides map[string]func(*fragment.Fragment)) *fragment.Fragment {
	f := fragment.New()

	names := make([]func(*fragment.Fragment), len(s.params))
	for i, p := range s.params {
		names[i] = s.declareOne(ns, p, overrides)
	}

	inline := len(s.params) <= inlineThreshold && len(overrides) == 0

	if inline {
		f.Write("(")
		for i, build := range names {
			if i > 0 {
				f.Write(", ")
			}

			f.Line(build)
		}

		f.Write(")")

		return f
	}

	f.Write("(")
	f.Indent(func(c *fragment.Fragment) {
		for i, build := range names {
			c.Line(build)

			if !(i == len(names)-1 && s.params[i].Kind == Variadic) {
				c.Write(",")
			}

			c.EndLine()
		}
	})
	f.Write(")")

	return f
}

func (s *Signature) declareOne(ns *scope.Namespace, p Param, overrides map[string]func(*fragment.Fragment)) func(*fragment.Fragment) {
	if override, ok := overrides[p.Name()]; ok {
		return override
	}

	prefix := ""
	if p.Kind == Variadic {
		prefix = "..."
	}

	return func(c *fragment.Fragment) {
		naming, err := ns.AddSymbol(p.Symbol, func(n scope.Naming) scope.AnyNaming { return &n })
		if err != nil {
			// A param symbol is non-unique, and AddSymbol only fails for
			// a unique symbol, so this branch is not reached.
			panic(err)
		}

		c.Write(prefix + naming.Base().Name())
	}
}

// callArg is one rendered call-site argument slot, paired with whether it
// is an unsupplied-optional's synthesized "undefined" filler (candidate
// for trailing trim) rather than caller-supplied text.
type callArg struct {
	build     func(*fragment.Fragment)
	synthetic bool
}

// Call renders a call-site argument list from values, keyed by param
// name. A non-variadic value must be a fragment.Emitter; the variadic
// slot additionally accepts a []fragment.Emitter, expanded as a sequence
// of positions. A missing value renders as "undefined"; a run of
// trailing synthesized "undefined"s is trimmed. Rendering follows the
// same inline/multi-line threshold as Declare.
func (s *Signature) Call(values map[string]any) *fragment.Fragment {
	f := fragment.New()

	args := trimTrailingSynthetic(s.callArgs(values))

	if len(args) <= inlineThreshold {
		f.Write("(")
		for i, a := range args {
			if i > 0 {
				f.Write(", ")
			}

			f.Line(a.build)
		}

		f.Write(")")

		return f
	}

	f.Write("(")
	f.Indent(func(c *fragment.Fragment) {
		for i, a := range args {
			c.Line(a.build)

			if i < len(args)-1 {
				c.Write(",")
			}

			c.EndLine()
		}
	})
	f.Write(")")

	return f
}

func (s *Signature) callArgs(values map[string]any) []callArg {
	var args []callArg

	for _, p := range s.params {
		v, ok := values[p.Name()]
		if !ok {
			if p.Kind == Variadic {
				continue
			}

			args = append(args, callArg{build: writeText("undefined"), synthetic: true})

			continue
		}

		switch vv := v.(type) {
		case []fragment.Emitter:
			for _, e := range vv {
				args = append(args, callArg{build: writeEmitter(e)})
			}
		case fragment.Emitter:
			args = append(args, callArg{build: writeEmitter(vv)})
		default:
			panic("signature: call value must be fragment.Emitter or []fragment.Emitter")
		}
	}

	return args
}

func writeEmitter(e fragment.Emitter) func(*fragment.Fragment) {
	return func(c *fragment.Fragment) { c.Write(e) }
}

func writeText(text string) func(*fragment.Fragment) {
	return func(c *fragment.Fragment) { c.Write(text) }
}

func trimTrailingSynthetic(args []callArg) []callArg {
	end := len(args)
	for end > 0 && args[end-1].synthetic {
		end--
	}

	return args[:end]
}

// AcceptsArgsFor reports whether this signature is compatible with other
// as a base-class constructor: for every argument of this signature, the
// corresponding positional argument of other must exist with the
// identical requested name, and either its kind matches or this
// signature's argument is optional (a required argument of this cannot be
// satisfied by a missing argument of other).
func (s *Signature) AcceptsArgsFor(other *Signature) bool {
	for i, p := range s.params {
		if i >= len(other.params) {
			if p.Kind != Optional {
				return false
			}

			continue
		}

		op := other.params[i]
		if p.Name() != op.Name() {
			return false
		}

		if p.Kind != op.Kind && p.Kind != Optional {
			return false
		}
	}

	return true
}
