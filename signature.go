package currycore

import (
	"fmt"
	"sort"
	"strings"
)

// ============================================================================
// Call Signatures
// ============================================================================

// Param is one declared parameter: a name and, optionally, a default
// value. A parameter without a default is required.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// Signature is the declared shape of a callable's parameters: ordered
// positional parameters, an optional variadic collector for remaining
// positional arguments (named, empty when absent), and keyword-only
// parameters that can be supplied by name alone.
//
// A Signature is meaningful only relative to a binding: the residual of
// binding arguments against it is itself a Signature, so "how many
// required parameters remain" is always asked of a residual.
type Signature struct {
	Positional  []Param
	Variadic    string
	KeywordOnly []Param
}

// Required counts the parameters that still lack a value: positional
// parameters without defaults plus keyword-only parameters without
// defaults. It is never negative; bindings that would drive the raw
// count below zero are rejected by SignatureFor first.
func (s Signature) Required() int {
	n := 0
	for _, p := range s.Positional {
		if !p.HasDefault {
			n++
		}
	}
	for _, p := range s.KeywordOnly {
		if !p.HasDefault {
			n++
		}
	}
	return n
}

// String renders the declared shape, e.g. (x, y, z=0, rest..., *, sep=" ").
// Keyword-only parameters follow a lone * marker.
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range s.Positional {
		if i > 0 {
			b.WriteString(", ")
		}
		writeParam(&b, p)
	}
	if s.Variadic != "" {
		if len(s.Positional) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Variadic)
		b.WriteString("...")
	}
	if len(s.KeywordOnly) > 0 {
		if len(s.Positional) > 0 || s.Variadic != "" {
			b.WriteString(", ")
		}
		b.WriteString("*")
		for _, p := range s.KeywordOnly {
			b.WriteString(", ")
			writeParam(&b, p)
		}
	}
	b.WriteByte(')')
	return b.String()
}

func writeParam(b *strings.Builder, p Param) {
	b.WriteString(p.Name)
	if p.HasDefault {
		b.WriteByte('=')
		b.WriteString(renderValue(p.Default))
	}
}

func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// ============================================================================
// Signature Inspector
// ============================================================================

// SignatureFor binds the given positional and named arguments against a
// declared signature and returns the residual signature: only the
// parameters the binding leaves unbound, defaults preserved.
//
// It fails with *BindError when the binding is structurally invalid:
// more positional arguments than declared positional parameters with no
// variadic collector, a named argument matching no declared parameter,
// or a named argument duplicating one already satisfied positionally.
//
// Positional arguments consume positional parameters in declared order.
// A named argument may satisfy a not-yet-consumed positional parameter;
// unsatisfied positional parameters that come after one satisfied by
// name shift to keyword-only in the residual, since a later positional
// argument can no longer reach them.
//
// Pure function of its inputs; no side effects.
func SignatureFor(sig Signature, args []any, kwargs KWArgs) (Signature, error) {
	nPos := len(sig.Positional)
	nArgs := len(args)
	if nArgs > nPos && sig.Variadic == "" {
		return Signature{}, bindErrorf(
			"takes %d positional arguments but %d were given", nPos, nArgs)
	}
	consumed := nArgs
	if consumed > nPos {
		consumed = nPos
	}

	byName := make(map[string]bool, len(kwargs))
	for _, name := range sortedNames(kwargs) {
		switch idx := paramIndex(sig.Positional, name); {
		case idx >= 0 && idx < consumed:
			return Signature{}, bindErrorf("got multiple values for argument '%s'", name)
		case idx >= 0:
			byName[name] = true
		case paramIndex(sig.KeywordOnly, name) >= 0:
			byName[name] = true
		default:
			return Signature{}, bindErrorf("got an unexpected keyword argument '%s'", name)
		}
	}

	residual := Signature{Variadic: sig.Variadic}
	shifted := false
	for _, p := range sig.Positional[consumed:] {
		if byName[p.Name] {
			shifted = true
			continue
		}
		if shifted {
			residual.KeywordOnly = append(residual.KeywordOnly, p)
		} else {
			residual.Positional = append(residual.Positional, p)
		}
	}
	for _, p := range sig.KeywordOnly {
		if !byName[p.Name] {
			residual.KeywordOnly = append(residual.KeywordOnly, p)
		}
	}
	return residual, nil
}

// Advance is the incremental updater: given a previously computed
// residual and a newly supplied argument delta, it derives the next
// residual without going back to the original callable. A residual is
// itself a Signature, so the binding rules are exactly SignatureFor's;
// the two may never disagree on Required.
func (s Signature) Advance(args []any, kwargs KWArgs) (Signature, error) {
	return SignatureFor(s, args, kwargs)
}

// bindCall resolves a complete invocation against a declared signature.
// On success it returns the normalized binding: every positional
// parameter's value in declared order (named arguments resolved to
// their positions, defaults filled), variadic rest appended, and the
// keyword-only values as a map with defaults filled. Any structural
// problem, including a missing required parameter, comes back as a
// *CallError carrying the target's name.
func bindCall(fn string, sig Signature, args []any, kwargs KWArgs) ([]any, KWArgs, error) {
	nPos := len(sig.Positional)
	if len(args) > nPos && sig.Variadic == "" {
		return nil, nil, callErrorFrom(fn, bindErrorf(
			"takes %d positional arguments but %d were given", nPos, len(args)))
	}

	for _, name := range sortedNames(kwargs) {
		idx := paramIndex(sig.Positional, name)
		if idx >= 0 && idx < len(args) {
			return nil, nil, callErrorFrom(fn,
				bindErrorf("got multiple values for argument '%s'", name))
		}
		if idx < 0 && paramIndex(sig.KeywordOnly, name) < 0 {
			return nil, nil, callErrorFrom(fn,
				bindErrorf("got an unexpected keyword argument '%s'", name))
		}
	}

	values := make([]any, 0, nPos)
	for i, p := range sig.Positional {
		switch {
		case i < len(args):
			values = append(values, args[i])
		default:
			v, ok := kwargs[p.Name]
			if !ok {
				if !p.HasDefault {
					return nil, nil, callErrorFrom(fn,
						bindErrorf("missing required argument '%s'", p.Name))
				}
				v = p.Default
			}
			values = append(values, v)
		}
	}
	if len(args) > nPos {
		values = append(values, args[nPos:]...)
	}

	var kwonly KWArgs
	if len(sig.KeywordOnly) > 0 {
		kwonly = make(KWArgs, len(sig.KeywordOnly))
		for _, p := range sig.KeywordOnly {
			v, ok := kwargs[p.Name]
			if !ok {
				if !p.HasDefault {
					return nil, nil, callErrorFrom(fn,
						bindErrorf("missing required keyword argument '%s'", p.Name))
				}
				v = p.Default
			}
			kwonly[p.Name] = v
		}
	}
	return values, kwonly, nil
}

func paramIndex(params []Param, name string) int {
	for i, p := range params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func sortedNames(kwargs KWArgs) []string {
	if len(kwargs) == 0 {
		return nil
	}
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
