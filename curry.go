package currycore

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ============================================================================
// Curry Engine
// ============================================================================

// Curried is a callable wrapping one partial binding: the original
// target plus the positional and named arguments accumulated so far.
// It is an immutable snapshot; every curry step allocates a fresh one,
// so distinct Curried values derived from the same original may be
// invoked concurrently.
//
// Name, Doc and Signature delegate to the original target, never to the
// partial binding, so an intermediate deep in a curry chain still
// reports the original function's identity and declared shape.
type Curried struct {
	target   Callable
	args     []any
	kwargs   KWArgs
	residual Signature
}

// Curry turns a target into a curried value. The target may be a
// Callable (including a *Def or another *Curried, which is returned as
// is) or a plain Go func, which is adapted with Func. Anything else
// fails with *NotCallableError before any call attempt.
func Curry(target any) (*Curried, error) {
	switch t := target.(type) {
	case *Curried:
		return t, nil
	case Callable:
		return &Curried{target: t, residual: declaredSignature(t)}, nil
	default:
		d, err := Func(target)
		if err != nil {
			return nil, err
		}
		return &Curried{target: d, residual: d.sig}, nil
	}
}

// MustCurry is Curry that panics on a non-callable target.
func MustCurry(target any) *Curried {
	c, err := Curry(target)
	if err != nil {
		panic("currycore: " + err.Error())
	}
	return c
}

// declaredSignature reads the target's declared shape. A callable that
// declares nothing is treated as fully variadic: it structurally
// accepts any positional arguments, so it never curries and every
// failure passes through.
func declaredSignature(t Callable) Signature {
	if s, ok := t.(signatured); ok {
		return s.Signature()
	}
	return Signature{Variadic: "args"}
}

// Call invokes the curried value with more arguments.
//
// The fast path calls the original target with the full accumulated
// binding; a normal return comes back raw, with no signature work at
// all. On a *CallError the accumulated binding is inspected: if the
// binding itself is invalid the original failure is returned; if
// required parameters remain, a new Curried holding the enlarged
// binding is returned as the result (never as an error); if nothing
// remains required, the failure must have come from inside the target
// and is returned unchanged. Failures outside the *CallError category
// propagate immediately, uninspected.
func (c *Curried) Call(args []any, kwargs KWArgs) (any, error) {
	allArgs := concatArgs(c.args, args)
	allKwargs := mergeKWArgs(c.kwargs, kwargs)

	res, err := c.target.Call(allArgs, allKwargs)
	if err == nil {
		return res, nil
	}
	var ce *CallError
	if !errors.As(err, &ce) {
		return nil, err
	}

	// A keyword supplied again in a later step overrides the earlier
	// value; the shape of the binding does not change, so the residual
	// only advances over keys it has not consumed yet.
	residual, berr := c.residual.Advance(args, freshKeys(c.kwargs, kwargs))
	if berr != nil {
		return nil, err
	}
	if residual.Required() > 0 {
		return &Curried{
			target:   c.target,
			args:     allArgs,
			kwargs:   allKwargs,
			residual: residual,
		}, nil
	}
	return nil, err
}

// Invoke is positional-only sugar for Call.
func (c *Curried) Invoke(args ...any) (any, error) {
	return c.Call(args, nil)
}

// Name reports the original target's name.
func (c *Curried) Name() string {
	if n, ok := c.target.(named); ok {
		return n.Name()
	}
	return ""
}

// Doc reports the original target's documentation.
func (c *Curried) Doc() string {
	if d, ok := c.target.(documented); ok {
		return d.Doc()
	}
	return ""
}

// Signature reports the original target's declared signature. It is
// stable across an arbitrarily long curry chain; for the shape still
// awaiting arguments, see Remaining.
func (c *Curried) Signature() Signature {
	return declaredSignature(c.target)
}

// Remaining reports the residual signature: the parameters the
// accumulated binding leaves unbound.
func (c *Curried) Remaining() Signature {
	return c.residual
}

// String renders the partially-applied call this value represents:
// addThree(1, 2), named arguments sorted and last. With nothing bound
// yet it renders the original, addThree(x, y, z).
func (c *Curried) String() string {
	name := c.Name()
	if name == "" {
		name = "func"
	}
	if len(c.args) == 0 && len(c.kwargs) == 0 {
		if s, ok := c.target.(fmt.Stringer); ok {
			return s.String()
		}
		return name + c.Signature().String()
	}
	parts := make([]string, 0, len(c.args)+len(c.kwargs))
	for _, a := range c.args {
		parts = append(parts, renderValue(a))
	}
	for _, k := range sortedNames(c.kwargs) {
		parts = append(parts, k+"="+renderValue(c.kwargs[k]))
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// Compose returns a curried value computing c(other(...)). It carries
// other's remaining signature, so it curries exactly the way other
// does, and c receives other's single result as its next argument.
func (c *Curried) Compose(other *Curried) *Curried {
	inner := other.Remaining()
	d := &Def{
		name: "compose(" + orFunc(c.Name()) + ", " + orFunc(other.Name()) + ")",
		sig:  inner,
	}
	d.impl = func(values []any, kwonly KWArgs) (any, error) {
		r, err := other.Call(values, kwonly)
		if err != nil {
			return nil, err
		}
		return c.Call([]any{r}, nil)
	}
	return &Curried{target: d, residual: d.sig}
}

func orFunc(name string) string {
	if name == "" {
		return "func"
	}
	return name
}

func concatArgs(a, b []any) []any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func mergeKWArgs(a, b KWArgs) KWArgs {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(KWArgs, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// freshKeys drops from delta the keys an earlier step already supplied.
func freshKeys(accumulated, delta KWArgs) KWArgs {
	if len(delta) == 0 || len(accumulated) == 0 {
		return delta
	}
	out := make(KWArgs, len(delta))
	for k, v := range delta {
		if _, ok := accumulated[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// ============================================================================
// Signature Cache
// ============================================================================

// SignatureCache reuses reflect-derived signatures across repeated
// Curry calls on the same function. It is explicit and optional; there
// is no process-wide cache. Safe for concurrent use.
//
// Closures created from the same function literal share a code pointer
// and an identical declared shape, so sharing the signature between
// them is safe; the adapted implementation is always built fresh for
// the specific value.
type SignatureCache struct {
	mu   sync.RWMutex
	sigs map[uintptr]Signature
}

// NewSignatureCache returns an empty cache.
func NewSignatureCache() *SignatureCache {
	return &SignatureCache{sigs: make(map[uintptr]Signature)}
}

// Curry behaves like the package-level Curry, consulting the cache when
// adapting a plain Go func.
func (sc *SignatureCache) Curry(target any) (*Curried, error) {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Curry(target)
	}
	key := v.Pointer()
	sc.mu.RLock()
	sig, ok := sc.sigs[key]
	sc.mu.RUnlock()
	if !ok {
		var err error
		sig, err = deriveSignature(v.Type(), nil)
		if err != nil {
			return nil, err
		}
		sc.mu.Lock()
		sc.sigs[key] = sig
		sc.mu.Unlock()
	}
	d := adaptFunc(v, sig)
	return &Curried{target: d, residual: sig}, nil
}

// Len reports how many signatures the cache holds.
func (sc *SignatureCache) Len() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.sigs)
}
