/*
Package currycore provides adaptive partial application (auto-currying)
for Go callables.

# Overview

Currycore turns a multi-parameter computation into a value that can be
invoked one or more arguments at a time. When a call supplies too few
arguments, the result is a new callable holding the arguments so far;
once enough arguments have arrived, the underlying computation runs and
its raw result comes back. The caller never asks "is this complete?";
the engine decides, using only the target's declared call signature.

# Quick Example

	add := currycore.MustCurry(func(x, y, z int) int { return x + y + z })

	v, _ := add.Invoke(1, 2, 3) // 6, direct call, no currying
	v, _ = add.Invoke(1)        // a new curried value awaiting y and z
	v, _ = v.(*currycore.Curried).Invoke(2)
	v, _ = v.(*currycore.Curried).Invoke(3) // 6

# The Disambiguation Problem

A call that "didn't work" has two very different causes: the invocation
was structurally incomplete or invalid, or the computation itself failed
after receiving everything it needed. Naive currying conflates the two
and silently returns a partially-applied value when the real cause was
an internal error. Currycore keeps them apart:

 1. Fast path: the target is called directly with all accumulated
    arguments. Success returns the raw result; nothing is inspected.
 2. On a structural call failure (*CallError), the signature inspector
    rebinds the accumulated arguments against the declared signature.
    If required parameters remain, a new curried value is returned.
    If the binding itself is invalid, or nothing remains required, the
    original failure is returned unchanged: it came from inside the
    target, and the caller sees exactly what a direct call would show.
 3. Any failure outside the structural category passes through
    immediately, uninspected. Panics are never recovered.

# Declaring Signatures

Go does not expose parameter names or defaults through reflection, so
signatures richer than "n positional parameters" are declared:

	greet := currycore.Define("greet").
		Param("name").
		ParamDefault("greeting", "hello").
		KeywordOnlyDefault("punct", "!").
		Impl(func(args []any, kwargs currycore.KWArgs) (any, error) {
			return fmt.Sprintf("%s, %s%s", args[1], args[0], kwargs["punct"]), nil
		})

Plain Go funcs are adapted automatically by Curry, or explicitly with
Func when parameter names matter:

	sub, _ := currycore.Func(func(x, y int) int { return x - y }, "x", "y")
	c := currycore.MustCurry(sub)
	v, _ := c.Call(nil, currycore.KWArgs{"y": 3}) // curried, x still required

# Metadata Stability

Every curried intermediate delegates Name, Doc and Signature to the
original, unbound target, so a three-step chain over "addThree" still
reports "addThree" with the full declared signature. Printing a curried
value renders the partially-applied call it represents: addThree(1, 2).

# Available Types

Core:
  - Callable, CallFunc: the invocation capability and its functional binding
  - Signature, Param: declared parameter shape and residual computation
  - Def: builder for declared callables; Func adapts plain Go funcs
  - Curried: the curry engine's value; Curry / MustCurry entry points
  - SignatureCache: explicit, optional cache for reflect-derived signatures

Errors:
  - NotCallableError: construction-time, target cannot be invoked
  - CallError: the "call did not succeed structurally" category
  - BindError: inspector-internal invalid-binding signal

Combinators:
  - Compose on Curried values, Identity, Constant

# What Currying Does Not Do

Currying does not memoize, does not type-check beyond argument binding,
and does not make a computation deterministic or side-effect free. A
blocking target makes the corresponding call block; the engine adds no
timeouts of its own.

# Package Import

	import cc "github.com/Pure-Company/currycore"

	// Or full import
	import "github.com/Pure-Company/currycore"
*/
package currycore
