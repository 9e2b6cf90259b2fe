package currycore

import "fmt"

// ============================================================================
// Error Taxonomy
// ============================================================================

// NotCallableError reports that a value handed to Curry cannot be
// invoked. It is raised at construction time, before any call attempt.
type NotCallableError struct {
	typeName string
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("'%s' value is not callable", e.typeName)
}

// TypeName returns the Go type name of the offending value.
func (e *NotCallableError) TypeName() string {
	return e.typeName
}

// CallError is the "call did not succeed structurally" category: the
// arguments supplied to an invocation could not be applied to the
// target's parameters. Adapters produce it for arity and binding
// problems; a Callable may also return one from its own body, which is
// exactly the ambiguity the curry engine disambiguates.
type CallError struct {
	fn     string
	reason string
	cause  error
}

// BadCall builds a CallError for the named target.
func BadCall(fn, format string, args ...any) *CallError {
	return &CallError{fn: fn, reason: fmt.Sprintf(format, args...)}
}

func (e *CallError) Error() string {
	if e.fn == "" {
		return e.reason
	}
	return e.fn + ": " + e.reason
}

// Fn returns the name of the target the call was aimed at.
func (e *CallError) Fn() string {
	return e.fn
}

// Unwrap exposes the BindError this CallError was converted from, if any.
func (e *CallError) Unwrap() error {
	return e.cause
}

// BindError is the signature inspector's invalid-binding signal. The
// curry engine never surfaces it: an invalid binding always results in
// the original call failure being returned instead.
type BindError struct {
	reason string
}

func bindErrorf(format string, args ...any) *BindError {
	return &BindError{reason: fmt.Sprintf(format, args...)}
}

func (e *BindError) Error() string {
	return e.reason
}

// callErrorFrom converts an inspector failure into the call-failure
// category, keeping the binding detail reachable through Unwrap.
func callErrorFrom(fn string, bind *BindError) *CallError {
	return &CallError{fn: fn, reason: bind.reason, cause: bind}
}
