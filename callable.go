package currycore

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// ============================================================================
// Callable Surface
// ============================================================================

// KWArgs carries named arguments for an invocation.
type KWArgs map[string]any

// Callable is anything that can be invoked with positional and named
// arguments. The result is whatever the computation produced; the error
// is either a *CallError (the arguments could not be applied to the
// parameters) or the computation's own failure, passed through as is.
type Callable interface {
	Call(args []any, kwargs KWArgs) (any, error)
}

// CallFunc is a functional binding for Callable.
//
// Example:
//
//	sum := CallFunc(func(args []any, kwargs KWArgs) (any, error) {
//	    total := 0
//	    for _, a := range args {
//	        total += a.(int)
//	    }
//	    return total, nil
//	})
type CallFunc func(args []any, kwargs KWArgs) (any, error)

// Call implements Callable.
func (f CallFunc) Call(args []any, kwargs KWArgs) (any, error) {
	return f(args, kwargs)
}

// Optional metadata capabilities a Callable may carry. The curry engine
// consults them on the metadata source; absence means empty metadata
// and, for the signature, a fully variadic accept-anything shape.
type named interface{ Name() string }
type documented interface{ Doc() string }
type signatured interface{ Signature() Signature }

// ============================================================================
// Declared Callables
// ============================================================================

// Def is a callable with an explicitly declared parameter list. Go's
// reflection does not expose parameter names or defaults, so anything
// richer than "n positional parameters" is declared up front, either
// through the Define builder or by adapting a plain Go func with Func.
//
// Configure a Def fully before handing it to Curry; the builder methods
// mutate in place and are not synchronized.
type Def struct {
	name string
	doc  string
	sig  Signature
	impl CallFunc
}

// Define starts a declared callable named name.
//
//	div := Define("div").
//	    Param("num").
//	    Param("den").
//	    Impl(func(args []any, kwargs KWArgs) (any, error) {
//	        ...
//	    })
func Define(name string) *Def {
	return &Def{name: name}
}

// Param declares a required positional parameter.
func (d *Def) Param(name string) *Def {
	d.sig.Positional = append(d.sig.Positional, Param{Name: name})
	return d
}

// ParamDefault declares a positional parameter with a default value.
func (d *Def) ParamDefault(name string, def any) *Def {
	d.sig.Positional = append(d.sig.Positional, Param{Name: name, Default: def, HasDefault: true})
	return d
}

// KeywordOnly declares a required parameter that can only be supplied
// by name.
func (d *Def) KeywordOnly(name string) *Def {
	d.sig.KeywordOnly = append(d.sig.KeywordOnly, Param{Name: name})
	return d
}

// KeywordOnlyDefault declares a keyword-only parameter with a default.
func (d *Def) KeywordOnlyDefault(name string, def any) *Def {
	d.sig.KeywordOnly = append(d.sig.KeywordOnly, Param{Name: name, Default: def, HasDefault: true})
	return d
}

// Variadic declares a collector for remaining positional arguments.
func (d *Def) Variadic(name string) *Def {
	d.sig.Variadic = name
	return d
}

// Default attaches a default value to an already declared parameter.
// It panics on an unknown name; that is a programming error in the
// declaration, not a runtime condition.
func (d *Def) Default(name string, def any) *Def {
	if i := paramIndex(d.sig.Positional, name); i >= 0 {
		d.sig.Positional[i].Default = def
		d.sig.Positional[i].HasDefault = true
		return d
	}
	if i := paramIndex(d.sig.KeywordOnly, name); i >= 0 {
		d.sig.KeywordOnly[i].Default = def
		d.sig.KeywordOnly[i].HasDefault = true
		return d
	}
	panic(fmt.Sprintf("currycore: %s has no parameter '%s'", d.name, name))
}

// WithName renames the callable. Useful when re-branding an adapted
// func the way a wrapping decorator would.
func (d *Def) WithName(name string) *Def {
	d.name = name
	return d
}

// WithDoc attaches documentation text.
func (d *Def) WithDoc(doc string) *Def {
	d.doc = doc
	return d
}

// Impl supplies the implementation. The impl receives the normalized
// binding: every positional parameter's value in declared order with
// named arguments resolved to their positions and defaults filled,
// variadic rest appended, and the keyword-only values (defaults filled)
// as the kwargs map.
func (d *Def) Impl(fn CallFunc) *Def {
	d.impl = fn
	return d
}

// Name reports the declared name.
func (d *Def) Name() string { return d.name }

// Doc reports the documentation text.
func (d *Def) Doc() string { return d.doc }

// Signature reports the declared parameter shape.
func (d *Def) Signature() Signature { return d.sig }

// String renders the callable as name plus declared signature.
func (d *Def) String() string {
	return d.name + d.sig.String()
}

// Call implements Callable: bind, normalize, then run the impl. A
// binding failure is a *CallError and the impl is never entered.
func (d *Def) Call(args []any, kwargs KWArgs) (any, error) {
	if d.impl == nil {
		panic(fmt.Sprintf("currycore: %s has no implementation", d.name))
	}
	values, kwonly, err := bindCall(d.name, d.sig, args, kwargs)
	if err != nil {
		return nil, err
	}
	return d.impl(values, kwonly)
}

// ============================================================================
// Plain Go Func Adapter
// ============================================================================

// Func adapts a plain Go func into a declared callable. Parameter count
// and variadicness come from reflection; names are supplied by the
// caller or synthesized as arg1..argN (one extra name, when given,
// names the variadic collector, which otherwise is "rest"). The func's
// own name is recovered from the runtime where possible.
//
// Result conventions follow Go: a trailing error-typed result is split
// off as the call's error, no results yield nil, and two or more
// non-error results come back as []any.
//
// Argument values must be assignable to the declared parameter types; a
// mismatch is reported as a *CallError, which under currying behaves
// like any other structural call failure.
func Func(fn any, names ...string) (*Def, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, &NotCallableError{typeName: typeNameOf(fn)}
	}
	sig, err := deriveSignature(v.Type(), names)
	if err != nil {
		return nil, err
	}
	return adaptFunc(v, sig), nil
}

// deriveSignature builds the declared shape of a func type: one
// positional Param per parameter, names supplied or synthesized, and
// the collector name when the func is variadic.
func deriveSignature(t reflect.Type, names []string) (Signature, error) {
	variadic := t.IsVariadic()
	posCount := t.NumIn()
	if variadic {
		posCount--
	}
	maxNames := posCount
	if variadic {
		maxNames++
	}
	if len(names) > maxNames {
		return Signature{}, fmt.Errorf("currycore: %d parameter names for %d parameters", len(names), maxNames)
	}

	var sig Signature
	for i := 0; i < posCount; i++ {
		name := fmt.Sprintf("arg%d", i+1)
		if i < len(names) {
			name = names[i]
		}
		sig.Positional = append(sig.Positional, Param{Name: name})
	}
	if variadic {
		collector := "rest"
		if len(names) > posCount {
			collector = names[posCount]
		}
		sig.Variadic = collector
	}
	return sig, nil
}

// adaptFunc wraps a func value in a Def whose impl conforms the
// normalized binding to the func's parameter types and reflect-calls it.
func adaptFunc(v reflect.Value, sig Signature) *Def {
	t := v.Type()
	posCount := len(sig.Positional)
	d := &Def{name: funcName(v), sig: sig}
	d.impl = func(values []any, _ KWArgs) (any, error) {
		in := make([]reflect.Value, 0, len(values))
		for i, val := range values {
			var pt reflect.Type
			if i < posCount {
				pt = t.In(i)
			} else {
				pt = t.In(t.NumIn() - 1).Elem()
			}
			rv, err := conform(d.name, i, val, pt)
			if err != nil {
				return nil, err
			}
			in = append(in, rv)
		}
		return splitResults(v.Call(in))
	}
	return d
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// conform checks that val can be passed where pt is expected.
func conform(fn string, i int, val any, pt reflect.Type) (reflect.Value, error) {
	if val == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
			reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, BadCall(fn, "argument %d: cannot use nil as %s", i+1, pt)
	}
	rv := reflect.ValueOf(val)
	if !rv.Type().AssignableTo(pt) {
		return reflect.Value{}, BadCall(fn, "argument %d: cannot use %s as %s", i+1, rv.Type(), pt)
	}
	return rv, nil
}

func splitResults(out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && out[n-1].Type().Implements(errorType) {
		if e := out[n-1].Interface(); e != nil {
			err = e.(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		vals := make([]any, len(out))
		for i, o := range out {
			vals[i] = o.Interface()
		}
		return vals, err
	}
}

func funcName(v reflect.Value) string {
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		name := strings.TrimSuffix(f.Name(), "-fm")
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		if name != "" {
			return name
		}
	}
	return "func"
}

func typeNameOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// ============================================================================
// Small Combinators
// ============================================================================

// Identity returns its argument unchanged.
func Identity[T any](v T) T {
	return v
}

// Constant returns a callable that ignores its arguments and always
// produces v.
func Constant(v any) CallFunc {
	return func([]any, KWArgs) (any, error) {
		return v, nil
	}
}
