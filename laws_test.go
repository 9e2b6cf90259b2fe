package currycore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// combine is an order-sensitive 4-argument computation, so any argument
// misplacement shows up in the result.
func combine(a, b, c, d int) int {
	return a + 2*b + 3*c + 4*d
}

// TestLaw_ApplicationAssociativity: splitting a full argument list into
// any sequence of consecutive non-empty groups and feeding the groups
// in order yields the same result as the direct call.
func TestLaw_ApplicationAssociativity(t *testing.T) {
	f, err := Func(combine, "a", "b", "c", "d")
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		args := []any{
			rapid.Int().Draw(t, "a"),
			rapid.Int().Draw(t, "b"),
			rapid.Int().Draw(t, "c"),
			rapid.Int().Draw(t, "d"),
		}
		want := combine(args[0].(int), args[1].(int), args[2].(int), args[3].(int))

		var v any = MustCurry(f)
		for i := 0; i < len(args); {
			cur, ok := v.(*Curried)
			require.True(t, ok, "intermediate must stay curried until all arguments arrive")
			size := rapid.IntRange(1, len(args)-i).Draw(t, "group")
			v, err = cur.Call(args[i:i+size], nil)
			require.NoError(t, err)
			i += size
		}
		require.Equal(t, want, v)
	})
}

// TestLaw_TransparencyOnFullApplication: a single all-arguments call
// through curry equals the direct call.
func TestLaw_TransparencyOnFullApplication(t *testing.T) {
	c := MustCurry(combine)

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int().Draw(t, "a")
		b := rapid.Int().Draw(t, "b")
		x := rapid.Int().Draw(t, "c")
		d := rapid.Int().Draw(t, "d")

		v, err := c.Invoke(a, b, x, d)
		require.NoError(t, err)
		require.Equal(t, combine(a, b, x, d), v)
	})
}

// TestLaw_FailureTransparency: with a full, structurally valid argument
// set whose values make the target fail internally, the curried call
// surfaces the identical error.
func TestLaw_FailureTransparency(t *testing.T) {
	c := MustCurry(div)

	rapid.Check(t, func(t *rapid.T) {
		num := rapid.Int().Draw(t, "num")

		_, err := c.Invoke(num, 0)
		require.ErrorIs(t, err, errDivZero)

		_, err2 := c.Invoke(num)
		require.NoError(t, err2, "partial application must not fail")
	})
}

// TestLaw_MetadataStability: every intermediate in a curry chain
// reports the original name and declared signature.
func TestLaw_MetadataStability(t *testing.T) {
	f, err := Func(combine, "a", "b", "c", "d")
	require.NoError(t, err)
	declared := f.Signature().String()

	rapid.Check(t, func(t *rapid.T) {
		cur := MustCurry(f)
		for i := 0; i < 3; i++ {
			require.Equal(t, "combine", cur.Name())
			require.Equal(t, declared, cur.Signature().String())
			v, err := cur.Invoke(rapid.Int().Draw(t, "arg"))
			require.NoError(t, err)
			cur = v.(*Curried)
		}
	})
}

// TestLaw_UpdaterEquivalence: the incremental updater may never
// disagree with the from-scratch inspector, neither on validity nor on
// the required count.
func TestLaw_UpdaterEquivalence(t *testing.T) {
	full := Signature{
		Positional: []Param{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
			{Name: "d", Default: 4, HasDefault: true},
		},
		KeywordOnly: []Param{{Name: "k"}, {Name: "m", Default: 0, HasDefault: true}},
	}

	rapid.Check(t, func(t *rapid.T) {
		n1 := rapid.IntRange(0, 3).Draw(t, "n1")
		n2 := rapid.IntRange(0, 3).Draw(t, "n2")
		kw := KWArgs{}
		if rapid.Bool().Draw(t, "kwC") {
			kw["c"] = 1
		}
		if rapid.Bool().Draw(t, "kwK") {
			kw["k"] = 2
		}

		args1 := make([]any, n1)
		args2 := make([]any, n2)
		flatArgs := append(append([]any{}, args1...), args2...)

		flat, flatErr := SignatureFor(full, flatArgs, kw)

		mid, err := SignatureFor(full, args1, nil)
		require.NoError(t, err, "a 0..3 positional prefix always binds")

		inc, incErr := mid.Advance(args2, kw)
		if flatErr != nil {
			require.Error(t, incErr, "updater accepted a binding the inspector rejects")
			return
		}
		require.NoError(t, incErr, "updater rejected a binding the inspector accepts")
		require.Equal(t, flat.Required(), inc.Required())
	})
}
