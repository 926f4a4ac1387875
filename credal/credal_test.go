package credal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/equaeghe/murasyp/credal"
	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/massfuncs"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

func mustPMFunc(t *testing.T, m map[vects.Atom]string) massfuncs.PMFunc {
	t.Helper()
	p, err := massfuncs.ParsePMFunc(m)
	require.NoError(t, err)
	return p
}

func twoPointSet(t *testing.T) credal.CredalSet {
	t.Helper()
	p := mustPMFunc(t, map[vects.Atom]string{"a": "3/100", "b": "7/100", "c": "9/10"})
	q := mustPMFunc(t, map[vects.Atom]string{"a": "7/100", "b": "3/100", "c": "9/10"})
	return credal.New(p, q)
}

func TestFromAtoms(t *testing.T) {
	k := credal.FromAtoms([]vects.Atom{"a", "b", "c"})
	require.Equal(t, 3, k.Len())
	require.True(t, k.Contains(massfuncs.Degenerate("b")))
	require.Equal(t, []vects.Atom{"a", "b", "c"}, k.PSpace())
}

func TestLowerUpperPrev(t *testing.T) {
	k := twoPointSet(t)
	f := gambles.New(map[vects.Atom]math.Rat{
		"a": math.NewRatFromInt64(-1), "b": math.OneRat(), "c": math.ZeroRat(),
	})

	lo, err := k.LowerPrev(f)
	require.NoError(t, err)
	require.Equal(t, "-1/25", lo.String())

	hi, err := k.UpperPrev(f)
	require.NoError(t, err)
	require.Equal(t, "1/25", hi.String())
}

func TestConditionalPrevisionsViaGambleDomain(t *testing.T) {
	// restricting the gamble to its support conditions on {a, b}
	k := twoPointSet(t)
	f := gambles.New(map[vects.Atom]math.Rat{
		"a": math.NewRatFromInt64(-1), "b": math.OneRat(),
	})

	lo, err := k.LowerPrev(f)
	require.NoError(t, err)
	require.Equal(t, "-2/5", lo.String())

	hi, err := k.UpperPrev(f)
	require.NoError(t, err)
	require.Equal(t, "2/5", hi.String())
}

func TestCondition(t *testing.T) {
	k := twoPointSet(t)
	cond, err := k.Condition([]vects.Atom{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, 2, cond.Len())

	f := gambles.New(map[vects.Atom]math.Rat{
		"a": math.NewRatFromInt64(-1), "b": math.OneRat(),
	})
	lo, err := cond.LowerPrev(f)
	require.NoError(t, err)
	require.Equal(t, "-2/5", lo.String())
}

func TestConditionZeroMassFallsBackToVacuous(t *testing.T) {
	k := credal.New(mustPMFunc(t, map[vects.Atom]string{"a": "1"}))
	cond, err := k.Condition([]vects.Atom{"b", "c"})
	require.NoError(t, err)
	require.Equal(t, 2, cond.Len())
	require.True(t, cond.Contains(massfuncs.Degenerate("b")))
	require.True(t, cond.Contains(massfuncs.Degenerate("c")))
}

func TestEmptyCredalSet(t *testing.T) {
	k := credal.New()
	_, err := k.LowerPrev(gambles.Indicator([]vects.Atom{"a"}))
	require.ErrorIs(t, err, credal.ErrEmptyCredalSet)
	_, err = k.Condition([]vects.Atom{"a"})
	require.ErrorIs(t, err, credal.ErrEmptyCredalSet)
}

func TestDiscardRedundant(t *testing.T) {
	k := credal.FromAtoms([]vects.Atom{"a", "b", "c"})
	center, err := massfuncs.NormalizedPMFunc(map[vects.Atom]math.Rat{
		"a": math.OneRat(), "b": math.OneRat(), "c": math.OneRat(),
	})
	require.NoError(t, err)
	k = k.Add(center)
	require.Equal(t, 4, k.Len())

	pruned, err := k.DiscardRedundant()
	require.NoError(t, err)
	require.Equal(t, 3, pruned.Len())
	require.False(t, pruned.Contains(center))
	require.True(t, pruned.Contains(massfuncs.Degenerate("a")))
}

func TestDiscardRedundantKeepsVertices(t *testing.T) {
	k := credal.FromAtoms([]vects.Atom{"a", "b"})
	pruned, err := k.DiscardRedundant()
	require.NoError(t, err)
	require.Equal(t, 2, pruned.Len())
}

func TestAddDiscardImmutability(t *testing.T) {
	k := credal.New(massfuncs.Degenerate("a"))
	bigger := k.Add(massfuncs.Degenerate("b"))
	require.Equal(t, 1, k.Len())
	require.Equal(t, 2, bigger.Len())

	smaller := bigger.Discard(massfuncs.Degenerate("a"))
	require.Equal(t, 2, bigger.Len())
	require.Equal(t, 1, smaller.Len())
}
