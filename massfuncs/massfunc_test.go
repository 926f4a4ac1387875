package massfuncs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/massfuncs"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

func TestUMFunc(t *testing.T) {
	m, err := massfuncs.ParseUMFunc(map[vects.Atom]string{"a": "1/2", "b": "3/2", "c": "0"})
	require.NoError(t, err)

	// zero entries are trimmed away
	require.Equal(t, []vects.Atom{"a", "b"}, m.Domain())
	require.Equal(t, "2", m.Mass().String())

	_, err = massfuncs.ParseUMFunc(map[vects.Atom]string{"a": "-1", "b": "2"})
	require.ErrorIs(t, err, massfuncs.ErrNegativeValue)
}

func TestUniform(t *testing.T) {
	m, err := massfuncs.Uniform([]vects.Atom{"a", "b", "c"})
	require.NoError(t, err)
	require.True(t, m.Mass().Equal(math.OneRat()))
	require.Equal(t, "1/3", m.Get("a").String())

	_, err = massfuncs.Uniform(nil)
	require.ErrorIs(t, err, massfuncs.ErrNoElements)
}

func TestPMFuncStrictConstruction(t *testing.T) {
	p, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "3/10", "b": "7/10"})
	require.NoError(t, err)
	require.True(t, p.Mass().Equal(math.OneRat()))

	_, err = massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "1/2", "b": "1/4"})
	require.ErrorIs(t, err, massfuncs.ErrMassMismatch)

	_, err = massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "-1", "b": "2"})
	require.ErrorIs(t, err, massfuncs.ErrNegativeValue)
}

func TestNormalizedPMFunc(t *testing.T) {
	p, err := massfuncs.NormalizedPMFunc(map[vects.Atom]math.Rat{
		"a": math.MustNewRatFromString("0.06"),
		"b": math.MustNewRatFromString("0.14"),
		"c": math.MustNewRatFromString("1.8"),
		"d": math.ZeroRat(),
	})
	require.NoError(t, err)
	require.Equal(t, []vects.Atom{"a", "b", "c"}, p.Domain())
	require.Equal(t, "3/100", p.Get("a").String())
	require.Equal(t, "7/100", p.Get("b").String())
	require.Equal(t, "9/10", p.Get("c").String())

	_, err = massfuncs.NormalizedPMFunc(map[vects.Atom]math.Rat{"a": math.ZeroRat()})
	require.ErrorIs(t, err, vects.ErrZeroMass)
}

func TestCondition(t *testing.T) {
	p, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "3/100", "b": "7/100", "c": "9/10"})
	require.NoError(t, err)

	cond, err := p.Condition([]vects.Atom{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, "3/10", cond.Get("a").String())
	require.Equal(t, "7/10", cond.Get("b").String())

	_, err = p.Condition([]vects.Atom{"z"})
	require.ErrorIs(t, err, massfuncs.ErrZeroMassEvent)
}

func TestExpectationConditionsOnGambleDomain(t *testing.T) {
	p, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "1/3", "b": "1/6", "c": "1/2"})
	require.NoError(t, err)

	f, err := gambles.Parse(map[vects.Atom]string{"a": "1", "b": "-1", "c": "0"})
	require.NoError(t, err)

	ev, err := p.Expectation(f)
	require.NoError(t, err)
	require.Equal(t, "1/6", ev.String())

	// restricting the gamble to its support turns this into a conditional
	// expectation on {a, b}
	ev, err = p.Expectation(f.Restrict(f.Support()))
	require.NoError(t, err)
	require.Equal(t, "1/3", ev.String())
}

func TestConvex(t *testing.T) {
	p := massfuncs.Degenerate("a")
	q := massfuncs.Degenerate("b")

	half := math.MustNewRatFromString("1/2")
	mix, err := massfuncs.Convex([]massfuncs.PMFunc{p, q}, []math.Rat{half, half})
	require.NoError(t, err)
	require.Equal(t, "1/2", mix.Get("a").String())
	require.Equal(t, "1/2", mix.Get("b").String())

	_, err = massfuncs.Convex([]massfuncs.PMFunc{p, q}, []math.Rat{half, math.OneRat()})
	require.ErrorIs(t, err, massfuncs.ErrMassMismatch)

	_, err = massfuncs.Convex([]massfuncs.PMFunc{p, q},
		[]math.Rat{math.NewRatFromInt64(-1), math.NewRatFromInt64(2)})
	require.ErrorIs(t, err, massfuncs.ErrNegativeValue)

	_, err = massfuncs.Convex(nil, nil)
	require.ErrorIs(t, err, massfuncs.ErrNoElements)
}

func TestPMFuncProperties(t *testing.T) {
	t.Run("MassIsExactlyOne", rapid.MakeCheck(testPMFuncUnitMass))
	t.Run("ConvexStaysPM", rapid.MakeCheck(testConvexStaysPM))
}

var genPMFunc *rapid.Generator[massfuncs.PMFunc] = rapid.Custom(func(t *rapid.T) massfuncs.PMFunc {
	atoms := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-e]`), 1, 5, rapid.ID[string]).Draw(t, "atoms")
	masses := make(map[vects.Atom]math.Rat, len(atoms))
	total := math.ZeroRat()
	for _, x := range atoms {
		p := rapid.Int64Range(0, 30).Draw(t, "p"+x)
		q := rapid.Int64Range(1, 9).Draw(t, "q"+x)
		r, err := math.NewRatFrac(p, q)
		if err != nil {
			t.Fatalf("NewRatFrac: %v", err)
		}
		masses[x] = r
		total = total.Add(r)
	}
	if total.IsZero() {
		masses[atoms[0]] = math.OneRat()
	}
	pm, err := massfuncs.NormalizedPMFunc(masses)
	if err != nil {
		t.Fatalf("NormalizedPMFunc: %v", err)
	}
	return pm
})

func testPMFuncUnitMass(t *rapid.T) {
	p := genPMFunc.Draw(t, "p")
	require.True(t, p.Mass().Equal(math.OneRat()))
	require.True(t, p.Vector().IsNonNegative())
}

func testConvexStaysPM(t *rapid.T) {
	p := genPMFunc.Draw(t, "p")
	q := genPMFunc.Draw(t, "q")
	num := rapid.Int64Range(0, 10).Draw(t, "num")
	w, err := math.NewRatFrac(num, 10)
	require.NoError(t, err)
	mix, err := massfuncs.Convex([]massfuncs.PMFunc{p, q}, []math.Rat{w, math.OneRat().Sub(w)})
	require.NoError(t, err)
	require.True(t, mix.Mass().Equal(math.OneRat()))
}
