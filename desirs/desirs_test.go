package desirs_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/equaeghe/murasyp/credal"
	"github.com/equaeghe/murasyp/desirs"
	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/massfuncs"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

func mustGamble(t require.TestingT, m map[vects.Atom]string) gambles.Gamble {
	g, err := gambles.Parse(m)
	require.NoError(t, err)
	return g
}

func mustRay(t require.TestingT, m map[vects.Atom]string) gambles.Ray {
	r, err := gambles.ParseRay(m)
	require.NoError(t, err)
	return r
}

func TestVacuous(t *testing.T) {
	d := desirs.Vacuous([]vects.Atom{"a", "b", "c"})
	require.Equal(t, 3, d.Len())
	require.True(t, d.Contains(gambles.AxisRay("b")))
	require.Equal(t, []vects.Atom{"a", "b", "c"}, d.PSpace())
}

func TestNewRejectsZeroGamble(t *testing.T) {
	_, err := desirs.New(gambles.New(map[vects.Atom]math.Rat{}))
	require.ErrorIs(t, err, desirs.ErrNotAGamble)
}

func TestSetLowerPr(t *testing.T) {
	d, err := desirs.DesirSet{}.SetLowerPr(
		mustGamble(t, map[vects.Atom]string{"a": "1", "b": "1", "c": "0"}),
		math.MustNewRatFromString("2/5"),
	)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	require.True(t, d.Contains(mustRay(t, map[vects.Atom]string{"a": "1", "b": "1", "c": "1"})))
	require.True(t, d.Contains(mustRay(t, map[vects.Atom]string{"a": "1", "b": "1", "c": "-2/3"})))
}

func TestSetUpperPr(t *testing.T) {
	d, err := desirs.DesirSet{}.SetUpperPr(
		mustGamble(t, map[vects.Atom]string{"a": "1", "b": "1", "c": "0"}),
		math.MustNewRatFromString("2/5"),
	)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	require.True(t, d.Contains(mustRay(t, map[vects.Atom]string{"a": "1", "b": "1", "c": "1"})))
	require.True(t, d.Contains(mustRay(t, map[vects.Atom]string{"a": "-1", "b": "-1", "c": "2/3"})))
}

func TestAvoidsSureLoss(t *testing.T) {
	d := desirs.Vacuous([]vects.Atom{"a", "b", "c"})
	d, err := d.Add(mustGamble(t, map[vects.Atom]string{"a": "-1", "b": "-1", "c": "1"}))
	require.NoError(t, err)
	d, err = d.Add(mustGamble(t, map[vects.Atom]string{"a": "1", "b": "-1", "c": "-1"}))
	require.NoError(t, err)

	asl, err := d.AvoidsSureLoss()
	require.NoError(t, err)
	require.True(t, asl)

	d, err = d.Add(mustGamble(t, map[vects.Atom]string{"a": "-1", "b": "1", "c": "-1"}))
	require.NoError(t, err)
	asl, err = d.AvoidsSureLoss()
	require.NoError(t, err)
	require.False(t, asl)
}

func TestAvoidsPartialLoss(t *testing.T) {
	d := desirs.Vacuous([]vects.Atom{"a", "b", "c"})
	d, err := d.Add(mustGamble(t, map[vects.Atom]string{"a": "-1", "b": "-1", "c": "1"}))
	require.NoError(t, err)

	apl, err := d.AvoidsPartialLoss()
	require.NoError(t, err)
	require.True(t, apl)

	d, err = d.Add(mustGamble(t, map[vects.Atom]string{"a": "-1", "b": "1", "c": "-1"}))
	require.NoError(t, err)
	apl, err = d.AvoidsPartialLoss()
	require.NoError(t, err)
	require.False(t, apl)
}

func TestEmptySetTrivia(t *testing.T) {
	var d desirs.DesirSet

	asl, err := d.AvoidsSureLoss()
	require.NoError(t, err)
	require.True(t, asl)

	apl, err := d.AvoidsPartialLoss()
	require.NoError(t, err)
	require.True(t, apl)

	_, err = d.LowerPrev(gambles.AxisRay("a").Gamble())
	require.ErrorIs(t, err, desirs.ErrNoJudgments)

	_, err = d.Credal()
	require.ErrorIs(t, err, desirs.ErrNoJudgments)
}

func TestCoherentClosure(t *testing.T) {
	d, err := desirs.New(
		gambles.AxisRay("a").Gamble(),
		gambles.AxisRay("b").Gamble(),
		mustGamble(t, map[vects.Atom]string{"a": "1", "b": "1"}),
	)
	require.NoError(t, err)

	closed, err := d.CoherentClosure()
	require.NoError(t, err)
	require.Equal(t, 2, closed.Len())
	require.True(t, closed.Contains(gambles.AxisRay("a")))
	require.True(t, closed.Contains(gambles.AxisRay("b")))
	require.False(t, closed.Contains(mustRay(t, map[vects.Atom]string{"a": "1", "b": "1"})))
}

func TestCoherentClosureIdempotent(t *testing.T) {
	d, err := desirs.New(
		mustGamble(t, map[vects.Atom]string{"a": "1", "b": "-1"}),
		mustGamble(t, map[vects.Atom]string{"a": "2", "b": "-2", "c": "0"}),
		gambles.AxisRay("c").Gamble(),
	)
	require.NoError(t, err)

	once, err := d.CoherentClosure()
	require.NoError(t, err)
	twice, err := once.CoherentClosure()
	require.NoError(t, err)

	require.Equal(t, once.Len(), twice.Len())
	for _, r := range once.Elements() {
		require.True(t, twice.Contains(r))
	}
}

// PrevisionSuite works through one judgment set and its derived models.
type PrevisionSuite struct {
	suite.Suite
	d desirs.DesirSet
}

func TestPrevisionSuite(t *testing.T) {
	suite.Run(t, new(PrevisionSuite))
}

func (s *PrevisionSuite) SetupTest() {
	d, err := desirs.New(
		mustGamble(s.T(), map[vects.Atom]string{"a": "-1", "c": "7/90"}),
		mustGamble(s.T(), map[vects.Atom]string{"a": "1", "c": "-1/30"}),
		mustGamble(s.T(), map[vects.Atom]string{"a": "-1", "b": "-1", "c": "1/9"}),
		mustGamble(s.T(), map[vects.Atom]string{"a": "1", "b": "1", "c": "-1/9"}),
	)
	s.Require().NoError(err)
	s.d = d
}

func (s *PrevisionSuite) TestLowerUpperPrev() {
	f := mustGamble(s.T(), map[vects.Atom]string{"a": "-1", "b": "1", "c": "0"})

	lo, err := s.d.LowerPrev(f)
	s.Require().NoError(err)
	s.Require().Equal("-1/25", lo.String())

	hi, err := s.d.UpperPrev(f)
	s.Require().NoError(err)
	s.Require().Equal("1/25", hi.String())
}

func (s *PrevisionSuite) TestConditionalPrevViaDomain() {
	// dropping c from the domain conditions on the event {a, b}
	f := mustGamble(s.T(), map[vects.Atom]string{"a": "-1", "b": "1"})

	lo, err := s.d.LowerPrev(f)
	s.Require().NoError(err)
	s.Require().Equal("-2/5", lo.String())

	hi, err := s.d.UpperPrev(f)
	s.Require().NoError(err)
	s.Require().Equal("2/5", hi.String())
}

func (s *PrevisionSuite) TestCredalVertices() {
	k, err := s.d.Credal()
	s.Require().NoError(err)
	s.Require().Equal(2, k.Len())

	p, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "3/100", "b": "7/100", "c": "9/10"})
	s.Require().NoError(err)
	q, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "7/100", "b": "3/100", "c": "9/10"})
	s.Require().NoError(err)
	s.Require().True(k.Contains(p))
	s.Require().True(k.Contains(q))
}

func (s *PrevisionSuite) TestCredalPrevisionsAgree() {
	k, err := s.d.Credal()
	s.Require().NoError(err)

	f := mustGamble(s.T(), map[vects.Atom]string{"a": "-1", "b": "1", "c": "0"})
	fromDesir, err := s.d.LowerPrev(f)
	s.Require().NoError(err)
	fromCredal, err := k.LowerPrev(f)
	s.Require().NoError(err)
	s.Require().True(fromDesir.Equal(fromCredal))
}

func TestSingleJudgmentCredalVertices(t *testing.T) {
	// accepting {a: 1, b: -1} pins p_a ≥ p_b on the simplex: the credal set
	// spans from the degenerate p_a = 1 to the fifty-fifty point, both exact
	d, err := desirs.New(mustGamble(t, map[vects.Atom]string{"a": "1", "b": "-1"}))
	require.NoError(t, err)

	k, err := d.Credal()
	require.NoError(t, err)
	require.Equal(t, 2, k.Len())

	vertex, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "1"})
	require.NoError(t, err)
	half, err := massfuncs.ParsePMFunc(map[vects.Atom]string{"a": "1/2", "b": "1/2"})
	require.NoError(t, err)
	require.True(t, k.Contains(vertex))
	require.True(t, k.Contains(half))

	for _, p := range k.Elements() {
		require.True(t, p.Get("a").Gte(p.Get("b")))
	}
}

func TestFromCredal(t *testing.T) {
	uniformAB, err := massfuncs.UniformPMFunc([]vects.Atom{"a", "b"})
	require.NoError(t, err)
	uniformBC, err := massfuncs.UniformPMFunc([]vects.Atom{"b", "c"})
	require.NoError(t, err)
	k := credal.New(
		uniformAB, uniformBC,
		massfuncs.Degenerate("a"), massfuncs.Degenerate("c"),
	)

	d, err := desirs.FromCredal(k)
	require.NoError(t, err)
	require.Equal(t, 4, d.Len())
	require.True(t, d.Contains(gambles.AxisRay("a")))
	require.True(t, d.Contains(gambles.AxisRay("b")))
	require.True(t, d.Contains(gambles.AxisRay("c")))
	require.True(t, d.Contains(mustRay(t, map[vects.Atom]string{"a": "1", "b": "-1", "c": "1"})))
}
