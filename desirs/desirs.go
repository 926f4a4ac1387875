// Package desirs implements sets of desirable gambles, the judgment-level
// uncertainty model: an agent accepts a set of uncertain rewards, and
// everything else (loss avoidance, prevision bounds, the credal dual) is
// derived from that raw set by exact linear programming.
package desirs

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/credal"
	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/massfuncs"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/polytope"
	"github.com/equaeghe/murasyp/vects"
)

const desirsCodespace = "desirs"

var (
	ErrNoJudgments = errorsmod.Register(desirsCodespace, 1, "desirability set holds no judgments")
	ErrNoOptimum   = errorsmod.Register(desirsCodespace, 2, "linear program has no optimum")
	ErrNotAGamble  = errorsmod.Register(desirsCodespace, 3, "judgment is not a usable gamble")
)

// DesirSet is an immutable set of accept judgments, stored as the canonical
// rays of the judged gambles. Add and Discard return new sets.
type DesirSet struct {
	rays map[string]gambles.Ray
}

// New creates a desirability set from accept judgments. Zero or empty-domain
// gambles carry no judgment and are rejected.
func New(gs ...gambles.Gamble) (DesirSet, error) {
	d := DesirSet{rays: make(map[string]gambles.Ray, len(gs))}
	for _, g := range gs {
		r, err := gambles.NewRay(g)
		if err != nil {
			return DesirSet{}, errorsmod.Wrapf(ErrNotAGamble, "%s: %s", g.String(), err)
		}
		d.rays[r.Key()] = r
	}
	return d, nil
}

// Vacuous returns the vacuous desirability set over a possibility space:
// only the axis gambles are accepted.
func Vacuous(atoms []vects.Atom) DesirSet {
	d := DesirSet{rays: make(map[string]gambles.Ray, len(atoms))}
	for _, x := range atoms {
		r := gambles.AxisRay(x)
		d.rays[r.Key()] = r
	}
	return d
}

// Len returns the number of judgments.
func (d DesirSet) Len() int {
	return len(d.rays)
}

// Contains reports whether the judgment ray is in the set.
func (d DesirSet) Contains(r gambles.Ray) bool {
	_, ok := d.rays[r.Key()]
	return ok
}

// Elements returns the judgment rays in deterministic order.
func (d DesirSet) Elements() []gambles.Ray {
	out := make([]gambles.Ray, 0, len(d.rays))
	for _, key := range math.GetSortedKeys(d.rays) {
		out = append(out, d.rays[key])
	}
	return out
}

// PSpace returns the union of the judgment domains, sorted.
func (d DesirSet) PSpace() []vects.Atom {
	domains := make([][]vects.Atom, 0, len(d.rays))
	for _, r := range d.rays {
		domains = append(domains, r.Domain())
	}
	return vects.UnionDomains(domains...)
}

// Add returns a new set with the judgment included.
func (d DesirSet) Add(g gambles.Gamble) (DesirSet, error) {
	r, err := gambles.NewRay(g)
	if err != nil {
		return DesirSet{}, errorsmod.Wrapf(ErrNotAGamble, "%s: %s", g.String(), err)
	}
	return d.AddRay(r), nil
}

// AddRay returns a new set with the ray included.
func (d DesirSet) AddRay(r gambles.Ray) DesirSet {
	m := make(map[string]gambles.Ray, len(d.rays)+1)
	for key, o := range d.rays {
		m[key] = o
	}
	m[r.Key()] = r
	return DesirSet{rays: m}
}

// Discard returns a new set with the ray removed.
func (d DesirSet) Discard(r gambles.Ray) DesirSet {
	m := make(map[string]gambles.Ray, len(d.rays))
	for key, o := range d.rays {
		if key != r.Key() {
			m[key] = o
		}
	}
	return DesirSet{rays: m}
}

// SetLowerPr encodes the assessment "the expectation of g, conditional on
// its domain, is at least v" as judgments: g − v together with the domain
// indicator.
func (d DesirSet) SetLowerPr(g gambles.Gamble, v math.Rat) (DesirSet, error) {
	domain := g.Domain()
	if len(domain) == 0 {
		return DesirSet{}, errorsmod.Wrap(ErrNotAGamble, "empty domain")
	}
	shifted := g.Sub(gambles.Indicator(domain).ScalarMul(v))
	out, err := d.Add(shifted)
	if err != nil {
		return DesirSet{}, err
	}
	indicator, err := gambles.NewRay(gambles.Indicator(domain))
	if err != nil {
		return DesirSet{}, errorsmod.Wrap(ErrNotAGamble, err.Error())
	}
	return out.AddRay(indicator), nil
}

// SetUpperPr encodes "the expectation of g on its domain is at most v".
func (d DesirSet) SetUpperPr(g gambles.Gamble, v math.Rat) (DesirSet, error) {
	return d.SetLowerPr(g.Neg(), v.Neg())
}

// SetPr pins the expectation of g to v: lower and upper assessment at once.
func (d DesirSet) SetPr(g gambles.Gamble, v math.Rat) (DesirSet, error) {
	out, err := d.SetLowerPr(g, v)
	if err != nil {
		return DesirSet{}, err
	}
	return out.SetUpperPr(g, v)
}

// AvoidsSureLoss reports whether no non-negative combination of the
// judgments is everywhere at or below −1. The check is a pure LP
// feasibility problem, so the answer is exact.
func (d DesirSet) AvoidsSureLoss(opts ...polytope.SolverOption) (bool, error) {
	if len(d.rays) == 0 {
		return true, nil
	}
	rays := d.Elements()
	lp := polytope.NewLinProg(len(rays))
	for _, x := range d.PSpace() {
		coeffs := make([]math.Rat, len(rays))
		for i, r := range rays {
			coeffs[i] = r.Get(x)
		}
		if err := lp.AddRow(coeffs, polytope.RelLTE, math.NewRatFromInt64(-1)); err != nil {
			return false, err
		}
	}
	res, err := polytope.NewSolver(opts...).Solve(lp)
	if err != nil {
		return false, err
	}
	return res.Status != polytope.StatusOptimal, nil
}

// AvoidsPartialLoss reports whether no non-negative combination of the
// judgments is everywhere non-positive and somewhere negative. The candidate
// negative-support set shrinks each round until a fixed point settles the
// answer.
func (d DesirSet) AvoidsPartialLoss(opts ...polytope.SolverOption) (bool, error) {
	if len(d.rays) == 0 {
		return true, nil
	}
	solver := polytope.NewSolver(opts...)
	pspace := d.PSpace()
	rays := d.Elements()
	active := pspace
	for len(active) > 0 {
		idx := make(map[vects.Atom]int, len(active))
		for i, x := range active {
			idx[x] = i
		}
		lp := polytope.NewLinProg(len(rays) + len(active))
		obj := make([]math.Rat, len(rays)+len(active))
		for j := range obj {
			obj[j] = math.ZeroRat()
		}
		for i := range active {
			row := make([]math.Rat, len(rays)+len(active))
			for j := range row {
				row[j] = math.ZeroRat()
			}
			row[len(rays)+i] = math.OneRat()
			if err := lp.AddRow(row, polytope.RelLTE, math.OneRat()); err != nil {
				return false, err
			}
			obj[len(rays)+i] = math.OneRat()
		}
		for _, x := range pspace {
			row := make([]math.Rat, len(rays)+len(active))
			for i, r := range rays {
				row[i] = r.Get(x)
			}
			for i := len(rays); i < len(row); i++ {
				row[i] = math.ZeroRat()
			}
			if i, ok := idx[x]; ok {
				row[len(rays)+i] = math.OneRat()
			}
			if err := lp.AddRow(row, polytope.RelLTE, math.ZeroRat()); err != nil {
				return false, err
			}
		}
		if err := lp.SetObjective(obj); err != nil {
			return false, err
		}
		res, err := solver.Solve(lp)
		if err != nil {
			return false, err
		}
		if res.Status != polytope.StatusOptimal {
			return false, errorsmod.Wrapf(ErrNoOptimum, "partial-loss program reported %s", res.Status)
		}
		tau := res.Primal[len(rays):]
		anyPositive, allPositive := false, true
		for _, t := range tau {
			if t.IsPositive() {
				anyPositive = true
			} else {
				allPositive = false
			}
		}
		if !anyPositive {
			return true, nil
		}
		if allPositive {
			return false, nil
		}
		var next []vects.Atom
		for i, x := range active {
			if tau[i].Equal(math.OneRat()) {
				next = append(next, x)
			}
		}
		if len(next) == 0 {
			return true, nil
		}
		active = next
	}
	return true, nil
}

// LowerPrev returns the lower prevision of g implied by the judgments: the
// largest α for which g − α·1 on g's domain is a consequence of the set.
// The domain of g is the conditioning event.
func (d DesirSet) LowerPrev(g gambles.Gamble, opts ...polytope.SolverOption) (math.Rat, error) {
	if len(d.rays) == 0 {
		return math.Rat{}, errorsmod.Wrap(ErrNoJudgments, "no prevision bounds")
	}
	if len(g.Domain()) == 0 {
		return math.Rat{}, errorsmod.Wrap(ErrNotAGamble, "empty domain")
	}
	rays := d.Elements()
	inDom := make(map[vects.Atom]struct{}, len(g.Domain()))
	for _, x := range g.Domain() {
		inDom[x] = struct{}{}
	}
	lp := polytope.NewLinProg(1 + len(rays))
	lp.SetFree(0)
	obj := make([]math.Rat, 1+len(rays))
	obj[0] = math.OneRat()
	for j := 1; j < len(obj); j++ {
		obj[j] = math.ZeroRat()
	}
	if err := lp.SetObjective(obj); err != nil {
		return math.Rat{}, err
	}
	for _, x := range d.PSpace() {
		row := make([]math.Rat, 1+len(rays))
		if _, ok := inDom[x]; ok {
			row[0] = math.OneRat()
		} else {
			row[0] = math.ZeroRat()
		}
		for i, r := range rays {
			row[1+i] = r.Get(x)
		}
		if err := lp.AddRow(row, polytope.RelLTE, g.Get(x)); err != nil {
			return math.Rat{}, err
		}
	}
	res, err := polytope.NewSolver(opts...).Solve(lp)
	if err != nil {
		return math.Rat{}, err
	}
	if res.Status != polytope.StatusOptimal {
		return math.Rat{}, errorsmod.Wrapf(ErrNoOptimum, "prevision program reported %s", res.Status)
	}
	return res.Objective, nil
}

// UpperPrev returns the upper prevision of g: the conjugate −LowerPrev(−g).
func (d DesirSet) UpperPrev(g gambles.Gamble, opts ...polytope.SolverOption) (math.Rat, error) {
	lo, err := d.LowerPrev(g.Neg(), opts...)
	if err != nil {
		return math.Rat{}, err
	}
	return lo.Neg(), nil
}

// CoherentClosure returns the irredundant generator set of the natural
// extension cone: every judgment already in the conic span of the others is
// discarded. The operation is idempotent.
func (d DesirSet) CoherentClosure(opts ...polytope.SolverOption) (DesirSet, error) {
	cur := d
	for _, r := range d.Elements() {
		rest := cur.Discard(r)
		if rest.Len() == 0 {
			continue
		}
		in, err := polytope.ConeContains(gambles.NewCone(rest.Elements()...), r.Gamble(), opts...)
		if err != nil {
			return DesirSet{}, err
		}
		if in {
			cur = rest
		}
	}
	return cur, nil
}

// ToPolytope builds the credal polytope of the judgments:
// {p : p ≥ 0, Σp = 1, ⟨p, g⟩ ≥ 0 for every judgment g}.
func (d DesirSet) ToPolytope(opts ...polytope.SolverOption) (polytope.Polytope, error) {
	if len(d.rays) == 0 {
		return polytope.Polytope{}, errorsmod.Wrap(ErrNoJudgments, "no credal polytope")
	}
	space := d.PSpace()
	p, err := polytope.New(space, opts...)
	if err != nil {
		return polytope.Polytope{}, err
	}
	for _, x := range space {
		p, err = p.AddConstraint(gambles.Indicator([]vects.Atom{x}), polytope.RelGTE, math.ZeroRat())
		if err != nil {
			return polytope.Polytope{}, err
		}
	}
	p, err = p.AddConstraint(gambles.Indicator(space), polytope.RelEQ, math.OneRat())
	if err != nil {
		return polytope.Polytope{}, err
	}
	for _, r := range d.Elements() {
		p, err = p.AddConstraint(r.Gamble(), polytope.RelGTE, math.ZeroRat())
		if err != nil {
			return polytope.Polytope{}, err
		}
	}
	return p, nil
}

// Credal vertex-enumerates the credal polytope into the dual credal set:
// the exact probability mass functions compatible with the judgments.
func (d DesirSet) Credal(opts ...polytope.SolverOption) (credal.CredalSet, error) {
	p, err := d.ToPolytope(opts...)
	if err != nil {
		return credal.CredalSet{}, err
	}
	var pmfs []massfuncs.PMFunc
	for v, verr := range p.Vertices() {
		if verr != nil {
			return credal.CredalSet{}, verr
		}
		pmf, perr := massfuncs.FromVector(v)
		if perr != nil {
			return credal.CredalSet{}, perr
		}
		pmfs = append(pmfs, pmf)
	}
	return credal.New(pmfs...), nil
}

// FromCredal maps a credal set back to the desirability model it induces:
// the generators of the dual cone of its members, found by facet
// enumeration.
func FromCredal(k credal.CredalSet) (DesirSet, error) {
	if k.Len() == 0 {
		return DesirSet{}, errorsmod.Wrap(ErrNoJudgments, "empty credal set")
	}
	members := vects.NewSet()
	for _, p := range k.Elements() {
		members = members.Add(p.Vector())
	}
	gen, err := polytope.VFEnumeration(members)
	if err != nil {
		return DesirSet{}, err
	}
	d := DesirSet{rays: make(map[string]gambles.Ray, gen.Len())}
	for _, v := range gen.Elements() {
		r, rerr := gambles.NewRay(gambles.FromVector(v))
		if rerr != nil {
			return DesirSet{}, errorsmod.Wrap(ErrNotAGamble, rerr.Error())
		}
		d.rays[r.Key()] = r
	}
	return d, nil
}
