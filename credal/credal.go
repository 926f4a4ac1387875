// Package credal implements sets of probability mass functions used as
// imprecise uncertainty models. A credal set is kept as its generating
// members; conditioning, expectation bounds and redundancy pruning operate
// on those members with exact rational arithmetic.
package credal

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/massfuncs"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/polytope"
	"github.com/equaeghe/murasyp/vects"
)

const credalCodespace = "credal"

var ErrEmptyCredalSet = errorsmod.Register(credalCodespace, 1, "empty credal set")

// CredalSet is an immutable set of probability mass functions, keyed
// canonically. Add and Discard return new sets.
type CredalSet struct {
	members map[string]massfuncs.PMFunc
}

// New creates a credal set from the given members.
func New(pmfs ...massfuncs.PMFunc) CredalSet {
	m := make(map[string]massfuncs.PMFunc, len(pmfs))
	for _, p := range pmfs {
		m[p.Key()] = p
	}
	return CredalSet{members: m}
}

// FromAtoms creates the vacuous credal set over a possibility space: one
// degenerate mass function per atom.
func FromAtoms(atoms []vects.Atom) CredalSet {
	m := make(map[string]massfuncs.PMFunc, len(atoms))
	for _, x := range atoms {
		p := massfuncs.Degenerate(x)
		m[p.Key()] = p
	}
	return CredalSet{members: m}
}

// Len returns the number of members.
func (k CredalSet) Len() int {
	return len(k.members)
}

// Contains reports membership.
func (k CredalSet) Contains(p massfuncs.PMFunc) bool {
	_, ok := k.members[p.Key()]
	return ok
}

// Elements returns the members in deterministic order.
func (k CredalSet) Elements() []massfuncs.PMFunc {
	out := make([]massfuncs.PMFunc, 0, len(k.members))
	for _, key := range math.GetSortedKeys(k.members) {
		out = append(out, k.members[key])
	}
	return out
}

// Add returns a new set with p included.
func (k CredalSet) Add(p massfuncs.PMFunc) CredalSet {
	m := make(map[string]massfuncs.PMFunc, len(k.members)+1)
	for key, q := range k.members {
		m[key] = q
	}
	m[p.Key()] = p
	return CredalSet{members: m}
}

// Discard returns a new set with p removed.
func (k CredalSet) Discard(p massfuncs.PMFunc) CredalSet {
	m := make(map[string]massfuncs.PMFunc, len(k.members))
	for key, q := range k.members {
		if key != p.Key() {
			m[key] = q
		}
	}
	return CredalSet{members: m}
}

// PSpace returns the union of the member domains, sorted.
func (k CredalSet) PSpace() []vects.Atom {
	domains := make([][]vects.Atom, 0, len(k.members))
	for _, p := range k.members {
		domains = append(domains, p.Domain())
	}
	return vects.UnionDomains(domains...)
}

// LowerPrev returns the minimal member expectation of g. The domain of g is
// the conditioning event.
func (k CredalSet) LowerPrev(g gambles.Gamble) (math.Rat, error) {
	return k.extremeExpectation(g, true)
}

// UpperPrev returns the maximal member expectation of g.
func (k CredalSet) UpperPrev(g gambles.Gamble) (math.Rat, error) {
	return k.extremeExpectation(g, false)
}

func (k CredalSet) extremeExpectation(g gambles.Gamble, lower bool) (math.Rat, error) {
	if len(k.members) == 0 {
		return math.Rat{}, errorsmod.Wrap(ErrEmptyCredalSet, "no expectations")
	}
	var best math.Rat
	first := true
	for _, p := range k.Elements() {
		e, err := p.Expectation(g)
		if err != nil {
			return math.Rat{}, errorsmod.Wrapf(err, "member %s", p.String())
		}
		if first || (lower && e.Lt(best)) || (!lower && e.Gt(best)) {
			best = e
			first = false
		}
	}
	return best, nil
}

// Condition returns the credal set conditional on the event: every member
// is conditioned. When some member assigns the event zero mass, nothing can
// be said after observing it, so the vacuous set over the event is returned.
func (k CredalSet) Condition(event []vects.Atom) (CredalSet, error) {
	if len(k.members) == 0 {
		return CredalSet{}, errorsmod.Wrap(ErrEmptyCredalSet, "cannot condition")
	}
	conditioned := make([]massfuncs.PMFunc, 0, len(k.members))
	for _, p := range k.Elements() {
		q, err := p.Condition(event)
		if err != nil {
			if errorsmod.IsOf(err, massfuncs.ErrZeroMassEvent) {
				return FromAtoms(event), nil
			}
			return CredalSet{}, err
		}
		conditioned = append(conditioned, q)
	}
	return New(conditioned...), nil
}

// DiscardRedundant returns the set without the members that are convex
// combinations of the others, i.e. only the vertices of the convex hull.
func (k CredalSet) DiscardRedundant(opts ...polytope.SolverOption) (CredalSet, error) {
	cur := k
	solver := polytope.NewSolver(opts...)
	for _, p := range k.Elements() {
		rest := cur.Discard(p)
		if rest.Len() == 0 {
			continue
		}
		redundant, err := inConvexHull(solver, p, rest.Elements())
		if err != nil {
			return CredalSet{}, err
		}
		if redundant {
			cur = rest
		}
	}
	return cur, nil
}

// inConvexHull checks ∃μ ≥ 0, Σμ = 1 with Σ_q μ_q·q = p.
func inConvexHull(solver *polytope.Solver, p massfuncs.PMFunc, others []massfuncs.PMFunc) (bool, error) {
	domains := make([][]vects.Atom, 0, len(others)+1)
	domains = append(domains, p.Domain())
	for _, q := range others {
		domains = append(domains, q.Domain())
	}
	space := vects.UnionDomains(domains...)

	lp := polytope.NewLinProg(len(others))
	for _, x := range space {
		coeffs := make([]math.Rat, len(others))
		for i, q := range others {
			coeffs[i] = q.Get(x)
		}
		if err := lp.AddRow(coeffs, polytope.RelEQ, p.Get(x)); err != nil {
			return false, err
		}
	}
	ones := make([]math.Rat, len(others))
	for i := range ones {
		ones[i] = math.OneRat()
	}
	if err := lp.AddRow(ones, polytope.RelEQ, math.OneRat()); err != nil {
		return false, err
	}
	res, err := solver.Solve(lp)
	if err != nil {
		return false, err
	}
	return res.Status == polytope.StatusOptimal, nil
}
