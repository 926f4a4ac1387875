package polytope

import (
	"iter"
	"sort"

	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

// consNode is one constraint in a persistent, prefix-shared list. Adding a
// constraint never touches the nodes of the polytope it was derived from.
type consNode struct {
	g     gambles.Gamble
	rel   Relation
	rhs   math.Rat
	prev  *consNode
	depth int
}

// Polytope is a convex region of gamble space cut out by linear constraints
// over a fixed possibility space. The zero value is not usable; construct
// with New. Polytopes are values: AddConstraint returns a new one and shares
// the constraint prefix with the receiver.
type Polytope struct {
	space  []vects.Atom
	cons   *consNode
	solver *Solver
}

// New creates the unconstrained polytope (all of gamble space) over the
// given possibility space.
func New(space []vects.Atom, opts ...SolverOption) (Polytope, error) {
	if len(space) == 0 {
		return Polytope{}, errorsmod.Wrap(ErrNoSpace, "polytope needs a possibility space")
	}
	cp := make([]vects.Atom, len(space))
	copy(cp, space)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	for i := 1; i < len(cp); i++ {
		if cp[i] == cp[i-1] {
			return Polytope{}, errorsmod.Wrapf(ErrNoSpace, "duplicate atom %q", cp[i])
		}
	}
	return Polytope{space: cp, solver: NewSolver(opts...)}, nil
}

// Space returns the possibility space in sorted order.
func (p Polytope) Space() []vects.Atom {
	cp := make([]vects.Atom, len(p.space))
	copy(cp, p.space)
	return cp
}

// NumConstraints returns the number of constraints added so far.
func (p Polytope) NumConstraints() int {
	if p.cons == nil {
		return 0
	}
	return p.cons.depth
}

// AddConstraint returns a new polytope with the extra constraint
// g·x rel rhs, where g supplies the hyperplane coefficients.
func (p Polytope) AddConstraint(g gambles.Gamble, rel Relation, rhs math.Rat) (Polytope, error) {
	if len(p.space) == 0 {
		return Polytope{}, errorsmod.Wrap(ErrNoSpace, "uninitialized polytope")
	}
	if !vects.SubsetOf(g.Support(), p.space) {
		return Polytope{}, errorsmod.Wrapf(ErrDimensionMismatch,
			"constraint gamble %s does not fit space %v", g.String(), p.space)
	}
	node := &consNode{g: g, rel: rel, rhs: rhs, prev: p.cons, depth: 1}
	if p.cons != nil {
		node.depth = p.cons.depth + 1
	}
	return Polytope{space: p.space, cons: node, solver: p.solver}, nil
}

// constraintRows lists the constraints in insertion order.
func (p Polytope) constraintRows() []*consNode {
	out := make([]*consNode, p.NumConstraints())
	for n := p.cons; n != nil; n = n.prev {
		out[n.depth-1] = n
	}
	return out
}

// linProg builds the feasibility program over free coordinates, one per
// atom of the space.
func (p Polytope) linProg() (*LinProg, error) {
	lp := NewLinProg(len(p.space))
	for j := range p.space {
		lp.SetFree(j)
	}
	for _, n := range p.constraintRows() {
		coeffs := make([]math.Rat, len(p.space))
		for j, x := range p.space {
			coeffs[j] = n.g.Get(x)
		}
		if err := lp.AddRow(coeffs, n.rel, n.rhs); err != nil {
			return nil, err
		}
	}
	return lp, nil
}

// matrix converts the constraints to the H-representation convention
// b + a·x ≥ 0 used by the enumeration code.
func (p Polytope) matrix() (*Matrix, error) {
	m, err := NewMatrix(p.space)
	if err != nil {
		return nil, err
	}
	for _, n := range p.constraintRows() {
		row := make([]math.Rat, len(p.space)+1)
		switch n.rel {
		case RelGTE, RelEQ:
			row[0] = n.rhs.Neg()
			for j, x := range p.space {
				row[j+1] = n.g.Get(x)
			}
		case RelLTE:
			row[0] = n.rhs
			for j, x := range p.space {
				row[j+1] = n.g.Get(x).Neg()
			}
		}
		if err := m.AddRow(row, n.rel == RelEQ); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// IsFeasible reports whether the constraint intersection is non-empty. An
// empty intersection is an answer, not an error.
func (p Polytope) IsFeasible() (bool, error) {
	if len(p.space) == 0 {
		return false, errorsmod.Wrap(ErrNoSpace, "uninitialized polytope")
	}
	lp, err := p.linProg()
	if err != nil {
		return false, err
	}
	res, err := p.solver.Solve(lp)
	if err != nil {
		return false, errorsmod.Wrap(ErrPolytope, err.Error())
	}
	switch res.Status {
	case StatusOptimal:
		return true, nil
	case StatusInfeasible:
		return false, nil
	default:
		return false, errorsmod.Wrapf(ErrPolytope, "feasibility solve reported %s", res.Status)
	}
}

func coordsToVector(space []vects.Atom, coords []math.Rat) vects.Vector {
	m := make(map[vects.Atom]math.Rat, len(space))
	for j, x := range space {
		m[x] = coords[j]
	}
	return vects.NewVector(m)
}

// sequence wraps a slice-producing enumeration in a lazy, non-restartable
// iterator: the work runs on first pull, and a drained sequence stays empty.
func sequence(enum func() ([]vects.Vector, error)) iter.Seq2[vects.Vector, error] {
	spent := false
	return func(yield func(vects.Vector, error) bool) {
		if spent {
			return
		}
		spent = true
		vs, err := enum()
		if err != nil {
			yield(vects.Vector{}, err)
			return
		}
		for _, v := range vs {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Vertices enumerates the polytope's vertices exactly. The sequence is
// finite and non-restartable; an enumeration failure is yielded as the
// final (and only) error element.
func (p Polytope) Vertices() iter.Seq2[vects.Vector, error] {
	return sequence(func() ([]vects.Vector, error) {
		m, err := p.matrix()
		if err != nil {
			return nil, err
		}
		verts, _, _, err := m.generators()
		if err != nil {
			return nil, err
		}
		out := make([]vects.Vector, 0, len(verts))
		for _, v := range verts {
			out = append(out, coordsToVector(p.space, v))
		}
		return out, nil
	})
}

// ExtremeRays enumerates the polytope's recession directions. Lineality
// directions are emitted as ± pairs, the way cdd reports its lin_set.
func (p Polytope) ExtremeRays() iter.Seq2[vects.Vector, error] {
	return sequence(func() ([]vects.Vector, error) {
		m, err := p.matrix()
		if err != nil {
			return nil, err
		}
		_, dirs, lin, err := m.generators()
		if err != nil {
			return nil, err
		}
		out := make([]vects.Vector, 0, len(dirs)+2*len(lin))
		for _, v := range dirs {
			out = append(out, coordsToVector(p.space, v))
		}
		for _, v := range lin {
			out = append(out, coordsToVector(p.space, v))
			out = append(out, coordsToVector(p.space, negRow(v)))
		}
		return out, nil
	})
}

// Generators enumerates vertices and rays eagerly into sets.
func (p Polytope) Generators() (vertices, rays vects.Set, err error) {
	vertices, rays = vects.NewSet(), vects.NewSet()
	for v, verr := range p.Vertices() {
		if verr != nil {
			return vects.Set{}, vects.Set{}, verr
		}
		vertices = vertices.Add(v)
	}
	for r, rerr := range p.ExtremeRays() {
		if rerr != nil {
			return vects.Set{}, vects.Set{}, rerr
		}
		rays = rays.Add(r)
	}
	return vertices, rays, nil
}

// VertexEnumeration runs double description on an H-representation matrix
// and returns its vertices and rays, with lineality directions expanded to
// ± ray pairs.
func VertexEnumeration(m *Matrix) (vertices, rays vects.Set, err error) {
	verts, dirs, lin, err := m.generators()
	if err != nil {
		return vects.Set{}, vects.Set{}, err
	}
	vertices, rays = vects.NewSet(), vects.NewSet()
	for _, v := range verts {
		vertices = vertices.Add(coordsToVector(m.cols, v))
	}
	for _, v := range dirs {
		rays = rays.Add(coordsToVector(m.cols, v))
	}
	for _, v := range lin {
		rays = rays.Add(coordsToVector(m.cols, v))
		rays = rays.Add(coordsToVector(m.cols, negRow(v)))
	}
	return vertices, rays, nil
}

// ConeContains reports whether g lies in the conic span of the cone's
// generators: ∃λ ≥ 0 with Σᵢ λᵢrᵢ = g.
func ConeContains(c gambles.Cone, g gambles.Gamble, opts ...SolverOption) (bool, error) {
	rays := c.Elements()
	if len(rays) == 0 {
		return g.IsZero(), nil
	}
	domain := vects.UnionDomains(c.Domain(), g.Domain())
	lp := NewLinProg(len(rays))
	for _, x := range domain {
		coeffs := make([]math.Rat, len(rays))
		for i, r := range rays {
			coeffs[i] = r.Get(x)
		}
		if err := lp.AddRow(coeffs, RelEQ, g.Get(x)); err != nil {
			return false, err
		}
	}
	res, err := NewSolver(opts...).Solve(lp)
	if err != nil {
		return false, errorsmod.Wrap(ErrPolytope, err.Error())
	}
	return res.Status == StatusOptimal, nil
}

// VFEnumeration maps a vector set, read as the H-representation rows
// {x : v·x ≥ 0}, to the generator set of that cone, and vice versa: applying
// it twice recovers a representation of the same cone. Lineality directions
// come out as ± pairs.
func VFEnumeration(s vects.Set) (vects.Set, error) {
	domain := s.Domain()
	if len(domain) == 0 {
		return vects.Set{}, errorsmod.Wrap(ErrNoSpace, "vector set has empty domain")
	}
	rows := make([][]math.Rat, 0, s.Len())
	for _, v := range s.Elements() {
		row := make([]math.Rat, len(domain))
		for j, x := range domain {
			row[j] = v.Get(x)
		}
		rows = append(rows, row)
	}
	rays, lin, err := ddCone(len(domain), rows, nil)
	if err != nil {
		return vects.Set{}, err
	}
	out := vects.NewSet()
	for _, r := range rays {
		out = out.Add(coordsToVector(domain, r))
	}
	for _, u := range lin {
		out = out.Add(coordsToVector(domain, u))
		out = out.Add(coordsToVector(domain, negRow(u)))
	}
	return out, nil
}
