package polytope

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/math"
)

// bitset tracks which constraint rows a ray satisfies with equality.
type bitset []uint64

func newBitset(words int) bitset {
	return make(bitset, words)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) clone() bitset {
	cp := make(bitset, len(b))
	copy(cp, b)
	return cp
}

func intersectBits(a, b bitset) bitset {
	out := make(bitset, len(a))
	for i := range a {
		out[i] = a[i] & b[i]
	}
	return out
}

// supersetOf reports whether b covers every bit of other.
func (b bitset) supersetOf(other bitset) bool {
	for i := range other {
		if other[i]&^b[i] != 0 {
			return false
		}
	}
	return true
}

type ddRay struct {
	v    []math.Rat
	zero bitset
}

func dotRows(c, v []math.Rat) math.Rat {
	s := math.ZeroRat()
	for i := range c {
		if c[i].IsZero() || v[i].IsZero() {
			continue
		}
		s = s.Add(c[i].Mul(v[i]))
	}
	return s
}

func negRow(v []math.Rat) []math.Rat {
	out := make([]math.Rat, len(v))
	for i := range v {
		out[i] = v[i].Neg()
	}
	return out
}

// axpyRow returns u + t·v.
func axpyRow(u []math.Rat, t math.Rat, v []math.Rat) []math.Rat {
	out := make([]math.Rat, len(u))
	for i := range u {
		out[i] = u[i].Add(t.Mul(v[i]))
	}
	return out
}

// combineRows returns s·a + t·b.
func combineRows(s math.Rat, a []math.Rat, t math.Rat, b []math.Rat) []math.Rat {
	out := make([]math.Rat, len(a))
	for i := range a {
		out[i] = s.Mul(a[i]).Add(t.Mul(b[i]))
	}
	return out
}

// canonicalRay scales v so that its first nonzero entry has absolute value
// one, or returns nil for the zero vector.
func canonicalRay(v []math.Rat) []math.Rat {
	var scale math.Rat
	found := false
	for i := range v {
		if !v[i].IsZero() {
			scale = v[i].Abs()
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	out := make([]math.Rat, len(v))
	for i := range v {
		q, err := v[i].Quo(scale)
		if err != nil {
			return nil
		}
		out[i] = q
	}
	return out
}

func rayKey(v []math.Rat) string {
	key := ""
	for i := range v {
		key += v[i].String() + ";"
	}
	return key
}

// adjacent applies the combinatorial adjacency test: p and n span an edge of
// the current cone iff no other stored ray satisfies every constraint that
// both of them satisfy with equality.
func adjacent(rays []*ddRay, p, n *ddRay, common bitset) bool {
	for _, t := range rays {
		if t == p || t == n {
			continue
		}
		if t.zero.supersetOf(common) {
			return false
		}
	}
	return true
}

// ddCone runs the double description method on the cone
//
//	{x ∈ Q^dim : rows[i]·x ≥ 0, with equality for i ∈ linear}
//
// and returns its extreme rays together with a basis of its lineality
// space. Constraints are processed incrementally: each one first consumes a
// lineality direction if it can, and otherwise splits the ray list by sign
// and patches the cut with adjacent positive/negative combinations.
func ddCone(dim int, rows [][]math.Rat, linear map[int]struct{}) ([][]math.Rat, [][]math.Rat, error) {
	if dim == 0 {
		return nil, nil, errorsmod.Wrap(ErrNoSpace, "cone in zero dimensions")
	}
	ineqs := make([][]math.Rat, 0, len(rows)+len(linear))
	for i, r := range rows {
		if len(r) != dim {
			return nil, nil, errorsmod.Wrapf(ErrDimensionMismatch, "row %d has %d entries, want %d", i, len(r), dim)
		}
		ineqs = append(ineqs, r)
		if _, ok := linear[i]; ok {
			ineqs = append(ineqs, negRow(r))
		}
	}
	words := (len(ineqs) + 63) / 64
	if words == 0 {
		words = 1
	}

	// start from all of Q^dim: no rays, full lineality
	lin := make([][]math.Rat, dim)
	for i := 0; i < dim; i++ {
		u := make([]math.Rat, dim)
		for j := range u {
			u[j] = math.ZeroRat()
		}
		u[i] = math.OneRat()
		lin[i] = u
	}
	var rays []*ddRay

	for k, c := range ineqs {
		pivotIdx := -1
		for i, u := range lin {
			if !dotRows(c, u).IsZero() {
				pivotIdx = i
				break
			}
		}
		if pivotIdx >= 0 {
			// the constraint cuts the lineality space: one direction
			// becomes a ray, everything else is projected onto the
			// constraint's boundary
			v := lin[pivotIdx]
			cv := dotRows(c, v)
			if cv.IsNegative() {
				v = negRow(v)
				cv = cv.Neg()
			}
			lin = append(lin[:pivotIdx], lin[pivotIdx+1:]...)
			for i, u := range lin {
				cu := dotRows(c, u)
				if cu.IsZero() {
					continue
				}
				t, err := cu.Quo(cv)
				if err != nil {
					return nil, nil, errorsmod.Wrap(ErrPolytope, err.Error())
				}
				lin[i] = axpyRow(u, t.Neg(), v)
			}
			for _, r := range rays {
				cr := dotRows(c, r.v)
				if !cr.IsZero() {
					t, err := cr.Quo(cv)
					if err != nil {
						return nil, nil, errorsmod.Wrap(ErrPolytope, err.Error())
					}
					r.v = axpyRow(r.v, t.Neg(), v)
				}
				r.zero.set(k)
			}
			nr := &ddRay{v: v, zero: newBitset(words)}
			for j := 0; j < k; j++ {
				nr.zero.set(j)
			}
			rays = append(rays, nr)
			continue
		}

		var pos, neg []*ddRay
		next := make([]*ddRay, 0, len(rays))
		for _, r := range rays {
			s := dotRows(c, r.v)
			switch {
			case s.IsPositive():
				pos = append(pos, r)
				next = append(next, r)
			case s.IsNegative():
				neg = append(neg, r)
			default:
				r.zero.set(k)
				next = append(next, r)
			}
		}
		for _, p := range pos {
			cp := dotRows(c, p.v)
			for _, n := range neg {
				common := intersectBits(p.zero, n.zero)
				if !adjacent(rays, p, n, common) {
					continue
				}
				cn := dotRows(c, n.v)
				w := combineRows(cp, n.v, cn.Neg(), p.v)
				z := common.clone()
				z.set(k)
				next = append(next, &ddRay{v: w, zero: z})
			}
		}
		rays = next
	}

	out := make([][]math.Rat, 0, len(rays))
	seen := make(map[string]struct{}, len(rays))
	for _, r := range rays {
		v := canonicalRay(r.v)
		if v == nil {
			continue
		}
		key := rayKey(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	linOut := make([][]math.Rat, 0, len(lin))
	for _, u := range lin {
		if v := canonicalRay(u); v != nil {
			linOut = append(linOut, v)
		}
	}
	return out, linOut, nil
}

// generators runs ddCone on the homogenization of m: a leading column x₀
// with x₀ ≥ 0 processed first, so that output rays with positive first
// coordinate are vertices and rays with zero first coordinate are
// directions. Lineality directions always have x₀ = 0.
func (m *Matrix) generators() (vertices, dirs, lineality [][]math.Rat, err error) {
	dim := len(m.cols) + 1
	e0 := make([]math.Rat, dim)
	e0[0] = math.OneRat()
	for j := 1; j < dim; j++ {
		e0[j] = math.ZeroRat()
	}
	rows := make([][]math.Rat, 0, len(m.rows)+1)
	rows = append(rows, e0)
	linear := make(map[int]struct{}, len(m.linear))
	for i, r := range m.rows {
		rows = append(rows, r)
		if _, ok := m.linear[i]; ok {
			linear[i+1] = struct{}{}
		}
	}
	rays, lin, err := ddCone(dim, rows, linear)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, r := range rays {
		if r[0].IsPositive() {
			v := make([]math.Rat, len(m.cols))
			for j := range v {
				q, qerr := r[j+1].Quo(r[0])
				if qerr != nil {
					return nil, nil, nil, errorsmod.Wrap(ErrPolytope, qerr.Error())
				}
				v[j] = q
			}
			vertices = append(vertices, v)
		} else {
			dirs = append(dirs, r[1:])
		}
	}
	for _, u := range lin {
		lineality = append(lineality, u[1:])
	}
	return vertices, dirs, lineality, nil
}
