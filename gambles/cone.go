package gambles

import (
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

// Cone is an immutable set of rays generating a convex cone: the set of all
// non-negative combinations of its elements. Only the generators are stored;
// membership of the conic hull is a linear-programming question answered by
// the polytope package.
type Cone struct {
	m map[string]Ray
}

// NewCone builds a cone from the given generator rays.
func NewCone(rays ...Ray) Cone {
	m := make(map[string]Ray, len(rays))
	for _, r := range rays {
		m[r.Key()] = r
	}
	return Cone{m: m}
}

// ConeFromGambles normalizes the given gambles into rays and collects them.
// Zero gambles are rejected.
func ConeFromGambles(gs []Gamble) (Cone, error) {
	m := make(map[string]Ray, len(gs))
	for _, g := range gs {
		r, err := NewRay(g)
		if err != nil {
			return Cone{}, err
		}
		m[r.Key()] = r
	}
	return Cone{m: m}, nil
}

// VacuousCone returns the cone generated by the axis rays of the given
// possibility space: the non-negative orthant.
func VacuousCone(atoms []vects.Atom) Cone {
	m := make(map[string]Ray, len(atoms))
	for _, x := range atoms {
		r := AxisRay(x)
		m[r.Key()] = r
	}
	return Cone{m: m}
}

// Len returns the number of generator rays.
func (c Cone) Len() int {
	return len(c.m)
}

// Contains reports whether r is one of the stored generators. For membership
// of the conic hull see polytope.ConeContains.
func (c Cone) Contains(r Ray) bool {
	_, ok := c.m[r.Key()]
	return ok
}

// Elements returns the generator rays in a deterministic order.
func (c Cone) Elements() []Ray {
	keys := math.GetSortedKeys(c.m)
	rays := make([]Ray, 0, len(keys))
	for _, k := range keys {
		rays = append(rays, c.m[k])
	}
	return rays
}

// Add returns a new cone with r included as a generator.
func (c Cone) Add(r Ray) Cone {
	m := make(map[string]Ray, len(c.m)+1)
	for k, s := range c.m {
		m[k] = s
	}
	m[r.Key()] = r
	return Cone{m: m}
}

// Discard returns a new cone with the generator r removed, if present.
func (c Cone) Discard(r Ray) Cone {
	m := make(map[string]Ray, len(c.m))
	for k, s := range c.m {
		if k != r.Key() {
			m[k] = s
		}
	}
	return Cone{m: m}
}

// Domain returns the sorted union of the generator domains.
func (c Cone) Domain() []vects.Atom {
	ds := make([][]vects.Atom, 0, len(c.m))
	for _, r := range c.m {
		ds = append(ds, r.Domain())
	}
	return vects.UnionDomains(ds...)
}
