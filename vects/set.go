package vects

import (
	"sort"

	"github.com/equaeghe/murasyp/math"
)

// Set is an immutable set of Vectors, deduplicated by their canonical Key.
type Set struct {
	m map[string]Vector
}

// NewSet builds a set from the given vectors.
func NewSet(vs ...Vector) Set {
	m := make(map[string]Vector, len(vs))
	for _, v := range vs {
		m[v.Key()] = v
	}
	return Set{m: m}
}

// Len returns the number of vectors in the set.
func (s Set) Len() int {
	return len(s.m)
}

// Contains reports whether v is an element of the set.
func (s Set) Contains(v Vector) bool {
	_, ok := s.m[v.Key()]
	return ok
}

// Elements returns the vectors in a deterministic order.
func (s Set) Elements() []Vector {
	keys := math.GetSortedKeys(s.m)
	vs := make([]Vector, 0, len(keys))
	for _, k := range keys {
		vs = append(vs, s.m[k])
	}
	return vs
}

// Add returns a new set with v included.
func (s Set) Add(v Vector) Set {
	m := make(map[string]Vector, len(s.m)+1)
	for k, w := range s.m {
		m[k] = w
	}
	m[v.Key()] = v
	return Set{m: m}
}

// Discard returns a new set with v removed, if present.
func (s Set) Discard(v Vector) Set {
	m := make(map[string]Vector, len(s.m))
	for k, w := range s.m {
		if k != v.Key() {
			m[k] = w
		}
	}
	return Set{m: m}
}

// Union returns the union of s and t.
func (s Set) Union(t Set) Set {
	m := make(map[string]Vector, len(s.m)+len(t.m))
	for k, w := range s.m {
		m[k] = w
	}
	for k, w := range t.m {
		m[k] = w
	}
	return Set{m: m}
}

// Domain returns the sorted union of the domains of the element vectors.
func (s Set) Domain() []Atom {
	return UnionDomains(domainsOf(s)...)
}

func domainsOf(s Set) [][]Atom {
	ds := make([][]Atom, 0, len(s.m))
	for _, v := range s.m {
		ds = append(ds, v.Domain())
	}
	return ds
}

// UnionDomains returns the sorted union of the given atom slices.
func UnionDomains(ds ...[]Atom) []Atom {
	u := make(map[Atom]struct{})
	for _, d := range ds {
		for _, x := range d {
			u[x] = struct{}{}
		}
	}
	return math.GetSortedKeys(u)
}

// IntersectDomains returns the sorted intersection of two atom slices.
func IntersectDomains(a, b []Atom) []Atom {
	inB := make(map[Atom]struct{}, len(b))
	for _, x := range b {
		inB[x] = struct{}{}
	}
	var out []Atom
	for _, x := range a {
		if _, ok := inB[x]; ok {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}

// SubsetOf reports whether every atom of a also appears in b.
func SubsetOf(a, b []Atom) bool {
	inB := make(map[Atom]struct{}, len(b))
	for _, x := range b {
		inB[x] = struct{}{}
	}
	for _, x := range a {
		if _, ok := inB[x]; !ok {
			return false
		}
	}
	return true
}
