package vects

import (
	"github.com/equaeghe/murasyp/math"
)

// Builder is the mutable construction variant of Function and Vector. It is a
// transient value: freeze it with Function or Vector once construction is
// done, after which the result never changes. A Builder is not safe for
// concurrent use; frozen results are.
type Builder struct {
	m map[Atom]math.Rat
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{m: make(map[Atom]math.Rat)}
}

// Set assigns v to atom x, replacing any earlier assignment.
func (b *Builder) Set(x Atom, v math.Rat) *Builder {
	b.m[x] = v
	return b
}

// SetInt64 assigns the integer v to atom x.
func (b *Builder) SetInt64(x Atom, v int64) *Builder {
	return b.Set(x, math.NewRatFromInt64(v))
}

// SetString parses s as a rational and assigns it to atom x.
func (b *Builder) SetString(x Atom, s string) (*Builder, error) {
	v, err := math.NewRatFromString(s)
	if err != nil {
		return b, err
	}
	return b.Set(x, v), nil
}

// Remove deletes the assignment for atom x, if any.
func (b *Builder) Remove(x Atom) *Builder {
	delete(b.m, x)
	return b
}

// Function freezes the builder into an immutable Function. The builder may be
// reused afterwards without affecting the result.
func (b *Builder) Function() Function {
	return NewFunction(b.m)
}

// Vector freezes the builder into an immutable Vector.
func (b *Builder) Vector() Vector {
	return NewVector(b.m)
}
