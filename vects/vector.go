package vects

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/math"
)

// Vector is an immutable rational-valued vector over atoms. Unlike Function
// it is total: atoms outside the stored domain take the value zero, and
// pointwise arithmetic works over the union of domains. Vectors with equal
// stored entries compare Equal and share a Key, so they can be used as set
// elements via Key.
type Vector struct {
	m map[Atom]math.Rat
}

// NewVector copies the given mapping into a new Vector. The argument is not
// retained.
func NewVector(m map[Atom]math.Rat) Vector {
	cp := make(map[Atom]math.Rat, len(m))
	for x, v := range m {
		cp[x] = v
	}
	return Vector{m: cp}
}

// ParseVector builds a Vector from atom to rational-string pairs.
func ParseVector(m map[Atom]string) (Vector, error) {
	f, err := ParseFunction(m)
	if err != nil {
		return Vector{}, err
	}
	return Vector{m: f.m}, nil
}

// VectorFromFunction reinterprets a Function as a Vector, extending it with
// zero outside its domain.
func VectorFromFunction(f Function) Vector {
	return NewVector(f.m)
}

// Function returns the strict-domain view of the stored entries.
func (v Vector) Function() Function {
	return NewFunction(v.m)
}

// Len returns the number of stored entries.
func (v Vector) Len() int {
	return len(v.m)
}

// Has reports whether x has a stored entry.
func (v Vector) Has(x Atom) bool {
	_, ok := v.m[x]
	return ok
}

// Get returns the value at x; atoms without a stored entry map to zero.
func (v Vector) Get(x Atom) math.Rat {
	if val, ok := v.m[x]; ok {
		return val
	}
	return math.ZeroRat()
}

// Domain returns the sorted atoms with a stored entry.
func (v Vector) Domain() []Atom {
	return math.GetSortedKeys(v.m)
}

// Support returns the sorted atoms with a non-zero value.
func (v Vector) Support() []Atom {
	support := make(map[Atom]struct{}, len(v.m))
	for x, val := range v.m {
		if !val.IsZero() {
			support[x] = struct{}{}
		}
	}
	return math.GetSortedKeys(support)
}

// Range returns the distinct stored values in ascending order.
func (v Vector) Range() []math.Rat {
	return rangeOf(v.m)
}

// Add returns the pointwise sum of v and w over the union of their domains.
func (v Vector) Add(w Vector) Vector {
	return v.pointwise(w, math.Rat.Add)
}

// Sub returns the pointwise difference of v and w over the union of their
// domains.
func (v Vector) Sub(w Vector) Vector {
	return v.pointwise(w, math.Rat.Sub)
}

// Hadamard returns the pointwise product of v and w over the union of their
// domains.
func (v Vector) Hadamard(w Vector) Vector {
	return v.pointwise(w, math.Rat.Mul)
}

func (v Vector) pointwise(w Vector, op func(math.Rat, math.Rat) math.Rat) Vector {
	res := make(map[Atom]math.Rat, len(v.m)+len(w.m))
	for x, val := range v.m {
		res[x] = op(val, w.Get(x))
	}
	for x, val := range w.m {
		if _, done := res[x]; !done {
			res[x] = op(math.ZeroRat(), val)
		}
	}
	return Vector{m: res}
}

// ScalarMul returns a new Vector with every value multiplied by c.
func (v Vector) ScalarMul(c math.Rat) Vector {
	res := make(map[Atom]math.Rat, len(v.m))
	for x, val := range v.m {
		res[x] = val.Mul(c)
	}
	return Vector{m: res}
}

// ScalarDiv returns a new Vector with every value divided by c; c must be
// non-zero.
func (v Vector) ScalarDiv(c math.Rat) (Vector, error) {
	if c.IsZero() {
		return Vector{}, ErrZeroDivisor
	}
	inv, err := c.Inv()
	if err != nil {
		return Vector{}, err
	}
	return v.ScalarMul(inv), nil
}

// Neg returns the pointwise negation of v.
func (v Vector) Neg() Vector {
	return v.ScalarMul(math.NewRatFromInt64(-1))
}

// Restrict returns the vector restricted or extended with zero to exactly the
// given atoms.
func (v Vector) Restrict(atoms []Atom) Vector {
	res := make(map[Atom]math.Rat, len(atoms))
	for _, x := range atoms {
		res[x] = v.Get(x)
	}
	return Vector{m: res}
}

// Mass returns the sum of all values of the vector.
func (v Vector) Mass() math.Rat {
	sum := math.ZeroRat()
	for _, val := range v.m {
		sum = sum.Add(val)
	}
	return sum
}

// SumNormalized returns the vector with its values divided by its mass, or
// ErrZeroMass when the mass is zero.
func (v Vector) SumNormalized() (Vector, error) {
	mass := v.Mass()
	if mass.IsZero() {
		return Vector{}, errorsmod.Wrap(ErrZeroMass, v.String())
	}
	return v.ScalarDiv(mass)
}

// IsNonNegative reports whether every value of the vector is non-negative.
func (v Vector) IsNonNegative() bool {
	for _, val := range v.m {
		if val.IsNegative() {
			return false
		}
	}
	return true
}

// Dot returns the inner product of v and w. Atoms missing from either vector
// contribute zero.
func (v Vector) Dot(w Vector) math.Rat {
	sum := math.ZeroRat()
	for x, val := range v.m {
		sum = sum.Add(val.Mul(w.Get(x)))
	}
	return sum
}

// IsZero reports whether the vector has no non-zero value.
func (v Vector) IsZero() bool {
	for _, val := range v.m {
		if !val.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports whether v and w have the same stored entries.
func (v Vector) Equal(w Vector) bool {
	return mapsEqual(v.m, w.m)
}

// Key returns a canonical string usable as a map key; two Vectors have the
// same Key exactly when they are Equal.
func (v Vector) Key() string {
	return keyOf(v.m)
}

func (v Vector) String() string {
	return stringOf(v.m)
}

// MarshalJSON renders the vector as an object of canonical rational strings.
func (v Vector) MarshalJSON() ([]byte, error) {
	return jsonOf(v.m)
}
