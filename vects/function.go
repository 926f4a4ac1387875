// Package vects provides exact rational-valued functions and vectors over
// finite sets of outcome labels. Function requires matching domains for
// pointwise arithmetic; Vector treats unspecified values as zero and operates
// over the union of domains. Both are immutable once constructed; Builder is
// the mutable construction variant.
package vects

import (
	"fmt"
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/math"
)

// Atom identifies a single outcome in a possibility space.
type Atom = string

const vectsCodespace = "vects"

var (
	ErrDomainMismatch = errorsmod.Register(vectsCodespace, 1, "domains do not match")
	ErrUndefinedAtom  = errorsmod.Register(vectsCodespace, 2, "atom outside the domain")
	ErrZeroMass       = errorsmod.Register(vectsCodespace, 3, "total mass is zero")
	ErrZeroDivisor    = errorsmod.Register(vectsCodespace, 4, "scalar divisor is zero")
)

// Function is an immutable rational-valued function over a finite domain of
// atoms. Querying an atom outside the domain is an error, and pointwise
// arithmetic requires equal domains; see Vector for the zero-extension
// variant.
type Function struct {
	m map[Atom]math.Rat
}

// NewFunction copies the given mapping into a new Function. The argument is
// not retained.
func NewFunction(m map[Atom]math.Rat) Function {
	cp := make(map[Atom]math.Rat, len(m))
	for x, v := range m {
		cp[x] = v
	}
	return Function{m: cp}
}

// ParseFunction builds a Function from atom to rational-string pairs; the
// strings may use fraction, integer, or decimal notation.
func ParseFunction(m map[Atom]string) (Function, error) {
	cp := make(map[Atom]math.Rat, len(m))
	for x, s := range m {
		v, err := math.NewRatFromString(s)
		if err != nil {
			return Function{}, errorsmod.Wrapf(err, "value for atom %q", x)
		}
		cp[x] = v
	}
	return Function{m: cp}, nil
}

// Len returns the size of the domain.
func (f Function) Len() int {
	return len(f.m)
}

// Has reports whether x is in the domain.
func (f Function) Has(x Atom) bool {
	_, ok := f.m[x]
	return ok
}

// Get returns the value at x, or ErrUndefinedAtom when x is outside the
// domain.
func (f Function) Get(x Atom) (math.Rat, error) {
	v, ok := f.m[x]
	if !ok {
		return math.Rat{}, errorsmod.Wrap(ErrUndefinedAtom, x)
	}
	return v, nil
}

// Domain returns the sorted atoms for which the function is defined.
func (f Function) Domain() []Atom {
	return math.GetSortedKeys(f.m)
}

// Support returns the sorted atoms with a non-zero value.
func (f Function) Support() []Atom {
	support := make(map[Atom]struct{}, len(f.m))
	for x, v := range f.m {
		if !v.IsZero() {
			support[x] = struct{}{}
		}
	}
	return math.GetSortedKeys(support)
}

// Range returns the distinct values taken by the function, in ascending
// order.
func (f Function) Range() []math.Rat {
	return rangeOf(f.m)
}

// Equal reports whether f and g have the same domain and the same values.
func (f Function) Equal(g Function) bool {
	return mapsEqual(f.m, g.m)
}

// Key returns a canonical string for use as a map key; two Functions have the
// same Key exactly when they are Equal.
func (f Function) Key() string {
	return keyOf(f.m)
}

func (f Function) String() string {
	return stringOf(f.m)
}

// MarshalJSON renders the function as an object of canonical rational
// strings.
func (f Function) MarshalJSON() ([]byte, error) {
	return jsonOf(f.m)
}

// Add returns the pointwise sum of f and g. The domains must be equal.
func (f Function) Add(g Function) (Function, error) {
	return f.pointwise(g, math.Rat.Add)
}

// Sub returns the pointwise difference of f and g. The domains must be equal.
func (f Function) Sub(g Function) (Function, error) {
	return f.pointwise(g, math.Rat.Sub)
}

// Hadamard returns the pointwise product of f and g. The domains must be
// equal.
func (f Function) Hadamard(g Function) (Function, error) {
	return f.pointwise(g, math.Rat.Mul)
}

func (f Function) pointwise(g Function, op func(math.Rat, math.Rat) math.Rat) (Function, error) {
	if len(f.m) != len(g.m) {
		return Function{}, errorsmod.Wrapf(ErrDomainMismatch, "%d atoms vs %d atoms", len(f.m), len(g.m))
	}
	res := make(map[Atom]math.Rat, len(f.m))
	for x, v := range f.m {
		w, ok := g.m[x]
		if !ok {
			return Function{}, errorsmod.Wrapf(ErrDomainMismatch, "atom %q missing from operand", x)
		}
		res[x] = op(v, w)
	}
	return Function{m: res}, nil
}

// ScalarMul returns a new Function with every value multiplied by c.
func (f Function) ScalarMul(c math.Rat) Function {
	res := make(map[Atom]math.Rat, len(f.m))
	for x, v := range f.m {
		res[x] = v.Mul(c)
	}
	return Function{m: res}
}

// ScalarDiv returns a new Function with every value divided by c; c must be
// non-zero.
func (f Function) ScalarDiv(c math.Rat) (Function, error) {
	if c.IsZero() {
		return Function{}, ErrZeroDivisor
	}
	inv, err := c.Inv()
	if err != nil {
		return Function{}, err
	}
	return f.ScalarMul(inv), nil
}

// Neg returns the pointwise negation of f.
func (f Function) Neg() Function {
	return f.ScalarMul(math.NewRatFromInt64(-1))
}

// shared map helpers, used by both Function and Vector

func rangeOf(m map[Atom]math.Rat) []math.Rat {
	distinct := make(map[string]math.Rat, len(m))
	for _, v := range m {
		distinct[v.String()] = v
	}
	values := make([]math.Rat, 0, len(distinct))
	for _, v := range distinct {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Lt(values[j]) })
	return values
}

func mapsEqual(a, b map[Atom]math.Rat) bool {
	if len(a) != len(b) {
		return false
	}
	for x, v := range a {
		w, ok := b[x]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

func keyOf(m map[Atom]math.Rat) string {
	var sb strings.Builder
	for i, x := range math.GetSortedKeys(m) {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(x)
		sb.WriteByte('=')
		sb.WriteString(m[x].String())
	}
	return sb.String()
}

func stringOf(m map[Atom]math.Rat) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, x := range math.GetSortedKeys(m) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", x, m[x])
	}
	sb.WriteByte('}')
	return sb.String()
}

func jsonOf(m map[Atom]math.Rat) ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, x := range math.GetSortedKeys(m) {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%q:%q", x, m[x].String())
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}
