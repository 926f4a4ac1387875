// Package massfuncs provides non-negative mass assignments over finite
// possibility spaces: UMFunc with arbitrary non-negative total mass and
// PMFunc with total mass exactly one, the probability mass functions that
// make up credal sets.
package massfuncs

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

const massfuncsCodespace = "massfuncs"

var (
	ErrNegativeValue = errorsmod.Register(massfuncsCodespace, 1, "mass values must be non-negative")
	ErrMassMismatch  = errorsmod.Register(massfuncsCodespace, 2, "total mass does not match")
	ErrZeroMassEvent = errorsmod.Register(massfuncsCodespace, 3, "conditioning event has zero mass")
	ErrNoElements    = errorsmod.Register(massfuncsCodespace, 4, "no elements given")
)

// UMFunc is a unit mass function: an immutable non-negative vector with an
// arbitrary non-negative total mass. Its domain is trimmed to its support,
// so zero entries never distinguish two mass functions.
type UMFunc struct {
	v vects.Vector
}

// NewUMFunc builds a mass function from an outcome-to-mass mapping. Negative
// entries are rejected with ErrNegativeValue.
func NewUMFunc(m map[vects.Atom]math.Rat) (UMFunc, error) {
	v := vects.NewVector(m)
	return umFromVector(v)
}

// ParseUMFunc builds a mass function from outcome to rational-string pairs.
func ParseUMFunc(m map[vects.Atom]string) (UMFunc, error) {
	v, err := vects.ParseVector(m)
	if err != nil {
		return UMFunc{}, err
	}
	return umFromVector(v)
}

func umFromVector(v vects.Vector) (UMFunc, error) {
	if !v.IsNonNegative() {
		return UMFunc{}, errorsmod.Wrap(ErrNegativeValue, v.String())
	}
	return UMFunc{v: v.Restrict(v.Support())}, nil
}

// Uniform spreads unit mass uniformly over the given outcomes.
func Uniform(atoms []vects.Atom) (UMFunc, error) {
	if len(atoms) == 0 {
		return UMFunc{}, errorsmod.Wrap(ErrNoElements, "uniform mass function")
	}
	share, err := math.OneRat().Quo(math.NewRatFromInt64(int64(len(atoms))))
	if err != nil {
		return UMFunc{}, err
	}
	b := vects.NewBuilder()
	for _, x := range atoms {
		b.Set(x, share)
	}
	return UMFunc{v: b.Vector()}, nil
}

// Vector returns the underlying non-negative vector.
func (m UMFunc) Vector() vects.Vector {
	return m.v
}

// Get returns the mass at outcome x (zero outside the support).
func (m UMFunc) Get(x vects.Atom) math.Rat {
	return m.v.Get(x)
}

// Domain returns the sorted support of the mass function.
func (m UMFunc) Domain() []vects.Atom {
	return m.v.Domain()
}

// Mass returns the total mass.
func (m UMFunc) Mass() math.Rat {
	return m.v.Mass()
}

// WeightedSum returns Σ m(x)·g(x) over the gamble's domain.
func (m UMFunc) WeightedSum(g gambles.Gamble) math.Rat {
	return m.v.Dot(g.Vector())
}

// Equal reports whether two mass functions assign the same masses.
func (m UMFunc) Equal(n UMFunc) bool {
	return m.v.Equal(n.v)
}

// Key returns the canonical map key of the mass function.
func (m UMFunc) Key() string {
	return m.v.Key()
}

func (m UMFunc) String() string {
	return m.v.String()
}

// MarshalJSON renders the mass function as an object of canonical rational
// strings.
func (m UMFunc) MarshalJSON() ([]byte, error) {
	return m.v.MarshalJSON()
}

// PMFunc is a probability mass function: a UMFunc with total mass exactly
// one.
type PMFunc struct {
	UMFunc
}

// NewPMFunc builds a probability mass function. Construction is strict: a
// total mass different from one is rejected with ErrMassMismatch rather than
// silently renormalized; use NormalizedPMFunc for the normalizing
// constructor.
func NewPMFunc(m map[vects.Atom]math.Rat) (PMFunc, error) {
	um, err := NewUMFunc(m)
	if err != nil {
		return PMFunc{}, err
	}
	return pmFromUM(um)
}

// ParsePMFunc builds a probability mass function from outcome to
// rational-string pairs.
func ParsePMFunc(m map[vects.Atom]string) (PMFunc, error) {
	um, err := ParseUMFunc(m)
	if err != nil {
		return PMFunc{}, err
	}
	return pmFromUM(um)
}

func pmFromUM(um UMFunc) (PMFunc, error) {
	if !um.Mass().Equal(math.OneRat()) {
		return PMFunc{}, errorsmod.Wrapf(ErrMassMismatch, "total mass %s, want 1", um.Mass())
	}
	return PMFunc{UMFunc: um}, nil
}

// NormalizedPMFunc builds a probability mass function by dividing the given
// non-negative masses by their total. Zero total mass cannot be normalized.
func NormalizedPMFunc(m map[vects.Atom]math.Rat) (PMFunc, error) {
	um, err := NewUMFunc(m)
	if err != nil {
		return PMFunc{}, err
	}
	normalized, err := um.v.SumNormalized()
	if err != nil {
		return PMFunc{}, err
	}
	return PMFunc{UMFunc: UMFunc{v: normalized.Restrict(normalized.Support())}}, nil
}

// Degenerate returns the probability mass function concentrated on a single
// outcome.
func Degenerate(x vects.Atom) PMFunc {
	b := vects.NewBuilder().SetInt64(x, 1)
	return PMFunc{UMFunc: UMFunc{v: b.Vector()}}
}

// UniformPMFunc spreads probability one uniformly over the given outcomes.
func UniformPMFunc(atoms []vects.Atom) (PMFunc, error) {
	um, err := Uniform(atoms)
	if err != nil {
		return PMFunc{}, err
	}
	return PMFunc{UMFunc: um}, nil
}

// FromVector validates an arbitrary vector as a probability mass function.
func FromVector(v vects.Vector) (PMFunc, error) {
	um, err := umFromVector(v)
	if err != nil {
		return PMFunc{}, err
	}
	return pmFromUM(um)
}

// Condition returns the mass function conditioned on the given event:
// restriction followed by renormalization. An event carrying zero mass
// cannot be conditioned on.
func (p PMFunc) Condition(event []vects.Atom) (PMFunc, error) {
	restricted := p.v.Restrict(event)
	if restricted.Mass().IsZero() {
		return PMFunc{}, errorsmod.Wrapf(ErrZeroMassEvent, "event %v", event)
	}
	normalized, err := restricted.SumNormalized()
	if err != nil {
		return PMFunc{}, err
	}
	return PMFunc{UMFunc: UMFunc{v: normalized.Restrict(normalized.Support())}}, nil
}

// Expectation returns the expectation of the gamble, with the gamble's
// domain acting as the conditioning event: E(g | domain g). Conditional
// expectations are computed without materializing the conditional mass
// function.
func (p PMFunc) Expectation(g gambles.Gamble) (math.Rat, error) {
	event := vects.IntersectDomains(p.Domain(), g.Domain())
	restricted := p.v.Restrict(event)
	mass := restricted.Mass()
	if mass.IsZero() {
		return math.Rat{}, errorsmod.Wrapf(ErrZeroMassEvent, "event %v", event)
	}
	return restricted.Dot(g.Vector()).Quo(mass)
}

// Convex returns the convex combination Σ wᵢ·pᵢ. The weights must be
// non-negative and sum to one.
func Convex(pmfs []PMFunc, weights []math.Rat) (PMFunc, error) {
	if len(pmfs) == 0 {
		return PMFunc{}, errorsmod.Wrap(ErrNoElements, "convex combination")
	}
	if len(pmfs) != len(weights) {
		return PMFunc{}, errorsmod.Wrapf(ErrMassMismatch, "%d mass functions but %d weights", len(pmfs), len(weights))
	}
	for i, w := range weights {
		if w.IsNegative() {
			return PMFunc{}, errorsmod.Wrapf(ErrNegativeValue, "weight %d is %s", i, w)
		}
	}
	if !math.SumRatSlice(weights).Equal(math.OneRat()) {
		return PMFunc{}, errorsmod.Wrapf(ErrMassMismatch, "weights sum to %s, want 1", math.SumRatSlice(weights))
	}
	mix := vects.NewVector(nil)
	for i, p := range pmfs {
		mix = mix.Add(p.v.ScalarMul(weights[i]))
	}
	return FromVector(mix.Restrict(mix.Support()))
}
