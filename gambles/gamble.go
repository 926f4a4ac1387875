// Package gambles models uncertain rewards over a finite possibility space:
// Gamble maps outcomes to payoffs, Ray is the canonical representative of a
// positive-scaling class of gambles, and Cone is the generator set of a
// conic hull.
package gambles

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

const gamblesCodespace = "gambles"

var (
	ErrZeroGamble     = errorsmod.Register(gamblesCodespace, 1, "gamble is identically zero")
	ErrInvalidScale   = errorsmod.Register(gamblesCodespace, 2, "scale factor is zero")
	ErrConstantGamble = errorsmod.Register(gamblesCodespace, 3, "gamble is constant")
)

// Gamble is an uncertain reward: a rational payoff for every outcome of a
// finite possibility space. It carries Vector semantics, so outcomes outside
// the stored domain pay zero and arithmetic zero-extends over domain unions.
type Gamble struct {
	v vects.Vector
}

// New builds a gamble from an outcome-to-payoff mapping.
func New(m map[vects.Atom]math.Rat) Gamble {
	return Gamble{v: vects.NewVector(m)}
}

// Parse builds a gamble from outcome to rational-string pairs.
func Parse(m map[vects.Atom]string) (Gamble, error) {
	v, err := vects.ParseVector(m)
	if err != nil {
		return Gamble{}, err
	}
	return Gamble{v: v}, nil
}

// FromVector reinterprets a vector as a gamble.
func FromVector(v vects.Vector) Gamble {
	return Gamble{v: v}
}

// Indicator returns the gamble paying one on each of the given outcomes and
// zero elsewhere.
func Indicator(atoms []vects.Atom) Gamble {
	b := vects.NewBuilder()
	for _, x := range atoms {
		b.SetInt64(x, 1)
	}
	return Gamble{v: b.Vector()}
}

// Vector returns the underlying vector of payoffs.
func (g Gamble) Vector() vects.Vector {
	return g.v
}

// Get returns the payoff at outcome x (zero outside the domain).
func (g Gamble) Get(x vects.Atom) math.Rat {
	return g.v.Get(x)
}

// Domain returns the sorted outcome space of the gamble.
func (g Gamble) Domain() []vects.Atom {
	return g.v.Domain()
}

// Support returns the sorted outcomes with a non-zero payoff.
func (g Gamble) Support() []vects.Atom {
	return g.v.Support()
}

// Bounds returns the minimum and maximum payoff over the domain. The empty
// gamble reports (0, 0).
func (g Gamble) Bounds() (math.Rat, math.Rat) {
	values := g.v.Range()
	if len(values) == 0 {
		return math.ZeroRat(), math.ZeroRat()
	}
	return values[0], values[len(values)-1]
}

// Norm returns the sup-norm max |g(x)| of the gamble.
func (g Gamble) Norm() math.Rat {
	min, max := g.Bounds()
	return math.MaxRat(min.Neg(), max)
}

// ScaledShifted returns the gamble a·g + b. The scale a must be non-zero,
// since a zero scale collapses all payoff information.
func (g Gamble) ScaledShifted(a, b math.Rat) (Gamble, error) {
	if a.IsZero() {
		return Gamble{}, errorsmod.Wrap(ErrInvalidScale, "scaled_shifted with a = 0")
	}
	m := make(map[vects.Atom]math.Rat, g.v.Len())
	for _, x := range g.v.Domain() {
		m[x] = a.Mul(g.v.Get(x)).Add(b)
	}
	return New(m), nil
}

// UnitScaled returns (g - min g)/(max g - min g), the affine rescaling of the
// gamble onto [0, 1]. Constant gambles cannot be rescaled.
func (g Gamble) UnitScaled() (Gamble, error) {
	min, max := g.Bounds()
	spread := max.Sub(min)
	if spread.IsZero() {
		return Gamble{}, errorsmod.Wrap(ErrConstantGamble, g.String())
	}
	a, err := spread.Inv()
	if err != nil {
		return Gamble{}, err
	}
	return g.ScaledShifted(a, min.Neg().Mul(a))
}

// Add returns the pointwise sum of two gambles over the union of domains.
func (g Gamble) Add(h Gamble) Gamble {
	return Gamble{v: g.v.Add(h.v)}
}

// Sub returns the pointwise difference of two gambles.
func (g Gamble) Sub(h Gamble) Gamble {
	return Gamble{v: g.v.Sub(h.v)}
}

// Hadamard returns the pointwise product of two gambles.
func (g Gamble) Hadamard(h Gamble) Gamble {
	return Gamble{v: g.v.Hadamard(h.v)}
}

// ScalarMul returns the gamble with every payoff multiplied by c.
func (g Gamble) ScalarMul(c math.Rat) Gamble {
	return Gamble{v: g.v.ScalarMul(c)}
}

// ScalarDiv returns the gamble with every payoff divided by c.
func (g Gamble) ScalarDiv(c math.Rat) (Gamble, error) {
	v, err := g.v.ScalarDiv(c)
	if err != nil {
		return Gamble{}, err
	}
	return Gamble{v: v}, nil
}

// Neg returns the pointwise negation of the gamble.
func (g Gamble) Neg() Gamble {
	return Gamble{v: g.v.Neg()}
}

// Restrict returns the gamble restricted or zero-extended to exactly the
// given outcomes.
func (g Gamble) Restrict(atoms []vects.Atom) Gamble {
	return Gamble{v: g.v.Restrict(atoms)}
}

// PairSep joins outcome labels in cylindrical extensions.
const PairSep = "·"

// CylinderExtend extends the gamble onto the product of its domain with the
// given atoms: the payoff at x·y equals the payoff at x for every y.
func (g Gamble) CylinderExtend(atoms []vects.Atom) Gamble {
	m := make(map[vects.Atom]math.Rat, g.v.Len()*len(atoms))
	for _, x := range g.v.Domain() {
		for _, y := range atoms {
			m[x+PairSep+y] = g.v.Get(x)
		}
	}
	return New(m)
}

// IsZero reports whether the gamble pays zero everywhere.
func (g Gamble) IsZero() bool {
	return g.v.IsZero()
}

// Equal reports whether two gambles have the same stored payoffs.
func (g Gamble) Equal(h Gamble) bool {
	return g.v.Equal(h.v)
}

// Key returns the canonical map key of the gamble.
func (g Gamble) Key() string {
	return g.v.Key()
}

func (g Gamble) String() string {
	return g.v.String()
}

// MarshalJSON renders the gamble as an object of canonical rational strings.
func (g Gamble) MarshalJSON() ([]byte, error) {
	return g.v.MarshalJSON()
}
