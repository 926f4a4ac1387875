package gambles

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

// Ray is the canonical representative of the positive-scaling class of a
// gamble: its sup-norm is one and its domain is trimmed to its support, so
// any two positive multiples of the same gamble produce equal Rays.
type Ray struct {
	g Gamble
}

// NewRay normalizes a gamble into its canonical ray. The zero gamble has no
// direction and is rejected with ErrZeroGamble.
func NewRay(g Gamble) (Ray, error) {
	norm := g.Norm()
	if norm.IsZero() {
		return Ray{}, errorsmod.Wrap(ErrZeroGamble, "cannot normalize")
	}
	scaled, err := g.ScalarDiv(norm)
	if err != nil {
		return Ray{}, err
	}
	return Ray{g: scaled.Restrict(scaled.Support())}, nil
}

// ParseRay builds a ray directly from outcome to rational-string pairs.
func ParseRay(m map[vects.Atom]string) (Ray, error) {
	g, err := Parse(m)
	if err != nil {
		return Ray{}, err
	}
	return NewRay(g)
}

// AxisRay returns the ray along the given outcome axis.
func AxisRay(x vects.Atom) Ray {
	return Ray{g: Indicator([]vects.Atom{x})}
}

// Gamble returns the normalized gamble the ray stores. Ray arithmetic goes
// through this: operations on the underlying gamble yield Gambles, which can
// be re-normalized into Rays when needed.
func (r Ray) Gamble() Gamble {
	return r.g
}

// Get returns the payoff at outcome x.
func (r Ray) Get(x vects.Atom) math.Rat {
	return r.g.Get(x)
}

// Domain returns the sorted domain of the ray, which equals its support.
func (r Ray) Domain() []vects.Atom {
	return r.g.Domain()
}

// Norm of a ray is always one.
func (r Ray) Norm() math.Rat {
	return r.g.Norm()
}

// Equal reports whether two rays represent the same direction.
func (r Ray) Equal(s Ray) bool {
	return r.g.Equal(s.g)
}

// Key returns the canonical map key of the ray.
func (r Ray) Key() string {
	return r.g.Key()
}

func (r Ray) String() string {
	return r.g.String()
}
