// Package trafo implements linear maps between outcome spaces: relabeling,
// aggregation and refinement of possibility spaces, applied to vectors,
// gambles, vector sets, desirability sets and polytope generators.
package trafo

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/desirs"
	"github.com/equaeghe/murasyp/gambles"
	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/polytope"
	"github.com/equaeghe/murasyp/vects"
)

const trafoCodespace = "trafo"

var (
	ErrIncompatibleDomain = errorsmod.Register(trafoCodespace, 1, "operand does not fit the transformation's source domain")
	ErrNotInvertible      = errorsmod.Register(trafoCodespace, 2, "transformation is not invertible")
)

// Trafo is an immutable linear map between outcome spaces, stored as the
// image vector of each source outcome.
type Trafo struct {
	images map[vects.Atom]vects.Vector
}

// New creates a transformation from source outcomes to their images.
func New(images map[vects.Atom]vects.Vector) Trafo {
	m := make(map[vects.Atom]vects.Vector, len(images))
	for x, img := range images {
		m[x] = img
	}
	return Trafo{images: m}
}

// Builder accumulates source-to-image assignments before freezing them into
// a Trafo.
type Builder struct {
	images map[vects.Atom]vects.Vector
}

func NewBuilder() *Builder {
	return &Builder{images: make(map[vects.Atom]vects.Vector)}
}

// Set assigns the image of a source outcome, replacing any earlier one.
func (b *Builder) Set(x vects.Atom, img vects.Vector) *Builder {
	b.images[x] = img
	return b
}

// Trafo freezes the builder's assignments. The builder stays usable.
func (b *Builder) Trafo() Trafo {
	return New(b.images)
}

// SourceDomain returns the mapped source outcomes, sorted.
func (t Trafo) SourceDomain() []vects.Atom {
	return math.GetSortedKeys(t.images)
}

// TargetDomain returns the union of the image domains, sorted.
func (t Trafo) TargetDomain() []vects.Atom {
	domains := make([][]vects.Atom, 0, len(t.images))
	for _, img := range t.images {
		domains = append(domains, img.Domain())
	}
	return vects.UnionDomains(domains...)
}

// Image returns the image vector of a source outcome.
func (t Trafo) Image(x vects.Atom) (vects.Vector, error) {
	img, ok := t.images[x]
	if !ok {
		return vects.Vector{}, errorsmod.Wrapf(ErrIncompatibleDomain, "outcome %q is not mapped", x)
	}
	return img, nil
}

// Apply maps a vector through the transformation: Σₓ v(x)·T(x). The
// operand's domain must lie within the source domain.
func (t Trafo) Apply(v vects.Vector) (vects.Vector, error) {
	if !vects.SubsetOf(v.Domain(), t.SourceDomain()) {
		return vects.Vector{}, errorsmod.Wrapf(ErrIncompatibleDomain,
			"domain %v exceeds source %v", v.Domain(), t.SourceDomain())
	}
	out := vects.NewVector(nil)
	for _, x := range v.Domain() {
		out = out.Add(t.images[x].ScalarMul(v.Get(x)))
	}
	return out, nil
}

// ApplyGamble maps a gamble through the transformation.
func (t Trafo) ApplyGamble(g gambles.Gamble) (gambles.Gamble, error) {
	v, err := t.Apply(g.Vector())
	if err != nil {
		return gambles.Gamble{}, err
	}
	return gambles.FromVector(v), nil
}

// ApplySet maps every element of a vector set.
func (t Trafo) ApplySet(s vects.Set) (vects.Set, error) {
	out := vects.NewSet()
	for _, v := range s.Elements() {
		w, err := t.Apply(v)
		if err != nil {
			return vects.Set{}, err
		}
		out = out.Add(w)
	}
	return out, nil
}

// ApplyDesirSet maps every judgment of a desirability set into the target
// space. A judgment that maps to zero cannot be carried over.
func (t Trafo) ApplyDesirSet(d desirs.DesirSet) (desirs.DesirSet, error) {
	mapped := make([]gambles.Gamble, 0, d.Len())
	for _, r := range d.Elements() {
		g, err := t.ApplyGamble(r.Gamble())
		if err != nil {
			return desirs.DesirSet{}, err
		}
		mapped = append(mapped, g)
	}
	return desirs.New(mapped...)
}

// ApplyPolytope pushes a polytope's generators through the transformation
// and returns the image's vertex and ray sets. The image of a polytope
// under a linear map is again the hull of the mapped generators, so no
// invertibility is needed.
func (t Trafo) ApplyPolytope(p polytope.Polytope) (vertices, rays vects.Set, err error) {
	verts, rs, err := p.Generators()
	if err != nil {
		return vects.Set{}, vects.Set{}, err
	}
	vertices, err = t.ApplySet(verts)
	if err != nil {
		return vects.Set{}, vects.Set{}, err
	}
	rays, err = t.ApplySet(rs)
	if err != nil {
		return vects.Set{}, vects.Set{}, err
	}
	return vertices, rays, nil
}

// Inverse returns the inverse transformation, computed by Gauss-Jordan
// elimination over the source/target matrix. The map must be square and
// nonsingular.
func (t Trafo) Inverse() (Trafo, error) {
	source := t.SourceDomain()
	target := t.TargetDomain()
	n := len(source)
	if n == 0 || len(target) != n {
		return Trafo{}, errorsmod.Wrapf(ErrNotInvertible,
			"source dimension %d, target dimension %d", n, len(target))
	}

	// a[i][j] is the target-i component of the image of source-j; the right
	// half starts as the identity and ends as the inverse
	a := make([][]math.Rat, n)
	for i, y := range target {
		row := make([]math.Rat, 2*n)
		for j, x := range source {
			row[j] = t.images[x].Get(y)
		}
		for j := n; j < 2*n; j++ {
			row[j] = math.ZeroRat()
		}
		row[n+i] = math.OneRat()
		a[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for i := col; i < n; i++ {
			if !a[i][col].IsZero() {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			return Trafo{}, errorsmod.Wrapf(ErrNotInvertible, "rank deficient at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv, err := a[col][col].Inv()
		if err != nil {
			return Trafo{}, errorsmod.Wrap(ErrNotInvertible, err.Error())
		}
		for j := range a[col] {
			a[col][j] = a[col][j].Mul(inv)
		}
		for i := 0; i < n; i++ {
			if i == col || a[i][col].IsZero() {
				continue
			}
			f := a[i][col]
			for j := range a[i] {
				a[i][j] = a[i][j].Sub(f.Mul(a[col][j]))
			}
		}
	}

	// column y of the inverse matrix is the image of target outcome y
	images := make(map[vects.Atom]vects.Vector, n)
	for i, y := range target {
		b := vects.NewBuilder()
		for j, x := range source {
			b.Set(x, a[j][n+i])
		}
		images[y] = b.Vector()
	}
	return Trafo{images: images}, nil
}
