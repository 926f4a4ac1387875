// Package polytope answers the geometric questions of the library with exact
// rational arithmetic: linear-programming feasibility and optimization, double
// description vertex/ray enumeration, and the Polytope value type built from
// gamble constraints. No floating point is used anywhere, so accept/reject
// decisions are exact and reproducible.
package polytope

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/equaeghe/murasyp/math"
	"github.com/equaeghe/murasyp/vects"
)

const polytopeCodespace = "polytope"

var (
	ErrPolytope          = errorsmod.Register(polytopeCodespace, 1, "polytope computation failed")
	ErrDimensionMismatch = errorsmod.Register(polytopeCodespace, 2, "constraint does not fit the space")
	ErrNoSpace           = errorsmod.Register(polytopeCodespace, 3, "empty possibility space")
)

// Matrix is a dense rational H-representation in the cdd convention: a row
// [b | a₁ … aₙ] states b + a·x ≥ 0 over the column atoms, and rows listed in
// Linear hold with equality.
type Matrix struct {
	cols   []vects.Atom
	rows   [][]math.Rat
	linear map[int]struct{}
}

// NewMatrix creates an empty H-representation over the given column atoms.
func NewMatrix(cols []vects.Atom) (*Matrix, error) {
	if len(cols) == 0 {
		return nil, errorsmod.Wrap(ErrNoSpace, "matrix needs at least one column")
	}
	cp := make([]vects.Atom, len(cols))
	copy(cp, cols)
	return &Matrix{cols: cp, linear: make(map[int]struct{})}, nil
}

// Cols returns the column atoms of the matrix.
func (m *Matrix) Cols() []vects.Atom {
	return m.cols
}

// NumRows returns the number of constraint rows.
func (m *Matrix) NumRows() int {
	return len(m.rows)
}

// AddRow appends the constraint row [b | a]; when linear is set the row holds
// with equality. The row length must be one more than the number of columns.
func (m *Matrix) AddRow(row []math.Rat, linear bool) error {
	if len(row) != len(m.cols)+1 {
		return errorsmod.Wrapf(ErrDimensionMismatch, "row has %d entries, want %d", len(row), len(m.cols)+1)
	}
	cp := make([]math.Rat, len(row))
	copy(cp, row)
	m.rows = append(m.rows, cp)
	if linear {
		m.linear[len(m.rows)-1] = struct{}{}
	}
	return nil
}

// AddVectorRow appends the constraint b + v·x ≥ 0, reading the coefficients
// of v in column order. Atoms of v outside the columns are rejected.
func (m *Matrix) AddVectorRow(b math.Rat, v vects.Vector, linear bool) error {
	if !vects.SubsetOf(v.Support(), m.cols) {
		return errorsmod.Wrapf(ErrDimensionMismatch, "vector %s outside columns %v", v, m.cols)
	}
	row := make([]math.Rat, len(m.cols)+1)
	row[0] = b
	for i, x := range m.cols {
		row[i+1] = v.Get(x)
	}
	return m.AddRow(row, linear)
}

// MatrixFromVectors builds the homogeneous inequality representation with one
// row 0 + v·x ≥ 0 per vector of the set, over the set's own domain.
func MatrixFromVectors(s vects.Set) (*Matrix, error) {
	m, err := NewMatrix(s.Domain())
	if err != nil {
		return nil, err
	}
	for _, v := range s.Elements() {
		if err := m.AddVectorRow(math.ZeroRat(), v, false); err != nil {
			return nil, err
		}
	}
	return m, nil
}
