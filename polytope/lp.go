package polytope

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/equaeghe/murasyp/math"
)

// Relation is the sense of a linear constraint.
type Relation int

const (
	RelGTE Relation = iota // a·x ≥ b
	RelLTE                 // a·x ≤ b
	RelEQ                  // a·x = b
)

func (r Relation) String() string {
	switch r {
	case RelGTE:
		return ">="
	case RelLTE:
		return "<="
	case RelEQ:
		return "=="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// LPStatus is the outcome of a linear-programming solve.
type LPStatus int

const (
	StatusOptimal LPStatus = iota
	StatusInfeasible
	StatusUnbounded
)

func (s LPStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return fmt.Sprintf("LPStatus(%d)", int(s))
	}
}

// LPResult carries the solve outcome. Objective and Primal are only
// meaningful for StatusOptimal.
type LPResult struct {
	Status    LPStatus
	Objective math.Rat
	Primal    []math.Rat
}

type lpRow struct {
	coeffs []math.Rat
	rel    Relation
	rhs    math.Rat
}

// LinProg is a linear program: maximize c·x subject to linear constraints.
// Variables are non-negative unless freed with SetFree. Minimization is done
// by negating the objective at the call site.
type LinProg struct {
	numVars     int
	objective   []math.Rat
	nonNegative []bool
	rows        []lpRow
}

// NewLinProg creates a program with the given number of variables, all
// non-negative and with a zero objective (a pure feasibility problem until
// SetObjective is called).
func NewLinProg(numVars int) *LinProg {
	obj := make([]math.Rat, numVars)
	nn := make([]bool, numVars)
	for j := range obj {
		obj[j] = math.ZeroRat()
		nn[j] = true
	}
	return &LinProg{numVars: numVars, objective: obj, nonNegative: nn}
}

// NumVars returns the number of variables.
func (p *LinProg) NumVars() int {
	return p.numVars
}

// SetObjective replaces the maximization objective.
func (p *LinProg) SetObjective(c []math.Rat) error {
	if len(c) != p.numVars {
		return errorsmod.Wrapf(ErrDimensionMismatch, "objective has %d entries, want %d", len(c), p.numVars)
	}
	cp := make([]math.Rat, len(c))
	copy(cp, c)
	p.objective = cp
	return nil
}

// SetFree removes the non-negativity restriction from variable j.
func (p *LinProg) SetFree(j int) {
	p.nonNegative[j] = false
}

// AddRow appends the constraint coeffs·x rel rhs.
func (p *LinProg) AddRow(coeffs []math.Rat, rel Relation, rhs math.Rat) error {
	if len(coeffs) != p.numVars {
		return errorsmod.Wrapf(ErrDimensionMismatch, "row has %d entries, want %d", len(coeffs), p.numVars)
	}
	cp := make([]math.Rat, len(coeffs))
	copy(cp, coeffs)
	p.rows = append(p.rows, lpRow{coeffs: cp, rel: rel, rhs: rhs})
	return nil
}

// Solver runs exact-arithmetic linear programming and vertex enumeration.
// The zero Solver is usable; WithLogger attaches a logger for debug-level
// pivot traces.
type Solver struct {
	logger log.Logger
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithLogger attaches a logger to the solver.
func WithLogger(l log.Logger) SolverOption {
	return func(s *Solver) { s.logger = l }
}

// NewSolver creates a solver; without options it logs nowhere.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{logger: log.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Solver) log() log.Logger {
	if s.logger == nil {
		return log.NewNopLogger()
	}
	return s.logger
}

// pivot budget; Bland's rule terminates long before this on any sane input,
// so exceeding it indicates a solver invariant violation.
const maxPivots = 1 << 20

// tableau is the standard-form simplex state: maximize rc over rows
// a·y = b, y ≥ 0, with basis[i] the basic column of row i.
type tableau struct {
	a     [][]math.Rat
	b     []math.Rat
	rc    []math.Rat
	obj   math.Rat
	basis []int
}

// Solve runs two-phase primal simplex with Bland's rule. All arithmetic is
// exact, so the returned status is a theorem about the input, not an
// approximation.
func (s *Solver) Solve(p *LinProg) (LPResult, error) {
	if p.numVars == 0 {
		return LPResult{}, errorsmod.Wrap(ErrPolytope, "program has no variables")
	}

	// standard-form columns: one per non-negative variable, a split pair
	// per free variable, one slack per inequality row
	colOf := make([]int, p.numVars)
	negColOf := make([]int, p.numVars)
	n := 0
	for j := 0; j < p.numVars; j++ {
		colOf[j] = n
		n++
		if p.nonNegative[j] {
			negColOf[j] = -1
		} else {
			negColOf[j] = n
			n++
		}
	}
	m := len(p.rows)
	slackCol := make([]int, m)
	for i, r := range p.rows {
		if r.rel == RelEQ {
			slackCol[i] = -1
		} else {
			slackCol[i] = n
			n++
		}
	}

	t := &tableau{
		a:     make([][]math.Rat, m),
		b:     make([]math.Rat, m),
		basis: make([]int, m),
	}
	total := n + m // artificial column i sits at n+i
	for i, r := range p.rows {
		row := make([]math.Rat, total)
		for j := range row {
			row[j] = math.ZeroRat()
		}
		for j, cj := range r.coeffs {
			row[colOf[j]] = cj
			if negColOf[j] >= 0 {
				row[negColOf[j]] = cj.Neg()
			}
		}
		switch r.rel {
		case RelLTE:
			row[slackCol[i]] = math.OneRat()
		case RelGTE:
			row[slackCol[i]] = math.NewRatFromInt64(-1)
		}
		rhs := r.rhs
		if rhs.IsNegative() {
			for j := range row {
				row[j] = row[j].Neg()
			}
			rhs = rhs.Neg()
		}
		row[n+i] = math.OneRat()
		t.a[i] = row
		t.b[i] = rhs
		t.basis[i] = n + i
	}

	// phase 1: maximize -(sum of artificials); with the artificial basis
	// the reduced cost of column j is the column sum and the objective
	// starts at -(sum of rhs)
	t.rc = make([]math.Rat, total)
	t.obj = math.ZeroRat()
	for j := 0; j < total; j++ {
		rcj := math.ZeroRat()
		if j >= n {
			rcj = math.NewRatFromInt64(-1)
		}
		for i := 0; i < m; i++ {
			rcj = rcj.Add(t.a[i][j])
		}
		t.rc[j] = rcj
	}
	for i := 0; i < m; i++ {
		t.obj = t.obj.Sub(t.b[i])
	}

	if err := s.iterate(t, total); err != nil {
		return LPResult{}, err
	}
	if t.obj.IsNegative() {
		s.log().Debug("lp infeasible", "phase1", t.obj.String())
		return LPResult{Status: StatusInfeasible}, nil
	}

	// drive leftover artificials out of the basis; rows where no real
	// column can replace them are redundant and dropped
	for i := 0; i < len(t.basis); {
		if t.basis[i] < n {
			i++
			continue
		}
		pivoted := false
		for j := 0; j < n; j++ {
			if !t.a[i][j].IsZero() {
				if err := t.pivot(i, j); err != nil {
					return LPResult{}, err
				}
				pivoted = true
				break
			}
		}
		if pivoted {
			i++
			continue
		}
		last := len(t.a) - 1
		t.a[i] = t.a[last]
		t.b[i] = t.b[last]
		t.basis[i] = t.basis[last]
		t.a = t.a[:last]
		t.b = t.b[:last]
		t.basis = t.basis[:last]
	}

	// phase 2: drop the artificial columns and chase the real objective
	for i := range t.a {
		t.a[i] = t.a[i][:n]
	}
	cFull := make([]math.Rat, n)
	for j := range cFull {
		cFull[j] = math.ZeroRat()
	}
	for j := 0; j < p.numVars; j++ {
		cFull[colOf[j]] = p.objective[j]
		if negColOf[j] >= 0 {
			cFull[negColOf[j]] = p.objective[j].Neg()
		}
	}
	t.rc = make([]math.Rat, n)
	t.obj = math.ZeroRat()
	for i := range t.basis {
		t.obj = t.obj.Add(cFull[t.basis[i]].Mul(t.b[i]))
	}
	for j := 0; j < n; j++ {
		rcj := cFull[j]
		for i := range t.basis {
			rcj = rcj.Sub(cFull[t.basis[i]].Mul(t.a[i][j]))
		}
		t.rc[j] = rcj
	}

	if err := s.iterate(t, n); err != nil {
		if errorsmod.IsOf(err, errUnbounded) {
			return LPResult{Status: StatusUnbounded}, nil
		}
		return LPResult{}, err
	}

	xstd := make([]math.Rat, n)
	for j := range xstd {
		xstd[j] = math.ZeroRat()
	}
	for i, bj := range t.basis {
		xstd[bj] = t.b[i]
	}
	primal := make([]math.Rat, p.numVars)
	for j := 0; j < p.numVars; j++ {
		primal[j] = xstd[colOf[j]]
		if negColOf[j] >= 0 {
			primal[j] = primal[j].Sub(xstd[negColOf[j]])
		}
	}
	return LPResult{Status: StatusOptimal, Objective: t.obj, Primal: primal}, nil
}

var errUnbounded = errorsmod.Register(polytopeCodespace, 9, "objective is unbounded")

// iterate runs Bland-rule simplex pivots on columns [0, limit) until no
// reduced cost is positive. Unboundedness is reported through errUnbounded
// and translated by the caller.
func (s *Solver) iterate(t *tableau, limit int) error {
	for pivots := 0; ; pivots++ {
		if pivots > maxPivots {
			return errorsmod.Wrap(ErrPolytope, "pivot budget exhausted")
		}
		enter := -1
		for j := 0; j < limit; j++ {
			if t.rc[j].IsPositive() {
				enter = j
				break
			}
		}
		if enter < 0 {
			return nil
		}
		leave := -1
		var best math.Rat
		for i := range t.a {
			if !t.a[i][enter].IsPositive() {
				continue
			}
			ratio, err := t.b[i].Quo(t.a[i][enter])
			if err != nil {
				return errorsmod.Wrap(ErrPolytope, err.Error())
			}
			if leave < 0 || ratio.Lt(best) || (ratio.Equal(best) && t.basis[i] < t.basis[leave]) {
				leave = i
				best = ratio
			}
		}
		if leave < 0 {
			return errUnbounded
		}
		s.log().Debug("simplex pivot", "enter", enter, "leave", t.basis[leave])
		if err := t.pivot(leave, enter); err != nil {
			return err
		}
	}
}

// pivot makes column j basic in row r.
func (t *tableau) pivot(r, j int) error {
	p := t.a[r][j]
	if p.IsZero() {
		return errorsmod.Wrap(ErrPolytope, "pivot on zero element")
	}
	inv, err := p.Inv()
	if err != nil {
		return errorsmod.Wrap(ErrPolytope, err.Error())
	}
	for k := range t.a[r] {
		t.a[r][k] = t.a[r][k].Mul(inv)
	}
	t.b[r] = t.b[r].Mul(inv)
	for i := range t.a {
		if i == r || t.a[i][j].IsZero() {
			continue
		}
		f := t.a[i][j]
		for k := range t.a[i] {
			t.a[i][k] = t.a[i][k].Sub(f.Mul(t.a[r][k]))
		}
		t.b[i] = t.b[i].Sub(f.Mul(t.b[r]))
	}
	if t.rc != nil && !t.rc[j].IsZero() {
		f := t.rc[j]
		t.obj = t.obj.Add(f.Mul(t.b[r]))
		for k := range t.rc {
			t.rc[k] = t.rc[k].Sub(f.Mul(t.a[r][k]))
		}
	}
	t.basis[r] = j
	return nil
}
