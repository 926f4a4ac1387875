package math

import (
	"encoding/json"
	"math/big"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/cockroachdb/apd/v3"
)

// Rat is a wrapper struct around big.Rat that does no mutation of big.Rat's
// when performing arithmetic, instead creating a new big.Rat for every
// operation ensuring usage is safe.
//
// Using big.Rat directly can be unsafe because its operations mutate the
// receiver, and the underlying big.Int word slices can be shared between
// copies, causing corruption. Every Rat returned by this package is backed by
// storage that is never written to again, so Rat values may be copied and
// shared across goroutines freely.
//
// All arithmetic is exact. There is no rounding anywhere in this package;
// feasibility decisions built on top of Rat are reproducible.
type Rat struct {
	r big.Rat
}

// constants for more convenient intent behind rat.Cmp values.
const (
	GreaterThan = 1
	LessThan    = -1
	EqualTo     = 0
)

const ratCodespace = "rat"

var (
	ErrInvalidRatString = errorsmod.Register(ratCodespace, 1, "invalid rational string")
	ErrDivisionByZero   = errorsmod.Register(ratCodespace, 2, "division by zero")
	ErrNegativeValue    = errorsmod.Register(ratCodespace, 3, "negative value")
	ErrNotInteger       = errorsmod.Register(ratCodespace, 4, "value is not an integer")
)

// The number 0 encoded as Rat
func ZeroRat() Rat {
	return NewRatFromInt64(0)
}

// The number 1 encoded as Rat
func OneRat() Rat {
	return NewRatFromInt64(1)
}

// create a new Rat from an int64 value
func NewRatFromInt64(x int64) Rat {
	var res Rat
	res.r.SetInt64(x)
	return res
}

// NewRatFrac returns the rational p/q. It returns an error if q is zero.
func NewRatFrac(p, q int64) (Rat, error) {
	if q == 0 {
		return Rat{}, errorsmod.Wrapf(ErrDivisionByZero, "%d/0", p)
	}
	var res Rat
	res.r.SetFrac64(p, q)
	return res, nil
}

// NewRatFromBigRat copies r into a new Rat. The argument is not retained.
func NewRatFromBigRat(r *big.Rat) Rat {
	var res Rat
	res.r.Set(r)
	return res
}

// NewRatFromString returns a new Rat from a given string. Three notations are
// accepted: fraction (`-7/3`), integer (`42`), and decimal (`1.15`). Decimal
// notation is parsed through apd so that decimal strings are treated as exact
// rationals, never as floats.
func NewRatFromString(s string) (Rat, error) {
	if s == "" {
		s = "0"
	}
	if strings.ContainsRune(s, '/') {
		var res Rat
		if _, ok := res.r.SetString(s); !ok {
			return Rat{}, ErrInvalidRatString.Wrap(s)
		}
		return res, nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Rat{}, ErrInvalidRatString.Wrap(err.Error())
	}
	if d.Form != apd.Finite {
		return Rat{}, ErrInvalidRatString.Wrapf("non-finite value %q", s)
	}
	coeff := new(big.Int).Set(d.Coeff.MathBigInt())
	if d.Negative {
		coeff.Neg(coeff)
	}
	var res Rat
	pow := new(big.Int)
	if d.Exponent >= 0 {
		pow.Exp(big.NewInt(10), big.NewInt(int64(d.Exponent)), nil)
		res.r.SetFrac(new(big.Int).Mul(coeff, pow), big.NewInt(1))
	} else {
		pow.Exp(big.NewInt(10), big.NewInt(int64(-d.Exponent)), nil)
		res.r.SetFrac(coeff, pow)
	}
	return res, nil
}

// MustNewRatFromString returns a new Rat from a given string. It panics if the
// string cannot be parsed.
func MustNewRatFromString(s string) Rat {
	ret, err := NewRatFromString(s)
	if err != nil {
		panic(err)
	}
	return ret
}

// NewNonNegativeRatFromString returns a new Rat from a given string. It
// returns an error if the string cannot be parsed or if the rational is
// negative.
func NewNonNegativeRatFromString(s string) (Rat, error) {
	x, err := NewRatFromString(s)
	if err != nil {
		return Rat{}, err
	}
	if x.IsNegative() {
		return Rat{}, errorsmod.Wrapf(ErrNegativeValue, "expected a non-negative rational, got %s", s)
	}
	return x, nil
}

// NewPositiveRatFromString returns a new Rat from a given string. It returns
// an error if the string cannot be parsed or if the rational is not positive.
func NewPositiveRatFromString(s string) (Rat, error) {
	x, err := NewRatFromString(s)
	if err != nil {
		return Rat{}, err
	}
	if !x.IsPositive() {
		return Rat{}, ErrInvalidRatString.Wrapf("expected a positive rational, got %s", s)
	}
	return x, nil
}

// Add returns a new Rat with value `x+y` without mutating any argument.
func (x Rat) Add(y Rat) Rat {
	var z Rat
	z.r.Add(&x.r, &y.r)
	return z
}

// Sub returns a new Rat with value `x-y` without mutating any argument.
func (x Rat) Sub(y Rat) Rat {
	var z Rat
	z.r.Sub(&x.r, &y.r)
	return z
}

// Mul returns a new Rat with value `x*y` without mutating any argument.
func (x Rat) Mul(y Rat) Rat {
	var z Rat
	z.r.Mul(&x.r, &y.r)
	return z
}

// Quo returns a new Rat with value `x/y` without mutating any argument and an
// error if y is zero.
func (x Rat) Quo(y Rat) (Rat, error) {
	if y.IsZero() {
		return Rat{}, errorsmod.Wrapf(ErrDivisionByZero, "%s / 0", x.String())
	}
	var z Rat
	z.r.Quo(&x.r, &y.r)
	return z, nil
}

// Inv returns a new Rat with value `1/x` and an error if x is zero.
func (x Rat) Inv() (Rat, error) {
	if x.IsZero() {
		return Rat{}, errorsmod.Wrap(ErrDivisionByZero, "1 / 0")
	}
	var z Rat
	z.r.Inv(&x.r)
	return z, nil
}

// Neg returns a new Rat with value `-x` without mutating any argument.
func (x Rat) Neg() Rat {
	var z Rat
	z.r.Neg(&x.r)
	return z
}

// Abs returns a new Rat with the absolute value of x, without mutating x.
func (x Rat) Abs() Rat {
	var z Rat
	z.r.Abs(&x.r)
	return z
}

// returns the max of x and y without mutating x or y.
func MaxRat(x Rat, y Rat) Rat {
	if x.Cmp(y) == GreaterThan {
		return x
	}
	return y
}

// returns the min of x and y without mutating x or y.
func MinRat(x Rat, y Rat) Rat {
	if x.Cmp(y) == LessThan {
		return x
	}
	return y
}

// Cmp compares x and y and returns:
// -1 if x <  y
// 0 if x == y
// +1 if x >  y
func (x Rat) Cmp(y Rat) int {
	return x.r.Cmp(&y.r)
}

// is x greater than y
func (x Rat) Gt(y Rat) bool {
	return x.Cmp(y) == GreaterThan
}

// is x greater than or equal to y
func (x Rat) Gte(y Rat) bool {
	return x.Cmp(y) != LessThan
}

// is x less than y
func (x Rat) Lt(y Rat) bool {
	return x.Cmp(y) == LessThan
}

// is x less than or equal to y
func (x Rat) Lte(y Rat) bool {
	return x.Cmp(y) != GreaterThan
}

// Equal returns true if x and y are equal.
func (x Rat) Equal(y Rat) bool {
	return x.Cmp(y) == EqualTo
}

// IsZero returns true if the rational is zero.
func (x Rat) IsZero() bool {
	return x.r.Sign() == 0
}

// IsNegative returns true if the rational is negative.
func (x Rat) IsNegative() bool {
	return x.r.Sign() < 0
}

// IsPositive returns true if the rational is positive.
func (x Rat) IsPositive() bool {
	return x.r.Sign() > 0
}

// IsInteger returns true if the rational has denominator one.
func (x Rat) IsInteger() bool {
	return x.r.IsInt()
}

// Num returns a copy of the numerator of x in lowest terms.
func (x Rat) Num() *big.Int {
	return new(big.Int).Set(x.r.Num())
}

// Den returns a copy of the denominator of x in lowest terms.
func (x Rat) Den() *big.Int {
	return new(big.Int).Set(x.r.Denom())
}

// BigRat returns a copy of x as a *big.Rat.
func (x Rat) BigRat() *big.Rat {
	return new(big.Rat).Set(&x.r)
}

// SdkIntTrim rounds the rational towards zero and converts it to
// `sdkmath.Int` for interoperation with SDK state.
func (x Rat) SdkIntTrim() sdkmath.Int {
	z := new(big.Int).Quo(x.r.Num(), x.r.Denom())
	return sdkmath.NewIntFromBigInt(z)
}

// SdkLegacyDec converts the rational to an `sdkmath.LegacyDec` with 18
// decimal places, truncating towards zero. The conversion is lossy for
// rationals that have no finite 18-place decimal expansion; it exists for
// display and interop only, never for internal arithmetic.
func (x Rat) SdkLegacyDec() sdkmath.LegacyDec {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(sdkmath.LegacyPrecision), nil)
	z := new(big.Int).Mul(x.r.Num(), scale)
	z.Quo(z, x.r.Denom())
	return sdkmath.LegacyNewDecFromBigIntWithPrec(z, sdkmath.LegacyPrecision)
}

// Float64 returns the nearest float64 to x. Lossy; for display only.
func (x Rat) Float64() float64 {
	f, _ := x.r.Float64()
	return f
}

// String returns the canonical representation of x: `p/q` in lowest terms, or
// just `p` when the denominator is one.
func (x Rat) String() string {
	if x.r.IsInt() {
		return x.r.Num().String()
	}
	return x.r.RatString()
}

// Marshal implements the gogo proto custom type interface.
func (x Rat) Marshal() ([]byte, error) {
	return []byte(x.String()), nil
}

// Unmarshal implements the gogo proto custom type interface.
func (x *Rat) Unmarshal(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	y, err := NewRatFromString(string(data))
	if err != nil {
		return err
	}
	*x = y
	return nil
}

// MarshalJSON marshals the rational as its canonical string.
func (x Rat) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON defines custom decoding scheme
func (x *Rat) UnmarshalJSON(bz []byte) error {
	var text string
	if err := json.Unmarshal(bz, &text); err != nil {
		return err
	}
	y, err := NewRatFromString(text)
	if err != nil {
		return err
	}
	*x = y
	return nil
}

// Size returns the size of the marshalled Rat type in bytes
func (x Rat) Size() int {
	bz, _ := x.Marshal()
	return len(bz)
}

// MarshalTo implements the gogo proto custom type interface.
func (x *Rat) MarshalTo(data []byte) (n int, err error) {
	bz, err := x.Marshal()
	if err != nil {
		return 0, err
	}
	copy(data, bz)
	return len(bz), nil
}
