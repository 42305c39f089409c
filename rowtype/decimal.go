// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package rowtype

import (
	"fmt"
	"math/big"
)

// Decimal64 is a fixed-point decimal value packed into a single
// uint64 so that it is layout-compatible with the evaluator's 8-byte
// intermediate slots: the top byte holds the scale (number of digits
// right of the decimal point, 0-38) and the low 7 bytes hold the
// signed coefficient.
type Decimal64 uint64

const decimal64CoefficientBits = 56
const decimal64CoefficientMask = (uint64(1) << decimal64CoefficientBits) - 1
const decimal64SignBit = uint64(1) << (decimal64CoefficientBits - 1)

// NewDecimal64 packs coefficient and scale into a Decimal64. The
// coefficient must fit in 56 bits (signed); callers that need a wider
// range should represent the value as Float64 instead.
func NewDecimal64(coefficient int64, scale uint8) Decimal64 {
	bits := uint64(coefficient) & decimal64CoefficientMask
	return Decimal64(bits | uint64(scale)<<decimal64CoefficientBits)
}

// Scale returns the number of digits to the right of the decimal point.
func (d Decimal64) Scale() uint8 {
	return uint8(uint64(d) >> decimal64CoefficientBits)
}

// Coefficient returns the signed, unscaled integer coefficient.
func (d Decimal64) Coefficient() int64 {
	bits := uint64(d) & decimal64CoefficientMask
	if bits&decimal64SignBit != 0 {
		bits |= ^decimal64CoefficientMask // sign-extend
	}
	return int64(bits)
}

// Rat returns d as an exact big.Rat, suitable for interoperating with
// the arbitrary-precision arithmetic the planner's constant folder
// uses for numeric literals.
func (d Decimal64) Rat() *big.Rat {
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale())), nil)
	return new(big.Rat).SetFrac(big.NewInt(d.Coefficient()), den)
}

func (d Decimal64) String() string {
	r := d.Rat()
	return r.FloatString(int(d.Scale()))
}

// rescale returns a, b rewritten to a common scale (the larger of the
// two), along with that scale. Needed before Decimal64 add/sub, which
// require aligned scales.
func rescale(a, b Decimal64) (int64, int64, uint8) {
	sa, sb := a.Scale(), b.Scale()
	ca, cb := a.Coefficient(), b.Coefficient()
	switch {
	case sa == sb:
		return ca, cb, sa
	case sa < sb:
		return ca * pow10(sb-sa), cb, sb
	default:
		return ca, cb * pow10(sa-sb), sa
	}
}

func pow10(n uint8) int64 {
	p := int64(1)
	for i := uint8(0); i < n; i++ {
		p *= 10
	}
	return p
}

// AddDecimal64 returns a+b, rescaled to the larger of the two operand scales.
func AddDecimal64(a, b Decimal64) Decimal64 {
	ca, cb, scale := rescale(a, b)
	return NewDecimal64(ca+cb, scale)
}

// SubDecimal64 returns a-b, rescaled to the larger of the two operand scales.
func SubDecimal64(a, b Decimal64) Decimal64 {
	ca, cb, scale := rescale(a, b)
	return NewDecimal64(ca-cb, scale)
}

// MulDecimal64 returns a*b at the sum of the operand scales.
func MulDecimal64(a, b Decimal64) Decimal64 {
	scale := a.Scale() + b.Scale()
	return NewDecimal64(a.Coefficient()*b.Coefficient(), scale)
}

// DivDecimal64 returns a/b, preserving a's scale (rounded toward zero).
// b must be nonzero: a zero decimal denominator has no finite
// quotient in this fixed-point representation and is a programmer
// error, not handled here.
func DivDecimal64(a, b Decimal64) Decimal64 {
	scale := a.Scale()
	q := new(big.Rat).Quo(a.Rat(), b.Rat())
	num := new(big.Int).Mul(q.Num(), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil))
	coeff := new(big.Int).Quo(num, q.Denom())
	return NewDecimal64(coeff.Int64(), scale)
}

// CompareDecimal64 returns -1, 0, or 1 as a is less than, equal to, or
// greater than b, comparing at a common scale.
func CompareDecimal64(a, b Decimal64) int {
	ca, cb, _ := rescale(a, b)
	switch {
	case ca < cb:
		return -1
	case ca > cb:
		return 1
	default:
		return 0
	}
}

// GoString implements fmt.GoStringer for debugging/disassembly output.
func (d Decimal64) GoString() string {
	return fmt.Sprintf("Decimal64{coefficient:%d,scale:%d}", d.Coefficient(), d.Scale())
}
