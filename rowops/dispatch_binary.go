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

package rowops

import (
	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtype"
)

// EvalBinaryBits dispatches every BinaryOp except Equal and
// NullEquals, which go through EvalEqualityBits instead because they
// alone admit a caller-selected null policy. Default null propagation
// applies here: either operand invalid makes the result invalid
// without invoking the functor.
func EvalBinaryBits(op rowplan.BinaryOp, tag rowtype.Tag, lbits, rbits uint64, lvalid, rvalid bool) (outBits uint64, outValid bool, ok bool) {
	if op.IsEqualityLike() {
		return 0, false, false
	}
	if !lvalid || !rvalid {
		return 0, false, IsValidBinary(op, tag)
	}
	switch tag {
	case rowtype.Int8:
		return evalBinaryInteger[int8](op, lbits, rbits, true)
	case rowtype.Int16:
		return evalBinaryInteger[int16](op, lbits, rbits, true)
	case rowtype.Int32:
		return evalBinaryInteger[int32](op, lbits, rbits, true)
	case rowtype.Int64:
		return evalBinaryInteger[int64](op, lbits, rbits, true)
	case rowtype.Uint8:
		return evalBinaryInteger[uint8](op, lbits, rbits, false)
	case rowtype.Uint16:
		return evalBinaryInteger[uint16](op, lbits, rbits, false)
	case rowtype.Uint32:
		return evalBinaryInteger[uint32](op, lbits, rbits, false)
	case rowtype.Uint64:
		return evalBinaryInteger[uint64](op, lbits, rbits, false)
	case rowtype.Float32:
		return evalBinaryFloat[float32](op, lbits, rbits)
	case rowtype.Float64:
		return evalBinaryFloat[float64](op, lbits, rbits)
	case rowtype.Bool:
		return evalBinaryBool(op, lbits, rbits)
	case rowtype.TimestampTag:
		return evalBinaryTimestamp(op, lbits, rbits)
	case rowtype.DurationTag:
		return evalBinaryDuration(op, lbits, rbits)
	case rowtype.Decimal64Tag:
		return evalBinaryDecimal(op, lbits, rbits)
	default:
		return 0, false, false
	}
}

func evalBinaryInteger[T interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}](op rowplan.BinaryOp, lbits, rbits uint64, signed bool) (uint64, bool, bool) {
	a := rowstore.DecodeBits[T](lbits)
	b := rowstore.DecodeBits[T](rbits)
	switch op {
	case rowplan.Add:
		return rowstore.EncodeBits(addNumeric(a, b)), true, true
	case rowplan.Sub:
		return rowstore.EncodeBits(subNumeric(a, b)), true, true
	case rowplan.Mul:
		return rowstore.EncodeBits(mulNumeric(a, b)), true, true
	case rowplan.Div:
		return rowstore.EncodeBits(divNumeric(a, b)), true, true
	case rowplan.Mod:
		return rowstore.EncodeBits(modNumeric(a, b)), true, true
	case rowplan.Pow:
		return rowstore.EncodeBits(powInteger(a, b)), true, true
	case rowplan.NotEqual:
		return rowstore.EncodeBits(notEqualComparable(a, b)), true, true
	case rowplan.Less:
		return rowstore.EncodeBits(less(a, b)), true, true
	case rowplan.Greater:
		return rowstore.EncodeBits(greater(a, b)), true, true
	case rowplan.LessEqual:
		return rowstore.EncodeBits(lessEqual(a, b)), true, true
	case rowplan.GreaterEqual:
		return rowstore.EncodeBits(greaterEqual(a, b)), true, true
	case rowplan.BitwiseAnd:
		return rowstore.EncodeBits(bitAnd(a, b)), true, true
	case rowplan.BitwiseOr:
		return rowstore.EncodeBits(bitOr(a, b)), true, true
	case rowplan.BitwiseXor:
		return rowstore.EncodeBits(bitXor(a, b)), true, true
	default:
		return 0, false, false
	}
}

func evalBinaryFloat[T interface{ ~float32 | ~float64 }](op rowplan.BinaryOp, lbits, rbits uint64) (uint64, bool, bool) {
	a := rowstore.DecodeBits[T](lbits)
	b := rowstore.DecodeBits[T](rbits)
	switch op {
	case rowplan.Add:
		return rowstore.EncodeBits(addNumeric(a, b)), true, true
	case rowplan.Sub:
		return rowstore.EncodeBits(subNumeric(a, b)), true, true
	case rowplan.Mul:
		return rowstore.EncodeBits(mulNumeric(a, b)), true, true
	case rowplan.Div:
		return rowstore.EncodeBits(divNumeric(a, b)), true, true
	case rowplan.Pow:
		return rowstore.EncodeBits(powFloat(a, b)), true, true
	case rowplan.NotEqual:
		return rowstore.EncodeBits(notEqualOrdered(a, b)), true, true
	case rowplan.Less:
		return rowstore.EncodeBits(less(a, b)), true, true
	case rowplan.Greater:
		return rowstore.EncodeBits(greater(a, b)), true, true
	case rowplan.LessEqual:
		return rowstore.EncodeBits(lessEqual(a, b)), true, true
	case rowplan.GreaterEqual:
		return rowstore.EncodeBits(greaterEqual(a, b)), true, true
	default:
		return 0, false, false
	}
}

func evalBinaryBool(op rowplan.BinaryOp, lbits, rbits uint64) (uint64, bool, bool) {
	a := rowstore.DecodeBits[bool](lbits)
	b := rowstore.DecodeBits[bool](rbits)
	switch op {
	case rowplan.LogicalAnd:
		return rowstore.EncodeBits(logicalAnd(a, b)), true, true
	case rowplan.LogicalOr:
		return rowstore.EncodeBits(logicalOr(a, b)), true, true
	case rowplan.NotEqual:
		return rowstore.EncodeBits(a != b), true, true
	default:
		return 0, false, false
	}
}

func evalBinaryTimestamp(op rowplan.BinaryOp, lbits, rbits uint64) (uint64, bool, bool) {
	a := rowstore.DecodeBits[rowtype.Timestamp](lbits)
	b := rowstore.DecodeBits[rowtype.Timestamp](rbits)
	switch op {
	case rowplan.Sub:
		// Timestamp is in microseconds, Duration in nanoseconds.
		return rowstore.EncodeBits(rowtype.Duration((a - b) * 1000)), true, true
	case rowplan.NotEqual:
		return rowstore.EncodeBits(a != b), true, true
	case rowplan.Less:
		return rowstore.EncodeBits(a < b), true, true
	case rowplan.Greater:
		return rowstore.EncodeBits(a > b), true, true
	case rowplan.LessEqual:
		return rowstore.EncodeBits(a <= b), true, true
	case rowplan.GreaterEqual:
		return rowstore.EncodeBits(a >= b), true, true
	default:
		return 0, false, false
	}
}

func evalBinaryDuration(op rowplan.BinaryOp, lbits, rbits uint64) (uint64, bool, bool) {
	a := rowstore.DecodeBits[rowtype.Duration](lbits)
	b := rowstore.DecodeBits[rowtype.Duration](rbits)
	switch op {
	case rowplan.Add:
		return rowstore.EncodeBits(a + b), true, true
	case rowplan.Sub:
		return rowstore.EncodeBits(a - b), true, true
	case rowplan.NotEqual:
		return rowstore.EncodeBits(a != b), true, true
	case rowplan.Less:
		return rowstore.EncodeBits(a < b), true, true
	case rowplan.Greater:
		return rowstore.EncodeBits(a > b), true, true
	case rowplan.LessEqual:
		return rowstore.EncodeBits(a <= b), true, true
	case rowplan.GreaterEqual:
		return rowstore.EncodeBits(a >= b), true, true
	default:
		return 0, false, false
	}
}

// evalBinaryDecimal never routes through the generic Ordered/
// comparable functors in compare.go: Decimal64's raw uint64 bit
// pattern packs a scale byte alongside the coefficient, so two
// decimals equal in value (1.0 at scale 1, 1.00 at scale 2) compare
// unequal as raw integers. Every comparison here goes through
// rowtype.CompareDecimal64, which rescales operands to a common scale
// first.
func evalBinaryDecimal(op rowplan.BinaryOp, lbits, rbits uint64) (uint64, bool, bool) {
	a := rowstore.DecodeBits[rowtype.Decimal64](lbits)
	b := rowstore.DecodeBits[rowtype.Decimal64](rbits)
	switch op {
	case rowplan.Add:
		return rowstore.EncodeBits(rowtype.AddDecimal64(a, b)), true, true
	case rowplan.Sub:
		return rowstore.EncodeBits(rowtype.SubDecimal64(a, b)), true, true
	case rowplan.Mul:
		return rowstore.EncodeBits(rowtype.MulDecimal64(a, b)), true, true
	case rowplan.Div:
		return rowstore.EncodeBits(rowtype.DivDecimal64(a, b)), true, true
	case rowplan.NotEqual:
		return rowstore.EncodeBits(rowtype.CompareDecimal64(a, b) != 0), true, true
	case rowplan.Less:
		return rowstore.EncodeBits(rowtype.CompareDecimal64(a, b) < 0), true, true
	case rowplan.Greater:
		return rowstore.EncodeBits(rowtype.CompareDecimal64(a, b) > 0), true, true
	case rowplan.LessEqual:
		return rowstore.EncodeBits(rowtype.CompareDecimal64(a, b) <= 0), true, true
	case rowplan.GreaterEqual:
		return rowstore.EncodeBits(rowtype.CompareDecimal64(a, b) >= 0), true, true
	default:
		return 0, false, false
	}
}
