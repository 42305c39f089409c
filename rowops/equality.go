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

// NullEqualityPolicy selects how Equal and NullEquals treat a null
// operand. Every other binary operator uses default propagation
// (absent in, absent out); these two admit a caller-chosen policy
// instead, since "are these two nulls equal" has no single universally
// correct answer.
type NullEqualityPolicy uint8

const (
	// EqualNullsCompareEqual treats two absent operands as equal
	// (producing a valid `true`); a present/absent pair produces an
	// absent result.
	EqualNullsCompareEqual NullEqualityPolicy = iota
	// EqualNullsCompareUnequal treats two absent operands as unequal
	// (producing a valid `false`); a present/absent pair produces an
	// absent result, as under EqualNullsCompareEqual.
	EqualNullsCompareUnequal
)

func (p NullEqualityPolicy) String() string {
	switch p {
	case EqualNullsCompareEqual:
		return "EQUAL"
	case EqualNullsCompareUnequal:
		return "UNEQUAL"
	default:
		return "invalid-null-equality-policy"
	}
}

// EvalEqualityBits dispatches Equal and NullEquals under the given
// policy. ok is false when tag has no valid equality instantiation.
func EvalEqualityBits(op rowplan.BinaryOp, tag rowtype.Tag, lbits, rbits uint64, lvalid, rvalid bool, policy NullEqualityPolicy) (outBits uint64, outValid bool, ok bool) {
	if !op.IsEqualityLike() {
		return 0, false, false
	}
	if !IsValidBinary(op, tag) {
		return 0, false, false
	}
	both := !lvalid && !rvalid
	either := !lvalid || !rvalid
	if both {
		return rowstore.EncodeBits(policy == EqualNullsCompareEqual), true, true
	}
	if either {
		return 0, false, true
	}
	eq := equalBits(tag, lbits, rbits)
	return rowstore.EncodeBits(eq), true, true
}

func equalBits(tag rowtype.Tag, lbits, rbits uint64) bool {
	switch tag {
	case rowtype.Int8:
		return equalComparable(rowstore.DecodeBits[int8](lbits), rowstore.DecodeBits[int8](rbits))
	case rowtype.Int16:
		return equalComparable(rowstore.DecodeBits[int16](lbits), rowstore.DecodeBits[int16](rbits))
	case rowtype.Int32:
		return equalComparable(rowstore.DecodeBits[int32](lbits), rowstore.DecodeBits[int32](rbits))
	case rowtype.Int64:
		return equalComparable(rowstore.DecodeBits[int64](lbits), rowstore.DecodeBits[int64](rbits))
	case rowtype.Uint8:
		return equalComparable(rowstore.DecodeBits[uint8](lbits), rowstore.DecodeBits[uint8](rbits))
	case rowtype.Uint16:
		return equalComparable(rowstore.DecodeBits[uint16](lbits), rowstore.DecodeBits[uint16](rbits))
	case rowtype.Uint32:
		return equalComparable(rowstore.DecodeBits[uint32](lbits), rowstore.DecodeBits[uint32](rbits))
	case rowtype.Uint64:
		return equalComparable(rowstore.DecodeBits[uint64](lbits), rowstore.DecodeBits[uint64](rbits))
	case rowtype.Float32:
		return equalOrdered(rowstore.DecodeBits[float32](lbits), rowstore.DecodeBits[float32](rbits))
	case rowtype.Float64:
		return equalOrdered(rowstore.DecodeBits[float64](lbits), rowstore.DecodeBits[float64](rbits))
	case rowtype.Bool:
		return rowstore.DecodeBits[bool](lbits) == rowstore.DecodeBits[bool](rbits)
	case rowtype.TimestampTag:
		return rowstore.DecodeBits[rowtype.Timestamp](lbits) == rowstore.DecodeBits[rowtype.Timestamp](rbits)
	case rowtype.DurationTag:
		return rowstore.DecodeBits[rowtype.Duration](lbits) == rowstore.DecodeBits[rowtype.Duration](rbits)
	case rowtype.Decimal64Tag:
		a := rowstore.DecodeBits[rowtype.Decimal64](lbits)
		b := rowstore.DecodeBits[rowtype.Decimal64](rbits)
		return rowtype.CompareDecimal64(a, b) == 0
	default:
		return false
	}
}
