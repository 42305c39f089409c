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
	"github.com/colddeck/rowvm/fastdate"
	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtype"
)

// EvalUnaryBits turns tag into the element type T (one switch case
// per Tag, each instantiating a generic functor explicitly for that
// T) and applies op's functor to the 8-byte-encoded operand. ok is
// false when (op, tag) is not a valid instantiation -- the caller
// (rowvm) must treat that as a device-side assertion.
//
// Default null propagation is handled once, here, for every unary
// operator: an invalid operand always yields an invalid result
// without invoking the functor.
func EvalUnaryBits(op rowplan.UnaryOp, tag rowtype.Tag, bits uint64, valid bool) (outBits uint64, outValid bool, ok bool) {
	if !valid {
		return 0, false, IsValidUnary(op, tag)
	}
	switch tag {
	case rowtype.Int8:
		return evalUnaryInteger[int8](op, bits, true)
	case rowtype.Int16:
		return evalUnaryInteger[int16](op, bits, true)
	case rowtype.Int32:
		return evalUnaryInteger[int32](op, bits, true)
	case rowtype.Int64:
		return evalUnaryInteger[int64](op, bits, true)
	case rowtype.Uint8:
		return evalUnaryInteger[uint8](op, bits, false)
	case rowtype.Uint16:
		return evalUnaryInteger[uint16](op, bits, false)
	case rowtype.Uint32:
		return evalUnaryInteger[uint32](op, bits, false)
	case rowtype.Uint64:
		return evalUnaryInteger[uint64](op, bits, false)
	case rowtype.Float32:
		return evalUnaryFloat[float32](op, bits)
	case rowtype.Float64:
		return evalUnaryFloat[float64](op, bits)
	case rowtype.Bool:
		return evalUnaryBool(op, bits)
	case rowtype.TimestampTag:
		return evalUnaryTimestamp(op, bits)
	case rowtype.DurationTag:
		return evalUnaryDuration(op, bits)
	case rowtype.Decimal64Tag:
		return evalUnaryDecimal(op, bits)
	default:
		return 0, false, false
	}
}

func evalUnaryInteger[T interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}](op rowplan.UnaryOp, bits uint64, signed bool) (uint64, bool, bool) {
	v := rowstore.DecodeBits[T](bits)
	switch op {
	case rowplan.Identity:
		return rowstore.EncodeBits(v), true, true
	case rowplan.Neg:
		if !signed {
			return 0, false, false
		}
		return rowstore.EncodeBits(-v), true, true
	case rowplan.Abs:
		if !signed {
			return rowstore.EncodeBits(v), true, true
		}
		if v < 0 {
			v = -v
		}
		return rowstore.EncodeBits(v), true, true
	case rowplan.BitNot:
		return rowstore.EncodeBits(^v), true, true
	case rowplan.CastToInt64:
		return rowstore.EncodeBits(int64(v)), true, true
	case rowplan.CastToFloat64:
		return rowstore.EncodeBits(float64(v)), true, true
	case rowplan.CastToBool:
		return rowstore.EncodeBits(v != 0), true, true
	case rowplan.CastToTimestamp:
		return rowstore.EncodeBits(rowtype.Timestamp(v)), true, true
	case rowplan.CastToDecimal64:
		return rowstore.EncodeBits(rowtype.NewDecimal64(int64(v), 0)), true, true
	default:
		return 0, false, false
	}
}

func evalUnaryFloat[T interface{ ~float32 | ~float64 }](op rowplan.UnaryOp, bits uint64) (uint64, bool, bool) {
	v := rowstore.DecodeBits[T](bits)
	switch op {
	case rowplan.Identity:
		return rowstore.EncodeBits(v), true, true
	case rowplan.Neg:
		return rowstore.EncodeBits(-v), true, true
	case rowplan.Abs:
		if v < 0 {
			v = -v
		}
		return rowstore.EncodeBits(v), true, true
	case rowplan.Sin:
		return rowstore.EncodeBits(T(sinFloat(float64(v)))), true, true
	case rowplan.Cos:
		return rowstore.EncodeBits(T(cosFloat(float64(v)))), true, true
	case rowplan.CastToInt64:
		return rowstore.EncodeBits(int64(v)), true, true
	case rowplan.CastToFloat64:
		return rowstore.EncodeBits(float64(v)), true, true
	case rowplan.CastToBool:
		return rowstore.EncodeBits(v != 0), true, true
	case rowplan.CastToDecimal64:
		return rowstore.EncodeBits(decimal64FromFloat(float64(v))), true, true
	default:
		return 0, false, false
	}
}

func decimal64FromFloat(v float64) rowtype.Decimal64 {
	const scale = 2
	scaled := v * 100
	if scaled < 0 {
		scaled -= 0.5
	} else {
		scaled += 0.5
	}
	return rowtype.NewDecimal64(int64(scaled), scale)
}

func evalUnaryBool(op rowplan.UnaryOp, bits uint64) (uint64, bool, bool) {
	v := rowstore.DecodeBits[bool](bits)
	switch op {
	case rowplan.Identity:
		return rowstore.EncodeBits(v), true, true
	case rowplan.Not:
		return rowstore.EncodeBits(!v), true, true
	case rowplan.CastToInt64:
		if v {
			return rowstore.EncodeBits(int64(1)), true, true
		}
		return rowstore.EncodeBits(int64(0)), true, true
	default:
		return 0, false, false
	}
}

// evalUnaryTimestamp's TruncDay and ExtractYear cases reach into
// fastdate for the calendar decomposition itself: rowtype.Timestamp
// and fastdate.Timestamp are both plain microseconds-since-epoch
// int64s, so the conversion between them is a no-op cast, not a
// unit change.
func evalUnaryTimestamp(op rowplan.UnaryOp, bits uint64) (uint64, bool, bool) {
	v := rowstore.DecodeBits[rowtype.Timestamp](bits)
	switch op {
	case rowplan.Identity:
		return rowstore.EncodeBits(v), true, true
	case rowplan.CastToInt64:
		return rowstore.EncodeBits(int64(v)), true, true
	case rowplan.TruncDay:
		truncated := fastdate.Timestamp(v).TruncDay()
		return rowstore.EncodeBits(rowtype.Timestamp(truncated)), true, true
	case rowplan.ExtractYear:
		year := fastdate.Timestamp(v).ExtractYear()
		return rowstore.EncodeBits(int64(year)), true, true
	default:
		return 0, false, false
	}
}

func evalUnaryDuration(op rowplan.UnaryOp, bits uint64) (uint64, bool, bool) {
	v := rowstore.DecodeBits[rowtype.Duration](bits)
	switch op {
	case rowplan.Identity:
		return rowstore.EncodeBits(v), true, true
	case rowplan.Neg:
		return rowstore.EncodeBits(-v), true, true
	case rowplan.CastToInt64:
		return rowstore.EncodeBits(int64(v)), true, true
	default:
		return 0, false, false
	}
}

func evalUnaryDecimal(op rowplan.UnaryOp, bits uint64) (uint64, bool, bool) {
	v := rowstore.DecodeBits[rowtype.Decimal64](bits)
	switch op {
	case rowplan.Identity:
		return rowstore.EncodeBits(v), true, true
	case rowplan.Neg:
		return rowstore.EncodeBits(rowtype.NewDecimal64(-v.Coefficient(), v.Scale())), true, true
	case rowplan.Abs:
		c := v.Coefficient()
		if c < 0 {
			c = -c
		}
		return rowstore.EncodeBits(rowtype.NewDecimal64(c, v.Scale())), true, true
	case rowplan.CastToFloat64:
		f, _ := v.Rat().Float64()
		return rowstore.EncodeBits(f), true, true
	case rowplan.CastToInt64:
		f, _ := v.Rat().Float64()
		return rowstore.EncodeBits(int64(f)), true, true
	default:
		return 0, false, false
	}
}
