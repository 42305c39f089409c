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

package rowvm

import (
	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtable"
	"github.com/colddeck/rowvm/rowtype"
)

// sourceRow resolves which table and row index a COLUMN reference
// draws from: LEFT picks lr, RIGHT picks rr. OUTPUT is never valid on
// an input reference (spec.md §9's open question, resolved here and
// at rowplan.Plan.Validate): reaching it is a programmer error.
func sourceRow(ref rowplan.DataRef, left, right rowtable.Table, lr, rr int) (rowtable.Table, int) {
	switch ref.TableSource {
	case rowplan.Left:
		return left, lr
	case rowplan.Right:
		return right, rr
	default:
		panic(evalError{kind: errOutputAsInput, detail: refDesc(ref)})
	}
}

func refDesc(ref rowplan.DataRef) string {
	return ref.Type.String() + " " + ref.Kind.String()
}

// resolveBits resolves a fixed-width (rowtype.Tag.FixedWidth) operand
// to its packed 8-byte representation plus validity. String operands
// never reach this path; they are resolved by resolveString instead.
//
// When hasNulls is false, no validity bit is ever inspected -- neither
// a column's null mask nor a literal's or intermediate's stored
// validity flag is read, and the returned valid is unconditionally
// true. This is the mechanism behind spec.md §8 testable property 3.
func resolveBits(ref rowplan.DataRef, left, right rowtable.Table, lr, rr int, lits []rowplan.Literal, slots rowstore.Slots, hasNulls bool) (bits uint64, valid bool) {
	switch ref.Kind {
	case rowplan.Column:
		tbl, row := sourceRow(ref, left, right, lr, rr)
		col := tbl.Column(ref.Index)
		bits = columnBits(ref.Type, col, row)
		if !hasNulls {
			return bits, true
		}
		return bits, col.IsValid(row)
	case rowplan.LiteralRef:
		lit := lits[ref.Index]
		bits = literalBits(ref.Type, lit)
		if !hasNulls {
			return bits, true
		}
		return bits, lit.Valid
	case rowplan.Intermediate:
		b, v := slots.Load(ref.Index)
		if !hasNulls {
			return b, true
		}
		return b, v
	default:
		panic(evalError{kind: errUnsupportedElementType, detail: refDesc(ref)})
	}
}

// resolveString resolves a rowtype.String operand. String has no
// 8-byte packed form (rowtype.Tag.FixedWidth is false for it), so it
// can never be read from intermediate storage in a well-formed plan;
// rowplan.Plan.Validate rejects any plan that would write one there.
func resolveString(ref rowplan.DataRef, left, right rowtable.Table, lr, rr int, lits []rowplan.Literal, hasNulls bool) (rowtype.StringView, bool) {
	switch ref.Kind {
	case rowplan.Column:
		tbl, row := sourceRow(ref, left, right, lr, rr)
		col := tbl.Column(ref.Index)
		tc, ok := col.(*rowtable.TypedColumn[rowtype.StringView])
		assertf(ok, errUnsupportedElementType, "column declares %s but is not a string-backed column", ref.Type)
		if !hasNulls {
			return tc.Values[row], true
		}
		return tc.Values[row], col.IsValid(row)
	case rowplan.LiteralRef:
		lit := lits[ref.Index]
		v := rowtype.StringView{Data: []byte(lit.Str)}
		if !hasNulls {
			return v, true
		}
		return v, lit.Valid
	case rowplan.Intermediate:
		panic(evalError{kind: errOversizedIntermediate, detail: "string has no fixed-width intermediate representation"})
	default:
		panic(evalError{kind: errUnsupportedElementType, detail: refDesc(ref)})
	}
}

// columnBits reads row from col without ever consulting its null
// mask (TypedColumn.At/.Values, not rowtable.Element), so the hasNulls
// branch in resolveBits is the only place a mask is read.
func columnBits(tag rowtype.Tag, col rowtable.Column, row int) uint64 {
	switch tag {
	case rowtype.Int8:
		return elementBits[int8](col, row)
	case rowtype.Int16:
		return elementBits[int16](col, row)
	case rowtype.Int32:
		return elementBits[int32](col, row)
	case rowtype.Int64:
		return elementBits[int64](col, row)
	case rowtype.Uint8:
		return elementBits[uint8](col, row)
	case rowtype.Uint16:
		return elementBits[uint16](col, row)
	case rowtype.Uint32:
		return elementBits[uint32](col, row)
	case rowtype.Uint64:
		return elementBits[uint64](col, row)
	case rowtype.Float32:
		return elementBits[float32](col, row)
	case rowtype.Float64:
		return elementBits[float64](col, row)
	case rowtype.Bool:
		return elementBits[bool](col, row)
	case rowtype.TimestampTag:
		return elementBits[rowtype.Timestamp](col, row)
	case rowtype.DurationTag:
		return elementBits[rowtype.Duration](col, row)
	case rowtype.Decimal64Tag:
		return elementBits[rowtype.Decimal64](col, row)
	default:
		panic(evalError{kind: errUnsupportedElementType, detail: tag.String()})
	}
}

func elementBits[T any](col rowtable.Column, row int) uint64 {
	tc, ok := col.(*rowtable.TypedColumn[T])
	assertf(ok, errUnsupportedElementType, "column is not layout-compatible with %T", *new(T))
	return rowstore.EncodeBits(tc.Values[row])
}

// literalBits reinterprets a rowplan.Literal's boxed fields as tag's
// representative storage type and packs it into the 8-byte slot
// encoding, the same packed form intermediate storage and columns
// use.
func literalBits(tag rowtype.Tag, lit rowplan.Literal) uint64 {
	switch tag {
	case rowtype.Int8:
		return rowstore.EncodeBits(int8(lit.Int))
	case rowtype.Int16:
		return rowstore.EncodeBits(int16(lit.Int))
	case rowtype.Int32:
		return rowstore.EncodeBits(int32(lit.Int))
	case rowtype.Int64:
		return rowstore.EncodeBits(lit.Int)
	case rowtype.Uint8:
		return rowstore.EncodeBits(uint8(lit.Int))
	case rowtype.Uint16:
		return rowstore.EncodeBits(uint16(lit.Int))
	case rowtype.Uint32:
		return rowstore.EncodeBits(uint32(lit.Int))
	case rowtype.Uint64:
		return rowstore.EncodeBits(uint64(lit.Int))
	case rowtype.Float32:
		return rowstore.EncodeBits(float32(lit.Float))
	case rowtype.Float64:
		return rowstore.EncodeBits(lit.Float)
	case rowtype.Bool:
		return rowstore.EncodeBits(lit.Int != 0)
	case rowtype.TimestampTag:
		return rowstore.EncodeBits(rowtype.Timestamp(lit.Int))
	case rowtype.DurationTag:
		return rowstore.EncodeBits(rowtype.Duration(lit.Int))
	case rowtype.Decimal64Tag:
		return rowstore.EncodeBits(rowtype.Decimal64(uint64(lit.Int)))
	default:
		panic(evalError{kind: errUnsupportedElementType, detail: tag.String()})
	}
}
