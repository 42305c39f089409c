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

package rowstore

import (
	"fmt"
	"math"

	"github.com/colddeck/rowvm/rowtype"
)

// EncodeBits packs a layout-compatible value into the 8-byte bit
// pattern stored in a Slots entry. It panics for types with no fixed
// 8-byte representation (principally rowtype.StringView) -- Out must
// always be layout-compatible with the slot size.
func EncodeBits[T any](v T) uint64 {
	switch x := any(v).(type) {
	case int8:
		return uint64(uint8(x))
	case int16:
		return uint64(uint16(x))
	case int32:
		return uint64(uint32(x))
	case int64:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case float32:
		return uint64(math.Float32bits(x))
	case float64:
		return math.Float64bits(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case rowtype.Decimal64:
		return uint64(x)
	case rowtype.Timestamp:
		return uint64(x)
	case rowtype.Duration:
		return uint64(x)
	default:
		panic(fmt.Sprintf("rowstore: %T has no 8-byte intermediate-slot representation", v))
	}
}

// DecodeBits is the inverse of EncodeBits, reinterpreting a stored
// bit pattern as T.
func DecodeBits[T any](bits uint64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(uint8(bits))).(T)
	case int16:
		return any(int16(uint16(bits))).(T)
	case int32:
		return any(int32(uint32(bits))).(T)
	case int64:
		return any(int64(bits)).(T)
	case uint8:
		return any(uint8(bits)).(T)
	case uint16:
		return any(uint16(bits)).(T)
	case uint32:
		return any(uint32(bits)).(T)
	case uint64:
		return any(bits).(T)
	case float32:
		return any(math.Float32frombits(uint32(bits))).(T)
	case float64:
		return any(math.Float64frombits(bits)).(T)
	case bool:
		return any(bits != 0).(T)
	case rowtype.Decimal64:
		return any(rowtype.Decimal64(bits)).(T)
	case rowtype.Timestamp:
		return any(rowtype.Timestamp(bits)).(T)
	case rowtype.Duration:
		return any(rowtype.Duration(bits)).(T)
	default:
		panic(fmt.Sprintf("rowstore: %T has no 8-byte intermediate-slot representation", zero))
	}
}

// StoreValue encodes and stores a rowtype.Null[T] into slot.
func StoreValue[T any](s Slots, slot int, v rowtype.Null[T]) {
	s.Store(slot, EncodeBits(v.Value), v.Valid)
}

// LoadValue loads and decodes slot as a rowtype.Null[T].
func LoadValue[T any](s Slots, slot int) rowtype.Null[T] {
	bits, valid := s.Load(slot)
	return rowtype.Null[T]{Value: DecodeBits[T](bits), Valid: valid}
}
