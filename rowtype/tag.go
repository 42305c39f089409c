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

// Package rowtype defines the closed set of element types that the
// evaluator can operate over and their compile-time storage
// representations.
package rowtype

import "fmt"

// Tag is the closed enumeration of element types the evaluator
// supports. Every Tag has a fixed, statically known storage type;
// see the doc comment on each constant for its representative Go type.
type Tag uint8

const (
	// Int8 is represented as int8.
	Int8 Tag = iota
	// Int16 is represented as int16.
	Int16
	// Int32 is represented as int32.
	Int32
	// Int64 is represented as int64.
	Int64
	// Uint8 is represented as uint8.
	Uint8
	// Uint16 is represented as uint16.
	Uint16
	// Uint32 is represented as uint32.
	Uint32
	// Uint64 is represented as uint64.
	Uint64
	// Float32 is represented as float32.
	Float32
	// Float64 is represented as float64.
	Float64
	// Bool is represented as bool.
	Bool
	// TimestampTag is represented by the Timestamp type: int64
	// microseconds since the Unix epoch.
	TimestampTag
	// DurationTag is represented by the Duration type: int64
	// nanoseconds.
	DurationTag
	// Decimal64Tag is represented by the packed fixed-point Decimal64
	// type.
	Decimal64Tag
	// String is represented as a non-owning StringView.
	String

	_maxTag
)

func (t Tag) String() string {
	switch t {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	case TimestampTag:
		return "timestamp"
	case DurationTag:
		return "duration"
	case Decimal64Tag:
		return "decimal64"
	case String:
		return "string"
	default:
		return fmt.Sprintf("rowtype.Tag(%d)", uint8(t))
	}
}

// Valid reports whether t is a member of the closed type enumeration.
func (t Tag) Valid() bool {
	return t < _maxTag
}

// IsNumeric reports whether t is one of the fixed-width numeric types
// (integer or floating point), excluding Bool, Timestamp, Duration,
// Decimal64 and String.
func (t Tag) IsNumeric() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is one of the signed or unsigned
// fixed-width integer types.
func (t Tag) IsInteger() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is Float32 or Float64.
func (t Tag) IsFloat() bool {
	return t == Float32 || t == Float64
}

// FixedWidth reports whether a value of this type fits in an 8-byte
// intermediate-storage slot. Every tag except String qualifies:
// strings are variable-length views and can never be held in an
// intermediate slot.
func (t Tag) FixedWidth() bool {
	return t != String && t.Valid()
}

// Size returns the number of bytes a value of this type occupies
// in its packed, layout-compatible representation. Only meaningful
// for FixedWidth() tags; String has no fixed size.
func (t Tag) Size() int {
	switch t {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, TimestampTag, DurationTag, Decimal64Tag:
		return 8
	default:
		return -1
	}
}
