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

package rowplan

import "fmt"

// UnaryOp is the closed enumeration of operators with arity 1.
type UnaryOp uint8

const (
	Identity UnaryOp = iota
	Neg
	Abs
	Sin
	Cos
	Not
	BitNot
	CastToInt64
	CastToFloat64
	CastToBool
	CastToTimestamp
	CastToDecimal64

	TruncDay
	ExtractYear

	_maxUnaryOp
)

func (u UnaryOp) String() string {
	switch u {
	case Identity:
		return "IDENTITY"
	case Neg:
		return "NEG"
	case Abs:
		return "ABS"
	case Sin:
		return "SIN"
	case Cos:
		return "COS"
	case Not:
		return "NOT"
	case BitNot:
		return "BIT_NOT"
	case CastToInt64:
		return "CAST_TO_INT64"
	case CastToFloat64:
		return "CAST_TO_FLOAT64"
	case CastToBool:
		return "CAST_TO_BOOL"
	case CastToTimestamp:
		return "CAST_TO_TIMESTAMP"
	case CastToDecimal64:
		return "CAST_TO_DECIMAL64"
	case TruncDay:
		return "TRUNC_DAY"
	case ExtractYear:
		return "EXTRACT_YEAR"
	default:
		return fmt.Sprintf("rowplan.UnaryOp(%d)", uint8(u))
	}
}

// Valid reports whether u is a member of the closed operator set.
func (u UnaryOp) Valid() bool { return u < _maxUnaryOp }

// BinaryOp is the closed enumeration of operators with arity 2.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow

	Equal
	NullEquals
	NotEqual
	Less
	Greater
	LessEqual
	GreaterEqual

	LogicalAnd
	LogicalOr

	BitwiseAnd
	BitwiseOr
	BitwiseXor

	_maxBinaryOp
)

func (b BinaryOp) String() string {
	switch b {
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Mul:
		return "MUL"
	case Div:
		return "DIV"
	case Mod:
		return "MOD"
	case Pow:
		return "POW"
	case Equal:
		return "EQUAL"
	case NullEquals:
		return "NULL_EQUALS"
	case NotEqual:
		return "NOT_EQUAL"
	case Less:
		return "LESS"
	case Greater:
		return "GREATER"
	case LessEqual:
		return "LESS_EQUAL"
	case GreaterEqual:
		return "GREATER_EQUAL"
	case LogicalAnd:
		return "LOGICAL_AND"
	case LogicalOr:
		return "LOGICAL_OR"
	case BitwiseAnd:
		return "BITWISE_AND"
	case BitwiseOr:
		return "BITWISE_OR"
	case BitwiseXor:
		return "BITWISE_XOR"
	default:
		return fmt.Sprintf("rowplan.BinaryOp(%d)", uint8(b))
	}
}

// Valid reports whether b is a member of the closed operator set.
func (b BinaryOp) Valid() bool { return b < _maxBinaryOp }

// IsEqualityLike reports whether b is routed through an explicit
// null-equality policy (NullEqualityPolicy) rather than default null
// propagation.
func (b BinaryOp) IsEqualityLike() bool {
	return b == Equal || b == NullEquals
}

// Op identifies one step of the operator program: either a UnaryOp
// (Arity() == 1) or a BinaryOp (Arity() == 2). Exactly one of the two
// fields is meaningful, selected by IsBinary.
type Op struct {
	IsBinary bool
	Unary    UnaryOp
	Binary   BinaryOp
}

// U wraps a UnaryOp as an Op.
func U(op UnaryOp) Op { return Op{Unary: op} }

// B wraps a BinaryOp as an Op.
func B(op BinaryOp) Op { return Op{IsBinary: true, Binary: op} }

// Arity returns 1 for unary operators and 2 for binary operators.
func (o Op) Arity() int {
	if o.IsBinary {
		return 2
	}
	return 1
}

func (o Op) String() string {
	if o.IsBinary {
		return o.Binary.String()
	}
	return o.Unary.String()
}

// Valid reports whether the wrapped operator is a member of its
// closed enumeration.
func (o Op) Valid() bool {
	if o.IsBinary {
		return o.Binary.Valid()
	}
	return o.Unary.Valid()
}
