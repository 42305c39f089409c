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
	"fmt"

	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowtype"
)

func isInt(t rowtype.Tag) bool {
	return t == rowtype.Int8 || t == rowtype.Int16 || t == rowtype.Int32 || t == rowtype.Int64
}

func isUint(t rowtype.Tag) bool {
	return t == rowtype.Uint8 || t == rowtype.Uint16 || t == rowtype.Uint32 || t == rowtype.Uint64
}

func isFloat(t rowtype.Tag) bool {
	return t == rowtype.Float32 || t == rowtype.Float64
}

func isIntLike(t rowtype.Tag) bool { return isInt(t) || isUint(t) }
func isNumeric(t rowtype.Tag) bool { return isIntLike(t) || isFloat(t) }

// IsValidUnary reports whether op has an instantiation for tag. String
// is only ever valid with Identity, and that case is handled by rowvm
// directly (a variable-length view has no 8-byte encoding to push
// through EvalUnaryBits).
func IsValidUnary(op rowplan.UnaryOp, tag rowtype.Tag) bool {
	if op == rowplan.Identity {
		return tag.Valid()
	}
	switch op {
	case rowplan.Neg:
		return isInt(tag) || isFloat(tag) || tag == rowtype.DurationTag || tag == rowtype.Decimal64Tag
	case rowplan.Abs:
		return isNumeric(tag) || tag == rowtype.Decimal64Tag
	case rowplan.Sin, rowplan.Cos:
		return isFloat(tag)
	case rowplan.Not:
		return tag == rowtype.Bool
	case rowplan.BitNot:
		return isIntLike(tag)
	case rowplan.CastToInt64:
		return isNumeric(tag) || tag == rowtype.Bool || tag == rowtype.TimestampTag || tag == rowtype.DurationTag || tag == rowtype.Decimal64Tag
	case rowplan.CastToFloat64:
		return isNumeric(tag) || tag == rowtype.Decimal64Tag
	case rowplan.CastToBool:
		return isNumeric(tag)
	case rowplan.CastToTimestamp:
		return isIntLike(tag)
	case rowplan.CastToDecimal64:
		return isNumeric(tag)
	case rowplan.TruncDay, rowplan.ExtractYear:
		return tag == rowtype.TimestampTag
	default:
		return false
	}
}

// IsValidBinary reports whether op has an instantiation for tag (both
// operands share tag: this evaluator performs single-type dispatch,
// never mixed-type arithmetic).
func IsValidBinary(op rowplan.BinaryOp, tag rowtype.Tag) bool {
	switch op {
	case rowplan.Add:
		return isNumeric(tag) || tag == rowtype.Decimal64Tag || tag == rowtype.DurationTag
	case rowplan.Sub:
		return isNumeric(tag) || tag == rowtype.Decimal64Tag || tag == rowtype.DurationTag || tag == rowtype.TimestampTag
	case rowplan.Mul, rowplan.Div:
		return isNumeric(tag) || tag == rowtype.Decimal64Tag
	case rowplan.Mod:
		return isIntLike(tag)
	case rowplan.Pow:
		return isNumeric(tag)
	case rowplan.Equal, rowplan.NullEquals:
		return isNumeric(tag) || tag == rowtype.Bool || tag == rowtype.TimestampTag || tag == rowtype.DurationTag || tag == rowtype.Decimal64Tag
	case rowplan.NotEqual:
		return isNumeric(tag) || tag == rowtype.Bool || tag == rowtype.TimestampTag || tag == rowtype.DurationTag || tag == rowtype.Decimal64Tag
	case rowplan.Less, rowplan.Greater, rowplan.LessEqual, rowplan.GreaterEqual:
		return isNumeric(tag) || tag == rowtype.TimestampTag || tag == rowtype.DurationTag || tag == rowtype.Decimal64Tag
	case rowplan.LogicalAnd, rowplan.LogicalOr:
		return tag == rowtype.Bool
	case rowplan.BitwiseAnd, rowplan.BitwiseOr, rowplan.BitwiseXor:
		return isIntLike(tag)
	default:
		return false
	}
}

// outputTag returns the element tag a well-formed step writes, given
// its operator and its (shared) operand tag. Most operators preserve
// the operand tag; comparisons and equality always produce Bool,
// casts produce their named target type, and Timestamp-Sub produces
// a Duration.
func outputTag(op rowplan.Op, operandTag rowtype.Tag) (rowtype.Tag, bool) {
	if !op.IsBinary {
		switch op.Unary {
		case rowplan.CastToInt64:
			return rowtype.Int64, true
		case rowplan.CastToFloat64:
			return rowtype.Float64, true
		case rowplan.CastToBool:
			return rowtype.Bool, true
		case rowplan.CastToTimestamp:
			return rowtype.TimestampTag, true
		case rowplan.CastToDecimal64:
			return rowtype.Decimal64Tag, true
		case rowplan.ExtractYear:
			return rowtype.Int64, true
		default:
			return operandTag, true
		}
	}
	switch op.Binary {
	case rowplan.Equal, rowplan.NullEquals, rowplan.NotEqual,
		rowplan.Less, rowplan.Greater, rowplan.LessEqual, rowplan.GreaterEqual:
		return rowtype.Bool, true
	case rowplan.Sub:
		if operandTag == rowtype.TimestampTag {
			return rowtype.DurationTag, true
		}
		return operandTag, true
	default:
		return operandTag, true
	}
}

// ValidatePlan extends rowplan.Plan.Validate with the operator/type
// dispatch knowledge that package rowplan deliberately does not carry
// (doing so would make rowplan depend on rowops). A plan must pass
// both Validate and ValidatePlan before rowvm.Evaluator ever sees it.
func ValidatePlan(p *rowplan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	steps, err := p.Steps()
	if err != nil {
		return err
	}
	for i, s := range steps {
		operandTag := s.Inputs[0].Type
		for j, in := range s.Inputs {
			if in.Type != operandTag {
				return fmt.Errorf("rowops: operator %d (%s) input %d has type %s, expected %s (this evaluator dispatches on a single shared operand type)", i, s.Op, j, in.Type, operandTag)
			}
		}
		if s.Op.IsBinary {
			if !IsValidBinary(s.Op.Binary, operandTag) {
				return fmt.Errorf("rowops: %s has no instantiation for type %s", s.Op.Binary, operandTag)
			}
		} else {
			if !IsValidUnary(s.Op.Unary, operandTag) {
				return fmt.Errorf("rowops: %s has no instantiation for type %s", s.Op.Unary, operandTag)
			}
		}
		want, _ := outputTag(s.Op, operandTag)
		if s.Output.Type != want {
			return fmt.Errorf("rowops: operator %d (%s) must write %s, but its output ref declares %s", i, s.Op, want, s.Output.Type)
		}
	}
	return nil
}
