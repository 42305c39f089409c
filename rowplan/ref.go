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

// Package rowplan holds the flattened, validated program that the
// rowvm evaluator executes: data references, the literal array, the
// operator sequence, and the operand-index stream that ties them
// together.
package rowplan

import "github.com/colddeck/rowvm/rowtype"

// ReferenceKind identifies the source of one operand or output of an
// operator: a table column, a plan literal, or an intermediate slot.
type ReferenceKind uint8

const (
	Column ReferenceKind = iota
	LiteralRef
	Intermediate
)

func (k ReferenceKind) String() string {
	switch k {
	case Column:
		return "column"
	case LiteralRef:
		return "literal"
	case Intermediate:
		return "intermediate"
	default:
		return "invalid-reference-kind"
	}
}

// TableSource names which of the (up to) two input tables a Column
// reference draws from, or marks a reference as belonging to the
// evaluator's output.
type TableSource uint8

const (
	Left TableSource = iota
	Right
	Output
)

func (s TableSource) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Output:
		return "output"
	default:
		return "invalid-table-source"
	}
}

// DataRef is the immutable descriptor identifying one operand or
// output value.
type DataRef struct {
	Kind        ReferenceKind
	Type        rowtype.Tag
	Index       int
	TableSource TableSource
}

// Col builds a DataRef naming column index i of the named table.
func Col(src TableSource, tag rowtype.Tag, index int) DataRef {
	return DataRef{Kind: Column, Type: tag, Index: index, TableSource: src}
}

// Lit builds a DataRef naming literal index i of the plan's literal array.
func Lit(tag rowtype.Tag, index int) DataRef {
	return DataRef{Kind: LiteralRef, Type: tag, Index: index}
}

// Intr builds a DataRef naming intermediate slot i.
func Intr(tag rowtype.Tag, index int) DataRef {
	return DataRef{Kind: Intermediate, Type: tag, Index: index}
}

// Out builds a DataRef naming the terminal column output.
func Out(tag rowtype.Tag) DataRef {
	return DataRef{Kind: Column, Type: tag, TableSource: Output}
}
