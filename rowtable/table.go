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

// Package rowtable defines the table/column view contract the
// evaluator consumes from its caller: one or two device table views
// exposing column(i).element<T>(row) and column(i).is_valid(row).
// Concrete table/column storage is an external collaborator's
// concern; the in-memory implementation here exists to exercise and
// test that contract, the way vm/bc_test.go's BufferedTable exists
// only to drive opcode unit tests.
package rowtable

import "github.com/colddeck/rowvm/rowtype"

// Column is the type-erased half of the contract: every column knows
// its own element tag and whether a given row is valid. Typed element
// access goes through the package-level Element function, which
// recovers the concrete *TypedColumn[T] instantiation.
type Column interface {
	Tag() rowtype.Tag
	IsValid(row int) bool
}

// TypedColumn is a dense, in-memory column of a single fixed element
// type. A nil Mask means the column is non-nullable, letting callers
// that know a column carries no nulls take a branch-free path.
type TypedColumn[T any] struct {
	ElementTag rowtype.Tag
	Values     []T
	Mask       []bool
}

func (c *TypedColumn[T]) Tag() rowtype.Tag { return c.ElementTag }

func (c *TypedColumn[T]) IsValid(row int) bool {
	return c.Mask == nil || c.Mask[row]
}

// At returns the raw element at row, ignoring validity. Callers that
// need the null-aware value should use the package-level Element
// function instead.
func (c *TypedColumn[T]) At(row int) T { return c.Values[row] }

// NewColumn builds a non-nullable column.
func NewColumn[T any](tag rowtype.Tag, values []T) *TypedColumn[T] {
	return &TypedColumn[T]{ElementTag: tag, Values: values}
}

// NewNullableColumn builds a column with an explicit per-row validity mask.
func NewNullableColumn[T any](tag rowtype.Tag, values []T, mask []bool) *TypedColumn[T] {
	return &TypedColumn[T]{ElementTag: tag, Values: values, Mask: mask}
}

// Element resolves col's row-th value as a rowtype.Null[T], asserting
// (a programmer error) if col is not actually backed by a
// *TypedColumn[T] of the matching element type.
func Element[T any](col Column, row int) rowtype.Null[T] {
	tc, ok := col.(*TypedColumn[T])
	if !ok {
		var zero T
		panic("rowtable: column of type " + col.Tag().String() + " is not layout-compatible with requested element type " + sprintT(zero))
	}
	return rowtype.Null[T]{Value: tc.At(row), Valid: tc.IsValid(row)}
}

func sprintT[T any](v T) string {
	return typeName(v)
}

// Table is one side of the evaluator's input: a set of columns all
// sharing the same row count.
type Table interface {
	Column(i int) Column
	NumColumns() int
	NumRows() int
}

// MemTable is a simple in-memory Table, sufficient for tests and for
// callers that materialize both sides of a join/transform up front.
type MemTable struct {
	Columns []Column
	Rows    int
}

func (t *MemTable) Column(i int) Column  { return t.Columns[i] }
func (t *MemTable) NumColumns() int      { return len(t.Columns) }
func (t *MemTable) NumRows() int         { return t.Rows }
