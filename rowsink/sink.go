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

// Package rowsink implements the result-container side of evaluation:
// a polymorphic sink variant chosen monomorphically at each call site,
// never through a runtime vtable.
package rowsink

import (
	"github.com/colddeck/rowvm/rowtable"
	"github.com/colddeck/rowvm/rowtype"
)

// Sink is what an evaluator writes its per-row result into: SetValue
// for every sink, IsValid/Value meaningful only for a ScalarSink.
type Sink[T any] interface {
	SetValue(row int, v rowtype.Null[T])
	IsValid() bool
	Value() T
}

// ScalarSink owns exactly one, optionally nullable, value of element
// type T. SetValue ignores its row argument: a scalar result has no
// row dimension to address.
type ScalarSink[T any] struct {
	value rowtype.Null[T]
}

func (s *ScalarSink[T]) SetValue(_ int, v rowtype.Null[T]) { s.value = v }
func (s *ScalarSink[T]) IsValid() bool                     { return s.value.Valid }
func (s *ScalarSink[T]) Value() T                          { return s.value.Value }

// ColumnSink is a non-owning handle to a device column: it writes
// element row and updates the column's null mask according to v's
// validity. IsValid and Value are not meaningful for a ColumnSink and
// must not be called; calling them here panics rather than returning
// a misleading zero value.
type ColumnSink[T any] struct {
	Target *rowtable.TypedColumn[T]
}

func (s *ColumnSink[T]) SetValue(row int, v rowtype.Null[T]) {
	s.Target.Values[row] = v.Value
	switch {
	case s.Target.Mask != nil:
		s.Target.Mask[row] = v.Valid
	case !v.Valid:
		panic("rowsink: wrote a null value into a column sink with no null mask allocated")
	}
}

func (s *ColumnSink[T]) IsValid() bool {
	panic("rowsink: IsValid() is not meaningful on a ColumnSink")
}

func (s *ColumnSink[T]) Value() T {
	panic("rowsink: Value() is not meaningful on a ColumnSink")
}
