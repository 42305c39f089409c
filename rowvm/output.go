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
	"github.com/colddeck/rowvm/rowsink"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtype"
)

// writeBits stores an operator's packed result into either an
// intermediate slot or, when outRef names the terminal OUTPUT
// reference, the evaluator's sink. Out is the Evaluator's compile-time
// output element type, established once at construction and checked
// against the plan's declared output tag (see New); decoding bits as
// Out here is therefore always layout-compatible for a plan that
// passed that check.
func writeBits[Out any](outRef rowplan.DataRef, slots rowstore.Slots, sink rowsink.Sink[Out], row int, bits uint64, valid bool) {
	switch outRef.Kind {
	case rowplan.Intermediate:
		assertf(outRef.Type.FixedWidth(), errOversizedIntermediate, "%s does not fit an 8-byte slot", outRef.Type)
		slots.Store(outRef.Index, bits, valid)
	case rowplan.Column:
		assertf(outRef.TableSource == rowplan.Output, errOutputAsInput, "write targets a non-terminal column reference")
		sink.SetValue(row, rowtype.Null[Out]{Value: rowstore.DecodeBits[Out](bits), Valid: valid})
	default:
		panic(evalError{kind: errUnsupportedElementType, detail: refDesc(outRef)})
	}
}

// writeString is writeBits' counterpart for rowtype.String results:
// String has no packed 8-byte form, so it can only ever be a terminal
// column write. rowplan.Plan.Validate already rejects any plan that
// tries to route a String result through an intermediate slot
// (String.FixedWidth() is false); this is the corresponding run-time
// assertion.
func writeString[Out any](outRef rowplan.DataRef, sink rowsink.Sink[Out], row int, v rowtype.StringView, valid bool) {
	assertf(outRef.Kind == rowplan.Column && outRef.TableSource == rowplan.Output,
		errOversizedIntermediate, "string result has no 8-byte intermediate representation")
	sv, ok := any(rowtype.Null[rowtype.StringView]{Value: v, Valid: valid}).(rowtype.Null[Out])
	assertf(ok, errUnsupportedElementType, "evaluator's output type is not rowtype.StringView")
	sink.SetValue(row, sv)
}
