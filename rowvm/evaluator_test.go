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
	"testing"

	"github.com/colddeck/rowvm/rowops"
	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowsink"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtable"
	"github.com/colddeck/rowvm/rowtype"
)

// buildPlan is this package's small hand-assembly helper for
// operand-index streams, the equivalent of vm/bc_test.go's bctestContext:
// refs and indices are written out explicitly so each test reads as a
// literal disassembly of the plan it exercises.
func buildPlan(t *testing.T, literals []rowplan.Literal, refs []rowplan.DataRef, ops []rowplan.Op, indices []int) *rowplan.Plan {
	t.Helper()
	p := rowplan.NewPlan(literals, refs, ops, indices)
	if err := rowops.ValidatePlan(p); err != nil {
		t.Fatalf("invalid test plan: %v\n%s", err, p)
	}
	return p
}

func int64Column(values []int64) *rowtable.TypedColumn[int64] {
	return rowtable.NewColumn(rowtype.Int64, values)
}

func nullableInt64Column(values []int64, mask []bool) *rowtable.TypedColumn[int64] {
	return rowtable.NewNullableColumn(rowtype.Int64, values, mask)
}

// scenario A: out = a + a over [1, 2, 3].
func TestSingleColumnAddition(t *testing.T) {
	a := int64Column([]int64{1, 2, 3})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a}, Rows: 3}

	plan := buildPlan(t, nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.B(rowplan.Add)},
		[]int{0, 0, 1},
	)

	out := int64Column(make([]int64, 3))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvmNewSingleTable[int64](t, left, plan, slab)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 3; row++ {
		ev.Evaluate(sink, row)
	}
	want := []int64{2, 4, 6}
	for i, w := range want {
		if out.Values[i] != w || !out.IsValid(i) {
			t.Errorf("row %d: got %d (valid=%v), want %d", i, out.Values[i], out.IsValid(i), w)
		}
	}
}

// scenario B: out = a * 2 over [1, null, 3].
func TestNullPropagation(t *testing.T) {
	a := nullableInt64Column([]int64{1, 0, 3}, []bool{true, false, true})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a}, Rows: 3}

	plan := buildPlan(t,
		[]rowplan.Literal{{Int: 2, Valid: true}},
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Lit(rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.B(rowplan.Mul)},
		[]int{0, 1, 2},
	)

	out := nullableInt64Column(make([]int64, 3), make([]bool, 3))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvmNewSingleTable[int64](t, left, plan, slab)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 3; row++ {
		ev.Evaluate(sink, row)
	}
	wantValid := []bool{true, false, true}
	wantValue := []int64{2, 0, 6}
	for i := range wantValid {
		if out.IsValid(i) != wantValid[i] {
			t.Errorf("row %d: valid=%v, want %v", i, out.IsValid(i), wantValid[i])
		}
		if wantValid[i] && out.Values[i] != wantValue[i] {
			t.Errorf("row %d: value=%d, want %d", i, out.Values[i], wantValue[i])
		}
	}
}

// scenarios C and D: out = a == b under both null-equality policies.
func TestEqualityNullPolicy(t *testing.T) {
	cases := []struct {
		name       string
		policy     rowops.NullEqualityPolicy
		wantValues []bool
	}{
		{"EQUAL", rowops.EqualNullsCompareEqual, []bool{true, true, false}},
		{"UNEQUAL", rowops.EqualNullsCompareUnequal, []bool{true, false, false}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := nullableInt64Column([]int64{1, 0, 3}, []bool{true, false, true})
			b := nullableInt64Column([]int64{1, 0, 4}, []bool{true, false, true})
			left := &rowtable.MemTable{Columns: []rowtable.Column{a, b}, Rows: 3}

			plan := buildPlan(t, nil,
				[]rowplan.DataRef{
					rowplan.Col(rowplan.Left, rowtype.Int64, 0),
					rowplan.Col(rowplan.Left, rowtype.Int64, 1),
					rowplan.Out(rowtype.Bool),
				},
				[]rowplan.Op{rowplan.B(rowplan.Equal)},
				[]int{0, 1, 2},
			)

			out := rowtable.NewColumn(rowtype.Bool, make([]bool, 3))
			sink := &rowsink.ColumnSink[bool]{Target: out}
			slab := rowstore.NewSlab(1, plan.MaxIntermediates)
			ev, err := New[bool](left, left, plan, slab, 0, c.policy, true)
			if err != nil {
				t.Fatal(err)
			}
			for row := 0; row < 3; row++ {
				ev.Evaluate(sink, row)
			}
			for i, want := range c.wantValues {
				if !out.IsValid(i) {
					t.Errorf("row %d: expected valid result, got null", i)
					continue
				}
				if out.Values[i] != want {
					t.Errorf("row %d: got %v, want %v", i, out.Values[i], want)
				}
			}
		})
	}
}

// scenario E: two-table evaluation with differing row indices.
func TestTwoTableDifferingRows(t *testing.T) {
	left := &rowtable.MemTable{Columns: []rowtable.Column{int64Column([]int64{10, 20, 30})}, Rows: 3}
	right := &rowtable.MemTable{Columns: []rowtable.Column{int64Column([]int64{1, 2, 3})}, Rows: 3}

	plan := buildPlan(t, nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Col(rowplan.Right, rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.B(rowplan.Sub)},
		[]int{0, 1, 2},
	)

	out := int64Column(make([]int64, 1))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := New[int64](left, right, plan, slab, 0, rowops.EqualNullsCompareUnequal, false)
	if err != nil {
		t.Fatal(err)
	}
	ev.EvaluateRows(sink, 2, 0, 0)
	if out.Values[0] != 29 {
		t.Errorf("got %d, want 29", out.Values[0])
	}
}

// scenario F: intermediate reuse across three chained operators.
func TestIntermediateReuse(t *testing.T) {
	a := int64Column([]int64{1, 1})
	b := int64Column([]int64{2, 3})
	c := int64Column([]int64{4, 5})
	d := int64Column([]int64{6, 7})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a, b, c, d}, Rows: 2}

	refs := []rowplan.DataRef{
		rowplan.Col(rowplan.Left, rowtype.Int64, 0), // 0: a
		rowplan.Col(rowplan.Left, rowtype.Int64, 1), // 1: b
		rowplan.Col(rowplan.Left, rowtype.Int64, 2), // 2: c
		rowplan.Col(rowplan.Left, rowtype.Int64, 3), // 3: d
		rowplan.Intr(rowtype.Int64, 0),              // 4: t0
		rowplan.Intr(rowtype.Int64, 1),               // 5: t1
		rowplan.Out(rowtype.Int64),                   // 6: out
	}
	ops := []rowplan.Op{rowplan.B(rowplan.Add), rowplan.B(rowplan.Mul), rowplan.B(rowplan.Sub)}
	indices := []int{
		0, 1, 4, // t0 = a + b
		4, 2, 5, // t1 = t0 * c
		5, 3, 6, // out = t1 - d
	}
	plan := buildPlan(t, nil, refs, ops, indices)

	out := int64Column(make([]int64, 2))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvmNewSingleTable[int64](t, left, plan, slab)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 2; row++ {
		ev.Evaluate(sink, row)
	}
	want := []int64{6, 13}
	for i, w := range want {
		if out.Values[i] != w {
			t.Errorf("row %d: got %d, want %d", i, out.Values[i], w)
		}
	}
}

// identity over a nullable column reproduces it exactly, null mask included.
func TestIdentityRoundTrip(t *testing.T) {
	a := nullableInt64Column([]int64{1, 0, 3}, []bool{true, false, true})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a}, Rows: 3}

	plan := buildPlan(t, nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.U(rowplan.Identity)},
		[]int{0, 1},
	)

	out := nullableInt64Column(make([]int64, 3), make([]bool, 3))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvmNewSingleTable[int64](t, left, plan, slab)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 3; row++ {
		ev.Evaluate(sink, row)
	}
	for i := range a.Values {
		if out.IsValid(i) != a.IsValid(i) || (a.IsValid(i) && out.Values[i] != a.Values[i]) {
			t.Errorf("row %d: identity did not reproduce input exactly", i)
		}
	}
}

// a scalar sink ignores its row argument and only keeps the final write.
func TestScalarSink(t *testing.T) {
	left := &rowtable.MemTable{Columns: []rowtable.Column{int64Column([]int64{41})}, Rows: 1}
	plan := buildPlan(t,
		[]rowplan.Literal{{Int: 1, Valid: true}},
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Lit(rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.B(rowplan.Add)},
		[]int{0, 1, 2},
	)
	var sink rowsink.ScalarSink[int64]
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvmNewSingleTable[int64](t, left, plan, slab)
	if err != nil {
		t.Fatal(err)
	}
	ev.Evaluate(&sink, 0)
	if !sink.IsValid() || sink.Value() != 42 {
		t.Errorf("got valid=%v value=%d, want 42", sink.IsValid(), sink.Value())
	}
}

// OUTPUT used as an input reference is a programmer error: it must
// panic rather than silently read garbage, per spec.md §9's resolved
// open question.
func TestOutputAsInputPanics(t *testing.T) {
	left := &rowtable.MemTable{Columns: []rowtable.Column{int64Column([]int64{1})}, Rows: 1}
	refs := []rowplan.DataRef{
		rowplan.Col(rowplan.Left, rowtype.Int64, 0),
		{Kind: rowplan.Column, Type: rowtype.Int64, TableSource: rowplan.Output},
	}
	// Hand-construct a plan that rowplan.Validate would reject, to
	// exercise the evaluator's own defense-in-depth assertion
	// directly rather than through New (which already refuses it).
	plan := rowplan.NewPlan(nil, refs, []rowplan.Op{rowplan.B(rowplan.Add)}, []int{0, 1, 0})
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev := &Evaluator[int64]{left: left, right: left, plan: plan, slots: slab.Thread(0), policy: rowops.EqualNullsCompareUnequal, hasNulls: true}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic when an input reference uses the OUTPUT table source")
		}
	}()
	var sink rowsink.ScalarSink[int64]
	ev.Evaluate(&sink, 0)
}

func rowvmNewSingleTable[Out any](t *testing.T, table rowtable.Table, plan *rowplan.Plan, slab *rowstore.Slab) (*Evaluator[Out], error) {
	t.Helper()
	return NewSingleTable[Out](table, plan, slab, 0, rowops.EqualNullsCompareUnequal, true)
}

// String never fits an intermediate slot, so its only valid operator
// is IDENTITY, and the evaluator routes it around the bits pipeline
// entirely (resolveString/writeString). This exercises that path.
func TestStringIdentity(t *testing.T) {
	col := rowtable.NewNullableColumn(rowtype.String,
		[]rowtype.StringView{{Data: []byte("hello")}, {}, {Data: []byte("world")}},
		[]bool{true, false, true})
	left := &rowtable.MemTable{Columns: []rowtable.Column{col}, Rows: 3}

	plan := buildPlan(t, nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.String, 0),
			rowplan.Out(rowtype.String),
		},
		[]rowplan.Op{rowplan.U(rowplan.Identity)},
		[]int{0, 1},
	)

	out := rowtable.NewNullableColumn(rowtype.String, make([]rowtype.StringView, 3), make([]bool, 3))
	sink := &rowsink.ColumnSink[rowtype.StringView]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvmNewSingleTable[rowtype.StringView](t, left, plan, slab)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 3; row++ {
		ev.Evaluate(sink, row)
	}
	for i := range col.Values {
		if out.IsValid(i) != col.IsValid(i) {
			t.Errorf("row %d: valid=%v, want %v", i, out.IsValid(i), col.IsValid(i))
			continue
		}
		if col.IsValid(i) && out.Values[i].String() != col.Values[i].String() {
			t.Errorf("row %d: got %q, want %q", i, out.Values[i], col.Values[i])
		}
	}
}

// an (operator, type) combination with no instantiation -- here NOT
// over an Int64 -- is rejected at construction, never at evaluation.
func TestConstructionRejectsInvalidOperatorType(t *testing.T) {
	left := &rowtable.MemTable{Columns: []rowtable.Column{int64Column([]int64{1})}, Rows: 1}
	refs := []rowplan.DataRef{
		rowplan.Col(rowplan.Left, rowtype.Int64, 0),
		rowplan.Out(rowtype.Int64),
	}
	plan := rowplan.NewPlan(nil, refs, []rowplan.Op{rowplan.U(rowplan.Not)}, []int{0, 1})
	if err := rowops.ValidatePlan(plan); err == nil {
		t.Fatal("expected ValidatePlan to reject NOT over an Int64 operand")
	}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	if _, err := rowvmNewSingleTable[int64](t, left, plan, slab); err == nil {
		t.Fatal("expected New to reject a plan that fails ValidatePlan")
	}
}

// out = TRUNC_DAY(ts); out2 = EXTRACT_YEAR(ts), exercising the
// fastdate-backed calendar operators.
func TestTimestampTruncAndExtractYear(t *testing.T) {
	// 2023-06-15T13:45:00Z and 2023-06-15T00:00:00Z, in microseconds.
	const midDay = rowtype.Timestamp(1686836700_000000)
	const startOfDay = rowtype.Timestamp(1686787200_000000)

	ts := rowtable.NewColumn(rowtype.TimestampTag, []rowtype.Timestamp{midDay})
	left := &rowtable.MemTable{Columns: []rowtable.Column{ts}, Rows: 1}

	truncPlan := buildPlan(t, nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.TimestampTag, 0),
			rowplan.Out(rowtype.TimestampTag),
		},
		[]rowplan.Op{rowplan.U(rowplan.TruncDay)},
		[]int{0, 1},
	)
	truncOut := rowtable.NewColumn(rowtype.TimestampTag, make([]rowtype.Timestamp, 1))
	truncSink := &rowsink.ColumnSink[rowtype.Timestamp]{Target: truncOut}
	truncSlab := rowstore.NewSlab(1, truncPlan.MaxIntermediates)
	truncEv, err := rowvmNewSingleTable[rowtype.Timestamp](t, left, truncPlan, truncSlab)
	if err != nil {
		t.Fatal(err)
	}
	truncEv.Evaluate(truncSink, 0)
	if truncOut.Values[0] != startOfDay {
		t.Errorf("TRUNC_DAY(%d) = %d, want %d", midDay, truncOut.Values[0], startOfDay)
	}

	yearPlan := buildPlan(t, nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.TimestampTag, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.U(rowplan.ExtractYear)},
		[]int{0, 1},
	)
	yearOut := int64Column(make([]int64, 1))
	yearSink := &rowsink.ColumnSink[int64]{Target: yearOut}
	yearSlab := rowstore.NewSlab(1, yearPlan.MaxIntermediates)
	yearEv, err := rowvmNewSingleTable[int64](t, left, yearPlan, yearSlab)
	if err != nil {
		t.Fatal(err)
	}
	yearEv.Evaluate(yearSink, 0)
	if yearOut.Values[0] != 2023 {
		t.Errorf("EXTRACT_YEAR(%d) = %d, want 2023", midDay, yearOut.Values[0])
	}
}
