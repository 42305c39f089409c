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

// Command rowdump loads one of a small set of built-in plan fixtures,
// disassembles it the way ion/cmd/dump dumps ion objects as JSON, and
// optionally runs it to show the values it produces. It exists to
// exercise rowplan.Plan.String() and rowvm.Evaluator end to end
// without a planner front-end, the way vm's own cmd/dump exercises
// ion.ToJSON without a query front-end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/colddeck/rowvm/rowops"
	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowsink"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtable"
	"github.com/colddeck/rowvm/rowtype"
	"github.com/colddeck/rowvm/rowvm"
)

func main() {
	name := flag.String("fixture", "addition", "fixture plan to dump: addition, null-propagation, equality")
	run := flag.Bool("run", false, "evaluate the fixture and print its results, not just the disassembly")
	trace := flag.Bool("trace", false, "log every Evaluator construction to stderr")
	flag.Parse()

	rowvm.SetTrace(*trace)

	fx, ok := fixtures[*name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown fixture %q (want one of: addition, null-propagation, equality)\n", *name)
		os.Exit(1)
	}
	plan := fx.plan()
	fmt.Print(plan.String())
	if !*run {
		return
	}
	if err := rowops.ValidatePlan(plan); err != nil {
		fmt.Fprintln(os.Stderr, "invalid plan:", err)
		os.Exit(1)
	}
	fx.run(plan)
}

type fixture struct {
	plan func() *rowplan.Plan
	run  func(*rowplan.Plan)
}

var fixtures = map[string]fixture{
	"addition": {
		plan: additionPlan,
		run:  runAddition,
	},
	"null-propagation": {
		plan: nullPropagationPlan,
		run:  runNullPropagation,
	},
	"equality": {
		plan: equalityPlan,
		run:  runEquality,
	},
}

func additionPlan() *rowplan.Plan {
	return rowplan.NewPlan(nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.B(rowplan.Add)},
		[]int{0, 0, 1},
	)
}

func runAddition(plan *rowplan.Plan) {
	a := rowtable.NewColumn(rowtype.Int64, []int64{1, 2, 3})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a}, Rows: 3}
	out := rowtable.NewColumn(rowtype.Int64, make([]int64, 3))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvm.NewSingleTable[int64](left, plan, slab, 0, rowops.EqualNullsCompareUnequal, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for row := 0; row < left.NumRows(); row++ {
		ev.Evaluate(sink, row)
	}
	fmt.Println(out.Values)
}

func nullPropagationPlan() *rowplan.Plan {
	return rowplan.NewPlan(
		[]rowplan.Literal{{Int: 2, Valid: true}},
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Lit(rowtype.Int64, 0),
			rowplan.Out(rowtype.Int64),
		},
		[]rowplan.Op{rowplan.B(rowplan.Mul)},
		[]int{0, 1, 2},
	)
}

func runNullPropagation(plan *rowplan.Plan) {
	a := rowtable.NewNullableColumn(rowtype.Int64, []int64{1, 0, 3}, []bool{true, false, true})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a}, Rows: 3}
	out := rowtable.NewNullableColumn(rowtype.Int64, make([]int64, 3), make([]bool, 3))
	sink := &rowsink.ColumnSink[int64]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvm.NewSingleTable[int64](left, plan, slab, 0, rowops.EqualNullsCompareUnequal, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for row := 0; row < left.NumRows(); row++ {
		ev.Evaluate(sink, row)
	}
	for i := range out.Values {
		if out.IsValid(i) {
			fmt.Println(out.Values[i])
		} else {
			fmt.Println("null")
		}
	}
}

func equalityPlan() *rowplan.Plan {
	return rowplan.NewPlan(nil,
		[]rowplan.DataRef{
			rowplan.Col(rowplan.Left, rowtype.Int64, 0),
			rowplan.Col(rowplan.Left, rowtype.Int64, 1),
			rowplan.Out(rowtype.Bool),
		},
		[]rowplan.Op{rowplan.B(rowplan.Equal)},
		[]int{0, 1, 2},
	)
}

func runEquality(plan *rowplan.Plan) {
	a := rowtable.NewNullableColumn(rowtype.Int64, []int64{1, 0, 3}, []bool{true, false, true})
	b := rowtable.NewNullableColumn(rowtype.Int64, []int64{1, 0, 4}, []bool{true, false, true})
	left := &rowtable.MemTable{Columns: []rowtable.Column{a, b}, Rows: 3}
	out := rowtable.NewColumn(rowtype.Bool, make([]bool, 3))
	sink := &rowsink.ColumnSink[bool]{Target: out}
	slab := rowstore.NewSlab(1, plan.MaxIntermediates)
	ev, err := rowvm.NewSingleTable[bool](left, plan, slab, 0, rowops.EqualNullsCompareEqual, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for row := 0; row < left.NumRows(); row++ {
		ev.Evaluate(sink, row)
	}
	fmt.Println(out.Values)
}
