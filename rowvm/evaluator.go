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
	"fmt"

	"github.com/colddeck/rowvm/rowops"
	"github.com/colddeck/rowvm/rowplan"
	"github.com/colddeck/rowvm/rowsink"
	"github.com/colddeck/rowvm/rowstore"
	"github.com/colddeck/rowvm/rowtable"
	"github.com/colddeck/rowvm/rowtype"
)

// Evaluator drives one pass over a rowplan.Plan's operand-index stream
// per row. It holds references only -- the tables, the plan, and its
// intermediate-storage slice -- exactly as spec.md §5 requires: all
// referenced values must outlive the Evaluator's use.
//
// "One cooperating thread per row" (spec.md §1) has no portable Go
// realization (no SIMD lanes, no GPU warps), so the redesign keeps the
// logical contract instead: Evaluator is not safe for concurrent use
// by multiple goroutines (its Slots view is exclusive, per spec.md §5
// "per-thread"), but a caller fans out across rows by constructing one
// Evaluator per goroutine, each with its own rowstore.Slab thread
// index, the way a kernel launcher partitions shared memory by thread
// ID. See SPEC_FULL.md §1 for the full resolution of this open
// question.
type Evaluator[Out any] struct {
	left, right rowtable.Table
	plan        *rowplan.Plan
	slots       rowstore.Slots
	policy      rowops.NullEqualityPolicy
	hasNulls    bool
}

// New constructs an Evaluator over two tables, binding it to thread
// slot threadID of slab. hasNulls must be true unless the caller knows
// no column, literal, or intermediate the plan can touch is ever
// null -- setting it incorrectly to false silently suppresses null
// propagation (spec.md §8 property 3 is intentional, not a bug: no
// validity bit is read on that path).
//
// New returns an error -- rather than panicking -- for every
// construction-time problem: a structurally invalid plan
// (rowplan.Plan.Validate), a plan using an (operator, type)
// combination with no instantiation (rowops.ValidatePlan), or an Out
// that does not match the plan's declared terminal output type. These
// are exactly spec.md §7's "construction-time / plan-validity errors,
// caller responsibility" bucket.
func New[Out any](left, right rowtable.Table, plan *rowplan.Plan, slab *rowstore.Slab, threadID int, policy rowops.NullEqualityPolicy, hasNulls bool) (*Evaluator[Out], error) {
	if err := rowops.ValidatePlan(plan); err != nil {
		return nil, err
	}
	steps, err := plan.Steps()
	if err != nil {
		return nil, err
	}
	last := steps[len(steps)-1]
	if want := rowtype.TagFor[Out](); want != last.Output.Type {
		return nil, fmt.Errorf("rowvm: plan %s writes a %s result, but Evaluator was instantiated for %s", plan.ID, last.Output.Type, want)
	}
	traceConstruct(plan)
	return &Evaluator[Out]{
		left:     left,
		right:    right,
		plan:     plan,
		slots:    slab.Thread(threadID),
		policy:   policy,
		hasNulls: hasNulls,
	}, nil
}

// NewSingleTable constructs an Evaluator that uses one table as both
// the LEFT and RIGHT input, for plans that reference only one side.
func NewSingleTable[Out any](table rowtable.Table, plan *rowplan.Plan, slab *rowstore.Slab, threadID int, policy rowops.NullEqualityPolicy, hasNulls bool) (*Evaluator[Out], error) {
	return New[Out](table, table, plan, slab, threadID, policy, hasNulls)
}

// Evaluate runs the plan for one row, reading and writing row for
// both input tables and the output: the shorthand spec.md §4.4 names
// for the common case where input and output alignment coincide (a
// per-row map/filter rather than a join).
func (e *Evaluator[Out]) Evaluate(sink rowsink.Sink[Out], row int) {
	e.EvaluateRows(sink, row, row, row)
}

// EvaluateRows runs the plan for one row triple: lr and rr select the
// input row read from the LEFT and RIGHT tables respectively (they
// differ for joins and other two-table transforms), or selects the
// row written to the output sink.
//
// EvaluateRows never recovers a panic raised by a programmer-error
// assertion (spec.md §4.6, §7): those are unreachable for a plan that
// passed New, and a caller that sees one anyway has a plan that lied
// about its own validity.
func (e *Evaluator[Out]) EvaluateRows(sink rowsink.Sink[Out], lr, rr, or int) {
	ops := e.plan.Ops
	idx := e.plan.OperandIndices
	refs := e.plan.Refs
	cursor := 0
	for _, op := range ops {
		a := op.Arity()
		in0 := refs[idx[cursor]]
		var in1 rowplan.DataRef
		if a == 2 {
			in1 = refs[idx[cursor+1]]
		}
		outRef := refs[idx[cursor+a]]
		cursor += a + 1

		if !op.IsBinary && op.Unary == rowplan.Identity && in0.Type == rowtype.String {
			v, valid := resolveString(in0, e.left, e.right, lr, rr, e.plan.Literals, e.hasNulls)
			writeString[Out](outRef, sink, or, v, valid)
			continue
		}

		if a == 1 {
			bits, valid := resolveBits(in0, e.left, e.right, lr, rr, e.plan.Literals, e.slots, e.hasNulls)
			outBits, outValid, ok := rowops.EvalUnaryBits(op.Unary, in0.Type, bits, valid)
			assertf(ok, errInvalidOperatorType, "%s has no instantiation for %s", op.Unary, in0.Type)
			writeBits[Out](outRef, e.slots, sink, or, outBits, outValid)
			continue
		}

		lbits, lvalid := resolveBits(in0, e.left, e.right, lr, rr, e.plan.Literals, e.slots, e.hasNulls)
		rbits, rvalid := resolveBits(in1, e.left, e.right, lr, rr, e.plan.Literals, e.slots, e.hasNulls)
		var outBits uint64
		var outValid, ok bool
		if op.Binary.IsEqualityLike() {
			outBits, outValid, ok = rowops.EvalEqualityBits(op.Binary, in0.Type, lbits, rbits, lvalid, rvalid, e.policy)
		} else {
			outBits, outValid, ok = rowops.EvalBinaryBits(op.Binary, in0.Type, lbits, rbits, lvalid, rvalid)
		}
		assertf(ok, errInvalidOperatorType, "%s has no instantiation for %s", op.Binary, in0.Type)
		writeBits[Out](outRef, e.slots, sink, or, outBits, outValid)
	}
}
