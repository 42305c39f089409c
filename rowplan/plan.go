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

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Literal is one boxed scalar value in the plan's literal array,
// carrying its own DataRef.Type tag so the resolver knows how to
// reinterpret it.
type Literal struct {
	// Int is used for Int*/Uint*/Bool/Timestamp/Duration/Decimal64
	// tags, reinterpreted according to the referencing DataRef.Type.
	Int int64
	// Float is used for Float32/Float64 tags.
	Float float64
	// Str is used for the String tag.
	Str string
	// Valid carries the literal's fixed validity: a literal's
	// nullness is baked into the plan, not recomputed per row.
	Valid bool
}

// Plan is the immutable, device-view expression plan consumed by the
// evaluator.
type Plan struct {
	// ID is stamped on every constructed plan so that the optional
	// trace/log line (see rowvm.SetTrace) can correlate log output
	// with a specific compiled program, the way a session ID
	// correlates log lines for one connection.
	ID uuid.UUID

	// Literals is the literal array, addressed by DataRef.Index for
	// DataRef.Kind == LiteralRef.
	Literals []Literal

	// Refs is the data-reference table; operand-index stream entries
	// are indices into this slice.
	Refs []DataRef

	// Ops is the operator sequence.
	Ops []Op

	// OperandIndices is the flattened operand-index stream: for each
	// operator in Ops, in order, Arity() input indices into Refs
	// followed by one output index into Refs.
	OperandIndices []int

	// MaxIntermediates is the number of slots a per-thread
	// rowstore.Slab must provide to evaluate this plan.
	MaxIntermediates int
}

// NewPlan stamps a fresh plan ID and computes MaxIntermediates from refs.
func NewPlan(literals []Literal, refs []DataRef, ops []Op, operandIndices []int) *Plan {
	p := &Plan{
		ID:             uuid.New(),
		Literals:       literals,
		Refs:           refs,
		Ops:            ops,
		OperandIndices: operandIndices,
	}
	for _, r := range refs {
		if r.Kind == Intermediate && r.Index+1 > p.MaxIntermediates {
			p.MaxIntermediates = r.Index + 1
		}
	}
	return p
}

// Step is one decoded (operator, operand refs, output ref) triple,
// returned by Plan.Steps for validation, disassembly, and evaluation.
type Step struct {
	Op      Op
	Inputs  []DataRef
	Output  DataRef
	Cursor  int // offset of this step's first operand-index entry
}

// Steps decodes the operand-index stream into a sequence of Step
// values in evaluation order.
func (p *Plan) Steps() ([]Step, error) {
	steps := make([]Step, 0, len(p.Ops))
	cursor := 0
	for k, op := range p.Ops {
		a := op.Arity()
		if cursor+a+1 > len(p.OperandIndices) {
			return nil, fmt.Errorf("rowplan: operand-index stream truncated at operator %d (%s)", k, op)
		}
		inputs := make([]DataRef, a)
		for i := 0; i < a; i++ {
			idx := p.OperandIndices[cursor+i]
			if idx < 0 || idx >= len(p.Refs) {
				return nil, fmt.Errorf("rowplan: operator %d (%s) input %d references out-of-bounds ref %d", k, op, i, idx)
			}
			inputs[i] = p.Refs[idx]
		}
		outIdx := p.OperandIndices[cursor+a]
		if outIdx < 0 || outIdx >= len(p.Refs) {
			return nil, fmt.Errorf("rowplan: operator %d (%s) output references out-of-bounds ref %d", k, op, outIdx)
		}
		steps = append(steps, Step{
			Op:     op,
			Inputs: inputs,
			Output: p.Refs[outIdx],
			Cursor: cursor,
		})
		cursor += a + 1
	}
	if cursor != len(p.OperandIndices) {
		return nil, fmt.Errorf("rowplan: operand-index stream has %d trailing entries", len(p.OperandIndices)-cursor)
	}
	return steps, nil
}

// String disassembles the plan into a human-readable listing, one
// line per operator, in the spirit of vm's bytecode formatter
// (formatArgs in bytecode.go).
func (p *Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan %s (%d literals, %d refs, %d ops, %d intermediates)\n",
		p.ID, len(p.Literals), len(p.Refs), len(p.Ops), p.MaxIntermediates)
	steps, err := p.Steps()
	if err != nil {
		fmt.Fprintf(&b, "  <invalid: %v>\n", err)
		return b.String()
	}
	for i, s := range steps {
		ins := make([]string, len(s.Inputs))
		for j, in := range s.Inputs {
			ins[j] = refString(in)
		}
		fmt.Fprintf(&b, "  t%d: %s <- %s(%s)\n", i, refString(s.Output), s.Op, strings.Join(ins, ", "))
	}
	return b.String()
}

func refString(r DataRef) string {
	switch r.Kind {
	case Column:
		if r.TableSource == Output {
			return fmt.Sprintf("out:%s", r.Type)
		}
		return fmt.Sprintf("%s.col[%d]:%s", r.TableSource, r.Index, r.Type)
	case LiteralRef:
		return fmt.Sprintf("lit[%d]:%s", r.Index, r.Type)
	case Intermediate:
		return fmt.Sprintf("t[%d]:%s", r.Index, r.Type)
	default:
		return "<invalid-ref>"
	}
}
