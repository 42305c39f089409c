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

// Validate checks the structural well-formedness invariants that do
// not require knowledge of which (operator, type) combinations are
// implemented (that additional check lives in rowops.ValidatePlan, to
// keep the data model package free of a dependency on the
// operator-dispatch package). A plan that fails Validate must never
// be handed to a rowvm.Evaluator: these are construction-time errors,
// rejected before evaluation ever begins.
func (p *Plan) Validate() error {
	steps, err := p.Steps()
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		return fmt.Errorf("rowplan: plan has no operators")
	}

	written := make(map[int]bool, p.MaxIntermediates)
	for i, s := range steps {
		for _, in := range s.Inputs {
			// A well-formed plan must never reference the OUTPUT table
			// as an input; the planner is the only party that may
			// produce an Output-tagged reference, and only as a
			// step's Output.
			if in.Kind == Column && in.TableSource == Output {
				return fmt.Errorf("rowplan: operator %d (%s) reads from the OUTPUT table source, which is only valid as a final write target", i, s.Op)
			}
			if in.Kind == Intermediate {
				if in.Index < 0 || in.Index >= p.MaxIntermediates {
					return fmt.Errorf("rowplan: operator %d (%s) reads out-of-range intermediate slot %d", i, s.Op, in.Index)
				}
				if !written[in.Index] {
					return fmt.Errorf("rowplan: operator %d (%s) reads intermediate slot %d before it is written", i, s.Op, in.Index)
				}
			}
			if !in.Type.Valid() {
				return fmt.Errorf("rowplan: operator %d (%s) input has unknown element type tag %d", i, s.Op, in.Type)
			}
		}

		if s.Output.Kind == Intermediate {
			if !s.Output.Type.FixedWidth() {
				return fmt.Errorf("rowplan: operator %d (%s) writes a %s result to intermediate slot %d, but %s is not representable in 8 bytes", i, s.Op, s.Output.Type, s.Output.Index, s.Output.Type)
			}
			if written[s.Output.Index] {
				return fmt.Errorf("rowplan: intermediate slot %d is written more than once (by operator %d, %s)", s.Output.Index, i, s.Op)
			}
			written[s.Output.Index] = true
		} else if s.Output.Kind == Column && s.Output.TableSource != Output {
			return fmt.Errorf("rowplan: operator %d (%s) writes to a non-terminal column reference; only the OUTPUT table source may be written", i, s.Op)
		} else if s.Output.Kind == LiteralRef {
			return fmt.Errorf("rowplan: operator %d (%s) writes to a literal reference, which is immutable", i, s.Op)
		}
	}

	last := steps[len(steps)-1]
	if last.Output.Kind != Column || last.Output.TableSource != Output {
		return fmt.Errorf("rowplan: the last operator must write the terminal OUTPUT reference, got %s", refString(last.Output))
	}
	for i, s := range steps[:len(steps)-1] {
		if s.Output.Kind == Column && s.Output.TableSource == Output {
			return fmt.Errorf("rowplan: operator %d (%s) writes the terminal OUTPUT reference before the last operator", i, s.Op)
		}
	}

	return nil
}
