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

// Package rowvm implements the expression evaluator driver: the input
// resolver, the output handler, and the Evaluator that walks a
// rowplan.Plan's operand-index stream once per row and writes the
// result to a rowsink.Sink.
//
// The row path does not allocate for most operators; it does allocate
// for a String literal operand (copied into a fresh byte slice per
// row) and for Decimal64 division and Decimal64 casts to Int64 or
// Float64 (computed through math/big).
//
// The evaluator never recovers from a programmer error (spec.md §4.6,
// §7): an unsupported element type, an invalid (operator, type)
// combination, or an oversized intermediate write panics with an
// evalError rather than returning one, mirroring a device-side
// assertion that aborts the offending thread. Evaluate never recovers
// that panic; unless the caller recovers it, it terminates the whole
// program, including every other goroutine a caller fanning out across
// rows (see doc comment on Evaluator) has started.
//
// Construction-time plan problems (rowplan.Plan.Validate,
// rowops.ValidatePlan) are the only errors this package returns
// through an ordinary error return, because those are the caller's
// responsibility to catch before an Evaluator ever exists.
package rowvm
