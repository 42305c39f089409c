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

// Package rowops implements the operator functors and the two-level
// (operator, type) dispatch that resolves an operator and an element
// tag to a concrete computation, gated by a validity predicate so
// invalid combinations never appear on the call path a well-formed
// plan can reach.
//
// Each file groups the functors for one operator family (numeric.go
// arithmetic, compare.go comparisons, bitwise.go, logical.go,
// equality.go) rather than putting every functor in one file.
package rowops

import (
	"math"

	"golang.org/x/exp/constraints"
)

// addNumeric, subNumeric, etc. are the generic functors behind the
// arithmetic operators. They are instantiated explicitly, once per
// concrete element type, from the outer operator/type dispatch switch
// in dispatch_binary.go: generic specialization over a closed enum of
// element types, standing in for template instantiation.

func addNumeric[T constraints.Integer | constraints.Float](a, b T) T { return a + b }
func subNumeric[T constraints.Integer | constraints.Float](a, b T) T { return a - b }
func mulNumeric[T constraints.Integer | constraints.Float](a, b T) T { return a * b }

// divNumeric leaves division-by-zero at whatever Go itself produces:
// a runtime panic for integers, IEEE754 Inf/NaN for floats. Neither
// case is trapped or special-cased here.
func divNumeric[T constraints.Integer | constraints.Float](a, b T) T { return a / b }

func modNumeric[T constraints.Integer](a, b T) T { return a % b }

func powInteger[T constraints.Integer](a, b T) T {
	if b < 0 {
		return 0
	}
	result := T(1)
	base := a
	exp := b
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func powFloat[T constraints.Float](a, b T) T {
	return T(math.Pow(float64(a), float64(b)))
}

func sinFloat[T constraints.Float](a T) T { return T(math.Sin(float64(a))) }
func cosFloat[T constraints.Float](a T) T { return T(math.Cos(float64(a))) }
