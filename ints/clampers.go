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

// Package ints holds the one bounds-clamping helper rowstore needs to
// clamp a negative per-thread slot count to zero without a branch at
// the call site.
package ints

import "golang.org/x/exp/constraints"

// Max returns the larger of x and y.
func Max[T constraints.Integer](x, y T) T {
	if x > y {
		return x
	}
	return y
}
