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

import "golang.org/x/sys/cpu"

// HostLaneWidth reports how many lanes of a notional SIMD warp the
// host CPU could process per matched instruction, mirroring the
// probe vm's avx512level runs before picking a bytecode kernel
// variant. It is informational only: EvaluateRows always processes
// exactly one row per call regardless of the result, because Go has
// no portable way to target wide SIMD lanes or GPU warps from source
// (see SPEC_FULL.md §1). A caller fanning out across goroutines may
// use it to size a worker pool to the hardware's natural width.
func HostLaneWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 16
	case cpu.X86.HasAVX2:
		return 8
	case cpu.X86.HasSSE2:
		return 4
	default:
		return 1
	}
}
