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

// Package rowstore implements the evaluator's per-thread intermediate
// storage: a contiguous slab partitioned so that worker t writes only
// into its own slice, with no cross-thread visibility.
package rowstore

import "github.com/colddeck/rowvm/ints"

// Slab is a contiguous slab of per-thread intermediate-value scratch,
// sized threads x slotsPerThread x 8 bytes. Sizing and handing each
// evaluator its slice is the caller's responsibility (the kernel
// launcher, in device terms); this package only owns the layout and
// the per-worker view into it.
type Slab struct {
	values         []uint64
	valid          []bool
	slotsPerThread int
}

// NewSlab allocates a Slab for the given number of worker threads,
// each with slotsPerThread intermediate slots.
func NewSlab(threads, slotsPerThread int) *Slab {
	slotsPerThread = ints.Max(slotsPerThread, 0)
	return &Slab{
		values:         make([]uint64, threads*slotsPerThread),
		valid:          make([]bool, threads*slotsPerThread),
		slotsPerThread: slotsPerThread,
	}
}

// Thread returns the slice of the slab owned exclusively by worker t.
// Lifetime of the returned Slots spans exactly one row's evaluation;
// its contents are undefined before the first write and after the row
// completes.
func (s *Slab) Thread(t int) Slots {
	lo := t * s.slotsPerThread
	hi := lo + s.slotsPerThread
	return Slots{
		values: s.values[lo:hi:hi],
		valid:  s.valid[lo:hi:hi],
	}
}

// Slots is one worker's exclusive view into a Slab.
type Slots struct {
	values []uint64
	valid  []bool
}

// Store writes the 8-byte payload bits and validity into slot.
// Panics (a programmer error) if slot is out of range; a well-formed
// plan (rowplan.Plan.Validate) never produces such an index.
func (s Slots) Store(slot int, bits uint64, validFlag bool) {
	s.values[slot] = bits
	s.valid[slot] = validFlag
}

// Load reads back the payload bits and validity previously written
// to slot by Store: the last write to a slot is always what a
// subsequent read observes.
func (s Slots) Load(slot int) (bits uint64, validFlag bool) {
	return s.values[slot], s.valid[slot]
}

// Len reports how many intermediate slots this worker's view holds.
func (s Slots) Len() int { return len(s.values) }
