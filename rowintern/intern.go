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

// Package rowintern deduplicates the string literals a rowplan.Plan
// carries in its literal array. A plan built from a user expression
// frequently repeats the same string constant (the same matched
// prefix in a chain of ORed equality checks, say); interning keeps one
// copy of the backing bytes per distinct value, the way vm's symbol
// table and radix-hash join tables (vm/siphash_generic.go,
// vm/radix64.go) avoid storing duplicate keys, keyed the same way:
// siphash over the raw bytes, bucketed into a chaining hash table.
package rowintern

import (
	"github.com/dchest/siphash"

	"github.com/colddeck/rowvm/rowtype"
)

const (
	internK0 = 0x726f7776_6d20696e
	internK1 = 0x7465726e5f746162
)

type entry struct {
	data []byte
	next int
}

// Table interns string literal bytes: repeated Interns of an
// identical byte sequence return the same backing slice.
type Table struct {
	buckets []int
	entries []entry
}

// New returns an empty Table sized for an expected number of distinct
// literals. A zero or negative estimate is treated as a small default,
// the way vm's radix tables round an unknown input size up to a
// sane minimum bucket count.
func New(expected int) *Table {
	if expected < 8 {
		expected = 8
	}
	return &Table{buckets: make([]int, nextPow2(expected))}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (t *Table) bucketFor(data []byte) (idx int, lo, hi uint64) {
	lo, hi = siphash.Hash128(internK0, internK1, data)
	idx = int(lo) & (len(t.buckets) - 1)
	return idx, lo, hi
}

// Intern returns a rowtype.StringView backed by a single shared copy
// of data's bytes: calling Intern twice with equal byte content
// returns views over the same underlying array.
func (t *Table) Intern(data []byte) rowtype.StringView {
	idx, _, _ := t.bucketFor(data)
	for e := t.buckets[idx]; e != 0; e = t.entries[e-1].next {
		ent := &t.entries[e-1]
		if string(ent.data) == string(data) {
			return rowtype.StringView{Data: ent.data}
		}
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	t.entries = append(t.entries, entry{data: owned, next: t.buckets[idx]})
	t.buckets[idx] = len(t.entries)
	return rowtype.StringView{Data: owned}
}

// InternString is Intern for a Go string argument, for callers
// building literal tables from parsed source text rather than raw
// bytes.
func (t *Table) InternString(s string) rowtype.StringView {
	return t.Intern([]byte(s))
}

// Len reports the number of distinct strings interned so far.
func (t *Table) Len() int { return len(t.entries) }
