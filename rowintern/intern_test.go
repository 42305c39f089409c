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

package rowintern

import "testing"

func TestInternDeduplicates(t *testing.T) {
	tbl := New(0)
	a := tbl.InternString("engineering")
	b := tbl.InternString("engineering")
	c := tbl.InternString("marketing")

	if &a.Data[0] != &b.Data[0] {
		t.Fatal("two interns of the same string did not share backing storage")
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 distinct strings, got %d", tbl.Len())
	}
	if a.String() != "engineering" || c.String() != "marketing" {
		t.Fatal("interned values do not round-trip to their original text")
	}
}

func TestInternManyDistinctValues(t *testing.T) {
	tbl := New(4)
	seen := make(map[string][]byte)
	for i := 0; i < 200; i++ {
		s := randomish(i)
		v := tbl.InternString(s)
		if prior, ok := seen[s]; ok {
			if &prior[0] != &v.Data[0] {
				t.Fatalf("value %q interned to two different backing arrays", s)
			}
		} else {
			seen[s] = v.Data
		}
	}
	if tbl.Len() != len(seen) {
		t.Fatalf("got %d distinct entries, want %d", tbl.Len(), len(seen))
	}
}

func randomish(i int) string {
	alphabet := "abcdefghij"
	return string([]byte{alphabet[i%10], alphabet[(i/10)%10], alphabet[(i/100)%10]})
}
