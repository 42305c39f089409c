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

package rowtable

import (
	"testing"

	"github.com/colddeck/rowvm/rowtype"
)

func TestDecompressInt64ColumnRoundTrip(t *testing.T) {
	want := []int64{1, 2, 3, -4, 1 << 40, 0}
	blob := CompressInt64Fixture(want)

	col, err := DecompressInt64Column(rowtype.Int64, blob)
	if err != nil {
		t.Fatalf("DecompressInt64Column: %v", err)
	}
	if col.Tag() != rowtype.Int64 {
		t.Fatalf("Tag() = %s, want int64", col.Tag())
	}
	if len(col.Values) != len(want) {
		t.Fatalf("got %d values, want %d", len(col.Values), len(want))
	}
	for i, v := range want {
		if col.At(i) != v {
			t.Errorf("row %d = %d, want %d", i, col.At(i), v)
		}
		if !col.IsValid(i) {
			t.Errorf("row %d should be valid (no mask set)", i)
		}
	}
}

func TestDecompressInt64ColumnRejectsGarbage(t *testing.T) {
	if _, err := DecompressInt64Column(rowtype.Int64, []byte("not zstd")); err == nil {
		t.Fatal("expected an error decompressing non-zstd input")
	}
}
