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
	"encoding/binary"
	"fmt"
	"runtime"

	"github.com/klauspost/compress/zstd"

	"github.com/colddeck/rowvm/rowtype"
)

// fixtureEnc/fixtureDec are package-level, reused across calls the
// same way ion/zion/compress.go keeps one *zstd.Encoder/*zstd.Decoder
// pair rather than constructing one per call.
var fixtureEnc *zstd.Encoder
var fixtureDec *zstd.Decoder

func init() {
	fixtureEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	fixtureDec, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
}

// CompressInt64Fixture packs values as little-endian int64s and
// zstd-compresses the result. It exists so tests can ship column
// fixtures as compressed blobs rather than literal Go slices, the way
// a real table view's backing column chunks arrive compressed over
// the wire and are decompressed once before scanning.
func CompressInt64Fixture(values []int64) []byte {
	raw := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[i*8:], uint64(v))
	}
	return fixtureEnc.EncodeAll(raw, nil)
}

// DecompressInt64Column decodes a zstd-compressed little-endian int64
// blob produced by CompressInt64Fixture into a non-nullable
// *TypedColumn[int64] tagged tag.
func DecompressInt64Column(tag rowtype.Tag, compressed []byte) (*TypedColumn[int64], error) {
	raw, err := fixtureDec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("rowtable: decompressing int64 fixture: %w", err)
	}
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("rowtable: decompressed int64 fixture has length %d, not a multiple of 8", len(raw))
	}
	values := make([]int64, len(raw)/8)
	for i := range values {
		values[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return NewColumn(tag, values), nil
}
