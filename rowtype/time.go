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

package rowtype

import "github.com/colddeck/rowvm/date"

// Timestamp is the representative storage type for the Timestamp tag:
// microseconds since the Unix epoch, packed into a plain int64 so it
// is layout-compatible with an 8-byte intermediate slot. It is a
// distinct named type (rather than a bare int64) so that operator
// dispatch can tell a Timestamp operand apart from a plain Int64 one.
type Timestamp int64

// FromDate converts a date.Time wall-clock value to a Timestamp.
func FromDate(t date.Time) Timestamp {
	return Timestamp(t.UnixMicro())
}

// Date converts t back to a date.Time for formatting or calendar
// arithmetic.
func (t Timestamp) Date() date.Time {
	return date.UnixMicro(int64(t))
}

func (t Timestamp) String() string { return t.Date().String() }

// Duration is the representative storage type for the Duration tag:
// nanoseconds, packed into a plain int64. Distinct from Timestamp and
// from Int64 for the same reason.
type Duration int64

func (d Duration) String() string {
	return formatNanos(int64(d))
}

func formatNanos(ns int64) string {
	const unit = 1_000_000_000
	sign := ""
	if ns < 0 {
		sign = "-"
		ns = -ns
	}
	whole := ns / unit
	frac := ns % unit
	if frac == 0 {
		return sign + itoa(whole) + "s"
	}
	return sign + itoa(whole) + "." + fixed9(frac) + "s"
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func fixed9(v int64) string {
	var buf [9]byte
	for i := 8; i >= 0; i-- {
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[:])
}
