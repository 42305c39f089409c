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

package date

import (
	"math/rand"
	"testing"
	"time"
)

func checkParts(t *testing.T, got Time, want time.Time) {
	t.Helper()
	want = want.UTC()
	if y1, y2 := got.Year(), want.Year(); y1 != y2 {
		t.Errorf("Year: got %d, want %d", y1, y2)
	}
	if m1, m2 := got.Month(), int(want.Month()); m1 != m2 {
		t.Errorf("Month: got %d, want %d", m1, m2)
	}
	if d1, d2 := got.Day(), want.Day(); d1 != d2 {
		t.Errorf("Day: got %d, want %d", d1, d2)
	}
	if h1, h2 := got.Hour(), want.Hour(); h1 != h2 {
		t.Errorf("Hour: got %d, want %d", h1, h2)
	}
	if mi1, mi2 := got.Minute(), want.Minute(); mi1 != mi2 {
		t.Errorf("Minute: got %d, want %d", mi1, mi2)
	}
	if s1, s2 := got.Second(), want.Second(); s1 != s2 {
		t.Errorf("Second: got %d, want %d", s1, s2)
	}
	if ns1, ns2 := got.Nanosecond(), want.Nanosecond(); ns1 != ns2 {
		t.Errorf("Nanosecond: got %d, want %d", ns1, ns2)
	}
}

// TestFromTimeRoundTrip checks that a time.Time passed to FromTime
// comes back out with the same calendar fields and instant.
func TestFromTimeRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2019, 10, 12, 7, 20, 50, 520000000, time.UTC),
		time.Date(1992, 1, 23, 12, 24, 32, 999999000, time.UTC),
		time.Date(2022, 1, 1, 0, 20, 0, 0, time.FixedZone("", 90*60)),
		time.Date(2022, 12, 31, 23, 59, 59, 0, time.FixedZone("", -30*60)),
		time.Unix(0, 0),
		time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, want := range cases {
		got := FromTime(want)
		checkParts(t, got, want)
		if !got.Time().Equal(want) {
			t.Errorf("Time(): got %s, want %s", got.Time(), want)
		}
	}
}

func TestUnixMicroRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Time holds years 0 through 16383 (see its doc comment); offsets
	// are drawn from that span.
	lo := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro()
	hi := time.Date(16384, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro()
	for i := 0; i < 1000; i++ {
		us := lo + rng.Int63n(hi-lo)
		got := UnixMicro(us)
		if back := got.UnixMicro(); back != us {
			t.Errorf("case %d: UnixMicro round trip: %d != %d", i, back, us)
		}
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		t    Time
		want string
	}{
		{FromTime(time.Date(2021, 4, 7, 12, 0, 0, 0, time.UTC)), "2021-04-07 12:00:00 +0000 UTC"},
		{FromTime(time.Date(2021, 4, 7, 12, 0, 0, 123456789, time.UTC)), "2021-04-07 12:00:00.123456789 +0000 UTC"},
	}
	for _, c := range cases {
		if got := c.t.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func BenchmarkString(b *testing.B) {
	t := FromTime(time.Date(2021, 4, 7, 12, 0, 0, 123456789, time.UTC))
	var s string
	for i := 0; i < b.N; i++ {
		s = t.String()
	}
	_ = s
}
