// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package fastdate

import (
	"testing"
	"time"
)

func checkTruncDayAndYear(t *testing.T, us int64) {
	t.Helper()
	ts := Timestamp(us)

	wantDay := time.UnixMicro(us).UTC().Truncate(24 * time.Hour).UnixMicro()
	if got := int64(ts.TruncDay()); got != wantDay {
		t.Errorf("TruncDay(%d) = %d, want %d", us, got, wantDay)
	}

	wantYear := int32(time.UnixMicro(us).UTC().Year())
	if got := ts.ExtractYear(); got != wantYear {
		t.Errorf("ExtractYear(%d) = %d, want %d", us, got, wantYear)
	}
}

func TestTruncDayAndExtractYear(t *testing.T) {
	cases := []int64{
		0,
		1,
		-1,
		microsecondsPerDay - 1,
		microsecondsPerDay,
		microsecondsPerDay + 1,
		-microsecondsPerDay,
		-microsecondsPerDay - 1,
		1686836700_000000,  // 2023-06-15T13:45:00Z
		1686787200_000000,  // 2023-06-15T00:00:00Z
		-2208988800_000000, // 1900-01-01T00:00:00Z
		253402300799_000000,
	}
	for _, us := range cases {
		checkTruncDayAndYear(t, us)
	}
}

func TestTruncDayIsIdempotent(t *testing.T) {
	ts := Timestamp(1686836700_000000)
	once := ts.TruncDay()
	twice := once.TruncDay()
	if once != twice {
		t.Errorf("TruncDay not idempotent: %d then %d", once, twice)
	}
}
